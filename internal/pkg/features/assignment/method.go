// Package assignment contains assignment methods, each method moves configuration items into packages
// based on a single criterion. The Assigner runs the enabled methods of the current bundle ordered by weight.
package assignment

import (
	"context"

	"github.com/keboola/config-features/internal/pkg/features/manager"
	"github.com/keboola/config-features/internal/pkg/features/model"
	"github.com/keboola/config-features/internal/pkg/log"
	"github.com/keboola/config-features/internal/pkg/utils/errors"
)

type Method interface {
	ID() string
	Name() string
	Description() string
	// Assign items to packages. The force flag allows reassigning already claimed items.
	Assign(ctx context.Context, force bool) error
}

type base struct {
	manager *manager.Manager
	logger  log.Logger
}

func newMethods(mgr *manager.Manager, logger log.Logger) []Method {
	b := base{manager: mgr, logger: logger}
	return []Method{
		&alterMethod{base: b},
		&baseTypeMethod{base: b},
		&coreTypeMethod{base: b},
		&dependencyMethod{base: b},
		&excludeMethod{base: b},
		&existingMethod{base: b},
		&forwardDependencyMethod{base: b},
		&namespaceMethod{base: b},
		&optionalTypeMethod{base: b},
		&packagesMethod{base: b},
		&profileMethod{base: b},
		&siteTypeMethod{base: b},
	}
}

func (b base) bundle() *model.Bundle {
	return b.manager.Bundle()
}

func (b base) settings(methodID string) model.Settings {
	return b.bundle().AssignmentSettings(methodID)
}

// assignByConfigTypes assigns unclaimed items of the types to the package.
// Items provided by installed extensions are skipped.
func (b base) assignByConfigTypes(ctx context.Context, packageName string, types []string, force bool) error {
	errs := errors.NewMultiError()
	for _, item := range b.manager.ConfigCollection().All() {
		if !contains(types, item.Type) || item.IsClaimed() || item.ProviderExcluded {
			continue
		}
		if err := b.manager.AssignConfigPackage(ctx, packageName, []string{item.Name}, force); err != nil {
			errs.Append(err)
		}
	}
	return errs.ErrorOrNil()
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
