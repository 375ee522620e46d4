package assignment

import (
	"context"

	"github.com/keboola/config-features/internal/pkg/features/model"
	"github.com/keboola/config-features/internal/pkg/utils/errors"
)

const corePackage = "core"

// coreTypeMethod assigns items of core types to the "core" package.
// The package is created only if there is an item to assign.
type coreTypeMethod struct {
	base
}

func (m *coreTypeMethod) ID() string {
	return model.MethodCore
}

func (m *coreTypeMethod) Name() string {
	return "Core type"
}

func (m *coreTypeMethod) Description() string {
	return "Assign designated types of configuration to a core configuration package module."
}

func (m *coreTypeMethod) Assign(ctx context.Context, force bool) error {
	settings := m.settings(model.MethodCore)
	errs := errors.NewMultiError()
	var pkg *model.Package
	for _, item := range m.manager.ConfigCollection().All() {
		if !contains(settings.Types.Config, item.Type) || item.IsClaimed() || item.ProviderExcluded {
			continue
		}
		if pkg == nil {
			pkg = m.manager.InitPackage(ctx, corePackage, "Core", "Provide core components required by other configuration modules.", model.PackageTypeModule, "")
		}
		if err := m.manager.AssignConfigPackage(ctx, pkg.MachineName, []string{item.Name}, force); err != nil {
			errs.Append(err)
		}
	}
	return errs.ErrorOrNil()
}
