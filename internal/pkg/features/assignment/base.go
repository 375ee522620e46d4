package assignment

import (
	"context"
	"fmt"
	"strings"

	"github.com/keboola/config-features/internal/pkg/features/model"
	"github.com/keboola/config-features/internal/pkg/utils/errors"
)

// baseTypeMethod creates a package for each item of a base type, for example a package per content type.
type baseTypeMethod struct {
	base
}

func (m *baseTypeMethod) ID() string {
	return model.MethodBase
}

func (m *baseTypeMethod) Name() string {
	return "Base type"
}

func (m *baseTypeMethod) Description() string {
	return "Use designated types of configuration as the base for configuration package modules."
}

func (m *baseTypeMethod) Assign(ctx context.Context, _ bool) error {
	settings := m.settings(model.MethodBase)
	site := m.manager.Site()
	errs := errors.NewMultiError()

	for _, item := range m.manager.ConfigCollection().All() {
		if !contains(settings.Types.Config, item.Type) || item.IsClaimed() {
			continue
		}

		description := fmt.Sprintf("Provides %s %s and related configuration.", item.Label, strings.ToLower(site.ConfigTypeLabel(item.Type)))
		if v, found := item.Data.Get("description"); found {
			if str, ok := v.(string); ok && str != "" {
				description += " " + str
			}
		}

		pkg := m.manager.InitPackage(ctx, item.ShortName, item.Label, description, model.PackageTypeModule, "")
		if err := m.manager.AssignConfigPackage(ctx, pkg.MachineName, []string{item.Name}, false); err != nil {
			errs.Append(err)
			continue
		}
		if err := m.manager.AssignConfigDependents(ctx, []string{item.Name}, ""); err != nil {
			errs.Append(err)
		}
	}

	for _, entityTypeID := range settings.Types.Content {
		if _, found := m.manager.FindPackage(entityTypeID); found {
			continue
		}
		entityType, found := site.EntityType(entityTypeID)
		if !found || entityType.Group != model.EntityGroupContent {
			continue
		}
		label := entityType.Label
		if label == "" {
			label = entityTypeID
		}
		m.manager.InitPackage(ctx, entityTypeID, label, fmt.Sprintf("Provide %s related configuration.", label), model.PackageTypeModule, "")
	}

	return errs.ErrorOrNil()
}
