package assignment

import (
	"context"

	"github.com/keboola/config-features/internal/pkg/features/model"
	"github.com/keboola/config-features/internal/pkg/utils/errors"
)

// curatedProfileItems are added to the profile package, they are loaded from the active configuration if missing.
var curatedProfileItems = []string{"automated_cron.settings", "system.cron", "system.theme"} // nolint: gochecknoglobals

// profileMethod assigns items to the install profile package, if the bundle is a profile.
type profileMethod struct {
	base
}

func (m *profileMethod) ID() string {
	return model.MethodProfile
}

func (m *profileMethod) Name() string {
	return "Profile"
}

func (m *profileMethod) Description() string {
	return "Add configuration and other files to the optional install profile from the Features bundle."
}

func (m *profileMethod) Assign(ctx context.Context, force bool) error {
	bundle := m.bundle()
	if !bundle.IsProfile || bundle.ProfileName == "" {
		return nil
	}

	settings := m.settings(model.MethodProfile)
	profileName := m.manager.InitPackage(ctx, bundle.ProfileName, bundle.Name, bundle.Description, model.PackageTypeProfile, "").MachineName

	errs := errors.NewMultiError()
	if err := m.assignByConfigTypes(ctx, profileName, settings.Types.Config, force); err != nil {
		errs.Append(err)
	}

	if settings.Curated {
		config := m.manager.ConfigCollection()
		for _, name := range curatedProfileItems {
			if config.Has(name) {
				continue
			}
			if item, found := m.manager.Site().ActiveItem(name); found {
				config.Add(item)
			}
		}
		if err := m.manager.AssignConfigPackage(ctx, profileName, curatedProfileItems, force); err != nil {
			errs.Append(err)
		}
	}

	return errs.ErrorOrNil()
}
