package assignment

import (
	"context"

	"github.com/keboola/config-features/internal/pkg/features/model"
	"github.com/keboola/config-features/internal/pkg/utils/errors"
)

// packagesMethod creates packages of existing feature modules and assigns their required config.
type packagesMethod struct {
	base
}

func (m *packagesMethod) ID() string {
	return model.MethodPackages
}

func (m *packagesMethod) Name() string {
	return "Packages"
}

func (m *packagesMethod) Description() string {
	return "Detect and add existing package modules."
}

func (m *packagesMethod) Assign(ctx context.Context, _ bool) error {
	config := m.manager.ConfigCollection()
	errs := errors.NewMultiError()
	for _, ext := range m.manager.FeaturesModules(nil, false) {
		pkg := m.manager.InitPackageFromExtension(ctx, ext)

		// Copy excluded settings to the items
		for _, name := range pkg.Excluded {
			if item, found := config.Get(name); found && !item.IsPackageExcluded(pkg.MachineName) {
				item.PackageExcluded = append(item.PackageExcluded, pkg.MachineName)
			}
		}

		if pkg.Required.IsRequired() {
			names := pkg.Required.Filter(m.manager.ListExtensionConfig(ext))
			if err := m.manager.AssignConfigPackage(ctx, pkg.MachineName, names, true); err != nil {
				errs.Append(err)
			}
		}
	}
	return errs.ErrorOrNil()
}
