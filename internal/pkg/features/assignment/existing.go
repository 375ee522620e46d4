package assignment

import (
	"context"

	"github.com/keboola/config-features/internal/pkg/features/model"
	"github.com/keboola/config-features/internal/pkg/utils/errors"
)

// existingMethod assigns config shipped by existing feature modules back to their packages.
// Installed modules claim first.
type existingMethod struct {
	base
}

func (m *existingMethod) ID() string {
	return model.MethodExisting
}

func (m *existingMethod) Name() string {
	return "Existing"
}

func (m *existingMethod) Description() string {
	return "Add exported config to existing packages."
}

func (m *existingMethod) Assign(ctx context.Context, _ bool) error {
	packages := m.manager.Packages().All()
	errs := errors.NewMultiError()
	for _, installed := range []bool{true, false} {
		for _, pkg := range packages {
			if pkg.Extension == "" || pkg.IsInstalled() != installed {
				continue
			}
			ext, found := m.manager.Site().Extension(pkg.Extension)
			if !found {
				continue
			}
			if err := m.manager.AssignConfigPackage(ctx, pkg.MachineName, m.manager.ListExtensionConfig(ext), false); err != nil {
				errs.Append(err)
			}
		}
	}
	return errs.ErrorOrNil()
}
