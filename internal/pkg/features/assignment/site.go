package assignment

import (
	"context"

	"github.com/keboola/config-features/internal/pkg/features/model"
)

const sitePackage = "site"

// siteTypeMethod assigns items of site types to the "site" package.
type siteTypeMethod struct {
	base
}

func (m *siteTypeMethod) ID() string {
	return model.MethodSite
}

func (m *siteTypeMethod) Name() string {
	return "Site type"
}

func (m *siteTypeMethod) Description() string {
	return "Assign designated types of configuration to a site configuration package module."
}

func (m *siteTypeMethod) Assign(ctx context.Context, force bool) error {
	settings := m.settings(model.MethodSite)
	pkg := m.manager.InitPackage(ctx, sitePackage, "Site", "Provides site components.", model.PackageTypeModule, "")
	return m.assignByConfigTypes(ctx, pkg.MachineName, settings.Types.Config, force)
}
