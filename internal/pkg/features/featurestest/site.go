// Package featurestest provides a small site snapshot shared by tests of the features packages.
package featurestest

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/keboola/config-features/internal/pkg/encoding/yaml"
	"github.com/keboola/config-features/internal/pkg/features/model"
	"github.com/keboola/config-features/internal/pkg/features/snapshot"
)

// activeConfig of the test site, in the site order.
var activeConfig = []struct{ name, data string }{ // nolint: gochecknoglobals
	{"node.type.article", `
uuid: 1234
_core:
  default_config_hash: abc
name: Article
type: article
description: Use articles for time-sensitive content.
`},
	{"node.type.page", `
name: Page
type: page
`},
	{"field.storage.node.body", `
dependencies:
  module: [node, text]
field_name: body
`},
	{"field.field.node.article.body", `
dependencies:
  config: [field.storage.node.body, node.type.article]
  module: [text]
label: Body
`},
	{"field.field.node.page.body", `
dependencies:
  config: [field.storage.node.body, node.type.page]
  module: [text]
label: Body
`},
	{"core.date_format.long", `label: Default long date`},
	{"core.date_format.short", `label: Default short date`},
	{"image.style.large", `label: Large (480×480)`},
	{"filter.format.basic_html", `name: Basic HTML`},
	{"shortcut.set.default", `label: Default`},
	{"system.cron", `threshold: {requirements_warning: 172800}`},
	{"system.theme", `default: olivero`},
	{"system.site", `name: Test site`},
	{"block.block.olivero_page_title", `theme: olivero`},
}

// NewSite returns a new test site, each call returns independent copy.
//
// Extensions:
//   - "system" is installed and ships date formats, cron and theme settings.
//   - "standard" is the installed profile and ships the default shortcut set.
//   - "test_mybundle_core" is an installed feature module of the "test_mybundle" bundle, all its config is required.
//   - "test_feature" is an uninstalled feature module without a bundle.
func NewSite(tb testing.TB) *model.Site {
	tb.Helper()

	site := model.NewSite()
	site.Profile = "standard"
	site.EntityTypes = []model.EntityType{
		{ID: "node", Label: "Content", Group: model.EntityGroupContent},
		{ID: "user", Label: "User", Group: model.EntityGroupContent},
		{ID: "node_type", Label: "Content type", Group: model.EntityGroupConfiguration, ConfigPrefix: "node.type"},
		{ID: "field_config", Label: "Field", Group: model.EntityGroupConfiguration, ConfigPrefix: "field.field"},
		{ID: "field_storage_config", Label: "Field storage", Group: model.EntityGroupConfiguration, ConfigPrefix: "field.storage"},
		{ID: "date_format", Label: "Date format", Group: model.EntityGroupConfiguration, ConfigPrefix: "core.date_format"},
		{ID: "image_style", Label: "Image style", Group: model.EntityGroupConfiguration, ConfigPrefix: "image.style"},
		{ID: "shortcut_set", Label: "Shortcut set", Group: model.EntityGroupConfiguration, ConfigPrefix: "shortcut.set"},
		{ID: "filter_format", Label: "Text format", Group: model.EntityGroupConfiguration, ConfigPrefix: "filter.format"},
	}
	site.Extensions = []*model.Extension{
		{
			Name:      "system",
			Label:     "System",
			Type:      model.ExtensionTypeModule,
			Installed: true,
			Config:    []string{"core.date_format.long", "core.date_format.short", "system.cron", "system.theme"},
		},
		{
			Name:      "standard",
			Label:     "Standard",
			Type:      model.ExtensionTypeProfile,
			Installed: true,
			Config:    []string{"shortcut.set.default"},
		},
		{
			Name:         "test_mybundle_core",
			Label:        "Test MyBundle Core",
			Type:         model.ExtensionTypeModule,
			Installed:    true,
			Dependencies: []string{"system"},
			Config:       []string{"core.date_format.long"},
			Feature:      &model.FeatureInfo{Bundle: "test_mybundle", Required: model.RequiredAll()},
		},
		{
			Name:    "test_feature",
			Label:   "Test Feature",
			Type:    model.ExtensionTypeModule,
			Config:  []string{"core.date_format.short", "system.cron"},
			Feature: &model.FeatureInfo{},
		},
	}

	for _, c := range activeConfig {
		data, err := yaml.DecodeOrderedMap([]byte(c.data))
		require.NoError(tb, err)

		item := site.NewItem(c.name, data)
		site.Active.Add(item)
	}
	model.ComputeDependents(site.Active)

	return site
}

// NewBundle returns the "test_mybundle" bundle with the default settings.
func NewBundle() *model.Bundle {
	return model.NewBundleFromDefault("test_mybundle", "Test MyBundle")
}

// WriteSite writes the test site as a snapshot directory, see snapshot.Loader.
func WriteSite(tb testing.TB, fs afero.Fs, dir string) {
	tb.Helper()

	site := NewSite(tb)
	manifest, err := yaml.Encode(snapshot.Manifest{
		Profile:     site.Profile,
		EntityTypes: site.EntityTypes,
		Extensions:  site.Extensions,
	})
	require.NoError(tb, err)
	require.NoError(tb, fs.MkdirAll(filepath.Join(dir, snapshot.ConfigDir), 0o755))
	require.NoError(tb, afero.WriteFile(fs, filepath.Join(dir, snapshot.ManifestFile), manifest, 0o644))

	for _, c := range activeConfig {
		path := filepath.Join(dir, snapshot.ConfigDir, c.name+snapshot.FileExtension)
		require.NoError(tb, afero.WriteFile(fs, path, []byte(strings.TrimLeft(c.data, "\n")), 0o644))
	}
}
