package export_test

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keboola/config-features/internal/pkg/features/export"
	"github.com/keboola/config-features/internal/pkg/features/featurestest"
	"github.com/keboola/config-features/internal/pkg/features/manager"
	"github.com/keboola/config-features/internal/pkg/features/model"
	"github.com/keboola/config-features/internal/pkg/log"
)

func newManager(t *testing.T) *manager.Manager {
	t.Helper()
	ctx := context.Background()

	site := featurestest.NewSite(t)
	mgr := manager.New(log.NewNopLogger(), site)
	mgr.SetBundle(featurestest.NewBundle())

	ext, _ := site.Extension("test_mybundle_core")
	mgr.InitPackageFromExtension(ctx, ext)
	require.NoError(t, mgr.AssignConfigPackage(ctx, "test_mybundle_core", []string{"core.date_format.long"}, true))

	mgr.InitPackage(ctx, "article", "Article", "Provides Article.", model.PackageTypeModule, "")
	require.NoError(t, mgr.AssignConfigPackage(ctx, "article", []string{"node.type.article", "field.field.node.article.body"}, false))

	image, _ := mgr.ConfigCollection().Get("image.style.large")
	image.Subdirectory = model.OptionalDirectory
	require.NoError(t, mgr.AssignConfigPackage(ctx, "test_mybundle_core", []string{"image.style.large"}, false))

	// Empty package is not exported
	mgr.InitPackage(ctx, "user", "User", "", model.PackageTypeModule, "")
	return mgr
}

func readFile(t *testing.T, fs afero.Fs, path string) string {
	t.Helper()
	content, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	return string(content)
}

func TestExporter_Export(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	fs := afero.NewMemMapFs()
	mgr := newManager(t)

	// Old files are removed
	require.NoError(t, afero.WriteFile(fs, "modules/test_mybundle_article/old.yml", []byte("old"), 0o644))

	logger := log.NewDebugLogger()
	modules, err := export.New(logger, fs).Export(ctx, mgr, "modules")
	require.NoError(t, err)
	assert.Equal(t, []export.Module{
		{
			MachineName: "test_mybundle_core",
			Path:        "modules/test_mybundle_core",
			Files: []string{
				"test_mybundle_core.info.yml",
				"test_mybundle_core.features.yml",
				"config/install/core.date_format.long.yml",
				"config/optional/image.style.large.yml",
			},
		},
		{
			MachineName: "test_mybundle_article",
			Path:        "modules/test_mybundle_article",
			Files: []string{
				"test_mybundle_article.info.yml",
				"test_mybundle_article.features.yml",
				"config/install/node.type.article.yml",
				"config/install/field.field.node.article.body.yml",
			},
		},
	}, modules)

	assert.Equal(t, `name: Test MyBundle Core
type: module
package: test_mybundle
dependencies:
  - system
`, readFile(t, fs, "modules/test_mybundle_core/test_mybundle_core.info.yml"))
	assert.Equal(t, "bundle: test_mybundle\nrequired: true\n", readFile(t, fs, "modules/test_mybundle_core/test_mybundle_core.features.yml"))

	assert.Equal(t, `name: Article
type: module
description: Provides Article.
package: test_mybundle
dependencies:
  - text
`, readFile(t, fs, "modules/test_mybundle_article/test_mybundle_article.info.yml"))
	assert.Equal(t, "bundle: test_mybundle\n", readFile(t, fs, "modules/test_mybundle_article/test_mybundle_article.features.yml"))

	// Key order of the config is kept
	assert.Equal(t, `uuid: 1234
_core:
  default_config_hash: abc
name: Article
type: article
description: Use articles for time-sensitive content.
`, readFile(t, fs, "modules/test_mybundle_article/config/install/node.type.article.yml"))

	exists, err := afero.Exists(fs, "modules/test_mybundle_article/old.yml")
	require.NoError(t, err)
	assert.False(t, exists)
	exists, err = afero.Exists(fs, "modules/test_mybundle_user")
	require.NoError(t, err)
	assert.False(t, exists)

	logger.AssertJSONMessages(t, `
{"level":"info","message":"exported module \"modules/test_mybundle_core\"","component":"features.export","package":"test_mybundle_core","config.count":2}
{"level":"info","message":"exported module \"modules/test_mybundle_article\"","component":"features.export","package":"article","config.count":2}
`)
}

func TestExporter_Export_Selected(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	fs := afero.NewMemMapFs()
	mgr := newManager(t)

	// Empty package can be exported explicitly, the short name is accepted
	modules, err := export.New(log.NewNopLogger(), fs).Export(ctx, mgr, "out", "user", "core")
	require.NoError(t, err)
	require.Len(t, modules, 2)
	assert.Equal(t, "test_mybundle_user", modules[0].MachineName)
	assert.Equal(t, []string{"test_mybundle_user.info.yml", "test_mybundle_user.features.yml"}, modules[0].Files)
	assert.Equal(t, "test_mybundle_core", modules[1].MachineName)

	_, err = export.New(log.NewNopLogger(), fs).Export(ctx, mgr, "out", "missing")
	require.Error(t, err)
	assert.Equal(t, `package "missing" not found`, err.Error())
}

func TestExporter_Export_Conflict(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mgr := newManager(t)
	mgr.Packages().Add(model.NewPackage("test_mybundle_article", "Article 2", "", model.PackageTypeModule, "test_mybundle"))

	_, err := export.New(log.NewNopLogger(), afero.NewMemMapFs()).Export(ctx, mgr, "out", "article", "test_mybundle_article")
	require.Error(t, err)
	assert.Equal(t, `module "test_mybundle_article" is exported by packages "article" and "test_mybundle_article"`, err.Error())
}

func TestModuleName(t *testing.T) {
	t.Parallel()
	bundle := featurestest.NewBundle()
	assert.Equal(t, "test_mybundle_article", export.ModuleName(bundle, model.NewPackage("article", "", "", model.PackageTypeModule, "")))
	assert.Equal(t, "test_mybundle_article", export.ModuleName(bundle, model.NewPackage("test_mybundle_article", "", "", model.PackageTypeModule, "")))
	assert.Equal(t, "my_profile", export.ModuleName(bundle, model.NewPackage("my_profile", "", "", model.PackageTypeProfile, "")))
	assert.Equal(t, "article", export.ModuleName(model.NewDefaultBundle(), model.NewPackage("article", "", "", model.PackageTypeModule, "")))
}
