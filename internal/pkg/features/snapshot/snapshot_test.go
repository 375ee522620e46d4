package snapshot

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keboola/config-features/internal/pkg/features/model"
	"github.com/keboola/config-features/internal/pkg/log"
	"github.com/keboola/config-features/internal/pkg/validator"
)

const manifest = `
profile: standard
entityTypes:
  - id: node
    label: Content
    group: content
  - id: node_type
    label: Content type
    group: configuration
    configPrefix: node.type
  - id: field_config
    label: Field
    group: configuration
    configPrefix: field.field
extensions:
  - name: standard
    type: profile
    installed: true
  - name: my_feature
    label: My Feature
    installed: true
    config: [node.type.article]
    optional: [field.field.node.article.body]
    feature:
      bundle: my
      required: [node.type.article]
`

func writeFiles(t *testing.T, fs afero.Fs, files map[string]string) {
	t.Helper()
	for path, content := range files {
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
	}
}

func TestLoader_Load(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, map[string]string{
		"site/site.yml":                                 manifest,
		"site/config/node.type.article.yml":             "name: Article\ntype: article\n",
		"site/config/field.field.node.article.body.yml": "dependencies:\n  config: [node.type.article]\nlabel: Body\n",
		"site/config/system.site.yml":                   "name: My site\n",
		"site/config/README.md":                         "ignored",
	})

	logger := log.NewDebugLogger()
	site, err := NewLoader(logger, fs, validator.New()).Load(ctx, "site")
	require.NoError(t, err)

	assert.Equal(t, "standard", site.Profile)
	assert.Len(t, site.EntityTypes, 3)
	assert.Equal(t, []string{"field.field.node.article.body", "node.type.article", "system.site"}, site.Active.Names())

	ext, found := site.Extension("my_feature")
	require.True(t, found)
	assert.Equal(t, &model.FeatureInfo{Bundle: "my", Required: model.RequiredItems("node.type.article")}, ext.Feature)
	assert.Equal(t, []string{"node.type.article", "field.field.node.article.body"}, ext.AllConfig())

	article, _ := site.Active.Get("node.type.article")
	assert.Equal(t, "node_type", article.Type)
	assert.Equal(t, "article", article.ShortName)
	assert.Equal(t, "Article", article.Label)
	assert.Equal(t, []string{"field.field.node.article.body"}, article.Dependents)

	body, _ := site.Active.Get("field.field.node.article.body")
	assert.Equal(t, "field_config", body.Type)
	assert.Equal(t, "node.article.body", body.ShortName)
	assert.Equal(t, "Body", body.Label)

	simple, _ := site.Active.Get("system.site")
	assert.Equal(t, model.SimpleConfigType, simple.Type)
	assert.Equal(t, "system.site", simple.ShortName)

	logger.AssertJSONMessages(t, `{"level":"info","message":"loaded site snapshot \"site\"","component":"features.snapshot","extensions.count":2,"config.count":3}`)
}

func TestLoader_Load_Errors(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	// Missing manifest
	fs := afero.NewMemMapFs()
	_, err := NewLoader(log.NewNopLogger(), fs, validator.New()).Load(ctx, "site")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `cannot read site manifest "site/site.yml"`)

	// Invalid manifest
	writeFiles(t, fs, map[string]string{"site/site.yml": "entityTypes:\n  - id: foo\n    group: other\n"})
	_, err = NewLoader(log.NewNopLogger(), fs, validator.New()).Load(ctx, "site")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `site manifest "site/site.yml" is not valid:`)
	assert.Contains(t, err.Error(), `"entityTypes[0].group" must be one of [content configuration]`)

	// Invalid config file
	writeFiles(t, fs, map[string]string{
		"site/site.yml":           "profile: standard\n",
		"site/config/foo.bar.yml": "- not a mapping\n",
	})
	_, err = NewLoader(log.NewNopLogger(), fs, validator.New()).Load(ctx, "site")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `config file "site/config/foo.bar.yml" is not valid:`)
	assert.Contains(t, err.Error(), `expected mapping`)
}
