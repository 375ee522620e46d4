package cmd_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keboola/config-features/internal/pkg/env"
	"github.com/keboola/config-features/internal/pkg/features/featurestest"
	"github.com/keboola/config-features/internal/pkg/service/features/cli/cmd"
)

type output struct {
	stdout bytes.Buffer
	stderr bytes.Buffer
}

func execute(t *testing.T, fs afero.Fs, envs *env.Map, args ...string) (*output, error) {
	t.Helper()
	out := &output{}
	root := cmd.NewRootCommand(&out.stdout, &out.stderr, envs, fs)
	root.SetArgs(append([]string{}, args...))
	return out, root.ExecuteContext(context.Background())
}

func TestAssign(t *testing.T) {
	t.Parallel()
	fs := afero.NewMemMapFs()
	featurestest.WriteSite(t, fs, "site")

	out, err := execute(t, fs, env.Empty(), "assign", "--site-dir", "site", "-m", "site", "--method", "core")
	require.NoError(t, err)
	assert.Contains(t, out.stdout.String(), `loaded site snapshot "site"`)
	assert.Contains(t, out.stdout.String(), `package "site": `)
	assert.NotContains(t, out.stdout.String(), `package "article": `)
	assert.Empty(t, out.stderr.String())
}

func TestExport_WorkingDir(t *testing.T) {
	t.Parallel()
	fs := afero.NewMemMapFs()
	featurestest.WriteSite(t, fs, "/project/site")
	require.NoError(t, afero.WriteFile(fs, "/project/.env", []byte("FEATURES_TARGET_DIR=out\n"), 0o644))

	// The site dir is set by ENV, the target dir by the ".env" file in the working dir
	envs := env.FromMap(map[string]string{"FEATURES_SITE_DIR": "site"})
	out, err := execute(t, fs, envs, "export", "-d", "/project", "-p", "article", "--package", "site")
	require.NoError(t, err)
	assert.Contains(t, out.stdout.String(), `exported 2 modules to "out"`)

	exists, err := afero.Exists(fs, "/project/out/article/article.info.yml")
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = afero.Exists(fs, "/project/out/site/site.info.yml")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestExport_Error(t *testing.T) {
	t.Parallel()
	fs := afero.NewMemMapFs()

	_, err := execute(t, fs, env.Empty(), "export", "--site-dir", "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `cannot read site manifest "missing/site.yml"`)

	_, err = execute(t, fs, env.Empty(), "export", "--target-dir", "")
	require.Error(t, err)
	assert.Equal(t, `"targetDir" is a required field`, err.Error())

	_, err = execute(t, fs, env.Empty(), "export", "--foo")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown flag: --foo`)
}

func TestBundle(t *testing.T) {
	t.Parallel()
	fs := afero.NewMemMapFs()

	out, err := execute(t, fs, env.Empty(), "bundle", "create", "--name", "My Bundle", "--profile")
	require.NoError(t, err)
	assert.Contains(t, out.stdout.String(), `created bundle "my_bundle"`)

	out, err = execute(t, fs, env.Empty(), "bundle", "list", "--bundles-dir", "bundles")
	require.NoError(t, err)
	assert.Contains(t, out.stdout.String(), `my_bundle: My Bundle`)

	_, err = execute(t, fs, env.Empty(), "bundle", "create")
	require.Error(t, err)
	assert.Equal(t, `"name" is a required field`, err.Error())
}

func TestHelp(t *testing.T) {
	t.Parallel()
	fs := afero.NewMemMapFs()

	out, err := execute(t, fs, env.Empty(), "export", "--help")
	require.NoError(t, err)
	assert.Contains(t, out.stdout.String(), `Usage of "features export":`)
	assert.Contains(t, out.stdout.String(), `--target-dir string`)
	assert.Contains(t, out.stdout.String(), `"FEATURES_FOO_BAR" ENV`)

	out, err = execute(t, fs, env.Empty())
	require.NoError(t, err)
	assert.Contains(t, out.stdout.String(), "bundle")
	assert.Contains(t, out.stdout.String(), "export")
}
