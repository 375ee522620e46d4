package create_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keboola/config-features/internal/pkg/dependencies"
	"github.com/keboola/config-features/internal/pkg/features/bundle"
	"github.com/keboola/config-features/internal/pkg/features/model"
	"github.com/keboola/config-features/pkg/lib/operation/features/bundle/create"
)

func TestRun(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	d := dependencies.NewMocked(t)

	b, err := create.Run(ctx, create.Options{BundlesDir: "bundles", Name: "Test MyBundle"}, d)
	require.NoError(t, err)
	assert.Equal(t, "test_my_bundle", b.MachineName)
	assert.Equal(t, "Test MyBundle", b.Name)
	assert.False(t, b.IsProfile)
	assert.Equal(t, model.DefaultAssignments(), b.Assignments)

	stored, found, err := bundle.NewRepository(d.Fs(), "bundles", d.Validator()).Get(ctx, "test_my_bundle")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, b, stored)

	// Bundle already exists
	_, err = create.Run(ctx, create.Options{BundlesDir: "bundles", MachineName: "test_my_bundle"}, d)
	require.Error(t, err)
	assert.Equal(t, `bundle "test_my_bundle" already exists`, err.Error())

	assert.Equal(t, []string{
		"keboola.go.operation.features.bundle.create",
		"keboola.go.operation.features.bundle.create",
	}, d.TestTelemetry().SpanNames())
	d.DebugLogger().AssertJSONMessages(t, `{"level":"info","message":"created bundle \"test_my_bundle\""}`)
}

func TestRun_Profile(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	d := dependencies.NewMocked(t)

	b, err := create.Run(ctx, create.Options{BundlesDir: "bundles", MachineName: "my_profile", Name: "My Profile", IsProfile: true}, d)
	require.NoError(t, err)
	assert.True(t, b.IsProfile)
	assert.Equal(t, "my_profile", b.ProfileName)

	stored, found, err := bundle.NewRepository(d.Fs(), "bundles", d.Validator()).Get(ctx, "my_profile")
	require.NoError(t, err)
	require.True(t, found)
	assert.True(t, stored.IsProfile)
}

func TestRun_InvalidName(t *testing.T) {
	t.Parallel()
	d := dependencies.NewMocked(t)

	_, err := create.Run(context.Background(), create.Options{BundlesDir: "bundles", MachineName: "My-Bundle"}, d)
	require.Error(t, err)
	assert.Equal(t, `"machineName" can only contain lowercase alphanumeric characters and underscore`, err.Error())
}
