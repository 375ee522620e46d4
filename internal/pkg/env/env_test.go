package env

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keboola/config-features/internal/pkg/log"
)

func TestMap(t *testing.T) {
	t.Parallel()

	m := FromMap(map[string]string{"foo": "bar"})
	v, found := m.Lookup("FOO")
	assert.True(t, found)
	assert.Equal(t, "bar", v)

	m.Set("Abc", "1")
	assert.Equal(t, []string{"ABC", "FOO"}, m.Keys())
	assert.Equal(t, map[string]string{"ABC": "1", "FOO": "bar"}, m.ToMap())

	_, err := m.GetOrErr("missing")
	require.Error(t, err)
	assert.Equal(t, `missing ENV variable "MISSING"`, err.Error())

	m.Unset("abc")
	assert.Equal(t, map[string]string{"FOO": "bar"}, m.ToMap())

	str, err := m.ToString()
	require.NoError(t, err)
	assert.Equal(t, `FOO="bar"`, str)
}

func TestEnvNamingConvention(t *testing.T) {
	t.Parallel()
	n := NewNamingConvention("DINO_")
	assert.Equal(t, "DINO_FOO", n.FlagToEnv("foo"))
	assert.Equal(t, "DINO_FOO_BAR", n.FlagToEnv("foo-bar"))
	assert.Equal(t, "DINO_FOO_BAR_BAZ", n.FlagToEnv("foo-Bar-BAZ"))
	assert.PanicsWithError(t, "flag name cannot be empty", func() {
		n.FlagToEnv("")
	})
}

func TestLoadDotEnv(t *testing.T) {
	t.Parallel()

	logger := log.NewDebugLogger()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, ".env.local", []byte("FOO1=BAR2\nFOO2=BAR2\n"), 0o600))
	require.NoError(t, afero.WriteFile(fs, ".env", []byte("FOO1=BAZ\nFOO3=BAR3\n"), 0o600))

	osEnvs := Empty()
	osEnvs.Set(`FOO1`, `BAR1`)
	osEnvs.Set(`OS_ONLY`, `123`)

	envs := LoadDotEnv(context.Background(), logger, osEnvs, fs, []string{"."})
	assert.Equal(t, map[string]string{
		"OS_ONLY": "123",
		"FOO1":    "BAR1",
		"FOO2":    "BAR2",
		"FOO3":    "BAR3",
	}, envs.ToMap())

	logger.AssertJSONMessages(t, `
{"level":"info","message":"Loaded env file \".env.local\"."}
{"level":"info","message":"Loaded env file \".env\"."}
`)
}

func TestLoadDotEnv_Invalid(t *testing.T) {
	t.Parallel()

	logger := log.NewDebugLogger()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, ".env.local", []byte("FOO=\"bar\n"), 0o600))

	envs := LoadDotEnv(context.Background(), logger, Empty(), fs, []string{"."})
	assert.Empty(t, envs.ToMap())
	logger.AssertJSONMessages(t, `{"level":"warn","message":"cannot parse env file \".env.local\": unterminated quoted value %s"}`)
	assert.NotContains(t, logger.AllMessages(), "Loaded env file")
}
