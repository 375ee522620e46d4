package etcdclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_NormalizeAndValidate(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()
	cfg.Normalize()
	err := cfg.Validate()
	require.Error(t, err)
	assert.Equal(t, "etcd endpoint is not set", err.Error())

	cfg = NewConfig()
	cfg.Endpoint = " localhost:2379/ "
	cfg.Normalize()
	err = cfg.Validate()
	require.Error(t, err)
	assert.Equal(t, "etcd namespace is not set", err.Error())

	cfg.Namespace = "/dino/"
	cfg.Normalize()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "localhost:2379", cfg.Endpoint)
	assert.Equal(t, "dino/", cfg.Namespace)
}
