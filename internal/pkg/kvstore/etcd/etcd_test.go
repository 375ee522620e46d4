package etcd

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keboola/config-features/internal/pkg/idgenerator"
	"github.com/keboola/config-features/internal/pkg/log"
	"github.com/keboola/config-features/internal/pkg/service/common/etcdclient"
	"github.com/keboola/config-features/internal/pkg/service/common/servicectx"
	"github.com/keboola/config-features/internal/pkg/telemetry"
)

func TestCollection(t *testing.T) {
	t.Parallel()

	endpoint := os.Getenv("UNIT_ETCD_ENDPOINT")
	if endpoint == "" {
		t.Skip("UNIT_ETCD_ENDPOINT is not set")
	}

	ctx := context.Background()
	cfg := etcdclient.NewConfig()
	cfg.Endpoint = endpoint
	cfg.Namespace = "unit-" + idgenerator.Random(8)

	client, err := etcdclient.New(ctx, servicectx.NewForTest(t), telemetry.NewNop(), log.NewNopLogger(), cfg)
	require.NoError(t, err)

	dino := New(client).Collection("dino")

	found, err := dino.Has(ctx, "dino_3")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, dino.Set(ctx, "dino_3", "ROOOAR!"))

	found, err = dino.Has(ctx, "dino_3")
	require.NoError(t, err)
	assert.True(t, found)

	value, found, err := dino.Get(ctx, "dino_3")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "ROOOAR!", value)
}
