// Package dependencies provides dependencies of the dino API service.
package dependencies

import (
	"context"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/keboola/config-features/internal/pkg/dino"
	"github.com/keboola/config-features/internal/pkg/kvstore"
	"github.com/keboola/config-features/internal/pkg/log"
	"github.com/keboola/config-features/internal/pkg/service/common/servicectx"
	"github.com/keboola/config-features/internal/pkg/service/dino/api/config"
	"github.com/keboola/config-features/internal/pkg/telemetry"
)

type APIScope interface {
	Logger() log.Logger
	Telemetry() telemetry.Telemetry
	Clock() clockwork.Clock
	Process() *servicectx.Process
	Config() config.Config
	PrometheusRegistry() *prometheus.Registry
	KVStore() kvstore.Provider
	RoarGenerator() *dino.Generator
}

type apiScope struct {
	logger    log.Logger
	telemetry telemetry.Telemetry
	clock     clockwork.Clock
	proc      *servicectx.Process
	config    config.Config
	registry  *prometheus.Registry
	kvStore   kvstore.Provider
	generator *dino.Generator
}

func NewAPIScope(ctx context.Context, cfg config.Config, proc *servicectx.Process, logger log.Logger) (APIScope, error) {
	registry := prometheus.NewRegistry()
	tel, err := telemetry.NewWithPrometheus(registry)
	if err != nil {
		return nil, err
	}
	return newAPIScope(ctx, cfg, proc, logger, tel, clockwork.NewRealClock(), registry)
}

// NewMockedAPIScope creates dependencies with a fake clock and the debug logger.
func NewMockedAPIScope(t *testing.T, cfg config.Config) (APIScope, *clockwork.FakeClock, log.DebugLogger) {
	t.Helper()

	logger := log.NewDebugLogger()
	registry := prometheus.NewRegistry()
	tel, err := telemetry.NewWithPrometheus(registry)
	require.NoError(t, err)
	clock := clockwork.NewFakeClock()

	d, err := newAPIScope(context.Background(), cfg, servicectx.NewForTest(t), logger, tel, clock, registry)
	require.NoError(t, err)
	return d, clock, logger
}

func newAPIScope(ctx context.Context, cfg config.Config, proc *servicectx.Process, logger log.Logger, tel telemetry.Telemetry, clock clockwork.Clock, registry *prometheus.Registry) (*apiScope, error) {
	d := &apiScope{
		logger:    logger,
		telemetry: tel,
		clock:     clock,
		proc:      proc,
		config:    cfg,
		registry:  registry,
	}

	kvStore, err := kvstore.New(ctx, d, cfg.KVStore)
	if err != nil {
		return nil, err
	}
	d.kvStore = kvStore
	d.generator = dino.NewGenerator(d, kvStore, cfg.Dino)
	return d, nil
}

func (v *apiScope) Logger() log.Logger {
	return v.logger
}

func (v *apiScope) Telemetry() telemetry.Telemetry {
	return v.telemetry
}

func (v *apiScope) Clock() clockwork.Clock {
	return v.clock
}

func (v *apiScope) Process() *servicectx.Process {
	return v.proc
}

func (v *apiScope) Config() config.Config {
	return v.config
}

func (v *apiScope) PrometheusRegistry() *prometheus.Registry {
	return v.registry
}

func (v *apiScope) KVStore() kvstore.Provider {
	return v.kvStore
}

func (v *apiScope) RoarGenerator() *dino.Generator {
	return v.generator
}
