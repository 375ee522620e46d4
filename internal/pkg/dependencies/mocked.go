package dependencies

import (
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/afero"

	"github.com/keboola/config-features/internal/pkg/env"
	"github.com/keboola/config-features/internal/pkg/log"
	"github.com/keboola/config-features/internal/pkg/service/common/servicectx"
	"github.com/keboola/config-features/internal/pkg/telemetry"
)

// Mocked contains dependencies for tests: debug logger, in-memory filesystem, fake clock and recorded telemetry.
type Mocked interface {
	Base
	Process() *servicectx.Process
	EnvsMutable() *env.Map
	DebugLogger() log.DebugLogger
	TestTelemetry() *telemetry.ForTest
	FakeClock() *clockwork.FakeClock
}

type mocked struct {
	*base
	envs        *env.Map
	debugLogger log.DebugLogger
	telemetry   *telemetry.ForTest
	clock       *clockwork.FakeClock
	proc        *servicectx.Process
}

type MockedOption func(c *mockedConfig)

type mockedConfig struct {
	fs   afero.Fs
	envs *env.Map
}

// WithMockedFs replaces the default in-memory filesystem.
func WithMockedFs(fs afero.Fs) MockedOption {
	return func(c *mockedConfig) {
		c.fs = fs
	}
}

func WithMockedEnvs(envs *env.Map) MockedOption {
	return func(c *mockedConfig) {
		c.envs = envs
	}
}

func NewMocked(t *testing.T, opts ...MockedOption) Mocked {
	t.Helper()

	cfg := mockedConfig{fs: afero.NewMemMapFs(), envs: env.Empty()}
	for _, o := range opts {
		o(&cfg)
	}

	logger := log.NewDebugLogger()
	tel := telemetry.NewForTest(t)
	clock := clockwork.NewFakeClock()
	return &mocked{
		base:        newBaseDeps(cfg.envs, logger, tel, clock, cfg.fs),
		envs:        cfg.envs,
		debugLogger: logger,
		telemetry:   tel,
		clock:       clock,
		proc:        servicectx.NewForTest(t),
	}
}

func (v *mocked) Process() *servicectx.Process {
	return v.proc
}

func (v *mocked) EnvsMutable() *env.Map {
	return v.envs
}

func (v *mocked) DebugLogger() log.DebugLogger {
	return v.debugLogger
}

func (v *mocked) TestTelemetry() *telemetry.ForTest {
	return v.telemetry
}

func (v *mocked) FakeClock() *clockwork.FakeClock {
	return v.clock
}
