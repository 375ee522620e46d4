// Package dependencies provides dependencies containers shared by the CLI commands, operations and tests.
package dependencies

import (
	"github.com/jonboulle/clockwork"
	"github.com/spf13/afero"

	"github.com/keboola/config-features/internal/pkg/env"
	"github.com/keboola/config-features/internal/pkg/log"
	"github.com/keboola/config-features/internal/pkg/telemetry"
	"github.com/keboola/config-features/internal/pkg/validator"
)

// Base contains basic dependencies used by all operations.
type Base interface {
	Envs() env.Provider
	Logger() log.Logger
	Telemetry() telemetry.Telemetry
	Clock() clockwork.Clock
	Fs() afero.Fs
	Validator() *validator.Validator
}

// base dependencies container implements Base interface.
type base struct {
	envs      env.Provider
	logger    log.Logger
	telemetry telemetry.Telemetry
	clock     clockwork.Clock
	fs        afero.Fs
	validator *validator.Validator
}

func NewBaseDeps(envs env.Provider, logger log.Logger, tel telemetry.Telemetry, clock clockwork.Clock, fs afero.Fs) Base {
	return newBaseDeps(envs, logger, tel, clock, fs)
}

func newBaseDeps(envs env.Provider, logger log.Logger, tel telemetry.Telemetry, clock clockwork.Clock, fs afero.Fs) *base {
	return &base{
		envs:      envs,
		logger:    logger,
		telemetry: tel,
		clock:     clock,
		fs:        fs,
		validator: validator.New(),
	}
}

func (v *base) Envs() env.Provider {
	return v.envs
}

func (v *base) Logger() log.Logger {
	return v.logger
}

func (v *base) Telemetry() telemetry.Telemetry {
	return v.telemetry
}

func (v *base) Clock() clockwork.Clock {
	return v.clock
}

func (v *base) Fs() afero.Fs {
	return v.fs
}

func (v *base) Validator() *validator.Validator {
	return v.validator
}
