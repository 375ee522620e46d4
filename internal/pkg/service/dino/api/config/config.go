// Package config defines the configuration of the dino API service.
package config

import (
	"context"

	"github.com/spf13/afero"

	"github.com/keboola/config-features/internal/pkg/dino"
	"github.com/keboola/config-features/internal/pkg/env"
	"github.com/keboola/config-features/internal/pkg/kvstore"
	"github.com/keboola/config-features/internal/pkg/service/common/configmap"
	"github.com/keboola/config-features/internal/pkg/validator"
)

const (
	EnvPrefix            = "DINO_"
	DefaultListenAddress = "0.0.0.0:8000"
)

type Config struct {
	DebugLog bool           `configKey:"debugLog" configUsage:"Enable logging at DEBUG level."`
	API      API            `configKey:"api"`
	Dino     dino.Config    `configKey:"dino"`
	KVStore  kvstore.Config `configKey:"kvstore"`
}

type API struct {
	Listen string `configKey:"listen" configUsage:"Listen address of the HTTP server." validate:"required,hostname_port"`
}

func New() Config {
	return Config{
		API:     API{Listen: DefaultListenAddress},
		Dino:    dino.NewConfig(),
		KVStore: kvstore.NewConfig(),
	}
}

// LoadFrom binds the configuration to flags, ENVs with the "DINO_" prefix and config files.
func LoadFrom(ctx context.Context, args []string, envs env.Provider, fs afero.Fs) (Config, error) {
	cfg := New()
	err := configmap.Bind(ctx, configmap.BindSpec{
		Args:      args,
		EnvNaming: env.NewNamingConvention(EnvPrefix),
		Envs:      envs,
		Fs:        fs,
		Validator: validator.New(),
	}, &cfg)
	return cfg, err
}
