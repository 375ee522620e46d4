// Package kvstore provides named key-value collections on a configurable backend.
package kvstore

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/keboola/config-features/internal/pkg/kvstore/etcd"
	"github.com/keboola/config-features/internal/pkg/kvstore/memory"
	"github.com/keboola/config-features/internal/pkg/kvstore/redis"
	"github.com/keboola/config-features/internal/pkg/kvstore/sqlite"
	"github.com/keboola/config-features/internal/pkg/log"
	"github.com/keboola/config-features/internal/pkg/service/common/etcdclient"
	"github.com/keboola/config-features/internal/pkg/service/common/servicectx"
	"github.com/keboola/config-features/internal/pkg/telemetry"
	"github.com/keboola/config-features/internal/pkg/utils/errors"
)

const (
	TypeMemory = "memory"
	TypeSQLite = "sqlite"
	TypeRedis  = "redis"
	TypeEtcd   = "etcd"
)

// Store is a collection of string values.
type Store interface {
	Has(ctx context.Context, key string) (bool, error)
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
}

type Provider interface {
	Collection(name string) Store
}

type Config struct {
	Type   string            `configKey:"type" configUsage:"Key-value store type: memory, sqlite, redis or etcd." validate:"oneof=memory sqlite redis etcd"`
	Memory memory.Config     `configKey:"memory"`
	SQLite sqlite.Config     `configKey:"sqlite"`
	Redis  redis.Config      `configKey:"redis"`
	Etcd   etcdclient.Config `configKey:"etcd"`
}

func NewConfig() Config {
	return Config{
		Type:   TypeMemory,
		Memory: memory.NewConfig(),
		SQLite: sqlite.NewConfig(),
		Redis:  redis.NewConfig(),
		Etcd:   etcdclient.NewConfig(),
	}
}

type dependencies interface {
	Logger() log.Logger
	Process() *servicectx.Process
	Telemetry() telemetry.Telemetry
}

// provider adapts a backend with a typed Collection method to the Provider interface.
type provider[T Store] struct {
	collection func(name string) T
}

func (p provider[T]) Collection(name string) Store {
	return p.collection(name)
}

// New creates the provider of the configured type, the backend is closed on the process shutdown.
func New(ctx context.Context, d dependencies, cfg Config) (Provider, error) {
	logger := d.Logger().WithComponent("kvstore")
	proc := d.Process()

	var out Provider
	switch cfg.Type {
	case TypeMemory:
		p, err := memory.New(cfg.Memory)
		if err != nil {
			return nil, err
		}
		proc.OnShutdown(func(context.Context) { p.Close() })
		out = provider[*memory.Collection]{collection: p.Collection}
	case TypeSQLite:
		p, err := sqlite.New(ctx, cfg.SQLite)
		if err != nil {
			return nil, err
		}
		proc.OnShutdown(func(ctx context.Context) {
			if err := p.Close(); err != nil {
				logger.Warnf(ctx, "cannot close sqlite store: %s", err)
			}
		})
		out = provider[*sqlite.Collection]{collection: p.Collection}
	case TypeRedis:
		p, err := redis.New(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		proc.OnShutdown(func(ctx context.Context) {
			if err := p.Close(); err != nil {
				logger.Warnf(ctx, "cannot close redis store: %s", err)
			}
		})
		out = provider[*redis.Collection]{collection: p.Collection}
	case TypeEtcd:
		client, err := etcdclient.New(ctx, proc, d.Telemetry(), d.Logger(), cfg.Etcd)
		if err != nil {
			return nil, err
		}
		out = provider[*etcd.Collection]{collection: etcd.New(client).Collection}
	default:
		return nil, errors.Errorf(`unexpected key-value store type "%s"`, cfg.Type)
	}

	logger.With(attribute.String("kvstore.type", cfg.Type)).Infof(ctx, `created "%s" key-value store`, cfg.Type)
	return out, nil
}
