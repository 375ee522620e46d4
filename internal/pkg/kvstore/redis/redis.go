// Package redis provides key-value collections stored in Redis, a key is prefixed by the collection name.
package redis

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"

	"github.com/keboola/config-features/internal/pkg/utils/errors"
)

const (
	dialTimeout           = 10 * time.Second
	defaultConnectTimeout = 30 * time.Second
)

type Config struct {
	Address  string        `configKey:"address" configUsage:"Redis address, for example localhost:6379."`
	Password string        `configKey:"password" configUsage:"Redis password." sensitive:"true"`
	DB       int           `configKey:"db" configUsage:"Redis database number."`
	TTL      time.Duration `configKey:"ttl" configUsage:"Expiration of stored values, zero means no expiration."`
	// ConnectTimeout limits retries of the initial connection check.
	ConnectTimeout time.Duration `configKey:"connectTimeout" configUsage:"Redis connect timeout."`
}

func NewConfig() Config {
	return Config{Address: "localhost:6379", ConnectTimeout: defaultConnectTimeout}
}

type Provider struct {
	client *redis.Client
	ttl    time.Duration
}

type Collection struct {
	provider *Provider
	name     string
}

// New creates the client and checks the connection.
func New(ctx context.Context, cfg Config) (*Provider, error) {
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = defaultConnectTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Address,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: dialTimeout,
	})
	ping := func() error {
		return client.Ping(ctx).Err()
	}
	if err := backoff.Retry(ping, backoff.WithContext(newConnectBackoff(cfg.ConnectTimeout), ctx)); err != nil {
		_ = client.Close()
		return nil, errors.Errorf(`cannot connect to redis "%s": %w`, cfg.Address, err)
	}
	return &Provider{client: client, ttl: cfg.TTL}, nil
}

func newConnectBackoff(timeout time.Duration) *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.RandomizationFactor = 0.2
	b.InitialInterval = 100 * time.Millisecond
	b.Multiplier = 2
	b.MaxInterval = 5 * time.Second
	b.MaxElapsedTime = timeout
	b.Reset()
	return b
}

func (p *Provider) Collection(name string) *Collection {
	return &Collection{provider: p, name: name}
}

func (p *Provider) Close() error {
	return p.client.Close()
}

func (c *Collection) Has(ctx context.Context, key string) (bool, error) {
	count, err := c.provider.client.Exists(ctx, c.key(key)).Result()
	if err != nil {
		return false, errors.Errorf(`cannot check key "%s": %w`, c.key(key), err)
	}
	return count > 0, nil
}

func (c *Collection) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := c.provider.client.Get(ctx, c.key(key)).Result()
	switch {
	case errors.Is(err, redis.Nil):
		return "", false, nil
	case err != nil:
		return "", false, errors.Errorf(`cannot get key "%s": %w`, c.key(key), err)
	default:
		return value, true, nil
	}
}

func (c *Collection) Set(ctx context.Context, key, value string) error {
	if err := c.provider.client.Set(ctx, c.key(key), value, c.provider.ttl).Err(); err != nil {
		return errors.Errorf(`cannot set key "%s": %w`, c.key(key), err)
	}
	return nil
}

func (c *Collection) key(key string) string {
	return c.name + ":" + key
}
