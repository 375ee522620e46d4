// Package memory provides in-memory key-value collections backed by a ristretto cache.
package memory

import (
	"context"

	"github.com/c2h5oh/datasize"
	"github.com/dgraph-io/ristretto/v2"

	"github.com/keboola/config-features/internal/pkg/utils/errors"
)

const (
	DefaultMaxSize = 64 * datasize.MB
	numCounters    = 100_000
	bufferItems    = 64
)

type Config struct {
	MaxSize datasize.ByteSize `configKey:"maxSize" configUsage:"Maximum size of the in-memory store, for example 64MB." validate:"required"`
}

func NewConfig() Config {
	return Config{MaxSize: DefaultMaxSize}
}

type Provider struct {
	cache *ristretto.Cache[string, string]
}

type Collection struct {
	provider *Provider
	name     string
}

func New(cfg Config) (*Provider, error) {
	cache, err := ristretto.NewCache(&ristretto.Config[string, string]{
		NumCounters: numCounters,
		MaxCost:     int64(cfg.MaxSize.Bytes()),
		BufferItems: bufferItems,
	})
	if err != nil {
		return nil, errors.Errorf("cannot create memory store: %w", err)
	}
	return &Provider{cache: cache}, nil
}

func (p *Provider) Collection(name string) *Collection {
	return &Collection{provider: p, name: name}
}

func (p *Provider) Close() {
	p.cache.Close()
}

func (c *Collection) Has(ctx context.Context, key string) (bool, error) {
	_, found, err := c.Get(ctx, key)
	return found, err
}

func (c *Collection) Get(_ context.Context, key string) (string, bool, error) {
	value, found := c.provider.cache.Get(c.key(key))
	return value, found, nil
}

// Set stores the value, the value is readable when the method returns.
func (c *Collection) Set(_ context.Context, key, value string) error {
	if !c.provider.cache.Set(c.key(key), value, int64(len(value))) {
		return errors.Errorf(`value "%s" was dropped by the memory store`, c.key(key))
	}
	c.provider.cache.Wait()
	return nil
}

func (c *Collection) key(key string) string {
	return c.name + ":" + key
}
