// Package etcd provides key-value collections stored in etcd under the "<collection>/<key>" keys.
package etcd

import (
	"context"

	etcd "go.etcd.io/etcd/client/v3"

	"github.com/keboola/config-features/internal/pkg/utils/errors"
)

type Provider struct {
	client *etcd.Client
}

type Collection struct {
	kv     etcd.KV
	prefix string
}

// New wraps the client, the client is usually already prefixed by a namespace, see etcdclient.New.
func New(client *etcd.Client) *Provider {
	return &Provider{client: client}
}

func (p *Provider) Collection(name string) *Collection {
	return &Collection{kv: p.client.KV, prefix: name + "/"}
}

func (c *Collection) Has(ctx context.Context, key string) (bool, error) {
	resp, err := c.kv.Get(ctx, c.prefix+key, etcd.WithCountOnly())
	if err != nil {
		return false, errors.Errorf(`cannot check key "%s": %w`, c.prefix+key, err)
	}
	return resp.Count > 0, nil
}

func (c *Collection) Get(ctx context.Context, key string) (string, bool, error) {
	resp, err := c.kv.Get(ctx, c.prefix+key)
	if err != nil {
		return "", false, errors.Errorf(`cannot get key "%s": %w`, c.prefix+key, err)
	}
	if len(resp.Kvs) == 0 {
		return "", false, nil
	}
	return string(resp.Kvs[0].Value), true, nil
}

func (c *Collection) Set(ctx context.Context, key, value string) error {
	if _, err := c.kv.Put(ctx, c.prefix+key, value); err != nil {
		return errors.Errorf(`cannot set key "%s": %w`, c.prefix+key, err)
	}
	return nil
}
