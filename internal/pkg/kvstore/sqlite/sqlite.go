// Package sqlite provides key-value collections stored in a SQLite table.
//
// Two drivers are available: "sqlite" (modernc.org/sqlite, pure Go) and "sqlite3" (mattn/go-sqlite3, cgo).
package sqlite

import (
	"context"
	"database/sql"

	_ "github.com/mattn/go-sqlite3" // registers the "sqlite3" driver
	_ "modernc.org/sqlite"          // registers the "sqlite" driver

	"github.com/keboola/config-features/internal/pkg/utils/errors"
)

const (
	DriverModernc = "sqlite"
	DriverCgo     = "sqlite3"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS kv_store (
	collection TEXT NOT NULL,
	key        TEXT NOT NULL,
	value      TEXT NOT NULL,
	PRIMARY KEY (collection, key)
)`

type Config struct {
	Driver string `configKey:"driver" configUsage:"SQLite driver: sqlite (pure Go) or sqlite3 (cgo)." validate:"oneof=sqlite sqlite3"`
	DSN    string `configKey:"dsn" configUsage:"SQLite data source name, for example a file path."`
}

func NewConfig() Config {
	return Config{Driver: DriverModernc, DSN: "kvstore.sqlite"}
}

type Provider struct {
	db *sql.DB
}

type Collection struct {
	db   *sql.DB
	name string
}

func New(ctx context.Context, cfg Config) (*Provider, error) {
	db, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, errors.Errorf(`cannot open sqlite database "%s": %w`, cfg.DSN, err)
	}

	// SQLite supports one writer at a time
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, createTableSQL); err != nil {
		_ = db.Close()
		return nil, errors.Errorf(`cannot create sqlite table: %w`, err)
	}
	return &Provider{db: db}, nil
}

func (p *Provider) Collection(name string) *Collection {
	return &Collection{db: p.db, name: name}
}

func (p *Provider) Close() error {
	return p.db.Close()
}

func (c *Collection) Has(ctx context.Context, key string) (bool, error) {
	var count int
	err := c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM kv_store WHERE collection = ? AND key = ?`, c.name, key).Scan(&count)
	if err != nil {
		return false, errors.Errorf(`cannot check key "%s": %w`, key, err)
	}
	return count > 0, nil
}

func (c *Collection) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := c.db.QueryRowContext(ctx, `SELECT value FROM kv_store WHERE collection = ? AND key = ?`, c.name, key).Scan(&value)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return "", false, nil
	case err != nil:
		return "", false, errors.Errorf(`cannot get key "%s": %w`, key, err)
	default:
		return value, true, nil
	}
}

func (c *Collection) Set(ctx context.Context, key, value string) error {
	_, err := c.db.ExecContext(
		ctx,
		`INSERT INTO kv_store (collection, key, value) VALUES (?, ?, ?) ON CONFLICT (collection, key) DO UPDATE SET value = excluded.value`,
		c.name, key, value,
	)
	if err != nil {
		return errors.Errorf(`cannot set key "%s": %w`, key, err)
	}
	return nil
}
