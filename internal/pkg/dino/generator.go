// Package dino generates the dinosaur roar, generated roars are cached in the key-value store.
package dino

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/keboola/config-features/internal/pkg/kvstore"
	"github.com/keboola/config-features/internal/pkg/log"
	"github.com/keboola/config-features/internal/pkg/telemetry"
)

const (
	Collection       = "dino"
	KeyPrefix        = "dino_"
	DefaultDelay     = 2 * time.Second
	DefaultMaxLength = 1000
)

type Config struct {
	Cache     bool          `configKey:"cache" configUsage:"Store generated roars in the key-value store."`
	Delay     time.Duration `configKey:"delay" configUsage:"Time needed to generate a roar."`
	MaxLength int           `configKey:"maxLength" configUsage:"Maximum length of a roar, longer roars are rejected." validate:"min=1"`
}

func NewConfig() Config {
	return Config{Cache: true, Delay: DefaultDelay, MaxLength: DefaultMaxLength}
}

// RoarTooLongError is returned if the requested length exceeds Config.MaxLength.
type RoarTooLongError struct {
	Length    int
	MaxLength int
}

func (RoarTooLongError) ErrorName() string {
	return "roarTooLong"
}

func (RoarTooLongError) StatusCode() int {
	return http.StatusBadRequest
}

func (RoarTooLongError) ErrorLogEnabled() bool {
	return false
}

func (e RoarTooLongError) Error() string {
	return fmt.Sprintf(`roar length %d exceeds the maximum %d`, e.Length, e.MaxLength)
}

func (e RoarTooLongError) ErrorUserMessage() string {
	return fmt.Sprintf(`Roar length %d is too long, the maximum is %d.`, e.Length, e.MaxLength)
}

type dependencies interface {
	Clock() clockwork.Clock
	Logger() log.Logger
	Telemetry() telemetry.Telemetry
}

type Generator struct {
	clock    clockwork.Clock
	logger   log.Logger
	store    kvstore.Store
	useCache bool
	delay    time.Duration
	maxLen   int
	hits     metric.Int64Counter
	misses   metric.Int64Counter
}

func NewGenerator(d dependencies, provider kvstore.Provider, cfg Config) *Generator {
	meter := d.Telemetry().Meter()
	return &Generator{
		clock:    d.Clock(),
		logger:   d.Logger().WithComponent("dino"),
		store:    provider.Collection(Collection),
		useCache: cfg.Cache,
		delay:    cfg.Delay,
		maxLen:   cfg.MaxLength,
		hits:     telemetry.Counter(meter, "dino.roar.cache.hit", "Roars loaded from the cache."),
		misses:   telemetry.Counter(meter, "dino.roar.cache.miss", "Generated roars."),
	}
}

// Roar returns "R", the "O" repeated length times and "AR!".
// A negative length is handled as zero, a length over the maximum is rejected by RoarTooLongError.
// Cache errors are logged, the roar is generated as on a cache miss.
func (g *Generator) Roar(ctx context.Context, length int) (string, error) {
	length = max(length, 0)
	if g.maxLen > 0 && length > g.maxLen {
		return "", RoarTooLongError{Length: length, MaxLength: g.maxLen}
	}

	key := KeyPrefix + strconv.Itoa(length)
	logger := g.logger.With(attribute.String("roar.key", key))
	attrs := metric.WithAttributes(attribute.Int("roar.length", length))

	if g.useCache {
		if value, found, err := g.store.Get(ctx, key); err != nil {
			logger.Warnf(ctx, `cannot load roar from the cache: %s`, err)
		} else if found {
			g.hits.Add(ctx, 1, attrs)
			return value, nil
		}
	}

	g.misses.Add(ctx, 1, attrs)

	// Roaring takes some time
	select {
	case <-g.clock.After(g.delay):
	case <-ctx.Done():
		return "", context.Cause(ctx)
	}

	roar := "R" + strings.Repeat("O", length) + "AR!"
	if g.useCache {
		if err := g.store.Set(ctx, key, roar); err != nil {
			logger.Warnf(ctx, `cannot store roar to the cache: %s`, err)
		}
	}

	logger.Debugf(ctx, `generated roar "%s"`, key)
	return roar, nil
}
