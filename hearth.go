// Package hearth is the response cache for the templaro template service: a
// TTL-bounded, capacity-bounded in-process store with an optional Redis
// backend, pattern-based bulk invalidation, hit/miss metrics, and a generic
// memoization wrapper for request handlers.
//
// A backend failure is never surfaced to the caller as a hard error; the
// worst observable effect of any failure in this package is a cache miss.
package hearth

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/templaro/hearth/internal/adapter"
	"github.com/templaro/hearth/internal/adapter/redisadapter"
	"github.com/templaro/hearth/internal/config"
	"github.com/templaro/hearth/internal/glob"
	"github.com/templaro/hearth/internal/models"
	"github.com/templaro/hearth/internal/store"
	"github.com/templaro/hearth/pkg/serialization"
)

// Named TTL presets for the view families the service caches.
const (
	DefaultTTL = config.DefaultTTL
	PopularTTL = config.PopularTTL
	OwnerTTL   = config.OwnerTTL
)

// Adapter is the contract an external backend must satisfy to be plugged in
// via WithAdapter. See the interface docs for the failure semantics.
type Adapter = adapter.Adapter

// Option configures a Cache at construction time.
type Option func(*config.Config) error

// WithLogger sets a custom logger.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *config.Config) error {
		if logger != nil {
			cfg.Logger = logger
		}
		return nil
	}
}

// WithMaxItems bounds how many entries the local store holds.
func WithMaxItems(n int) Option {
	return func(cfg *config.Config) error {
		if n <= 0 {
			return errors.New("max items must be greater than 0")
		}
		cfg.MaxItems = n
		return nil
	}
}

// WithMaxMemory bounds the approximate serialized size of the local store,
// in bytes.
func WithMaxMemory(n int64) Option {
	return func(cfg *config.Config) error {
		if n <= 0 {
			return errors.New("max memory must be greater than 0")
		}
		cfg.MaxMemoryBytes = n
		return nil
	}
}

// WithDefaultTTL sets the ttl used when Set passes none.
func WithDefaultTTL(ttl time.Duration) Option {
	return func(cfg *config.Config) error {
		if ttl <= 0 {
			return errors.New("default ttl must be greater than 0")
		}
		cfg.DefaultTTL = ttl
		return nil
	}
}

// WithSerializer selects the canonical encoding: "json" or "gob".
func WithSerializer(serializer string) Option {
	return func(cfg *config.Config) error {
		switch serializer {
		case serialization.JSONType:
			cfg.Serialization.Encoder = serialization.JsonEncoder
			cfg.Serialization.Decoder = serialization.JsonDecoder
		case serialization.GobType:
			cfg.Serialization.Encoder = serialization.GobEncoder
			cfg.Serialization.Decoder = serialization.GobDecoder
		default:
			return fmt.Errorf("unsupported serialization type: %s", serializer)
		}
		return nil
	}
}

// WithRedis enables the hybrid mode backed by a Redis adapter built from
// opts. If Redis is unreachable at construction, the cache logs it and runs
// local-only for the process lifetime.
func WithRedis(opts *redis.Options) Option {
	return func(cfg *config.Config) error {
		if opts == nil {
			return errors.New("redis options must not be nil")
		}
		cfg.RedisOptions = opts
		return nil
	}
}

// WithAdapter injects a custom external backend. Takes precedence over
// WithRedis.
func WithAdapter(a Adapter) Option {
	return func(cfg *config.Config) error {
		if a == nil {
			return errors.New("adapter must not be nil")
		}
		cfg.Adapter = a
		return nil
	}
}

// WithBreakerSettings tunes the circuit breaker the Redis adapter wraps
// around every backend call.
func WithBreakerSettings(settings gobreaker.Settings) Option {
	return func(cfg *config.Config) error {
		cfg.Breaker = settings
		return nil
	}
}

// WithFilterEstimates sizes the Redis adapter's negative-lookup filter.
func WithFilterEstimates(expectedItems uint, falsePositiveRate float64) Option {
	return func(cfg *config.Config) error {
		if falsePositiveRate <= 0 || falsePositiveRate >= 1 {
			return errors.New("false positive rate must be in (0, 1)")
		}
		cfg.FilterExpectedItems = expectedItems
		cfg.FilterFalsePositive = falsePositiveRate
		return nil
	}
}

// Cache is one process-wide response cache. Construct it once at process
// start and pass the handle to every call site; its metrics and capacity
// accounting are scoped to its lifetime.
type Cache struct {
	cfg     *config.Config
	local   *store.Store
	remote  adapter.Adapter // nil when running local-only
	metrics *models.Metrics
	tracer  trace.Tracer
	logger  *zap.Logger
}

// New builds a Cache. The backend mode is decided here, once: when an
// adapter is configured and reachable the cache runs with remote fallback,
// otherwise it runs local-only. An unreachable backend is logged, never
// returned as an error.
func New(ctx context.Context, opts ...Option) (*Cache, error) {
	cfg, err := config.New()
	if err != nil {
		return nil, fmt.Errorf("failed to create config: %w", err)
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if cfg.Logger == nil {
		logger, err := zap.NewProduction()
		if err != nil {
			return nil, fmt.Errorf("failed to initialize default logger: %w", err)
		}
		cfg.Logger = logger
	}

	metrics := models.NewMetrics()
	c := &Cache{
		cfg:     cfg,
		local:   store.New(cfg.MaxItems, cfg.MaxMemoryBytes, metrics, cfg.Logger),
		metrics: metrics,
		tracer:  otel.Tracer("hearth"),
		logger:  cfg.Logger,
	}

	remote := cfg.Adapter
	if remote == nil && cfg.RedisOptions != nil {
		remote = redisadapter.New(cfg.RedisOptions, cfg.Breaker, redisadapter.Config{
			ExpectedItems:     cfg.FilterExpectedItems,
			FalsePositiveRate: cfg.FilterFalsePositive,
		}, cfg.Logger)
	}
	if remote != nil {
		if err := remote.Ping(ctx); err != nil {
			c.logger.Warn("cache backend unreachable, running local-only for this process",
				zap.Error(err))
		} else {
			c.remote = remote
		}
	}

	return c, nil
}

// Get looks up key and decodes the cached value into value, which must be a
// pointer. The second return reports presence; the error is non-nil only
// when a present value cannot be decoded.
//
// In hybrid mode the backend is consulted first; a backend failure is
// logged and the local store answers instead.
func (c *Cache) Get(ctx context.Context, key string, value any) (bool, error) {
	ctx, span := c.tracer.Start(ctx, "hearth.Get", trace.WithAttributes(attribute.String("key", key)))
	defer span.End()

	if c.remote != nil {
		data, err := c.remote.Get(ctx, key)
		switch {
		case err == nil:
			c.metrics.Hits.Inc()
			return true, c.decode(key, data, value)
		case errors.Is(err, models.ErrKeyNotFound):
			// Clean miss; the local store has the last word.
		default:
			c.logger.Warn("backend get failed, falling back to local store",
				zap.String("key", key), zap.Error(err))
		}
	}

	data, ok := c.local.Get(key)
	if !ok {
		return false, nil
	}
	return true, c.decode(key, data, value)
}

// Set stores value under key. When no ttl is passed, the configured default
// applies. The value is serialized once; the encoded length is the entry's
// approximate size. In hybrid mode the backend write is best-effort and the
// local store is always written, so a later backend failure still finds a
// warm copy.
func (c *Cache) Set(ctx context.Context, key string, value any, ttl ...time.Duration) error {
	ctx, span := c.tracer.Start(ctx, "hearth.Set", trace.WithAttributes(attribute.String("key", key)))
	defer span.End()

	if key == "" {
		return errors.New("key cannot be empty")
	}

	expiry := c.cfg.DefaultTTL
	if len(ttl) > 0 && ttl[0] > 0 {
		expiry = ttl[0]
	}

	buf := bytes.Buffer{}
	if err := c.cfg.Serialization.Encoder(&buf).Encode(value); err != nil {
		c.logger.Error("failed to encode value", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("failed to encode value for key %s: %w", key, err)
	}
	data := buf.Bytes()

	if c.remote != nil {
		if err := c.remote.Set(ctx, key, data, expiry); err != nil {
			c.logger.Warn("backend set failed, keeping local copy only",
				zap.String("key", key), zap.Error(err))
		}
	}

	c.local.Set(key, data, expiry)
	return nil
}

// Delete removes key and reports whether any copy existed.
func (c *Cache) Delete(ctx context.Context, key string) bool {
	ctx, span := c.tracer.Start(ctx, "hearth.Delete", trace.WithAttributes(attribute.String("key", key)))
	defer span.End()

	removed := c.local.Delete(key)

	if c.remote != nil {
		ok, err := c.remote.Del(ctx, key)
		if err != nil {
			c.logger.Warn("backend delete failed",
				zap.String("key", key), zap.Error(err))
		} else {
			removed = removed || ok
		}
	}

	return removed
}

// Clear removes every entry, local and backend, and zeroes all counters.
// A backend failure is logged; local cleanup proceeds regardless.
func (c *Cache) Clear(ctx context.Context) {
	ctx, span := c.tracer.Start(ctx, "hearth.Clear")
	defer span.End()

	if c.remote != nil {
		if err := c.remote.Clear(ctx, "*"); err != nil {
			c.logger.Warn("backend clear failed", zap.Error(err))
		}
	}

	c.local.Flush()
}

// ClearPattern removes every local key matching the shell-glob pattern and
// forwards the same pattern to the backend for its own bulk deletion. It
// returns how many local keys were removed; the error is non-nil only for a
// pattern that does not compile. See internal/glob for the supported
// syntax and its limits.
func (c *Cache) ClearPattern(ctx context.Context, pattern string) (int, error) {
	ctx, span := c.tracer.Start(ctx, "hearth.ClearPattern", trace.WithAttributes(attribute.String("pattern", pattern)))
	defer span.End()

	re, err := glob.Translate(pattern)
	if err != nil {
		return 0, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}

	removed := c.local.DeletePattern(re)

	if c.remote != nil {
		if err := c.remote.Clear(ctx, pattern); err != nil {
			c.logger.Warn("backend pattern clear failed",
				zap.String("pattern", pattern), zap.Error(err))
		}
	}

	return removed, nil
}

// ResetMetrics zeroes the counters without touching the stored entries.
func (c *Cache) ResetMetrics() {
	c.metrics.Reset()
}

// Close releases the backend connection, if any.
func (c *Cache) Close() error {
	if c.remote != nil {
		return c.remote.Close()
	}
	return nil
}

func (c *Cache) decode(key string, data []byte, value any) error {
	if err := c.cfg.Serialization.Decoder(bytes.NewReader(data)).Decode(value); err != nil {
		c.logger.Error("failed to decode cached value", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("failed to decode value for key %s: %w", key, err)
	}
	return nil
}
