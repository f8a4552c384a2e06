// Package config carries the tunables for one cache instance.
package config

import (
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/templaro/hearth/internal/adapter"
	"github.com/templaro/hearth/pkg/serialization"
)

// Named TTL presets for the template service's view families.
const (
	// DefaultTTL applies when a Set passes no explicit ttl.
	DefaultTTL = 5 * time.Minute
	// PopularTTL suits slow-moving popularity rankings.
	PopularTTL = 30 * time.Minute
	// OwnerTTL keeps per-identity views short-lived.
	OwnerTTL = time.Minute
)

// Capacity defaults for the local store.
const (
	DefaultMaxItems       = 100
	DefaultMaxMemoryBytes = 50 << 20 // 50 MB
)

// Config is the full configuration of a cache instance. Zero values are
// filled in by New; options mutate it before the instance is built.
type Config struct {
	MaxItems       int
	MaxMemoryBytes int64
	DefaultTTL     time.Duration

	// Adapter, when non-nil, wins over RedisOptions. RedisOptions, when
	// set, has a Redis adapter built from it at construction time.
	Adapter      adapter.Adapter
	RedisOptions *redis.Options

	Breaker             gobreaker.Settings
	FilterExpectedItems uint
	FilterFalsePositive float64

	Serialization SerializationConfig
	Logger        *zap.Logger
}

// SerializationConfig selects the canonical encoding for cached values.
type SerializationConfig struct {
	Encoder serialization.EncoderFactory
	Decoder serialization.DecoderFactory
}

// New returns a Config with the service defaults: JSON encoding, the 5
// minute default TTL, and the 100 item / 50 MB local bounds.
func New() (*Config, error) {
	return &Config{
		MaxItems:       DefaultMaxItems,
		MaxMemoryBytes: DefaultMaxMemoryBytes,
		DefaultTTL:     DefaultTTL,
		Serialization: SerializationConfig{
			Encoder: serialization.JsonEncoder,
			Decoder: serialization.JsonDecoder,
		},
	}, nil
}

// Validate rejects configurations the store cannot honor.
func (c *Config) Validate() error {
	if c.MaxItems <= 0 {
		return errors.New("max items must be greater than 0")
	}
	if c.MaxMemoryBytes <= 0 {
		return errors.New("max memory bytes must be greater than 0")
	}
	if c.DefaultTTL <= 0 {
		return errors.New("default ttl must be greater than 0")
	}
	if c.Serialization.Encoder == nil || c.Serialization.Decoder == nil {
		return errors.New("serialization encoder and decoder must both be set")
	}
	return nil
}
