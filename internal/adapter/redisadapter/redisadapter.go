// Package redisadapter implements the adapter contract over Redis, with a
// circuit breaker around every call and a per-process Bloom filter that
// short-circuits lookups for keys the backend has never seen.
package redisadapter

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/templaro/hearth/internal/models"
)

const scanBatch = 512

// Config sizes the negative-lookup Bloom filter.
type Config struct {
	ExpectedItems     uint
	FalsePositiveRate float64
}

// Adapter is a Redis-backed implementation of the external adapter
// contract. The filter tracks keys written by this process; cross-process
// writes still resolve correctly because an unseen key falls back to a
// cheap EXISTS probe before the full GET.
type Adapter struct {
	client  *redis.Client
	breaker *gobreaker.CircuitBreaker

	mu        sync.Mutex
	filter    *bloom.BloomFilter
	filterCfg Config

	logger *zap.Logger
}

// New builds an Adapter over opts. A clean miss is not counted as a breaker
// failure unless the caller's settings say otherwise.
func New(opts *redis.Options, settings gobreaker.Settings, filterCfg Config, logger *zap.Logger) *Adapter {
	if settings.Name == "" {
		settings.Name = "hearth-redis"
	}
	if settings.IsSuccessful == nil {
		settings.IsSuccessful = func(err error) bool {
			return err == nil || errors.Is(err, models.ErrKeyNotFound)
		}
	}
	if filterCfg.ExpectedItems == 0 {
		filterCfg.ExpectedItems = 100_000
	}
	if filterCfg.FalsePositiveRate <= 0 {
		filterCfg.FalsePositiveRate = 0.01
	}

	return &Adapter{
		client:    redis.NewClient(opts),
		breaker:   gobreaker.NewCircuitBreaker(settings),
		filter:    bloom.NewWithEstimates(filterCfg.ExpectedItems, filterCfg.FalsePositiveRate),
		filterCfg: filterCfg,
		logger:    logger,
	}
}

// Get fetches key from Redis. Returns models.ErrKeyNotFound for a clean
// miss.
func (a *Adapter) Get(ctx context.Context, key string) ([]byte, error) {
	if !a.seen(key) {
		res, err := a.breaker.Execute(func() (any, error) {
			return a.client.Exists(ctx, key).Result()
		})
		if err != nil {
			return nil, fmt.Errorf("redis exists failed: %w", err)
		}
		if res.(int64) == 0 {
			return nil, models.ErrKeyNotFound
		}
		// A key written by another process; remember it.
		a.add(key)
	}

	res, err := a.breaker.Execute(func() (any, error) {
		data, err := a.client.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil, models.ErrKeyNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("redis get failed: %w", err)
		}
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return res.([]byte), nil
}

// Set writes key to Redis with the given ttl.
func (a *Adapter) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	_, err := a.breaker.Execute(func() (any, error) {
		if err := a.client.Set(ctx, key, data, ttl).Err(); err != nil {
			return nil, fmt.Errorf("redis set failed: %w", err)
		}
		return nil, nil
	})
	if err != nil {
		return err
	}
	a.add(key)
	return nil
}

// Del removes key and reports whether it existed.
func (a *Adapter) Del(ctx context.Context, key string) (bool, error) {
	res, err := a.breaker.Execute(func() (any, error) {
		n, err := a.client.Del(ctx, key).Result()
		if err != nil {
			return nil, fmt.Errorf("redis del failed: %w", err)
		}
		return n, nil
	})
	if err != nil {
		return false, err
	}
	// The filter cannot forget a key; stale positives only cost a GET.
	return res.(int64) > 0, nil
}

// Clear bulk-deletes every key matching the glob pattern via SCAN batches.
// Clearing everything also rebuilds the filter.
func (a *Adapter) Clear(ctx context.Context, pattern string) error {
	_, err := a.breaker.Execute(func() (any, error) {
		var cursor uint64
		for {
			keys, next, err := a.client.Scan(ctx, cursor, pattern, scanBatch).Result()
			if err != nil {
				return nil, fmt.Errorf("redis scan failed: %w", err)
			}
			if len(keys) > 0 {
				if err := a.client.Del(ctx, keys...).Err(); err != nil {
					return nil, fmt.Errorf("redis del failed: %w", err)
				}
			}
			cursor = next
			if cursor == 0 {
				return nil, nil
			}
		}
	})
	if err != nil {
		return err
	}

	if pattern == "*" {
		a.mu.Lock()
		a.filter = bloom.NewWithEstimates(a.filterCfg.ExpectedItems, a.filterCfg.FalsePositiveRate)
		a.mu.Unlock()
		a.logger.Debug("rebuilt negative-lookup filter after full clear")
	}
	return nil
}

// Ping reports whether Redis is reachable.
func (a *Adapter) Ping(ctx context.Context) error {
	return a.client.Ping(ctx).Err()
}

// Close releases the Redis connection.
func (a *Adapter) Close() error {
	return a.client.Close()
}

func (a *Adapter) seen(key string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.filter.TestString(key)
}

func (a *Adapter) add(key string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.filter.AddString(key)
}
