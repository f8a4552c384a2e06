package hearth

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Cached wraps a producer with read-through caching. The returned function
// derives a key from its argument via keyFn, answers from the cache when it
// can, and otherwise invokes fn and stores the result under that key for
// ttl (the cache's default when none is passed).
//
// A failed producer call is returned to the caller but never stored, so a
// transient failure is not served back on the next call. Concurrent calls
// for the same key are collapsed into a single producer invocation.
func Cached[P any, R any](c *Cache, fn func(context.Context, P) (R, error), keyFn func(P) string, ttl ...time.Duration) func(context.Context, P) (R, error) {
	sf := &singleflight.Group{}

	return func(ctx context.Context, param P) (R, error) {
		key := keyFn(param)

		var cached R
		found, err := c.Get(ctx, key, &cached)
		if err != nil {
			// A present but undecodable value; recompute below.
			c.logger.Warn("discarding undecodable cached result",
				zap.String("key", key), zap.Error(err))
		} else if found {
			return cached, nil
		}

		v, err, _ := sf.Do(key, func() (any, error) {
			result, err := fn(ctx, param)
			if err != nil {
				return result, err
			}
			if setErr := c.Set(ctx, key, result, ttl...); setErr != nil {
				c.logger.Warn("failed to store produced result",
					zap.String("key", key), zap.Error(setErr))
			}
			return result, nil
		})

		result, _ := v.(R)
		return result, err
	}
}
