// Package store implements the in-process half of the cache: a bounded
// key/value map with TTL expiry, bulk age-ordered eviction, and glob-based
// invalidation.
package store

import (
	"regexp"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/templaro/hearth/internal/models"
)

// Store is a capacity-bounded in-memory map of key to serialized entry.
//
// Both bounds are soft: they are checked before each insert and a single
// sweep is run if either would be breached, with no re-check afterward, so
// one oversized insert can still push the totals over the bound. Expiry is
// lazy: an expired entry is removed only when a Get touches it or a sweep
// claims it.
//
// All methods are safe for concurrent use.
type Store struct {
	mu       sync.Mutex
	maxItems int
	maxBytes int64
	curBytes int64
	entries  map[string]*models.Entry
	metrics  *models.Metrics
	logger   *zap.Logger
}

// New creates a Store bounded by maxItems entries and maxBytes of
// approximate serialized size. Counter updates go to metrics, which the
// caller shares with the rest of the cache.
func New(maxItems int, maxBytes int64, metrics *models.Metrics, logger *zap.Logger) *Store {
	return &Store{
		maxItems: maxItems,
		maxBytes: maxBytes,
		entries:  make(map[string]*models.Entry),
		metrics:  metrics,
		logger:   logger,
	}
}

// Get returns the serialized value for key. An entry past its expiry is
// deleted on the spot and reported as a miss. Reads do not refresh
// LastAccessedAt, so a frequently read entry is still evicted by write age.
func (s *Store) Get(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		s.metrics.Misses.Inc()
		return nil, false
	}
	if e.IsExpired() {
		s.removeLocked(key, e)
		s.metrics.Misses.Inc()
		return nil, false
	}

	s.metrics.Hits.Inc()
	return e.Data, true
}

// Set inserts or overwrites key with the serialized value. When the entry
// count has reached the item bound, or the pending insert would push the
// byte total over the memory bound, a sweep runs first.
func (s *Store) Set(key string, data []byte, ttl time.Duration) {
	e := models.NewEntry(data, ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.entries) >= s.maxItems || s.curBytes+e.SizeBytes > s.maxBytes {
		s.evictLocked()
	}

	if old, ok := s.entries[key]; ok {
		s.curBytes -= old.SizeBytes
	}
	s.entries[key] = e
	s.curBytes += e.SizeBytes
	s.metrics.Sets.Inc()
}

// Delete removes key if present and reports whether a removal occurred.
func (s *Store) Delete(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return false
	}
	s.removeLocked(key, e)
	return true
}

// Flush removes every entry and resets all counters.
func (s *Store) Flush() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[string]*models.Entry)
	s.curBytes = 0
	s.metrics.Reset()
}

// DeletePattern removes every key matching re and returns how many were
// removed.
func (s *Store) DeletePattern(re *regexp.Regexp) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, e := range s.entries {
		if re.MatchString(key) {
			s.removeLocked(key, e)
			removed++
		}
	}
	return removed
}

// Len returns the current entry count, expired-but-untouched entries
// included.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// SizeBytes returns the approximate total serialized size of all entries.
func (s *Store) SizeBytes() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.curBytes
}

// evictLocked removes the oldest tenth of the store, minimum one entry.
// Ordering is by LastAccessedAt ascending, which reads never refresh, so
// this is write-order eviction rather than LRU.
func (s *Store) evictLocked() {
	n := len(s.entries)
	if n == 0 {
		return
	}

	removeCount := n / 10
	if removeCount < 1 {
		removeCount = 1
	}

	type aged struct {
		key string
		at  time.Time
	}
	all := make([]aged, 0, n)
	for key, e := range s.entries {
		all = append(all, aged{key: key, at: e.LastAccessedAt})
	}
	sort.Slice(all, func(i, j int) bool { return all[i].at.Before(all[j].at) })

	for _, a := range all[:removeCount] {
		s.removeLocked(a.key, s.entries[a.key])
	}
	s.metrics.Evictions.Add(int64(removeCount))

	s.logger.Debug("evicted oldest entries",
		zap.Int("removed", removeCount),
		zap.Int("remaining", len(s.entries)))
}

func (s *Store) removeLocked(key string, e *models.Entry) {
	s.curBytes -= e.SizeBytes
	delete(s.entries, key)
}
