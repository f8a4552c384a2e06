package models

import "go.uber.org/atomic"

// Metrics holds the cache counters. All four are monotonic for the lifetime
// of the hosting process and reset only through Reset.
type Metrics struct {
	Hits      *atomic.Int64
	Misses    *atomic.Int64
	Sets      *atomic.Int64
	Evictions *atomic.Int64
}

// NewMetrics creates a zeroed Metrics instance.
func NewMetrics() *Metrics {
	return &Metrics{
		Hits:      atomic.NewInt64(0),
		Misses:    atomic.NewInt64(0),
		Sets:      atomic.NewInt64(0),
		Evictions: atomic.NewInt64(0),
	}
}

// Reset zeroes every counter.
func (m *Metrics) Reset() {
	m.Hits.Store(0)
	m.Misses.Store(0)
	m.Sets.Store(0)
	m.Evictions.Store(0)
}
