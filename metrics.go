package hearth

import "fmt"

// MetricsSnapshot is a point-in-time view of the cache counters plus the
// current local store occupancy.
type MetricsSnapshot struct {
	Hits      int64
	Misses    int64
	Sets      int64
	Evictions int64

	// HitRate is hits/(hits+misses) as a percentage with two decimals,
	// for example "66.67%". It is "0.00%" when no lookup has happened.
	HitRate string

	// Size is the current local entry count, expired-but-untouched
	// entries included.
	Size int

	// MemorySizeMB is the approximate serialized size of the local store
	// in megabytes with two decimals, for example "1.25".
	MemorySizeMB string
}

// Metrics returns a snapshot of the counters and the local store occupancy.
func (c *Cache) Metrics() MetricsSnapshot {
	hits := c.metrics.Hits.Load()
	misses := c.metrics.Misses.Load()

	rate := 0.0
	if total := hits + misses; total > 0 {
		rate = float64(hits) / float64(total) * 100
	}

	return MetricsSnapshot{
		Hits:         hits,
		Misses:       misses,
		Sets:         c.metrics.Sets.Load(),
		Evictions:    c.metrics.Evictions.Load(),
		HitRate:      fmt.Sprintf("%.2f%%", rate),
		Size:         c.local.Len(),
		MemorySizeMB: fmt.Sprintf("%.2f", float64(c.local.SizeBytes())/(1<<20)),
	}
}
