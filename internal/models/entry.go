package models

import (
	"time"
)

// Entry is a single value held by the local store. Data is the canonical
// serialized form of the value; SizeBytes is len(Data) and feeds the store's
// approximate memory accounting.
//
// LastAccessedAt is set when the entry is written and never refreshed on
// reads, so eviction ordering is by write age rather than read recency.
type Entry struct {
	Data           []byte
	SizeBytes      int64
	ExpiresAt      time.Time
	LastAccessedAt time.Time
}

// NewEntry creates an Entry that expires ttl from now.
func NewEntry(data []byte, ttl time.Duration) *Entry {
	now := time.Now()
	return &Entry{
		Data:           data,
		SizeBytes:      int64(len(data)),
		ExpiresAt:      now.Add(ttl),
		LastAccessedAt: now,
	}
}

// IsExpired checks if the entry has expired.
func (e *Entry) IsExpired() bool {
	return time.Now().After(e.ExpiresAt)
}
