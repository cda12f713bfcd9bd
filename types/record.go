package types

import (
	"math"
	"time"
)

// Bounds on a record's fields. IDs and durations are 32-bit on the wire.
const (
	MinID       = math.MinInt32
	MaxID       = math.MaxInt32
	MaxDuration = math.MaxInt32
)

// Record is a named registration with a lifetime in seconds.
// It is immutable once inserted.
type Record struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Duration int    `json:"duration"`
}

// Validate reports why r can never be stored, or nil.
func (r Record) Validate() error {
	switch {
	case r.ID < MinID || r.ID > MaxID:
		return InvalidRecord(r.ID, "id out of range")
	case r.Duration < 0:
		return InvalidRecord(r.ID, "duration must not be negative")
	case r.Duration > MaxDuration:
		return InvalidRecord(r.ID, "duration out of range")
	}
	return nil
}

// TTL returns the record's lifetime as a time.Duration.
func (r Record) TTL() time.Duration {
	return time.Duration(r.Duration) * time.Second
}

/*
Entry is a Record plus the moment it was inserted.

InsertedAt comes from time.Now(), so it carries the monotonic clock reading
and elapsed-time comparisons are not affected by wall-clock jumps.

Entries are owned by the registry and only ever leave it by value.
*/
type Entry struct {
	Record     Record
	InsertedAt time.Time
}

// Status is a live record together with its remaining lifetime.
type Status struct {
	ID               int    `json:"id"`
	Name             string `json:"name"`
	Duration         int    `json:"duration"`
	RemainingSeconds uint64 `json:"remaining_seconds"`
}
