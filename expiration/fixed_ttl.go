package expiration

import (
	"time"

	"github.com/krisalay/expiring-registry/types"
)

/*
FixedTTL implements "expire after write": an entry lives for exactly its
record's Duration, counted from InsertedAt. Reads never extend it.

An entry is alive while now - InsertedAt < Duration. A zero Duration is
therefore expired from the moment it is inserted.
*/
type FixedTTL struct{}

// IsExpired checks whether the entry is expired at this moment.
func (FixedTTL) IsExpired(ent types.Entry, now time.Time) bool {
	return now.Sub(ent.InsertedAt) >= ent.Record.TTL()
}

/*
Remaining computes (InsertedAt + Duration) - now.

The result is clamped at zero so a caller that checked IsExpired with an
earlier now can never observe a negative lifetime.
*/
func (FixedTTL) Remaining(ent types.Entry, now time.Time) time.Duration {
	d := ent.InsertedAt.Add(ent.Record.TTL()).Sub(now)
	if d < 0 {
		return 0
	}
	return d
}

// Seconds truncates d to whole seconds. Sub-second remainders never round up.
func Seconds(d time.Duration) uint64 {
	if d <= 0 {
		return 0
	}
	return uint64(d / time.Second)
}
