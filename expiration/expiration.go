// This file defines how registry entries expire over time.

package expiration

import (
	"time"

	"github.com/krisalay/expiring-registry/types"
)

/*
Strategy is the interface that all lifetime rules must follow. The registry asks the strategy
every time it needs to know whether an entry is still alive, so readers and the sweep
always agree on what "expired" means.
*/
type Strategy interface {

	// IsExpired reports whether the entry's lifetime has elapsed at now.
	IsExpired(types.Entry, time.Time) bool

	// Remaining returns how much lifetime the entry has left at now, never negative.
	Remaining(types.Entry, time.Time) time.Duration
}
