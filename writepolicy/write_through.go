package writepolicy

import (
	"context"

	"github.com/krisalay/expiring-registry/types"
)

/*
This file implements the "write-through" policy.

Whenever the registry stores an entry, the same entry is written to the mirror
before the insert returns.

So the flow is: registry insert → mirror write (synchronous)
*/

// WriteThroughPolicy forwards every insert to the mirror synchronously.
type WriteThroughPolicy struct {

	// store is the mirror (SQL, Redis, etc.) that receives every insert.
	store types.Mirror

	metrics types.Metrics
}

/*
NewWriteThroughPolicy creates a new write-through policy.
*/
func NewWriteThroughPolicy(store types.Mirror, metrics types.Metrics) *WriteThroughPolicy {
	return &WriteThroughPolicy{store: store, metrics: nonNil(metrics)}
}

/*
OnWrite writes the entry to the mirror and waits for the result.
  - A slow mirror makes inserts slow
  - A failing mirror is logged and counted; the in-memory insert stands
*/
func (w *WriteThroughPolicy) OnWrite(ctx context.Context, ent types.Entry) {
	if err := w.store.Put(ctx, ent); err != nil {
		w.metrics.MirrorFailure()
		logger.Printf("mirror write for domain ID %d failed: %v", ent.Record.ID, err)
	}
}

// Close has nothing to release: write-through runs no background worker.
func (w *WriteThroughPolicy) Close() {}
