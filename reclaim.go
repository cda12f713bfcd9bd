package registry

import (
	"context"
	"fmt"
	"time"

	"github.com/krisalay/expiring-registry/types"
)

/*
Run is the reclamation loop. Every interval it removes the entries whose
lifetime has elapsed.

Run blocks until ctx is cancelled and then returns ctx.Err(). A tick that
fails is logged and skipped; the loop carries on at the next period.
*/
func (r *Registry) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Printf("reclamation loop started, interval=%s", r.interval)

	for {
		select {
		case <-ctx.Done():
			r.logger.Printf("reclamation loop stopped: %v", ctx.Err())
			return ctx.Err()
		case <-ticker.C:
			removed, err := r.tick()
			if err != nil {
				r.logger.Printf("sweep skipped: %v", err)
				continue
			}
			r.logger.Printf("cleanup ran, removed %d expired domain(s)", removed)
		}
	}
}

// tick runs one sweep and turns a panic into an ErrInternal.
func (r *Registry) tick() (removed int, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = types.Internal(fmt.Sprintf("sweep panicked: %v", p))
		}
	}()
	return r.Sweep(), nil
}

/*
Sweep removes every expired entry and returns how many it removed.
Removal order is unspecified. Each removed ID is logged, and the hook and
metrics are told, after the lock is released.
*/
func (r *Registry) Sweep() int {
	removed := r.deleteExpired()
	for _, rec := range removed {
		r.logger.Printf("removed domain ID %d", rec.ID)
	}
	r.engine.OnExpire(removed)
	return len(removed)
}

func (r *Registry) deleteExpired() []types.Record {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.engine.Now()
	var removed []types.Record
	for id, ent := range r.entries {
		if r.engine.IsExpired(ent, now) {
			delete(r.entries, id)
			removed = append(removed, ent.Record)
		}
	}
	return removed
}
