package registry

import (
	"context"
	"log"
	"os"
	"sync"
	"time"

	"github.com/krisalay/expiring-registry/engine"
	"github.com/krisalay/expiring-registry/expiration"
	"github.com/krisalay/expiring-registry/types"
)

// DefaultSweepInterval is used when New is given a non-positive interval.
const DefaultSweepInterval = time.Second

/*
Registry is the expiring registry.
It owns the key → entry mapping and connects it to:
- the engine (lifetime rules, mirror writes, hooks, metrics, clock)
- the reclamation loop (see reclaim.go)

Every access to the mapping, from foreground calls and from the sweep alike,
goes through the same mutex. Expired entries are filtered out by readers even
before the sweep has removed them.
*/
type Registry struct {
	mu      sync.Mutex
	entries map[int]types.Entry
	closed  bool

	// engine contains the "rules" of the registry.
	engine *engine.RegistryEngine

	// interval is the reclamation period used by Run.
	interval time.Duration

	logger *log.Logger
}

func New(eng *engine.RegistryEngine, interval time.Duration) *Registry {
	if eng == nil {
		eng = engine.NewRegistryEngine(nil, nil, nil, nil)
	}
	if interval <= 0 {
		interval = DefaultSweepInterval
	}

	return &Registry{
		entries:  make(map[int]types.Entry),
		engine:   eng,
		interval: interval,
		logger:   log.New(os.Stderr, "registry: ", log.LstdFlags),
	}
}

/*
Insert stores rec if its key is not held.

A key is held while it is in the mapping, even if its entry has already
expired logically; it is only freed once the sweep removes it.
Records with an out-of-range id or duration are rejected before the lock is taken.
On conflict nothing is mutated. The mirror and hook are invoked after the
lock is released.
*/
func (r *Registry) Insert(ctx context.Context, rec types.Record) (types.Record, error) {
	if err := rec.Validate(); err != nil {
		return types.Record{}, err
	}

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return types.Record{}, types.Internal("registry is closed")
	}
	if _, held := r.entries[rec.ID]; held {
		r.mu.Unlock()
		r.engine.Metrics.Conflict()
		return types.Record{}, types.AlreadyExists(rec.ID)
	}
	ent := types.Entry{Record: rec, InsertedAt: r.engine.Now()}
	r.entries[rec.ID] = ent
	r.mu.Unlock()

	r.engine.OnInsert(ctx, ent)
	return rec, nil
}

/*
ListActive returns copies of every record still alive.

now is read once, so all entries are judged against the same instant.
Order is unspecified. The mapping is not modified.
*/
func (r *Registry) ListActive() []types.Record {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.engine.Now()
	active := make([]types.Record, 0, len(r.entries))
	for _, ent := range r.entries {
		if !r.engine.IsExpired(ent, now) {
			active = append(active, ent.Record)
		}
	}
	return active
}

/*
GetStatus returns the record under id with its remaining lifetime in whole seconds.

An expired entry that has not been swept yet is reported exactly like a
missing one.
*/
func (r *Registry) GetStatus(id int) (types.Status, error) {
	r.mu.Lock()
	ent, ok := r.entries[id]
	now := r.engine.Now()
	r.mu.Unlock()

	if !ok || r.engine.IsExpired(ent, now) {
		r.engine.Metrics.Miss()
		return types.Status{}, types.NotFound(id)
	}
	r.engine.Metrics.Hit()

	return types.Status{
		ID:               ent.Record.ID,
		Name:             ent.Record.Name,
		Duration:         ent.Record.Duration,
		RemainingSeconds: expiration.Seconds(r.engine.Remaining(ent, now)),
	}, nil
}

// Len returns the raw size of the mapping, including entries that have
// expired but have not been swept yet.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

/*
Close stops accepting inserts and flushes the write policy.
Reads keep working. Close is safe to call more than once.
*/
func (r *Registry) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	r.mu.Unlock()

	r.engine.Close()
}
