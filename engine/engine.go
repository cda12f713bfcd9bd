package engine

import (
	"context"
	"time"

	"github.com/krisalay/expiring-registry/expiration"
	"github.com/krisalay/expiring-registry/notify"
	"github.com/krisalay/expiring-registry/types"
	"github.com/krisalay/expiring-registry/writepolicy"
)

/*
RegistryEngine is the "brain" of the registry.
It is responsible for the "behavior" of the registry, NOT storage.
This acts as the policy layer.

It decides:
- When an entry is expired and how much life it has left
- How inserts are propagated to the persistence mirror
- Who is told about inserts and expirations
- How metrics are recorded
- What "now" is

It does NOT:
- Store data
- Handle locking
*/
type RegistryEngine struct {

	// Expiration decides when an entry is "too old".
	// Defaults to FixedTTL: an entry lives for its record's Duration after insert.
	Expiration expiration.Strategy

	// WritePolicy decides how inserts reach the mirror.
	// If nil, records stay only in memory.
	WritePolicy writepolicy.WritePolicy

	// Hook is told about inserts and reclaimed entries.
	// If nil, nobody is notified.
	Hook notify.Hook

	// Metrics keeps track of what the registry is doing.
	Metrics types.Metrics

	// Clock returns the current time. Tests replace it to move time forward.
	Clock func() time.Time
}

/*
NewRegistryEngine creates a RegistryEngine.
*/
func NewRegistryEngine(
	exp expiration.Strategy,
	writePolicy writepolicy.WritePolicy,
	hook notify.Hook,
	metrics types.Metrics,
) *RegistryEngine {

	if exp == nil {
		exp = expiration.FixedTTL{}
	}
	if metrics == nil {
		metrics = types.NoopMetrics{}
	}

	return &RegistryEngine{
		Expiration:  exp,
		WritePolicy: writePolicy,
		Hook:        hook,
		Metrics:     metrics,
		Clock:       time.Now,
	}
}

// Now reads the engine clock.
func (e *RegistryEngine) Now() time.Time {
	return e.Clock()
}

// IsExpired delegates to the configured strategy.
func (e *RegistryEngine) IsExpired(ent types.Entry, now time.Time) bool {
	return e.Expiration.IsExpired(ent, now)
}

// Remaining delegates to the configured strategy.
func (e *RegistryEngine) Remaining(ent types.Entry, now time.Time) time.Duration {
	return e.Expiration.Remaining(ent, now)
}

/*
OnInsert is called after a new entry has been stored and the lock released.

Write propagation depends entirely on the configured WritePolicy;
the hook is told last so listeners never hear about a record before the mirror does
under write-through.
*/
func (e *RegistryEngine) OnInsert(ctx context.Context, ent types.Entry) {
	e.Metrics.Insert()

	if e.WritePolicy != nil {
		e.WritePolicy.OnWrite(ctx, ent)
	}
	if e.Hook != nil {
		e.Hook.OnInsert(ent.Record)
	}
}

/*
OnExpire is called by the sweep with every entry it removed.
*/
func (e *RegistryEngine) OnExpire(removed []types.Record) {
	e.Metrics.Expire(len(removed))

	if e.Hook == nil {
		return
	}
	for _, rec := range removed {
		e.Hook.OnExpire(rec)
	}
}

/*
Close releases the write policy.
Pending write-back writes are flushed before it returns.
*/
func (e *RegistryEngine) Close() {
	if e.WritePolicy != nil {
		e.WritePolicy.Close()
	}
}
