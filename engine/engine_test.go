package engine_test

import (
	"context"
	"testing"
	"time"

	"github.com/krisalay/expiring-registry/engine"
	"github.com/krisalay/expiring-registry/expiration"
	"github.com/krisalay/expiring-registry/types"
)

type step struct{ calls *[]string }

func (s step) OnWrite(ctx context.Context, ent types.Entry) { *s.calls = append(*s.calls, "write") }
func (s step) Close()                                       { *s.calls = append(*s.calls, "close") }
func (s step) OnInsert(types.Record)                        { *s.calls = append(*s.calls, "insert") }
func (s step) OnExpire(types.Record)                        { *s.calls = append(*s.calls, "expire") }

type expireCounter struct {
	types.NoopMetrics
	removed int
}

func (m *expireCounter) Expire(n int) { m.removed += n }

func TestNewRegistryEngineDefaults(t *testing.T) {
	e := engine.NewRegistryEngine(nil, nil, nil, nil)

	if _, ok := e.Expiration.(expiration.FixedTTL); !ok {
		t.Fatalf("expected FixedTTL default, got %T", e.Expiration)
	}
	if e.Metrics == nil || e.Clock == nil {
		t.Fatalf("expected metrics and clock defaults")
	}

	// No write policy and no hook must be safe.
	e.OnInsert(context.Background(), types.Entry{})
	e.OnExpire([]types.Record{{ID: 1}})
	e.Close()
}

func TestOnInsertWritesBeforeNotifying(t *testing.T) {
	var calls []string
	s := step{calls: &calls}
	e := engine.NewRegistryEngine(nil, s, s, nil)

	e.OnInsert(context.Background(), types.Entry{Record: types.Record{ID: 1}})
	e.Close()

	want := []string{"write", "insert", "close"}
	if len(calls) != len(want) {
		t.Fatalf("expected %v, got %v", want, calls)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, calls)
		}
	}
}

func TestOnExpireReportsEveryRemovedRecord(t *testing.T) {
	var calls []string
	metrics := &expireCounter{}
	e := engine.NewRegistryEngine(nil, nil, step{calls: &calls}, metrics)

	e.OnExpire([]types.Record{{ID: 1}, {ID: 2}, {ID: 3}})
	e.OnExpire(nil)

	if metrics.removed != 3 {
		t.Fatalf("expected 3 removals counted, got %d", metrics.removed)
	}
	if len(calls) != 3 {
		t.Fatalf("expected 3 expire notifications, got %v", calls)
	}
}

func TestEngineUsesInjectedClock(t *testing.T) {
	e := engine.NewRegistryEngine(nil, nil, nil, nil)
	fixed := time.Unix(42, 0)
	e.Clock = func() time.Time { return fixed }

	ent := types.Entry{Record: types.Record{Duration: 10}, InsertedAt: fixed.Add(-4 * time.Second)}
	if got := e.Remaining(ent, e.Now()); got != 6*time.Second {
		t.Fatalf("expected 6s remaining, got %v", got)
	}
	if e.IsExpired(ent, e.Now()) {
		t.Fatalf("expected entry alive")
	}
}
