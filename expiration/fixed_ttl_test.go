package expiration_test

import (
	"testing"
	"time"

	"github.com/krisalay/expiring-registry/expiration"
	"github.com/krisalay/expiring-registry/types"
)

func entry(duration int, at time.Time) types.Entry {
	return types.Entry{
		Record:     types.Record{ID: 1, Name: "a", Duration: duration},
		InsertedAt: at,
	}
}

func TestFixedTTLBoundary(t *testing.T) {
	var s expiration.FixedTTL
	start := time.Unix(1_700_000_000, 0)
	ent := entry(2, start)

	if s.IsExpired(ent, start.Add(1999*time.Millisecond)) {
		t.Fatalf("expected entry alive just before its lifetime ends")
	}
	if !s.IsExpired(ent, start.Add(2*time.Second)) {
		t.Fatalf("expected entry expired exactly at its lifetime")
	}
}

func TestFixedTTLZeroDurationIsBornExpired(t *testing.T) {
	var s expiration.FixedTTL
	start := time.Unix(1_700_000_000, 0)

	if !s.IsExpired(entry(0, start), start) {
		t.Fatalf("expected zero duration entry to be expired at insert time")
	}
}

func TestFixedTTLRemainingClampsAndTruncates(t *testing.T) {
	var s expiration.FixedTTL
	start := time.Unix(1_700_000_000, 0)
	ent := entry(5, start)

	if got := expiration.Seconds(s.Remaining(ent, start)); got != 5 {
		t.Fatalf("expected 5 seconds at insert, got %d", got)
	}
	if got := expiration.Seconds(s.Remaining(ent, start.Add(100*time.Millisecond))); got != 4 {
		t.Fatalf("expected 4.9s to truncate to 4, got %d", got)
	}
	if got := s.Remaining(ent, start.Add(time.Minute)); got != 0 {
		t.Fatalf("expected remaining to clamp at zero, got %v", got)
	}
}

func TestFixedTTLReadsDoNotExtendLifetime(t *testing.T) {
	var s expiration.FixedTTL
	start := time.Unix(1_700_000_000, 0)
	ent := entry(3, start)

	prev := s.Remaining(ent, start)
	for i := 1; i <= 4; i++ {
		cur := s.Remaining(ent, start.Add(time.Duration(i)*time.Second))
		if cur > prev {
			t.Fatalf("remaining increased from %v to %v", prev, cur)
		}
		prev = cur
	}
}
