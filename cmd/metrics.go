package main

import (
	"fmt"
	"sync/atomic"
)

// ================= METRICS =================

type Metrics struct {
	inserts        atomic.Int64
	conflicts      atomic.Int64
	hits           atomic.Int64
	misses         atomic.Int64
	expired        atomic.Int64
	sweeps         atomic.Int64
	mirrorFailures atomic.Int64
}

func (m *Metrics) Insert()        { m.inserts.Add(1) }
func (m *Metrics) Conflict()      { m.conflicts.Add(1) }
func (m *Metrics) Hit()           { m.hits.Add(1) }
func (m *Metrics) Miss()          { m.misses.Add(1) }
func (m *Metrics) MirrorFailure() { m.mirrorFailures.Add(1) }

func (m *Metrics) Expire(removed int) {
	m.sweeps.Add(1)
	m.expired.Add(int64(removed))
}

// Snapshot is what GET /stats returns.
type Snapshot struct {
	Inserts        int64 `json:"inserts"`
	Conflicts      int64 `json:"conflicts"`
	Hits           int64 `json:"hits"`
	Misses         int64 `json:"misses"`
	Expired        int64 `json:"expired"`
	Sweeps         int64 `json:"sweeps"`
	MirrorFailures int64 `json:"mirror_failures"`
	Entries        int   `json:"entries"`
}

func (m *Metrics) Snapshot(entries int) Snapshot {
	return Snapshot{
		Inserts:        m.inserts.Load(),
		Conflicts:      m.conflicts.Load(),
		Hits:           m.hits.Load(),
		Misses:         m.misses.Load(),
		Expired:        m.expired.Load(),
		Sweeps:         m.sweeps.Load(),
		MirrorFailures: m.mirrorFailures.Load(),
		Entries:        entries,
	}
}

func (s Snapshot) Print() {
	fmt.Println("\n==================== METRICS ====================")
	fmt.Printf("INSERTS         : %d\n", s.Inserts)
	fmt.Printf("CONFLICTS       : %d\n", s.Conflicts)
	fmt.Printf("HITS            : %d\n", s.Hits)
	fmt.Printf("MISSES          : %d\n", s.Misses)
	fmt.Printf("EXPIRED         : %d\n", s.Expired)
	fmt.Printf("SWEEPS          : %d\n", s.Sweeps)
	fmt.Printf("MIRROR FAILURES : %d\n", s.MirrorFailures)
	fmt.Printf("ENTRIES         : %d\n", s.Entries)
}
