package registry_test

import (
	"context"
	"sync"
	"testing"
	"time"

	registry "github.com/krisalay/expiring-registry"
	"github.com/krisalay/expiring-registry/engine"
	"github.com/krisalay/expiring-registry/expiration"
	"github.com/krisalay/expiring-registry/types"
	"github.com/krisalay/expiring-registry/writepolicy"
)

func newBenchmarkRegistry(b *testing.B) *registry.Registry {
	mirror := NewTestMirror()

	eng := engine.NewRegistryEngine(
		expiration.FixedTTL{},
		writepolicy.NewWriteBackPolicy(mirror, 4096, nil),
		nil,
		nil,
	)

	r := registry.New(eng, time.Hour)
	b.Cleanup(r.Close)
	return r
}

//
// ================= SINGLE THREAD BENCH =================
//

func BenchmarkRegistryGetStatusHit(b *testing.B) {
	r := newBenchmarkRegistry(b)
	r.Insert(context.Background(), types.Record{ID: 1, Name: "a", Duration: 3600})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.GetStatus(1)
	}
}

func BenchmarkRegistryGetStatusMiss(b *testing.B) {
	r := newBenchmarkRegistry(b)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.GetStatus(i)
	}
}

//
// ================= WRITE BENCH =================
//

func BenchmarkRegistryInsert(b *testing.B) {
	ctx := context.Background()
	r := newBenchmarkRegistry(b)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.Insert(ctx, types.Record{ID: i, Name: "a", Duration: 3600})
	}
}

//
// ================= PARALLEL BENCH =================
//

func BenchmarkRegistryParallelGetStatus(b *testing.B) {
	ctx := context.Background()
	r := newBenchmarkRegistry(b)

	for i := 0; i < 1000; i++ {
		r.Insert(ctx, types.Record{ID: i, Name: "a", Duration: 3600})
	}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			r.GetStatus(42)
		}
	})
}

func BenchmarkRegistryListActive1k(b *testing.B) {
	ctx := context.Background()
	r := newBenchmarkRegistry(b)

	for i := 0; i < 1000; i++ {
		r.Insert(ctx, types.Record{ID: i, Name: "a", Duration: 3600})
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.ListActive()
	}
}

//
// ================= HIGH CONCURRENCY TEST =================
//

func BenchmarkRegistryReadsDuringSweep(b *testing.B) {
	ctx := context.Background()
	r := newBenchmarkRegistry(b)

	for i := 0; i < 10000; i++ {
		r.Insert(ctx, types.Record{ID: i, Name: "a", Duration: 3600})
	}

	stop := make(chan struct{})
	go func() {
		for {
			select {
			case <-stop:
				return
			default:
				r.Sweep()
			}
		}
	}()

	b.ResetTimer()

	wg := sync.WaitGroup{}
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < b.N/100; j++ {
				r.GetStatus(j % 10000)
			}
		}()
	}
	wg.Wait()
	close(stop)
}
