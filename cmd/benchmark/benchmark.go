package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	registry "github.com/krisalay/expiring-registry"
	"github.com/krisalay/expiring-registry/engine"
	"github.com/krisalay/expiring-registry/expiration"
	"github.com/krisalay/expiring-registry/types"
	"github.com/krisalay/expiring-registry/writepolicy"
)

// ================= MIRROR =================

type InMemoryMirror struct {
	mu   sync.Mutex
	data map[int]types.Entry
}

func NewInMemoryMirror() *InMemoryMirror {
	return &InMemoryMirror{data: make(map[int]types.Entry)}
}

func (m *InMemoryMirror) Put(ctx context.Context, ent types.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[ent.Record.ID] = ent
	return nil
}

// ================= BENCHMARK =================

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	const (
		preloadKeys = 100000
		goroutines  = 200
		opsPerG     = 5000
		sweepEvery  = 10 * time.Millisecond
	)

	fmt.Println("\n================ REGISTRY LOAD BENCHMARK =================")
	fmt.Println("CONFIG")
	fmt.Println("---------------------------------")
	fmt.Println("Preload Keys :", preloadKeys)
	fmt.Println("Goroutines   :", goroutines)
	fmt.Println("Ops/Goroutine:", opsPerG)
	fmt.Println("Sweep Every  :", sweepEvery)
	fmt.Println("---------------------------------")

	eng := engine.NewRegistryEngine(
		expiration.FixedTTL{},
		writepolicy.NewWriteBackPolicy(NewInMemoryMirror(), 4096, nil),
		nil,
		nil,
	)
	reg := registry.New(eng, sweepEvery)
	defer reg.Close()

	// Half the preload expires after one second, so the loop has real work to do.
	fmt.Println("Preloading registry...")
	for i := 0; i < preloadKeys; i++ {
		duration := 3600
		if i%2 == 0 {
			duration = 1
		}
		reg.Insert(ctx, types.Record{ID: i, Name: fmt.Sprintf("domain-%d", i), Duration: duration})
	}
	fmt.Println("Preload complete.")

	go reg.Run(ctx)

	fmt.Println("Running concurrency benchmark...")
	start := time.Now()

	wg := sync.WaitGroup{}
	wg.Add(goroutines)

	for i := 0; i < goroutines; i++ {
		go func(id int) {
			defer wg.Done()
			for j := 0; j < opsPerG; j++ {
				switch {
				case j%1000 == 1:
					reg.ListActive()
				case j%10 == 0:
					reg.Insert(ctx, types.Record{ID: preloadKeys + id*opsPerG + j, Name: "bench", Duration: 5})
				default:
					reg.GetStatus(j % preloadKeys)
				}
			}
		}(i)
	}

	wg.Wait()

	duration := time.Since(start)
	totalOps := goroutines * opsPerG

	fmt.Println("\n================ RESULTS =================")
	fmt.Printf("Total Operations : %d\n", totalOps)
	fmt.Printf("Total Time       : %v\n", duration)
	fmt.Printf("Throughput       : %.2f ops/sec\n", float64(totalOps)/duration.Seconds())
	fmt.Printf("Entries Left     : %d\n", reg.Len())
	fmt.Println("=========================================")
}
