package writepolicy

import (
	"context"
	"sync"

	"github.com/krisalay/expiring-registry/types"
)

// This file implements the "write-back" policy.

// writeReq represents one pending mirror write.
type writeReq struct {
	ctx context.Context
	ent types.Entry
}

/*
WriteBackPolicy manages asynchronous writes to the mirror.
*/
type WriteBackPolicy struct {

	// store is the mirror that eventually receives every queued entry.
	store types.Mirror

	metrics types.Metrics

	// ch is a buffered channel that holds pending writes.
	// Bursts of inserts queue here instead of waiting for the mirror.
	ch chan writeReq

	// mu guards closed so OnWrite never sends on a closed channel.
	mu     sync.RWMutex
	closed bool

	// wg is used to wait for the worker to finish during shutdown.
	wg sync.WaitGroup
}

// NewWriteBackPolicy creates a new write-back policy and starts its worker.
func NewWriteBackPolicy(store types.Mirror, buffer int, metrics types.Metrics) *WriteBackPolicy {
	if buffer <= 0 {
		buffer = 1
	}
	w := &WriteBackPolicy{
		store:   store,
		metrics: nonNil(metrics),
		ch:      make(chan writeReq, buffer),
	}

	w.wg.Add(1)
	go w.worker()

	return w
}

/*
OnWrite queues the entry for the worker.

The request context is detached from cancellation: the HTTP request that
triggered the insert has usually finished by the time the worker runs.
If the queue is full the write is dropped and counted as a mirror failure.
*/
func (w *WriteBackPolicy) OnWrite(ctx context.Context, ent types.Entry) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.closed {
		w.metrics.MirrorFailure()
		return
	}

	select {
	case w.ch <- writeReq{context.WithoutCancel(ctx), ent}:
	default:
		w.metrics.MirrorFailure()
		logger.Printf("write-back queue full, dropping domain ID %d", ent.Record.ID)
	}
}

/*
worker drains the queue and writes each entry to the mirror.
This is where eventual consistency happens.
*/
func (w *WriteBackPolicy) worker() {
	defer w.wg.Done()

	for req := range w.ch {
		if err := w.store.Put(req.ctx, req.ent); err != nil {
			w.metrics.MirrorFailure()
			logger.Printf("mirror write for domain ID %d failed: %v", req.ent.Record.ID, err)
		}
	}
}

/*
Close shuts down the write-back policy gracefully.
------------------
1. Stop accepting writes and close the channel
2. Wait for the worker to flush what is already queued

Close is safe to call more than once.
*/
func (w *WriteBackPolicy) Close() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	close(w.ch)
	w.mu.Unlock()

	w.wg.Wait()
}
