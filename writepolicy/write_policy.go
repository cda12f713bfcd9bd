package writepolicy

import (
	"context"
	"log"
	"os"

	"github.com/krisalay/expiring-registry/types"
)

/*
This file defines what a "write policy" is.

A write policy decides how a freshly inserted entry reaches the persistence mirror:
- Write-through: the insert waits for the mirror
- Write-back: the mirror is updated later by a background worker
*/

/*
WritePolicy is the contract that all write policies must follow.
The registry engine does not care which policy is used. It simply calls these methods.
*/
type WritePolicy interface {

	/*
		OnWrite is called after an entry has been stored in memory.
		It must never fail the insert: mirror errors are reported through metrics and logs.
	*/
	OnWrite(ctx context.Context, ent types.Entry)

	/*
		Close is called when the registry is shutting down.
	*/
	Close()
}

var logger = log.New(os.Stderr, "writepolicy: ", log.LstdFlags)

func nonNil(m types.Metrics) types.Metrics {
	if m == nil {
		return types.NoopMetrics{}
	}
	return m
}
