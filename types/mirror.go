package types

import "context"

// Mirror is the contract between the registry and a persistence backend.
type Mirror interface {

	/*
		Put records a freshly inserted entry in the backing store.

		The registry never reads the mirror back. It is a write-only
		side channel: a failed Put is reported to the write policy but
		never undoes the in-memory insert.
	*/
	Put(ctx context.Context, ent Entry) error
}
