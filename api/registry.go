package api

import (
	"context"

	"github.com/krisalay/expiring-registry/types"
)

/*
Registry defines the contract the HTTP layer needs from the expiring registry.
How entries are stored, swept, mirrored or announced is hidden behind it.
*/
type Registry interface {

	/*
		Insert stores a record under its ID.

		BEHAVIOR:
		-------------------
		1. If the ID is not held:
		   - Store the record stamped with the current time
		   - Return it unchanged

		2. If the ID is held (even by an expired record the sweep has not removed yet):
		   - Fail with types.ErrAlreadyExists
		   - Change nothing
	*/
	Insert(ctx context.Context, rec types.Record) (types.Record, error)

	/*
		ListActive returns every record whose lifetime has not elapsed.
		Order is unspecified. It never fails.
	*/
	ListActive() []types.Record

	/*
		GetStatus returns a live record with its remaining lifetime in whole seconds.

		RETURN VALUES:
		-------------------------------------------
		- Live record      : status, nil
		- Missing or expired: types.ErrNotFound (the two are indistinguishable)
	*/
	GetStatus(id int) (types.Status, error)
}
