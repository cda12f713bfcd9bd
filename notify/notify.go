// This file defines the idea of a "lifecycle hook".
// The hook lets something outside the registry react when a record is inserted or reclaimed,
// without the registry knowing who is listening.

package notify

import "github.com/krisalay/expiring-registry/types"

/*
Hook is the interface for lifecycle notifications.

The registry calls it after the mapping lock has been released.
Both methods MUST be fast and non blocking: OnInsert runs on the request path
and OnExpire runs inside the reclamation tick.
*/
type Hook interface {
	OnInsert(types.Record)
	OnExpire(types.Record)
}

// EventType names what happened to a record.
type EventType string

const (
	Inserted EventType = "inserted"
	Expired  EventType = "expired"
)
