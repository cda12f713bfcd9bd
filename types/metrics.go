package types

// This file defines how the registry reports what it is doing.

/*
Metrics is an interface that defines what the registry wants to measure.
Each method represents an event in a record's lifecycle. The registry will call these methods whenever something happens.
*/
type Metrics interface {

	// Insert is called when a new record is stored.
	Insert()

	// Conflict is called when an insert is rejected because the key is still held.
	Conflict()

	// Hit is called when a status lookup finds a live record.
	Hit()

	// Miss is called when a status lookup finds nothing, or finds an expired record.
	Miss()

	// Expire is called once per sweep with the number of entries the sweep removed.
	Expire(removed int)

	// MirrorFailure is called when the persistence mirror rejects a write.
	MirrorFailure()
}

/*
NoopMetrics is a "do nothing" implementation of Metrics.

If someone does not care about metrics,
we still want the registry to work without
if metrics != nil conditions everywhere.
*/
type NoopMetrics struct{}

func (NoopMetrics) Insert()        {}
func (NoopMetrics) Conflict()      {}
func (NoopMetrics) Hit()           {}
func (NoopMetrics) Miss()          {}
func (NoopMetrics) Expire(int)     {}
func (NoopMetrics) MirrorFailure() {}
