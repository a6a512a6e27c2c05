package eventsourcing

import "time"

// Event is an immutable fact describing a single state change of an aggregate.
type Event interface {
	// AggregateID returns the id of the aggregate referenced by the event
	AggregateID() string

	// EventVersion contains the version number of this event. The version is
	// zero until the event store assigns one during an append.
	EventVersion() int

	// EventAt indicates when the event occurred
	EventAt() time.Time

	// EventType returns the unique name of the event variant
	EventType() string
}

// VersionAssignable is implemented by events whose version can be assigned
// by the event store at persistence time.
type VersionAssignable interface {
	SetEventVersion(version int)
}
