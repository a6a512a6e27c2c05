package eventstore

import "github.com/postfeed/postfeed/eventsourcing"

// Serializer converts between Events and Records
type Serializer interface {
	// MarshalEvent converts an Event to a Record. It fills the version, event
	// type and payload; the Store adds the identity fields.
	MarshalEvent(event eventsourcing.Event) (Record, error)

	// UnmarshalEvent converts a Record back into an Event
	UnmarshalEvent(record Record) (eventsourcing.Event, error)
}
