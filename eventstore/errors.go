package eventstore

import "errors"

var (
	// ErrConcurrencyConflict signals an optimistic-lock violation: the stream
	// moved past the expected version. The caller must reload and retry.
	ErrConcurrencyConflict = errors.New("eventstore: concurrency conflict")

	// ErrAggregateNotFound signals that no events exist for the aggregate id.
	ErrAggregateNotFound = errors.New("eventstore: aggregate not found")
)
