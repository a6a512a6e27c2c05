package eventstore

import "context"

// Storage is the persistence collaborator behind the Store: a dumb append log
// keyed by aggregate id. It never interprets event payloads.
type Storage interface {
	// FindByAggregateID returns the aggregate's records ordered by version
	// ascending. A missing stream yields an empty History, not an error.
	FindByAggregateID(ctx context.Context, aggregateID string) (History, error)

	// FindAll returns every persisted record.
	FindAll(ctx context.Context) ([]Record, error)

	// Save appends a single record durably. Writing a (aggregate id, version)
	// pair that already exists fails with ErrConcurrencyConflict.
	Save(ctx context.Context, record Record) error
}
