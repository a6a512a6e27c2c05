package eventstore

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/postfeed/postfeed/eventsourcing"
)

// activeReporter lets the repository ask an aggregate whether it is still
// open for mutation without knowing its concrete type.
type activeReporter interface {
	Active() bool
}

// Repository orchestrates aggregate persistence on top of the Store: loading
// by replay, saving uncommitted changes, and bulk republishing.
type Repository struct {
	store        *Store
	newAggregate func() eventsourcing.EventSourced
	log          *zap.Logger
}

// NewRepository is a factory function that creates a new Repository object.
// newAggregate must return a fresh, empty aggregate at NoVersion.
func NewRepository(store *Store, newAggregate func() eventsourcing.EventSourced, log *zap.Logger) *Repository {
	if log == nil {
		log = zap.NewNop()
	}
	return &Repository{store: store, newAggregate: newAggregate, log: log}
}

// Save appends the aggregate's uncommitted events at its current version and
// marks them committed on success. On failure the uncommitted events stay on
// the aggregate so the caller can reload and retry.
func (r *Repository) Save(ctx context.Context, aggregate eventsourcing.EventSourced) error {
	if err := r.store.Append(ctx, aggregate.AggregateID(), aggregate.UncommittedChanges(), aggregate.Version()); err != nil {
		return err
	}
	aggregate.MarkChangesCommitted()
	return nil
}

// GetByID reconstructs the aggregate from its event stream. An id with no
// persisted events yields a fresh aggregate at NoVersion rather than an
// error, so commands can target aggregates that do not exist yet.
func (r *Repository) GetByID(ctx context.Context, aggregateID string) (eventsourcing.EventSourced, error) {
	aggregate := r.newAggregate()

	events, err := r.store.Events(ctx, aggregateID)
	if errors.Is(err, ErrAggregateNotFound) {
		return aggregate, nil
	}
	if err != nil {
		return nil, err
	}

	if err := aggregate.Replay(events); err != nil {
		return nil, err
	}
	return aggregate, nil
}

// RepublishAll re-emits every active aggregate's event stream to the producer
// in version order, for rebuilding downstream read models. A failure on one
// aggregate is logged and collected; the sweep always attempts the rest.
func (r *Repository) RepublishAll(ctx context.Context) error {
	ids, err := r.store.AggregateIDs(ctx)
	if err != nil {
		return err
	}

	var errs []error
	for _, id := range ids {
		aggregate, err := r.GetByID(ctx, id)
		if err != nil {
			r.log.Error("republish: could not load aggregate", zap.String("aggregate_id", id), zap.Error(err))
			errs = append(errs, fmt.Errorf("load aggregate %s: %w", id, err))
			continue
		}

		if aggregate.Version() == eventsourcing.NoVersion {
			// Listed but with no replayable events; nothing to re-emit.
			r.log.Warn("republish: skipping aggregate with empty stream", zap.String("aggregate_id", id))
			continue
		}
		if reporter, ok := aggregate.(activeReporter); ok && !reporter.Active() {
			r.log.Info("republish: skipping inactive aggregate", zap.String("aggregate_id", id))
			continue
		}

		events, err := r.store.Events(ctx, id)
		if err != nil {
			r.log.Error("republish: could not read stream", zap.String("aggregate_id", id), zap.Error(err))
			errs = append(errs, fmt.Errorf("read stream %s: %w", id, err))
			continue
		}

		for _, event := range events {
			if err := r.store.producer.Publish(ctx, r.store.cfg.Topic, event); err != nil {
				r.log.Error("republish: publish failed",
					zap.String("aggregate_id", id),
					zap.String("event_type", event.EventType()),
					zap.Int("version", event.EventVersion()),
					zap.Error(err))
				errs = append(errs, fmt.Errorf("republish %s v%d: %w", id, event.EventVersion(), err))
				break
			}
		}
	}

	return errors.Join(errs...)
}
