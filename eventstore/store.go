package eventstore

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/postfeed/postfeed/eventsourcing"
	"github.com/postfeed/postfeed/producer"
)

// Config carries the fixed collaborator settings for a Store. The publish
// topic is injected here once instead of being looked up per call.
type Config struct {
	// Topic is the stream every appended event is published to.
	Topic string

	// AggregateType tags each persisted record with the aggregate kind.
	AggregateType string
}

// Store implements the event store protocol: optimistic-concurrency appends,
// ordered reads, and synchronous publishing of every appended event.
type Store struct {
	storage    Storage
	producer   producer.Producer
	serializer Serializer
	cfg        Config
	log        *zap.Logger
}

// NewStore wires a Store with its persistence and publishing collaborators.
func NewStore(storage Storage, prod producer.Producer, serializer Serializer, cfg Config, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		storage:    storage,
		producer:   prod,
		serializer: serializer,
		cfg:        cfg,
		log:        log,
	}
}

// Append persists the new events for the aggregate and publishes each one.
//
// expectedVersion is the version of the last event the caller saw:
// eventsourcing.NoVersion for a brand-new aggregate, otherwise the last
// persisted version. A mismatch fails with ErrConcurrencyConflict and writes
// nothing. Versions are assigned contiguously starting at expectedVersion+1
// (1 for a new stream).
//
// Each event is published right after its record is written. A publish
// failure is returned to the caller and leaves that event persisted but
// unpublished; a later republish sweep can re-emit the stream.
func (s *Store) Append(ctx context.Context, aggregateID string, events []eventsourcing.Event, expectedVersion int) error {
	history, err := s.storage.FindByAggregateID(ctx, aggregateID)
	if err != nil {
		return err
	}

	if expectedVersion == eventsourcing.NoVersion {
		if len(history) != 0 {
			return fmt.Errorf("%w: aggregate %s already has %d event(s)", ErrConcurrencyConflict, aggregateID, len(history))
		}
	} else if len(history) == 0 || history[len(history)-1].Version != expectedVersion {
		return fmt.Errorf("%w: aggregate %s is not at version %d", ErrConcurrencyConflict, aggregateID, expectedVersion)
	}

	version := expectedVersion
	if version == eventsourcing.NoVersion {
		version = 0
	}

	for _, event := range events {
		version++
		if v, ok := event.(eventsourcing.VersionAssignable); ok {
			v.SetEventVersion(version)
		}

		record, err := s.serializer.MarshalEvent(event)
		if err != nil {
			return err
		}
		record.Timestamp = time.Now()
		record.AggregateID = aggregateID
		record.AggregateType = s.cfg.AggregateType
		record.Version = version

		if err := s.storage.Save(ctx, record); err != nil {
			return err
		}

		if err := s.producer.Publish(ctx, s.cfg.Topic, event); err != nil {
			s.log.Warn("event persisted but not published",
				zap.String("aggregate_id", aggregateID),
				zap.String("event_type", event.EventType()),
				zap.Int("version", version),
				zap.Error(err))
			return fmt.Errorf("publish %s v%d for aggregate %s: %w", event.EventType(), version, aggregateID, err)
		}
	}

	return nil
}

// Events returns the aggregate's full event stream, ascending by version.
// An empty or absent stream fails with ErrAggregateNotFound.
func (s *Store) Events(ctx context.Context, aggregateID string) ([]eventsourcing.Event, error) {
	history, err := s.storage.FindByAggregateID(ctx, aggregateID)
	if err != nil {
		return nil, err
	}
	if len(history) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrAggregateNotFound, aggregateID)
	}

	sort.Sort(history)

	events := make([]eventsourcing.Event, 0, len(history))
	for _, record := range history {
		event, err := s.serializer.UnmarshalEvent(record)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, nil
}

// AggregateIDs returns the distinct ids that have at least one persisted
// event. An empty store yields an empty list, not an error.
func (s *Store) AggregateIDs(ctx context.Context) ([]string, error) {
	records, err := s.storage.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not retrieve event stream from event store: %w", err)
	}

	seen := map[string]bool{}
	ids := make([]string, 0, len(records))
	for _, record := range records {
		if !seen[record.AggregateID] {
			seen[record.AggregateID] = true
			ids = append(ids, record.AggregateID)
		}
	}
	return ids, nil
}
