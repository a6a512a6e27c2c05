package eventsourcing

import (
	"fmt"
	"sort"
)

// NoVersion marks an aggregate that has no persisted events yet.
const NoVersion = -1

// Aggregate stands for an event-sourced model. State mutates only through On.
type Aggregate interface {
	On(event Event) error
}

// EventSourced is the full contract an aggregate gains by embedding Root.
type EventSourced interface {
	Aggregate
	AggregateID() string
	Version() int
	Replay(events []Event) error
	UncommittedChanges() []Event
	MarkChangesCommitted()
}

// Root is the base for event-sourced aggregates. Concrete aggregates embed it
// and pass themselves in through NewRoot so that Raise and Replay can reach
// the outer On method.
type Root struct {
	// ID contains the aggregate id, assigned by the first applied event.
	ID string

	self    Aggregate
	version int
	changes []Event
}

// NewRoot prepares a Root for the given aggregate. The version starts at
// NoVersion until events are replayed onto it.
func NewRoot(self Aggregate) Root {
	return Root{self: self, version: NoVersion}
}

// AggregateID returns the id of the aggregate.
func (r *Root) AggregateID() string {
	return r.ID
}

// Version returns the version of the last applied persisted event, or
// NoVersion if none has been applied.
func (r *Root) Version() int {
	return r.version
}

// Raise applies the event to the aggregate and tracks it as uncommitted.
// The event carries no version; the event store assigns one on append.
func (r *Root) Raise(event Event) error {
	if err := r.self.On(event); err != nil {
		return err
	}
	r.changes = append(r.changes, event)
	return nil
}

// Replay reconstructs aggregate state by applying persisted events in
// ascending version order. Replayed events are not tracked as uncommitted.
func (r *Root) Replay(events []Event) error {
	sorted := make([]Event, len(events))
	copy(sorted, events)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].EventVersion() < sorted[j].EventVersion()
	})

	for _, event := range sorted {
		if err := r.self.On(event); err != nil {
			return fmt.Errorf("aggregate was unable to handle event %s: %w", event.EventType(), err)
		}
		if v := event.EventVersion(); v > r.version {
			r.version = v
		}
	}
	return nil
}

// UncommittedChanges returns the events raised since the last save. The list
// is not cleared; MarkChangesCommitted does that after a successful save.
func (r *Root) UncommittedChanges() []Event {
	return r.changes
}

// MarkChangesCommitted clears the uncommitted events after they were saved.
func (r *Root) MarkChangesCommitted() {
	r.changes = nil
}
