package eventsourcing

import "time"

// Model provides a default implementation of an Event
type Model struct {
	// ID contains the AggregateID
	ID string `json:"id"`

	// Version contains the EventVersion
	Version int `json:"version"`

	// At contains the EventAt
	At time.Time `json:"at"`
}

// AggregateID implements the Event interface
func (m Model) AggregateID() string {
	return m.ID
}

// EventVersion implements the Event interface
func (m Model) EventVersion() int {
	return m.Version
}

// EventAt implements the Event interface
func (m Model) EventAt() time.Time {
	return m.At
}

// SetEventVersion implements the VersionAssignable interface
func (m *Model) SetEventVersion(version int) {
	m.Version = version
}
