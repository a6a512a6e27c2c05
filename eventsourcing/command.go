package eventsourcing

// Command is an intent to change the state of a single aggregate.
type Command interface {
	// AggregateID returns the id of the targeted aggregate
	AggregateID() string

	// CommandType returns the unique kind of the command, used for dispatch
	CommandType() string
}

// CommandModel provides a default implementation of a Command, minus the kind.
type CommandModel struct {
	// ID contains the AggregateID
	ID string `json:"id"`
}

// AggregateID implements the Command interface
func (m CommandModel) AggregateID() string {
	return m.ID
}
