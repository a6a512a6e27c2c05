package producer

import (
	"context"
	"encoding/json"

	"github.com/postfeed/postfeed/eventsourcing"
)

// Producer publishes domain events to an external stream for downstream
// consumers. Implementations must confirm delivery, not fire-and-forget.
type Producer interface {
	Publish(ctx context.Context, topic string, event eventsourcing.Event) error
}

type envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// marshalEnvelope wraps the event payload with its type tag so consumers can
// decode without sharing Go types.
func marshalEnvelope(event eventsourcing.Event) ([]byte, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}
	return json.Marshal(envelope{
		Type: event.EventType(),
		Data: data,
	})
}
