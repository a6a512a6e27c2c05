package eventstore

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/postfeed/postfeed/eventsourcing"
)

// JSONSerializer provides a simple serializer implementation backed by a
// registry of event types keyed by their type tag.
type JSONSerializer struct {
	eventTypes map[string]reflect.Type
}

// NewJSONSerializer constructs a new JSONSerializer and populates it with the
// specified events. Bind may be subsequently called to add more events.
func NewJSONSerializer(events ...eventsourcing.Event) *JSONSerializer {
	serializer := &JSONSerializer{
		eventTypes: map[string]reflect.Type{},
	}
	serializer.Bind(events...)
	return serializer
}

// Bind registers the specified events with the serializer; may be called more
// than once.
func (j *JSONSerializer) Bind(events ...eventsourcing.Event) {
	for _, event := range events {
		t := reflect.TypeOf(event)
		if t.Kind() == reflect.Ptr {
			t = t.Elem()
		}
		j.eventTypes[event.EventType()] = t
	}
}

// MarshalEvent converts an event into its persistent form.
func (j *JSONSerializer) MarshalEvent(event eventsourcing.Event) (Record, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return Record{}, fmt.Errorf("unable to encode event %s: %w", event.EventType(), err)
	}

	return Record{
		Version:   event.EventVersion(),
		EventType: event.EventType(),
		Data:      data,
	}, nil
}

// UnmarshalEvent converts a persisted Record back into an Event instance.
func (j *JSONSerializer) UnmarshalEvent(record Record) (eventsourcing.Event, error) {
	t, ok := j.eventTypes[record.EventType]
	if !ok {
		return nil, fmt.Errorf("unbound event type, %v", record.EventType)
	}

	v := reflect.New(t).Interface()
	if err := json.Unmarshal(record.Data, v); err != nil {
		return nil, fmt.Errorf("unable to unmarshal event data into %#v: %w", v, err)
	}

	return v.(eventsourcing.Event), nil
}
