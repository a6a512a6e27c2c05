package eventstore

import "time"

// Attribute names shared by the DynamoDB table schema and the Record struct
// tags below.
const (
	AttrAggregateID = "aggregate_id"
	AttrVersion     = "version"
)

// Record represents an event in serialized, persisted form.
type Record struct {
	Timestamp     time.Time `dynamodbav:"timestamp" json:"timestamp"`
	AggregateID   string    `dynamodbav:"aggregate_id" json:"aggregateIdentifier"`
	AggregateType string    `dynamodbav:"aggregate_type" json:"aggregateType"`
	Version       int       `dynamodbav:"version" json:"version"`
	EventType     string    `dynamodbav:"event_type" json:"eventType"`
	Data          []byte    `dynamodbav:"event_data" json:"eventData"`
}

// History is an aggregate's event stream, ordered by version.
type History []Record

// Len implements sort.Interface
func (h History) Len() int {
	return len(h)
}

// Swap implements sort.Interface
func (h History) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
}

// Less implements sort.Interface
func (h History) Less(i, j int) bool {
	return h[i].Version < h[j].Version
}
