package producer

import (
	"context"
	"sync"

	"github.com/postfeed/postfeed/eventsourcing"
)

// Published is a single event captured by the local producer.
type Published struct {
	Topic string
	Event eventsourcing.Event
}

// LocalProducer records published events in memory - good for tests!
type LocalProducer struct {
	mux       sync.Mutex
	published []Published

	// Err, when set, is returned by every Publish call.
	Err error
}

// GetLocalProducer returns a fresh in-memory producer.
func GetLocalProducer() *LocalProducer {
	return &LocalProducer{}
}

// Publish implements the Producer interface.
func (p *LocalProducer) Publish(_ context.Context, topic string, event eventsourcing.Event) error {
	p.mux.Lock()
	defer p.mux.Unlock()
	if p.Err != nil {
		return p.Err
	}
	p.published = append(p.published, Published{Topic: topic, Event: event})
	return nil
}

// Records returns every event published so far, in publish order.
func (p *LocalProducer) Records() []Published {
	p.mux.Lock()
	defer p.mux.Unlock()
	out := make([]Published, len(p.published))
	copy(out, p.published)
	return out
}
