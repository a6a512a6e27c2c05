package producer

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/kinesis"

	"github.com/postfeed/postfeed/eventsourcing"
)

// KinesisAPI is the slice of the Kinesis client the producer needs.
type KinesisAPI interface {
	PutRecord(ctx context.Context, params *kinesis.PutRecordInput, optFns ...func(*kinesis.Options)) (*kinesis.PutRecordOutput, error)
}

// KinesisProducer publishes events to a Kinesis stream. The topic argument is
// used as the stream name and the aggregate id as the partition key.
type KinesisProducer struct {
	api KinesisAPI
}

// NewKinesisProducer returns a producer backed by the given Kinesis client.
func NewKinesisProducer(api KinesisAPI) *KinesisProducer {
	return &KinesisProducer{api: api}
}

// Publish implements the Producer interface.
func (p *KinesisProducer) Publish(ctx context.Context, topic string, event eventsourcing.Event) error {
	payload, err := marshalEnvelope(event)
	if err != nil {
		return fmt.Errorf("could not marshal event %s: %w", event.EventType(), err)
	}

	_, err = p.api.PutRecord(ctx, &kinesis.PutRecordInput{
		StreamName:   aws.String(topic),
		PartitionKey: aws.String(event.AggregateID()),
		Data:         payload,
	})
	return err
}
