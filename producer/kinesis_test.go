package producer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/kinesis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/postfeed/postfeed/eventsourcing"
	"github.com/postfeed/postfeed/post"
)

type fakeKinesisAPI struct {
	inputs []*kinesis.PutRecordInput
	err    error
}

func (f *fakeKinesisAPI) PutRecord(_ context.Context, params *kinesis.PutRecordInput, _ ...func(*kinesis.Options)) (*kinesis.PutRecordOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.inputs = append(f.inputs, params)
	return &kinesis.PutRecordOutput{}, nil
}

func TestKinesisPublish(t *testing.T) {
	ctx := context.Background()

	t.Run("stream, partition key and envelope shape", func(ct *testing.T) {
		api := &fakeKinesisAPI{}
		prod := NewKinesisProducer(api)

		event := &post.PostCreated{
			Model:   eventsourcing.Model{ID: "post-1", Version: 1},
			Author:  "alice",
			Message: "hi",
		}
		require.NoError(ct, prod.Publish(ctx, "post-events", event))

		require.Len(ct, api.inputs, 1)
		input := api.inputs[0]
		assert.Equal(ct, "post-events", *input.StreamName)
		assert.Equal(ct, "post-1", *input.PartitionKey)

		var env struct {
			Type string          `json:"type"`
			Data json.RawMessage `json:"data"`
		}
		require.NoError(ct, json.Unmarshal(input.Data, &env))
		assert.Equal(ct, post.TypePostCreated, env.Type)

		var decoded post.PostCreated
		require.NoError(ct, json.Unmarshal(env.Data, &decoded))
		assert.Equal(ct, "post-1", decoded.ID)
		assert.Equal(ct, "alice", decoded.Author)
		assert.Equal(ct, "hi", decoded.Message)
	})

	t.Run("put failure propagates", func(ct *testing.T) {
		boom := errors.New("stream unavailable")
		prod := NewKinesisProducer(&fakeKinesisAPI{err: boom})

		err := prod.Publish(ctx, "post-events", &post.PostLiked{
			Model: eventsourcing.Model{ID: "post-1"},
		})
		assert.ErrorIs(ct, err, boom)
	})
}
