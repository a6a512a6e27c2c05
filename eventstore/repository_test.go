package eventstore

import (
	"context"
	"errors"
	"testing"
	"time"

	uuid "github.com/satori/go.uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/postfeed/postfeed/eventsourcing"
	"github.com/postfeed/postfeed/post"
	"github.com/postfeed/postfeed/producer"
)

func newTestRepository(storage Storage) (*Repository, *producer.LocalProducer) {
	store, prod := newTestStore(storage)
	repo := NewRepository(store, func() eventsourcing.EventSourced { return post.New() }, zap.NewNop())
	return repo, prod
}

func TestGetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown id yields a fresh aggregate, not an error", func(ct *testing.T) {
		repo, _ := newTestRepository(GetLocalStorage())

		aggregate, err := repo.GetByID(ctx, "never-seen")
		require.NoError(ct, err)
		require.IsType(ct, &post.Post{}, aggregate)
		assert.Equal(ct, eventsourcing.NoVersion, aggregate.Version())
		assert.False(ct, aggregate.(*post.Post).Active())
	})

	t.Run("existing aggregate is rebuilt by replay", func(ct *testing.T) {
		repo, _ := newTestRepository(GetLocalStorage())

		p, err := post.Create(uuid.NewV4().String(), "alice", "hi")
		require.NoError(ct, err)
		commentID, err := p.AddComment("nice!", "bob")
		require.NoError(ct, err)
		require.NoError(ct, repo.Save(ctx, p))

		aggregate, err := repo.GetByID(ctx, p.AggregateID())
		require.NoError(ct, err)

		reloaded := aggregate.(*post.Post)
		assert.Equal(ct, 2, reloaded.Version())
		assert.True(ct, reloaded.Active())
		assert.Equal(ct, "alice", reloaded.Author())
		assert.Equal(ct, "hi", reloaded.Message())
		c, ok := reloaded.Comment(commentID)
		require.True(ct, ok)
		assert.Equal(ct, post.Comment{Text: "nice!", Username: "bob"}, c)
	})
}

func TestSave(t *testing.T) {
	ctx := context.Background()

	t.Run("marks changes committed on success", func(ct *testing.T) {
		repo, _ := newTestRepository(GetLocalStorage())

		p, _ := post.Create(uuid.NewV4().String(), "alice", "hi")
		require.Len(ct, p.UncommittedChanges(), 1)
		require.NoError(ct, repo.Save(ctx, p))
		assert.Empty(ct, p.UncommittedChanges())
	})

	t.Run("keeps uncommitted events on failure", func(ct *testing.T) {
		repo, _ := newTestRepository(GetFailingStorage(errors.New("storage down")))

		p, _ := post.Create(uuid.NewV4().String(), "alice", "hi")
		require.Error(ct, repo.Save(ctx, p))
		assert.Len(ct, p.UncommittedChanges(), 1)
	})

	t.Run("mutating a saved aggregate without reloading conflicts", func(ct *testing.T) {
		repo, _ := newTestRepository(GetLocalStorage())

		p, _ := post.Create(uuid.NewV4().String(), "alice", "hi")
		require.NoError(ct, repo.Save(ctx, p))

		// The in-memory aggregate is still at NoVersion; its stream is not.
		require.NoError(ct, p.Like())
		require.ErrorIs(ct, repo.Save(ctx, p), ErrConcurrencyConflict)

		// Reload-and-retry is the documented recovery.
		aggregate, err := repo.GetByID(ctx, p.AggregateID())
		require.NoError(ct, err)
		reloaded := aggregate.(*post.Post)
		require.NoError(ct, reloaded.Like())
		require.NoError(ct, repo.Save(ctx, reloaded))

		events, err := repo.store.Events(ctx, p.AggregateID())
		require.NoError(ct, err)
		assert.Len(ct, events, 2)
	})
}

func TestRepublishAll(t *testing.T) {
	ctx := context.Background()

	t.Run("republishes active streams and skips inactive ones", func(ct *testing.T) {
		storage := GetLocalStorage()
		repo, prod := newTestRepository(storage)

		active, _ := post.Create(uuid.NewV4().String(), "alice", "hi")
		require.NoError(ct, active.Like())
		require.NoError(ct, repo.Save(ctx, active))

		deleted, _ := post.Create(uuid.NewV4().String(), "bob", "bye")
		require.NoError(ct, deleted.Delete("bob"))
		require.NoError(ct, repo.Save(ctx, deleted))

		publishedBefore := len(prod.Records())
		require.NoError(ct, repo.RepublishAll(ctx))

		republished := prod.Records()[publishedBefore:]
		require.Len(ct, republished, 2)
		for i, p := range republished {
			assert.Equal(ct, active.AggregateID(), p.Event.AggregateID())
			assert.Equal(ct, i+1, p.Event.EventVersion())
		}
	})

	t.Run("a broken aggregate does not abort the sweep", func(ct *testing.T) {
		storage := GetLocalStorage()
		repo, prod := newTestRepository(storage)

		// An aggregate whose stream cannot be decoded.
		require.NoError(ct, storage.Save(ctx, Record{
			Timestamp:     time.Now(),
			AggregateID:   "broken",
			AggregateType: post.AggregateType,
			Version:       1,
			EventType:     "MysteryEvent",
			Data:          []byte(`{}`),
		}))

		healthy, _ := post.Create(uuid.NewV4().String(), "alice", "hi")
		require.NoError(ct, repo.Save(ctx, healthy))

		publishedBefore := len(prod.Records())
		err := repo.RepublishAll(ctx)
		require.Error(ct, err)

		republished := prod.Records()[publishedBefore:]
		require.Len(ct, republished, 1)
		assert.Equal(ct, healthy.AggregateID(), republished[0].Event.AggregateID())
	})
}
