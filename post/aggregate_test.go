package post

import (
	"testing"

	uuid "github.com/satori/go.uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/postfeed/postfeed/eventsourcing"
)

func TestCreate(t *testing.T) {
	id := uuid.NewV4().String()
	p, err := Create(id, "alice", "hi")
	require.NoError(t, err)

	assert.Equal(t, id, p.AggregateID())
	assert.True(t, p.Active())
	assert.Equal(t, "alice", p.Author())
	assert.Equal(t, "hi", p.Message())
	assert.Equal(t, eventsourcing.NoVersion, p.Version())
	require.Len(t, p.UncommittedChanges(), 1)
	assert.Equal(t, TypePostCreated, p.UncommittedChanges()[0].EventType())
}

func TestEditMessage(t *testing.T) {
	t.Run("replaces the message", func(ct *testing.T) {
		p, _ := Create(uuid.NewV4().String(), "alice", "hi")
		require.NoError(ct, p.EditMessage("hello"))
		assert.Equal(ct, "hello", p.Message())
		assert.Len(ct, p.UncommittedChanges(), 2)
	})

	t.Run("blank message rejected", func(ct *testing.T) {
		p, _ := Create(uuid.NewV4().String(), "alice", "hi")
		err := p.EditMessage("   ")
		var validation *ValidationError
		require.ErrorAs(ct, err, &validation)
		assert.Equal(ct, "hi", p.Message())
		assert.Len(ct, p.UncommittedChanges(), 1)
	})

	t.Run("uninitialized post rejected", func(ct *testing.T) {
		p := New()
		var validation *ValidationError
		assert.ErrorAs(ct, p.EditMessage("hello"), &validation)
		assert.Empty(ct, p.UncommittedChanges())
	})
}

func TestComments(t *testing.T) {
	t.Run("add and edit by the same user", func(ct *testing.T) {
		p, _ := Create(uuid.NewV4().String(), "alice", "hi")
		commentID, err := p.AddComment("nice!", "bob")
		require.NoError(ct, err)

		// Author match is case-insensitive.
		require.NoError(ct, p.EditComment(commentID, "nicer!", "BOB"))
		c, ok := p.Comment(commentID)
		require.True(ct, ok)
		assert.Equal(ct, "nicer!", c.Text)
	})

	t.Run("edit by another user rejected", func(ct *testing.T) {
		p, _ := Create(uuid.NewV4().String(), "alice", "hi")
		commentID, err := p.AddComment("nice!", "bob")
		require.NoError(ct, err)

		var validation *ValidationError
		require.ErrorAs(ct, p.EditComment(commentID, "nicer!", "carol"), &validation)

		c, _ := p.Comment(commentID)
		assert.Equal(ct, "nice!", c.Text)
		assert.Len(ct, p.UncommittedChanges(), 2)
	})

	t.Run("remove by another user rejected", func(ct *testing.T) {
		p, _ := Create(uuid.NewV4().String(), "alice", "hi")
		commentID, _ := p.AddComment("nice!", "bob")

		var validation *ValidationError
		require.ErrorAs(ct, p.RemoveComment(commentID, "carol"), &validation)

		_, ok := p.Comment(commentID)
		assert.True(ct, ok)
	})

	t.Run("remove by the comment author", func(ct *testing.T) {
		p, _ := Create(uuid.NewV4().String(), "alice", "hi")
		commentID, _ := p.AddComment("nice!", "bob")
		require.NoError(ct, p.RemoveComment(commentID, "Bob"))

		_, ok := p.Comment(commentID)
		assert.False(ct, ok)
	})

	t.Run("unknown comment id rejected", func(ct *testing.T) {
		p, _ := Create(uuid.NewV4().String(), "alice", "hi")

		var validation *ValidationError
		assert.ErrorAs(ct, p.EditComment("no-such-comment", "text", "bob"), &validation)
		assert.ErrorAs(ct, p.RemoveComment("no-such-comment", "bob"), &validation)
	})

	t.Run("blank comment rejected", func(ct *testing.T) {
		p, _ := Create(uuid.NewV4().String(), "alice", "hi")
		var validation *ValidationError
		_, err := p.AddComment("  ", "bob")
		assert.ErrorAs(ct, err, &validation)
	})
}

func TestDelete(t *testing.T) {
	t.Run("only the author may delete", func(ct *testing.T) {
		p, _ := Create(uuid.NewV4().String(), "alice", "hi")

		var validation *ValidationError
		require.ErrorAs(ct, p.Delete("carol"), &validation)
		assert.True(ct, p.Active())

		require.NoError(ct, p.Delete("ALICE"))
		assert.False(ct, p.Active())
	})

	t.Run("deleted post rejects all further operations", func(ct *testing.T) {
		p, _ := Create(uuid.NewV4().String(), "alice", "hi")
		require.NoError(ct, p.Delete("alice"))

		var validation *ValidationError
		assert.ErrorAs(ct, p.Like(), &validation)
		assert.ErrorAs(ct, p.EditMessage("hello"), &validation)
		_, err := p.AddComment("nice!", "bob")
		assert.ErrorAs(ct, err, &validation)
		assert.ErrorAs(ct, p.Delete("alice"), &validation)
	})
}

func TestLike(t *testing.T) {
	p, _ := Create(uuid.NewV4().String(), "alice", "hi")
	require.NoError(t, p.Like())
	require.NoError(t, p.Like())
	assert.Equal(t, 2, p.Likes())
}

// Replaying the raised event stream from empty must reproduce the state the
// commands produced directly.
func TestReplayMatchesDirectApply(t *testing.T) {
	id := uuid.NewV4().String()
	direct, err := Create(id, "alice", "hi")
	require.NoError(t, err)
	require.NoError(t, direct.Like())
	commentID, err := direct.AddComment("nice!", "bob")
	require.NoError(t, err)
	require.NoError(t, direct.EditComment(commentID, "nicer!", "bob"))
	require.NoError(t, direct.EditMessage("hello"))

	events := direct.UncommittedChanges()
	for i, event := range events {
		event.(eventsourcing.VersionAssignable).SetEventVersion(i + 1)
	}

	replayed := New()
	require.NoError(t, replayed.Replay(events))

	assert.Equal(t, direct.AggregateID(), replayed.AggregateID())
	assert.Equal(t, direct.Active(), replayed.Active())
	assert.Equal(t, direct.Author(), replayed.Author())
	assert.Equal(t, direct.Message(), replayed.Message())
	assert.Equal(t, direct.Likes(), replayed.Likes())
	assert.Equal(t, direct.Comments(), replayed.Comments())
	assert.Equal(t, len(events), replayed.Version())
}
