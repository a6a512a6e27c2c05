package post

import "github.com/postfeed/postfeed/eventsourcing"

// Wire-level tags of the post event variants and the aggregate itself. These
// are what downstream consumers key on, so they never change.
const (
	AggregateType = "PostAggregate"

	TypePostCreated    = "PostCreatedEvent"
	TypeMessageUpdated = "MessageUpdatedEvent"
	TypePostLiked      = "PostLikedEvent"
	TypeCommentAdded   = "CommentAddedEvent"
	TypeCommentUpdated = "CommentUpdatedEvent"
	TypeCommentRemoved = "CommentRemovedEvent"
	TypePostRemoved    = "PostRemovedEvent"
)

// PostCreated marks the birth of a post.
type PostCreated struct {
	eventsourcing.Model
	Author  string `json:"author"`
	Message string `json:"message"`
}

// EventType implements the Event interface
func (e PostCreated) EventType() string { return TypePostCreated }

// MessageUpdated carries the post's replacement message text.
type MessageUpdated struct {
	eventsourcing.Model
	Message string `json:"message"`
}

// EventType implements the Event interface
func (e MessageUpdated) EventType() string { return TypeMessageUpdated }

// PostLiked records a single like.
type PostLiked struct {
	eventsourcing.Model
}

// EventType implements the Event interface
func (e PostLiked) EventType() string { return TypePostLiked }

// CommentAdded records a new comment under the post.
type CommentAdded struct {
	eventsourcing.Model
	CommentID string `json:"commentId"`
	Comment   string `json:"comment"`
	Username  string `json:"username"`
}

// EventType implements the Event interface
func (e CommentAdded) EventType() string { return TypeCommentAdded }

// CommentUpdated carries the replacement text for an existing comment.
type CommentUpdated struct {
	eventsourcing.Model
	CommentID string `json:"commentId"`
	Comment   string `json:"comment"`
	Username  string `json:"username"`
}

// EventType implements the Event interface
func (e CommentUpdated) EventType() string { return TypeCommentUpdated }

// CommentRemoved records the removal of a comment.
type CommentRemoved struct {
	eventsourcing.Model
	CommentID string `json:"commentId"`
}

// EventType implements the Event interface
func (e CommentRemoved) EventType() string { return TypeCommentRemoved }

// PostRemoved deactivates the post; no further mutation is possible.
type PostRemoved struct {
	eventsourcing.Model
}

// EventType implements the Event interface
func (e PostRemoved) EventType() string { return TypePostRemoved }

// Events returns one instance of every post event variant, ready to be bound
// to a serializer.
func Events() []eventsourcing.Event {
	return []eventsourcing.Event{
		PostCreated{},
		MessageUpdated{},
		PostLiked{},
		CommentAdded{},
		CommentUpdated{},
		CommentRemoved{},
		PostRemoved{},
	}
}
