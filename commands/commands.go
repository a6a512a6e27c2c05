package commands

import "github.com/postfeed/postfeed/eventsourcing"

// Command kinds routed by the dispatcher.
const (
	KindNewPost       = "NewPostCommand"
	KindEditMessage   = "EditMessageCommand"
	KindLikePost      = "LikePostCommand"
	KindAddComment    = "AddCommentCommand"
	KindEditComment   = "EditCommentCommand"
	KindRemoveComment = "RemoveCommentCommand"
	KindDeletePost    = "DeletePostCommand"
	KindRestoreReadDB = "RestoreReadDbCommand"
)

// NewPost creates a post.
type NewPost struct {
	eventsourcing.CommandModel
	Author  string `json:"author"`
	Message string `json:"message"`
}

// CommandType implements the Command interface
func (c NewPost) CommandType() string { return KindNewPost }

// EditMessage replaces a post's message.
type EditMessage struct {
	eventsourcing.CommandModel
	Message string `json:"message"`
}

// CommandType implements the Command interface
func (c EditMessage) CommandType() string { return KindEditMessage }

// LikePost records one like.
type LikePost struct {
	eventsourcing.CommandModel
}

// CommandType implements the Command interface
func (c LikePost) CommandType() string { return KindLikePost }

// AddComment attaches a comment to a post.
type AddComment struct {
	eventsourcing.CommandModel
	Comment  string `json:"comment"`
	Username string `json:"username"`
}

// CommandType implements the Command interface
func (c AddComment) CommandType() string { return KindAddComment }

// EditComment replaces a comment's text.
type EditComment struct {
	eventsourcing.CommandModel
	CommentID string `json:"commentId"`
	Comment   string `json:"comment"`
	Username  string `json:"username"`
}

// CommandType implements the Command interface
func (c EditComment) CommandType() string { return KindEditComment }

// RemoveComment deletes a comment.
type RemoveComment struct {
	eventsourcing.CommandModel
	CommentID string `json:"commentId"`
	Username  string `json:"username"`
}

// CommandType implements the Command interface
func (c RemoveComment) CommandType() string { return KindRemoveComment }

// DeletePost deactivates a post.
type DeletePost struct {
	eventsourcing.CommandModel
	Username string `json:"username"`
}

// CommandType implements the Command interface
func (c DeletePost) CommandType() string { return KindDeletePost }

// RestoreReadDB republishes every active aggregate's stream so a downstream
// read model can be rebuilt.
type RestoreReadDB struct {
	eventsourcing.CommandModel
}

// CommandType implements the Command interface
func (c RestoreReadDB) CommandType() string { return KindRestoreReadDB }
