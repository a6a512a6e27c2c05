package post

import (
	"fmt"
	"strings"
	"time"

	uuid "github.com/satori/go.uuid"

	"github.com/postfeed/postfeed/eventsourcing"
)

// Comment is the recorded text and author of a single comment.
type Comment struct {
	Text     string
	Username string
}

// Post is the event-sourced social media post aggregate. State changes only
// through On; business methods validate and raise events.
type Post struct {
	eventsourcing.Root

	active   bool
	author   string
	message  string
	likes    int
	comments map[string]Comment
}

// New returns an empty Post at eventsourcing.NoVersion, ready for replay or
// for a Create command.
func New() *Post {
	p := &Post{comments: map[string]Comment{}}
	p.Root = eventsourcing.NewRoot(p)
	return p
}

// Create builds a new active post. This is the only operation allowed on an
// uninitialized aggregate.
func Create(id, author, message string) (*Post, error) {
	p := New()
	err := p.Raise(&PostCreated{
		Model:   eventsourcing.Model{ID: id, At: time.Now()},
		Author:  author,
		Message: message,
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// EditMessage replaces the post's message text.
func (p *Post) EditMessage(message string) error {
	if !p.active {
		return validationErrorf("you can't edit the message of an inactive post")
	}
	if strings.TrimSpace(message) == "" {
		return validationErrorf("the message can't be blank; please provide a valid message")
	}

	return p.Raise(&MessageUpdated{
		Model:   eventsourcing.Model{ID: p.ID, At: time.Now()},
		Message: message,
	})
}

// Like records one like on the post.
func (p *Post) Like() error {
	if !p.active {
		return validationErrorf("you can't like an inactive post")
	}

	return p.Raise(&PostLiked{
		Model: eventsourcing.Model{ID: p.ID, At: time.Now()},
	})
}

// AddComment attaches a new comment and returns its generated id.
func (p *Post) AddComment(comment, username string) (string, error) {
	if !p.active {
		return "", validationErrorf("you can't add a comment to an inactive post")
	}
	if strings.TrimSpace(comment) == "" {
		return "", validationErrorf("the comment can't be blank; please provide a valid comment")
	}

	commentID := uuid.NewV4().String()
	err := p.Raise(&CommentAdded{
		Model:     eventsourcing.Model{ID: p.ID, At: time.Now()},
		CommentID: commentID,
		Comment:   comment,
		Username:  username,
	})
	if err != nil {
		return "", err
	}
	return commentID, nil
}

// EditComment replaces a comment's text. Only the comment's original author
// may edit it; the username match is case-insensitive.
func (p *Post) EditComment(commentID, comment, username string) error {
	if !p.active {
		return validationErrorf("you can't edit a comment of an inactive post")
	}
	existing, ok := p.comments[commentID]
	if !ok {
		return validationErrorf("comment %s not found", commentID)
	}
	if !strings.EqualFold(existing.Username, username) {
		return validationErrorf("you are not allowed to edit a comment that was made by another user")
	}

	return p.Raise(&CommentUpdated{
		Model:     eventsourcing.Model{ID: p.ID, At: time.Now()},
		CommentID: commentID,
		Comment:   comment,
		Username:  username,
	})
}

// RemoveComment deletes a comment, subject to the same author rule as
// EditComment.
func (p *Post) RemoveComment(commentID, username string) error {
	if !p.active {
		return validationErrorf("you can't remove a comment of an inactive post")
	}
	existing, ok := p.comments[commentID]
	if !ok {
		return validationErrorf("comment %s not found", commentID)
	}
	if !strings.EqualFold(existing.Username, username) {
		return validationErrorf("you are not allowed to remove a comment that was made by another user")
	}

	return p.Raise(&CommentRemoved{
		Model:     eventsourcing.Model{ID: p.ID, At: time.Now()},
		CommentID: commentID,
	})
}

// Delete deactivates the post. Only its author may delete it.
func (p *Post) Delete(username string) error {
	if !p.active {
		return validationErrorf("the post has already been removed")
	}
	if !strings.EqualFold(p.author, username) {
		return validationErrorf("you are not allowed to delete a post that was made by someone else")
	}

	return p.Raise(&PostRemoved{
		Model: eventsourcing.Model{ID: p.ID, At: time.Now()},
	})
}

// On implements the Aggregate interface with one mutation per event variant.
func (p *Post) On(event eventsourcing.Event) error {
	switch e := event.(type) {
	case *PostCreated:
		p.ID = e.AggregateID()
		p.active = true
		p.author = e.Author
		p.message = e.Message
	case *MessageUpdated:
		p.message = e.Message
	case *PostLiked:
		p.likes++
	case *CommentAdded:
		p.comments[e.CommentID] = Comment{Text: e.Comment, Username: e.Username}
	case *CommentUpdated:
		p.comments[e.CommentID] = Comment{Text: e.Comment, Username: e.Username}
	case *CommentRemoved:
		delete(p.comments, e.CommentID)
	case *PostRemoved:
		p.active = false
	default:
		return fmt.Errorf("unable to handle event %T", e)
	}
	return nil
}

// Active reports whether the post still accepts mutating commands.
func (p *Post) Active() bool {
	return p.active
}

// Author returns the post author's username.
func (p *Post) Author() string {
	return p.author
}

// Message returns the current message text.
func (p *Post) Message() string {
	return p.message
}

// Likes returns the like count.
func (p *Post) Likes() int {
	return p.likes
}

// Comment looks up a comment by id.
func (p *Post) Comment(commentID string) (Comment, bool) {
	c, ok := p.comments[commentID]
	return c, ok
}

// Comments returns a copy of all comments keyed by comment id.
func (p *Post) Comments() map[string]Comment {
	out := make(map[string]Comment, len(p.comments))
	for id, c := range p.comments {
		out[id] = c
	}
	return out
}
