package commands

import (
	"context"
	"fmt"

	"github.com/postfeed/postfeed/dispatch"
	"github.com/postfeed/postfeed/eventsourcing"
	"github.com/postfeed/postfeed/eventstore"
	"github.com/postfeed/postfeed/post"
)

// CommandHandler is the single pipeline every post command runs through:
// load the aggregate, apply the business rule, save the raised events.
type CommandHandler struct {
	repo *eventstore.Repository
}

// NewCommandHandler returns a handler backed by the given repository.
func NewCommandHandler(repo *eventstore.Repository) *CommandHandler {
	return &CommandHandler{repo: repo}
}

// Register wires every command kind onto the dispatcher.
func (h *CommandHandler) Register(d *dispatch.Dispatcher) {
	d.Register(KindNewPost, h.handleNewPost)
	d.Register(KindEditMessage, h.handleEditMessage)
	d.Register(KindLikePost, h.handleLikePost)
	d.Register(KindAddComment, h.handleAddComment)
	d.Register(KindEditComment, h.handleEditComment)
	d.Register(KindRemoveComment, h.handleRemoveComment)
	d.Register(KindDeletePost, h.handleDeletePost)
	d.Register(KindRestoreReadDB, h.handleRestoreReadDB)
}

func (h *CommandHandler) loadPost(ctx context.Context, aggregateID string) (*post.Post, error) {
	aggregate, err := h.repo.GetByID(ctx, aggregateID)
	if err != nil {
		return nil, err
	}
	p, ok := aggregate.(*post.Post)
	if !ok {
		return nil, fmt.Errorf("repository returned %T, expected *post.Post", aggregate)
	}
	return p, nil
}

func (h *CommandHandler) handleNewPost(ctx context.Context, command eventsourcing.Command) error {
	c, ok := command.(*NewPost)
	if !ok {
		return fmt.Errorf("unexpected command %T for kind %s", command, KindNewPost)
	}

	p, err := post.Create(c.ID, c.Author, c.Message)
	if err != nil {
		return err
	}
	return h.repo.Save(ctx, p)
}

func (h *CommandHandler) handleEditMessage(ctx context.Context, command eventsourcing.Command) error {
	c, ok := command.(*EditMessage)
	if !ok {
		return fmt.Errorf("unexpected command %T for kind %s", command, KindEditMessage)
	}

	p, err := h.loadPost(ctx, c.ID)
	if err != nil {
		return err
	}
	if err := p.EditMessage(c.Message); err != nil {
		return err
	}
	return h.repo.Save(ctx, p)
}

func (h *CommandHandler) handleLikePost(ctx context.Context, command eventsourcing.Command) error {
	c, ok := command.(*LikePost)
	if !ok {
		return fmt.Errorf("unexpected command %T for kind %s", command, KindLikePost)
	}

	p, err := h.loadPost(ctx, c.ID)
	if err != nil {
		return err
	}
	if err := p.Like(); err != nil {
		return err
	}
	return h.repo.Save(ctx, p)
}

func (h *CommandHandler) handleAddComment(ctx context.Context, command eventsourcing.Command) error {
	c, ok := command.(*AddComment)
	if !ok {
		return fmt.Errorf("unexpected command %T for kind %s", command, KindAddComment)
	}

	p, err := h.loadPost(ctx, c.ID)
	if err != nil {
		return err
	}
	if _, err := p.AddComment(c.Comment, c.Username); err != nil {
		return err
	}
	return h.repo.Save(ctx, p)
}

func (h *CommandHandler) handleEditComment(ctx context.Context, command eventsourcing.Command) error {
	c, ok := command.(*EditComment)
	if !ok {
		return fmt.Errorf("unexpected command %T for kind %s", command, KindEditComment)
	}

	p, err := h.loadPost(ctx, c.ID)
	if err != nil {
		return err
	}
	if err := p.EditComment(c.CommentID, c.Comment, c.Username); err != nil {
		return err
	}
	return h.repo.Save(ctx, p)
}

func (h *CommandHandler) handleRemoveComment(ctx context.Context, command eventsourcing.Command) error {
	c, ok := command.(*RemoveComment)
	if !ok {
		return fmt.Errorf("unexpected command %T for kind %s", command, KindRemoveComment)
	}

	p, err := h.loadPost(ctx, c.ID)
	if err != nil {
		return err
	}
	if err := p.RemoveComment(c.CommentID, c.Username); err != nil {
		return err
	}
	return h.repo.Save(ctx, p)
}

func (h *CommandHandler) handleDeletePost(ctx context.Context, command eventsourcing.Command) error {
	c, ok := command.(*DeletePost)
	if !ok {
		return fmt.Errorf("unexpected command %T for kind %s", command, KindDeletePost)
	}

	p, err := h.loadPost(ctx, c.ID)
	if err != nil {
		return err
	}
	if err := p.Delete(c.Username); err != nil {
		return err
	}
	return h.repo.Save(ctx, p)
}

func (h *CommandHandler) handleRestoreReadDB(ctx context.Context, command eventsourcing.Command) error {
	if _, ok := command.(*RestoreReadDB); !ok {
		return fmt.Errorf("unexpected command %T for kind %s", command, KindRestoreReadDB)
	}
	return h.repo.RepublishAll(ctx)
}
