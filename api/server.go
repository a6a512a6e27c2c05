package api

import (
	"encoding/json"
	"errors"
	"net/http"

	uuid "github.com/satori/go.uuid"
	"go.uber.org/zap"

	"github.com/postfeed/postfeed/commands"
	"github.com/postfeed/postfeed/dispatch"
	"github.com/postfeed/postfeed/eventsourcing"
	"github.com/postfeed/postfeed/eventstore"
	"github.com/postfeed/postfeed/post"
)

// Server is the HTTP command transport: it shapes requests into typed
// commands and forwards them to the dispatcher.
type Server struct {
	dispatcher *dispatch.Dispatcher
	log        *zap.Logger
}

// NewServer returns a Server routing into the given dispatcher.
func NewServer(dispatcher *dispatch.Dispatcher, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{dispatcher: dispatcher, log: log}
}

// Routes registers all command endpoints on the mux.
func (s *Server) Routes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/posts", s.handleNewPost)
	mux.HandleFunc("PUT /api/v1/posts/{id}/message", s.handleEditMessage)
	mux.HandleFunc("POST /api/v1/posts/{id}/likes", s.handleLikePost)
	mux.HandleFunc("POST /api/v1/posts/{id}/comments", s.handleAddComment)
	mux.HandleFunc("PUT /api/v1/posts/{id}/comments/{commentId}", s.handleEditComment)
	mux.HandleFunc("DELETE /api/v1/posts/{id}/comments/{commentId}", s.handleRemoveComment)
	mux.HandleFunc("DELETE /api/v1/posts/{id}", s.handleDeletePost)
	mux.HandleFunc("POST /api/v1/events/republish", s.handleRestoreReadDB)
}

type newPostRequest struct {
	Author  string `json:"author"`
	Message string `json:"message"`
}

func (s *Server) handleNewPost(w http.ResponseWriter, r *http.Request) {
	var req newPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	id := uuid.NewV4().String()
	cmd := &commands.NewPost{
		CommandModel: eventsourcing.CommandModel{ID: id},
		Author:       req.Author,
		Message:      req.Message,
	}
	if err := s.dispatcher.Dispatch(r.Context(), cmd); err != nil {
		s.dispatchError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

type editMessageRequest struct {
	Message string `json:"message"`
}

func (s *Server) handleEditMessage(w http.ResponseWriter, r *http.Request) {
	var req editMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	cmd := &commands.EditMessage{
		CommandModel: eventsourcing.CommandModel{ID: r.PathValue("id")},
		Message:      req.Message,
	}
	if err := s.dispatcher.Dispatch(r.Context(), cmd); err != nil {
		s.dispatchError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"message": "edit message request completed"})
}

func (s *Server) handleLikePost(w http.ResponseWriter, r *http.Request) {
	cmd := &commands.LikePost{
		CommandModel: eventsourcing.CommandModel{ID: r.PathValue("id")},
	}
	if err := s.dispatcher.Dispatch(r.Context(), cmd); err != nil {
		s.dispatchError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"message": "like post request completed"})
}

type commentRequest struct {
	Comment  string `json:"comment"`
	Username string `json:"username"`
}

func (s *Server) handleAddComment(w http.ResponseWriter, r *http.Request) {
	var req commentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	cmd := &commands.AddComment{
		CommandModel: eventsourcing.CommandModel{ID: r.PathValue("id")},
		Comment:      req.Comment,
		Username:     req.Username,
	}
	if err := s.dispatcher.Dispatch(r.Context(), cmd); err != nil {
		s.dispatchError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"message": "add comment request completed"})
}

func (s *Server) handleEditComment(w http.ResponseWriter, r *http.Request) {
	var req commentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	cmd := &commands.EditComment{
		CommandModel: eventsourcing.CommandModel{ID: r.PathValue("id")},
		CommentID:    r.PathValue("commentId"),
		Comment:      req.Comment,
		Username:     req.Username,
	}
	if err := s.dispatcher.Dispatch(r.Context(), cmd); err != nil {
		s.dispatchError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"message": "edit comment request completed"})
}

type removeCommentRequest struct {
	Username string `json:"username"`
}

func (s *Server) handleRemoveComment(w http.ResponseWriter, r *http.Request) {
	var req removeCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	cmd := &commands.RemoveComment{
		CommandModel: eventsourcing.CommandModel{ID: r.PathValue("id")},
		CommentID:    r.PathValue("commentId"),
		Username:     req.Username,
	}
	if err := s.dispatcher.Dispatch(r.Context(), cmd); err != nil {
		s.dispatchError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"message": "remove comment request completed"})
}

type deletePostRequest struct {
	Username string `json:"username"`
}

func (s *Server) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	var req deletePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	cmd := &commands.DeletePost{
		CommandModel: eventsourcing.CommandModel{ID: r.PathValue("id")},
		Username:     req.Username,
	}
	if err := s.dispatcher.Dispatch(r.Context(), cmd); err != nil {
		s.dispatchError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"message": "delete post request completed"})
}

func (s *Server) handleRestoreReadDB(w http.ResponseWriter, r *http.Request) {
	cmd := &commands.RestoreReadDB{}
	if err := s.dispatcher.Dispatch(r.Context(), cmd); err != nil {
		s.dispatchError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"message": "republish request completed"})
}

// dispatchError maps the command failure taxonomy onto HTTP statuses.
func (s *Server) dispatchError(w http.ResponseWriter, err error) {
	var validation *post.ValidationError
	switch {
	case errors.As(err, &validation):
		s.writeError(w, http.StatusBadRequest, err)
	case errors.Is(err, eventstore.ErrConcurrencyConflict):
		s.writeError(w, http.StatusConflict, err)
	case errors.Is(err, eventstore.ErrAggregateNotFound):
		s.writeError(w, http.StatusNotFound, err)
	default:
		s.log.Error("command failed", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, errors.New("error while processing request"))
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Error("could not write response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, map[string]string{"message": err.Error()})
}
