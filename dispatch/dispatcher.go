package dispatch

import (
	"context"
	"errors"
	"fmt"

	"github.com/postfeed/postfeed/eventsourcing"
)

// ErrNoHandler signals a dispatched command kind with no registered handler.
var ErrNoHandler = errors.New("dispatch: no handler registered")

// HandlerFunc is the single entry point a command kind routes to.
type HandlerFunc func(ctx context.Context, command eventsourcing.Command) error

// Dispatcher routes commands to handlers by their kind. It knows nothing
// about command semantics.
//
// The registry is populated once at startup; after that it is read-only and
// safe for concurrent Dispatch calls without locking.
type Dispatcher struct {
	handlers map[string]HandlerFunc
}

// New returns an empty Dispatcher.
func New() *Dispatcher {
	return &Dispatcher{handlers: map[string]HandlerFunc{}}
}

// Register maps a command kind to its handler. Registering the same kind
// again overwrites the previous handler; the last registration wins.
func (d *Dispatcher) Register(kind string, handler HandlerFunc) {
	d.handlers[kind] = handler
}

// Dispatch routes the command to the handler registered for its kind.
func (d *Dispatcher) Dispatch(ctx context.Context, command eventsourcing.Command) error {
	handler, ok := d.handlers[command.CommandType()]
	if !ok {
		return fmt.Errorf("%w for command kind %q", ErrNoHandler, command.CommandType())
	}
	return handler(ctx, command)
}
