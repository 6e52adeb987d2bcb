// Package hook is the phase-keyed handler registry the simulation loop fires
// at fixed points of every update.
package hook

import (
	"context"
	"errors"
	"fmt"
	"io"
	"reflect"
)

// Phase identifies a point in the update lifecycle.
type Phase int

// Lifecycle phases, in the order the loop fires them.
const (
	// PhaseRecordStatistics runs read-only observers that log derived statistics.
	PhaseRecordStatistics Phase = iota
	// PhaseEndOfUpdate runs after all per-update mutation has settled.
	PhaseEndOfUpdate
)

func (p Phase) String() string {
	switch p {
	case PhaseRecordStatistics:
		return "record-statistics"
	case PhaseEndOfUpdate:
		return "end-of-update"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Handler is invoked synchronously when its phase fires.
type Handler interface {
	Handle(ctx context.Context) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context) error

// Handle calls f.
func (f HandlerFunc) Handle(ctx context.Context) error {
	return f(ctx)
}

// Registry holds handlers per phase. It is owned by a single loop and is not
// safe for concurrent use.
type Registry struct {
	handlers map[Phase][]Handler
	order    []Handler
	closed   bool
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[Phase][]Handler)}
}

// Register appends h to the handlers for phase.
func (r *Registry) Register(phase Phase, h Handler) {
	r.handlers[phase] = append(r.handlers[phase], h)
	r.order = append(r.order, h)
}

// Len returns the number of handlers registered for phase.
func (r *Registry) Len(phase Phase) int {
	return len(r.handlers[phase])
}

// Fire invokes every handler for phase in registration order. The first
// error stops the phase and is returned.
func (r *Registry) Fire(ctx context.Context, phase Phase) error {
	for i, h := range r.handlers[phase] {
		if err := h.Handle(ctx); err != nil {
			return fmt.Errorf("%s handler %d: %w", phase, i, err)
		}
	}
	return nil
}

// Close closes every registered handler that implements io.Closer in
// registration order. A pointer handler registered under several phases is
// closed once; closers of any other kind are closed once per registration.
func (r *Registry) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true

	var errs []error
	seen := make(map[io.Closer]bool)
	for _, h := range r.order {
		c, ok := h.(io.Closer)
		if !ok {
			continue
		}
		if reflect.ValueOf(c).Kind() == reflect.Pointer {
			if seen[c] {
				continue
			}
			seen[c] = true
		}
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
