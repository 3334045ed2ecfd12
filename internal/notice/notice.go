// Package notice collects user-visible notifications raised while a page is
// being rendered. A Board travels in the request context so that any layer
// (gateway, auth flow, handlers) can post to it without extra parameters.
package notice

import (
	"context"
	"sync"
)

// Kind is the visual category of a notification.
type Kind string

const (
	Success Kind = "success"
	Error   Kind = "error"
	Warning Kind = "warning"
	Info    Kind = "info"
)

// Notice is a single notification line.
type Notice struct {
	Kind    Kind
	Message string
}

// Board accumulates notices for one render. The zero value is ready to use
// and a nil *Board silently drops everything posted to it.
type Board struct {
	mu    sync.Mutex
	items []Notice
}

// NewBoard returns a board seeded with the given notices.
func NewBoard(seed ...Notice) *Board {
	b := &Board{}
	b.items = append(b.items, seed...)
	return b
}

// Add posts a notice of the given kind.
func (b *Board) Add(kind Kind, msg string) {
	if b == nil || msg == "" {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.items = append(b.items, Notice{Kind: kind, Message: msg})
}

func (b *Board) Success(msg string) { b.Add(Success, msg) }
func (b *Board) Error(msg string)   { b.Add(Error, msg) }
func (b *Board) Info(msg string)    { b.Add(Info, msg) }

// Items returns a copy of the posted notices in order.
func (b *Board) Items() []Notice {
	if b == nil {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Notice, len(b.items))
	copy(out, b.items)
	return out
}

// HasErrors reports whether any error notice was posted.
func (b *Board) HasErrors() bool {
	for _, n := range b.Items() {
		if n.Kind == Error {
			return true
		}
	}
	return false
}

type contextKey struct{}

// WithBoard attaches a board to ctx.
func WithBoard(ctx context.Context, b *Board) context.Context {
	return context.WithValue(ctx, contextKey{}, b)
}

// FromContext returns the board attached to ctx, or nil.
func FromContext(ctx context.Context) *Board {
	b, _ := ctx.Value(contextKey{}).(*Board)
	return b
}
