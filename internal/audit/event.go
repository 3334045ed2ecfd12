// Package audit publishes session lifecycle events (login, registration,
// logout). Publishing is best effort: callers log failures and carry on.
package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EventType names a session lifecycle transition.
type EventType string

const (
	EventLogin    EventType = "session.login"
	EventRegister EventType = "session.register"
	EventLogout   EventType = "session.logout"
)

// Event is one session lifecycle record. It never carries credentials.
type Event struct {
	ID           string    `json:"id"`
	Type         EventType `json:"type"`
	Email        string    `json:"email,omitempty"`
	Role         string    `json:"role,omitempty"`
	Organization string    `json:"organization,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// NewEvent creates an event with a fresh ID and the current time.
func NewEvent(t EventType, email, role, organization string) Event {
	return Event{
		ID:           uuid.NewString(),
		Type:         t,
		Email:        email,
		Role:         role,
		Organization: organization,
		Timestamp:    time.Now().UTC(),
	}
}

// ToJSON converts the event to JSON bytes
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// Publisher delivers events somewhere.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Discard is a Publisher that drops every event.
type Discard struct{}

func (Discard) Publish(context.Context, Event) error { return nil }
