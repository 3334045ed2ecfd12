// Package session holds per-browser authentication state in process memory.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"fundboard/internal/core"
	"fundboard/internal/notice"
)

var ErrEmptyCredential = errors.New("empty credential")

// Snapshot is an immutable copy of a session's state. User is non-nil if and
// only if Credential is non-empty.
type Snapshot struct {
	Credential string
	User       *core.UserProfile
}

// Authenticated reports whether a credential is held.
func (s Snapshot) Authenticated() bool { return s.Credential != "" }

// Session is the state of one interactive browser session. Both fields change
// together under the lock, so readers never see a credential without a user.
type Session struct {
	id  string
	now func() time.Time

	mu         sync.Mutex
	credential string
	user       *core.UserProfile
	expiresAt  time.Time
	flash      []notice.Notice
}

// New returns an empty session.
func New(id string) *Session {
	return &Session{id: id, now: time.Now}
}

// ID returns the opaque session identifier.
func (s *Session) ID() string { return s.id }

// LogID returns a shortened identifier that is safe to write to logs.
func (s *Session) LogID() string { return shortID(s.id) }

// Get returns the current state. A JWT credential past its exp claim is
// dropped first, putting the session back in its initial state.
func (s *Session) Get() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.credential != "" && !s.expiresAt.IsZero() && !s.now().Before(s.expiresAt) {
		s.reset()
	}
	if s.credential == "" {
		return Snapshot{}
	}
	u := *s.user
	return Snapshot{Credential: s.credential, User: &u}
}

// Authenticated reports whether the session currently holds a credential.
func (s *Session) Authenticated() bool { return s.Get().Authenticated() }

// SetAuthenticated replaces credential and user in one step.
func (s *Session) SetAuthenticated(credential string, user core.UserProfile) error {
	if credential == "" {
		return ErrEmptyCredential
	}
	exp, _ := credentialExpiry(credential)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.credential = credential
	s.user = &user
	s.expiresAt = exp
	return nil
}

// Clear resets the session to its initial empty state.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
	s.flash = nil
}

func (s *Session) reset() {
	s.credential = ""
	s.user = nil
	s.expiresAt = time.Time{}
}

// handOver moves the whole state, flash included, to another session and
// resets s.
func (s *Session) handOver(to *Session) {
	s.mu.Lock()
	credential, user, expiresAt, flash := s.credential, s.user, s.expiresAt, s.flash
	s.reset()
	s.flash = nil
	s.mu.Unlock()

	to.mu.Lock()
	to.credential, to.user, to.expiresAt, to.flash = credential, user, expiresAt, flash
	to.mu.Unlock()
}

// Flash queues notices to be shown on the next render.
func (s *Session) Flash(items ...notice.Notice) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flash = append(s.flash, items...)
}

// TakeFlash returns and forgets queued notices.
func (s *Session) TakeFlash() []notice.Notice {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.flash
	s.flash = nil
	return out
}

// credentialExpiry reads the exp claim of a JWT without verifying it; the
// backend owns verification. Opaque tokens report ok=false.
func credentialExpiry(token string) (time.Time, bool) {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
