package session

import (
	"time"

	"github.com/google/uuid"

	"fundboard/internal/cache"
	"fundboard/internal/log"
)

// StoreConfig configures a Store.
type StoreConfig struct {
	IdleTTL         time.Duration
	MaxSessions     int
	CleanupInterval time.Duration
	Logger          *log.Logger
}

// DefaultStoreConfig returns the defaults used when nothing is configured.
func DefaultStoreConfig() StoreConfig {
	return StoreConfig{
		IdleTTL:         30 * time.Minute,
		MaxSessions:     10000,
		CleanupInterval: 5 * time.Minute,
	}
}

// Store maps session IDs to sessions. Sessions idle longer than IdleTTL are
// forgotten; nothing outlives the process.
type Store struct {
	sessions *cache.LRUCache[*Session]
	manager  *cache.Manager
	logger   *log.Logger
	now      func() time.Time
}

// NewStore creates a store and starts its background cleanup.
func NewStore(cfg StoreConfig) *Store {
	def := DefaultStoreConfig()
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = def.IdleTTL
	}
	if cfg.MaxSessions <= 0 {
		cfg.MaxSessions = def.MaxSessions
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = def.CleanupInterval
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Discard()
	}
	logger = logger.WithComponent(log.ComponentSession)

	s := &Store{
		logger: logger,
		now:    time.Now,
	}
	s.sessions = cache.NewLRUCache[*Session](cfg.MaxSessions, cfg.IdleTTL).
		OnEvict(func(id string, _ *Session) {
			logger.Debug("Session evicted", log.FieldSessionID, shortID(id))
		})
	s.manager = cache.NewManager(logger)
	s.manager.Register(s.sessions)
	s.manager.StartCleanup(cfg.CleanupInterval)
	return s
}

// withClock replaces the time source of the store and of sessions it creates.
func (s *Store) withClock(now func() time.Time) *Store {
	s.now = now
	s.sessions.WithClock(now)
	return s
}

// Lookup returns the live session for id and restarts its idle timer.
func (s *Store) Lookup(id string) (*Session, bool) {
	if id == "" {
		return nil, false
	}
	sess, ok := s.sessions.Get(id)
	if !ok {
		return nil, false
	}
	s.sessions.Touch(id)
	return sess, true
}

// Begin returns a new empty session under a fresh random ID without storing
// it. Anonymous visitors get one of these per request, so a flood of
// cookieless requests cannot push signed-in sessions out of the store.
func (s *Store) Begin() *Session {
	sess := New(uuid.NewString())
	sess.now = s.now
	return sess
}

// Keep stores sess unless it is already stored, and reports whether it was
// added.
func (s *Store) Keep(sess *Session) bool {
	if _, ok := s.sessions.Get(sess.ID()); ok {
		return false
	}
	s.sessions.Set(sess.ID(), sess)
	s.logger.Debug("Session stored", log.FieldSessionID, shortID(sess.ID()))
	return true
}

// Rotate moves the state of sess to a stored session under a fresh ID and
// forgets the old ID. sess is left empty.
func (s *Store) Rotate(sess *Session) *Session {
	next := s.Begin()
	sess.handOver(next)
	s.sessions.Delete(sess.ID())
	s.sessions.Set(next.ID(), next)
	s.logger.Debug("Session rotated",
		"previous_session_id", shortID(sess.ID()),
		log.FieldSessionID, shortID(next.ID()))
	return next
}

// Forget removes the session stored under id.
func (s *Store) Forget(id string) {
	s.sessions.Delete(id)
}

// Resolve returns the stored session for id. When id is unknown or expired it
// returns a new session from Begin, which is not stored; found reports which
// case happened.
func (s *Store) Resolve(id string) (sess *Session, found bool) {
	if sess, ok := s.Lookup(id); ok {
		return sess, true
	}
	return s.Begin(), false
}

// Len returns the number of live sessions.
func (s *Store) Len() int { return s.sessions.Size() }

// Close stops background cleanup.
func (s *Store) Close() { s.manager.Stop() }

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
