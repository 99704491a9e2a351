package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultLifetime is how long a session stays valid without activity.
const DefaultLifetime = 15 * time.Minute

// Session is the signed-in user's state.
type Session struct {
	ID        string
	UserID    int
	Username  string
	StartedAt time.Time
	ExpiresAt time.Time
}

// Manager holds at most one session. It is safe for concurrent use: Bubble
// Tea commands write it while View reads it.
type Manager struct {
	mu       sync.Mutex
	current  *Session
	lifetime time.Duration
	now      func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// NewManager creates a Manager. A non-positive lifetime selects DefaultLifetime.
func NewManager(lifetime time.Duration, opts ...Option) *Manager {
	if lifetime <= 0 {
		lifetime = DefaultLifetime
	}
	m := &Manager{lifetime: lifetime, now: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Start replaces any existing session with a fresh one for the user.
func (m *Manager) Start(userID int, username string) Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	s := &Session{
		ID:        uuid.New().String(),
		UserID:    userID,
		Username:  username,
		StartedAt: now,
		ExpiresAt: now.Add(m.lifetime),
	}
	m.current = s
	return *s
}

// Current returns the live session and extends its expiry. An expired
// session is dropped and reported as absent.
func (m *Manager) Current() (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == nil {
		return Session{}, false
	}
	now := m.now()
	if !now.Before(m.current.ExpiresAt) {
		m.current = nil
		return Session{}, false
	}
	m.current.ExpiresAt = now.Add(m.lifetime)
	return *m.current, true
}

// Peek returns the session without extending it. Used for display.
func (m *Manager) Peek() (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == nil || !m.now().Before(m.current.ExpiresAt) {
		return Session{}, false
	}
	return *m.current, true
}

// Clear ends the session and returns it, if there was one.
func (m *Manager) Clear() (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == nil {
		return Session{}, false
	}
	s := *m.current
	m.current = nil
	return s, true
}

// Lifetime returns the configured lifetime.
func (m *Manager) Lifetime() time.Duration {
	return m.lifetime
}
