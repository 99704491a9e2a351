package store

import (
	"context"
	"errors"
	"time"
)

// ErrDuplicateEmail is returned by UserRepo.Create when the email is taken.
var ErrDuplicateEmail = errors.New("email already registered")

// User is a registered account. PasswordHash is never the plaintext.
type User struct {
	ID           int
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser carries the fields needed to create a user.
type NewUser struct {
	Username     string
	Email        string
	PasswordHash string
}

// UserRepo persists user accounts.
type UserRepo interface {
	// Create inserts a user and returns it with ID and timestamps set.
	Create(ctx context.Context, u NewUser) (*User, error)

	// GetByID returns the user, or nil if none exists.
	GetByID(ctx context.Context, id int) (*User, error)

	// GetByEmail returns the user, or nil if none exists.
	GetByEmail(ctx context.Context, email string) (*User, error)

	// List returns all users ordered by ID.
	List(ctx context.Context) ([]User, error)

	// DeleteAll removes every user and returns how many were removed.
	DeleteAll(ctx context.Context) (int, error)
}

// AuthEventKind names what happened.
type AuthEventKind string

const (
	EventRegister    AuthEventKind = "register"
	EventLogin       AuthEventKind = "login"
	EventLoginFailed AuthEventKind = "login_failed"
	EventLogout      AuthEventKind = "logout"
)

// AuthEventData captures the data for a single auth event.
type AuthEventData struct {
	Kind   AuthEventKind
	UserID int // 0 when no account is involved
	Email  string
}

// AuthEvent is a stored auth event.
type AuthEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	Kind      AuthEventKind
	UserID    int
	Email     string
}

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit int           // max results (0 = unlimited)
	After int64         // sequence > After
	Kind  AuthEventKind // empty = all kinds
}

// EventRepo provides append and query access to auth events.
type EventRepo interface {
	// AppendAuthEvent records an auth event with the next global sequence.
	AppendAuthEvent(ctx context.Context, data AuthEventData) error

	// QueryAuthEvents returns events newest first.
	QueryAuthEvents(ctx context.Context, opts QueryOpts) ([]AuthEvent, error)

	// DeleteAll removes every event and returns how many were removed.
	DeleteAll(ctx context.Context) (int, error)
}
