package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/abhisek/passgate/internal/session"
	"github.com/abhisek/passgate/internal/store"
)

// MsgPasswordTooLong is reported when bcrypt refuses the input.
const MsgPasswordTooLong = "Password must be at most 72 bytes long."

// Service implements registration, login and logout.
type Service struct {
	users    store.UserRepo
	events   store.EventRepo
	hasher   Hasher
	sessions *session.Manager
	log      *slog.Logger
}

// NewService wires a Service. events may be nil to skip the audit trail.
func NewService(users store.UserRepo, events store.EventRepo, hasher Hasher, sessions *session.Manager, log *slog.Logger) *Service {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Service{
		users:    users,
		events:   events,
		hasher:   hasher,
		sessions: sessions,
		log:      log.With("component", "auth"),
	}
}

// Sessions returns the session manager the service signs users into.
func (s *Service) Sessions() *session.Manager {
	return s.sessions
}

// Register validates in, hashes the password and stores the user.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*store.User, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	email := NormalizeEmail(in.Email)
	username := strings.TrimSpace(in.Username)

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		s.log.ErrorContext(ctx, "lookup user", "err", err)
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, newFieldError(FieldPassword, MsgPasswordTooLong)
		}
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u, err := s.users.Create(ctx, store.NewUser{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		s.log.ErrorContext(ctx, "create user", "err", err)
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}

	s.log.InfoContext(ctx, "user registered", "user_id", u.ID)
	s.record(ctx, store.AuthEventData{Kind: store.EventRegister, UserID: u.ID, Email: email})
	return u, nil
}

// Login checks the credentials and starts a session.
func (s *Service) Login(ctx context.Context, email, password string) (session.Session, error) {
	if err := validateLogin(email, password); err != nil {
		return session.Session{}, err
	}
	email = NormalizeEmail(email)

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		s.log.ErrorContext(ctx, "lookup user", "err", err)
		return session.Session{}, fmt.Errorf("%w: %v", ErrStore, err)
	}
	if u == nil {
		s.log.InfoContext(ctx, "login failed", "reason", "unknown email")
		s.record(ctx, store.AuthEventData{Kind: store.EventLoginFailed, Email: email})
		return session.Session{}, ErrInvalidCredentials
	}

	ok, err := s.hasher.Verify(password, u.PasswordHash)
	if err != nil {
		s.log.ErrorContext(ctx, "verify password", "user_id", u.ID, "err", err)
		return session.Session{}, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		s.log.InfoContext(ctx, "login failed", "reason", "wrong password", "user_id", u.ID)
		s.record(ctx, store.AuthEventData{Kind: store.EventLoginFailed, UserID: u.ID, Email: email})
		return session.Session{}, ErrInvalidCredentials
	}

	s.sessions.Clear()
	sess := s.sessions.Start(u.ID, u.Username)
	s.log.InfoContext(ctx, "user logged in", "user_id", u.ID, "session_id", sess.ID)
	s.record(ctx, store.AuthEventData{Kind: store.EventLogin, UserID: u.ID, Email: email})
	return sess, nil
}

// Logout ends the current session. It is a no-op when nobody is signed in.
func (s *Service) Logout(ctx context.Context) {
	sess, ok := s.sessions.Clear()
	if !ok {
		return
	}
	s.log.InfoContext(ctx, "user logged out", "user_id", sess.UserID, "session_id", sess.ID)
	s.record(ctx, store.AuthEventData{Kind: store.EventLogout, UserID: sess.UserID})
}

// CurrentUser returns the signed-in user, or nil when there is no live
// session or the account no longer exists.
func (s *Service) CurrentUser(ctx context.Context) (*store.User, error) {
	sess, ok := s.sessions.Current()
	if !ok {
		return nil, nil
	}
	u, err := s.users.GetByID(ctx, sess.UserID)
	if err != nil {
		s.log.ErrorContext(ctx, "lookup session user", "err", err)
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	if u == nil {
		s.sessions.Clear()
	}
	return u, nil
}

// record appends an audit event. Failures are logged and otherwise ignored.
func (s *Service) record(ctx context.Context, data store.AuthEventData) {
	if s.events == nil {
		return
	}
	if err := s.events.AppendAuthEvent(ctx, data); err != nil {
		s.log.WarnContext(ctx, "append auth event", "kind", data.Kind, "err", err)
	}
}
