package login

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/passgate/internal/auth"
	"github.com/abhisek/passgate/internal/router"
	"github.com/abhisek/passgate/internal/screen"
	"github.com/abhisek/passgate/internal/session"
	"github.com/abhisek/passgate/internal/strength"
	"github.com/abhisek/passgate/internal/ui/components"
	"github.com/abhisek/passgate/internal/ui/layout"
	"github.com/abhisek/passgate/internal/ui/theme"
)

// MsgLoggedIn is flashed on the dashboard after a successful login.
const MsgLoggedIn = "Login successful!"

// Authenticator signs users in.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (session.Session, error)
}

type loginResultMsg struct {
	err error
}

// LoginScreen asks for email and password.
type LoginScreen struct {
	svc              Authenticator
	dashboardFactory func() screen.Screen
	form             *components.Form
	submitting       bool
}

var (
	_ screen.Screen    = (*LoginScreen)(nil)
	_ strength.Locator = (*LoginScreen)(nil)
)

// New builds the login form. The form has no strength meter, so attaching
// one is a no-op.
func New(svc Authenticator, dashboardFactory func() screen.Screen) *LoginScreen {
	s := &LoginScreen{
		svc:              svc,
		dashboardFactory: dashboardFactory,
	}
	s.form = components.NewForm(
		components.NewButton("LOG IN", false, s.submit),
		components.NewTextInput(auth.FieldEmail, "Email", "alice@example.com", 254),
		components.NewPasswordInput(auth.FieldPassword, "Password", ""),
	)
	strength.Attach(s)
	return s
}

// Source returns the form field with the given id.
func (s *LoginScreen) Source(id string) strength.Source {
	if in := s.form.Input(id); in != nil {
		return in
	}
	return nil
}

// Sink always returns nil: the login form shows no meter.
func (s *LoginScreen) Sink(string) strength.Sink {
	return nil
}

func (s *LoginScreen) Init() tea.Cmd {
	return s.form.Init()
}

func (s *LoginScreen) submit() tea.Cmd {
	if s.submitting {
		return nil
	}
	s.submitting = true
	svc := s.svc
	email, password := s.form.Value(auth.FieldEmail), s.form.Value(auth.FieldPassword)
	return func() tea.Msg {
		_, err := svc.Login(context.Background(), email, password)
		return loginResultMsg{err: err}
	}
}

func (s *LoginScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResultMsg:
		s.submitting = false
		if msg.err != nil {
			s.form.Input(auth.FieldPassword).SetValue("")
			return s, screen.Flash(screen.FlashError, auth.Message(msg.err))
		}
		return s, tea.Batch(
			router.Replace(s.dashboardFactory()),
			screen.Flash(screen.FlashSuccess, MsgLoggedIn),
		)
	}

	if s.submitting {
		return s, nil
	}
	return s, s.form.Update(msg)
}

func (s *LoginScreen) View(width, height int) string {
	rows := []string{
		theme.Title.Render("Welcome back"),
		"",
		s.form.View(),
	}
	if s.submitting {
		rows = append(rows, "", theme.Hint.Render("Checking…"))
	}
	content := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (s *LoginScreen) Title() string {
	return "Log In"
}

func (s *LoginScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Log in"},
		{Key: "Esc", Description: "Back"},
	}
}
