package login

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/passgate/internal/auth"
	"github.com/abhisek/passgate/internal/router"
	"github.com/abhisek/passgate/internal/screen"
	"github.com/abhisek/passgate/internal/session"
	"github.com/abhisek/passgate/internal/strength"
)

type stubAuth struct {
	email, password string
	err             error
}

func (a *stubAuth) Login(_ context.Context, email, password string) (session.Session, error) {
	a.email, a.password = email, password
	if a.err != nil {
		return session.Session{}, a.err
	}
	return session.Session{ID: "s1", UserID: 1, Username: "alice"}, nil
}

type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                          { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                   { return "dash" }
func (s *stubScreen) Title() string                          { return "Dashboard" }

func newScreen(a Authenticator) *LoginScreen {
	return New(a, func() screen.Screen { return &stubScreen{} })
}

var (
	tab   = tea.KeyPressMsg{Code: tea.KeyTab}
	enter = tea.KeyPressMsg{Code: tea.KeyEnter}
)

func typeText(s *LoginScreen, text string) {
	for _, r := range text {
		s.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func submit(t *testing.T, s *LoginScreen, email, password string) []tea.Msg {
	t.Helper()
	typeText(s, email)
	s.Update(tab)
	typeText(s, password)
	_, cmd := s.Update(enter)
	msgs := collect(cmd)
	require.Len(t, msgs, 1)
	_, cmd = s.Update(msgs[0])
	return collect(cmd)
}

func TestNoMeterOnLoginForm(t *testing.T) {
	s := newScreen(&stubAuth{})
	assert.NotNil(t, s.Source(strength.PasswordInputID))
	assert.Nil(t, s.Sink(strength.MeterID))
	assert.False(t, strength.Attach(s), "attaching is a no-op without a meter")
}

func TestLoginSuccess(t *testing.T) {
	a := &stubAuth{}
	msgs := submit(t, newScreen(a), "alice@example.com", "Secret1!")

	assert.Equal(t, "alice@example.com", a.email)
	assert.Equal(t, "Secret1!", a.password)

	var replaced, flashed bool
	for _, m := range msgs {
		switch m := m.(type) {
		case router.ReplaceScreenMsg:
			replaced = m.Screen.Title() == "Dashboard"
		case screen.FlashMsg:
			flashed = m.Kind == screen.FlashSuccess && m.Text == MsgLoggedIn
		}
	}
	assert.True(t, replaced)
	assert.True(t, flashed)
}

func TestLoginFailureFlashesMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"bad credentials", auth.ErrInvalidCredentials, auth.MsgInvalidCredentials},
		{"blank", func() error {
			ve := &auth.ValidationError{}
			ve.Add(auth.FieldForm, auth.MsgLoginRequired)
			return ve
		}(), auth.MsgLoginRequired},
		{"store", auth.ErrStore, auth.MsgStoreFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newScreen(&stubAuth{err: tt.err})
			msgs := submit(t, s, "alice@example.com", "wrong")

			var flash *screen.FlashMsg
			for _, m := range msgs {
				if f, ok := m.(screen.FlashMsg); ok {
					flash = &f
				}
				_, isReplace := m.(router.ReplaceScreenMsg)
				assert.False(t, isReplace, "stays on login")
			}
			require.NotNil(t, flash)
			assert.Equal(t, screen.FlashError, flash.Kind)
			assert.Equal(t, tt.want, flash.Text)
			assert.Empty(t, s.form.Value(auth.FieldPassword), "password cleared")
			assert.Equal(t, "alice@example.com", s.form.Value(auth.FieldEmail), "email kept")
		})
	}
}
