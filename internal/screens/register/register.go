package register

import (
	"context"
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/passgate/internal/auth"
	"github.com/abhisek/passgate/internal/router"
	"github.com/abhisek/passgate/internal/screen"
	"github.com/abhisek/passgate/internal/store"
	"github.com/abhisek/passgate/internal/strength"
	"github.com/abhisek/passgate/internal/ui/components"
	"github.com/abhisek/passgate/internal/ui/layout"
	"github.com/abhisek/passgate/internal/ui/theme"
)

// MsgRegistered is flashed on the login screen after a successful sign-up.
const MsgRegistered = "Registration successful! Please log in."

const (
	meterWidth = 24
	emailLimit = 254
)

// Registrar creates accounts.
type Registrar interface {
	Register(ctx context.Context, in auth.RegisterInput) (*store.User, error)
}

// Options tunes the screen.
type Options struct {
	// MeterColors adds the colored bar under the strength label.
	MeterColors bool
}

type registerResultMsg struct {
	user *store.User
	err  error
}

// RegisterScreen is the sign-up form with the password strength meter.
type RegisterScreen struct {
	svc          Registrar
	loginFactory func() screen.Screen
	form         *components.Form
	meter        *components.StrengthMeter
	meterBound   bool
	submitting   bool
}

var (
	_ screen.Screen    = (*RegisterScreen)(nil)
	_ strength.Locator = (*RegisterScreen)(nil)
)

// New builds the form and attaches the strength meter to its password field.
func New(svc Registrar, loginFactory func() screen.Screen, opts Options) *RegisterScreen {
	s := &RegisterScreen{
		svc:          svc,
		loginFactory: loginFactory,
		meter:        components.NewStrengthMeter(meterWidth),
	}
	s.form = components.NewForm(
		components.NewButton("REGISTER", false, s.submit),
		components.NewTextInput(auth.FieldUsername, "Username", "alice", auth.MaxUsernameLength),
		components.NewTextInput(auth.FieldEmail, "Email", "alice@example.com", emailLimit),
		components.NewPasswordInput(auth.FieldPassword, "Password", ""),
		components.NewPasswordInput(auth.FieldPasswordConfirm, "Confirm password", ""),
	)

	var bindOpts []strength.BindOption
	if opts.MeterColors {
		bindOpts = append(bindOpts, strength.WithStyler(s.meter.SetLevel))
	}
	s.meterBound = strength.Attach(s, bindOpts...)
	return s
}

// Source returns the form field with the given id.
func (s *RegisterScreen) Source(id string) strength.Source {
	if in := s.form.Input(id); in != nil {
		return in
	}
	return nil
}

// Sink returns the strength meter when asked for it by id.
func (s *RegisterScreen) Sink(id string) strength.Sink {
	if s.meter != nil && id == s.meter.ID {
		return s.meter
	}
	return nil
}

// MeterBound reports whether the meter was attached to the password field.
func (s *RegisterScreen) MeterBound() bool {
	return s.meterBound
}

// MeterText returns the current strength label.
func (s *RegisterScreen) MeterText() string {
	return s.meter.Text()
}

func (s *RegisterScreen) Init() tea.Cmd {
	return s.form.Init()
}

func (s *RegisterScreen) input() auth.RegisterInput {
	return auth.RegisterInput{
		Username:        s.form.Value(auth.FieldUsername),
		Email:           s.form.Value(auth.FieldEmail),
		Password:        s.form.Value(auth.FieldPassword),
		PasswordConfirm: s.form.Value(auth.FieldPasswordConfirm),
	}
}

// submit runs the cheap checks locally and hands the rest to the service.
func (s *RegisterScreen) submit() tea.Cmd {
	if s.submitting {
		return nil
	}
	s.form.ClearErrors()

	in := s.input()
	if err := in.CheckRequired(); err != nil {
		s.showError(err)
		return nil
	}

	s.submitting = true
	svc := s.svc
	return func() tea.Msg {
		u, err := svc.Register(context.Background(), in)
		return registerResultMsg{user: u, err: err}
	}
}

func (s *RegisterScreen) showError(err error) {
	var ve *auth.ValidationError
	switch {
	case errors.As(err, &ve):
		for field, msgs := range ve.Fields {
			s.form.SetError(field, strings.Join(msgs, "\n"))
		}
	case errors.Is(err, auth.ErrEmailTaken):
		s.form.SetError(auth.FieldEmail, auth.Message(err))
	default:
		s.form.SetError(components.FormErrorKey, auth.Message(err))
	}
}

func (s *RegisterScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case registerResultMsg:
		s.submitting = false
		if msg.err != nil {
			s.showError(msg.err)
			return s, nil
		}
		return s, tea.Batch(
			router.Replace(s.loginFactory()),
			screen.Flash(screen.FlashSuccess, MsgRegistered),
		)
	}

	if s.submitting {
		return s, nil
	}
	return s, s.form.Update(msg)
}

func (s *RegisterScreen) View(width, height int) string {
	heading := theme.Title.Render("Create an account")

	rows := []string{
		heading,
		"",
		s.form.Row(auth.FieldUsername),
		s.form.Row(auth.FieldEmail),
		s.form.Row(auth.FieldPassword),
		s.form.Indent(s.meter.View()),
		s.form.Row(auth.FieldPasswordConfirm),
		"",
		s.form.Footer(),
	}
	if s.submitting {
		rows = append(rows, "", theme.Hint.Render("Registering…"))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (s *RegisterScreen) Title() string {
	return "Register"
}

func (s *RegisterScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "Back"},
	}
}
