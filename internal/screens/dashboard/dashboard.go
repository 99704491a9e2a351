package dashboard

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/passgate/internal/auth"
	"github.com/abhisek/passgate/internal/router"
	"github.com/abhisek/passgate/internal/screen"
	"github.com/abhisek/passgate/internal/store"
	"github.com/abhisek/passgate/internal/ui/layout"
	"github.com/abhisek/passgate/internal/ui/theme"
)

// Flash texts.
const (
	MsgLoginRequired = "Please log in to access this page."
	MsgLoggedOut     = "You have been successfully logged out."
)

// Account exposes the signed-in user.
type Account interface {
	CurrentUser(ctx context.Context) (*store.User, error)
	Logout(ctx context.Context)
}

type userLoadedMsg struct {
	user *store.User
	err  error
}

type loggedOutMsg struct{}

// DashboardScreen greets the signed-in user.
type DashboardScreen struct {
	acc          Account
	loginFactory func() screen.Screen
	user         *store.User
	leaving      bool
}

var _ screen.Screen = (*DashboardScreen)(nil)

// New creates the dashboard. It sends the user to the login screen when
// there is no live session.
func New(acc Account, loginFactory func() screen.Screen) *DashboardScreen {
	return &DashboardScreen{acc: acc, loginFactory: loginFactory}
}

func (d *DashboardScreen) Init() tea.Cmd {
	acc := d.acc
	return func() tea.Msg {
		u, err := acc.CurrentUser(context.Background())
		return userLoadedMsg{user: u, err: err}
	}
}

func (d *DashboardScreen) toLogin(kind screen.FlashKind, text string) tea.Cmd {
	if d.leaving {
		return nil
	}
	d.leaving = true
	return tea.Batch(
		router.Replace(d.loginFactory()),
		screen.Flash(kind, text),
	)
}

func (d *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case userLoadedMsg:
		if msg.err != nil {
			return d, d.toLogin(screen.FlashError, auth.Message(msg.err))
		}
		if msg.user == nil {
			return d, d.toLogin(screen.FlashInfo, MsgLoginRequired)
		}
		d.user = msg.user
		return d, nil

	case loggedOutMsg:
		return d, d.toLogin(screen.FlashSuccess, MsgLoggedOut)

	case tea.KeyPressMsg:
		switch msg.String() {
		case "l", "L":
			if d.user == nil || d.leaving {
				return d, nil
			}
			acc := d.acc
			return d, func() tea.Msg {
				acc.Logout(context.Background())
				return loggedOutMsg{}
			}
		}
	}
	return d, nil
}

func (d *DashboardScreen) View(width, height int) string {
	if d.user == nil {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, theme.Hint.Render("Loading…"))
	}

	greeting := theme.Title.Render(fmt.Sprintf("Welcome, %s!", d.user.Username))
	details := theme.Card.Render(lipgloss.JoinVertical(lipgloss.Left,
		theme.Body.Render("Email         "+d.user.Email),
		theme.Body.Render("Member since  "+d.user.CreatedAt.Local().Format("2006-01-02 15:04")),
	))
	hint := theme.Hint.Render("press L to log out")

	content := lipgloss.JoinVertical(lipgloss.Center, greeting, "", details, "", hint)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (d *DashboardScreen) Title() string {
	return "Dashboard"
}

func (d *DashboardScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "L", Description: "Log out"},
		{Key: "Esc", Description: "Back"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}
