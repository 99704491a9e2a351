package app

import (
	"fmt"
	"log/slog"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/passgate/internal/auth"
	"github.com/abhisek/passgate/internal/router"
	"github.com/abhisek/passgate/internal/screen"
	"github.com/abhisek/passgate/internal/screens/dashboard"
	"github.com/abhisek/passgate/internal/screens/home"
	"github.com/abhisek/passgate/internal/screens/login"
	"github.com/abhisek/passgate/internal/screens/register"
	"github.com/abhisek/passgate/internal/screens/welcome"
	"github.com/abhisek/passgate/internal/session"
	"github.com/abhisek/passgate/internal/ui/layout"
	"github.com/abhisek/passgate/internal/ui/theme"
)

// Options holds the dependencies of the TUI.
type Options struct {
	Auth        *auth.Service
	MeterColors bool
	Log         *slog.Logger
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router   *router.Router
	sessions *session.Manager
	log      *slog.Logger
	flash    *screen.FlashMsg
	width    int
	height   int
}

// newAppModel wires the screens together and starts on the welcome splash.
func newAppModel(opts Options) AppModel {
	log := opts.Log
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	var newLogin, newDashboard func() screen.Screen
	newDashboard = func() screen.Screen {
		return dashboard.New(opts.Auth, newLogin)
	}
	newLogin = func() screen.Screen {
		return login.New(opts.Auth, newDashboard)
	}
	newRegister := func() screen.Screen {
		return register.New(opts.Auth, newLogin, register.Options{MeterColors: opts.MeterColors})
	}
	newHome := func() screen.Screen {
		return home.New(home.Factories{
			Register:  newRegister,
			Login:     newLogin,
			Dashboard: newDashboard,
		})
	}

	var sessions *session.Manager
	if opts.Auth != nil {
		sessions = opts.Auth.Sessions()
	}

	return AppModel{
		router:   router.New(welcome.New(newHome)),
		sessions: sessions,
		log:      log.With("component", "tui"),
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case screen.FlashMsg:
		m.flash = &msg
		return m, nil

	case router.PushScreenMsg:
		m.log.Debug("push screen", "title", msg.Screen.Title())
	case router.ReplaceScreenMsg:
		m.log.Debug("replace screen", "title", msg.Screen.Title())

	case tea.KeyMsg:
		m.flash = nil
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// currentUser returns the signed-in username for the header. It does not
// extend the session.
func (m AppModel) currentUser() string {
	if m.sessions == nil {
		return ""
	}
	if sess, ok := m.sessions.Peek(); ok {
		return sess.Username
	}
	return ""
}

func (m AppModel) renderFlash() string {
	if m.flash == nil || m.flash.Text == "" {
		return ""
	}
	style := theme.FlashInfo
	switch m.flash.Kind {
	case screen.FlashSuccess:
		style = theme.FlashSuccess
	case screen.FlashError:
		style = theme.FlashError
	}
	return lipgloss.NewStyle().Width(m.width).Align(lipgloss.Center).Render(style.Render(m.flash.Text))
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render draws the whole frame for the current terminal size.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.currentUser(), m.width)

	var footerHints []layout.KeyHint
	if p, ok := active.(screen.KeyHintProvider); ok {
		footerHints = p.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "Any key", Description: "Continue"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)
	if flash := m.renderFlash(); flash != "" {
		footer = flash + "\n" + footer
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
