package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/passgate/internal/router"
	"github.com/abhisek/passgate/internal/screen"
	"github.com/abhisek/passgate/internal/ui/components"
	"github.com/abhisek/passgate/internal/ui/layout"
	"github.com/abhisek/passgate/internal/ui/theme"
)

// Factories builds the screens reachable from the home menu.
type Factories struct {
	Register  func() screen.Screen
	Login     func() screen.Screen
	Dashboard func() screen.Screen
}

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	menu components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)

// MenuLabels are the home menu entries, top to bottom.
var MenuLabels = []string{"REGISTER", "LOG IN", "DASHBOARD", "EXIT"}

// New creates a new HomeScreen. A nil factory disables its entry.
func New(f Factories) *HomeScreen {
	push := func(factory func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			return router.Push(factory())
		}
	}

	items := []components.MenuItem{
		{Label: MenuLabels[0], Disabled: f.Register == nil},
		{Label: MenuLabels[1], Disabled: f.Login == nil},
		{Label: MenuLabels[2], Disabled: f.Dashboard == nil},
		{Label: MenuLabels[3], Action: func() tea.Cmd { return tea.Quit }},
	}
	if f.Register != nil {
		items[0].Action = push(f.Register)
	}
	if f.Login != nil {
		items[1].Action = push(f.Login)
	}
	if f.Dashboard != nil {
		items[2].Action = push(f.Dashboard)
	}

	return &HomeScreen{menu: components.NewMenu(items)}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	title := theme.Title.Render("P A S S G A T E")
	subtitle := theme.Subtitle.Render("Sign up with a password you can trust.")

	menu := theme.Card.Width(30).Render(strings.TrimRight(h.menu.View(), "\n"))

	content := lipgloss.JoinVertical(lipgloss.Center, title, subtitle, "", menu)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}
