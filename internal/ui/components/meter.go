package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/passgate/internal/strength"
	"github.com/abhisek/passgate/internal/ui/theme"
)

// StrengthMeter shows the strength label of the password field. It is the
// strength.Sink. The colored bar only appears once SetLevel has been called,
// which happens when the binding is given a styler.
type StrengthMeter struct {
	ID     string
	Width  int
	text   string
	level  strength.Level
	styled bool
}

var _ strength.Sink = (*StrengthMeter)(nil)

// NewStrengthMeter creates an empty meter.
func NewStrengthMeter(width int) *StrengthMeter {
	return &StrengthMeter{ID: strength.MeterID, Width: width}
}

// SetText replaces the label text.
func (m *StrengthMeter) SetText(text string) {
	m.text = text
}

// Text returns the label text.
func (m *StrengthMeter) Text() string {
	return m.text
}

// SetLevel records the level for the colored bar.
func (m *StrengthMeter) SetLevel(l strength.Level) {
	m.level = l
	m.styled = true
}

// Level returns the last level passed to SetLevel.
func (m *StrengthMeter) Level() strength.Level {
	return m.level
}

// levelFraction maps a level onto the bar fill.
func levelFraction(l strength.Level) float64 {
	switch l {
	case strength.LevelTooShort:
		return 0.1
	case strength.LevelWeak:
		return 0.25
	case strength.LevelMedium:
		return 0.5
	case strength.LevelStrong:
		return 0.75
	case strength.LevelVeryStrong:
		return 1
	}
	return 0
}

// View renders the label and, when styled, the bar beneath it.
func (m *StrengthMeter) View() string {
	if !m.styled {
		return lipgloss.NewStyle().Foreground(theme.Text).Render(m.text)
	}
	label := lipgloss.NewStyle().Foreground(theme.LevelColor(m.level)).Bold(true).Render(m.text)
	if m.level == strength.LevelNone {
		return label
	}
	bar := NewProgressBar(levelFraction(m.level), m.Width, theme.LevelColor(m.level))
	return label + "\n" + bar.View()
}
