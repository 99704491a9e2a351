package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/passgate/internal/strength"
)

// Color palette
var (
	Primary   = lipgloss.Color("#6366F1") // Indigo
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0F172A") // Deep Navy
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Strength meter colors, weakest to strongest.
var (
	MeterTooShort   = lipgloss.Color("#EF4444")
	MeterWeak       = lipgloss.Color("#F97316")
	MeterMedium     = lipgloss.Color("#EAB308")
	MeterStrong     = lipgloss.Color("#84CC16")
	MeterVeryStrong = lipgloss.Color("#22C55E")
)

// LevelColor returns the meter color for a strength level. LevelNone maps
// to the dim text color.
func LevelColor(l strength.Level) color.Color {
	switch l {
	case strength.LevelTooShort:
		return MeterTooShort
	case strength.LevelWeak:
		return MeterWeak
	case strength.LevelMedium:
		return MeterMedium
	case strength.LevelStrong:
		return MeterStrong
	case strength.LevelVeryStrong:
		return MeterVeryStrong
	}
	return TextDim
}

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

// Forms
var (
	FieldLabel = lipgloss.NewStyle().
			Foreground(TextDim)

	FieldLabelFocused = lipgloss.NewStyle().
				Foreground(Primary).
				Bold(true)

	FieldError = lipgloss.NewStyle().
			Foreground(Error)
)

// Flash messages
var (
	FlashSuccess = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	FlashError = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	FlashInfo = lipgloss.NewStyle().
			Foreground(Accent)
)

// Components
var (
	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)

	ButtonActive = lipgloss.NewStyle().
			Background(Primary).
			Foreground(Text).
			Bold(true).
			Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
			Background(BgCard).
			Foreground(TextDim).
			Padding(0, 2)
)
