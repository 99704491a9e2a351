package components

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/passgate/internal/ui/theme"
)

// ProgressBar displays a horizontal bar filled to Percent.
type ProgressBar struct {
	Percent float64
	Width   int
	Fill    color.Color
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(percent float64, width int, fill color.Color) ProgressBar {
	return ProgressBar{
		Percent: percent,
		Width:   width,
		Fill:    fill,
	}
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	barWidth := p.Width
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * p.Percent)
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}
	empty := barWidth - filled

	fill := p.Fill
	if fill == nil {
		fill = theme.Secondary
	}

	filledStr := lipgloss.NewStyle().
		Background(fill).
		Render(strings.Repeat(" ", filled))

	emptyStr := theme.ProgressEmpty.
		Render(strings.Repeat(" ", empty))

	return filledStr + emptyStr
}
