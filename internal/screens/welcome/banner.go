package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/passgate/internal/ui/theme"
)

const bannerArt = `
 ██████╗  █████╗ ███████╗███████╗ ██████╗  █████╗ ████████╗███████╗
 ██╔══██╗██╔══██╗██╔════╝██╔════╝██╔════╝ ██╔══██╗╚══██╔══╝██╔════╝
 ██████╔╝███████║███████╗███████╗██║  ███╗███████║   ██║   █████╗
 ██╔═══╝ ██╔══██║╚════██║╚════██║██║   ██║██╔══██║   ██║   ██╔══╝
 ██║     ██║  ██║███████║███████║╚██████╔╝██║  ██║   ██║   ███████╗
 ╚═╝     ╚═╝  ╚═╝╚══════╝╚══════╝ ╚═════╝ ╚═╝  ╚═╝   ╚═╝   ╚══════╝`

const bannerCompact = "P A S S G A T E"

// bannerWidth is the widest line of bannerArt.
const bannerWidth = 68

// RenderBanner returns the PASSGATE banner styled in the primary color.
// Uses a compact fallback for terminals narrower than the art.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < bannerWidth {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
