package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/mindora-app/mindora/internal/ui/theme"
)

const bannerArt = `
 ███╗   ███╗██╗███╗   ██╗██████╗  ██████╗ ██████╗  █████╗
 ████╗ ████║██║████╗  ██║██╔══██╗██╔═══██╗██╔══██╗██╔══██╗
 ██╔████╔██║██║██╔██╗ ██║██║  ██║██║   ██║██████╔╝███████║
 ██║╚██╔╝██║██║██║╚██╗██║██║  ██║██║   ██║██╔══██╗██╔══██║
 ██║ ╚═╝ ██║██║██║ ╚████║██████╔╝╚██████╔╝██║  ██║██║  ██║
 ╚═╝     ╚═╝╚═╝╚═╝  ╚═══╝╚═════╝  ╚═════╝ ╚═╝  ╚═╝╚═╝  ╚═╝`

const bannerCompact = "M I N D O R A"

// RenderBanner returns the MINDORA banner in the primary color, or the
// spaced-out name on terminals narrower than 62 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 62 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
