package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lifewheel/internal/ui/theme"
)

const bannerArt = `
 ██╗     ██╗███████╗███████╗    ██╗    ██╗██╗  ██╗███████╗███████╗██╗
 ██║     ██║██╔════╝██╔════╝    ██║    ██║██║  ██║██╔════╝██╔════╝██║
 ██║     ██║█████╗  █████╗      ██║ █╗ ██║███████║█████╗  █████╗  ██║
 ██║     ██║██╔══╝  ██╔══╝      ██║███╗██║██╔══██║██╔══╝  ██╔══╝  ██║
 ███████╗██║██║     ███████╗    ╚███╔███╔╝██║  ██║███████╗███████╗███████╗
 ╚══════╝╚═╝╚═╝     ╚══════╝     ╚══╝╚══╝ ╚═╝  ╚═╝╚══════╝╚══════╝╚══════╝`

const bannerCompact = "L I F E   W H E E L"

// RenderBanner returns the banner in the primary color, or a compact
// fallback for terminals narrower than the art.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 76 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
