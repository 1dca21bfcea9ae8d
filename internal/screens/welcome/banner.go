package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/codearena/internal/ui/theme"
)

const bannerArt = ` ██████╗ ██████╗ ██████╗ ███████╗
██╔════╝██╔═══██╗██╔══██╗██╔════╝
██║     ██║   ██║██║  ██║█████╗
██║     ██║   ██║██║  ██║██╔══╝
╚██████╗╚██████╔╝██████╔╝███████╗
 ╚═════╝ ╚═════╝ ╚═════╝ ╚══════╝
      ─── A · R · E · N · A ───`

const bannerCompact = "C O D E · A R E N A"

// BannerWidth is the widest line of the full banner.
const BannerWidth = 34

// Tagline is shown under the banner.
const Tagline = "Level up your coding skills!"

// RenderBanner returns the banner styled in the primary color, with a
// compact fallback when width can't fit the block letters.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < BannerWidth+4 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
