package welcome

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/closer/internal/ui/theme"
)

const bannerArt = `  ██████╗██╗      ██████╗ ███████╗███████╗██████╗
 ██╔════╝██║     ██╔═══██╗██╔════╝██╔════╝██╔══██╗
 ██║     ██║     ██║   ██║███████╗█████╗  ██████╔╝
 ██║     ██║     ██║   ██║╚════██║██╔══╝  ██╔══██╗
 ╚██████╗███████╗╚██████╔╝███████║███████╗██║  ██║
  ╚═════╝╚══════╝ ╚═════╝ ╚══════╝╚══════╝╚═╝  ╚═╝`

const bannerCompact = "C L O S E R"

// bannerNarrow is the width below which the block letters do not fit.
const bannerNarrow = 52

// RenderBanner draws the CLOSER logo with the leftmost reveal fraction
// visible, so successive frames wipe it in from the left. Hidden cells
// stay as spaces to keep the logo from shifting while it appears.
func RenderBanner(width int, reveal float64) string {
	style := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)

	art := bannerArt
	if width < bannerNarrow {
		art = bannerCompact
	}
	if reveal >= 1 {
		return style.Render(art)
	}

	lines := strings.Split(art, "\n")
	for i, line := range lines {
		r := []rune(line)
		n := int(float64(len(r)) * max(reveal, 0))
		lines[i] = string(r[:n]) + strings.Repeat(" ", len(r)-n)
	}
	return style.Render(strings.Join(lines, "\n"))
}
