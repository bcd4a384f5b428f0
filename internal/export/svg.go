package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/lifesim/internal/grid"
)

// GridToSVG renders g as one square per non-zero cell. Heatmap values map to
// fill opacity, so the same function serves both display modes.
func GridToSVG(g *grid.Grid, scale float64, fill, background string) string {
	if g == nil {
		return ""
	}
	if scale <= 0 {
		scale = 1
	}

	width := float64(g.Cols()) * scale
	height := float64(g.Rows()) * scale

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
<g fill="%s">
`, width, height, width, height, background, fill))

	for i := 0; i < g.Rows(); i++ {
		for j := 0; j < g.Cols(); j++ {
			v := g.At(i, j)
			if v == 0 {
				continue
			}
			x := float64(j) * scale
			y := float64(i) * scale
			if v == grid.Alive {
				sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f"/>
`, x, y, scale, scale))
				continue
			}
			sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill-opacity="%.3f"/>
`, x, y, scale, scale, float64(v)/255))
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}
