package life

import "github.com/san-kum/lifesim/internal/grid"

// Decay is the per-generation multiplier applied to heatmap intensities.
const Decay = 0.9

// decayHeat fades every heat cell by Decay, truncating, and then stamps cells
// alive in g back to full intensity.
func decayHeat(heat, g *grid.Grid) {
	h, cells := heat.Cells(), g.Cells()
	for k, v := range h {
		h[k] = uint8(float64(v) * Decay)
		if cells[k] == grid.Alive {
			h[k] = grid.Alive
		}
	}
}
