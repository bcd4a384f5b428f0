package life

import "github.com/san-kum/lifesim/internal/grid"

// Step advances one generation and then updates the heatmap.
func (a *Automaton) Step() {
	advance(a.cur, a.next)
	a.cur, a.next = a.next, a.cur
	decayHeat(a.heat, a.cur)
	a.generation++
}

// advance writes the successor of src into dst. It reads only src, so every
// cell sees the same pre-step neighbourhood and row bands can be computed
// independently.
func advance(src, dst *grid.Grid) {
	if src.Rows()*src.Cols() < parallelCells {
		advanceRows(src, dst, 0, src.Rows())
		return
	}
	parallelFor(src.Rows(), minBandRows, func(start, end int) {
		advanceRows(src, dst, start, end)
	})
}

func advanceRows(src, dst *grid.Grid, start, end int) {
	cols := src.Cols()
	in, out := src.Cells(), dst.Cells()

	for i := start; i < end; i++ {
		for j := 0; j < cols; j++ {
			idx := i*cols + j
			switch n := Neighbors(src, i, j); {
			case n == 3:
				out[idx] = grid.Alive
			case n == 2:
				out[idx] = in[idx]
			default:
				out[idx] = grid.Dead
			}
		}
	}
}

// Neighbors counts alive cells among the eight around (i, j). Positions
// outside the grid count as dead.
func Neighbors(g *grid.Grid, i, j int) int {
	n := 0
	for di := -1; di <= 1; di++ {
		for dj := -1; dj <= 1; dj++ {
			if di == 0 && dj == 0 {
				continue
			}
			if g.IsAlive(i+di, j+dj) {
				n++
			}
		}
	}
	return n
}
