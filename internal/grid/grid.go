// Package grid provides the cell matrix shared by the automaton, the codecs
// and the renderers.
//
// A [Grid] stores rows x cols 8-bit cells in row-major order. Cell values use
// the grayscale convention: [Dead] (0) and [Alive] (255), so a grid can be
// handed to an image encoder without conversion.
package grid

import (
	"errors"
	"fmt"
)

const (
	Dead  uint8 = 0
	Alive uint8 = 255

	// Threshold is the intensity above which a raster pixel counts as alive.
	Threshold uint8 = 128
)

var (
	ErrInvalidDimensions = errors.New("grid: rows and cols must be positive")
	ErrInvalidCell       = errors.New("grid: cell value must be 0 or 255")
	ErrOutOfBounds       = errors.New("grid: index out of bounds")
)

type Grid struct {
	rows, cols int
	cells      []uint8
}

// New allocates an all-dead grid.
func New(rows, cols int) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, rows, cols)
	}
	return &Grid{rows: rows, cols: cols, cells: make([]uint8, rows*cols)}, nil
}

// Must is New for dimensions already known to be valid.
func Must(rows, cols int) *Grid {
	g, err := New(rows, cols)
	if err != nil {
		panic(err)
	}
	return g
}

// FromCells wraps a copy of cells, which must hold exactly rows*cols values.
// Values are not checked; call Validate when the source is untrusted.
func FromCells(rows, cols int, cells []uint8) (*Grid, error) {
	g, err := New(rows, cols)
	if err != nil {
		return nil, err
	}
	if len(cells) != rows*cols {
		return nil, fmt.Errorf("%w: %d cells for %dx%d", ErrInvalidDimensions, len(cells), rows, cols)
	}
	copy(g.cells, cells)
	return g, nil
}

// FromRows builds a grid from a rectangular matrix.
func FromRows(m [][]uint8) (*Grid, error) {
	if len(m) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrInvalidDimensions)
	}
	g, err := New(len(m), len(m[0]))
	if err != nil {
		return nil, err
	}
	for i, row := range m {
		if len(row) != g.cols {
			return nil, fmt.Errorf("%w: row %d has %d cols, want %d", ErrInvalidDimensions, i, len(row), g.cols)
		}
		copy(g.cells[i*g.cols:], row)
	}
	return g, nil
}

func (g *Grid) Rows() int { return g.rows }
func (g *Grid) Cols() int { return g.cols }

// Cells exposes the backing slice. Callers that hand a grid to someone else
// should Clone first.
func (g *Grid) Cells() []uint8 { return g.cells }

func (g *Grid) Index(i, j int) int { return i*g.cols + j }

func (g *Grid) InBounds(i, j int) bool {
	return i >= 0 && i < g.rows && j >= 0 && j < g.cols
}

// At returns the cell at row i, column j. Positions outside the grid read as
// dead, which gives the zero padding used by the transition rule.
func (g *Grid) At(i, j int) uint8 {
	if !g.InBounds(i, j) {
		return Dead
	}
	return g.cells[i*g.cols+j]
}

func (g *Grid) IsAlive(i, j int) bool { return g.At(i, j) == Alive }

// Set writes v at (i, j).
func (g *Grid) Set(i, j int, v uint8) error {
	if !g.InBounds(i, j) {
		return fmt.Errorf("%w: (%d,%d) outside %dx%d", ErrOutOfBounds, i, j, g.rows, g.cols)
	}
	g.cells[i*g.cols+j] = v
	return nil
}

func (g *Grid) Clone() *Grid {
	c := &Grid{rows: g.rows, cols: g.cols, cells: make([]uint8, len(g.cells))}
	copy(c.cells, g.cells)
	return c
}

// CopyFrom overwrites g with src. Both grids must share dimensions.
func (g *Grid) CopyFrom(src *Grid) {
	if src.rows != g.rows || src.cols != g.cols {
		panic("grid: CopyFrom dimension mismatch")
	}
	copy(g.cells, src.cells)
}

func (g *Grid) SameSize(o *Grid) bool {
	return o != nil && g.rows == o.rows && g.cols == o.cols
}

func (g *Grid) Equal(o *Grid) bool {
	if !g.SameSize(o) {
		return false
	}
	for k, v := range g.cells {
		if o.cells[k] != v {
			return false
		}
	}
	return true
}

func (g *Grid) Clear() {
	for k := range g.cells {
		g.cells[k] = Dead
	}
}

// Population counts alive cells.
func (g *Grid) Population() int {
	n := 0
	for _, v := range g.cells {
		if v == Alive {
			n++
		}
	}
	return n
}

// Validate reports the first cell that is neither 0 nor 255.
func (g *Grid) Validate() error {
	for k, v := range g.cells {
		if v != Dead && v != Alive {
			return fmt.Errorf("%w: %d at (%d,%d)", ErrInvalidCell, v, k/g.cols, k%g.cols)
		}
	}
	return nil
}

// Paste copies the alive cells of src onto g with src's origin at (top,
// left). Parts of src that fall outside g are dropped.
func (g *Grid) Paste(src *Grid, top, left int) {
	for i := 0; i < src.rows; i++ {
		for j := 0; j < src.cols; j++ {
			if src.cells[i*src.cols+j] != Alive {
				continue
			}
			if g.InBounds(top+i, left+j) {
				g.cells[(top+i)*g.cols+left+j] = Alive
			}
		}
	}
}

// PasteCentered pastes src in the middle of g.
func (g *Grid) PasteCentered(src *Grid) {
	g.Paste(src, (g.rows-src.rows)/2, (g.cols-src.cols)/2)
}

// Matrix returns a copy of the grid as a slice of rows.
func (g *Grid) Matrix() [][]uint8 {
	m := make([][]uint8, g.rows)
	for i := range m {
		m[i] = make([]uint8, g.cols)
		copy(m[i], g.cells[i*g.cols:(i+1)*g.cols])
	}
	return m
}
