package life

import "github.com/san-kum/lifesim/internal/grid"

// Domain errors for automaton operations.
var (
	// ErrInvalidDimensions indicates non-positive rows or cols.
	ErrInvalidDimensions = grid.ErrInvalidDimensions

	// ErrOutOfBounds indicates a cell edit outside the grid.
	ErrOutOfBounds = grid.ErrOutOfBounds

	// ErrInvalidCell indicates a replacement grid holding values other than 0 and 255.
	ErrInvalidCell = grid.ErrInvalidCell
)
