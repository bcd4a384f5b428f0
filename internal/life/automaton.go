package life

import (
	"fmt"
	"math/rand/v2"

	"github.com/san-kum/lifesim/internal/grid"
)

type Mode string

const (
	ModeEmpty  Mode = "empty"
	ModeRandom Mode = "random"
)

// RandomBias is subtracted from a standard normal sample before the > 0
// test, so random boards start with roughly 31% alive cells.
const RandomBias = 0.5

// ParseMode maps a mode name to a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeEmpty, ModeRandom:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown mode: %s (want empty or random)", s)
}

type Automaton struct {
	cur, next  *grid.Grid
	initial    *grid.Grid
	heat       *grid.Grid
	rng        *rand.Rand
	heatmap    bool
	generation int
}

// New returns an automaton initialised with mode. seed drives random
// initialisation.
func New(rows, cols int, mode Mode, seed int64) (*Automaton, error) {
	a := &Automaton{rng: rand.New(rand.NewPCG(uint64(seed), 0))}
	if err := a.Initialize(rows, cols, mode); err != nil {
		return nil, err
	}
	return a, nil
}

// Initialize discards the current state and builds a rows x cols grid.
func (a *Automaton) Initialize(rows, cols int, mode Mode) error {
	g, err := grid.New(rows, cols)
	if err != nil {
		return err
	}
	switch mode {
	case ModeEmpty, "":
	case ModeRandom:
		cells := g.Cells()
		for k := range cells {
			if a.rng.NormFloat64()-RandomBias > 0 {
				cells[k] = grid.Alive
			}
		}
	default:
		return fmt.Errorf("unknown mode: %s", mode)
	}
	a.adopt(g)
	return nil
}

// Reseed replaces the random source used by later random initialisations.
func (a *Automaton) Reseed(seed int64) {
	a.rng = rand.New(rand.NewPCG(uint64(seed), 0))
}

// adopt installs g as the live grid and resynchronises every sibling buffer.
// g must not be shared with the caller.
func (a *Automaton) adopt(g *grid.Grid) {
	a.cur = g
	a.next = grid.Must(g.Rows(), g.Cols())
	a.initial = g.Clone()
	a.heat = g.Clone()
	a.generation = 0
}

// Reset restores the grid captured at the last initialise, load, replace or
// commit. The heatmap restarts from the restored grid.
func (a *Automaton) Reset() {
	a.cur.CopyFrom(a.initial)
	a.heat.CopyFrom(a.cur)
	a.generation = 0
}

// Replace adopts a copy of g after checking every cell is 0 or 255.
func (a *Automaton) Replace(g *grid.Grid) error {
	if g == nil {
		return fmt.Errorf("%w: nil grid", ErrInvalidDimensions)
	}
	if err := g.Validate(); err != nil {
		return err
	}
	a.adopt(g.Clone())
	return nil
}

// Commit makes the current grid the reset target, e.g. after hand editing.
func (a *Automaton) Commit() {
	a.initial = a.cur.Clone()
	a.generation = 0
}

// SetCell writes a cell and mirrors it on the heatmap so edits show at full
// intensity immediately.
func (a *Automaton) SetCell(i, j int, alive bool) error {
	v := grid.Dead
	if alive {
		v = grid.Alive
	}
	if err := a.cur.Set(i, j, v); err != nil {
		return err
	}
	return a.heat.Set(i, j, v)
}

// Toggle flips a cell and reports its new state.
func (a *Automaton) Toggle(i, j int) (bool, error) {
	if !a.cur.InBounds(i, j) {
		return false, fmt.Errorf("%w: (%d,%d) outside %dx%d", ErrOutOfBounds, i, j, a.Rows(), a.Cols())
	}
	alive := !a.cur.IsAlive(i, j)
	return alive, a.SetCell(i, j, alive)
}

// State returns a copy of the heatmap when useHeatmap is set, otherwise of
// the grid.
func (a *Automaton) State(useHeatmap bool) *grid.Grid {
	if useHeatmap {
		return a.heat.Clone()
	}
	return a.cur.Clone()
}

func (a *Automaton) SetDisplayMode(useHeatmap bool) { a.heatmap = useHeatmap }
func (a *Automaton) DisplayMode() bool             { return a.heatmap }

// View returns a copy of whichever buffer the display mode selects.
func (a *Automaton) View() *grid.Grid { return a.State(a.heatmap) }

// Initial returns a copy of the reset target.
func (a *Automaton) Initial() *grid.Grid { return a.initial.Clone() }

func (a *Automaton) Rows() int       { return a.cur.Rows() }
func (a *Automaton) Cols() int       { return a.cur.Cols() }
func (a *Automaton) Generation() int { return a.generation }
func (a *Automaton) Population() int { return a.cur.Population() }
