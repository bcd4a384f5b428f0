package metrics

import (
	"github.com/cespare/xxhash/v2"

	"github.com/san-kum/lifesim/internal/grid"
)

const DefaultCycleWindow = 256

// Cycle detects when the board repeats a recent state. Value is the period
// of the first cycle found (1 for a still life), or 0.
type Cycle struct {
	name   string
	window int
	seen   map[uint64]int
	order  []uint64
	period int
	at     int
}

func NewCycle(window int) *Cycle {
	if window <= 0 {
		window = DefaultCycleWindow
	}
	return &Cycle{name: "period", window: window, seen: make(map[uint64]int)}
}

func (c *Cycle) Name() string { return c.name }

func (c *Cycle) Observe(gen int, g *grid.Grid) {
	if c.period > 0 {
		return
	}
	h := xxhash.Sum64(g.Cells())
	if prev, ok := c.seen[h]; ok {
		c.period = gen - prev
		c.at = gen
		return
	}
	c.seen[h] = gen
	c.order = append(c.order, h)
	if len(c.order) > c.window {
		delete(c.seen, c.order[0])
		c.order = c.order[1:]
	}
}

func (c *Cycle) Value() float64 { return float64(c.period) }

// Found reports whether a cycle has been detected and the generation at which
// it closed.
func (c *Cycle) Found() (period, gen int, ok bool) {
	return c.period, c.at, c.period > 0
}

func (c *Cycle) Reset() {
	c.seen = make(map[uint64]int)
	c.order = c.order[:0]
	c.period = 0
	c.at = 0
}
