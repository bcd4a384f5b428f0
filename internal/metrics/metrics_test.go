package metrics

import (
	"testing"

	"github.com/san-kum/lifesim/internal/grid"
	"github.com/san-kum/lifesim/internal/life"
)

func blinker(t *testing.T) *life.Automaton {
	t.Helper()
	g := grid.Must(5, 5)
	for i := 1; i <= 3; i++ {
		_ = g.Set(i, 2, grid.Alive)
	}
	a, _ := life.New(1, 1, life.ModeEmpty, 0)
	if err := a.Replace(g); err != nil {
		t.Fatal(err)
	}
	return a
}

func TestCycleDetectsPeriod(t *testing.T) {
	a := blinker(t)
	c := NewCycle(16)
	c.Observe(0, a.State(false))
	for i := 0; i < 4; i++ {
		a.Step()
		c.Observe(a.Generation(), a.State(false))
	}

	period, at, ok := c.Found()
	if !ok {
		t.Fatal("expected blinker cycle")
	}
	if period != 2 || at != 2 {
		t.Errorf("expected period 2 at gen 2, got %d at %d", period, at)
	}
}

func TestCycleStillLife(t *testing.T) {
	g := grid.Must(4, 4)
	c := NewCycle(0)
	c.Observe(0, g)
	c.Observe(1, g)
	if c.Value() != 1 {
		t.Errorf("expected period 1, got %f", c.Value())
	}

	c.Reset()
	if _, _, ok := c.Found(); ok {
		t.Error("reset should clear the cycle")
	}
}

func TestCycleWindowForgets(t *testing.T) {
	c := NewCycle(2)
	a, _ := grid.FromRows([][]uint8{{0}})
	b, _ := grid.FromRows([][]uint8{{255}})
	d := grid.Must(1, 2)

	c.Observe(0, a)
	c.Observe(1, b)
	c.Observe(2, d)
	c.Observe(3, a)
	if c.Value() != 0 {
		t.Errorf("state outside the window should not match, got period %f", c.Value())
	}
}

func TestRecorder(t *testing.T) {
	a := blinker(t)
	r := NewRecorder(Defaults()...)
	r.Seed(a.State(false))
	for i := 0; i < 3; i++ {
		a.Step()
		r.OnGeneration(a.Generation(), a.State(false))
	}

	if len(r.Population()) != 4 {
		t.Fatalf("expected 4 samples, got %d", len(r.Population()))
	}
	for _, p := range r.Population() {
		if p != 3 {
			t.Errorf("blinker population should stay 3, got %f", p)
		}
	}

	vals := r.Values()
	if vals["peak_population"] != 3 {
		t.Errorf("expected peak 3, got %f", vals["peak_population"])
	}
	if vals["turnover"] != 4 {
		t.Errorf("expected 4 changes per generation, got %f", vals["turnover"])
	}
	if vals["period"] != 2 {
		t.Errorf("expected period 2, got %f", vals["period"])
	}
	if r.Metric("period") == nil || r.Metric("missing") != nil {
		t.Error("metric lookup mismatch")
	}
}
