package metrics

import (
	"github.com/san-kum/lifesim/internal/grid"
)

type Metric interface {
	Name() string
	Observe(gen int, g *grid.Grid)
	Value() float64
	Reset()
}

// Recorder fans generations out to a set of metrics and keeps the
// population series. It satisfies driver.Observer.
type Recorder struct {
	metrics    []Metric
	population []float64
}

func NewRecorder(ms ...Metric) *Recorder {
	return &Recorder{metrics: ms}
}

// Defaults returns the metric set used by the CLI.
func Defaults() []Metric {
	return []Metric{NewPopulation(), NewTurnover(), NewCycle(DefaultCycleWindow)}
}

// OnGeneration observes g for generation gen.
func (r *Recorder) OnGeneration(gen int, g *grid.Grid) {
	r.population = append(r.population, float64(g.Population()))
	for _, m := range r.metrics {
		m.Observe(gen, g)
	}
}

// Seed records the starting grid as generation 0 without counting it as a
// transition.
func (r *Recorder) Seed(g *grid.Grid) {
	r.Reset()
	r.OnGeneration(0, g)
}

func (r *Recorder) Population() []float64 { return r.population }

func (r *Recorder) Values() map[string]float64 {
	out := make(map[string]float64, len(r.metrics))
	for _, m := range r.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

func (r *Recorder) Reset() {
	r.population = r.population[:0]
	for _, m := range r.metrics {
		m.Reset()
	}
}

// Metric returns the metric registered under name, or nil.
func (r *Recorder) Metric(name string) Metric {
	for _, m := range r.metrics {
		if m.Name() == name {
			return m
		}
	}
	return nil
}

// Population reports the peak alive-cell count seen.
type Population struct {
	name string
	peak int
	last int
}

func NewPopulation() *Population { return &Population{name: "peak_population"} }

func (p *Population) Name() string { return p.name }

func (p *Population) Observe(gen int, g *grid.Grid) {
	p.last = g.Population()
	if p.last > p.peak {
		p.peak = p.last
	}
}

func (p *Population) Value() float64 { return float64(p.peak) }
func (p *Population) Last() int      { return p.last }

func (p *Population) Reset() {
	p.peak = 0
	p.last = 0
}

// Turnover reports the mean number of births plus deaths per generation.
type Turnover struct {
	name    string
	prev    []uint8
	changes int
	samples int
}

func NewTurnover() *Turnover { return &Turnover{name: "turnover"} }

func (t *Turnover) Name() string { return t.name }

func (t *Turnover) Observe(gen int, g *grid.Grid) {
	cells := g.Cells()
	if len(t.prev) == len(cells) {
		for k, v := range cells {
			if v != t.prev[k] {
				t.changes++
			}
		}
		t.samples++
	}
	t.prev = append(t.prev[:0], cells...)
}

func (t *Turnover) Value() float64 {
	if t.samples == 0 {
		return 0
	}
	return float64(t.changes) / float64(t.samples)
}

func (t *Turnover) Reset() {
	t.prev = t.prev[:0]
	t.changes = 0
	t.samples = 0
}
