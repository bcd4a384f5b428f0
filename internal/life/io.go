package life

import (
	"io"

	"github.com/san-kum/lifesim/internal/pattern"
)

// Load replaces the grid with the pattern stored at path. On failure the
// automaton is left untouched.
func (a *Automaton) Load(path string, f pattern.Format) error {
	g, err := pattern.Load(path, f)
	if err != nil {
		return err
	}
	a.adopt(g)
	return nil
}

// LoadFrom is Load for an already open stream.
func (a *Automaton) LoadFrom(r io.Reader, f pattern.Format) error {
	g, err := pattern.Decode(r, f)
	if err != nil {
		return err
	}
	a.adopt(g)
	return nil
}

// Save writes the live grid (never the heatmap) and returns the path used.
func (a *Automaton) Save(path string, f pattern.Format) (string, error) {
	return pattern.Save(path, a.cur, f)
}

func (a *Automaton) SaveTo(w io.Writer, f pattern.Format) error {
	return pattern.Encode(w, a.cur, f)
}
