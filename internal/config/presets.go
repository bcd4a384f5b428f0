package config

import (
	"sort"
	"strings"

	"github.com/san-kum/lifesim/internal/grid"
	"github.com/san-kum/lifesim/internal/pattern"
)

// Presets holds well-known patterns in the ASCII pattern format.
var Presets = map[string]string{
	"block": `#N Block
XX
XX`,
	"blinker": `#N Blinker
XXX`,
	"glider": `#N Glider
.X.
..X
XXX`,
	"lwss": `#N Lightweight spaceship
.X..X
X....
X...X
XXXX.`,
	"r-pentomino": `#N R-pentomino
.XX
XX.
.X.`,
	"pulsar": `#N Pulsar
..XXX...XXX..
.............
X....X.X....X
X....X.X....X
X....X.X....X
..XXX...XXX..
.............
..XXX...XXX..
X....X.X....X
X....X.X....X
X....X.X....X
.............
..XXX...XXX..`,
	"gosper-gun": `#N Gosper glider gun
........................X...........
......................X.X...........
............XX......XX............XX
...........X...X....XX............XX
XX........X.....X...XX..............
XX........X...X.XX....X.X...........
..........X.....X.......X...........
...........X...X....................
............XX......................`,
	"acorn": `#N Acorn
.X.....
...X...
XX..XXX`,
}

// GetPreset decodes a preset pattern. It returns nil for unknown names.
func GetPreset(name string) *grid.Grid {
	src, ok := Presets[name]
	if !ok {
		return nil
	}
	g, err := pattern.Decode(strings.NewReader(src), pattern.FormatASCII)
	if err != nil {
		return nil
	}
	return g
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
