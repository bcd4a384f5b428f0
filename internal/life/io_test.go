package life

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/lifesim/internal/pattern"
)

func TestLoadASCII(t *testing.T) {
	path := filepath.Join(t.TempDir(), "glider.txt")
	body := "#N Glider\n.X...\n..X\nXXX\n"
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	a := newEmpty(t, 50, 50)
	a.Step()
	if err := a.Load(path, pattern.FormatASCII); err != nil {
		t.Fatalf("load: %v", err)
	}

	if a.Rows() != 3 || a.Cols() != 5 {
		t.Fatalf("expected 3x5, got %dx%d", a.Rows(), a.Cols())
	}
	if a.Population() != 5 {
		t.Errorf("expected 5 alive cells, got %d", a.Population())
	}
	if a.Generation() != 0 {
		t.Errorf("expected generation 0 after load, got %d", a.Generation())
	}
	if !a.State(true).Equal(a.State(false)) {
		t.Error("heatmap should mirror the loaded grid")
	}

	a.Step()
	a.Reset()
	if !a.State(false).Equal(a.Initial()) || a.Population() != 5 {
		t.Error("reset should restore the loaded pattern")
	}
}

func TestLoadFailureLeavesStateIntact(t *testing.T) {
	a, _ := New(8, 8, ModeRandom, 2)
	before := a.State(false)

	tests := []struct {
		name string
		path string
		f    pattern.Format
		want error
	}{
		{"missing", filepath.Join(t.TempDir(), "nope.txt"), pattern.FormatASCII, pattern.ErrFileNotFound},
		{"unknown format", "board.xyz", pattern.FormatUnknown, pattern.ErrUnsupportedFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := a.Load(tt.path, tt.f)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
			if !a.State(false).Equal(before) {
				t.Error("failed load modified the grid")
			}
		})
	}

	if err := a.LoadFrom(strings.NewReader("# only a comment\n"), pattern.FormatASCII); !errors.Is(err, pattern.ErrMalformedContent) {
		t.Errorf("expected ErrMalformedContent, got %v", err)
	}
}

func TestSaveLoadRaster(t *testing.T) {
	a, _ := New(21, 34, ModeRandom, 8)
	a.Step()
	want := a.State(false)

	path, err := a.Save(filepath.Join(t.TempDir(), "snapshot"), pattern.FormatPNG)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if filepath.Ext(path) != ".png" {
		t.Errorf("expected .png suffix, got %s", path)
	}

	b := newEmpty(t, 1, 1)
	if err := b.Load(path, pattern.FormatPNG); err != nil {
		t.Fatalf("load: %v", err)
	}
	if !b.State(false).Equal(want) {
		t.Error("raster round trip changed the grid")
	}
	if !b.State(true).Equal(want) {
		t.Error("loaded heatmap should restart from the grid, not the saved trail")
	}
}
