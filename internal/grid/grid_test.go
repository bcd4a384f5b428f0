package grid

import (
	"errors"
	"testing"
)

func TestNewInvalidDimensions(t *testing.T) {
	tests := []struct {
		name       string
		rows, cols int
	}{
		{"zero rows", 0, 5},
		{"zero cols", 5, 0},
		{"negative", -1, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.rows, tt.cols); !errors.Is(err, ErrInvalidDimensions) {
				t.Errorf("expected ErrInvalidDimensions, got %v", err)
			}
		})
	}
}

func TestAtZeroPadding(t *testing.T) {
	g, _ := New(2, 3)
	_ = g.Set(0, 0, Alive)

	if !g.IsAlive(0, 0) {
		t.Error("expected (0,0) alive")
	}
	if g.At(-1, 0) != Dead || g.At(0, 3) != Dead || g.At(2, 2) != Dead {
		t.Error("out of range reads should be dead")
	}
}

func TestSetOutOfBounds(t *testing.T) {
	g, _ := New(2, 2)
	if err := g.Set(2, 0, Alive); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("expected ErrOutOfBounds, got %v", err)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	g, _ := New(3, 3)
	c := g.Clone()
	_ = c.Set(1, 1, Alive)

	if g.IsAlive(1, 1) {
		t.Error("clone shares storage with original")
	}
	if g.Equal(c) {
		t.Error("expected grids to differ")
	}
}

func TestValidate(t *testing.T) {
	g, _ := FromRows([][]uint8{{0, 255}, {255, 7}})
	if err := g.Validate(); !errors.Is(err, ErrInvalidCell) {
		t.Errorf("expected ErrInvalidCell, got %v", err)
	}

	g, _ = FromRows([][]uint8{{0, 255}, {255, 0}})
	if err := g.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if g.Population() != 2 {
		t.Errorf("expected population 2, got %d", g.Population())
	}
}

func TestFromRowsRagged(t *testing.T) {
	if _, err := FromRows([][]uint8{{0, 0}, {0}}); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("expected ErrInvalidDimensions, got %v", err)
	}
}

func TestPasteClipsAtEdges(t *testing.T) {
	src, _ := FromRows([][]uint8{{255, 255}, {255, 255}})
	dst, _ := New(3, 3)
	dst.Paste(src, 2, 2)

	if dst.Population() != 1 || !dst.IsAlive(2, 2) {
		t.Errorf("expected only (2,2) alive, population %d", dst.Population())
	}

	dst.Clear()
	dst.PasteCentered(src)
	if !dst.IsAlive(0, 0) || !dst.IsAlive(1, 1) || dst.Population() != 4 {
		t.Errorf("unexpected centred paste, population %d", dst.Population())
	}
}
