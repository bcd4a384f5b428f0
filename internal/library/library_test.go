package library

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/san-kum/lifesim/internal/grid"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "patterns.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func glider() *grid.Grid {
	g, _ := grid.FromRows([][]uint8{
		{0, 255, 0},
		{0, 0, 255},
		{255, 255, 255},
	})
	return g
}

func TestPutGet(t *testing.T) {
	st := openTemp(t)
	if err := st.Put("glider", "smallest spaceship", glider()); err != nil {
		t.Fatalf("put: %v", err)
	}

	g, err := st.Get("glider")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !g.Equal(glider()) {
		t.Errorf("stored pattern changed: %v", g.Matrix())
	}
}

func TestPutReplaces(t *testing.T) {
	st := openTemp(t)
	_ = st.Put("p", "", glider())
	single := grid.Must(1, 1)
	_ = single.Set(0, 0, grid.Alive)
	if err := st.Put("p", "dot", single); err != nil {
		t.Fatalf("put: %v", err)
	}

	entries, err := st.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	e := entries[0]
	if e.Rows != 1 || e.Cols != 1 || e.Population != 1 || e.Description != "dot" {
		t.Errorf("unexpected entry %+v", e)
	}
}

func TestListOrdered(t *testing.T) {
	st := openTemp(t)
	for _, name := range []string{"zeta", "alpha", "mid"} {
		if err := st.Put(name, "", glider()); err != nil {
			t.Fatal(err)
		}
	}
	entries, err := st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 || entries[0].Name != "alpha" || entries[2].Name != "zeta" {
		t.Errorf("unexpected order %+v", entries)
	}
}

func TestMissingAndDelete(t *testing.T) {
	st := openTemp(t)
	if _, err := st.Get("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	_ = st.Put("glider", "", glider())
	if err := st.Delete("glider"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := st.Delete("glider"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestInMemoryAndValidation(t *testing.T) {
	st, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer st.Close()

	if err := st.Put("  ", "", glider()); err == nil {
		t.Error("expected error for blank name")
	}
	if _, err := Open(""); err == nil {
		t.Error("expected error for empty path")
	}
}
