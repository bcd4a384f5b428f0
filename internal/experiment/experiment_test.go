package experiment

import (
	"context"
	"testing"
)

func TestRunIsReproducible(t *testing.T) {
	cfg := Config{Rows: 16, Cols: 16, Generations: 200, SeedStart: 7, Runs: 4, Workers: 2}
	first, err := Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	second, err := Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(first) != 4 {
		t.Fatalf("got %d results, want 4", len(first))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("run %d differs: %+v vs %+v", i, first[i], second[i])
		}
		if first[i].Seed != 7+int64(i) {
			t.Errorf("run %d seed = %d", i, first[i].Seed)
		}
		if first[i].Generations > cfg.Generations {
			t.Errorf("run %d exceeded the limit: %d", i, first[i].Generations)
		}
	}
}

func TestSmallBoardsSettle(t *testing.T) {
	// A 4x4 board has few enough states that it repeats well within the limit.
	results, err := Run(context.Background(), Config{Rows: 4, Cols: 4, Generations: 500, SeedStart: 1, Runs: 6})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	for _, r := range results {
		if !r.Settled() {
			t.Errorf("seed %d did not settle in %d generations", r.Seed, r.Generations)
		}
		if r.Peak < r.Final {
			t.Errorf("seed %d: peak %d below final %d", r.Seed, r.Peak, r.Final)
		}
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, Config{Rows: 8, Cols: 8, Generations: 10, Runs: 2})
	if err == nil {
		t.Fatal("expected a cancellation error")
	}
}

func TestRunValidates(t *testing.T) {
	if _, err := Run(context.Background(), Config{Rows: 8, Cols: 8, Generations: 10}); err == nil {
		t.Error("zero runs should fail")
	}
	if _, err := Run(context.Background(), Config{Rows: 8, Cols: 8, Runs: 1}); err == nil {
		t.Error("zero generations should fail")
	}
	if _, err := Run(context.Background(), Config{Rows: 0, Cols: 8, Generations: 1, Runs: 1}); err == nil {
		t.Error("bad dimensions should fail")
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize([]Result{
		{Seed: 1, Generations: 10, Final: 4, Period: 1, SettledAt: 8},
		{Seed: 2, Generations: 30, Final: 6, Period: 2, SettledAt: 25},
		{Seed: 3, Generations: 50, Final: 20},
	})
	if s.Runs != 3 || s.Settled != 2 {
		t.Fatalf("runs=%d settled=%d", s.Runs, s.Settled)
	}
	if s.MeanGenerations != 30 || s.MeanFinal != 10 {
		t.Errorf("means = %v, %v", s.MeanGenerations, s.MeanFinal)
	}
	if s.Longest.Seed != 2 {
		t.Errorf("longest seed = %d, want 2", s.Longest.Seed)
	}
	if empty := Summarize(nil); empty.Runs != 0 {
		t.Error("empty summary should be zero")
	}
}
