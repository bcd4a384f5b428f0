package driver

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/san-kum/lifesim/internal/grid"
	"github.com/san-kum/lifesim/internal/life"
)

type countingObserver struct {
	gens []int
	pops []int
}

func (c *countingObserver) OnGeneration(gen int, g *grid.Grid) {
	c.gens = append(c.gens, gen)
	c.pops = append(c.pops, g.Population())
}

func newLoop(t *testing.T) *Loop {
	t.Helper()
	a, err := life.New(16, 16, life.ModeRandom, 4)
	if err != nil {
		t.Fatal(err)
	}
	return New(a, 5*time.Millisecond)
}

func TestPlayPause(t *testing.T) {
	l := newLoop(t)
	if l.Going() {
		t.Fatal("loop should start paused")
	}
	if l.Tick() {
		t.Error("paused loop should not step")
	}
	if !l.PlayPause() {
		t.Error("expected playing after toggle")
	}
	if !l.Tick() {
		t.Error("playing loop should step")
	}
	if l.PlayPause() {
		t.Error("expected paused after second toggle")
	}
}

func TestSetIntervalClamps(t *testing.T) {
	l := newLoop(t)
	l.SetInterval(0)
	if l.Interval() != MinInterval {
		t.Errorf("expected %v, got %v", MinInterval, l.Interval())
	}
	l.SetInterval(250 * time.Millisecond)
	if l.Interval() != 250*time.Millisecond {
		t.Errorf("expected 250ms, got %v", l.Interval())
	}
}

func TestStepNotifiesObservers(t *testing.T) {
	l := newLoop(t)
	obs := &countingObserver{}
	l.AddObserver(obs)

	for i := 0; i < 3; i++ {
		l.Step()
	}
	if len(obs.gens) != 3 || obs.gens[2] != 3 {
		t.Errorf("unexpected generations %v", obs.gens)
	}
}

func TestRunStopsAtLimit(t *testing.T) {
	tests := []struct {
		name string
		fast bool
	}{
		{"ticker", false},
		{"fast", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newLoop(t)
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := l.Run(ctx, 10, tt.fast); err != nil {
				t.Fatalf("run: %v", err)
			}
			if _, gen := l.Snapshot(); gen != 10 {
				t.Errorf("expected generation 10, got %d", gen)
			}
		})
	}
}

func TestRunCanceled(t *testing.T) {
	l := newLoop(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	err := l.Run(ctx, 0, false)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
}

func TestConcurrentEditsAndSnapshots(t *testing.T) {
	l := newLoop(t)
	l.Play()

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			l.Tick()
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			_ = l.Do(func(a *life.Automaton) error {
				return a.SetCell(i%16, (i*7)%16, true)
			})
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			g, _ := l.Snapshot()
			if err := g.Validate(); err != nil {
				t.Errorf("snapshot held invalid cells: %v", err)
				return
			}
		}
	}()
	wg.Wait()
}
