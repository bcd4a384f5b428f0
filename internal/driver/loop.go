// Package driver schedules an automaton on a periodic tick.
//
// The automaton itself never locks; Loop owns it, serialises every mutation
// under one mutex and gives readers copies, so a renderer on another
// goroutine never sees a half-written generation.
package driver

import (
	"context"
	"sync"
	"time"

	"github.com/san-kum/lifesim/internal/grid"
	"github.com/san-kum/lifesim/internal/life"
)

const (
	DefaultInterval = 100 * time.Millisecond
	MinInterval     = time.Millisecond
)

// Observer is notified after every generation with a private copy of the grid.
// It runs while the loop is locked and must not call back into the loop.
type Observer interface {
	OnGeneration(gen int, g *grid.Grid)
}

type Loop struct {
	mu        sync.Mutex
	auto      *life.Automaton
	interval  time.Duration
	going     bool
	observers []Observer
}

func New(a *life.Automaton, interval time.Duration) *Loop {
	l := &Loop{auto: a, interval: DefaultInterval}
	l.SetInterval(interval)
	return l
}

func (l *Loop) AddObserver(o Observer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.observers = append(l.observers, o)
}

// PlayPause toggles between running and paused and returns the new state.
func (l *Loop) PlayPause() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.going = !l.going
	return l.going
}

func (l *Loop) Play()  { l.setGoing(true) }
func (l *Loop) Pause() { l.setGoing(false) }

func (l *Loop) setGoing(v bool) {
	l.mu.Lock()
	l.going = v
	l.mu.Unlock()
}

func (l *Loop) Going() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.going
}

// SetInterval changes the time between generations. Values below
// MinInterval are raised to it.
func (l *Loop) SetInterval(d time.Duration) {
	if d < MinInterval {
		d = MinInterval
	}
	l.mu.Lock()
	l.interval = d
	l.mu.Unlock()
}

func (l *Loop) Interval() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.interval
}

// Step advances one generation regardless of the play state.
func (l *Loop) Step() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.stepLocked()
}

func (l *Loop) stepLocked() int {
	l.auto.Step()
	gen := l.auto.Generation()
	if len(l.observers) > 0 {
		g := l.auto.State(false)
		for _, o := range l.observers {
			o.OnGeneration(gen, g)
		}
	}
	return gen
}

// Tick steps once if the loop is playing and reports whether it did.
func (l *Loop) Tick() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.going {
		return false
	}
	l.stepLocked()
	return true
}

// Do runs fn with exclusive access to the automaton.
func (l *Loop) Do(fn func(a *life.Automaton) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return fn(l.auto)
}

// Snapshot returns a copy of the buffer selected by the display mode along
// with its generation.
func (l *Loop) Snapshot() (*grid.Grid, int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.auto.View(), l.auto.Generation()
}

// Run ticks until ctx is done or, when limit > 0, until the automaton
// reaches generation limit. With fast set it steps back to back instead of
// waiting for the interval. Run starts the loop playing; pausing from another
// goroutine suspends stepping without returning.
func (l *Loop) Run(ctx context.Context, limit int, fast bool) error {
	l.Play()
	if fast {
		for {
			if err := ctx.Err(); err != nil {
				return err
			}
			if !l.Tick() {
				time.Sleep(MinInterval)
				continue
			}
			if l.reached(limit) {
				return nil
			}
		}
	}

	current := l.Interval()
	ticker := time.NewTicker(current)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
		if l.Tick() && l.reached(limit) {
			return nil
		}
		if d := l.Interval(); d != current {
			current = d
			ticker.Reset(d)
		}
	}
}

func (l *Loop) reached(limit int) bool {
	if limit <= 0 {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.auto.Generation() >= limit
}
