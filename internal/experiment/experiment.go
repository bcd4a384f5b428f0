// Package experiment runs ensembles of random boards across consecutive seeds
// and summarises how they settle.
package experiment

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/san-kum/lifesim/internal/life"
	"github.com/san-kum/lifesim/internal/metrics"
)

type Config struct {
	Rows, Cols  int
	Generations int
	SeedStart   int64
	Runs        int
	// Workers bounds concurrent runs; zero uses GOMAXPROCS.
	Workers int
}

// Result describes one board of the ensemble.
type Result struct {
	Seed        int64
	Generations int
	Initial     int
	Final       int
	Peak        int
	// Period is zero when no repeat was found within the generation limit.
	Period    int
	SettledAt int
}

func (r Result) Settled() bool { return r.Period > 0 }

// Run simulates cfg.Runs random boards with seeds SeedStart, SeedStart+1, ...
// Each board stops at the generation limit or as soon as it repeats.
func Run(ctx context.Context, cfg Config) ([]Result, error) {
	if cfg.Runs <= 0 {
		return nil, fmt.Errorf("experiment needs at least one run, got %d", cfg.Runs)
	}
	if cfg.Generations <= 0 {
		return nil, fmt.Errorf("experiment needs a generation limit, got %d", cfg.Generations)
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]Result, cfg.Runs)
	errs := make([]error, cfg.Runs)
	sem := make(chan struct{}, workers)

	var wg sync.WaitGroup
	for i := 0; i < cfg.Runs; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			results[idx], errs[idx] = runOne(ctx, cfg, cfg.SeedStart+int64(idx))
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}

func runOne(ctx context.Context, cfg Config, seed int64) (Result, error) {
	a, err := life.New(cfg.Rows, cfg.Cols, life.ModeRandom, seed)
	if err != nil {
		return Result{}, err
	}
	pop := metrics.NewPopulation()
	cycle := metrics.NewCycle(metrics.DefaultCycleWindow)
	rec := metrics.NewRecorder(pop, cycle)
	rec.Seed(a.State(false))

	res := Result{Seed: seed, Initial: a.Population()}
	for a.Generation() < cfg.Generations {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		a.Step()
		rec.OnGeneration(a.Generation(), a.State(false))
		if period, at, ok := cycle.Found(); ok {
			res.Period, res.SettledAt = period, at
			break
		}
	}
	res.Generations = a.Generation()
	res.Final = a.Population()
	res.Peak = int(pop.Value())
	return res, nil
}

// Summary aggregates an ensemble.
type Summary struct {
	Runs            int
	Settled         int
	MeanGenerations float64
	MeanFinal       float64
	// Longest is the run that took the most generations to settle.
	Longest Result
}

func Summarize(results []Result) Summary {
	s := Summary{Runs: len(results)}
	if len(results) == 0 {
		return s
	}
	var gens, final int
	for _, r := range results {
		gens += r.Generations
		final += r.Final
		if r.Settled() {
			s.Settled++
			if !s.Longest.Settled() || r.SettledAt > s.Longest.SettledAt {
				s.Longest = r
			}
		}
	}
	s.MeanGenerations = float64(gens) / float64(len(results))
	s.MeanFinal = float64(final) / float64(len(results))
	return s
}
