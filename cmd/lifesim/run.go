package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"time"

	"github.com/san-kum/lifesim/internal/config"
	"github.com/san-kum/lifesim/internal/driver"
	"github.com/san-kum/lifesim/internal/export"
	"github.com/san-kum/lifesim/internal/grid"
	"github.com/san-kum/lifesim/internal/life"
	"github.com/san-kum/lifesim/internal/metrics"
	"github.com/san-kum/lifesim/internal/pattern"
	"github.com/san-kum/lifesim/internal/storage"
	"github.com/spf13/cobra"
)

var (
	generations int
	realtime    bool
	stopOnCycle bool
	outPath     string
	gifPath     string
	gifScale    int
	noSave      bool
)

func newRunCmd() *cobra.Command {
	runCmd := &cobra.Command{
		Use:   "run [pattern]",
		Short: "run headless and record the result",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runHeadless,
	}
	runCmd.Flags().IntVar(&generations, "generations", 100, "generations to run (0 runs until interrupted)")
	runCmd.Flags().BoolVar(&realtime, "realtime", false, "wait the interval between generations")
	runCmd.Flags().BoolVar(&stopOnCycle, "stop-on-cycle", false, "stop once the board repeats")
	runCmd.Flags().StringVar(&outPath, "out", "", "write the final board to this pattern file")
	runCmd.Flags().StringVar(&gifPath, "gif", "", "record an animated gif")
	runCmd.Flags().IntVar(&gifScale, "gif-scale", 4, "gif pixels per cell")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not record the run in the data directory")
	return runCmd
}

// cycleStop cancels the run once the cycle metric has found a period.
type cycleStop struct {
	cycle  *metrics.Cycle
	cancel context.CancelFunc
}

func (c cycleStop) OnGeneration(gen int, g *grid.Grid) {
	if _, _, ok := c.cycle.Found(); ok {
		c.cancel()
	}
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	var source string
	switch {
	case len(args) > 0:
		cfg.Pattern = args[0]
		source = args[0]
	case cfg.Pattern != "":
		source = cfg.Pattern
	case cfg.Preset != "":
		source = cfg.Preset
	default:
		source = cfg.Mode
	}
	if generations <= 0 && !stopOnCycle {
		fmt.Println("no generation limit, press ctrl+c to stop")
	}

	a, err := newAutomaton(cfg)
	if err != nil {
		return err
	}
	initial := a.State(false)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	loop := driver.New(a, cfg.Interval())
	rec := metrics.NewRecorder(metrics.Defaults()...)
	rec.Seed(initial)
	loop.AddObserver(rec)
	if stopOnCycle {
		if c, ok := rec.Metric("period").(*metrics.Cycle); ok {
			loop.AddObserver(cycleStop{cycle: c, cancel: cancel})
		}
	}
	var anim *export.Animation
	if gifPath != "" {
		anim = export.NewAnimation(gifScale, max(cfg.IntervalMs/10, 2))
		anim.Add(a.View())
		loop.AddObserver(anim)
	}

	fmt.Printf("running %s on %dx%d (seed %d)...\n", source, a.Rows(), a.Cols(), cfg.Seed)
	start := time.Now()
	err = loop.Run(ctx, generations, !realtime)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	elapsed := time.Since(start)

	var final *grid.Grid
	var gen int
	_ = loop.Do(func(a *life.Automaton) error {
		final, gen = a.State(false), a.Generation()
		return nil
	})

	fmt.Printf("completed %d generations in %v\n", gen, elapsed)
	values := rec.Values()
	if err := finishRun(cfg, source, initial, final, gen, rec.Population(), values, anim); err != nil {
		return err
	}
	printMetrics(values)
	return nil
}

func finishRun(cfg *config.Config, source string, initial, final *grid.Grid, gen int, population []float64, values map[string]float64, anim *export.Animation) error {
	if outPath != "" {
		f := pattern.FormatFromPath(outPath)
		if f == pattern.FormatUnknown {
			f = pattern.FormatASCII
		}
		written, err := pattern.Save(outPath, final, f)
		if err != nil {
			return err
		}
		fmt.Printf("final board: %s\n", written)
	}

	if anim != nil {
		f, err := os.Create(gifPath)
		if err != nil {
			return err
		}
		if err := anim.Encode(f); err != nil {
			_ = f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Printf("animation: %s (%d frames)\n", gifPath, anim.Len())
	}

	if noSave {
		return nil
	}
	st := storage.New(runsDir(cfg))
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(storage.Run{
		Source:      source,
		Seed:        cfg.Seed,
		IntervalMs:  cfg.IntervalMs,
		Generations: gen,
		Initial:     initial,
		Final:       final,
		Population:  population,
		Metrics:     values,
	})
	if err != nil {
		return err
	}
	fmt.Printf("run id: %s\n", runID)
	return nil
}

func printMetrics(values map[string]float64) {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Println("\nmetrics:")
	for _, name := range names {
		fmt.Printf("  %s: %.3f\n", name, values[name])
	}
}
