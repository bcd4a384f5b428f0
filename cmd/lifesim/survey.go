package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/san-kum/lifesim/internal/experiment"
	"github.com/spf13/cobra"
)

var (
	surveyRuns    int
	surveyWorkers int
	surveyGens    int
)

func newSurveyCmd() *cobra.Command {
	surveyCmd := &cobra.Command{
		Use:   "survey",
		Short: "run random boards across consecutive seeds and report how they settle",
		RunE:  runSurvey,
	}
	surveyCmd.Flags().IntVar(&surveyRuns, "runs", 16, "number of boards")
	surveyCmd.Flags().IntVar(&surveyWorkers, "workers", 0, "concurrent boards (0 uses all CPUs)")
	surveyCmd.Flags().IntVar(&surveyGens, "generations", 1000, "generation limit per board")
	return surveyCmd
}

func runSurvey(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("surveying %d boards of %dx%d from seed %d...\n", surveyRuns, cfg.Rows, cfg.Cols, cfg.Seed)
	start := time.Now()
	results, err := experiment.Run(ctx, experiment.Config{
		Rows:        cfg.Rows,
		Cols:        cfg.Cols,
		Generations: surveyGens,
		SeedStart:   cfg.Seed,
		Runs:        surveyRuns,
		Workers:     surveyWorkers,
	})
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tGENS\tINITIAL\tFINAL\tPEAK\tPERIOD")
	for _, r := range results {
		period := "-"
		if r.Settled() {
			period = fmt.Sprintf("%d @%d", r.Period, r.SettledAt)
		}
		fmt.Fprintf(w, "%d\t%d\t%d\t%d\t%d\t%s\n", r.Seed, r.Generations, r.Initial, r.Final, r.Peak, period)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	s := experiment.Summarize(results)
	fmt.Printf("\ncompleted in %v\n", elapsed)
	fmt.Printf("settled: %d/%d\n", s.Settled, s.Runs)
	fmt.Printf("mean generations: %.1f\n", s.MeanGenerations)
	fmt.Printf("mean final population: %.1f\n", s.MeanFinal)
	if s.Longest.Settled() {
		fmt.Printf("longest to settle: seed %d at generation %d\n", s.Longest.Seed, s.Longest.SettledAt)
	}
	return nil
}
