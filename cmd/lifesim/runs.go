package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/lifesim/internal/analysis"
	"github.com/san-kum/lifesim/internal/config"
	"github.com/san-kum/lifesim/internal/export"
	"github.com/san-kum/lifesim/internal/storage"
	"github.com/spf13/cobra"
)

var (
	svgScale   float64
	svgFill    string
	svgInitial bool
	svgOut     string
)

func runsDir(cfg *config.Config) string {
	return filepath.Join(cfg.DataDir, "runs")
}

func openRuns(cmd *cobra.Command) (*storage.Store, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, err
	}
	return storage.New(runsDir(cfg)), nil
}

func newRunsCmds() []*cobra.Command {
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the population of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export the population series as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render the final board of a run as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().Float64Var(&svgScale, "scale", 8, "pixels per cell")
	exportSVGCmd.Flags().StringVar(&svgFill, "fill", "#00ff66", "alive cell colour")
	exportSVGCmd.Flags().BoolVar(&svgInitial, "initial", false, "render the initial board instead")
	exportSVGCmd.Flags().StringVarP(&svgOut, "output", "o", "", "output file (default stdout)")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of the population series",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	return []*cobra.Command{listCmd, plotCmd, exportCmd, exportCSVCmd, exportSVGCmd, analyzeCmd}
}

func listRuns(cmd *cobra.Command, args []string) error {
	st, err := openRuns(cmd)
	if err != nil {
		return err
	}
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSOURCE\tTIME\tBOARD\tGENS\tSEED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%dx%d\t%d\t%d\n",
			run.ID,
			run.Source,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Rows, run.Cols,
			run.Generations,
			run.Seed,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st, err := openRuns(cmd)
	if err != nil {
		return err
	}
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	series, err := st.LoadPopulation(runID)
	if err != nil {
		return err
	}
	if len(series) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("source: %s\n", meta.Source)
	fmt.Printf("generations: %d\n\n", meta.Generations)

	graph := asciigraph.Plot(series,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("population"),
	)
	fmt.Println(graph)
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st, err := openRuns(cmd)
	if err != nil {
		return err
	}
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st, err := openRuns(cmd)
	if err != nil {
		return err
	}
	series, err := st.LoadPopulation(args[0])
	if err != nil {
		return err
	}
	if len(series) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"generation", "population"}); err != nil {
		return err
	}
	for gen, v := range series {
		if err := w.Write([]string{strconv.Itoa(gen), strconv.FormatFloat(v, 'f', 0, 64)}); err != nil {
			return err
		}
	}
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st, err := openRuns(cmd)
	if err != nil {
		return err
	}
	load := st.LoadFinal
	if svgInitial {
		load = st.LoadInitial
	}
	g, err := load(args[0])
	if err != nil {
		return err
	}

	svg := export.GridToSVG(g, svgScale, svgFill, "#000000")
	if svgOut == "" {
		_, err = fmt.Print(svg)
		return err
	}
	return os.WriteFile(svgOut, []byte(svg), 0644)
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st, err := openRuns(cmd)
	if err != nil {
		return err
	}
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	series, err := st.LoadPopulation(runID)
	if err != nil {
		return err
	}
	if len(series) < 4 {
		return fmt.Errorf("run %s is too short to analyze", runID)
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("source: %s\n\n", meta.Source)

	ps, err := analysis.PowerSpectrum(analysis.Pad(series))
	if err != nil {
		return err
	}
	graph := asciigraph.Plot(ps[1:],
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum (population)"),
	)
	fmt.Println(graph)
	fmt.Println()

	period, _, err := analysis.DominantPeriod(series)
	if err != nil {
		return err
	}
	if period == 0 {
		fmt.Println("population is constant")
		return nil
	}
	fmt.Printf("dominant period: %.2f generations\n", period)
	if p, ok := meta.Metrics["period"]; ok && p > 0 {
		fmt.Printf("detected board period: %.0f generations\n", p)
	}
	return nil
}
