package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/san-kum/lifesim/internal/config"
	"github.com/san-kum/lifesim/internal/driver"
	"github.com/san-kum/lifesim/internal/grid"
	"github.com/san-kum/lifesim/internal/library"
	"github.com/san-kum/lifesim/internal/life"
	"github.com/san-kum/lifesim/internal/metrics"
	"github.com/san-kum/lifesim/internal/pattern"
	"github.com/san-kum/lifesim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	configFile  string
	dataDir     string
	libraryPath string
	rows        int
	cols        int
	mode        string
	seed        int64
	intervalMs  int
	heatmap     bool
	theme       string
	patternPath string
	format      string
	preset      string
	play        bool
)

// main runs the terminal host when no subcommand is given. It exits with
// status 1 if the command fails.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "lifesim",
		Short:        "game of life engine and terminal host",
		SilenceUsage: true,
		RunE:         runView,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	pf.StringVar(&libraryPath, "library", config.DefaultLibrary, "pattern library database")
	pf.IntVar(&rows, "rows", config.DefaultRows, "board rows")
	pf.IntVar(&cols, "cols", config.DefaultCols, "board columns")
	pf.StringVar(&mode, "mode", config.DefaultMode, "initial board: empty or random")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 picks one from the clock)")
	pf.IntVar(&intervalMs, "interval", config.DefaultIntervalMs, "milliseconds between generations")
	pf.BoolVar(&heatmap, "heatmap", false, "start in heatmap display")
	pf.StringVar(&theme, "theme", config.DefaultTheme, "colour theme")
	pf.StringVar(&patternPath, "pattern", "", "pattern file to load")
	pf.StringVar(&format, "format", "", "pattern format (ascii, png, pgm, bmp, tiff); default from extension")
	pf.StringVar(&preset, "preset", "", "built-in or library pattern to start from")
	pf.BoolVar(&play, "play", false, "start the terminal host playing")

	viewCmd := &cobra.Command{
		Use:   "view [pattern]",
		Short: "open the terminal host",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runView,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in patterns",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				g := config.GetPreset(name)
				fmt.Printf("  %-12s %3dx%-3d %d cells\n", name, g.Rows(), g.Cols(), g.Population())
			}
			return nil
		},
	}

	rootCmd.AddCommand(viewCmd, newRunCmd(), newSurveyCmd(), newConvertCmd(), presetsCmd, newLibraryCmd())
	rootCmd.AddCommand(newRunsCmds()...)
	return rootCmd
}

// resolveConfig layers defaults, the yaml file, the environment and then
// any flag the user set explicitly.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Resolve(configFile)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("data") {
		cfg.DataDir = dataDir
	}
	if flags.Changed("library") {
		cfg.Library = libraryPath
	}
	if flags.Changed("rows") {
		cfg.Rows = rows
	}
	if flags.Changed("cols") {
		cfg.Cols = cols
	}
	if flags.Changed("mode") {
		cfg.Mode = mode
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("interval") {
		cfg.IntervalMs = intervalMs
	}
	if flags.Changed("heatmap") {
		cfg.Heatmap = heatmap
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("pattern") {
		cfg.Pattern = patternPath
	}
	if flags.Changed("format") {
		cfg.Format = format
	}
	if flags.Changed("preset") {
		cfg.Preset = preset
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return cfg, cfg.Validate()
}

// newAutomaton builds the starting board: a pattern file, then a preset, then
// an empty or random board of the configured size.
func newAutomaton(cfg *config.Config) (*life.Automaton, error) {
	m, err := life.ParseMode(cfg.Mode)
	if err != nil {
		return nil, err
	}
	a, err := life.New(cfg.Rows, cfg.Cols, m, cfg.Seed)
	if err != nil {
		return nil, err
	}

	switch {
	case cfg.Pattern != "":
		if err := a.Load(cfg.Pattern, pattern.ParseFormat(cfg.Format)); err != nil {
			return nil, err
		}
	case cfg.Preset != "":
		g, err := lookupPreset(cfg, cfg.Preset)
		if err != nil {
			return nil, err
		}
		if err := a.Replace(fitBoard(g, cfg.Rows, cfg.Cols)); err != nil {
			return nil, err
		}
	}
	a.SetDisplayMode(cfg.Heatmap)
	return a, nil
}

// lookupPreset checks the built-in presets before the pattern library.
func lookupPreset(cfg *config.Config, name string) (*grid.Grid, error) {
	if g := config.GetPreset(name); g != nil {
		return g, nil
	}
	if _, err := os.Stat(cfg.Library); err != nil {
		return nil, fmt.Errorf("unknown preset: %s (available: %v)", name, config.ListPresets())
	}
	lib, err := library.Open(cfg.Library)
	if err != nil {
		return nil, err
	}
	defer lib.Close()
	return lib.Get(name)
}

// fitBoard centres g on a rows x cols board, growing the board when g is
// larger.
func fitBoard(g *grid.Grid, rows, cols int) *grid.Grid {
	board := grid.Must(max(rows, g.Rows()), max(cols, g.Cols()))
	board.PasteCentered(g)
	return board
}

func openLibrary(cfg *config.Config) (*library.Store, error) {
	if dir := filepath.Dir(cfg.Library); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}
	return library.Open(cfg.Library)
}

func runView(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if len(args) > 0 {
		cfg.Pattern = args[0]
	}
	a, err := newAutomaton(cfg)
	if err != nil {
		return err
	}

	loop := driver.New(a, cfg.Interval())
	rec := metrics.NewRecorder(metrics.Defaults()...)
	loop.AddObserver(rec)

	savePath := cfg.Pattern
	if savePath == "" {
		savePath = filepath.Join(cfg.DataDir, "board")
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			return err
		}
	}
	f := pattern.ParseFormat(cfg.Format)
	if f == pattern.FormatUnknown && pattern.FormatFromPath(savePath) == pattern.FormatUnknown {
		f = pattern.FormatASCII
	}

	return viz.Run(loop, rec, viz.Options{
		Theme:       cfg.Theme,
		PatternPath: savePath,
		Format:      f,
		Playing:     play,
	})
}
