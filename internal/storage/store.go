package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/san-kum/lifesim/internal/grid"
	"github.com/san-kum/lifesim/internal/pattern"
)

const (
	metadataFile   = "metadata.json"
	populationFile = "population.csv"
	initialFile    = "initial.png"
	finalFile      = "final.png"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID          string             `json:"id"`
	Source      string             `json:"source"`
	Timestamp   time.Time          `json:"timestamp"`
	Seed        int64              `json:"seed"`
	Rows        int                `json:"rows"`
	Cols        int                `json:"cols"`
	Generations int                `json:"generations"`
	IntervalMs  int                `json:"interval_ms"`
	Metrics     map[string]float64 `json:"metrics"`
}

// Run is everything persisted for one simulation.
type Run struct {
	Source      string
	Seed        int64
	IntervalMs  int
	Generations int
	Initial     *grid.Grid
	Final       *grid.Grid
	Population  []float64
	Metrics     map[string]float64
}

func (s *Store) Save(run Run) (string, error) {
	if run.Initial == nil || run.Final == nil {
		return "", errors.New("storage: run needs initial and final grids")
	}
	runID := fmt.Sprintf("%s_%d", slug(run.Source), time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:          runID,
		Source:      run.Source,
		Timestamp:   time.Now(),
		Seed:        run.Seed,
		Rows:        run.Final.Rows(),
		Cols:        run.Final.Cols(),
		Generations: run.Generations,
		IntervalMs:  run.IntervalMs,
		Metrics:     run.Metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if _, err := pattern.Save(filepath.Join(runDir, initialFile), run.Initial, pattern.FormatPNG); err != nil {
		return "", err
	}
	if _, err := pattern.Save(filepath.Join(runDir, finalFile), run.Final, pattern.FormatPNG); err != nil {
		return "", err
	}

	if err := writePopulation(filepath.Join(runDir, populationFile), run.Population); err != nil {
		return "", err
	}
	return runID, nil
}

// slug keeps run ids usable as directory names.
func slug(s string) string {
	s = strings.TrimSuffix(filepath.Base(s), filepath.Ext(s))
	out := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' {
			return unicode.ToLower(r)
		}
		return '-'
	}, s)
	if out == "" || out == "." {
		return "run"
	}
	return out
}

func writePopulation(path string, series []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"generation", "population"}); err != nil {
		return err
	}
	for gen, p := range series {
		if err := w.Write([]string{strconv.Itoa(gen), strconv.FormatFloat(p, 'f', 0, 64)}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), metadataFile))
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadPopulation reads the per-generation population series.
func (s *Store) LoadPopulation(runID string) ([]float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, populationFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}

	series := make([]float64, 0, len(records))
	for i := 1; i < len(records); i++ {
		if len(records[i]) < 2 {
			continue
		}
		v, err := strconv.ParseFloat(records[i][1], 64)
		if err != nil {
			continue
		}
		series = append(series, v)
	}
	return series, nil
}

// LoadInitial and LoadFinal read back the grids stored with a run.
func (s *Store) LoadInitial(runID string) (*grid.Grid, error) {
	return pattern.Load(filepath.Join(s.baseDir, runID, initialFile), pattern.FormatPNG)
}

func (s *Store) LoadFinal(runID string) (*grid.Grid, error) {
	return pattern.Load(filepath.Join(s.baseDir, runID, finalFile), pattern.FormatPNG)
}
