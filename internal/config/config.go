package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const (
	DefaultRows       = 100
	DefaultCols       = 150
	DefaultMode       = "empty"
	DefaultIntervalMs = 100
	DefaultTheme      = "phosphor"
	DefaultDataDir    = ".lifesim"
	DefaultLibrary    = ".lifesim/patterns.db"
)

type Config struct {
	Rows       int    `yaml:"rows" env:"LIFESIM_ROWS"`
	Cols       int    `yaml:"cols" env:"LIFESIM_COLS"`
	Mode       string `yaml:"mode" env:"LIFESIM_MODE"`
	Seed       int64  `yaml:"seed" env:"LIFESIM_SEED"`
	IntervalMs int    `yaml:"interval_ms" env:"LIFESIM_INTERVAL_MS"`
	Heatmap    bool   `yaml:"heatmap" env:"LIFESIM_HEATMAP"`
	Theme      string `yaml:"theme" env:"LIFESIM_THEME"`
	Pattern    string `yaml:"pattern" env:"LIFESIM_PATTERN"`
	Format     string `yaml:"format" env:"LIFESIM_FORMAT"`
	Preset     string `yaml:"preset" env:"LIFESIM_PRESET"`
	DataDir    string `yaml:"data_dir" env:"LIFESIM_DATA_DIR"`
	Library    string `yaml:"library" env:"LIFESIM_LIBRARY"`
}

func DefaultConfig() *Config {
	return &Config{
		Rows:       DefaultRows,
		Cols:       DefaultCols,
		Mode:       DefaultMode,
		IntervalMs: DefaultIntervalMs,
		Theme:      DefaultTheme,
		DataDir:    DefaultDataDir,
		Library:    DefaultLibrary,
	}
}

// Load reads a yaml file on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyEnv overrides fields from LIFESIM_* environment variables.
func (c *Config) ApplyEnv() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Resolve builds the effective config: defaults, then the yaml file at path
// (if any), then the environment.
func Resolve(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		loaded, err := Load(path)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.Rows <= 0 || c.Cols <= 0 {
		return fmt.Errorf("grid size must be positive, got %dx%d", c.Rows, c.Cols)
	}
	if c.Mode != "empty" && c.Mode != "random" {
		return fmt.Errorf("unknown mode: %s", c.Mode)
	}
	if c.IntervalMs < 0 {
		return fmt.Errorf("interval must not be negative, got %d", c.IntervalMs)
	}
	return nil
}

func (c *Config) Interval() time.Duration {
	return time.Duration(c.IntervalMs) * time.Millisecond
}
