package utils

import (
	"encoding/json"
	"os"
	"time"

	"github.com/pkg/errors"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the configuration for the game
type Config struct {
	Rows                 int     `json:"rows"`
	Cols                 int     `json:"cols"`
	CellWidth            int     `json:"cell_width"`
	StepIntervalMs       int     `json:"step_interval_ms"`
	MinStepIntervalMs    int     `json:"min_step_interval_ms"`
	MaxStepIntervalMs    int     `json:"max_step_interval_ms"`
	StepIntervalDeltaMs  int     `json:"step_interval_delta_ms"`
	RandomizeProbability float64 `json:"randomize_probability"`
	ResizeDebounceMs     int     `json:"resize_debounce_ms"`
	UseParallel          bool    `json:"use_parallel"`
	Workers              int     `json:"workers"`
	UseBoundedGrid       bool    `json:"use_bounded_grid"`
	UseMemoryPool        bool    `json:"use_memory_pool"`
	MaxGenerations       int     `json:"max_generations"`
	AutoRestart          bool    `json:"auto_restart"`
	StagnationThreshold  int     `json:"stagnation_threshold"`
	HistorySize          int     `json:"history_size"`
	Seed                 int64   `json:"seed"`
	RecordDB             string  `json:"record_db"`
	PlotPath             string  `json:"plot_path"`
	LogFile              string  `json:"log_file"`
	AliveColor           string  `json:"alive_color"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		CellWidth:            2,
		StepIntervalMs:       400,
		MinStepIntervalMs:    10,
		MaxStepIntervalMs:    1000,
		StepIntervalDeltaMs:  10,
		RandomizeProbability: 0.3,
		ResizeDebounceMs:     250,
		UseParallel:          true,
		UseBoundedGrid:       true, // Enable active region optimization
		UseMemoryPool:        true,
		StagnationThreshold:  5,
		HistorySize:          5,
		AliveColor:           "blue",
	}
}

// LoadConfig loads configuration from JSON file
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	if err = config.Validate(); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] file: %+v", filename)
	}

	return config, nil
}

// Validate rejects values no controller can run with
func (c Config) Validate() error {
	switch {
	case c.Rows < 0 || c.Cols < 0:
		return errors.Wrapf(ErrInvalidConfig, "rows/cols must not be negative (got %dx%d)", c.Rows, c.Cols)
	case c.CellWidth < 1:
		return errors.Wrapf(ErrInvalidConfig, "cell_width must be at least 1 (got %d)", c.CellWidth)
	case c.MinStepIntervalMs < 1:
		return errors.Wrapf(ErrInvalidConfig, "min_step_interval_ms must be positive (got %d)", c.MinStepIntervalMs)
	case c.MaxStepIntervalMs < c.MinStepIntervalMs:
		return errors.Wrapf(ErrInvalidConfig, "max_step_interval_ms %d is below min_step_interval_ms %d",
			c.MaxStepIntervalMs, c.MinStepIntervalMs)
	case c.StepIntervalMs < c.MinStepIntervalMs || c.StepIntervalMs > c.MaxStepIntervalMs:
		return errors.Wrapf(ErrInvalidConfig, "step_interval_ms %d outside [%d, %d]",
			c.StepIntervalMs, c.MinStepIntervalMs, c.MaxStepIntervalMs)
	case c.StepIntervalDeltaMs < 1:
		return errors.Wrapf(ErrInvalidConfig, "step_interval_delta_ms must be positive (got %d)", c.StepIntervalDeltaMs)
	case c.RandomizeProbability < 0 || c.RandomizeProbability > 1:
		return errors.Wrapf(ErrInvalidConfig, "randomize_probability %v outside [0, 1]", c.RandomizeProbability)
	case c.ResizeDebounceMs < 0:
		return errors.Wrapf(ErrInvalidConfig, "resize_debounce_ms must not be negative (got %d)", c.ResizeDebounceMs)
	case c.Workers < 0:
		return errors.Wrapf(ErrInvalidConfig, "workers must not be negative (got %d)", c.Workers)
	case c.MaxGenerations < 0:
		return errors.Wrapf(ErrInvalidConfig, "max_generations must not be negative (got %d)", c.MaxGenerations)
	case c.StagnationThreshold < 1:
		return errors.Wrapf(ErrInvalidConfig, "stagnation_threshold must be at least 1 (got %d)", c.StagnationThreshold)
	}
	return nil
}

// StepInterval returns the configured delay between generations
func (c Config) StepInterval() time.Duration {
	return time.Duration(c.StepIntervalMs) * time.Millisecond
}

// ResizeDebounce returns how long a resize must settle before the grid is rebuilt
func (c Config) ResizeDebounce() time.Duration {
	return time.Duration(c.ResizeDebounceMs) * time.Millisecond
}

// EngineWorkers returns the worker count for the engine: 1 when parallel
// stepping is off, -1 (one per CPU) when it is on without an explicit count.
func (c Config) EngineWorkers() int {
	if !c.UseParallel {
		return 1
	}
	if c.Workers == 0 {
		return -1
	}
	return c.Workers
}
