package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/haryoiro/orderdesk/internal/constants"
	"github.com/haryoiro/orderdesk/internal/structures"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned by Validate for out-of-range values.
var ErrInvalidConfig = errors.New("invalid config")

// Load loads the configuration from a TOML or YAML file over the defaults
func Load(path string) (*structures.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if isYAML(path) {
		err = yaml.Unmarshal(data, cfg)
	} else {
		err = toml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save saves the configuration, picking the format from the file extension
func Save(cfg *structures.Config, path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(cfg)
	} else {
		data, err = toml.Marshal(cfg)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// Validate rejects values the list and performance layers cannot work with
func Validate(cfg *structures.Config) error {
	l := cfg.List
	switch {
	case l.InitialNumToRender < 0:
		return fmt.Errorf("%w: list.initial_num_to_render must not be negative", ErrInvalidConfig)
	case l.WindowSize < 0:
		return fmt.Errorf("%w: list.window_size must not be negative", ErrInvalidConfig)
	case l.MaxToRenderPerBatch < 0:
		return fmt.Errorf("%w: list.max_to_render_per_batch must not be negative", ErrInvalidConfig)
	case l.UpdateCellsBatchingPeriodMs < 0:
		return fmt.Errorf("%w: list.update_cells_batching_period_ms must not be negative", ErrInvalidConfig)
	case l.OnEndReachedThreshold < 0:
		return fmt.Errorf("%w: list.on_end_reached_threshold must not be negative", ErrInvalidConfig)
	}

	p := cfg.Performance
	if p.RenderThresholdMs < 0 || p.SearchDebounceMs < 0 || p.DetailMountMs < 0 {
		return fmt.Errorf("%w: performance durations must not be negative", ErrInvalidConfig)
	}

	if cfg.Store.PageSize < 0 {
		return fmt.Errorf("%w: store.page_size must not be negative", ErrInvalidConfig)
	}

	return nil
}

// Default returns the default configuration
func Default() *structures.Config {
	return &structures.Config{
		Theme: structures.Theme{
			Foreground: "#c0caf5", // Tokyo Night foreground
			Selected:   "#7aa2f7", // Tokyo Night blue
			Muted:      "#565f89", // Tokyo Night dark gray
			Warning:    "#e0af68", // Tokyo Night yellow
			Border:     "#3b4261", // Tokyo Night border
		},
		KeyBindings: structures.KeyBindings{
			Quit:     "ctrl+d",
			MoveUp:   []string{"up", "k"},
			MoveDown: []string{"down", "j"},
			PageUp:   "pgup",
			PageDown: "pgdown",
			Top:      "g",
			Bottom:   "G",
			Search:   "/",
			Select:   []string{"enter", "l"},
			Back:     []string{"esc"},
			Reload:   "r",
		},
		List: structures.ListConfig{
			InitialNumToRender:          constants.ListInitialItems,
			WindowSize:                  constants.ListWindowSize,
			MaxToRenderPerBatch:         constants.BatchSize,
			UpdateCellsBatchingPeriodMs: int(constants.ListBatchingPeriod.Milliseconds()),
			OnEndReachedThreshold:       constants.ListEndReachedFraction,
		},
		Performance: structures.PerformanceConfig{
			Enabled:           true,
			RenderThresholdMs: int(constants.RenderThreshold.Milliseconds()),
			SearchDebounceMs:  int(constants.SearchDebounceDelay.Milliseconds()),
			DetailMountMs:     int(constants.DetailMountDelay.Milliseconds()),
		},
		Store: structures.StoreConfig{
			PageSize: constants.DefaultPageSize,
			Currency: "USD",
		},
		Log: structures.LogConfig{
			Level:      "info",
			MaxSizeMB:  constants.DefaultLogMaxSizeMB,
			MaxBackups: constants.DefaultLogMaxBackups,
			MaxAgeDays: constants.DefaultLogMaxAgeDays,
			Compress:   true,
		},
	}
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
