// Package config provides configuration types, defaults, and
// persistence for lattice.
package config

import (
	"fmt"

	"github.com/zjrosen/lattice/internal/flags"
	"github.com/zjrosen/lattice/internal/tracing"
)

// GridConfig holds the windowing-engine tunables.
type GridConfig struct {
	// RowHeight is the height of each row in cells. Values above 1 pad
	// rows with blank lines.
	RowHeight int `mapstructure:"row_height"`

	// OverscanRows is the base number of rows mounted beyond the
	// visible range on each side.
	OverscanRows int `mapstructure:"overscan_rows"`

	// OverscanScale multiplies OverscanRows: smoothness/CPU trade-off,
	// not a correctness knob.
	OverscanScale int `mapstructure:"overscan_scale"`

	// FrozenColumns pins the first n columns to the left edge.
	FrozenColumns int `mapstructure:"frozen_columns"`

	// ShowSummary toggles the per-column summary strip.
	ShowSummary bool `mapstructure:"show_summary"`
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	ShowStatusBar bool `mapstructure:"show_status_bar"`
	ZebraRows     bool `mapstructure:"zebra_rows"`
}

// RecentsConfig holds recents-store configuration.
type RecentsConfig struct {
	// Path is the recents database location.
	// Default: ~/.config/lattice/recents.db
	Path string `mapstructure:"path"`

	// Keep is the maximum number of entries retained.
	Keep int `mapstructure:"keep"`
}

// Config holds all configuration options for lattice.
type Config struct {
	AutoReload bool            `mapstructure:"auto_reload"`
	Grid       GridConfig      `mapstructure:"grid"`
	UI         UIConfig        `mapstructure:"ui"`
	Recents    RecentsConfig   `mapstructure:"recents"`
	Tracing    tracing.Config  `mapstructure:"tracing"`
	Flags      map[string]bool `mapstructure:"flags"`
}

// Defaults returns the default configuration.
func Defaults() Config {
	return Config{
		AutoReload: true,
		Grid: GridConfig{
			RowHeight:     1,
			OverscanRows:  4,
			OverscanScale: 1,
			FrozenColumns: 1,
			ShowSummary:   true,
		},
		UI: UIConfig{
			ShowStatusBar: true,
			ZebraRows:     false,
		},
		Recents: RecentsConfig{
			Keep: 50,
		},
		Tracing: tracing.DefaultConfig(),
		Flags: map[string]bool{
			flags.FlagMouse:   true,
			flags.FlagRecents: true,
		},
	}
}

// Validate checks the configuration for values the engine rejects at
// construction time.
func Validate(cfg Config) error {
	if cfg.Grid.RowHeight <= 0 {
		return fmt.Errorf("grid.row_height must be positive, got %d", cfg.Grid.RowHeight)
	}
	if cfg.Grid.OverscanRows < 0 {
		return fmt.Errorf("grid.overscan_rows must be non-negative, got %d", cfg.Grid.OverscanRows)
	}
	if cfg.Grid.FrozenColumns < 0 {
		return fmt.Errorf("grid.frozen_columns must be non-negative, got %d", cfg.Grid.FrozenColumns)
	}
	if cfg.Recents.Keep < 0 {
		return fmt.Errorf("recents.keep must be non-negative, got %d", cfg.Recents.Keep)
	}
	return nil
}
