package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors Config with yaml tags for writing the default
// config file. Viper reads with mapstructure tags; yaml.v3 writes with
// these.
type fileConfig struct {
	AutoReload bool `yaml:"auto_reload"`
	Grid       struct {
		RowHeight     int  `yaml:"row_height"`
		OverscanRows  int  `yaml:"overscan_rows"`
		OverscanScale int  `yaml:"overscan_scale"`
		FrozenColumns int  `yaml:"frozen_columns"`
		ShowSummary   bool `yaml:"show_summary"`
	} `yaml:"grid"`
	UI struct {
		ShowStatusBar bool `yaml:"show_status_bar"`
		ZebraRows     bool `yaml:"zebra_rows"`
	} `yaml:"ui"`
	Recents struct {
		Keep int `yaml:"keep"`
	} `yaml:"recents"`
	Flags map[string]bool `yaml:"flags"`
}

// WriteDefaultConfig writes the default configuration to path,
// creating parent directories as needed. Existing files are left
// untouched.
func WriteDefaultConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	d := Defaults()
	var fc fileConfig
	fc.AutoReload = d.AutoReload
	fc.Grid.RowHeight = d.Grid.RowHeight
	fc.Grid.OverscanRows = d.Grid.OverscanRows
	fc.Grid.OverscanScale = d.Grid.OverscanScale
	fc.Grid.FrozenColumns = d.Grid.FrozenColumns
	fc.Grid.ShowSummary = d.Grid.ShowSummary
	fc.UI.ShowStatusBar = d.UI.ShowStatusBar
	fc.UI.ZebraRows = d.UI.ZebraRows
	fc.Recents.Keep = d.Recents.Keep
	fc.Flags = d.Flags

	data, err := yaml.Marshal(&fc)
	if err != nil {
		return fmt.Errorf("marshaling default config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil { //nolint:gosec // G306: config file is not sensitive
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
