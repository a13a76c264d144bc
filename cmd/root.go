package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/lattice/internal/app"
	"github.com/zjrosen/lattice/internal/config"
	"github.com/zjrosen/lattice/internal/flags"
	"github.com/zjrosen/lattice/internal/infrastructure/sqlite"
	"github.com/zjrosen/lattice/internal/log"
	"github.com/zjrosen/lattice/internal/source"
	"github.com/zjrosen/lattice/internal/tracing"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in input fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

var (
	version = "dev"
	cfgFile string
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:     "lattice <dataset>",
	Short:   "A terminal viewer for tabular datasets",
	Long:    `A terminal user interface for browsing CSV files and SQLite tables as a virtualized grid with frozen columns and synchronized scrolling.`,
	Version: version,
	Args:    cobra.ExactArgs(1),
	RunE:    runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/lattice/config.yaml)")
	rootCmd.Flags().StringP("table", "t", "",
		"table to open for SQLite datasets (default: first table)")
	rootCmd.Flags().Bool("no-reload", false,
		"disable automatic reload when the dataset changes on disk")
	rootCmd.Flags().Bool("no-color", false,
		"disable colored output")
	rootCmd.Flags().String("debug", "",
		"write debug logs to the given file")
	rootCmd.Flags().IntP("frozen", "f", -1,
		"number of frozen leading columns (overrides config)")
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("auto_reload", defaults.AutoReload)
	viper.SetDefault("grid.row_height", defaults.Grid.RowHeight)
	viper.SetDefault("grid.overscan_rows", defaults.Grid.OverscanRows)
	viper.SetDefault("grid.overscan_scale", defaults.Grid.OverscanScale)
	viper.SetDefault("grid.frozen_columns", defaults.Grid.FrozenColumns)
	viper.SetDefault("grid.show_summary", defaults.Grid.ShowSummary)
	viper.SetDefault("ui.show_status_bar", defaults.UI.ShowStatusBar)
	viper.SetDefault("ui.zebra_rows", defaults.UI.ZebraRows)
	viper.SetDefault("recents.keep", defaults.Recents.Keep)
	viper.SetDefault("flags", defaults.Flags)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .lattice/config.yaml (current directory)
		// 2. ~/.config/lattice/config.yaml (user config)
		if _, err := os.Stat(".lattice/config.yaml"); err == nil {
			viper.SetConfigFile(".lattice/config.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "lattice"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create default at .lattice/config.yaml
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			defaultPath := ".lattice/config.yaml"
			if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
				viper.SetConfigFile(defaultPath)
				_ = viper.ReadInConfig()
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	_ = viper.Unmarshal(&cfg)
}

func runApp(cmd *cobra.Command, args []string) error {
	if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
	if debugPath, _ := cmd.Flags().GetString("debug"); debugPath != "" {
		cleanup, err := log.Init(debugPath)
		if err != nil {
			return fmt.Errorf("initializing debug log: %w", err)
		}
		defer cleanup()
	}
	if noReload, _ := cmd.Flags().GetBool("no-reload"); noReload {
		cfg.AutoReload = false
	}
	if frozen, _ := cmd.Flags().GetInt("frozen"); frozen >= 0 {
		cfg.Grid.FrozenColumns = frozen
	}

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	registry := flags.New(cfg.Flags)

	provider, err := tracing.NewProvider(cfg.Tracing)
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	defer func() { _ = provider.Shutdown(context.Background()) }()

	path, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolving dataset path: %w", err)
	}

	table, _ := cmd.Flags().GetString("table")
	_, span := tracing.StartLoad(context.Background(), provider.Tracer(), path, datasetKind(path))
	src, closer, err := openSource(path, table)
	if err != nil {
		span.End()
		return err
	}
	if closer != nil {
		defer closer()
	}
	tracing.EndLoad(span, src.RowCount(), len(src.Columns()))

	if registry.Enabled(flags.FlagRecents) {
		recordRecent(path, table)
	}

	opts := app.Options{
		Source: src,
		Path:   path,
		Kind:   datasetKind(path),
		Config: cfg,
		Tracer: provider.Tracer(),
		Flags:  registry,
	}
	model, err := newAppModel(opts)
	if err != nil {
		return err
	}

	programOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if registry.Enabled(flags.FlagMouse) {
		programOpts = append(programOpts, tea.WithMouseCellMotion())
	}

	p := tea.NewProgram(model, programOpts...)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// newAppModel initializes the global zone manager and builds the root
// model. Components mint zone prefixes during construction, so the
// manager must exist before app.New runs.
func newAppModel(opts app.Options) (app.Model, error) {
	zone.NewGlobal()
	return app.New(opts)
}

// openSource builds a row source for the dataset path. The returned
// closer releases the backing store, nil when there is nothing to close.
func openSource(path, table string) (source.RowSource, func(), error) {
	switch datasetKind(path) {
	case "csv":
		src, err := source.NewCSVSource(path)
		if err != nil {
			return nil, nil, fmt.Errorf("opening csv: %w", err)
		}
		return src, nil, nil

	case "sqlite":
		db, err := sqlite.OpenReadOnly(path)
		if err != nil {
			return nil, nil, fmt.Errorf("opening sqlite database: %w", err)
		}
		if table == "" {
			table, err = firstTable(db)
			if err != nil {
				_ = db.Close()
				return nil, nil, err
			}
		}
		src, err := sqlite.NewTableSource(db, table)
		if err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("opening table %q: %w", table, err)
		}
		return src, func() { _ = db.Close() }, nil
	}

	return nil, nil, fmt.Errorf("unsupported dataset type: %s", filepath.Ext(path))
}

// datasetKind maps a file extension to a dataset kind.
func datasetKind(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return "csv"
	case ".db", ".sqlite", ".sqlite3":
		return "sqlite"
	default:
		return ""
	}
}

// firstTable returns the first user table in the database.
func firstTable(db *sql.DB) (string, error) {
	var name string
	err := db.QueryRow(
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name LIMIT 1`,
	).Scan(&name)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("database has no tables")
	}
	if err != nil {
		return "", fmt.Errorf("listing tables: %w", err)
	}
	return name, nil
}

// recentsDBPath resolves the recents store location.
func recentsDBPath() string {
	if cfg.Recents.Path != "" {
		return cfg.Recents.Path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "lattice", "recents.db")
}

// recordRecent best-effort records the opened dataset in the recents
// store; failures never block opening the dataset.
func recordRecent(path, table string) {
	dbPath := recentsDBPath()
	if dbPath == "" {
		return
	}
	db, err := sqlite.NewDB(dbPath)
	if err != nil {
		log.Warn(log.CatDB, "Recents store unavailable", "error", err)
		return
	}
	defer func() { _ = db.Close() }()

	repo := sqlite.NewRecentsRepository(db)
	var tableName *string
	if table != "" {
		tableName = &table
	}
	if err := repo.Touch(path, datasetKind(path), tableName); err != nil {
		log.Warn(log.CatDB, "Failed to record recent dataset", "error", err)
		return
	}
	if err := repo.Prune(cfg.Recents.Keep); err != nil {
		log.Warn(log.CatDB, "Failed to prune recents", "error", err)
	}
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
