package cmd

import (
	"encoding/json"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/zjrosen/lattice/internal/infrastructure/sqlite"
)

var recentsLimit int

// recentDTO is the JSON shape emitted by recents:list.
type recentDTO struct {
	Path     string `json:"path"`
	Kind     string `json:"kind"`
	Table    string `json:"table,omitempty"`
	OpenedAt string `json:"opened_at"`
}

var recentsCmd = &cobra.Command{
	Use:   "recents:list",
	Short: "List recently opened datasets",
	Long: `List recently opened datasets as JSON, most recent first.

Examples:
  # List recent datasets
  lattice recents:list

  # Limit the output
  lattice recents:list --limit 10

  # Parse specific fields with jq
  lattice recents:list | jq '.[].path'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath := recentsDBPath()
		if dbPath == "" {
			return json.NewEncoder(os.Stdout).Encode([]recentDTO{})
		}

		db, err := sqlite.NewDB(dbPath)
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		models, err := sqlite.NewRecentsRepository(db).List(recentsLimit)
		if err != nil {
			return err
		}

		dtos := make([]recentDTO, 0, len(models))
		for _, m := range models {
			dto := recentDTO{
				Path:     m.Path,
				Kind:     m.Kind,
				OpenedAt: time.Unix(m.OpenedAt, 0).UTC().Format(time.RFC3339),
			}
			if m.TableName != nil {
				dto.Table = *m.TableName
			}
			dtos = append(dtos, dto)
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(dtos)
	},
}

func init() {
	recentsCmd.Flags().IntVar(&recentsLimit, "limit", 20, "Maximum number of entries to list")
	rootCmd.AddCommand(recentsCmd)
}
