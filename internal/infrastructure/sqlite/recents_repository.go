package sqlite

import (
	"database/sql"
	"fmt"
	"time"
)

// RecentsRepository persists the list of recently opened datasets.
type RecentsRepository struct {
	db *sql.DB
}

// NewRecentsRepository creates a repository over an open lattice db.
func NewRecentsRepository(db *sql.DB) *RecentsRepository {
	return &RecentsRepository{db: db}
}

// Touch records that the dataset at path was opened now, inserting or
// refreshing its entry.
func (r *RecentsRepository) Touch(path, kind string, tableName *string) error {
	_, err := r.db.Exec(
		`INSERT INTO recents (path, kind, table_name, opened_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET kind = excluded.kind, table_name = excluded.table_name, opened_at = excluded.opened_at`,
		path, kind, tableName, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("recording recent dataset: %w", err)
	}
	return nil
}

// List returns up to limit recents, most recently opened first.
func (r *RecentsRepository) List(limit int) ([]RecentModel, error) {
	rows, err := r.db.Query(
		`SELECT id, path, kind, table_name, opened_at FROM recents ORDER BY opened_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing recents: %w", err)
	}
	defer rows.Close()

	var recents []RecentModel
	for rows.Next() {
		var m RecentModel
		if err := rows.Scan(&m.ID, &m.Path, &m.Kind, &m.TableName, &m.OpenedAt); err != nil {
			return nil, fmt.Errorf("scanning recent: %w", err)
		}
		recents = append(recents, m)
	}
	return recents, rows.Err()
}

// Prune deletes all but the newest keep entries.
func (r *RecentsRepository) Prune(keep int) error {
	_, err := r.db.Exec(
		`DELETE FROM recents WHERE id NOT IN (SELECT id FROM recents ORDER BY opened_at DESC LIMIT ?)`,
		keep,
	)
	if err != nil {
		return fmt.Errorf("pruning recents: %w", err)
	}
	return nil
}
