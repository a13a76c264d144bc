package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/zjrosen/lattice/internal/cachemanager"
	"github.com/zjrosen/lattice/internal/log"
	"github.com/zjrosen/lattice/internal/source"
)

// pageSize is the number of rows fetched per query. The page cache
// keeps the grid's Row accessor cheap across a render window.
const pageSize = 256

const pageTTL = 5 * time.Minute

// TableSource serves rows from a table in a user-supplied SQLite file.
// Rows are fetched in pages and cached, so the grid's per-index access
// pattern costs one query per page, not one per row.
type TableSource struct {
	db      *sql.DB
	table   string
	columns []source.Column
	count   int
	pages   *cachemanager.ReadThroughCache[string, [][]string, int]
}

// NewTableSource builds a source over the named table.
func NewTableSource(db *sql.DB, table string) (*TableSource, error) {
	s := &TableSource{db: db, table: table}

	cols, err := s.loadColumns()
	if err != nil {
		return nil, err
	}
	s.columns = cols

	if err := s.loadCount(); err != nil {
		return nil, err
	}

	cache := cachemanager.NewInMemoryCacheManager[string, [][]string](
		"table-pages", cachemanager.DefaultExpiration, cachemanager.DefaultCleanupInterval)
	s.pages = cachemanager.NewReadThroughCache[string, [][]string, int](cache, s.fetchPage, false)

	log.Info(log.CatSource, "SQLite table loaded", "table", table, "rows", s.count, "cols", len(cols))
	return s, nil
}

// Name returns the table name.
func (s *TableSource) Name() string { return s.table }

// Columns returns the column descriptors derived from the table schema.
func (s *TableSource) Columns() []source.Column { return s.columns }

// RowCount returns the row count captured at load time.
func (s *TableSource) RowCount() int { return s.count }

// Row returns the cell values for row i, fetching its page on demand.
func (s *TableSource) Row(i int) ([]string, error) {
	if i < 0 || i >= s.count {
		return nil, fmt.Errorf("row %d out of range [0,%d)", i, s.count)
	}
	page := i / pageSize
	rows, err := s.pages.Get(context.Background(), "page:"+strconv.Itoa(page), page, pageTTL)
	if err != nil {
		return nil, err
	}
	offset := i % pageSize
	if offset >= len(rows) {
		return nil, fmt.Errorf("row %d missing from page %d", i, page)
	}
	return rows[offset], nil
}

// Reload refreshes the row count and drops every cached page.
func (s *TableSource) Reload() error {
	if err := s.loadCount(); err != nil {
		return err
	}
	return s.pages.Flush(context.Background())
}

func (s *TableSource) loadColumns() ([]source.Column, error) {
	rows, err := s.db.Query(`SELECT name, type FROM pragma_table_info(?)`, s.table)
	if err != nil {
		return nil, fmt.Errorf("reading table schema: %w", err)
	}
	defer rows.Close()

	var cols []source.Column
	for rows.Next() {
		var name, declType string
		if err := rows.Scan(&name, &declType); err != nil {
			return nil, fmt.Errorf("scanning table schema: %w", err)
		}
		cols = append(cols, source.Column{Name: name, Numeric: numericDeclType(declType)})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("table %q not found or has no columns", s.table)
	}
	return cols, nil
}

func (s *TableSource) loadCount() error {
	row := s.db.QueryRow(`SELECT COUNT(*) FROM ` + quoteIdent(s.table))
	if err := row.Scan(&s.count); err != nil {
		return fmt.Errorf("counting rows: %w", err)
	}
	return nil
}

func (s *TableSource) fetchPage(ctx context.Context, page int) ([][]string, error) {
	//nolint:gosec // G202: table identifier is quoted, values passed as args
	query := `SELECT * FROM ` + quoteIdent(s.table) + ` LIMIT ? OFFSET ?`
	rows, err := s.db.QueryContext(ctx, query, pageSize, page*pageSize)
	if err != nil {
		return nil, fmt.Errorf("fetching page %d: %w", page, err)
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var out [][]string
	raw := make([]sql.NullString, len(names))
	dest := make([]any, len(names))
	for i := range raw {
		dest[i] = &raw[i]
	}
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scanning page %d: %w", page, err)
		}
		record := make([]string, len(raw))
		for i, v := range raw {
			if v.Valid {
				record[i] = v.String
			}
		}
		out = append(out, record)
	}
	return out, rows.Err()
}

// numericDeclType classifies a SQLite declared type per the affinity
// rules that matter for display alignment.
func numericDeclType(declType string) bool {
	t := strings.ToUpper(declType)
	for _, kw := range []string{"INT", "REAL", "FLOA", "DOUB", "NUM", "DEC"} {
		if strings.Contains(t, kw) {
			return true
		}
	}
	return false
}

// quoteIdent quotes a SQL identifier, escaping embedded quotes.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
