package source

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/zjrosen/lattice/internal/log"
)

// CSVSource serves rows from a CSV file held in memory. The first
// record is treated as the header row. Reload re-reads the file in
// place so the watcher can refresh an open dataset.
type CSVSource struct {
	mu      sync.RWMutex
	path    string
	columns []Column
	records [][]string
}

// NewCSVSource loads the CSV file at path.
func NewCSVSource(path string) (*CSVSource, error) {
	s := &CSVSource{path: path}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Name returns the file name of the backing CSV.
func (s *CSVSource) Name() string {
	return filepath.Base(s.path)
}

// Columns returns the header-derived column descriptors.
func (s *CSVSource) Columns() []Column {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.columns
}

// RowCount returns the number of data rows (header excluded).
func (s *CSVSource) RowCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Row returns the record at index i.
func (s *CSVSource) Row(i int) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i < 0 || i >= len(s.records) {
		return nil, fmt.Errorf("row %d out of range [0,%d)", i, len(s.records))
	}
	return s.records[i], nil
}

// Reload re-reads the backing file. Column types are re-detected: a
// column is numeric when every non-empty cell parses as a number.
func (s *CSVSource) Reload() error {
	f, err := os.Open(s.path)
	if err != nil {
		return fmt.Errorf("opening csv: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // tolerate ragged rows
	all, err := reader.ReadAll()
	if err != nil {
		return fmt.Errorf("parsing csv: %w", err)
	}
	if len(all) == 0 {
		s.mu.Lock()
		s.columns, s.records = nil, nil
		s.mu.Unlock()
		return nil
	}

	header := all[0]
	records := all[1:]

	columns := make([]Column, len(header))
	for c, name := range header {
		columns[c] = Column{Name: name, Numeric: detectNumeric(records, c)}
	}

	s.mu.Lock()
	s.columns = columns
	s.records = records
	s.mu.Unlock()

	log.Info(log.CatSource, "CSV loaded", "path", s.path, "rows", len(records), "cols", len(columns))
	return nil
}

// detectNumeric reports whether every non-empty cell in column c is a
// number. A column with no non-empty cells is not numeric.
func detectNumeric(records [][]string, c int) bool {
	seen := false
	for _, row := range records {
		if c >= len(row) || row[c] == "" {
			continue
		}
		if !IsNumeric(row[c]) {
			return false
		}
		seen = true
	}
	return seen
}
