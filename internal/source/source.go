// Package source defines the row data accessor consumed by the grid
// and its concrete dataset backends.
package source

import (
	"strconv"
	"strings"
)

// Column describes one column of a dataset.
type Column struct {
	Name    string
	Numeric bool
}

// RowSource supplies row data to the rendering layer. Row is called
// once per index in the current render window on every recomputation,
// so implementations must keep it cheap and side-effect free.
type RowSource interface {
	// Name identifies the dataset (file path or table name).
	Name() string

	// Columns returns the ordered column descriptors.
	Columns() []Column

	// RowCount returns the total number of data rows.
	RowCount() int

	// Row returns the cell values for the given row index.
	Row(i int) ([]string, error)
}

// Reloadable is implemented by sources that can re-read their backing
// store in place, preserving identity for mounted consumers.
type Reloadable interface {
	Reload() error
}

// Summary holds one aggregate value per column for the summary strip:
// the non-empty count for text columns, the sum for numeric columns.
type Summary struct {
	Values []string
}

// Summarize scans every row of the source and produces the per-column
// aggregates. Rows that fail to load are skipped; the summary is a
// best-effort readout, not a consistency check.
func Summarize(src RowSource) Summary {
	cols := src.Columns()
	sums := make([]float64, len(cols))
	counts := make([]int, len(cols))

	for i := 0; i < src.RowCount(); i++ {
		row, err := src.Row(i)
		if err != nil {
			continue
		}
		for c := 0; c < len(cols) && c < len(row); c++ {
			cell := strings.TrimSpace(row[c])
			if cell == "" {
				continue
			}
			counts[c]++
			if cols[c].Numeric {
				if v, err := strconv.ParseFloat(cell, 64); err == nil {
					sums[c] += v
				}
			}
		}
	}

	values := make([]string, len(cols))
	for c := range cols {
		if cols[c].Numeric {
			values[c] = "Σ " + strconv.FormatFloat(sums[c], 'f', -1, 64)
		} else {
			values[c] = "# " + strconv.Itoa(counts[c])
		}
	}
	return Summary{Values: values}
}

// IsNumeric reports whether a cell value parses as a number. Used for
// column type detection when loading untyped formats.
func IsNumeric(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}
