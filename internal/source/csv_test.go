package source_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/lattice/internal/source"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestCSVSource_Load(t *testing.T) {
	path := writeCSV(t, "name,age,city\nalice,30,berlin\nbob,25,paris\n")

	src, err := source.NewCSVSource(path)
	require.NoError(t, err)

	require.Equal(t, "data.csv", src.Name())
	require.Equal(t, 2, src.RowCount())

	cols := src.Columns()
	require.Len(t, cols, 3)
	require.Equal(t, "name", cols[0].Name)
	require.False(t, cols[0].Numeric)
	require.True(t, cols[1].Numeric)
	require.False(t, cols[2].Numeric)

	row, err := src.Row(1)
	require.NoError(t, err)
	require.Equal(t, []string{"bob", "25", "paris"}, row)
}

func TestCSVSource_RowOutOfRange(t *testing.T) {
	path := writeCSV(t, "a\n1\n")
	src, err := source.NewCSVSource(path)
	require.NoError(t, err)

	_, err = src.Row(5)
	require.Error(t, err)
	_, err = src.Row(-1)
	require.Error(t, err)
}

func TestCSVSource_HeaderOnly(t *testing.T) {
	path := writeCSV(t, "a,b\n")
	src, err := source.NewCSVSource(path)
	require.NoError(t, err)

	require.Equal(t, 0, src.RowCount())
	require.Len(t, src.Columns(), 2)
	// A column with no cells is never numeric.
	require.False(t, src.Columns()[0].Numeric)
}

func TestCSVSource_EmptyFile(t *testing.T) {
	path := writeCSV(t, "")
	src, err := source.NewCSVSource(path)
	require.NoError(t, err)

	require.Equal(t, 0, src.RowCount())
	require.Empty(t, src.Columns())
}

func TestCSVSource_RaggedRowsTolerated(t *testing.T) {
	path := writeCSV(t, "a,b,c\n1,2\n3,4,5,6\n")
	src, err := source.NewCSVSource(path)
	require.NoError(t, err)

	require.Equal(t, 2, src.RowCount())
}

func TestCSVSource_MissingFile(t *testing.T) {
	_, err := source.NewCSVSource(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
}

func TestCSVSource_ReloadPicksUpChanges(t *testing.T) {
	path := writeCSV(t, "n,v\nx,1\n")
	src, err := source.NewCSVSource(path)
	require.NoError(t, err)
	require.Equal(t, 1, src.RowCount())

	require.NoError(t, os.WriteFile(path, []byte("n,v\nx,1\ny,hello\nz,3\n"), 0644))
	require.NoError(t, src.Reload())

	require.Equal(t, 3, src.RowCount())
	// Type detection reruns: "hello" makes v non-numeric now.
	require.False(t, src.Columns()[1].Numeric)
}

func TestSummarize(t *testing.T) {
	path := writeCSV(t, "name,score\nalice,10\nbob,2.5\ncarol,\n")
	src, err := source.NewCSVSource(path)
	require.NoError(t, err)

	s := source.Summarize(src)

	require.Len(t, s.Values, 2)
	require.Equal(t, "# 3", s.Values[0])
	require.Equal(t, "Σ 12.5", s.Values[1])
}

func TestIsNumeric(t *testing.T) {
	require.True(t, source.IsNumeric("42"))
	require.True(t, source.IsNumeric("-3.14"))
	require.True(t, source.IsNumeric(" 7 "))
	require.False(t, source.IsNumeric(""))
	require.False(t, source.IsNumeric("abc"))
	require.False(t, source.IsNumeric("1,000"))
}
