package app

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/lattice/internal/config"
	"github.com/zjrosen/lattice/internal/flags"
	"github.com/zjrosen/lattice/internal/pubsub"
	"github.com/zjrosen/lattice/internal/source"
)

type memorySource struct {
	name string
	cols []source.Column
	rows [][]string
}

func (s *memorySource) Name() string             { return s.name }
func (s *memorySource) Columns() []source.Column { return s.cols }
func (s *memorySource) RowCount() int            { return len(s.rows) }

func (s *memorySource) Row(i int) ([]string, error) {
	if i < 0 || i >= len(s.rows) {
		return nil, fmt.Errorf("row %d out of range", i)
	}
	return s.rows[i], nil
}

func (s *memorySource) Reload() error { return nil }

func newMemorySource(rows int) *memorySource {
	s := &memorySource{
		name: "test-data",
		cols: []source.Column{
			{Name: "id", Numeric: true},
			{Name: "label", Numeric: false},
		},
	}
	for i := 0; i < rows; i++ {
		s.rows = append(s.rows, []string{fmt.Sprintf("%d", i), fmt.Sprintf("label-%d", i)})
	}
	return s
}

// createTestModel creates a Model without a watcher or tracer backend.
func createTestModel(t *testing.T) Model {
	t.Helper()

	cfg := config.Defaults()
	cfg.AutoReload = false

	m, err := New(Options{
		Source: newMemorySource(50),
		Path:   "/data/test.csv",
		Kind:   "csv",
		Config: cfg,
		Tracer: noop.NewTracerProvider().Tracer("test"),
		Flags:  flags.New(nil),
	})
	require.NoError(t, err)
	t.Cleanup(m.shutdown)

	newModel, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return newModel.(Model)
}

func TestApp_WindowSizeMsg(t *testing.T) {
	m := createTestModel(t)

	newModel, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 50})
	m = newModel.(Model)

	assert.Equal(t, 120, m.width)
	assert.Equal(t, 50, m.height)
}

func TestApp_ViewShowsDatasetName(t *testing.T) {
	m := createTestModel(t)

	view := ansi.Strip(m.View())
	assert.Contains(t, view, "test-data")
	assert.Contains(t, view, "? help")
}

func TestApp_ViewShowsColumnHeaders(t *testing.T) {
	m := createTestModel(t)

	view := ansi.Strip(m.View())
	assert.Contains(t, view, "id")
	assert.Contains(t, view, "label")
}

func TestApp_ZeroSizeViewIsEmpty(t *testing.T) {
	cfg := config.Defaults()
	cfg.AutoReload = false
	m, err := New(Options{
		Source: newMemorySource(5),
		Config: cfg,
		Tracer: noop.NewTracerProvider().Tracer("test"),
		Flags:  flags.New(nil),
	})
	require.NoError(t, err)
	t.Cleanup(m.shutdown)

	assert.Empty(t, m.View())
}

func TestApp_QuitReturnsQuitCmd(t *testing.T) {
	m := createTestModel(t)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestApp_HelpToggles(t *testing.T) {
	m := createTestModel(t)

	newModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	m = newModel.(Model)
	assert.True(t, m.showHelp)
	assert.Contains(t, ansi.Strip(m.View()), "Keybindings")

	newModel, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	m = newModel.(Model)
	assert.False(t, m.showHelp)
}

func TestApp_EscapeClosesOverlays(t *testing.T) {
	m := createTestModel(t)

	newModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	m = newModel.(Model)
	require.True(t, m.showHelp)

	newModel, _ = m.Update(tea.KeyMsg{Type: tea.KeyEscape})
	m = newModel.(Model)
	assert.False(t, m.showHelp)
	assert.Empty(t, m.infoView)
}

func TestApp_InfoOverlay(t *testing.T) {
	m := createTestModel(t)

	newModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'i'}})
	m = newModel.(Model)
	require.NotEmpty(t, m.infoView)

	view := ansi.Strip(m.View())
	assert.Contains(t, view, "test-data")
	assert.Contains(t, view, "numeric")

	// Second press closes it.
	newModel, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'i'}})
	m = newModel.(Model)
	assert.Empty(t, m.infoView)
}

func TestApp_OverlayBlocksGridKeys(t *testing.T) {
	m := createTestModel(t)

	newModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	m = newModel.(Model)

	before, _ := m.grid.Cursor()
	newModel, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	m = newModel.(Model)
	after, _ := m.grid.Cursor()

	assert.Equal(t, before, after, "cursor should not move while help is open")
}

func TestApp_CursorKeysReachGrid(t *testing.T) {
	m := createTestModel(t)

	newModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	m = newModel.(Model)

	row, _ := m.grid.Cursor()
	assert.Equal(t, 1, row)
}

func TestApp_ScrollToRowEvent(t *testing.T) {
	m := createTestModel(t)

	event := pubsub.Event[ScrollTarget]{
		Type:      pubsub.ScrollToRowEvent,
		Payload:   ScrollTarget{Row: 40},
		Timestamp: time.Now(),
	}
	newModel, cmd := m.Update(event)
	m = newModel.(Model)
	require.NotNil(t, cmd, "handler should re-arm the listener")

	w := m.grid.Window()
	rr := w.RowWindow()
	assert.GreaterOrEqual(t, 40, rr.VisibleStart)
	assert.LessOrEqual(t, 40, rr.VisibleEnd)
	assert.Positive(t, w.ScrollTop())
}

func TestApp_ProgramRunsAndQuits(t *testing.T) {
	cfg := config.Defaults()
	cfg.AutoReload = false

	m, err := New(Options{
		Source: newMemorySource(50),
		Path:   "/data/test.csv",
		Kind:   "csv",
		Config: cfg,
		Tracer: noop.NewTracerProvider().Tracer("test"),
		Flags:  flags.New(nil),
	})
	require.NoError(t, err)

	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(100, 30))

	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte("test-data"))
	}, teatest.WithDuration(3*time.Second))

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	tm.WaitFinished(t, teatest.WithFinalTimeout(3*time.Second))
}

func TestApp_ReloadKeepsView(t *testing.T) {
	m := createTestModel(t)

	newModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	m = newModel.(Model)

	assert.NoError(t, m.reloadErr)
	assert.False(t, m.lastReload.IsZero())
	assert.Contains(t, ansi.Strip(m.View()), "test-data")
}
