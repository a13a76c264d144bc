package grid

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/mattn/go-runewidth"

	"github.com/zjrosen/lattice/internal/keys"
	"github.com/zjrosen/lattice/internal/log"
	"github.com/zjrosen/lattice/internal/source"
)

// Column width bounds used when sizing columns from data.
const (
	minColWidth    = 6
	maxColWidth    = 32
	widthSampleCap = 200
)

// wheelStep is the number of rows scrolled per mouse wheel tick.
const wheelStep = 3

// Options configures the grid component.
type Options struct {
	RowHeight     int
	OverscanRows  int
	OverscanScale int
	FrozenColumns int
	ShowSummary   bool
	ZebraRows     bool

	// StickyFrozen disables the per-row compensation push; when false
	// the coordinator pushes horizontal offsets into mounted rows.
	StickyFrozen bool
}

// surfaceState holds the per-surface horizontal offsets. Each
// dependent surface keeps its own copy of the offset, kept in lockstep
// by coordinator fan-out; shared by pointer so coordinator closures
// survive bubbletea's value copying.
type surfaceState struct {
	left map[Surface]int
}

// Model is the grid component: the viewport window plus the selection
// overlay cursor and the rendering layer.
type Model struct {
	opts Options
	keys keys.KeyMap
	src  source.RowSource

	window   *Window
	surfaces *surfaceState
	mounted  map[int]*rowView

	width  int
	height int

	cursorRow int
	cursorCol int

	summary source.Summary

	zoneID string
}

// New creates a grid over the given source.
func New(src source.RowSource, opts Options, km keys.KeyMap) (Model, error) {
	cols, err := buildColumns(src, opts.FrozenColumns, 0)
	if err != nil {
		return Model{}, err
	}
	geom, err := NewGeometry(opts.RowHeight, 0, src.RowCount(), opts.OverscanRows, opts.OverscanScale)
	if err != nil {
		return Model{}, err
	}

	m := Model{
		opts:     opts,
		keys:     km,
		src:      src,
		window:   NewWindow(geom, cols, opts.StickyFrozen),
		surfaces: &surfaceState{left: make(map[Surface]int)},
		mounted:  make(map[int]*rowView),
		zoneID:   zone.NewPrefix(),
	}

	// Dependent surfaces: each keeps its own offset copy, synchronized
	// by the coordinator. The body reads the coordinator's own state.
	st := m.surfaces
	for _, s := range []Surface{SurfaceHeader, SurfaceSummary, SurfaceScrollbar, SurfaceOverlay} {
		s := s
		m.window.Coordinator().RegisterSurface(s, func(left int) {
			st.left[s] = left
		})
	}

	if opts.ShowSummary {
		m.summary = source.Summarize(src)
	}
	m.reconcileMounts()
	return m, nil
}

// Window exposes the viewport window to the app (status bar, overlays).
func (m Model) Window() *Window { return m.window }

// Cursor returns the selection cursor position.
func (m Model) Cursor() (row, col int) { return m.cursorRow, m.cursorCol }

// SetSize updates the component dimensions and rederives geometry and
// column metrics.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height

	geom := m.window.Geometry()
	geom.ClientHeight = m.bodyHeight()
	m.window.SetGeometry(geom)

	cols, err := buildColumns(m.src, m.opts.FrozenColumns, width)
	if err == nil {
		m.window.SetColumns(cols)
	}
	m.reconcileMounts()
	return m
}

// bodyHeight is the client height left for data rows: total height
// minus header, summary strip and scrollbar.
func (m Model) bodyHeight() int {
	h := m.height - 1 - 1 // header + scrollbar
	if m.opts.ShowSummary {
		h--
	}
	if h < 0 {
		h = 0
	}
	return h
}

// Refresh re-reads the source shape after a dataset reload.
func (m Model) Refresh() Model {
	geom := m.window.Geometry()
	geom.TotalRows = m.src.RowCount()
	m.window.SetGeometry(geom)

	cols, err := buildColumns(m.src, m.opts.FrozenColumns, m.width)
	if err == nil {
		m.window.SetColumns(cols)
	}

	if m.cursorRow >= geom.TotalRows {
		m.cursorRow = max(geom.TotalRows-1, 0)
	}
	if m.opts.ShowSummary {
		m.summary = source.Summarize(m.src)
	}
	m.reconcileMounts()
	log.Debug(log.CatGrid, "Grid refreshed", "rows", geom.TotalRows, "cols", m.window.Columns().Len())
	return m
}

// ScrollToRow reacts to an external scroll-to-row request.
func (m Model) ScrollToRow(idx int) Model {
	if m.window.ScrollToRow(idx) {
		m.cursorRow = clamp(idx, 0, max(m.src.RowCount()-1, 0))
		m.reconcileMounts()
	}
	return m
}

// ScrollToColumn reacts to an external scroll-to-column request.
func (m Model) ScrollToColumn(idx int) Model {
	if m.window.ScrollToColumn(idx) {
		m.cursorCol = clamp(idx, 0, max(m.window.Columns().Len()-1, 0))
		m.reconcileMounts()
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg), nil
	case tea.MouseMsg:
		return m.handleMouse(msg), nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) Model {
	rows := m.src.RowCount()
	cols := m.window.Columns().Len()
	if rows == 0 || cols == 0 {
		return m
	}
	lastRow := rows - 1
	lastCol := cols - 1

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursorRow > 0 {
			m.cursorRow--
			m.syncCursorRow()
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursorRow < lastRow {
			m.cursorRow++
			m.syncCursorRow()
		}
	case key.Matches(msg, m.keys.Left):
		if m.cursorCol > 0 {
			m.cursorCol--
			m.syncCursorCol()
		}
	case key.Matches(msg, m.keys.Right):
		if m.cursorCol < lastCol {
			m.cursorCol++
			m.syncCursorCol()
		}
	case key.Matches(msg, m.keys.PageDown):
		m = m.pageBy(m.visibleRowCount())
	case key.Matches(msg, m.keys.PageUp):
		m = m.pageBy(-m.visibleRowCount())
	case key.Matches(msg, m.keys.HalfDown):
		m = m.pageBy(m.visibleRowCount() / 2)
	case key.Matches(msg, m.keys.HalfUp):
		m = m.pageBy(-m.visibleRowCount() / 2)
	case key.Matches(msg, m.keys.Top):
		m.cursorRow = 0
		m.window.SetScrollTop(0)
	case key.Matches(msg, m.keys.Bottom):
		m.cursorRow = lastRow
		m.window.Navigator().OnHitBottom(Position{RowIdx: lastRow})
	case key.Matches(msg, m.keys.FirstCol):
		m.cursorCol = 0
		m.window.SetScrollLeft(0, SurfaceOverlay)
	case key.Matches(msg, m.keys.LastCol):
		m.cursorCol = lastCol
		m.syncCursorCol()
	}

	m.reconcileMounts()
	return m
}

func (m Model) handleMouse(msg tea.MouseMsg) Model {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.window.SetScrollTop(m.window.ScrollTop() - wheelStep*m.window.Geometry().RowHeight)
	case tea.MouseButtonWheelDown:
		m.window.SetScrollTop(m.window.ScrollTop() + wheelStep*m.window.Geometry().RowHeight)
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return m
		}
		if z := zone.Get(m.zoneID + "scrollbar"); z.InBounds(msg) {
			x, _ := z.Pos(msg)
			m = m.scrollbarClick(x)
		}
	}
	m.reconcileMounts()
	return m
}

// scrollbarClick jumps the horizontal offset to the clicked track cell.
// Fan-out skips the origin surface, so the scrollbar records its own
// clamped offset the way a natively scrolling element would.
func (m Model) scrollbarClick(x int) Model {
	cfg := m.scrollbarConfig()
	m.window.SetScrollLeft(OffsetForThumbClick(cfg, x), SurfaceScrollbar)
	m.surfaces.left[SurfaceScrollbar] = m.window.ScrollLeft()
	return m
}

// syncCursorRow fires a boundary event when the cursor moved outside
// the visible row range. The overlay reports, the navigator reacts.
func (m *Model) syncCursorRow() {
	rr := m.window.RowWindow()
	if rr.Empty() {
		return
	}
	if m.cursorRow < rr.VisibleStart {
		m.window.Navigator().OnHitTop(Position{RowIdx: m.cursorRow, Idx: m.cursorCol})
	} else if m.cursorRow > rr.VisibleEnd {
		m.window.Navigator().OnHitBottom(Position{RowIdx: m.cursorRow, Idx: m.cursorCol})
	}
}

// syncCursorCol asks the navigator to bring the cursor column fully
// into view; already-visible columns are a no-op inside the navigator.
func (m *Model) syncCursorCol() {
	m.window.Navigator().OnHitColumnBoundary(Position{RowIdx: m.cursorRow, Idx: m.cursorCol})
}

func (m Model) pageBy(rows int) Model {
	total := m.src.RowCount()
	if total == 0 || rows == 0 {
		return m
	}
	m.cursorRow = clamp(m.cursorRow+rows, 0, total-1)
	geom := m.window.Geometry()
	m.window.SetScrollTop(m.window.ScrollTop() + rows*geom.RowHeight)
	m.syncCursorRow()
	return m
}

func (m Model) visibleRowCount() int {
	rr := m.window.RowWindow()
	if rr.Empty() {
		return 0
	}
	return rr.VisibleEnd - rr.VisibleStart + 1
}

// reconcileMounts aligns the mounted row views with the overscan
// window: rows leaving the window unregister, rows entering register.
func (m Model) reconcileMounts() {
	rr := m.window.RowWindow()
	reg := m.window.Coordinator().Rows()

	for idx := range m.mounted {
		if !rr.Contains(idx) {
			reg.Unregister(idx)
			delete(m.mounted, idx)
		}
	}
	if rr.Empty() {
		return
	}
	for idx := rr.OverscanStart; idx <= rr.OverscanEnd; idx++ {
		if _, ok := m.mounted[idx]; ok {
			continue
		}
		cells, err := m.src.Row(idx)
		if err != nil {
			log.ErrorErr(log.CatGrid, "Row load failed", err, "row", idx)
			continue
		}
		rv := &rowView{idx: idx, cells: cells}
		m.mounted[idx] = rv
		reg.Register(idx, rv)
	}
}

// buildColumns derives column metrics from the source schema, sizing
// each column to its longest sampled cell within [minColWidth,
// maxColWidth].
func buildColumns(src source.RowSource, frozen, clientWidth int) (ColumnMetrics, error) {
	srcCols := src.Columns()
	cols := make([]Column, len(srcCols))

	sample := min(src.RowCount(), widthSampleCap)
	widths := make([]int, len(srcCols))
	for c, sc := range srcCols {
		widths[c] = runewidth.StringWidth(sc.Name)
	}
	for i := 0; i < sample; i++ {
		row, err := src.Row(i)
		if err != nil {
			continue
		}
		for c := 0; c < len(widths) && c < len(row); c++ {
			if w := runewidth.StringWidth(row[c]); w > widths[c] {
				widths[c] = w
			}
		}
	}

	for c, sc := range srcCols {
		cols[c] = Column{
			Title:   sc.Name,
			Width:   clamp(widths[c]+1, minColWidth, maxColWidth),
			Frozen:  c < frozen,
			Numeric: sc.Numeric,
		}
	}
	return NewColumnMetrics(cols, clientWidth)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
