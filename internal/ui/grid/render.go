package grid

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"
	"github.com/mattn/go-runewidth"

	"github.com/zjrosen/lattice/internal/ui/styles"
)

// rowView is a mounted row: its cached cell values plus the
// frozen-column compensation offset pushed by the coordinator when
// sticky positioning is off.
type rowView struct {
	idx          int
	cells        []string
	frozenOffset int
}

func (rv *rowView) SetFrozenOffset(left int) { rv.frozenOffset = left }

// View implements tea.Model.
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}

	lines := make([]string, 0, m.height)
	lines = append(lines, m.headerView())
	lines = append(lines, m.bodyView()...)
	if m.opts.ShowSummary {
		lines = append(lines, m.summaryView())
	}
	lines = append(lines, m.scrollbarView())
	return strings.Join(lines, "\n")
}

// surfaceLeft returns the surface's own copy of the horizontal offset.
func (m Model) surfaceLeft(s Surface) int {
	return m.surfaces.left[s]
}

func (m Model) headerView() string {
	cm := m.window.Columns()
	var sb strings.Builder
	for c := 0; c < cm.FrozenCount(); c++ {
		col := cm.Col(c)
		sb.WriteString(styles.HeaderStyle.Render(formatCell(col.Title, col.Width, col.Numeric)))
	}
	sb.WriteString(m.renderStrip(m.surfaceLeft(SurfaceHeader), func(c int, col Column) string {
		return styles.HeaderStyle.Render(formatCell(col.Title, col.Width, col.Numeric))
	}))
	return sb.String()
}

func (m Model) bodyView() []string {
	h := m.bodyHeight()
	rows := make([]string, 0, h)

	rr := m.window.RowWindow()
	if rr.Empty() {
		if h > 0 {
			rows = append(rows, styles.MutedStyle.Render(" (no rows)"))
		}
		for len(rows) < h {
			rows = append(rows, "")
		}
		return rows
	}

	rh := m.window.Geometry().RowHeight
	for idx := rr.VisibleStart; idx <= rr.VisibleEnd && len(rows) < h; idx++ {
		var cells []string
		if rv, ok := m.mounted[idx]; ok {
			cells = rv.cells
		}
		rows = append(rows, m.rowLine(idx, cells))
		// Rows taller than one cell pad with blank lines.
		for p := 1; p < rh && len(rows) < h; p++ {
			rows = append(rows, "")
		}
	}
	for len(rows) < h {
		rows = append(rows, "")
	}
	return rows
}

func (m Model) rowLine(idx int, cells []string) string {
	cm := m.window.Columns()
	onCursorRow := idx == m.cursorRow

	var stripe lipgloss.Style
	striped := m.opts.ZebraRows && idx%2 == 1
	if striped {
		stripe = lipgloss.NewStyle().Background(styles.RowStripeBgColor)
	}

	var sb strings.Builder
	for c := 0; c < cm.FrozenCount(); c++ {
		col := cm.Col(c)
		cell := formatCell(valueAt(cells, c), col.Width, col.Numeric)
		switch {
		case onCursorRow && c == m.cursorCol:
			cell = styles.CursorStyle.Render(cell)
		default:
			cell = styles.FrozenStyle.Render(cell)
		}
		sb.WriteString(cell)
	}

	strip := m.renderStrip(m.window.ScrollLeft(), func(c int, col Column) string {
		cell := formatCell(valueAt(cells, c), col.Width, col.Numeric)
		switch {
		case onCursorRow && c == m.cursorCol:
			return styles.CursorStyle.Render(cell)
		case striped:
			return stripe.Render(cell)
		default:
			return cell
		}
	})
	sb.WriteString(strip)
	return sb.String()
}

func (m Model) summaryView() string {
	cm := m.window.Columns()
	var sb strings.Builder
	for c := 0; c < cm.FrozenCount(); c++ {
		col := cm.Col(c)
		sb.WriteString(styles.SummaryStyle.Render(formatCell(summaryAt(m.summary.Values, c), col.Width, col.Numeric)))
	}
	sb.WriteString(m.renderStrip(m.surfaceLeft(SurfaceSummary), func(c int, col Column) string {
		return styles.SummaryStyle.Render(formatCell(summaryAt(m.summary.Values, c), col.Width, col.Numeric))
	}))
	return sb.String()
}

func (m Model) scrollbarView() string {
	cm := m.window.Columns()
	gutter := strings.Repeat(" ", cm.FrozenWidth())
	bar := RenderScrollbar(m.scrollbarConfig())
	return gutter + zone.Mark(m.zoneID+"scrollbar", bar)
}

func (m Model) scrollbarConfig() ScrollbarConfig {
	cm := m.window.Columns()
	cfg := DefaultScrollbarConfig()
	cfg.TotalWidth = cm.TotalWidth()
	cfg.ViewportWidth = cm.ViewportWidth()
	cfg.ScrollLeft = m.surfaceLeft(SurfaceScrollbar)
	return cfg
}

// renderStrip renders the scrollable region: the columns in the current
// overscan column window, each padded to its width, cut to the viewport
// at the surface's horizontal offset.
func (m Model) renderStrip(left int, cellAt func(c int, col Column) string) string {
	cm := m.window.Columns()
	cr := m.window.ColWindow()
	vw := cm.ViewportWidth()
	if cr.Empty() || vw <= 0 {
		return ""
	}

	var sb strings.Builder
	for c := cr.OverscanStart; c <= cr.OverscanEnd; c++ {
		sb.WriteString(cellAt(c, cm.Col(c)))
	}

	// The strip starts at the overscan-start column's left edge; the
	// cut window is the viewport, offset into the strip.
	offset := left - cm.Left(cr.OverscanStart)
	if offset < 0 {
		offset = 0
	}
	line := ansi.Cut(sb.String(), offset, offset+vw)
	if w := ansi.StringWidth(line); w < vw {
		line += strings.Repeat(" ", vw-w)
	}
	return line
}

// formatCell truncates and pads a value to the column width, reserving
// one trailing cell as the column separator. Numeric columns are
// right-aligned.
func formatCell(v string, width int, numeric bool) string {
	inner := width - 1
	if inner < 1 {
		inner = 1
	}
	v = runewidth.Truncate(v, inner, "…")
	if numeric {
		return runewidth.FillLeft(v, inner) + " "
	}
	return runewidth.FillRight(v, inner) + " "
}

func valueAt(cells []string, c int) string {
	if c < len(cells) {
		return cells[c]
	}
	return ""
}

func summaryAt(values []string, c int) string {
	if c < len(values) {
		return values[c]
	}
	return ""
}
