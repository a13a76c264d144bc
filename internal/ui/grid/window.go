package grid

import (
	"github.com/zjrosen/lattice/internal/log"
)

// Window is the composition root of the windowing engine. It owns the
// scroll coordinator, derives the row and column render windows from
// the current offsets and geometry, and republishes them whenever
// either changes. Every offset mutation flows through the coordinator,
// whose onChange hook recomputes the ranges before any dependent
// surface is synchronized, so a renderer reading the window after an
// event always sees ranges consistent with the new offsets.
type Window struct {
	geom Geometry
	cols ColumnMetrics

	coord *Coordinator
	nav   *Navigator

	rowRange RowRange
	colRange ColRange

	// scrollToRow is the last externally requested jump target. A
	// repeated request for the same row is a no-op so unrelated
	// re-renders never re-issue the jump. -1 means no request yet.
	scrollToRow int
}

// NewWindow builds a window over validated geometry and column metrics.
func NewWindow(geom Geometry, cols ColumnMetrics, stickyFrozen bool) *Window {
	w := &Window{
		geom:        geom,
		cols:        cols,
		coord:       NewCoordinator(stickyFrozen),
		scrollToRow: -1,
	}
	w.coord.SetOnChange(w.recompute)
	w.nav = NewNavigator(w.coord, w.Geometry, w.Columns)
	w.recompute()
	return w
}

// Coordinator exposes the scroll coordinator for surface registration.
func (w *Window) Coordinator() *Coordinator { return w.coord }

// Navigator exposes the boundary navigator for the selection overlay.
func (w *Window) Navigator() *Navigator { return w.nav }

// Geometry returns the current row geometry.
func (w *Window) Geometry() Geometry { return w.geom }

// Columns returns the current column metrics.
func (w *Window) Columns() ColumnMetrics { return w.cols }

// SetGeometry replaces the row geometry and recomputes the window.
// Called on container resize and on data-length changes.
func (w *Window) SetGeometry(geom Geometry) {
	w.geom = geom
	w.recompute()
}

// SetColumns replaces the column metrics and recomputes the window.
func (w *Window) SetColumns(cols ColumnMetrics) {
	w.cols = cols
	w.recompute()
}

// ScrollTop returns the current vertical offset.
func (w *Window) ScrollTop() int { return w.coord.Top() }

// ScrollLeft returns the current horizontal offset.
func (w *Window) ScrollLeft() int { return w.coord.Left() }

// SetScrollTop applies a user-driven vertical offset change.
func (w *Window) SetScrollTop(top int) {
	if m := w.geom.MaxScrollTop(); top > m {
		top = m
	}
	w.coord.SetVertical(top)
}

// SetScrollLeft applies a horizontal offset change originating at the
// given surface.
func (w *Window) SetScrollLeft(left int, origin Surface) {
	if m := w.cols.MaxScrollLeft(); left > m {
		left = m
	}
	w.coord.SetHorizontal(left, origin)
}

// RowWindow returns the current inclusive row render window.
func (w *Window) RowWindow() RowRange { return w.rowRange }

// ColWindow returns the current inclusive column render window.
func (w *Window) ColWindow() ColRange { return w.colRange }

// PaddingTop returns the height of the rows skipped above the mounted
// window; the rendering layer substitutes this for unmounted rows so
// total scrollable height is preserved.
func (w *Window) PaddingTop() int {
	if w.rowRange.Empty() {
		return 0
	}
	return w.rowRange.OverscanStart * w.geom.RowHeight
}

// PaddingBottom returns the height of the rows skipped below the
// mounted window.
func (w *Window) PaddingBottom() int {
	if w.rowRange.Empty() {
		return 0
	}
	return (w.geom.TotalRows - 1 - w.rowRange.OverscanEnd) * w.geom.RowHeight
}

// ScrollToRow handles an externally requested jump to a row index. The
// request is idempotent: only a target different from the previous one
// issues the authoritative vertical update. Returns true when a scroll
// was issued.
func (w *Window) ScrollToRow(idx int) bool {
	if idx == w.scrollToRow {
		return false
	}
	w.scrollToRow = idx
	log.Debug(log.CatGrid, "Scroll-to-row request", "row", idx)
	w.SetScrollTop(idx * w.geom.RowHeight)
	return true
}

// ScrollToColumn handles an externally requested jump to a column
// index, reusing the navigator's minimal-delta correction. Returns
// true when a scroll was issued.
func (w *Window) ScrollToColumn(idx int) bool {
	return w.nav.OnHitColumnBoundary(Position{Idx: idx})
}

func (w *Window) recompute() {
	w.rowRange = RowWindow(w.geom, w.coord.Top())
	w.colRange = ColumnWindow(w.cols, w.coord.Left())
}
