package grid

import "sort"

// overscanCols is the fixed column padding applied on each side of the
// visible column range.
const overscanCols = 1

// RowRange is the inclusive row window to mount. Overscan bounds pad
// the visible bounds outward for smoother scrolling; all bounds are
// clamped into [0, TotalRows-1]. A dataset with zero rows yields the
// empty sentinel (all bounds -1).
type RowRange struct {
	OverscanStart int
	OverscanEnd   int
	VisibleStart  int
	VisibleEnd    int
}

// EmptyRowRange is the sentinel consumers read as "render nothing".
var EmptyRowRange = RowRange{OverscanStart: -1, OverscanEnd: -1, VisibleStart: -1, VisibleEnd: -1}

// Empty reports whether the range renders nothing.
func (r RowRange) Empty() bool { return r.OverscanStart < 0 }

// Count returns the number of rows in the overscan window.
func (r RowRange) Count() int {
	if r.Empty() {
		return 0
	}
	return r.OverscanEnd - r.OverscanStart + 1
}

// Contains reports whether idx falls inside the overscan window.
func (r RowRange) Contains(idx int) bool {
	return !r.Empty() && idx >= r.OverscanStart && idx <= r.OverscanEnd
}

// RowWindow computes the row window for the given geometry and vertical
// scroll offset. It is pure and total: out-of-range offsets are
// clamped, a zero-row dataset yields EmptyRowRange, and a non-positive
// client height yields a minimal single-row visible range.
func RowWindow(geom Geometry, scrollTop int) RowRange {
	if geom.TotalRows == 0 {
		return EmptyRowRange
	}
	last := geom.TotalRows - 1

	if scrollTop < 0 {
		scrollTop = 0
	}
	visibleStart := scrollTop / geom.RowHeight
	if visibleStart > last {
		visibleStart = last
	}

	// Whole rows that fit in the client area. Degenerate heights still
	// produce one row so consumers never see a negative-size range.
	rowsFit := (geom.ClientHeight + geom.RowHeight - 1) / geom.RowHeight
	if rowsFit < 1 {
		rowsFit = 1
	}
	visibleEnd := visibleStart + rowsFit - 1
	if visibleEnd > last {
		visibleEnd = last
	}

	pad := geom.overscanPad()
	overscanStart := visibleStart - pad
	if overscanStart < 0 {
		overscanStart = 0
	}
	overscanEnd := visibleEnd + pad
	if overscanEnd > last {
		overscanEnd = last
	}

	return RowRange{
		OverscanStart: overscanStart,
		OverscanEnd:   overscanEnd,
		VisibleStart:  visibleStart,
		VisibleEnd:    visibleEnd,
	}
}

// ColRange is the inclusive column window. Indices are absolute into
// the full column list; frozen columns are always rendered and never
// appear in the range.
type ColRange struct {
	OverscanStart int
	OverscanEnd   int
	VisibleStart  int
	VisibleEnd    int
}

// EmptyColRange is the sentinel for a grid with no scrollable columns.
var EmptyColRange = ColRange{OverscanStart: -1, OverscanEnd: -1, VisibleStart: -1, VisibleEnd: -1}

// Empty reports whether the range renders nothing.
func (r ColRange) Empty() bool { return r.OverscanStart < 0 }

// Contains reports whether idx falls inside the overscan window.
func (r ColRange) Contains(idx int) bool {
	return !r.Empty() && idx >= r.OverscanStart && idx <= r.OverscanEnd
}

// ColumnWindow computes the column window for the given metrics and
// horizontal scroll offset. Cumulative offsets are monotonically
// non-decreasing, so both bounds are located by binary search over the
// scrollable suffix; frozen columns are excluded from the search space.
func ColumnWindow(cols ColumnMetrics, scrollLeft int) ColRange {
	f := cols.FrozenCount()
	n := cols.Len() - f
	if n == 0 {
		return EmptyColRange
	}

	if scrollLeft < 0 {
		scrollLeft = 0
	}
	if m := cols.MaxScrollLeft(); scrollLeft > m {
		scrollLeft = m
	}
	vw := cols.ViewportWidth()

	// First scrollable column whose right edge exceeds scrollLeft.
	visibleStart := sort.Search(n, func(i int) bool {
		return cols.Right(f+i) > scrollLeft
	})
	if visibleStart == n {
		visibleStart = n - 1
	}

	// Last column whose left edge is inside the viewport.
	visibleEnd := sort.Search(n, func(i int) bool {
		return cols.Left(f+i) >= scrollLeft+vw
	}) - 1
	if visibleEnd < visibleStart {
		// Degenerate viewport width: keep a minimal one-column range.
		visibleEnd = visibleStart
	}

	overscanStart := visibleStart - overscanCols
	if overscanStart < 0 {
		overscanStart = 0
	}
	overscanEnd := visibleEnd + overscanCols
	if overscanEnd > n-1 {
		overscanEnd = n - 1
	}

	return ColRange{
		OverscanStart: f + overscanStart,
		OverscanEnd:   f + overscanEnd,
		VisibleStart:  f + visibleStart,
		VisibleEnd:    f + visibleEnd,
	}
}
