// Package grid implements the virtualized data-grid viewport: range
// windowing over rows and columns, scroll synchronization across the
// grid's dependent surfaces, and boundary-driven cell navigation.
package grid

import (
	"fmt"
)

// Surface identifies one horizontally scrollable region of the grid.
// The scroll coordinator uses it as the origin tag when fanning out
// offset changes, so an update never bounces back to its sender.
type Surface int

const (
	SurfaceBody Surface = iota
	SurfaceHeader
	SurfaceSummary
	SurfaceScrollbar
	SurfaceOverlay
)

func (s Surface) String() string {
	switch s {
	case SurfaceBody:
		return "body"
	case SurfaceHeader:
		return "header"
	case SurfaceSummary:
		return "summary"
	case SurfaceScrollbar:
		return "scrollbar"
	case SurfaceOverlay:
		return "overlay"
	default:
		return "unknown"
	}
}

// Geometry holds the immutable per-render inputs for row windowing.
// Construct with NewGeometry so invalid dimensions are rejected up front.
type Geometry struct {
	// RowHeight is the uniform height of a single row, in cells.
	RowHeight int

	// ClientHeight is the height available to the scrolling body:
	// total height minus header, summary strip and scrollbar.
	ClientHeight int

	// TotalRows is the row count of the dataset.
	TotalRows int

	// OverscanRows is the base number of rows to mount beyond the
	// strictly visible range on each side.
	OverscanRows int

	// OverscanScale multiplies OverscanRows. Larger values trade more
	// mounted rows for fewer window recomputations while scrolling.
	OverscanScale int
}

// NewGeometry validates and constructs a Geometry.
// A non-positive row height is a configuration error; a scale below 1
// is normalized to 1.
func NewGeometry(rowHeight, clientHeight, totalRows, overscanRows, overscanScale int) (Geometry, error) {
	if rowHeight <= 0 {
		return Geometry{}, fmt.Errorf("row height must be positive, got %d", rowHeight)
	}
	if totalRows < 0 {
		return Geometry{}, fmt.Errorf("total rows must be non-negative, got %d", totalRows)
	}
	if overscanRows < 0 {
		return Geometry{}, fmt.Errorf("overscan rows must be non-negative, got %d", overscanRows)
	}
	if overscanScale < 1 {
		overscanScale = 1
	}
	return Geometry{
		RowHeight:     rowHeight,
		ClientHeight:  clientHeight,
		TotalRows:     totalRows,
		OverscanRows:  overscanRows,
		OverscanScale: overscanScale,
	}, nil
}

// ContentHeight returns the total scrollable height of the body.
func (g Geometry) ContentHeight() int {
	return g.TotalRows * g.RowHeight
}

// MaxScrollTop returns the largest meaningful vertical offset.
func (g Geometry) MaxScrollTop() int {
	if m := g.ContentHeight() - g.ClientHeight; m > 0 {
		return m
	}
	return 0
}

// overscanPad is the effective number of rows padded on each side of
// the visible range.
func (g Geometry) overscanPad() int {
	return g.OverscanRows * g.OverscanScale
}

// Column describes one grid column.
type Column struct {
	Title string

	// Width is the column width in cells.
	Width int

	// Frozen columns are pinned to the left edge and excluded from
	// horizontal scrolling. Frozen columns must form a prefix of the
	// column order.
	Frozen bool

	// Numeric columns are right-aligned and summarized by sum.
	Numeric bool

	// left is the cumulative offset. For scrollable columns it is
	// relative to the start of the scrollable content area.
	left int
}

// ColumnMetrics is the ordered column layout: per-column widths and
// cumulative offsets, total scrollable content width, and the viewport
// width left over for the scrollable region.
type ColumnMetrics struct {
	cols          []Column
	frozenCount   int
	frozenWidth   int
	totalWidth    int
	viewportWidth int
}

// NewColumnMetrics validates columns and computes cumulative offsets.
// clientWidth is the full width available to the grid; the frozen
// prefix is carved out of it. Frozen columns interleaved with
// scrollable ones are rejected.
func NewColumnMetrics(cols []Column, clientWidth int) (ColumnMetrics, error) {
	cm := ColumnMetrics{cols: make([]Column, len(cols))}
	copy(cm.cols, cols)

	seenScrollable := false
	for i := range cm.cols {
		c := &cm.cols[i]
		if c.Width <= 0 {
			return ColumnMetrics{}, fmt.Errorf("column %q: width must be positive, got %d", c.Title, c.Width)
		}
		if c.Frozen {
			if seenScrollable {
				return ColumnMetrics{}, fmt.Errorf("column %q: frozen columns must precede scrollable columns", c.Title)
			}
			c.left = cm.frozenWidth
			cm.frozenWidth += c.Width
			cm.frozenCount++
			continue
		}
		seenScrollable = true
		c.left = cm.totalWidth
		cm.totalWidth += c.Width
	}

	cm.viewportWidth = clientWidth - cm.frozenWidth
	if cm.viewportWidth < 0 {
		cm.viewportWidth = 0
	}
	return cm, nil
}

// Len returns the total number of columns, frozen included.
func (cm ColumnMetrics) Len() int { return len(cm.cols) }

// FrozenCount returns the number of frozen prefix columns.
func (cm ColumnMetrics) FrozenCount() int { return cm.frozenCount }

// FrozenWidth returns the combined width of the frozen prefix.
func (cm ColumnMetrics) FrozenWidth() int { return cm.frozenWidth }

// TotalWidth returns the scrollable content width.
func (cm ColumnMetrics) TotalWidth() int { return cm.totalWidth }

// ViewportWidth returns the width available to the scrollable region.
func (cm ColumnMetrics) ViewportWidth() int { return cm.viewportWidth }

// Col returns the column at index i.
func (cm ColumnMetrics) Col(i int) Column { return cm.cols[i] }

// Left returns the cumulative left offset of column i. For scrollable
// columns the offset is relative to the scrollable content area.
func (cm ColumnMetrics) Left(i int) int { return cm.cols[i].left }

// Right returns the cumulative right edge of column i.
func (cm ColumnMetrics) Right(i int) int { return cm.cols[i].left + cm.cols[i].Width }

// MaxScrollLeft returns the largest meaningful horizontal offset.
func (cm ColumnMetrics) MaxScrollLeft() int {
	if m := cm.totalWidth - cm.viewportWidth; m > 0 {
		return m
	}
	return 0
}
