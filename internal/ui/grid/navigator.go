package grid

import (
	"github.com/zjrosen/lattice/internal/log"
)

// Position is the cell coordinate reported by the selection overlay
// when the cursor reaches the edge of the rendered window.
type Position struct {
	RowIdx int
	Idx    int
}

// Navigator translates boundary-hit events from keyboard navigation
// into scroll corrections that bring the target cell into view. It
// decides how to react, never when: firing the events is the selection
// overlay's job.
type Navigator struct {
	coord *Coordinator
	geom  func() Geometry
	cols  func() ColumnMetrics
}

// NewNavigator creates a navigator over the coordinator. geom and cols
// supply the current geometry, which changes on resize and reload.
func NewNavigator(coord *Coordinator, geom func() Geometry, cols func() ColumnMetrics) *Navigator {
	return &Navigator{coord: coord, geom: geom, cols: cols}
}

// OnHitTop aligns the target row with the top edge of the viewport.
func (n *Navigator) OnHitTop(pos Position) {
	g := n.geom()
	top := pos.RowIdx * g.RowHeight
	log.Debug(log.CatNav, "Hit top boundary", "row", pos.RowIdx, "top", top)
	n.coord.SetVertical(top)
}

// OnHitBottom aligns the target row with the bottom edge of the
// viewport. Clamping of overflowing values is left to the scroll
// surface, matching native scrolling behavior.
func (n *Navigator) OnHitBottom(pos Position) {
	g := n.geom()
	top := (pos.RowIdx+1)*g.RowHeight - g.ClientHeight
	log.Debug(log.CatNav, "Hit bottom boundary", "row", pos.RowIdx, "top", top)
	n.coord.SetVertical(top)
}

// OnHitColumnBoundary scrolls horizontally by the minimal delta that
// brings the target column fully into view. A column that is already
// fully visible is an explicit no-op: no synchronization pass is
// issued. Returns true when a scroll was issued.
func (n *Navigator) OnHitColumnBoundary(pos Position) bool {
	cm := n.cols()
	if pos.Idx < 0 || pos.Idx >= cm.Len() {
		return false
	}
	// Frozen columns are pinned and always visible.
	if pos.Idx < cm.FrozenCount() {
		return false
	}

	left := cm.Left(pos.Idx)
	right := cm.Right(pos.Idx)
	scrollLeft := n.coord.Left()
	vw := cm.ViewportWidth()

	if left >= scrollLeft && right <= scrollLeft+vw {
		return false
	}

	newLeft := left
	if left >= scrollLeft {
		// Column sticks out past the right edge.
		newLeft = right - vw
		if newLeft < 0 {
			newLeft = 0
		}
	}

	log.Debug(log.CatNav, "Hit column boundary", "col", pos.Idx, "left", newLeft)
	n.coord.SetHorizontal(newLeft, SurfaceOverlay)
	return true
}
