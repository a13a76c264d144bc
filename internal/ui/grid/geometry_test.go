package grid

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewGeometry_RejectsInvalidDimensions(t *testing.T) {
	_, err := NewGeometry(0, 350, 1000, 4, 1)
	require.Error(t, err)

	_, err = NewGeometry(-1, 350, 1000, 4, 1)
	require.Error(t, err)

	_, err = NewGeometry(35, 350, -1, 4, 1)
	require.Error(t, err)

	_, err = NewGeometry(35, 350, 1000, -1, 1)
	require.Error(t, err)
}

func TestNewGeometry_NormalizesScale(t *testing.T) {
	g, err := NewGeometry(35, 350, 1000, 4, 0)
	require.NoError(t, err)
	require.Equal(t, 1, g.OverscanScale)
}

func TestGeometry_ContentHeightAndMaxScrollTop(t *testing.T) {
	g := mustGeometry(t, 35, 350, 1000, 4, 1)

	require.Equal(t, 35000, g.ContentHeight())
	require.Equal(t, 34650, g.MaxScrollTop())
}

func TestGeometry_MaxScrollTopFloorsAtZero(t *testing.T) {
	g := mustGeometry(t, 35, 350, 5, 4, 1)

	require.Equal(t, 0, g.MaxScrollTop())
}

func TestNewColumnMetrics_RejectsNonPositiveWidth(t *testing.T) {
	_, err := NewColumnMetrics([]Column{{Title: "a", Width: 0}}, 100)
	require.Error(t, err)
	require.Contains(t, err.Error(), "width must be positive")
}

func TestNewColumnMetrics_RejectsInterleavedFrozen(t *testing.T) {
	_, err := NewColumnMetrics([]Column{
		{Title: "a", Width: 10, Frozen: true},
		{Title: "b", Width: 10},
		{Title: "c", Width: 10, Frozen: true},
	}, 100)
	require.Error(t, err)
	require.Contains(t, err.Error(), "frozen columns must precede")
}

func TestColumnMetrics_Layout(t *testing.T) {
	cm := mustCols(t, 50, 2, 8, 12, 10, 20, 15)

	require.Equal(t, 5, cm.Len())
	require.Equal(t, 2, cm.FrozenCount())
	require.Equal(t, 20, cm.FrozenWidth())
	require.Equal(t, 45, cm.TotalWidth())
	require.Equal(t, 30, cm.ViewportWidth())

	// Frozen offsets accumulate independently of scrollable ones.
	require.Equal(t, 0, cm.Left(0))
	require.Equal(t, 8, cm.Left(1))
	require.Equal(t, 0, cm.Left(2))
	require.Equal(t, 10, cm.Left(3))
	require.Equal(t, 30, cm.Left(4))
	require.Equal(t, 45, cm.Right(4))

	require.Equal(t, 15, cm.MaxScrollLeft())
}

func TestColumnMetrics_ViewportNeverNegative(t *testing.T) {
	cm := mustCols(t, 5, 1, 10, 10)

	require.Equal(t, 0, cm.ViewportWidth())
}

func TestSurface_String(t *testing.T) {
	require.Equal(t, "body", SurfaceBody.String())
	require.Equal(t, "header", SurfaceHeader.String())
	require.Equal(t, "summary", SurfaceSummary.String())
	require.Equal(t, "scrollbar", SurfaceScrollbar.String())
	require.Equal(t, "overlay", SurfaceOverlay.String())
	require.Equal(t, "unknown", Surface(99).String())
}
