package grid

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/lattice/internal/ui/styles"
)

// Scrollbar characters
const (
	scrollbarThumbChar = '█' // Full block
	scrollbarTrackChar = '░' // Light shade
)

// ScrollbarConfig configures the synthetic horizontal scrollbar.
type ScrollbarConfig struct {
	// Dimensions
	TotalWidth    int // Scrollable content width
	ViewportWidth int // Visible width of the scrollable region
	ScrollLeft    int // Current scroll position (leftmost visible cell)

	// Style configuration
	TrackChar string // Track character (default: "░")
	ThumbChar string // Thumb character (default: "█")
}

// DefaultScrollbarConfig returns default configuration.
func DefaultScrollbarConfig() ScrollbarConfig {
	return ScrollbarConfig{
		TrackChar: string(scrollbarTrackChar),
		ThumbChar: string(scrollbarThumbChar),
	}
}

// calculateThumbBounds returns the start cell and width of the scroll thumb.
// Formula: thumbWidth = max(1, viewportWidth * viewportWidth / totalWidth)
// Position: start = scrollLeft * scrollableTrack / maxOffset
func calculateThumbBounds(cfg ScrollbarConfig) (start, width int) {
	if cfg.TotalWidth <= 0 || cfg.ViewportWidth <= 0 {
		return 0, 0
	}

	// If content fits in viewport, thumb fills entire track
	if cfg.TotalWidth <= cfg.ViewportWidth {
		return 0, cfg.ViewportWidth
	}

	// Thumb width proportional to visible/total ratio.
	// Minimum width is 1 to ensure thumb is always visible.
	width = max(1, cfg.ViewportWidth*cfg.ViewportWidth/cfg.TotalWidth)

	maxOffset := cfg.TotalWidth - cfg.ViewportWidth
	if maxOffset <= 0 {
		return 0, width
	}

	// Scrollable track area (total width minus thumb size)
	scrollableTrack := cfg.ViewportWidth - width
	if scrollableTrack <= 0 {
		return 0, width
	}

	// Position thumb proportionally within scrollable track
	start = scrollableTrack * cfg.ScrollLeft / maxOffset

	// Clamp to valid range
	start = max(0, min(start, cfg.ViewportWidth-width))

	return start, width
}

// RenderScrollbar renders the scrollbar as a single line of
// ViewportWidth cells: track (░) and thumb (█) showing scroll position.
// Returns an all-space line when content fits in the viewport and an
// empty string for invalid dimensions.
func RenderScrollbar(cfg ScrollbarConfig) string {
	if cfg.ViewportWidth <= 0 || cfg.TotalWidth <= 0 {
		return ""
	}

	// If content fits in viewport, no scrollbar needed (return spaces)
	if cfg.TotalWidth <= cfg.ViewportWidth {
		return strings.Repeat(" ", cfg.ViewportWidth)
	}

	thumbStart, thumbWidth := calculateThumbBounds(cfg)

	trackStyle := lipgloss.NewStyle().Foreground(styles.TextMutedColor)
	thumbStyle := lipgloss.NewStyle().Foreground(styles.TextSecondaryColor)

	trackChar := cfg.TrackChar
	if trackChar == "" {
		trackChar = string(scrollbarTrackChar)
	}
	thumbChar := cfg.ThumbChar
	if thumbChar == "" {
		thumbChar = string(scrollbarThumbChar)
	}

	var sb strings.Builder
	if thumbStart > 0 {
		sb.WriteString(trackStyle.Render(strings.Repeat(trackChar, thumbStart)))
	}
	sb.WriteString(thumbStyle.Render(strings.Repeat(thumbChar, thumbWidth)))
	if rest := cfg.ViewportWidth - thumbStart - thumbWidth; rest > 0 {
		sb.WriteString(trackStyle.Render(strings.Repeat(trackChar, rest)))
	}
	return sb.String()
}

// OffsetForThumbClick maps a click on the scrollbar track to the scroll
// offset that centers the thumb on the clicked cell.
func OffsetForThumbClick(cfg ScrollbarConfig, cell int) int {
	if cfg.TotalWidth <= cfg.ViewportWidth || cfg.ViewportWidth <= 0 {
		return 0
	}
	_, thumbWidth := calculateThumbBounds(cfg)
	scrollableTrack := cfg.ViewportWidth - thumbWidth
	if scrollableTrack <= 0 {
		return 0
	}
	target := cell - thumbWidth/2
	target = max(0, min(target, scrollableTrack))
	maxOffset := cfg.TotalWidth - cfg.ViewportWidth
	return target * maxOffset / scrollableTrack
}
