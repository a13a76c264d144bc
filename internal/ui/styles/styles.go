// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Semantic color names - Text hierarchy
	TextPrimaryColor     = lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#CCCCCC"} // Main/primary text
	TextSecondaryColor   = lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#BBBBBB"} // Row numbers, secondary info
	TextMutedColor       = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"} // Hints, help text, footers
	TextPlaceholderColor = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#777777"} // Empty cells

	// Semantic color names - Border
	BorderDefaultColor = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"} // Unfocused borders

	// Semantic color names - Status
	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"} // Success states
	StatusWarningColor = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"} // Warnings
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"} // Errors

	// Grid colors
	HeaderFgColor    = lipgloss.AdaptiveColor{Light: "#1A5276", Dark: "#89B4FA"} // Column titles
	FrozenBgColor    = lipgloss.AdaptiveColor{Light: "#EFEFEF", Dark: "#242424"} // Frozen column background
	CursorFgColor    = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1A1A1A"} // Selected cell text
	CursorBgColor    = lipgloss.AdaptiveColor{Light: "#3498DB", Dark: "#89B4FA"} // Selected cell background
	SummaryFgColor   = lipgloss.AdaptiveColor{Light: "#179299", Dark: "#94E2D5"} // Summary strip values
	StatusBarFgColor = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#999999"} // Status bar text
	RowStripeBgColor = lipgloss.AdaptiveColor{Light: "#F7F7F7", Dark: "#1C1C1C"} // Alternating row background

	// Overlay colors
	OverlayTitleColor    = lipgloss.AdaptiveColor{Light: "#1A5276", Dark: "#89B4FA"} // Overlay titles
	OverlayBorderColor   = lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#696969"} // Overlay borders
	TextDescriptionColor = lipgloss.AdaptiveColor{Light: "#444444", Dark: "#AAAAAA"} // Keybinding descriptions

	// Grid styles
	HeaderStyle    = lipgloss.NewStyle().Bold(true).Foreground(HeaderFgColor)
	FrozenStyle    = lipgloss.NewStyle().Background(FrozenBgColor)
	CursorStyle    = lipgloss.NewStyle().Foreground(CursorFgColor).Background(CursorBgColor).Bold(true)
	SummaryStyle   = lipgloss.NewStyle().Foreground(SummaryFgColor)
	StatusBarStyle = lipgloss.NewStyle().Foreground(StatusBarFgColor)
	MutedStyle     = lipgloss.NewStyle().Foreground(TextMutedColor)
	ErrorStyle     = lipgloss.NewStyle().Foreground(StatusErrorColor)
)
