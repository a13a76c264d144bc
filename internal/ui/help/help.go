// Package help contains the help overlay component.
package help

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/lattice/internal/keys"
	"github.com/zjrosen/lattice/internal/source"
	"github.com/zjrosen/lattice/internal/ui/markdown"
	"github.com/zjrosen/lattice/internal/ui/overlay"
	"github.com/zjrosen/lattice/internal/ui/styles"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.OverlayTitleColor).
			PaddingLeft(2)

	dividerStyle = lipgloss.NewStyle().
			Foreground(styles.OverlayBorderColor)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.OverlayTitleColor).
			MarginTop(1)

	keyStyle = lipgloss.NewStyle().
			Foreground(styles.TextSecondaryColor).
			Width(11)

	descStyle = lipgloss.NewStyle().
			Foreground(styles.TextDescriptionColor)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(styles.OverlayBorderColor)

	contentStyle = lipgloss.NewStyle().
			Padding(0, 2)

	footerStyle = lipgloss.NewStyle().
			Foreground(styles.TextMutedColor).
			MarginTop(1)
)

// Model holds the help view state.
type Model struct {
	keys   keys.KeyMap
	width  int
	height int
}

// New creates a new help view.
func New() Model {
	return Model{keys: keys.DefaultKeyMap()}
}

// SetSize updates dimensions.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// View renders the help overlay standalone, without a background.
func (m Model) View() string {
	return m.Overlay("")
}

// Overlay renders the help box on top of a background view.
func (m Model) Overlay(background string) string {
	helpBox := m.renderContent()

	if background == "" {
		return lipgloss.Place(
			m.width, m.height,
			lipgloss.Center, lipgloss.Center,
			helpBox,
		)
	}

	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, helpBox, background)
}

// renderContent builds the help box content.
func (m Model) renderContent() string {
	columnStyle := lipgloss.NewStyle().MarginRight(4)

	var navCol strings.Builder
	navCol.WriteString(sectionStyle.Render("Navigation"))
	navCol.WriteString("\n")
	navCol.WriteString(m.renderBinding(m.keys.Up))
	navCol.WriteString(m.renderBinding(m.keys.Down))
	navCol.WriteString(m.renderBinding(m.keys.Left))
	navCol.WriteString(m.renderBinding(m.keys.Right))

	var pagingCol strings.Builder
	pagingCol.WriteString(sectionStyle.Render("Paging"))
	pagingCol.WriteString("\n")
	pagingCol.WriteString(m.renderBinding(m.keys.PageUp))
	pagingCol.WriteString(m.renderBinding(m.keys.PageDown))
	pagingCol.WriteString(m.renderBinding(m.keys.HalfUp))
	pagingCol.WriteString(m.renderBinding(m.keys.HalfDown))

	var jumpsCol strings.Builder
	jumpsCol.WriteString(sectionStyle.Render("Jumps"))
	jumpsCol.WriteString("\n")
	jumpsCol.WriteString(m.renderBinding(m.keys.Top))
	jumpsCol.WriteString(m.renderBinding(m.keys.Bottom))
	jumpsCol.WriteString(m.renderBinding(m.keys.FirstCol))
	jumpsCol.WriteString(m.renderBinding(m.keys.LastCol))

	var generalCol strings.Builder
	generalCol.WriteString(sectionStyle.Render("General"))
	generalCol.WriteString("\n")
	generalCol.WriteString(m.renderBinding(m.keys.Reload))
	generalCol.WriteString(m.renderBinding(m.keys.Info))
	generalCol.WriteString(m.renderBinding(m.keys.Help))
	generalCol.WriteString(m.renderBinding(m.keys.Escape))
	generalCol.WriteString(m.renderBinding(m.keys.Quit))

	columns := lipgloss.JoinHorizontal(
		lipgloss.Top,
		columnStyle.Render(navCol.String()),
		columnStyle.Render(pagingCol.String()),
		columnStyle.Render(jumpsCol.String()),
		generalCol.String(),
	)

	columnsWidth := lipgloss.Width(columns)
	boxWidth := columnsWidth + 4

	body := contentStyle.Render(columns + "\n" + footerStyle.Render("Press ? or Esc to close"))
	divider := dividerStyle.Render(strings.Repeat("─", boxWidth))

	var content strings.Builder
	content.WriteString(titleStyle.Render("Keybindings"))
	content.WriteString("\n")
	content.WriteString(divider)
	content.WriteString("\n")
	content.WriteString(body)

	return boxStyle.Width(boxWidth).Render(content.String())
}

func (m Model) renderBinding(b key.Binding) string {
	help := b.Help()
	return keyStyle.Render(help.Key) + descStyle.Render(help.Desc) + "\n"
}

// DatasetInfo renders a markdown summary of the open dataset for the
// info overlay: path, kind, shape and column schema.
func DatasetInfo(r *markdown.Renderer, path, kind string, src source.RowSource) (string, error) {
	var md strings.Builder
	fmt.Fprintf(&md, "# %s\n\n", src.Name())
	fmt.Fprintf(&md, "- **Path:** `%s`\n", path)
	fmt.Fprintf(&md, "- **Kind:** %s\n", kind)
	fmt.Fprintf(&md, "- **Rows:** %d\n\n", src.RowCount())
	md.WriteString("| Column | Type |\n|---|---|\n")
	for _, c := range src.Columns() {
		typ := "text"
		if c.Numeric {
			typ = "numeric"
		}
		fmt.Fprintf(&md, "| %s | %s |\n", c.Name, typ)
	}
	return r.Render(md.String())
}
