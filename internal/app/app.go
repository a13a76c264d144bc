// Package app contains the root application model.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/lattice/internal/config"
	"github.com/zjrosen/lattice/internal/flags"
	"github.com/zjrosen/lattice/internal/keys"
	"github.com/zjrosen/lattice/internal/log"
	"github.com/zjrosen/lattice/internal/pubsub"
	"github.com/zjrosen/lattice/internal/source"
	"github.com/zjrosen/lattice/internal/tracing"
	"github.com/zjrosen/lattice/internal/ui/grid"
	"github.com/zjrosen/lattice/internal/ui/help"
	"github.com/zjrosen/lattice/internal/ui/markdown"
	"github.com/zjrosen/lattice/internal/ui/overlay"
	"github.com/zjrosen/lattice/internal/ui/styles"
	"github.com/zjrosen/lattice/internal/watcher"
)

// ScrollTarget is the payload of an external scroll-to request.
type ScrollTarget struct {
	Row int
	Col int
}

// Options carries everything the root model needs from the CLI layer.
type Options struct {
	Source source.RowSource
	Path   string
	Kind   string
	Config config.Config
	Tracer trace.Tracer
	Flags  *flags.Registry
}

// Model is the root application state: the grid, its overlays and the
// event plumbing around them.
type Model struct {
	opts Options
	keys keys.KeyMap

	grid grid.Model
	help help.Model

	showHelp bool
	infoView string

	md *markdown.Renderer

	width  int
	height int

	reloadErr  error
	lastReload time.Time

	// External scroll-to requests arrive through this broker; anything
	// holding it can steer the grid without touching the update loop.
	scrollBroker   *pubsub.Broker[ScrollTarget]
	scrollCtx      context.Context
	scrollCancel   context.CancelFunc
	scrollListener *pubsub.ContinuousListener[ScrollTarget]

	watcherHandle   *watcher.Watcher
	watcherCtx      context.Context
	watcherCancel   context.CancelFunc
	watcherListener *pubsub.ContinuousListener[watcher.Event]
}

// New creates the root model. The watcher is started only when auto
// reload is enabled; watcher init failures are non-fatal and the app
// simply runs without auto-reload.
func New(opts Options) (Model, error) {
	km := keys.DefaultKeyMap()

	g, err := grid.New(opts.Source, grid.Options{
		RowHeight:     opts.Config.Grid.RowHeight,
		OverscanRows:  opts.Config.Grid.OverscanRows,
		OverscanScale: opts.Config.Grid.OverscanScale,
		FrozenColumns: opts.Config.Grid.FrozenColumns,
		ShowSummary:   opts.Config.Grid.ShowSummary,
		ZebraRows:     opts.Config.UI.ZebraRows,
		StickyFrozen:  !opts.Flags.Enabled(flags.FlagManualFrozenCompensation),
	}, km)
	if err != nil {
		return Model{}, fmt.Errorf("creating grid: %w", err)
	}

	m := Model{
		opts:         opts,
		keys:         km,
		grid:         g,
		help:         help.New(),
		scrollBroker: pubsub.NewBroker[ScrollTarget](),
	}
	m.scrollCtx, m.scrollCancel = context.WithCancel(context.Background())
	m.scrollListener = pubsub.NewContinuousListener(m.scrollCtx, m.scrollBroker)

	if opts.Config.AutoReload && opts.Path != "" {
		w, err := watcher.New(watcher.DefaultConfig(opts.Path))
		if err == nil {
			if err := w.Start(); err == nil {
				m.watcherHandle = w
				m.watcherCtx, m.watcherCancel = context.WithCancel(context.Background())
				m.watcherListener = pubsub.NewContinuousListener(m.watcherCtx, w.Broker())
			} else {
				_ = w.Stop()
			}
		}
		// Watcher init errors are swallowed; manual reload still works.
	}

	return m, nil
}

// ScrollBroker exposes the scroll-to request broker.
func (m Model) ScrollBroker() *pubsub.Broker[ScrollTarget] { return m.scrollBroker }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.scrollListener.Listen()}
	if m.watcherListener != nil {
		cmds = append(cmds, m.watcherListener.Listen())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.grid = m.grid.SetSize(msg.Width, m.gridHeight())
		m.help = m.help.SetSize(msg.Width, msg.Height)
		if m.md == nil || m.md.Width() != msg.Width-8 {
			m.md, _ = markdown.New(msg.Width - 8)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.showHelp || m.infoView != "" {
			return m, nil
		}
		var cmd tea.Cmd
		m.grid, cmd = m.grid.Update(msg)
		return m, cmd

	case pubsub.Event[ScrollTarget]:
		switch msg.Type {
		case pubsub.ScrollToRowEvent:
			m.grid = m.grid.ScrollToRow(msg.Payload.Row)
		case pubsub.ScrollToColumnEvent:
			m.grid = m.grid.ScrollToColumn(msg.Payload.Col)
		}
		return m, m.scrollListener.Listen()

	case pubsub.Event[watcher.Event]:
		if msg.Type == pubsub.DatasetChangedEvent {
			log.Info(log.CatWatcher, "Dataset changed on disk", "path", msg.Payload.Path)
			m = m.reload()
		}
		return m, m.watcherListener.Listen()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.shutdown()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Escape):
		m.showHelp = false
		m.infoView = ""
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.infoView = ""
		return m, nil

	case key.Matches(msg, m.keys.Info):
		if m.infoView != "" {
			m.infoView = ""
			return m, nil
		}
		m.infoView = m.renderInfo()
		m.showHelp = false
		return m, nil

	case key.Matches(msg, m.keys.Reload):
		m = m.reload()
		return m, nil
	}

	if m.showHelp || m.infoView != "" {
		return m, nil
	}

	var cmd tea.Cmd
	m.grid, cmd = m.grid.Update(msg)
	return m, cmd
}

// reload re-reads the backing store in place and refreshes the grid.
// Sources that cannot reload are left untouched.
func (m Model) reload() Model {
	r, ok := m.opts.Source.(source.Reloadable)
	if !ok {
		return m
	}

	_, span := tracing.StartReload(context.Background(), m.opts.Tracer, m.opts.Path)
	m.reloadErr = r.Reload()
	if m.reloadErr != nil {
		log.ErrorErr(log.CatSource, "Reload failed", m.reloadErr, "path", m.opts.Path)
		span.End()
		return m
	}

	m.grid = m.grid.Refresh()
	m.lastReload = time.Now()
	tracing.EndLoad(span, m.opts.Source.RowCount(), len(m.opts.Source.Columns()))
	log.Info(log.CatSource, "Dataset reloaded", "path", m.opts.Path, "rows", m.opts.Source.RowCount())
	return m
}

func (m *Model) shutdown() {
	if m.watcherHandle != nil {
		_ = m.watcherHandle.Stop()
	}
	if m.watcherCancel != nil {
		m.watcherCancel()
	}
	m.scrollCancel()
}

func (m Model) gridHeight() int {
	h := m.height
	if m.opts.Config.UI.ShowStatusBar {
		h--
	}
	if h < 0 {
		h = 0
	}
	return h
}

func (m Model) renderInfo() string {
	if m.md == nil {
		return ""
	}
	info, err := help.DatasetInfo(m.md, m.opts.Path, m.opts.Kind, m.opts.Source)
	if err != nil {
		log.ErrorErr(log.CatUI, "Info render failed", err)
		return ""
	}
	return info
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}

	view := m.grid.View()
	if m.opts.Config.UI.ShowStatusBar {
		view += "\n" + m.statusBarView()
	}

	if m.showHelp {
		return m.help.Overlay(view)
	}
	if m.infoView != "" {
		box := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(styles.OverlayBorderColor).
			Padding(0, 1).
			Render(m.infoView)
		return overlay.Place(overlay.Config{
			Width:    m.width,
			Height:   m.height,
			Position: overlay.Center,
		}, box, view)
	}
	return view
}

func (m Model) statusBarView() string {
	row, col := m.grid.Cursor()
	w := m.grid.Window()

	right := fmt.Sprintf(" %d:%d  rows %d  top %d left %d  ? help ",
		row+1, col+1,
		w.Geometry().TotalRows,
		w.ScrollTop(), w.ScrollLeft(),
	)
	if m.reloadErr != nil {
		right = styles.ErrorStyle.Render(" reload failed ") + right
	}

	avail := m.width - lipgloss.Width(right)
	left := " " + m.opts.Source.Name()
	if avail > 1 {
		left = " " + truncate.StringWithTail(m.opts.Source.Name(), uint(avail-1), "…") //nolint:gosec // G115: avail is a small positive screen width
	}
	pad := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if pad < 0 {
		pad = 0
	}
	return styles.StatusBarStyle.Render(left + lipgloss.NewStyle().Width(pad).Render("") + right)
}
