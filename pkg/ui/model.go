// Package ui implements the terminal dashboard.
package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/vanderheijden86/feedlens/internal/datasource"
	"github.com/vanderheijden86/feedlens/pkg/config"
	"github.com/vanderheijden86/feedlens/pkg/debug"
	"github.com/vanderheijden86/feedlens/pkg/export"
	"github.com/vanderheijden86/feedlens/pkg/model"
	"github.com/vanderheijden86/feedlens/pkg/watcher"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	// SplitViewThreshold is the narrowest width that lays panels side by side.
	SplitViewThreshold = 100

	defaultWidth  = 120
	defaultHeight = 40
)

// FileChangedMsg is sent when an input file changes on disk
type FileChangedMsg struct{}

// ExportDoneMsg reports the result of an export started from the dashboard.
type ExportDoneMsg struct {
	Dir   string
	Paths []string
	Err   error
}

// WatchFileCmd returns a command that waits for file changes and sends FileChangedMsg
func WatchFileCmd(w *watcher.Watcher) tea.Cmd {
	return func() tea.Msg {
		<-w.Changed()
		return FileChangedMsg{}
	}
}

// ExportCmd writes the export bundle in the background.
func ExportCmd(ds datasource.Dataset, dir string, formats []string, topN int) tea.Cmd {
	return func() tea.Msg {
		paths, err := export.WriteBundle(context.Background(), ds, dir, formats, export.Options{TopN: topN})
		return ExportDoneMsg{Dir: dir, Paths: paths, Err: err}
	}
}

// Options configures the dashboard.
type Options struct {
	TopN       int
	TruncateAt int
	Watcher    *watcher.Watcher // nil disables live reload

	ExportDir     string
	ExportFormats []string

	Renderer *lipgloss.Renderer // nil uses the default renderer
}

// Model is the dashboard page: summaries, metrics and chart on top, the
// top feedback items below, all inside a scrolling viewport.
type Model struct {
	ds    datasource.Dataset
	opts  Options
	theme Theme
	keys  keyMap

	summaries SummaryPanelModel
	topItems  TopItemsModel
	viewport  viewport.Model

	width  int
	height int

	showHelp      bool
	exporting     bool
	statusMsg     string
	statusIsError bool
}

// NewModel creates the dashboard over an already loaded dataset.
func NewModel(ds datasource.Dataset, opts Options) Model {
	r := opts.Renderer
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	theme := DefaultTheme(r)

	defaults := config.DefaultConfig().Export
	if opts.ExportDir == "" {
		opts.ExportDir = defaults.Dir
	}
	if len(opts.ExportFormats) == 0 {
		opts.ExportFormats = defaults.Formats
	}

	m := Model{
		opts:      opts,
		theme:     theme,
		keys:      defaultKeyMap(),
		summaries: NewSummaryPanelModel(theme, opts.TruncateAt),
		topItems:  NewTopItemsModel(theme, opts.TopN),
		viewport:  viewport.New(defaultWidth, defaultHeight-2),
		width:     defaultWidth,
		height:    defaultHeight,
	}
	m.setDataset(ds)
	return m
}

func (m Model) Init() tea.Cmd {
	if m.opts.Watcher != nil {
		return WatchFileCmd(m.opts.Watcher)
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)
		return m, nil

	case FileChangedMsg:
		debug.Log("ui: input files changed, reloading")
		m.reload("Files changed, reloaded")
		if m.opts.Watcher != nil {
			return m, WatchFileCmd(m.opts.Watcher)
		}
		return m, nil

	case ExportDoneMsg:
		m.exporting = false
		if msg.Err != nil {
			m.setStatus(fmt.Sprintf("Export failed: %v", msg.Err), true)
		} else {
			m.setStatus(fmt.Sprintf("Exported %d file(s) to %s", len(msg.Paths), msg.Dir), false)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.Reload):
		m.reload("Reloaded")
		return m, nil

	case key.Matches(msg, m.keys.Export):
		if m.exporting {
			return m, nil
		}
		if !m.ds.HasData() {
			m.setStatus("Nothing to export", true)
			return m, nil
		}
		m.exporting = true
		m.setStatus("Exporting to "+m.opts.ExportDir+"...", false)
		return m, ExportCmd(m.ds, m.opts.ExportDir, m.opts.ExportFormats, m.opts.TopN)
	}

	// Panel keys only apply while the data section is shown.
	if m.ds.HasData() {
		handled := true
		switch {
		case key.Matches(msg, m.keys.NextBtn):
			m.summaries.MoveFocus(1)
		case key.Matches(msg, m.keys.PrevBtn):
			m.summaries.MoveFocus(-1)
		case key.Matches(msg, m.keys.Press):
			m.summaries.ToggleFocused()
		case key.Matches(msg, m.keys.NextItem):
			m.topItems.MoveCursor(1)
		case key.Matches(msg, m.keys.PrevItem):
			m.topItems.MoveCursor(-1)
		case key.Matches(msg, m.keys.Copy):
			m.copySelected()
		default:
			handled = false
			for i, b := range m.keys.Toggle {
				if key.Matches(msg, b) {
					m.summaries.ToggleIndex(i)
					handled = true
					break
				}
			}
		}
		if handled {
			m.refreshContent()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) copySelected() {
	item, ok := m.topItems.Selected()
	if !ok {
		m.setStatus("No feedback item selected", true)
		return
	}
	if err := clipboard.WriteAll(item.UserProblem); err != nil {
		m.setStatus(fmt.Sprintf("Clipboard error: %v", err), true)
		return
	}
	m.setStatus("Copied feedback item to clipboard", false)
}

// reload re-reads both input files. Expansion state survives the reload.
func (m *Model) reload(status string) {
	ds := datasource.Load(m.ds.Paths)
	m.setDataset(ds)
	if ds.Err != nil {
		m.setStatus("Reload failed", true)
		return
	}
	m.setStatus(status, false)
}

func (m *Model) setDataset(ds datasource.Dataset) {
	m.ds = ds
	m.summaries.SetData(ds.Summaries)
	m.topItems.SetData(ds.Table)
	m.refreshContent()
}

func (m *Model) setStatus(msg string, isError bool) {
	m.statusMsg = msg
	m.statusIsError = isError
}

func (m *Model) setSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = m.bodyHeight()
	m.refreshContent()
}

// bodyHeight is the viewport height: everything but the title and footer.
func (m Model) bodyHeight() int {
	if h := m.height - 2; h > 0 {
		return h
	}
	return 1
}

func (m Model) isSplitView() bool {
	return m.width >= SplitViewThreshold
}

func (m *Model) refreshContent() {
	m.topItems.SetSize(m.width, !m.isSplitView())
	m.viewport.SetContent(m.Body())
}

// Dataset returns the snapshot currently shown.
func (m Model) Dataset() datasource.Dataset { return m.ds }

// Summaries returns the summary panel state.
func (m Model) Summaries() SummaryPanelModel { return m.summaries }

// TopItems returns the top feedback panel state.
func (m Model) TopItems() TopItemsModel { return m.topItems }

// Status returns the footer message and whether it is an error.
func (m Model) Status() (string, bool) { return m.statusMsg, m.statusIsError }

func (m Model) View() string {
	title := m.theme.Title.Render(model.DashboardTitle)
	return lipgloss.JoinVertical(lipgloss.Left, title, m.viewport.View(), m.renderFooter())
}

// Body renders the scrollable page content for the current width.
func (m Model) Body() string {
	switch {
	case m.ds.Err != nil:
		return m.renderError()
	case m.ds.ReportMissing || m.ds.Table == nil:
		return lipgloss.JoinVertical(lipgloss.Left,
			m.theme.WarningBox.Render(model.ReportMissingWarning(m.ds.Paths.Report)),
			"",
			m.theme.InfoBox.Render(model.RerunHint),
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderTopRow(),
		"",
		m.theme.MutedText.Render(strings.Repeat("─", max(m.width, 1))),
		"",
		m.theme.Title.Render(model.TopItemsHeading),
		"",
		m.topItems.View(),
	)
}

func (m Model) renderError() string {
	hint := "Fix the file and press r to reload."
	if m.opts.Watcher != nil {
		hint = "Fix the file and save it; the dashboard reloads automatically."
	}
	box := m.theme.ErrorBox
	if m.width > 2 {
		box = box.Width(m.width - 2)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		box.Render("Could not load dashboard data: "+m.ds.Err.Error()),
		"",
		m.theme.MutedText.Render(hint),
	)
}

func (m Model) renderTopRow() string {
	if !m.isSplitView() {
		m.summaries.SetSize(m.width)
		return lipgloss.JoinVertical(lipgloss.Left,
			m.summaries.View(),
			"",
			renderMetricsPanel(m.theme, m.ds.Counts, m.width),
			"",
			renderCategoryChart(m.theme, m.ds.Counts, m.width),
		)
	}

	widths := splitWidths(m.width, SpaceSM, 2, 1, 2)
	m.summaries.SetSize(widths[0])
	cols := []string{
		lipgloss.NewStyle().Width(widths[0]).Render(m.summaries.View()),
		lipgloss.NewStyle().Width(widths[1]).Render(renderMetricsPanel(m.theme, m.ds.Counts, widths[1])),
		lipgloss.NewStyle().Width(widths[2]).Render(renderCategoryChart(m.theme, m.ds.Counts, widths[2])),
	}
	gap := strings.Repeat(" ", SpaceSM)
	return lipgloss.JoinHorizontal(lipgloss.Top, cols[0], gap, cols[1], gap, cols[2])
}

func (m Model) renderFooter() string {
	if m.showHelp {
		return m.theme.MutedText.Render(truncate(m.keys.helpLine(), m.width))
	}
	if m.statusMsg != "" {
		style := m.theme.StatusText
		prefix := "✓ "
		if m.statusIsError {
			style = m.theme.StatusError
			prefix = "✗ "
		}
		return style.Render(truncate(prefix+m.statusMsg, m.width))
	}

	parts := []string{fmt.Sprintf("loaded %s", m.ds.LoadedAt.Format(time.Kitchen))}
	if m.ds.Table != nil {
		parts = append(parts, fmt.Sprintf("%d rows", m.ds.Table.Len()))
	}
	if m.opts.Watcher != nil {
		parts = append(parts, "watching")
	}
	parts = append(parts, "? help")
	return m.theme.MutedText.Render(truncate(strings.Join(parts, " • "), m.width))
}
