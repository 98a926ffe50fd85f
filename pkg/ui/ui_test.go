package ui

import (
	"io"
	"testing"

	"github.com/vanderheijden86/feedlens/internal/datasource"
	"github.com/vanderheijden86/feedlens/pkg/model"
	"github.com/vanderheijden86/feedlens/pkg/testutil"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// plainTheme renders without color so views can be searched as text.
func plainTheme() Theme {
	return DefaultTheme(lipgloss.NewRenderer(io.Discard))
}

// newTestModel loads rows and summaries from a temp dir into a wide dashboard.
func newTestModel(t *testing.T, rows []model.FeedbackRow, summaries map[string]string) (Model, datasource.Paths) {
	t.Helper()
	dir := t.TempDir()
	paths := datasource.Paths{
		Report:    testutil.WriteReport(t, dir, rows),
		Summaries: testutil.WriteSummaries(t, dir, summaries),
	}
	return sized(NewModel(datasource.Load(paths), Options{Renderer: lipgloss.NewRenderer(io.Discard)}), 200, 60), paths
}

func sized(m Model, w, h int) Model {
	updated, _ := m.Update(tea.WindowSizeMsg{Width: w, Height: h})
	return updated.(Model)
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	for _, k := range keys {
		updated, _ := m.Update(k)
		m = updated.(Model)
	}
	return m
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}
