package ui

import (
	"strconv"

	"github.com/vanderheijden86/feedlens/pkg/analysis"
	"github.com/vanderheijden86/feedlens/pkg/model"

	"github.com/charmbracelet/lipgloss"
)

// MetricValue is a rendered counter.
type MetricValue struct {
	Label string
	Value int
}

// MetricValues reads the dashboard counters from counts; absent categories are 0.
func MetricValues(counts analysis.Counts) []MetricValue {
	out := make([]MetricValue, len(model.Metrics))
	for i, m := range model.Metrics {
		out[i] = MetricValue{Label: m.Label, Value: counts.Get(m.Category)}
	}
	return out
}

// renderMetricsPanel stacks one tile per counter.
func renderMetricsPanel(theme Theme, counts analysis.Counts, width int) string {
	tile := theme.Panel
	if width > 2 {
		// Border takes one cell on each side.
		tile = tile.Width(width - 2)
	}

	tiles := make([]string, 0, len(model.Metrics))
	for _, mv := range MetricValues(counts) {
		tiles = append(tiles, tile.Render(lipgloss.JoinVertical(lipgloss.Left,
			theme.MetricLabel.Render(mv.Label),
			theme.MetricValue.Render(strconv.Itoa(mv.Value)),
		)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, tiles...)
}
