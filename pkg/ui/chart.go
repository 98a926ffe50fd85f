package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/vanderheijden86/feedlens/pkg/analysis"
	"github.com/vanderheijden86/feedlens/pkg/model"

	"github.com/charmbracelet/lipgloss"
)

const (
	chartBarRune   = "█"
	chartTrackRune = "░"
	chartMinBar    = 8
)

// ChartSlice is one rendered category of the breakdown chart.
type ChartSlice struct {
	Category string
	Count    int
	Percent  float64
	Cells    int // filled cells of the proportional bar
}

// BuildChart lays out one proportional bar per category in count order.
// barWidth is the width of a full (100%) bar.
func BuildChart(counts analysis.Counts, barWidth int) []ChartSlice {
	shares := analysis.Shares(counts)
	if len(shares) == 0 {
		return nil
	}
	if barWidth < 1 {
		barWidth = 1
	}
	out := make([]ChartSlice, len(shares))
	for i, s := range shares {
		cells := int(math.Round(s.Fraction * float64(barWidth)))
		if cells == 0 && s.Count > 0 {
			cells = 1
		}
		out[i] = ChartSlice{
			Category: s.Category,
			Count:    s.Count,
			Percent:  s.Fraction * 100,
			Cells:    cells,
		}
	}
	return out
}

// renderCategoryChart draws the category breakdown with a legend.
// It returns "" when there is nothing to chart.
func renderCategoryChart(theme Theme, counts analysis.Counts, width int) string {
	if counts.Total() == 0 {
		return lipgloss.JoinVertical(lipgloss.Left,
			theme.Subheader.Render(model.ChartTitle),
			theme.MutedText.Render("No feedback rows to chart."),
		)
	}

	labelWidth := 0
	for _, cc := range counts.Ordered() {
		if l := len([]rune(cc.Category)); l > labelWidth {
			labelWidth = l
		}
	}
	// label, space, bar, space, "count (pct%)"
	const statsWidth = 14
	if limit := width / 2; width > 0 && labelWidth > limit {
		labelWidth = limit
	}
	barWidth := width - labelWidth - statsWidth - 2
	if barWidth < chartMinBar {
		barWidth = chartMinBar
	}

	lines := []string{
		theme.Subheader.Render(model.ChartTitle),
		"",
	}
	slices := BuildChart(counts, barWidth)
	for i, s := range slices {
		sw := theme.Renderer.NewStyle().Foreground(SliceColor(i))
		bar := sw.Render(strings.Repeat(chartBarRune, s.Cells)) +
			theme.MutedText.Render(strings.Repeat(chartTrackRune, barWidth-s.Cells))
		lines = append(lines, fmt.Sprintf("%s %s %d (%.1f%%)",
			padRight(truncate(s.Category, labelWidth), labelWidth), bar, s.Count, s.Percent))
	}

	lines = append(lines, "", theme.MetricLabel.Render(model.ChartLegend))
	for i, s := range slices {
		sw := theme.Renderer.NewStyle().Foreground(SliceColor(i))
		lines = append(lines, fmt.Sprintf("%s %s", sw.Render("●"), s.Category))
	}
	return strings.Join(lines, "\n")
}
