// Package export writes the dashboard content to files: a Markdown report,
// a chart image and a SQLite database.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/vanderheijden86/feedlens/internal/datasource"
	"github.com/vanderheijden86/feedlens/pkg/analysis"
	"github.com/vanderheijden86/feedlens/pkg/model"
)

// DefaultTopN is the number of excerpts per category in exported reports.
const DefaultTopN = 3

// Options controls report rendering.
type Options struct {
	TopN        int
	GeneratedAt time.Time // Zero omits the timestamp line
}

func (o Options) topN() int {
	if o.TopN <= 0 {
		return DefaultTopN
	}
	return o.TopN
}

// RenderMarkdown renders the dashboard as a Markdown document. Summaries are
// always written in full. A load error or missing report replaces the data
// section the same way the terminal view does.
func RenderMarkdown(ds datasource.Dataset, opts Options) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# %s\n\n", model.DashboardTitle))
	if !opts.GeneratedAt.IsZero() {
		sb.WriteString(fmt.Sprintf("*Generated: %s*\n\n", opts.GeneratedAt.Format(time.RFC1123)))
	}

	switch {
	case ds.Err != nil:
		sb.WriteString(fmt.Sprintf("> **Error:** %s\n", ds.Err))
		return sb.String()
	case ds.ReportMissing || ds.Table == nil:
		sb.WriteString(fmt.Sprintf("> **Warning:** %s\n>\n", model.ReportMissingWarning(ds.Paths.Report)))
		sb.WriteString(fmt.Sprintf("> %s\n", model.RerunHint))
		return sb.String()
	}

	writeSummaries(&sb, ds.Summaries)
	writeMetrics(&sb, ds.Counts)
	writeBreakdown(&sb, ds.Counts)

	sb.WriteString("---\n\n")
	sb.WriteString(fmt.Sprintf("## %s\n\n", model.TopItemsHeading))
	for _, cat := range model.TopItemCategories {
		sb.WriteString(fmt.Sprintf("### %s\n\n", model.TopItemsTitle(cat)))
		items := analysis.TopN(ds.Table, cat, opts.topN())
		if len(items) == 0 {
			sb.WriteString(model.NoFeedbackNotice(cat) + "\n\n")
			continue
		}
		for i, item := range items {
			sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, oneLine(item.UserProblem)))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func writeSummaries(sb *strings.Builder, store model.SummaryStore) {
	for _, g := range model.SummaryGroups {
		sb.WriteString(fmt.Sprintf("## %s\n\n", g.Title))
		sb.WriteString(store.Text(g.Key))
		sb.WriteString("\n\n")
	}
}

func writeMetrics(sb *strings.Builder, counts analysis.Counts) {
	sb.WriteString("## Key Metrics\n\n")
	sb.WriteString("| Metric | Count |\n|--------|-------|\n")
	for _, m := range model.Metrics {
		sb.WriteString(fmt.Sprintf("| %s | %d |\n", m.Label, counts.Get(m.Category)))
	}
	sb.WriteString("\n")
}

func writeBreakdown(sb *strings.Builder, counts analysis.Counts) {
	sb.WriteString(fmt.Sprintf("## %s\n\n", model.ChartTitle))
	shares := analysis.Shares(counts)
	if len(shares) == 0 {
		sb.WriteString("No feedback rows to chart.\n\n")
		return
	}
	sb.WriteString(fmt.Sprintf("| %s | Count | Share |\n|------------|-------|-------|\n", model.ChartLegend))
	for _, s := range shares {
		sb.WriteString(fmt.Sprintf("| %s | %d | %.1f%% |\n", escapeCell(s.Category), s.Count, s.Fraction*100))
	}
	sb.WriteString("\n")
}

// oneLine keeps a multi-line excerpt inside its list item.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func escapeCell(s string) string {
	return strings.ReplaceAll(oneLine(s), "|", `\|`)
}
