package model

import "fmt"

// Fixed dashboard copy, shared by the terminal view and the exporters.
const (
	DashboardTitle  = "Product Feedback Analysis Dashboard"
	ChartTitle      = "Comments by Category"
	ChartLegend     = "Categories"
	TopItemsHeading = "Top Feedback Items"
	RerunHint       = "Please run the main analysis notebook (`analyzer.ipynb`) first to generate both the report and summary files."
)

// ReportMissingWarning names the report file that could not be found.
func ReportMissingWarning(path string) string {
	return fmt.Sprintf("The report file '%s' was not found.", path)
}

// NoFeedbackNotice is shown in a top-items column with no matching rows.
func NoFeedbackNotice(category string) string {
	return fmt.Sprintf("No feedback found for '%s'.", category)
}

// TopItemsTitle is the heading of one top-items column.
func TopItemsTitle(category string) string {
	return "Top " + category
}

// ChartPalette is the red-to-blue diverging sequence used for chart slices.
var ChartPalette = []string{
	"#67001F", "#B2182B", "#D6604D", "#F4A582", "#FDDBC7",
	"#F7F7F7", "#D1E5F0", "#92C5DE", "#4393C3", "#2166AC", "#053061",
}

// PaletteColor returns the palette entry for the i-th chart slice.
func PaletteColor(i int) string {
	if i < 0 {
		i = -i
	}
	return ChartPalette[i%len(ChartPalette)]
}
