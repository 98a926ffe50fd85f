package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Ellipsis follows a collapsed summary.
const Ellipsis = "..."

// collapseText returns the first limit characters of text followed by an
// ellipsis. The ellipsis is appended even when nothing was cut.
func collapseText(text string, limit int) string {
	runes := []rune(text)
	if limit >= 0 && len(runes) > limit {
		runes = runes[:limit]
	}
	return string(runes) + Ellipsis
}

// truncateRunesHelper truncates a string to max visual width (cells), adding suffix if needed.
// Uses go-runewidth to handle wide characters correctly.
func truncateRunesHelper(s string, maxWidth int, suffix string) string {
	if maxWidth <= 0 {
		return ""
	}

	width := runewidth.StringWidth(s)
	if width <= maxWidth {
		return s
	}

	suffixWidth := runewidth.StringWidth(suffix)
	if suffixWidth > maxWidth {
		return runewidth.Truncate(suffix, maxWidth, "")
	}

	targetWidth := maxWidth - suffixWidth
	return runewidth.Truncate(s, targetWidth, "") + suffix
}

// truncate truncates string s to maxWidth cells
func truncate(s string, maxWidth int) string {
	return truncateRunesHelper(s, maxWidth, "…")
}

// padRight pads string s with spaces on the right to width cells
func padRight(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// splitWidths divides total into parts proportional to ratios, leaving gap
// cells between parts. Every part is at least 1 cell wide.
func splitWidths(total, gap int, ratios ...int) []int {
	if len(ratios) == 0 {
		return nil
	}
	sum := 0
	for _, r := range ratios {
		sum += r
	}
	avail := total - gap*(len(ratios)-1)
	out := make([]int, len(ratios))
	used := 0
	for i, r := range ratios {
		if i == len(ratios)-1 {
			out[i] = avail - used
		} else {
			out[i] = avail * r / sum
		}
		if out[i] < 1 {
			out[i] = 1
		}
		used += out[i]
	}
	return out
}
