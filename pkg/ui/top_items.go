package ui

import (
	"fmt"
	"strings"

	"github.com/vanderheijden86/feedlens/pkg/analysis"
	"github.com/vanderheijden86/feedlens/pkg/model"

	"github.com/charmbracelet/lipgloss"
)

// DefaultTopN is the number of excerpts per top-items column.
const DefaultTopN = 3

// topColumn is one category column of the top-items panel.
type topColumn struct {
	Category string
	Items    []model.FeedbackRow
}

// TopItemsModel renders the first few feedback excerpts per category in
// side-by-side columns and tracks a selected excerpt for copying.
type TopItemsModel struct {
	categories []string
	columns    []topColumn
	n          int
	cursor     int // index into the flattened item list
	width      int
	stacked    bool
	theme      Theme
}

// NewTopItemsModel creates a panel over the fixed top-item categories.
func NewTopItemsModel(theme Theme, n int) TopItemsModel {
	if n <= 0 {
		n = DefaultTopN
	}
	return TopItemsModel{categories: model.TopItemCategories, n: n, theme: theme}
}

// SetSize sets the total width; stacked renders columns top to bottom.
func (m *TopItemsModel) SetSize(width int, stacked bool) {
	m.width = width
	m.stacked = stacked
}

// SetData recomputes the columns from table.
func (m *TopItemsModel) SetData(table *model.FeedbackTable) {
	m.columns = make([]topColumn, len(m.categories))
	for i, c := range m.categories {
		m.columns[i] = topColumn{Category: c, Items: analysis.TopN(table, c, m.n)}
	}
	if total := m.itemCount(); m.cursor >= total {
		m.cursor = total - 1
		if m.cursor < 0 {
			m.cursor = 0
		}
	}
}

func (m TopItemsModel) itemCount() int {
	n := 0
	for _, col := range m.columns {
		n += len(col.Items)
	}
	return n
}

// MoveCursor moves the selection by delta across all columns, wrapping around.
func (m *TopItemsModel) MoveCursor(delta int) {
	total := m.itemCount()
	if total == 0 {
		return
	}
	m.cursor = ((m.cursor+delta)%total + total) % total
}

// Selected returns the selected excerpt.
func (m TopItemsModel) Selected() (model.FeedbackRow, bool) {
	idx := m.cursor
	for _, col := range m.columns {
		if idx < len(col.Items) {
			return col.Items[idx], true
		}
		idx -= len(col.Items)
	}
	return model.FeedbackRow{}, false
}

// ColumnLines returns the plain text lines of column i: the title followed by
// numbered excerpts, or the empty notice.
func (m TopItemsModel) ColumnLines(i int) []string {
	col := m.columns[i]
	lines := []string{model.TopItemsTitle(col.Category)}
	if len(col.Items) == 0 {
		return append(lines, model.NoFeedbackNotice(col.Category))
	}
	for k, item := range col.Items {
		lines = append(lines, fmt.Sprintf("%d. %s", k+1, item.UserProblem))
	}
	return lines
}

func (m TopItemsModel) View() string {
	if len(m.columns) == 0 {
		return ""
	}

	var widths []int
	if m.stacked || m.width <= 0 {
		widths = make([]int, len(m.columns))
		for i := range widths {
			widths[i] = m.width
		}
	} else {
		ratios := make([]int, len(m.columns))
		for i := range ratios {
			ratios[i] = 1
		}
		widths = splitWidths(m.width, SpaceSM, ratios...)
	}

	offset := 0
	rendered := make([]string, len(m.columns))
	for i, col := range m.columns {
		rendered[i] = m.renderColumn(i, widths[i], offset)
		offset += len(col.Items)
	}

	if m.stacked {
		return strings.Join(rendered, "\n\n")
	}
	gap := strings.Repeat(" ", SpaceSM)
	parts := make([]string, 0, len(rendered)*2)
	for i, r := range rendered {
		if i > 0 {
			parts = append(parts, gap)
		}
		parts = append(parts, r)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m TopItemsModel) renderColumn(i, width, offset int) string {
	lines := m.ColumnLines(i)
	col := m.columns[i]

	box := m.theme.InfoBox
	text := m.theme.Base
	if width > 0 {
		box = box.Width(width)
		text = text.Width(width)
	}

	parts := []string{m.theme.Subheader.Render(lines[0])}
	if len(col.Items) == 0 {
		parts = append(parts, text.Render(lines[1]))
	} else {
		for k, line := range lines[1:] {
			style := box
			if offset+k == m.cursor {
				style = style.Inherit(m.theme.Selected)
				if width > 1 {
					style = style.Width(width - 1)
				}
			}
			parts = append(parts, style.Render(line))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
