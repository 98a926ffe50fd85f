package ui

import (
	"strings"

	"github.com/vanderheijden86/feedlens/pkg/model"

	"github.com/charmbracelet/lipgloss"
)

// Button labels for the summary toggles.
const (
	ReadMoreLabel = "Read More"
	ReadLessLabel = "Read Less"
)

// DefaultTruncateAt is the collapsed summary length in characters.
const DefaultTruncateAt = 150

// SummaryPanelModel renders the AI summary blocks with read-more toggles.
type SummaryPanelModel struct {
	groups     []model.SummaryGroup
	store      model.SummaryStore
	expanded   Expansion
	focus      int
	truncateAt int
	width      int
	theme      Theme
}

// NewSummaryPanelModel creates a panel over the fixed summary groups.
func NewSummaryPanelModel(theme Theme, truncateAt int) SummaryPanelModel {
	if truncateAt <= 0 {
		truncateAt = DefaultTruncateAt
	}
	return SummaryPanelModel{
		groups:     model.SummaryGroups,
		store:      model.SummaryStore{},
		expanded:   Expansion{},
		truncateAt: truncateAt,
		theme:      theme,
	}
}

func (m *SummaryPanelModel) SetSize(width int) {
	m.width = width
}

// SetData replaces the summary text; expansion state is kept.
func (m *SummaryPanelModel) SetData(store model.SummaryStore) {
	if store == nil {
		store = model.SummaryStore{}
	}
	m.store = store
}

// Toggle flips the expansion state of group key.
func (m *SummaryPanelModel) Toggle(key string) {
	m.expanded.Toggle(key)
}

// ToggleIndex flips the i-th group and focuses its button.
func (m *SummaryPanelModel) ToggleIndex(i int) bool {
	if i < 0 || i >= len(m.groups) {
		return false
	}
	m.focus = i
	m.Toggle(m.groups[i].Key)
	return true
}

// ToggleFocused flips the group whose button has focus.
func (m *SummaryPanelModel) ToggleFocused() {
	m.ToggleIndex(m.focus)
}

// MoveFocus moves button focus by delta, wrapping around.
func (m *SummaryPanelModel) MoveFocus(delta int) {
	n := len(m.groups)
	if n == 0 {
		return
	}
	m.focus = ((m.focus+delta)%n + n) % n
}

// Focus returns the index of the focused button.
func (m SummaryPanelModel) Focus() int {
	return m.focus
}

// Expanded reports whether group key is expanded.
func (m SummaryPanelModel) Expanded(key string) bool {
	return m.expanded.Expanded(key)
}

// Body returns the text shown for group key in its current state.
func (m SummaryPanelModel) Body(key string) string {
	text := m.store.Text(key)
	if m.expanded.Expanded(key) {
		return text
	}
	return collapseText(text, m.truncateAt)
}

// ButtonLabel returns the toggle label for group key.
func (m SummaryPanelModel) ButtonLabel(key string) string {
	if m.expanded.Expanded(key) {
		return ReadLessLabel
	}
	return ReadMoreLabel
}

func (m SummaryPanelModel) View() string {
	textStyle := m.theme.Base
	if m.width > 0 {
		textStyle = textStyle.Width(m.width)
	}

	blocks := make([]string, 0, len(m.groups))
	for i, g := range m.groups {
		btnStyle := m.theme.Button
		if i == m.focus {
			btnStyle = m.theme.ButtonFocused
		}
		block := lipgloss.JoinVertical(lipgloss.Left,
			m.theme.Subheader.Render(g.Title),
			textStyle.Render(m.Body(g.Key)),
			btnStyle.Render(m.ButtonLabel(g.Key)),
		)
		blocks = append(blocks, block)
	}
	return strings.Join(blocks, "\n\n")
}
