package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme holds the pre-computed styles used by every dashboard panel.
type Theme struct {
	Renderer *lipgloss.Renderer

	// Colors
	Primary lipgloss.AdaptiveColor
	Muted   lipgloss.AdaptiveColor
	Border  lipgloss.AdaptiveColor

	// Styles
	Base          lipgloss.Style
	Title         lipgloss.Style // Page title
	Subheader     lipgloss.Style // Panel titles
	Panel         lipgloss.Style // Metric tiles and summary blocks
	Button        lipgloss.Style
	ButtonFocused lipgloss.Style
	MetricLabel   lipgloss.Style
	MetricValue   lipgloss.Style
	InfoBox       lipgloss.Style // Top feedback items, remediation hints
	WarningBox    lipgloss.Style
	ErrorBox      lipgloss.Style
	Selected      lipgloss.Style
	MutedText     lipgloss.Style
	StatusText    lipgloss.Style
	StatusError   lipgloss.Style
}

// DefaultTheme returns the dark-dashboard theme (adaptive for light terminals).
func DefaultTheme(r *lipgloss.Renderer) Theme {
	t := Theme{
		Renderer: r,
		Primary:  ColorPrimary,
		Muted:    ColorMuted,
		Border:   ColorBgHighlight,
	}

	t.Base = r.NewStyle().Foreground(ColorText)

	t.Title = r.NewStyle().
		Foreground(ColorText).
		Bold(true).
		Padding(0, 1)

	t.Subheader = r.NewStyle().
		Foreground(ColorText).
		Bold(true).
		Underline(true)

	t.Panel = r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1)

	t.Button = r.NewStyle().
		Foreground(ColorText).
		Background(ColorBgSubtle).
		Padding(0, 1)

	t.ButtonFocused = r.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#282A36"}).
		Background(t.Primary).
		Bold(true).
		Padding(0, 1)

	t.MetricLabel = r.NewStyle().Foreground(ColorMuted)
	t.MetricValue = r.NewStyle().Foreground(ColorText).Bold(true)

	t.InfoBox = r.NewStyle().
		Foreground(ColorInfo).
		Background(ColorInfoBg).
		Padding(0, 1)

	t.WarningBox = r.NewStyle().
		Foreground(ColorWarning).
		Background(ColorWarnBg).
		Bold(true).
		Padding(0, 1)

	t.ErrorBox = r.NewStyle().
		Foreground(ColorDanger).
		Background(ColorDangerBg).
		Bold(true).
		Padding(0, 1)

	t.Selected = r.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(t.Primary)

	t.MutedText = r.NewStyle().Foreground(ColorMuted)
	t.StatusText = r.NewStyle().Foreground(ColorSuccess)
	t.StatusError = r.NewStyle().Foreground(ColorDanger).Bold(true)

	return t
}
