package ui

import (
	"github.com/vanderheijden86/feedlens/pkg/model"

	"github.com/charmbracelet/lipgloss"
)

// ══════════════════════════════════════════════════════════════════════════════
// DESIGN TOKENS - Consistent spacing, colors, and visual language
// ══════════════════════════════════════════════════════════════════════════════

// Spacing constants for consistent layout (in characters)
const (
	SpaceXS = 1
	SpaceSM = 2
	SpaceMD = 3
)

// ══════════════════════════════════════════════════════════════════════════════
// COLOR PALETTE - Adaptive colors for light and dark terminals
// ══════════════════════════════════════════════════════════════════════════════

var (
	ColorBgSubtle    = lipgloss.AdaptiveColor{Light: "#E8E8E8", Dark: "#262730"}
	ColorBgHighlight = lipgloss.AdaptiveColor{Light: "#D0D0D0", Dark: "#44475A"}
	ColorText        = lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#FFFFFF"}
	ColorMuted       = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#6272A4"}

	ColorPrimary  = lipgloss.AdaptiveColor{Light: "#6B47D9", Dark: "#BD93F9"}
	ColorInfo     = lipgloss.AdaptiveColor{Light: "#006080", Dark: "#8BE9FD"}
	ColorInfoBg   = lipgloss.AdaptiveColor{Light: "#D1ECF1", Dark: "#1A3344"}
	ColorWarning  = lipgloss.AdaptiveColor{Light: "#B06800", Dark: "#FFB86C"}
	ColorWarnBg   = lipgloss.AdaptiveColor{Light: "#FFE8CC", Dark: "#3D2A1A"}
	ColorDanger   = lipgloss.AdaptiveColor{Light: "#CC0000", Dark: "#FF5555"}
	ColorDangerBg = lipgloss.AdaptiveColor{Light: "#F8D7DA", Dark: "#3D1A1A"}
	ColorSuccess  = lipgloss.AdaptiveColor{Light: "#007700", Dark: "#50FA7B"}
)

// SliceColor returns the palette color for the i-th chart slice.
func SliceColor(i int) lipgloss.Color {
	return lipgloss.Color(model.PaletteColor(i))
}
