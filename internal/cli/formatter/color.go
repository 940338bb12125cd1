package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"phaseboard/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader     = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold       = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
	StyleYellowBold = lipgloss.NewStyle().Foreground(ColorYellow).Bold(true)
)

// PriorityStyle returns the style for a task priority ordinal (1 is most
// urgent).
func PriorityStyle(p int) lipgloss.Style {
	switch {
	case p <= 1:
		return StyleRed
	case p == 2:
		return StyleYellow
	case p == 3:
		return StyleFg
	default:
		return StyleDim
	}
}

// PriorityBadge renders a compact "P1".."P5" marker.
func PriorityBadge(p int) string {
	if !domain.ValidPriority(p) {
		return ""
	}
	return PriorityStyle(p).Render(fmt.Sprintf("P%d", p))
}

// AccessBadge renders a marker for private task lists; public lists show
// nothing.
func AccessBadge(a domain.AccessLevel) string {
	if a == domain.AccessPrivate {
		return StylePurple.Render("🔒")
	}
	return ""
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
