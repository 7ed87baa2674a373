package components

import "github.com/charmbracelet/lipgloss"

// Colors are declared here rather than taken from the ui package, which
// imports components.
var (
	primaryColor   = lipgloss.AdaptiveColor{Light: "#078930", Dark: "#34D399"}
	accentColor    = lipgloss.AdaptiveColor{Light: "#B7950B", Dark: "#FCDD09"}
	errorColor     = lipgloss.AdaptiveColor{Light: "#DA121A", Dark: "#F87171"}
	warningColor   = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}
	infoColor      = lipgloss.AdaptiveColor{Light: "#0891B2", Dark: "#22D3EE"}
	secondaryColor = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	selectedColor  = lipgloss.AdaptiveColor{Light: "#DCFCE7", Dark: "#14532D"}
	borderColor    = lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#374151"}
)

// statusColor maps a status name to its foreground color
func statusColor(status string) lipgloss.AdaptiveColor {
	switch status {
	case "success":
		return primaryColor
	case "warning":
		return warningColor
	case "error":
		return errorColor
	case "accent":
		return accentColor
	case "info":
		return infoColor
	default:
		return secondaryColor
	}
}
