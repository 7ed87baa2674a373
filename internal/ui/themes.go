package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme represents a color palette for the TUI. Every color is adaptive: the
// light or dark variant is picked from lipgloss's dark-background flag, which
// ApplyDarkBackground sets from the session theme.
type Theme struct {
	Name string

	// Primary colors
	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Accent    lipgloss.AdaptiveColor

	// Semantic colors
	Success lipgloss.AdaptiveColor
	Warning lipgloss.AdaptiveColor
	Error   lipgloss.AdaptiveColor
	Info    lipgloss.AdaptiveColor

	// UI colors
	Border     lipgloss.AdaptiveColor
	Background lipgloss.AdaptiveColor
	Foreground lipgloss.AdaptiveColor
	Muted      lipgloss.AdaptiveColor
	Surface    lipgloss.AdaptiveColor
	Selected   lipgloss.AdaptiveColor
	Shimmer    lipgloss.AdaptiveColor
}

// buildTheme creates a theme from [light, dark] pairs
func buildTheme(name string, primary, secondary, accent, success, warning, errorColor, info, border, background, foreground, muted, surface, selected, shimmer [2]string) Theme {
	return Theme{
		Name:       name,
		Primary:    lipgloss.AdaptiveColor{Light: primary[0], Dark: primary[1]},
		Secondary:  lipgloss.AdaptiveColor{Light: secondary[0], Dark: secondary[1]},
		Accent:     lipgloss.AdaptiveColor{Light: accent[0], Dark: accent[1]},
		Success:    lipgloss.AdaptiveColor{Light: success[0], Dark: success[1]},
		Warning:    lipgloss.AdaptiveColor{Light: warning[0], Dark: warning[1]},
		Error:      lipgloss.AdaptiveColor{Light: errorColor[0], Dark: errorColor[1]},
		Info:       lipgloss.AdaptiveColor{Light: info[0], Dark: info[1]},
		Border:     lipgloss.AdaptiveColor{Light: border[0], Dark: border[1]},
		Background: lipgloss.AdaptiveColor{Light: background[0], Dark: background[1]},
		Foreground: lipgloss.AdaptiveColor{Light: foreground[0], Dark: foreground[1]},
		Muted:      lipgloss.AdaptiveColor{Light: muted[0], Dark: muted[1]},
		Surface:    lipgloss.AdaptiveColor{Light: surface[0], Dark: surface[1]},
		Selected:   lipgloss.AdaptiveColor{Light: selected[0], Dark: selected[1]},
		Shimmer:    lipgloss.AdaptiveColor{Light: shimmer[0], Dark: shimmer[1]},
	}
}

// Available themes
var (
	EthioTheme = buildTheme("ethio",
		[2]string{"#078930", "#34D399"}, [2]string{"#6B7280", "#9CA3AF"}, [2]string{"#B7950B", "#FCDD09"},
		[2]string{"#059669", "#10B981"}, [2]string{"#D97706", "#FBBF24"}, [2]string{"#DA121A", "#F87171"},
		[2]string{"#0891B2", "#22D3EE"}, [2]string{"#D1D5DB", "#374151"}, [2]string{"#FFFFFF", "#111827"},
		[2]string{"#111827", "#F9FAFB"}, [2]string{"#6B7280", "#9CA3AF"}, [2]string{"#F3F4F6", "#1F2937"},
		[2]string{"#DCFCE7", "#14532D"}, [2]string{"#E5E7EB", "#374151"})

	HighContrastTheme = buildTheme("high-contrast",
		[2]string{"#000000", "#FFFFFF"}, [2]string{"#666666", "#BBBBBB"}, [2]string{"#000080", "#FFFF00"},
		[2]string{"#006600", "#00FF00"}, [2]string{"#CC6600", "#FFAA00"}, [2]string{"#CC0000", "#FF4444"},
		[2]string{"#0066CC", "#4499FF"}, [2]string{"#000000", "#FFFFFF"}, [2]string{"#FFFFFF", "#000000"},
		[2]string{"#000000", "#FFFFFF"}, [2]string{"#666666", "#BBBBBB"}, [2]string{"#EEEEEE", "#222222"},
		[2]string{"#CCCCCC", "#333333"}, [2]string{"#DDDDDD", "#444444"})
)

var currentTheme = EthioTheme

// GetTheme returns the current active theme
func GetTheme() Theme {
	return currentTheme
}

// SetTheme sets the active theme
func SetTheme(theme *Theme) {
	currentTheme = *theme
}

// SetThemeByName sets the theme by name
func SetThemeByName(name string) bool {
	switch name {
	case "ethio", "default":
		SetTheme(&EthioTheme)
		return true
	case "high-contrast":
		SetTheme(&HighContrastTheme)
		return true
	default:
		return false
	}
}

// GetAvailableThemes returns list of available theme names
func GetAvailableThemes() []string {
	return []string{"ethio", "high-contrast"}
}

var colorDisabled = os.Getenv("NO_COLOR") != ""

// IsColorDisabled checks if colors should be disabled
func IsColorDisabled() bool {
	return colorDisabled
}

// ConfigureColor applies a color mode: "never" strips all styling,
// "always" forces true color, "auto" leaves detection to lipgloss.
func ConfigureColor(mode string, noColor bool) {
	switch {
	case noColor || mode == "never":
		colorDisabled = true
		lipgloss.SetColorProfile(termenv.Ascii)
	case mode == "always":
		colorDisabled = false
		lipgloss.SetColorProfile(termenv.TrueColor)
	}
}

// ApplyDarkBackground is the theme presenter: it flips which variant of every
// adaptive color is rendered.
func ApplyDarkBackground(isDark bool) {
	lipgloss.SetHasDarkBackground(isDark)
}

// ThemeHint returns the environment hint used when no theme is stored.
// "dark" and "light" are fixed answers; anything else asks the terminal.
func ThemeHint(mode string) func() bool {
	switch mode {
	case "dark":
		return func() bool { return true }
	case "light":
		return func() bool { return false }
	default:
		return lipgloss.HasDarkBackground
	}
}

// GetStyles builds the common styles from the current theme
func GetStyles() *Styles {
	theme := GetTheme()

	return &Styles{
		Theme: theme,

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			Padding(0, 1),

		Header: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Subheader: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		Body: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Price: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Success: lipgloss.NewStyle().
			Foreground(theme.Success).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(theme.Warning).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error).
			Bold(true),

		Accent: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),

		Selected: lipgloss.NewStyle().
			Background(theme.Selected).
			Foreground(theme.Primary).
			Bold(true),

		Tab: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 1),

		ActiveTab: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			Underline(true).
			Padding(0, 1),

		Button: lipgloss.NewStyle().
			Foreground(theme.Background).
			Background(theme.Primary).
			Bold(true).
			Padding(0, 2),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		Placeholder: lipgloss.NewStyle().
			Background(theme.Shimmer).
			Foreground(theme.Shimmer),

		Dialog: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(theme.Error).
			Padding(1, 3),

		TopBar: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Background(theme.Surface).
			Bold(true).
			Padding(0, 1),
	}
}

// Styles contains all the styled components
type Styles struct {
	Theme Theme

	Title     lipgloss.Style
	Header    lipgloss.Style
	Subheader lipgloss.Style
	Body      lipgloss.Style
	Muted     lipgloss.Style
	Price     lipgloss.Style

	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Accent  lipgloss.Style

	Selected  lipgloss.Style
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style
	Button    lipgloss.Style

	Card        lipgloss.Style
	Placeholder lipgloss.Style
	Dialog      lipgloss.Style
	TopBar      lipgloss.Style
}
