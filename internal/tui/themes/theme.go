// Package themes holds the color schemes for the asset TUI.
package themes

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the visual style for the TUI.
type Theme struct {
	Selected      lipgloss.Style
	Inactive      lipgloss.Style
	StatusInfo    lipgloss.Style
	StatusError   lipgloss.Style
	StatusWarning lipgloss.Style
	StatusSuccess lipgloss.Style
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Normal        lipgloss.Style
	Bold          lipgloss.Style
	RoundedBox    lipgloss.Style
	Focused       lipgloss.Style
	Secondary     lipgloss.Color
	Primary       lipgloss.Color
	Muted         lipgloss.Color
	Border        lipgloss.Color
	Foreground    lipgloss.Color
	Error         lipgloss.Color
	Warning       lipgloss.Color
	Success       lipgloss.Color
}

// palette is the handful of colors a theme is derived from.
type palette struct {
	primary, secondary, success, warning, errColor, info lipgloss.Color
	foreground, subtle, border, muted, selectedText      lipgloss.Color
}

func newTheme(p palette) Theme {
	return Theme{
		Primary:    p.primary,
		Secondary:  p.secondary,
		Success:    p.success,
		Warning:    p.warning,
		Error:      p.errColor,
		Foreground: p.foreground,
		Border:     p.border,
		Muted:      p.muted,

		// Text styles
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.primary),
		Subtitle: lipgloss.NewStyle().
			Foreground(p.subtle),
		Normal: lipgloss.NewStyle().
			Foreground(p.foreground),
		Bold: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.foreground),
		Inactive: lipgloss.NewStyle().
			Foreground(p.muted).
			Strikethrough(true),
		Selected: lipgloss.NewStyle().
			Background(p.primary).
			Foreground(p.selectedText).
			Bold(true),
		Focused: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true),

		// Component styles
		RoundedBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.border).
			Padding(0, 1),

		// Status styles
		StatusSuccess: lipgloss.NewStyle().
			Foreground(p.success).
			Bold(true),
		StatusWarning: lipgloss.NewStyle().
			Foreground(p.warning).
			Bold(true),
		StatusError: lipgloss.NewStyle().
			Foreground(p.errColor).
			Bold(true),
		StatusInfo: lipgloss.NewStyle().
			Foreground(p.info).
			Bold(true),
	}
}

// Default is the default theme.
var Default = newTheme(palette{
	primary:      lipgloss.Color("#10b981"),
	secondary:    lipgloss.Color("#6ee7b7"),
	success:      lipgloss.Color("#10b981"),
	warning:      lipgloss.Color("#f59e0b"),
	errColor:     lipgloss.Color("#ef4444"),
	info:         lipgloss.Color("#3b82f6"),
	foreground:   lipgloss.Color("#fafafa"),
	subtle:       lipgloss.Color("#a3a3a3"),
	border:       lipgloss.Color("#404040"),
	muted:        lipgloss.Color("#737373"),
	selectedText: lipgloss.Color("#0a0a0a"),
})

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = newTheme(palette{
	primary:      lipgloss.Color("#cba6f7"),
	secondary:    lipgloss.Color("#f5c2e7"),
	success:      lipgloss.Color("#a6e3a1"),
	warning:      lipgloss.Color("#f9e2af"),
	errColor:     lipgloss.Color("#f38ba8"),
	info:         lipgloss.Color("#89dceb"),
	foreground:   lipgloss.Color("#cdd6f4"),
	subtle:       lipgloss.Color("#a6adc8"),
	border:       lipgloss.Color("#45475a"),
	muted:        lipgloss.Color("#6c7086"),
	selectedText: lipgloss.Color("#1e1e2e"),
})

// ByName returns the named theme, falling back to Default.
func ByName(name string) Theme {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "mocha", "catppuccin", "catppuccin-mocha":
		return CatppuccinMocha
	default:
		return Default
	}
}
