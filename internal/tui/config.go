package tui

import (
	"io"

	"github.com/Veraticus/asset-ledger/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Input     io.Reader
	Output    io.Writer
	Theme     themes.Theme
	Width     int
	Height    int
	ShowStats bool
	AltScreen bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:     themes.Default,
		Width:     100,
		Height:    30,
		ShowStats: true,
		AltScreen: true,
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithStats toggles the stats panel.
func WithStats(show bool) Option {
	return func(c *Config) {
		c.ShowStats = show
	}
}

// WithInput reads keys from r instead of the terminal.
func WithInput(r io.Reader) Option {
	return func(c *Config) {
		c.Input = r
	}
}

// WithOutput renders to w instead of stdout.
func WithOutput(w io.Writer) Option {
	return func(c *Config) {
		c.Output = w
	}
}

// WithAltScreen controls whether the UI takes over the full screen.
func WithAltScreen(enabled bool) Option {
	return func(c *Config) {
		c.AltScreen = enabled
	}
}
