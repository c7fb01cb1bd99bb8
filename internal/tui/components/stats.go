package components

import (
	"fmt"
	"strings"

	"github.com/Veraticus/asset-ledger/internal/cli"
	"github.com/Veraticus/asset-ledger/internal/query"
	"github.com/Veraticus/asset-ledger/internal/tui/themes"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// StatsPanelModel displays portfolio statistics.
type StatsPanelModel struct {
	theme       themes.Theme
	stats       query.Stats
	progressBar progress.Model
	width       int
	height      int
	compact     bool
}

// NewStatsPanelModel creates a new stats panel.
func NewStatsPanelModel(theme themes.Theme) StatsPanelModel {
	prog := progress.New(progress.WithDefaultGradient())
	prog.ShowPercentage = false
	prog.Width = 20

	return StatsPanelModel{
		progressBar: prog,
		theme:       theme,
	}
}

// SetStats replaces the displayed statistics.
func (m *StatsPanelModel) SetStats(stats query.Stats) {
	m.stats = stats
}

// Stats returns the displayed statistics.
func (m StatsPanelModel) Stats() query.Stats {
	return m.stats
}

// Update handles messages.
func (m StatsPanelModel) Update(msg tea.Msg) (StatsPanelModel, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.Resize(msg.Width, msg.Height)
	}
	return m, nil
}

// View renders the stats panel.
func (m StatsPanelModel) View() string {
	if m.compact {
		return m.renderCompact()
	}
	return m.renderFull()
}

// renderFull renders the full stats view.
func (m StatsPanelModel) renderFull() string {
	sections := []string{
		m.renderCapital(),
		m.renderCounts(),
	}

	if len(m.stats.ByCategory) > 0 {
		sections = append(sections, m.renderCategoryDistribution())
	}

	// Return raw content - parent will handle borders
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderCompact renders a one-line stats view.
func (m StatsPanelModel) renderCompact() string {
	return m.theme.Normal.Render(fmt.Sprintf(
		"%s %s | Total: %d | Active: %d | Inactive: %d",
		cli.CapitalIcon,
		cli.FormatAmount(m.stats.TotalCapital),
		m.stats.Total,
		m.stats.Active,
		m.stats.Inactive,
	))
}

func (m StatsPanelModel) renderCapital() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.theme.Subtitle.Render(cli.CapitalIcon+" Total capital"),
		m.theme.Bold.Render(cli.FormatAmount(m.stats.TotalCapital)),
		"",
	)
}

// renderCounts shows totals and the active share as a bar.
func (m StatsPanelModel) renderCounts() string {
	share := 0.0
	if m.stats.Total > 0 {
		share = float64(m.stats.Active) / float64(m.stats.Total)
	}

	lines := []string{
		fmt.Sprintf("%-10s %d", "Total:", m.stats.Total),
		fmt.Sprintf("%-10s %s", "Active:", m.theme.StatusSuccess.Render(fmt.Sprintf("%d", m.stats.Active))),
		fmt.Sprintf("%-10s %s", "Inactive:", m.theme.Subtitle.Render(fmt.Sprintf("%d", m.stats.Inactive))),
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.theme.Subtitle.Render("Assets"),
		m.theme.Normal.Render(strings.Join(lines, "\n")),
		m.progressBar.ViewAs(share),
		"",
	)
}

// renderCategoryDistribution renders one bar per category, largest first.
func (m StatsPanelModel) renderCategoryDistribution() string {
	counts := m.stats.SortedCategories()
	maxCount := counts[0].Count

	lines := make([]string, 0, len(counts))
	for _, cc := range counts {
		barLen := max(cc.Count*12/maxCount, 1)
		line := fmt.Sprintf("%s %-8s %s %d",
			cli.CategoryIcon(cc.Category),
			truncate(string(cc.Category), 8),
			lipgloss.NewStyle().Foreground(m.theme.Primary).Render(strings.Repeat("█", barLen)),
			cc.Count,
		)
		lines = append(lines, line)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.theme.Subtitle.Render("By category"),
		m.theme.Normal.Render(strings.Join(lines, "\n")),
	)
}

// SetCompact sets compact mode.
func (m *StatsPanelModel) SetCompact(compact bool) {
	m.compact = compact
}

// Resize updates the component size.
func (m *StatsPanelModel) Resize(width, height int) {
	m.width = width
	m.height = height
	m.progressBar.Width = max(min(width-4, 30), 5)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
