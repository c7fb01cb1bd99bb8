package tui

import (
	"fmt"
	"strings"

	"github.com/Veraticus/asset-ledger/internal/cli"
	"github.com/Veraticus/asset-ledger/internal/query"
	"github.com/Veraticus/asset-ledger/internal/tui/components"
	"github.com/charmbracelet/lipgloss"
)

const (
	// wideLayout is the width from which stats sit beside the list.
	wideLayout = 110
	statsWidth = 34
)

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch m.state {
	case StateForm:
		body = m.form.View()
	case StateHelp:
		body = m.renderHelp()
	default:
		body = m.renderMain()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		body,
		m.renderFooter(),
	)
}

// renderHeader shows the title and the active filters.
func (m Model) renderHeader() string {
	title := m.theme.Title.Render(cli.LedgerIcon + " Asset Ledger")

	visible := m.list.Len()
	count := components.AssetCount(len(m.records))
	if visible != len(m.records) {
		count = fmt.Sprintf("%d of %s", visible, count)
	}

	filters := []string{
		"status: " + orAll(string(m.criteria.Status)),
		"category: " + orAll(m.criteria.Category),
		"risk: " + orAll(m.criteria.Priority),
	}
	if m.criteria.Search != "" {
		filters = append(filters, fmt.Sprintf("search: %q", m.criteria.Search))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		title+"  "+m.theme.Subtitle.Render(count),
		m.theme.Subtitle.Render(strings.Join(filters, " • ")),
	)
}

// renderMain renders the list with the stats beside or below it.
func (m Model) renderMain() string {
	list := m.list.View()
	if m.state == StateSearch {
		list = lipgloss.JoinVertical(lipgloss.Left, m.search.View(), list)
	}

	if !m.showStats {
		return list
	}

	if m.width >= wideLayout {
		stats := m.theme.RoundedBox.Width(statsWidth).Render(m.statsPanel.View())
		return lipgloss.JoinHorizontal(lipgloss.Top, list, "  ", stats)
	}
	return lipgloss.JoinVertical(lipgloss.Left, list, "", m.statsPanel.View())
}

// renderFooter shows the confirmation prompt, the last error or status, and
// the short help.
func (m Model) renderFooter() string {
	var line string
	switch {
	case m.state == StateConfirm && m.confirm != nil:
		line = m.theme.StatusWarning.Render(cli.WarningIcon+" "+m.confirm.prompt) +
			m.theme.Subtitle.Render(" (y/N)")
	case m.lastError != nil:
		line = m.theme.StatusError.Render(cli.ErrorIcon + " " + m.lastError.Error())
	case m.status != "":
		line = m.theme.StatusSuccess.Render(cli.SuccessIcon + " " + m.status)
	}

	if m.state == StateForm {
		return line
	}
	return lipgloss.JoinVertical(lipgloss.Left, line, m.help.ShortHelpView(m.keymap.ShortHelp()))
}

// renderHelp renders the full key reference.
func (m Model) renderHelp() string {
	return m.theme.RoundedBox.Render(lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Title.Render("Keys"),
		m.help.FullHelpView(m.keymap.FullHelp()),
		"",
		m.theme.Subtitle.Render("Press any key to go back"),
	))
}

func orAll(s string) string {
	if s == "" {
		return query.All
	}
	return s
}
