package components

import (
	"strconv"

	"github.com/Veraticus/asset-ledger/internal/cli"
	"github.com/Veraticus/asset-ledger/internal/model"
	"github.com/Veraticus/asset-ledger/internal/tui/themes"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// AssetListModel shows the visible records as a navigable table.
type AssetListModel struct {
	theme   themes.Theme
	records []model.Record
	table   table.Model
	width   int
	height  int
}

// NewAssetList creates an empty asset list.
func NewAssetList(theme themes.Theme) AssetListModel {
	t := table.New(
		table.WithFocused(true),
		table.WithHeight(10),
		table.WithKeyMap(navigationKeys()),
	)

	// Apply theme
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Bold(true)
	s.Selected = theme.Selected
	t.SetStyles(s)

	m := AssetListModel{
		theme: theme,
		table: t,
		width: 80,
	}
	m.updateColumns()
	return m
}

// SetRecords replaces the rows, keeping the cursor in range.
func (m *AssetListModel) SetRecords(records []model.Record) {
	m.records = records

	rows := make([]table.Row, 0, len(records))
	for _, r := range records {
		status := "●"
		if !r.Active {
			status = "○"
		}
		createdAt := r.CreatedAt
		rows = append(rows, table.Row{
			status,
			r.Name,
			cli.FormatAmount(r.Amount.Float64()),
			cli.FormatYield(r.Yield.Float64()),
			cli.CategoryLabel(r.Category),
			priorityText(r.Priority),
			cli.FormatDate(&createdAt),
		})
	}
	m.table.SetRows(rows)

	switch {
	case len(rows) == 0:
		m.table.SetCursor(0)
	case m.table.Cursor() >= len(rows):
		m.table.SetCursor(len(rows) - 1)
	case m.table.Cursor() < 0:
		m.table.SetCursor(0)
	}
}

// Selected returns the record under the cursor.
func (m AssetListModel) Selected() (model.Record, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.records) {
		return model.Record{}, false
	}
	return m.records[i], true
}

// Cursor returns the cursor position.
func (m AssetListModel) Cursor() int {
	return m.table.Cursor()
}

// Len returns the number of rows.
func (m AssetListModel) Len() int {
	return len(m.records)
}

// Update handles navigation keys.
func (m AssetListModel) Update(msg tea.Msg) (AssetListModel, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.Resize(msg.Width, msg.Height)
	}

	newTable, cmd := m.table.Update(msg)
	m.table = newTable
	return m, cmd
}

// View renders the list.
func (m AssetListModel) View() string {
	if len(m.records) == 0 {
		return m.theme.Subtitle.Render("No assets match. Press a to add one, r to reset filters.")
	}
	return m.table.View()
}

// Resize adjusts the table to the available space.
func (m *AssetListModel) Resize(width, height int) {
	m.width = width
	m.height = height
	m.table.SetWidth(width)
	m.table.SetHeight(max(height, 3))
	m.updateColumns()
}

const (
	cellPadding  = 2
	minNameWidth = 8
)

// updateColumns gives the name column whatever the fixed columns leave.
// Every cell is padded by one column on each side.
func (m *AssetListModel) updateColumns() {
	columns := []table.Column{
		{Title: "", Width: 2},
		{Title: "Name"},
		{Title: "Amount", Width: 13},
		{Title: "Yield", Width: 6},
		{Title: "Category", Width: 15},
		{Title: "Risk", Width: 11},
		{Title: "Added", Width: 8},
	}

	used := 0
	for _, c := range columns {
		used += c.Width + cellPadding
	}
	columns[1].Width = max(m.width-used, minNameWidth)

	m.table.SetColumns(columns)
}

// priorityText is the plain priority label; table cells are truncated by
// width, so embedded color codes would be cut mid-sequence.
func priorityText(p model.Priority) string {
	if info, ok := cli.PriorityLabels[p]; ok {
		return info.Label
	}
	if p == "" {
		return "-"
	}
	return string(p)
}

// navigationKeys limits the table to cursor movement so single letter
// shortcuts stay free for actions.
func navigationKeys() table.KeyMap {
	return table.KeyMap{
		LineUp:       key.NewBinding(key.WithKeys("up", "k")),
		LineDown:     key.NewBinding(key.WithKeys("down", "j")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		GotoTop:      key.NewBinding(key.WithKeys("home", "g")),
		GotoBottom:   key.NewBinding(key.WithKeys("end", "G")),
	}
}

// AssetCount renders n with the right noun, e.g. "1 asset" or "3 assets".
func AssetCount(n int) string {
	if n == 1 {
		return "1 asset"
	}
	return strconv.Itoa(n) + " assets"
}
