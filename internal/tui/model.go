package tui

import (
	"context"
	"log/slog"

	"github.com/Veraticus/asset-ledger/internal/model"
	"github.com/Veraticus/asset-ledger/internal/query"
	"github.com/Veraticus/asset-ledger/internal/service"
	"github.com/Veraticus/asset-ledger/internal/tui/components"
	"github.com/Veraticus/asset-ledger/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// State represents the current state of the TUI.
type State int

const (
	StateList State = iota
	StateForm
	StateSearch
	StateConfirm
	StateHelp
)

// Model holds the main TUI state.
type Model struct {
	ctx        context.Context
	store      service.RecordStore
	lastError  error
	confirm    *confirmation
	theme      themes.Theme
	status     string
	criteria   query.Criteria
	records    []model.Record
	help       help.Model
	search     textinput.Model
	list       components.AssetListModel
	form       components.AssetFormModel
	statsPanel components.StatsPanelModel
	config     Config
	keymap     KeyMap
	width      int
	height     int
	state      State
	showStats  bool
	quitting   bool
}

// newModel creates a new model with the given configuration.
func newModel(ctx context.Context, st service.RecordStore, cfg Config) Model {
	search := textinput.New()
	search.Placeholder = "name or description"
	search.CharLimit = 60
	search.Prompt = "/ "

	m := Model{
		ctx:        ctx,
		store:      st,
		state:      StateList,
		config:     cfg,
		keymap:     DefaultKeyMap(),
		theme:      cfg.Theme,
		help:       help.New(),
		search:     search,
		list:       components.NewAssetList(cfg.Theme),
		form:       components.NewAssetForm(cfg.Theme),
		statsPanel: components.NewStatsPanelModel(cfg.Theme),
		criteria:   query.Criteria{Status: query.StatusAll, Category: query.All, Priority: query.All},
		showStats:  cfg.ShowStats,
		width:      cfg.Width,
		height:     cfg.Height,
	}
	m.handleResize()
	return m
}

// Init loads the records.
func (m Model) Init() tea.Cmd {
	return m.loadRecords()
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keymap.ForceQuit) {
			m.quitting = true
			return m, tea.Quit
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.handleResize()
		return m, nil

	case recordsChangedMsg:
		m.records = msg.records
		m.status = msg.status
		m.lastError = nil
		m.refresh()
		if m.state == StateForm || m.state == StateConfirm {
			m.state = StateList
		}
		return m, nil

	case errorMsg:
		m.lastError = msg.err
		slog.Debug("TUI operation failed", "context", msg.context, "error", msg.err)
		if m.state == StateConfirm {
			m.state = StateList
		}
		return m, nil

	case components.FormSubmittedMsg:
		return m, m.saveRecord(msg)

	case components.FormCancelledMsg:
		m.state = StateList
		return m, nil
	}

	// Delegate to active component based on state
	var cmd tea.Cmd
	switch m.state {
	case StateForm:
		m.form, cmd = m.form.Update(msg)
	case StateSearch:
		m.search, cmd = m.search.Update(msg)
	}
	return m, cmd
}

// handleKey routes a key press to the handler for the current state.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.state {
	case StateForm:
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd

	case StateSearch:
		return m.handleSearchKey(msg)

	case StateConfirm:
		return m.handleConfirmKey(msg)

	case StateHelp:
		m.state = StateList
		return m, nil
	}

	return m.handleListKey(msg)
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Help):
		m.state = StateHelp
		return m, nil

	case key.Matches(msg, m.keymap.Add):
		m.form = components.NewAssetForm(m.theme)
		m.state = StateForm
		return m, m.form.Init()

	case key.Matches(msg, m.keymap.Edit):
		if r, ok := m.list.Selected(); ok {
			m.form = components.NewEditForm(m.theme, r)
			m.state = StateForm
			return m, m.form.Init()
		}
		return m, nil

	case key.Matches(msg, m.keymap.Toggle):
		if r, ok := m.list.Selected(); ok {
			return m, m.toggleRecord(r.ID)
		}
		return m, nil

	case key.Matches(msg, m.keymap.Delete):
		if r, ok := m.list.Selected(); ok {
			m.confirm = &confirmation{
				action: confirmDelete,
				id:     r.ID,
				prompt: "Delete \"" + r.Name + "\"?",
			}
			m.state = StateConfirm
		}
		return m, nil

	case key.Matches(msg, m.keymap.ClearInactive):
		if n := len(query.Filter(m.records, query.Criteria{Status: query.StatusInactive})); n > 0 {
			m.confirm = &confirmation{
				action: confirmClearInactive,
				prompt: "Delete all " + components.AssetCount(n) + " marked inactive?",
			}
			m.state = StateConfirm
		} else {
			m.status = "No inactive assets to clear"
		}
		return m, nil

	case key.Matches(msg, m.keymap.Search):
		m.state = StateSearch
		m.search.SetValue(m.criteria.Search)
		return m, m.search.Focus()

	case key.Matches(msg, m.keymap.CycleStatus):
		m.criteria.Status = cycle([]query.Status{query.StatusAll, query.StatusActive, query.StatusInactive}, m.criteria.Status)
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keymap.CycleCategory):
		m.criteria.Category = cycle(withAll(model.Categories), m.criteria.Category)
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keymap.CyclePriority):
		m.criteria.Priority = cycle(withAll(model.Priorities), m.criteria.Priority)
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keymap.ResetFilters):
		m.criteria = query.Criteria{Status: query.StatusAll, Category: query.All, Priority: query.All}
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keymap.ToggleStats):
		m.showStats = !m.showStats
		m.handleResize()
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// handleSearchKey filters as the user types. Enter keeps the term, Esc
// clears it.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.search.Blur()
		m.state = StateList
		return m, nil
	case tea.KeyEsc:
		m.search.Blur()
		m.search.SetValue("")
		m.criteria.Search = ""
		m.refresh()
		m.state = StateList
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.criteria.Search = m.search.Value()
	m.refresh()
	return m, cmd
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Confirm):
		pending := m.confirm
		m.confirm = nil
		if pending == nil {
			m.state = StateList
			return m, nil
		}
		switch pending.action {
		case confirmDelete:
			return m, m.deleteRecord(pending.id)
		case confirmClearInactive:
			return m, m.clearInactive()
		}

	case key.Matches(msg, m.keymap.Cancel):
		m.confirm = nil
		m.state = StateList
		m.status = "Canceled"
	}
	return m, nil
}

// refresh recomputes the visible rows and the stats.
func (m *Model) refresh() {
	m.list.SetRecords(query.Filter(m.records, m.criteria))
	m.statsPanel.SetStats(query.Aggregate(m.records))
}

// handleResize adjusts component sizes when terminal resizes.
func (m *Model) handleResize() {
	// Header (2), footer (2), borders (2)
	bodyHeight := max(m.height-6, 3)

	if m.showStats && m.width >= wideLayout {
		m.list.Resize(m.width-statsWidth-4, bodyHeight)
		m.statsPanel.SetCompact(false)
		m.statsPanel.Resize(statsWidth, bodyHeight)
	} else {
		listHeight := bodyHeight
		if m.showStats {
			listHeight -= 2
		}
		m.list.Resize(m.width-2, listHeight)
		m.statsPanel.SetCompact(true)
		m.statsPanel.Resize(m.width-2, 1)
	}
	m.help.Width = m.width
}

// cycle returns the value after current, wrapping around. Unknown values
// restart at the first option.
func cycle[T ~string](options []T, current T) T {
	for i, opt := range options {
		if opt == current {
			return options[(i+1)%len(options)]
		}
	}
	return options[0]
}

// withAll prefixes tags with the "all" sentinel, as filter strings.
func withAll[T ~string](tags []T) []string {
	out := make([]string, 0, len(tags)+1)
	out = append(out, query.All)
	for _, t := range tags {
		out = append(out, string(t))
	}
	return out
}
