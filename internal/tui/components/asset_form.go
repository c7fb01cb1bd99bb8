package components

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/Veraticus/asset-ledger/internal/cli"
	"github.com/Veraticus/asset-ledger/internal/model"
	"github.com/Veraticus/asset-ledger/internal/tui/themes"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Form fields in tab order.
const (
	fieldName = iota
	fieldDescription
	fieldCategory
	fieldPriority
	fieldAmount
	fieldYield
	fieldCount
)

// ErrNameRequired is shown when the form is submitted without a name.
const ErrNameRequired = "Asset name is required"

// AssetFormModel edits the fields of one asset. Text fields use textinput;
// category and priority are picked with ←/→.
type AssetFormModel struct {
	theme    themes.Theme
	err      string
	inputs   [fieldCount]textinput.Model
	id       int64
	focus    int
	category int
	priority int

	// Tags outside the known sets, the empty tag included, are kept until
	// the user picks another.
	unknownCategory model.Category
	unknownPriority model.Priority
	keepCategory    bool
	keepPriority    bool
	editing         bool
}

// NewAssetForm creates a form for a new asset, preset to the defaults.
func NewAssetForm(theme themes.Theme) AssetFormModel {
	m := AssetFormModel{theme: theme}

	placeholders := [fieldCount]string{
		fieldName:        "Bitcoin, Vanguard S&P 500, ...",
		fieldDescription: "Where it is held, notes",
		fieldAmount:      "0",
		fieldYield:       "0",
	}
	for i := range m.inputs {
		if i == fieldCategory || i == fieldPriority {
			continue
		}
		in := textinput.New()
		in.Placeholder = placeholders[i]
		in.CharLimit = 120
		in.Prompt = ""
		m.inputs[i] = in
	}

	m.category = slices.Index(model.Categories, model.CategoryOther)
	m.priority = slices.Index(model.Priorities, model.PriorityMedium)
	m.focusField(fieldName)
	return m
}

// NewEditForm creates a form prefilled from r.
func NewEditForm(theme themes.Theme, r model.Record) AssetFormModel {
	m := NewAssetForm(theme)
	m.id = r.ID
	m.editing = true
	m.inputs[fieldName].SetValue(r.Name)
	m.inputs[fieldDescription].SetValue(r.Description)
	m.inputs[fieldAmount].SetValue(formatNumber(r.Amount.Float64()))
	m.inputs[fieldYield].SetValue(formatNumber(r.Yield.Float64()))
	if i := slices.Index(model.Categories, r.Category); i >= 0 {
		m.category = i
	} else {
		m.unknownCategory = r.Category
		m.keepCategory = true
	}
	if i := slices.Index(model.Priorities, r.Priority); i >= 0 {
		m.priority = i
	} else {
		m.unknownPriority = r.Priority
		m.keepPriority = true
	}
	return m
}

// IsEdit reports whether the form edits an existing asset.
func (m AssetFormModel) IsEdit() bool {
	return m.editing
}

// Err returns the current validation message.
func (m AssetFormModel) Err() string {
	return m.err
}

// Init starts the cursor blinking.
func (m AssetFormModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m AssetFormModel) Update(msg tea.Msg) (AssetFormModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateInput(msg)
	}

	switch keyMsg.String() {
	case "esc":
		return m, func() tea.Msg { return FormCancelledMsg{} }

	case "tab", "down":
		m.focusField((m.focus + 1) % fieldCount)
		return m, nil

	case "shift+tab", "up":
		m.focusField((m.focus + fieldCount - 1) % fieldCount)
		return m, nil

	case "enter", "ctrl+s":
		if keyMsg.String() == "enter" && m.focus != fieldYield {
			m.focusField(m.focus + 1)
			return m, nil
		}
		return m.submit()

	case "left", "right":
		if m.cycle(keyMsg.String() == "right") {
			return m, nil
		}
	}

	return m.updateInput(msg)
}

// submit validates the form. Text is trimmed and numbers are read leniently.
func (m AssetFormModel) submit() (AssetFormModel, tea.Cmd) {
	name := strings.TrimSpace(m.inputs[fieldName].Value())
	if name == "" {
		m.err = ErrNameRequired
		m.focusField(fieldName)
		return m, nil
	}
	m.err = ""

	fields := model.Fields{
		Name:        model.Ptr(name),
		Description: model.Ptr(strings.TrimSpace(m.inputs[fieldDescription].Value())),
		Category:    model.Ptr(model.Categories[m.category]),
		Priority:    model.Ptr(model.Priorities[m.priority]),
		Amount:      model.Ptr(model.ToNumber(m.inputs[fieldAmount].Value())),
		Yield:       model.Ptr(model.ToNumber(m.inputs[fieldYield].Value())),
	}
	if m.keepCategory {
		fields.Category = nil
	}
	if m.keepPriority {
		fields.Priority = nil
	}

	id, editing := m.id, m.editing
	return m, func() tea.Msg { return FormSubmittedMsg{ID: id, Edit: editing, Fields: fields} }
}

// cycle moves the category or priority selection. It reports whether the
// focused field is a selector.
func (m *AssetFormModel) cycle(forward bool) bool {
	step := 1
	if !forward {
		step = -1
	}
	switch m.focus {
	case fieldCategory:
		m.category = wrap(m.category+step, len(model.Categories))
		m.keepCategory = false
	case fieldPriority:
		m.priority = wrap(m.priority+step, len(model.Priorities))
		m.keepPriority = false
	default:
		return false
	}
	return true
}

func (m AssetFormModel) updateInput(msg tea.Msg) (AssetFormModel, tea.Cmd) {
	if m.focus == fieldCategory || m.focus == fieldPriority {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *AssetFormModel) focusField(field int) {
	m.focus = field
	for i := range m.inputs {
		if i == fieldCategory || i == fieldPriority {
			continue
		}
		if i == field {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
}

// View renders the form.
func (m AssetFormModel) View() string {
	title := "New asset"
	if m.IsEdit() {
		title = fmt.Sprintf("Edit asset #%d", m.id)
	}

	labels := [fieldCount]string{
		fieldName:        "Name",
		fieldDescription: "Description",
		fieldCategory:    "Category",
		fieldPriority:    "Risk",
		fieldAmount:      "Amount",
		fieldYield:       "Yield %",
	}

	lines := []string{m.theme.Title.Render(title), ""}
	for i := 0; i < fieldCount; i++ {
		label := fmt.Sprintf("%-12s", labels[i])
		if i == m.focus {
			label = m.theme.Focused.Render("› " + label)
		} else {
			label = m.theme.Subtitle.Render("  " + label)
		}

		var value string
		switch i {
		case fieldCategory:
			value = "‹ " + cli.CategoryLabel(m.selectedCategory()) + " ›"
		case fieldPriority:
			value = "‹ " + cli.PriorityLabel(m.selectedPriority()) + " ›"
		default:
			value = m.inputs[i].View()
		}
		lines = append(lines, label+" "+value)
	}

	if m.err != "" {
		lines = append(lines, "", m.theme.StatusError.Render(cli.ErrorIcon+" "+m.err))
	}
	lines = append(lines, "", m.theme.Subtitle.Render("Tab: next field • ←/→: change selection • Ctrl+S: save • Esc: cancel"))

	return m.theme.RoundedBox.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m AssetFormModel) selectedCategory() model.Category {
	if m.keepCategory {
		return m.unknownCategory
	}
	return model.Categories[m.category]
}

func (m AssetFormModel) selectedPriority() model.Priority {
	if m.keepPriority {
		return m.unknownPriority
	}
	return model.Priorities[m.priority]
}

func wrap(i, n int) int {
	return (i%n + n) % n
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
