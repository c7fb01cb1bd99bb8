package components

import (
	"testing"

	"github.com/Veraticus/asset-ledger/internal/model"
	"github.com/Veraticus/asset-ledger/internal/tui/themes"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typeText(m AssetFormModel, text string) AssetFormModel {
	for _, r := range text {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func press(m AssetFormModel, keyType tea.KeyType) (AssetFormModel, tea.Cmd) {
	return m.Update(tea.KeyMsg{Type: keyType})
}

func submitted(t *testing.T, cmd tea.Cmd) FormSubmittedMsg {
	t.Helper()
	require.NotNil(t, cmd)
	msg, ok := cmd().(FormSubmittedMsg)
	require.True(t, ok, "expected FormSubmittedMsg")
	return msg
}

func TestAssetForm_NewDefaults(t *testing.T) {
	m := NewAssetForm(themes.Default)
	assert.False(t, m.IsEdit())

	m = typeText(m, "  BTC  ")
	m, cmd := press(m, tea.KeyCtrlS)

	msg := submitted(t, cmd)
	assert.Zero(t, msg.ID)
	assert.Equal(t, "BTC", *msg.Fields.Name)
	assert.Equal(t, "", *msg.Fields.Description)
	assert.Equal(t, model.CategoryOther, *msg.Fields.Category)
	assert.Equal(t, model.PriorityMedium, *msg.Fields.Priority)
	assert.Equal(t, 0.0, *msg.Fields.Amount)
	assert.Empty(t, m.Err())
}

func TestAssetForm_NameRequired(t *testing.T) {
	m := NewAssetForm(themes.Default)
	m = typeText(m, "   ")

	m, cmd := press(m, tea.KeyCtrlS)
	assert.Nil(t, cmd)
	assert.Equal(t, ErrNameRequired, m.Err())
	assert.Contains(t, m.View(), ErrNameRequired)
}

func TestAssetForm_AllFields(t *testing.T) {
	m := NewAssetForm(themes.Default)

	m = typeText(m, "ETH")
	m, _ = press(m, tea.KeyTab)
	m = typeText(m, "Staked")
	m, _ = press(m, tea.KeyTab)
	// other -> crypto wraps forward
	m, _ = press(m, tea.KeyRight)
	m, _ = press(m, tea.KeyTab)
	// medium -> high
	m, _ = press(m, tea.KeyLeft)
	m, _ = press(m, tea.KeyTab)
	m = typeText(m, "2500.5")
	m, _ = press(m, tea.KeyTab)
	m = typeText(m, "abc")

	m, cmd := press(m, tea.KeyEnter)
	msg := submitted(t, cmd)

	assert.Equal(t, "ETH", *msg.Fields.Name)
	assert.Equal(t, "Staked", *msg.Fields.Description)
	assert.Equal(t, model.CategoryCrypto, *msg.Fields.Category)
	assert.Equal(t, model.PriorityHigh, *msg.Fields.Priority)
	assert.Equal(t, 2500.5, *msg.Fields.Amount)
	assert.Equal(t, 0.0, *msg.Fields.Yield, "non-numeric input reads as zero")
	assert.Empty(t, m.Err())
}

func TestAssetForm_EnterAdvancesUntilLastField(t *testing.T) {
	m := NewAssetForm(themes.Default)
	m = typeText(m, "BTC")

	for i := 0; i < fieldYield; i++ {
		var cmd tea.Cmd
		m, cmd = press(m, tea.KeyEnter)
		assert.Nil(t, cmd)
	}
	assert.Equal(t, fieldYield, m.focus)

	_, cmd := press(m, tea.KeyEnter)
	submitted(t, cmd)
}

func TestAssetForm_Edit(t *testing.T) {
	r := record(42, "Bond", model.CategoryLoan, 50, false)
	r.Yield = 3.25

	m := NewEditForm(themes.Default, r)
	assert.True(t, m.IsEdit())
	assert.Contains(t, m.View(), "Edit asset #42")

	_, cmd := press(m, tea.KeyCtrlS)
	msg := submitted(t, cmd)

	assert.Equal(t, int64(42), msg.ID)
	assert.Equal(t, "Bond", *msg.Fields.Name)
	assert.Equal(t, model.CategoryLoan, *msg.Fields.Category)
	assert.Equal(t, 50.0, *msg.Fields.Amount)
	assert.Equal(t, 3.25, *msg.Fields.Yield)
	assert.Nil(t, msg.Fields.Active, "the form never changes the active flag")
}

func TestAssetForm_EditKeepsUnknownTags(t *testing.T) {
	r := record(7, "House", "real-estate", 1000, true)
	r.Priority = "urgent"

	m := NewEditForm(themes.Default, r)
	assert.Contains(t, m.View(), "real-estate")

	_, cmd := press(m, tea.KeyCtrlS)
	msg := submitted(t, cmd)
	assert.Nil(t, msg.Fields.Category)
	assert.Nil(t, msg.Fields.Priority)

	// Picking a value replaces the unknown tag.
	m, _ = press(m, tea.KeyTab)
	m, _ = press(m, tea.KeyTab)
	m, _ = press(m, tea.KeyRight)
	_, cmd = press(m, tea.KeyCtrlS)
	msg = submitted(t, cmd)
	require.NotNil(t, msg.Fields.Category)
	assert.True(t, msg.Fields.Category.IsKnown())
}

func TestAssetForm_EditZeroIDAndEmptyTags(t *testing.T) {
	r := record(0, "Gold", model.CategorySaving, 10, true)
	r.Category = ""
	r.Priority = ""

	m := NewEditForm(themes.Default, r)
	assert.True(t, m.IsEdit(), "a zero id still names an existing asset")

	_, cmd := press(m, tea.KeyCtrlS)
	msg := submitted(t, cmd)

	assert.True(t, msg.Edit)
	assert.Zero(t, msg.ID)
	assert.Nil(t, msg.Fields.Category, "empty category is kept")
	assert.Nil(t, msg.Fields.Priority, "empty priority is kept")
}

func TestAssetForm_NewIsNotEdit(t *testing.T) {
	m := NewAssetForm(themes.Default)
	m.inputs[fieldName].SetValue("ETH")

	_, cmd := press(m, tea.KeyCtrlS)
	assert.False(t, submitted(t, cmd).Edit)
}

func TestAssetForm_Cancel(t *testing.T) {
	m := NewAssetForm(themes.Default)
	_, cmd := press(m, tea.KeyEsc)
	require.NotNil(t, cmd)
	assert.IsType(t, FormCancelledMsg{}, cmd())
}

func TestAssetForm_FocusWraps(t *testing.T) {
	m := NewAssetForm(themes.Default)
	m, _ = press(m, tea.KeyShiftTab)
	assert.Equal(t, fieldYield, m.focus)
	m, _ = press(m, tea.KeyTab)
	assert.Equal(t, fieldName, m.focus)
}
