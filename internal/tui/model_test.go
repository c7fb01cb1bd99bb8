package tui

import (
	"context"
	"strings"
	"testing"

	"github.com/Veraticus/asset-ledger/internal/common"
	"github.com/Veraticus/asset-ledger/internal/model"
	"github.com/Veraticus/asset-ledger/internal/query"
	"github.com/Veraticus/asset-ledger/internal/storage"
	"github.com/Veraticus/asset-ledger/internal/store"
	"github.com/Veraticus/asset-ledger/internal/testutil"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T) (Model, *testutil.TestStore) {
	t.Helper()
	ts := testutil.SetupTestStore(t)
	ts.Seed(t, testutil.ScenarioFields()...)

	m := newModel(context.Background(), ts.Store, defaultConfig())
	m = settle(t, m, m.Init())
	m = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	return m, ts
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

// settle runs cmd and feeds its message back until nothing is left. Only
// call it with commands that complete immediately.
func settle(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	for i := 0; cmd != nil; i++ {
		require.Less(t, i, 5, "command chain did not settle")
		var next tea.Model
		next, cmd = m.Update(cmd())
		m = next.(Model)
	}
	return m
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// pressKey sends a key and settles the resulting command.
func pressKey(t *testing.T, m Model, msg tea.KeyMsg) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	return settle(t, next.(Model), cmd)
}

// typeText sends runes one by one, dropping cursor blink commands.
func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		m = send(t, m, keyRunes(string(r)))
	}
	return m
}

func names(records []model.Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Name)
	}
	return out
}

func TestModel_InitLoadsRecords(t *testing.T) {
	m, _ := newTestModel(t)

	assert.Equal(t, StateList, m.state)
	assert.Len(t, m.records, 3)
	assert.Equal(t, 3, m.list.Len())
	assert.Equal(t, 3, m.statsPanel.Stats().Total)
	assert.Equal(t, 1150.0, m.statsPanel.Stats().TotalCapital)
}

func TestModel_AddAsset(t *testing.T) {
	m, ts := newTestModel(t)

	m = send(t, m, keyRunes("a"))
	require.Equal(t, StateForm, m.state)

	m = typeText(t, m, "  ETH ")
	m = pressKey(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	assert.Equal(t, StateList, m.state)
	assert.Equal(t, `Added "ETH"`, m.status)
	assert.Equal(t, []string{"BTC", "Treasury Bond", "Vanguard S&P 500", "ETH"}, names(m.records))
	assert.Equal(t, m.records, ts.Persisted(t))

	added := m.records[3]
	assert.True(t, added.Active)
	assert.Equal(t, model.CategoryOther, added.Category)
	assert.Equal(t, model.PriorityMedium, added.Priority)
}

func TestModel_AddRequiresName(t *testing.T) {
	m, ts := newTestModel(t)
	saves := ts.Storage.Saves()

	m = send(t, m, keyRunes("a"))
	m = pressKey(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	assert.Equal(t, StateForm, m.state)
	assert.Contains(t, m.View(), "Asset name is required")
	assert.Equal(t, saves, ts.Storage.Saves(), "nothing persisted")

	m = pressKey(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, StateList, m.state)
	assert.Len(t, m.records, 3)
}

func TestModel_EditAsset(t *testing.T) {
	m, ts := newTestModel(t)

	m = send(t, m, keyRunes("e"))
	require.Equal(t, StateForm, m.state)

	m = typeText(t, m, " Core")
	m = pressKey(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	require.Equal(t, StateList, m.state)
	btc := m.records[0]
	assert.Equal(t, "BTC Core", btc.Name)
	assert.Equal(t, 100.0, btc.Amount.Float64(), "untouched fields survive")
	assert.NotNil(t, btc.UpdatedAt)
	assert.Equal(t, m.records, ts.Persisted(t))
}

func TestModel_EditAssetWithZeroID(t *testing.T) {
	payload := `[{"id":0,"name":"Gold","category":"","priority":"","amount":10,"active":true,"createdAt":"2024-06-01T12:00:00Z","updatedAt":null}]`
	st, err := store.New(context.Background(), storage.NewMemoryStorageWithPayload([]byte(payload)))
	require.NoError(t, err)

	m := newModel(context.Background(), st, defaultConfig())
	m = settle(t, m, m.Init())

	m = send(t, m, keyRunes("e"))
	require.Equal(t, StateForm, m.state)
	m = typeText(t, m, " bar")
	m = pressKey(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	require.Equal(t, StateList, m.state)
	require.Len(t, m.records, 1, "edited in place, not duplicated")
	assert.Equal(t, "Gold bar", m.records[0].Name)
	assert.Empty(t, m.records[0].Category)
	assert.Empty(t, m.records[0].Priority)
}

func TestModel_ToggleAsset(t *testing.T) {
	m, ts := newTestModel(t)

	m = pressKey(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.False(t, m.records[0].Active)

	m = pressKey(t, m, keyRunes("t"))
	assert.True(t, m.records[0].Active)
	assert.Equal(t, m.records, ts.Persisted(t))
}

func TestModel_DeleteAsset(t *testing.T) {
	t.Run("confirmed", func(t *testing.T) {
		m, ts := newTestModel(t)

		m = send(t, m, keyRunes("d"))
		require.Equal(t, StateConfirm, m.state)
		assert.Contains(t, m.View(), `Delete "BTC"?`)

		m = pressKey(t, m, keyRunes("y"))
		assert.Equal(t, StateList, m.state)
		assert.Equal(t, []string{"Treasury Bond", "Vanguard S&P 500"}, names(m.records))
		assert.Equal(t, m.records, ts.Persisted(t))
	})

	t.Run("canceled", func(t *testing.T) {
		m, _ := newTestModel(t)

		m = send(t, m, keyRunes("d"))
		m = pressKey(t, m, keyRunes("n"))
		assert.Equal(t, StateList, m.state)
		assert.Equal(t, "Canceled", m.status)
		assert.Len(t, m.records, 3)
	})
}

func TestModel_ClearInactive(t *testing.T) {
	m, ts := newTestModel(t)

	m = send(t, m, keyRunes("X"))
	require.Equal(t, StateConfirm, m.state)
	assert.Contains(t, m.View(), "Delete all 1 asset marked inactive?")

	m = pressKey(t, m, keyRunes("y"))
	assert.Equal(t, []string{"BTC", "Vanguard S&P 500"}, names(m.records))
	assert.Equal(t, "Cleared 1 inactive assets", m.status)
	assert.Equal(t, m.records, ts.Persisted(t))

	// Nothing left to clear: no prompt.
	m = send(t, m, keyRunes("X"))
	assert.Equal(t, StateList, m.state)
	assert.Equal(t, "No inactive assets to clear", m.status)
}

func TestModel_Filters(t *testing.T) {
	m, _ := newTestModel(t)

	m = send(t, m, keyRunes("s"))
	assert.Equal(t, query.StatusActive, m.criteria.Status)
	assert.Equal(t, 2, m.list.Len())

	m = send(t, m, keyRunes("s"))
	assert.Equal(t, query.StatusInactive, m.criteria.Status)
	assert.Equal(t, 1, m.list.Len())

	m = send(t, m, keyRunes("r"))
	m = send(t, m, keyRunes("c"))
	assert.Equal(t, "crypto", m.criteria.Category)
	assert.Equal(t, 1, m.list.Len())

	m = send(t, m, keyRunes("r"))
	m = send(t, m, keyRunes("p"))
	assert.Equal(t, "high", m.criteria.Priority)
	assert.Equal(t, 1, m.list.Len())

	m = send(t, m, keyRunes("r"))
	assert.True(t, m.criteria.IsZero())
	assert.Equal(t, 3, m.list.Len())
	assert.Equal(t, 3, m.statsPanel.Stats().Total, "stats always cover every asset")
}

func TestModel_Search(t *testing.T) {
	m, _ := newTestModel(t)

	m = send(t, m, keyRunes("/"))
	require.Equal(t, StateSearch, m.state)

	m = typeText(t, m, "YEAR")
	assert.Equal(t, 1, m.list.Len(), "matches the description, ignoring case")

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, StateList, m.state)
	assert.Equal(t, "YEAR", m.criteria.Search)
	assert.Contains(t, m.View(), `search: "YEAR"`)

	m = send(t, m, keyRunes("/"))
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Empty(t, m.criteria.Search)
	assert.Equal(t, 3, m.list.Len())
}

func TestModel_SaveFailureShowsError(t *testing.T) {
	backend := testutil.NewFailingStorage(0)
	st, err := store.New(context.Background(), backend)
	require.NoError(t, err)

	m := newModel(context.Background(), st, defaultConfig())
	m = settle(t, m, m.Init())

	m = send(t, m, keyRunes("a"))
	m = typeText(t, m, "ETH")
	m = pressKey(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	assert.Equal(t, StateForm, m.state, "form stays open so the input is not lost")
	require.ErrorIs(t, m.lastError, testutil.ErrDiskFull)
	assert.Contains(t, m.View(), "disk full")
	assert.Empty(t, m.records)
	assert.Empty(t, st.Records())
}

func TestModel_HelpAndQuit(t *testing.T) {
	m, _ := newTestModel(t)

	m = send(t, m, keyRunes("?"))
	assert.Equal(t, StateHelp, m.state)
	assert.Contains(t, m.View(), "clear inactive")

	m = send(t, m, keyRunes("x"))
	assert.Equal(t, StateList, m.state)

	next, cmd := m.Update(keyRunes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.True(t, next.(Model).quitting)
	assert.Empty(t, next.(Model).View())
}

func TestModel_ForceQuitFromForm(t *testing.T) {
	m, _ := newTestModel(t)
	m = send(t, m, keyRunes("a"))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestModel_View(t *testing.T) {
	m, _ := newTestModel(t)

	view := m.View()
	assert.Contains(t, view, "Asset Ledger")
	assert.Contains(t, view, "3 assets")
	assert.Contains(t, view, "Total capital")
	assert.Contains(t, view, "$1,150.00")
	assert.Contains(t, view, "Treasury Bond")

	m = send(t, m, keyRunes("S"))
	assert.NotContains(t, m.View(), "Total capital")

	m = send(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	m = send(t, m, keyRunes("S"))
	assert.Contains(t, m.View(), "Total: 3 | Active: 2 | Inactive: 1")
}

func TestModel_EmptyListActionsAreNoOps(t *testing.T) {
	ts := testutil.SetupTestStore(t)
	m := newModel(context.Background(), ts.Store, defaultConfig())
	m = settle(t, m, m.Init())

	for _, k := range []string{"e", "d", "t"} {
		next, cmd := m.Update(keyRunes(k))
		assert.Nil(t, cmd, k)
		assert.Equal(t, StateList, next.(Model).state, k)
	}
	assert.Contains(t, m.View(), "No assets match")
	assert.Zero(t, ts.Storage.Saves())
}

func TestCycle(t *testing.T) {
	options := []string{"all", "a", "b"}
	assert.Equal(t, "a", cycle(options, "all"))
	assert.Equal(t, "all", cycle(options, "b"))
	assert.Equal(t, "all", cycle(options, "unknown"))
}

func TestRun_RequiresStore(t *testing.T) {
	err := Run(context.Background(), nil)
	assert.ErrorIs(t, err, common.ErrMissingConfig)
}

func TestRun_QuitsOnInput(t *testing.T) {
	ts := testutil.SetupTestStore(t)
	ts.Seed(t, testutil.ScenarioFields()...)

	var out strings.Builder
	err := Run(context.Background(), ts.Store,
		WithInput(strings.NewReader("q")),
		WithOutput(&out),
		WithAltScreen(false),
	)
	require.NoError(t, err)
	assert.Len(t, ts.Store.Records(), 3)
}
