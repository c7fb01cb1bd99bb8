package main

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"testing"

	"github.com/Veraticus/asset-ledger/internal/common"
	"github.com/Veraticus/asset-ledger/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ledger runs commands against a file store in a temporary directory.
type ledger struct {
	t    *testing.T
	path string
}

func newLedger(t *testing.T) *ledger {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Cleanup(func() {
		viper.Reset()
		cfgFile = ""
	})
	return &ledger{t: t, path: t.TempDir()}
}

// run executes the CLI with stdin as input and returns its output.
func (l *ledger) run(stdin string, args ...string) (string, error) {
	l.t.Helper()
	viper.Reset()
	cfgFile = ""

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--storage", "file", "--path", l.path}, args...))

	err := root.Execute()
	return out.String(), err
}

func (l *ledger) mustRun(args ...string) string {
	l.t.Helper()
	out, err := l.run("", args...)
	require.NoError(l.t, err, out)
	return out
}

func (l *ledger) records() []model.Record {
	l.t.Helper()
	var records []model.Record
	require.NoError(l.t, json.Unmarshal([]byte(l.mustRun("list", "--format", "json")), &records))
	return records
}

// seed adds BTC, an inactive Treasury Bond and Vanguard S&P 500, and returns
// their ids as strings.
func (l *ledger) seed() (btc, bond, stock string) {
	l.t.Helper()
	l.mustRun("add", "-n", "BTC", "-c", "crypto", "-p", "high", "-a", "100", "-y", "4.5")
	l.mustRun("add", "-n", "Treasury Bond", "-d", "10 year", "-c", "loan", "-p", "low", "-a", "50")
	l.mustRun("add", "-n", "Vanguard S&P 500", "-c", "stock", "-a", "1000")

	records := l.records()
	require.Len(l.t, records, 3)
	btc, bond, stock = idArg(records[0]), idArg(records[1]), idArg(records[2])
	l.mustRun("toggle", bond)
	return btc, bond, stock
}

func idArg(r model.Record) string {
	return strconv.FormatInt(r.ID, 10)
}

func TestAdd(t *testing.T) {
	l := newLedger(t)

	out := l.mustRun("add", "--name", "  BTC  ", "--category", "Crypto", "--amount", "100", "--yield", "4.5")
	assert.Contains(t, out, `Asset created: "BTC"`)
	assert.Contains(t, out, "$100.00")

	records := l.records()
	require.Len(t, records, 1)
	assert.Equal(t, "BTC", records[0].Name)
	assert.Equal(t, model.CategoryCrypto, records[0].Category)
	assert.Equal(t, model.PriorityMedium, records[0].Priority)
	assert.Equal(t, 4.5, records[0].Yield.Float64())
	assert.True(t, records[0].Active)
}

func TestAdd_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantMsg string
	}{
		{name: "missing name", args: []string{"add"}, wantMsg: "asset name is required"},
		{name: "blank name", args: []string{"add", "-n", "   "}, wantMsg: "asset name is required"},
		{name: "unknown category", args: []string{"add", "-n", "x", "-c", "art"}, wantMsg: `unknown category "art"`},
		{name: "unknown priority", args: []string{"add", "-n", "x", "-p", "urgent"}, wantMsg: `unknown priority "urgent"`},
		{name: "bad amount", args: []string{"add", "-n", "x", "-a", "lots"}, wantMsg: `invalid amount "lots"`},
		{name: "bad yield", args: []string{"add", "-n", "x", "-y", "4.5.1"}, wantMsg: `invalid yield "4.5.1"`},
		{name: "infinite amount", args: []string{"add", "-n", "x", "-a", "inf"}, wantMsg: `invalid amount "inf"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newLedger(t)

			_, err := l.run("", tt.args...)
			require.Error(t, err)

			var userErr *common.UserError
			require.ErrorAs(t, err, &userErr)
			assert.Contains(t, err.Error(), tt.wantMsg)
			assert.Empty(t, l.records(), "nothing saved")
		})
	}
}

func TestList(t *testing.T) {
	l := newLedger(t)
	l.seed()

	out := l.mustRun("list")
	assert.Contains(t, out, "Assets (3)")
	assert.Contains(t, out, "Vanguard S&P 500")
	assert.Contains(t, out, "$1,000.00")

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{name: "active", args: []string{"-s", "active"}, want: []string{"BTC", "Vanguard S&P 500"}},
		{name: "inactive", args: []string{"--status", "inactive"}, want: []string{"Treasury Bond"}},
		{name: "category", args: []string{"-c", "stock"}, want: []string{"Vanguard S&P 500"}},
		{name: "priority", args: []string{"-p", "low"}, want: []string{"Treasury Bond"}},
		{name: "search description", args: []string{"-q", "YEAR"}, want: []string{"Treasury Bond"}},
		{name: "no match", args: []string{"-c", "saving"}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var records []model.Record
			out := l.mustRun(append([]string{"ls", "-o", "json"}, tt.args...)...)
			require.NoError(t, json.Unmarshal([]byte(out), &records))

			names := make([]string, 0, len(records))
			for _, r := range records {
				names = append(names, r.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestList_InvalidFlags(t *testing.T) {
	l := newLedger(t)

	_, err := l.run("", "list", "--status", "paused")
	assert.Error(t, err)

	_, err = l.run("", "list", "--format", "yaml")
	assert.ErrorContains(t, err, `invalid format "yaml"`)
}

func TestList_Empty(t *testing.T) {
	l := newLedger(t)
	assert.Contains(t, l.mustRun("list"), "No assets found")
}

func TestEdit(t *testing.T) {
	l := newLedger(t)
	btc, _, _ := l.seed()

	out := l.mustRun("edit", btc, "--amount", "250.5", "--description", "cold wallet")
	assert.Contains(t, out, "Asset "+btc+` updated: "BTC"`)

	rec := l.records()[0]
	assert.Equal(t, 250.5, rec.Amount.Float64())
	assert.Equal(t, "cold wallet", rec.Description)
	assert.Equal(t, model.PriorityHigh, rec.Priority, "unset flags keep their value")
	require.NotNil(t, rec.UpdatedAt)

	l.mustRun("edit", btc, "--inactive")
	assert.False(t, l.records()[0].Active)
}

func TestEdit_Errors(t *testing.T) {
	l := newLedger(t)
	btc, _, _ := l.seed()

	_, err := l.run("", "edit", btc)
	assert.ErrorContains(t, err, "nothing to change")

	_, err = l.run("", "edit", "99", "-n", "ghost")
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = l.run("", "edit", "abc", "-n", "x")
	assert.ErrorContains(t, err, `invalid asset ID "abc"`)

	_, err = l.run("", "edit", btc, "--active", "--inactive")
	assert.Error(t, err)

	assert.Len(t, l.records(), 3)
}

func TestToggle(t *testing.T) {
	l := newLedger(t)
	_, bond, _ := l.seed()

	out := l.mustRun("toggle", bond)
	assert.Contains(t, out, `Asset "Treasury Bond" is now`)
	assert.True(t, l.records()[1].Active)

	_, err := l.run("", "toggle", "42")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestDelete(t *testing.T) {
	t.Run("confirmed", func(t *testing.T) {
		l := newLedger(t)
		btc, _, _ := l.seed()

		out, err := l.run("y\n", "delete", btc)
		require.NoError(t, err)
		assert.Contains(t, out, "Asset #"+btc)
		assert.Contains(t, out, "Asset "+btc+" deleted")
		assert.Len(t, l.records(), 2)
	})

	t.Run("declined", func(t *testing.T) {
		l := newLedger(t)
		btc, _, _ := l.seed()

		out, err := l.run("n\n", "delete", btc)
		require.NoError(t, err)
		assert.Contains(t, out, "Operation canceled.")
		assert.Len(t, l.records(), 3)
	})

	t.Run("no input", func(t *testing.T) {
		l := newLedger(t)
		btc, _, _ := l.seed()

		_, err := l.run("", "delete", btc)
		require.NoError(t, err)
		assert.Len(t, l.records(), 3)
	})

	t.Run("forced", func(t *testing.T) {
		l := newLedger(t)
		_, _, stock := l.seed()

		l.mustRun("delete", stock, "--force")
		records := l.records()
		require.Len(t, records, 2)
		assert.Equal(t, "Treasury Bond", records[1].Name)
	})

	t.Run("unknown id", func(t *testing.T) {
		l := newLedger(t)

		_, err := l.run("", "delete", "7", "-f")
		assert.ErrorIs(t, err, common.ErrNotFound)
	})
}

func TestClearInactive(t *testing.T) {
	l := newLedger(t)
	l.seed()

	out := l.mustRun("clear-inactive", "--force")
	assert.Contains(t, out, "Cleared 1 inactive assets, 2 remaining")
	assert.Len(t, l.records(), 2)

	out = l.mustRun("clear-inactive")
	assert.Contains(t, out, "No inactive assets to clear")
}

func TestStats(t *testing.T) {
	l := newLedger(t)
	l.seed()

	out := l.mustRun("stats")
	assert.Contains(t, out, "Total capital")
	assert.Contains(t, out, "$1,150.00")

	var stats struct {
		Total        int            `json:"total"`
		Active       int            `json:"active"`
		Inactive     int            `json:"inactive"`
		ByCategory   map[string]int `json:"byCategory"`
		TotalCapital float64        `json:"totalCapital"`
	}
	require.NoError(t, json.Unmarshal([]byte(l.mustRun("stats", "-o", "json")), &stats))
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.Active)
	assert.Equal(t, 1, stats.Inactive)
	assert.Equal(t, map[string]int{"crypto": 1, "loan": 1, "stock": 1}, stats.ByCategory)
	assert.Equal(t, 1150.0, stats.TotalCapital)
}

func TestShow(t *testing.T) {
	l := newLedger(t)
	_, bond, _ := l.seed()

	out := l.mustRun("show", bond)
	assert.Contains(t, out, "Asset #"+bond)
	assert.Contains(t, out, "10 year")

	var r model.Record
	require.NoError(t, json.Unmarshal([]byte(l.mustRun("show", bond, "-o", "json")), &r))
	assert.Equal(t, "Treasury Bond", r.Name)

	_, err := l.run("", "show", "9")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestStorageFlags(t *testing.T) {
	l := newLedger(t)

	_, err := l.run("", "list", "--storage", "floppy")
	assert.ErrorIs(t, err, common.ErrInvalidConfig)

	// Slots are independent within one directory.
	l.mustRun("add", "-n", "BTC", "--slot", "other")
	assert.Empty(t, l.records())
}

func TestVersion(t *testing.T) {
	l := newLedger(t)
	assert.Equal(t, "assets version dev\n", l.mustRun("version"))
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		raw     string
		want    float64
		wantErr bool
	}{
		{raw: "", want: 0},
		{raw: " 42 ", want: 42},
		{raw: "2500.50", want: 2500.5},
		{raw: "-3", want: -3},
		{raw: "abc", wantErr: true},
		{raw: "1e3", want: 1000},
		{raw: "inf", wantErr: true},
		{raw: "-Inf", wantErr: true},
		{raw: "NaN", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := parseNumber(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFieldsFromFlags_OnlyChanged(t *testing.T) {
	cmd := &cobra.Command{Use: "x"}
	addRecordFlags(cmd)
	require.NoError(t, cmd.ParseFlags([]string{"--priority", " LOW ", "--yield", "3"}))

	fields, err := fieldsFromFlags(cmd)
	require.NoError(t, err)

	assert.Nil(t, fields.Name)
	assert.Nil(t, fields.Amount)
	require.NotNil(t, fields.Priority)
	assert.Equal(t, model.PriorityLow, *fields.Priority)
	require.NotNil(t, fields.Yield)
	assert.Equal(t, 3.0, *fields.Yield)
}
