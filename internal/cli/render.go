package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/Veraticus/asset-ledger/internal/model"
	"github.com/Veraticus/asset-ledger/internal/query"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// DisplayCurrency is the currency amounts are rendered in.
const DisplayCurrency = money.USD

// FormatAmount renders a numeric amount as grouped currency, e.g. "$2,500.50".
// Non-finite values render as zero.
func FormatAmount(amount float64) string {
	f := money.New(0, DisplayCurrency).Currency().Formatter()
	minor := decimal.NewFromFloat(model.Number(amount).Float64()).
		Shift(int32(f.Fraction)).
		Round(0)
	if minor.GreaterThan(maxMinorUnits) || minor.LessThan(minMinorUnits) {
		return formatLargeAmount(f, minor)
	}
	return f.Format(minor.IntPart())
}

var (
	maxMinorUnits = decimal.NewFromInt(math.MaxInt64)
	minMinorUnits = decimal.NewFromInt(math.MinInt64)
)

// formatLargeAmount lays out amounts past the int64 range of go-money the
// same way its formatter does.
func formatLargeAmount(f *money.Formatter, minor decimal.Decimal) string {
	negative := minor.IsNegative()
	digits := minor.Abs().Shift(-int32(f.Fraction)).StringFixed(int32(f.Fraction))
	whole, frac, _ := strings.Cut(digits, ".")

	var grouped strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			grouped.WriteString(f.Thousand)
		}
		grouped.WriteRune(r)
	}
	out := grouped.String()
	if frac != "" {
		out += f.Decimal + frac
	}

	out = strings.Replace(f.Template, "1", out, 1)
	out = strings.Replace(out, "$", f.Grapheme, 1)
	if negative {
		out = "-" + out
	}
	return out
}

// FormatYield renders a yield percentage, e.g. "4.5%".
func FormatYield(yield float64) string {
	return strconv.FormatFloat(model.Number(yield).Float64(), 'f', -1, 64) + "%"
}

// FormatDate renders a timestamp as "02 Jan", or "N/A" when absent.
func FormatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "N/A"
	}
	return t.Local().Format("02 Jan")
}

// FormatStatus renders the active flag.
func FormatStatus(active bool) string {
	if active {
		return SuccessStyle.Render("active")
	}
	return SubtleStyle.Render("inactive")
}

// RenderRecords writes records as an aligned table. An empty list prints a
// hint instead of an empty table.
func RenderRecords(w io.Writer, records []model.Record) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, FormatInfo("No assets found"))
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	columns := []string{"ID", "Name", "Amount", "Yield", "Category", "Priority", "Status", "Created"}
	header := make([]string, len(columns))
	separator := make([]string, len(columns))
	for i, col := range columns {
		header[i] = TableHeaderStyle.Render(col)
		separator[i] = strings.Repeat("─", len(col))
	}
	if _, err := fmt.Fprintln(tw, strings.Join(header, "\t")); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if _, err := fmt.Fprintln(tw, strings.Join(separator, "\t")); err != nil {
		return fmt.Errorf("failed to write separator: %w", err)
	}

	for _, r := range records {
		name := r.Name
		if !r.Active {
			name = SubtleStyle.Render(name)
		}
		createdAt := r.CreatedAt
		if _, err := fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID,
			name,
			FormatAmount(r.Amount.Float64()),
			FormatYield(r.Yield.Float64()),
			CategoryLabel(r.Category),
			PriorityLabel(r.Priority),
			FormatStatus(r.Active),
			FormatDate(&createdAt),
		); err != nil {
			return fmt.Errorf("failed to write row %d: %w", r.ID, err)
		}
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to flush table: %w", err)
	}
	return nil
}

// RenderRecord writes the full detail view of a single record.
func RenderRecord(w io.Writer, r model.Record) error {
	createdAt := r.CreatedAt
	lines := []string{
		fmt.Sprintf("%s %s", BoldStyle.Render("Name:"), r.Name),
		fmt.Sprintf("%s %s", BoldStyle.Render("Description:"), orDash(r.Description)),
		fmt.Sprintf("%s %s", BoldStyle.Render("Amount:"), FormatAmount(r.Amount.Float64())),
		fmt.Sprintf("%s %s", BoldStyle.Render("Yield:"), FormatYield(r.Yield.Float64())),
		fmt.Sprintf("%s %s", BoldStyle.Render("Category:"), CategoryLabel(r.Category)),
		fmt.Sprintf("%s %s", BoldStyle.Render("Priority:"), PriorityLabel(r.Priority)),
		fmt.Sprintf("%s %s", BoldStyle.Render("Status:"), FormatStatus(r.Active)),
		fmt.Sprintf("%s %s", BoldStyle.Render("Created:"), FormatDate(&createdAt)),
		fmt.Sprintf("%s %s", BoldStyle.Render("Updated:"), FormatDate(r.UpdatedAt)),
	}

	title := fmt.Sprintf("%s Asset #%d", CategoryIcon(r.Category), r.ID)
	_, err := fmt.Fprintln(w, RenderBox(title, strings.Join(lines, "\n")))
	return err
}

// RenderStats writes the stats summary: counters, the capital card and one
// card per category present.
func RenderStats(w io.Writer, stats query.Stats) error {
	counters := fmt.Sprintf("Total: %s  Active: %s  Inactive: %s",
		BoldStyle.Render(strconv.Itoa(stats.Total)),
		SuccessStyle.Render(strconv.Itoa(stats.Active)),
		SubtleStyle.Render(strconv.Itoa(stats.Inactive)),
	)

	cards := []string{
		statCard(CapitalIcon+" Total capital", FormatAmount(stats.TotalCapital)),
	}
	for _, cc := range stats.SortedCategories() {
		cards = append(cards, statCard(CategoryIcon(cc.Category)+" "+string(cc.Category), strconv.Itoa(cc.Count)))
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		counters,
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, cards...),
	)

	_, err := fmt.Fprintln(w, RenderBox(ChartIcon+" Portfolio", content))
	return err
}

var statCardStyle = lipgloss.NewStyle().
	Border(lipgloss.NormalBorder()).
	BorderForeground(SubtleColor).
	Padding(0, 1).
	MarginRight(1)

func statCard(title, value string) string {
	return statCardStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		SubtleStyle.Render(title),
		BoldStyle.Render(value),
	))
}

// RenderJSON writes v as indented JSON.
func RenderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode json: %w", err)
	}
	return nil
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
