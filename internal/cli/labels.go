package cli

import (
	"github.com/Veraticus/asset-ledger/internal/model"
	"github.com/charmbracelet/lipgloss"
)

// FallbackIcon marks categories without display metadata.
const FallbackIcon = "📌"

// CategoryInfo is the display metadata for a category.
type CategoryInfo struct {
	Label string
	Icon  string
}

// PriorityInfo is the display metadata for a priority.
type PriorityInfo struct {
	Label string
	Color lipgloss.Color
}

// CategoryLabels maps each known category to its display metadata.
var CategoryLabels = map[model.Category]CategoryInfo{
	model.CategoryCrypto: {Label: "Crypto asset", Icon: "🪙"},
	model.CategoryStock:  {Label: "Stock / ETF", Icon: "📈"},
	model.CategoryLoan:   {Label: "Loan", Icon: "🏦"},
	model.CategorySaving: {Label: "Savings", Icon: "💰"},
	model.CategoryOther:  {Label: "Other", Icon: "📑"},
}

// PriorityLabels maps each known priority to its display metadata.
var PriorityLabels = map[model.Priority]PriorityInfo{
	model.PriorityHigh:   {Label: "High risk", Color: lipgloss.Color("#dc2626")},
	model.PriorityMedium: {Label: "Medium risk", Color: lipgloss.Color("#d97706")},
	model.PriorityLow:    {Label: "Low risk", Color: lipgloss.Color("#059669")},
}

// CategoryIcon returns the icon for c, or FallbackIcon when unknown.
func CategoryIcon(c model.Category) string {
	if info, ok := CategoryLabels[c]; ok {
		return info.Icon
	}
	return FallbackIcon
}

// CategoryLabel returns "<icon> <label>", using the raw tag for unknown categories.
func CategoryLabel(c model.Category) string {
	if info, ok := CategoryLabels[c]; ok {
		return info.Icon + " " + info.Label
	}
	if c == "" {
		return FallbackIcon + " -"
	}
	return FallbackIcon + " " + string(c)
}

// PriorityLabel renders the priority in its color. Unknown priorities are
// shown as their raw tag.
func PriorityLabel(p model.Priority) string {
	info, ok := PriorityLabels[p]
	if !ok {
		if p == "" {
			return "-"
		}
		return string(p)
	}
	return lipgloss.NewStyle().Foreground(info.Color).Render(info.Label)
}
