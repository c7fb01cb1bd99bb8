package query

import (
	"sort"

	"github.com/Veraticus/asset-ledger/internal/model"
	"github.com/shopspring/decimal"
)

// Stats is an aggregate snapshot of a record list.
type Stats struct {
	ByCategory   map[model.Category]int `json:"byCategory"`
	Total        int                    `json:"total"`
	Active       int                    `json:"active"`
	Inactive     int                    `json:"inactive"`
	TotalCapital float64                `json:"totalCapital"`
}

// CategoryCount pairs a category with its record count.
type CategoryCount struct {
	Category model.Category
	Count    int
}

// Aggregate computes Stats in a single pass. ByCategory only holds categories
// present in records, and non-finite amounts contribute 0 to TotalCapital.
// Amounts are summed as decimals so the result does not depend on order.
func Aggregate(records []model.Record) Stats {
	stats := Stats{
		ByCategory: make(map[model.Category]int),
	}
	capital := decimal.Zero

	for _, r := range records {
		stats.Total++
		if r.Active {
			stats.Active++
		} else {
			stats.Inactive++
		}
		stats.ByCategory[r.Category]++
		capital = capital.Add(decimal.NewFromFloat(r.Amount.Float64()))
	}

	stats.TotalCapital = capital.InexactFloat64()
	return stats
}

// SortedCategories returns the per-category counts ordered by count
// (descending), then by category name.
func (s Stats) SortedCategories() []CategoryCount {
	out := make([]CategoryCount, 0, len(s.ByCategory))
	for cat, count := range s.ByCategory {
		out = append(out, CategoryCount{Category: cat, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Category < out[j].Category
	})
	return out
}
