package model

// Category tags the kind of asset a record tracks.
type Category string

const (
	// CategoryCrypto marks crypto assets.
	CategoryCrypto Category = "crypto"
	// CategoryStock marks stocks and ETFs.
	CategoryStock Category = "stock"
	// CategoryLoan marks loans.
	CategoryLoan Category = "loan"
	// CategorySaving marks savings.
	CategorySaving Category = "saving"
	// CategoryOther is the default category.
	CategoryOther Category = "other"
)

// Categories lists the known categories in display order.
var Categories = []Category{
	CategoryCrypto,
	CategoryStock,
	CategoryLoan,
	CategorySaving,
	CategoryOther,
}

// IsKnown reports whether c is one of the predefined categories.
// Unknown categories are still stored as-is.
func (c Category) IsKnown() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Priority is the risk level of an asset.
type Priority string

const (
	// PriorityHigh is high risk.
	PriorityHigh Priority = "high"
	// PriorityMedium is medium risk and the default.
	PriorityMedium Priority = "medium"
	// PriorityLow is low risk.
	PriorityLow Priority = "low"
)

// Priorities lists the known priorities from highest to lowest risk.
var Priorities = []Priority{
	PriorityHigh,
	PriorityMedium,
	PriorityLow,
}

// IsKnown reports whether p is one of the predefined priorities.
func (p Priority) IsKnown() bool {
	for _, known := range Priorities {
		if p == known {
			return true
		}
	}
	return false
}
