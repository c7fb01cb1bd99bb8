// Package model defines the core domain types for asset-ledger.
package model

import "time"

// Record represents a single tracked financial asset.
type Record struct {
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Category    Category   `json:"category"`
	Priority    Priority   `json:"priority"`
	ID          int64      `json:"id"`
	Amount      Number     `json:"amount"`
	Yield       Number     `json:"yield"`
	Active      bool       `json:"active"`
}

// Fields is a partial record. Nil fields are left untouched by Apply and take
// their defaults in NewRecord.
type Fields struct {
	Active      *bool
	Name        *string
	Description *string
	Category    *Category
	Priority    *Priority
	Amount      *float64
	Yield       *float64
}

// Ptr returns a pointer to v. Handy for building Fields literals.
func Ptr[T any](v T) *T {
	return &v
}

// IsEmpty reports whether no field is set.
func (f Fields) IsEmpty() bool {
	return f.Active == nil &&
		f.Name == nil &&
		f.Description == nil &&
		f.Category == nil &&
		f.Priority == nil &&
		f.Amount == nil &&
		f.Yield == nil
}

// NewRecord builds a record from the default template and overlays f.
func NewRecord(id int64, now time.Time, f Fields) Record {
	r := Record{
		ID:        id,
		Active:    true,
		CreatedAt: now,
		Category:  CategoryOther,
		Priority:  PriorityMedium,
	}
	return r.Apply(f)
}

// Apply returns a copy of r with every non-nil field of f replacing the
// current value. ID and CreatedAt are never touched.
func (r Record) Apply(f Fields) Record {
	if f.Active != nil {
		r.Active = *f.Active
	}
	if f.Name != nil {
		r.Name = *f.Name
	}
	if f.Description != nil {
		r.Description = *f.Description
	}
	if f.Category != nil {
		r.Category = *f.Category
	}
	if f.Priority != nil {
		r.Priority = *f.Priority
	}
	if f.Amount != nil {
		r.Amount = Number(*f.Amount)
	}
	if f.Yield != nil {
		r.Yield = Number(*f.Yield)
	}
	return r
}

// Touch returns a copy of r with UpdatedAt set to now.
func (r Record) Touch(now time.Time) Record {
	r.UpdatedAt = &now
	return r
}
