// Package query computes read-only views over a record list: filtered
// subsets and aggregate statistics. Nothing here mutates its input.
package query

import (
	"fmt"
	"strings"

	"github.com/Veraticus/asset-ledger/internal/model"
)

// All is the passthrough sentinel for status, category and priority.
const All = "all"

// Status selects records by their active flag.
type Status string

// Supported statuses.
const (
	StatusAll      Status = All
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// ParseStatus validates a user supplied status. Empty means all.
func ParseStatus(s string) (Status, error) {
	switch status := Status(strings.ToLower(strings.TrimSpace(s))); status {
	case "", StatusAll:
		return StatusAll, nil
	case StatusActive, StatusInactive:
		return status, nil
	default:
		return "", fmt.Errorf("invalid status %q: use all, active or inactive", s)
	}
}

// Criteria holds the independent filter predicates. Zero values and "all"
// let everything through.
type Criteria struct {
	Status   Status
	Category string
	Priority string
	Search   string
}

// IsZero reports whether c lets every record through.
func (c Criteria) IsZero() bool {
	return c.statusPasses() && passes(c.Category) && passes(c.Priority) && c.Search == ""
}

// Filter returns the records matching every predicate in c, in input order.
// The result is always a new slice.
func Filter(records []model.Record, c Criteria) []model.Record {
	term := strings.ToLower(c.Search)

	out := make([]model.Record, 0, len(records))
	for _, r := range records {
		if c.matchStatus(r) &&
			matchTag(c.Category, string(r.Category)) &&
			matchTag(c.Priority, string(r.Priority)) &&
			matchSearch(term, r) {
			out = append(out, r)
		}
	}
	return out
}

func (c Criteria) statusPasses() bool {
	return c.Status != StatusActive && c.Status != StatusInactive
}

// matchStatus lets unknown statuses through, like "all".
func (c Criteria) matchStatus(r model.Record) bool {
	switch c.Status {
	case StatusActive:
		return r.Active
	case StatusInactive:
		return !r.Active
	default:
		return true
	}
}

func passes(tag string) bool {
	return tag == "" || tag == All
}

func matchTag(want, got string) bool {
	return passes(want) || want == got
}

// matchSearch is a case-insensitive substring match on name or description.
func matchSearch(term string, r model.Record) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(r.Name), term) ||
		strings.Contains(strings.ToLower(r.Description), term)
}
