package tui

import "github.com/Veraticus/asset-ledger/internal/model"

// recordsChangedMsg carries the store's list after a load or mutation.
type recordsChangedMsg struct {
	status  string
	records []model.Record
}

// Error handling.
type errorMsg struct {
	err     error
	context string
}

// confirmAction is an operation waiting for a yes/no answer.
type confirmAction int

const (
	confirmDelete confirmAction = iota
	confirmClearInactive
)

// confirmation describes the pending prompt.
type confirmation struct {
	prompt string
	action confirmAction
	id     int64
}
