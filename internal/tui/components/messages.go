package components

import "github.com/Veraticus/asset-ledger/internal/model"

// FormSubmittedMsg carries a validated form. Edit is set when ID names an
// existing asset, which may legitimately be zero.
type FormSubmittedMsg struct {
	Fields model.Fields
	ID     int64
	Edit   bool
}

// FormCancelledMsg is sent when the user leaves the form without saving.
type FormCancelledMsg struct{}
