package tui

import (
	"fmt"

	"github.com/Veraticus/asset-ledger/internal/model"
	"github.com/Veraticus/asset-ledger/internal/tui/components"
	tea "github.com/charmbracelet/bubbletea"
)

// loadRecords reads the current list from the store.
func (m Model) loadRecords() tea.Cmd {
	st := m.store
	return func() tea.Msg {
		return recordsChangedMsg{records: st.Records()}
	}
}

// saveRecord creates or updates an asset from a submitted form.
func (m Model) saveRecord(msg components.FormSubmittedMsg) tea.Cmd {
	ctx, st := m.ctx, m.store
	return func() tea.Msg {
		var (
			records []model.Record
			err     error
			status  string
		)
		if !msg.Edit {
			records, err = st.Create(ctx, msg.Fields)
			status = fmt.Sprintf("Added %q", *msg.Fields.Name)
		} else {
			records, err = st.Update(ctx, msg.ID, msg.Fields)
			status = fmt.Sprintf("Saved %q", *msg.Fields.Name)
		}
		if err != nil {
			return errorMsg{err: err, context: "save asset"}
		}
		return recordsChangedMsg{records: records, status: status}
	}
}

// toggleRecord flips the active flag of id.
func (m Model) toggleRecord(id int64) tea.Cmd {
	ctx, st := m.ctx, m.store
	return func() tea.Msg {
		records, err := st.ToggleActive(ctx, id)
		if err != nil {
			return errorMsg{err: err, context: "toggle asset"}
		}
		return recordsChangedMsg{records: records}
	}
}

// deleteRecord removes id.
func (m Model) deleteRecord(id int64) tea.Cmd {
	ctx, st := m.ctx, m.store
	return func() tea.Msg {
		records, err := st.Delete(ctx, id)
		if err != nil {
			return errorMsg{err: err, context: "delete asset"}
		}
		return recordsChangedMsg{records: records, status: "Asset deleted"}
	}
}

// clearInactive removes every inactive asset.
func (m Model) clearInactive() tea.Cmd {
	ctx, st := m.ctx, m.store
	return func() tea.Msg {
		before := len(st.Records())
		records, err := st.ClearInactive(ctx)
		if err != nil {
			return errorMsg{err: err, context: "clear inactive assets"}
		}
		return recordsChangedMsg{
			records: records,
			status:  fmt.Sprintf("Cleared %d inactive assets", before-len(records)),
		}
	}
}
