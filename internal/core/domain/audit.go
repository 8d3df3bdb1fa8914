package domain

import "time"

// AuditAction identifies the kind of mutating admin action being recorded.
type AuditAction string

const (
	ActionEditOrder    AuditAction = "EDIT_ORDER"
	ActionDeleteOrder  AuditAction = "DELETE_ORDER"
	ActionEditClient   AuditAction = "EDIT_CLIENT"
	ActionDeleteClient AuditAction = "DELETE_CLIENT"
	ActionSavePreset   AuditAction = "SAVE_PRESET"
	ActionDeletePreset AuditAction = "DELETE_PRESET"
	ActionAddUser      AuditAction = "ADD_USER"
	ActionUpdateUser   AuditAction = "UPDATE_USER"
)

// AuditEntry is one append-only record of a mutating action, with before and
// after snapshots serialised as JSON. Entries are never edited or deleted.
type AuditEntry struct {
	At          time.Time   `json:"at"`
	Actor       string      `json:"actor"`
	Action      AuditAction `json:"action"`
	TargetSheet string      `json:"target_sheet"`
	SheetRow    int         `json:"sheet_row,omitempty"`
	Reason      string      `json:"reason,omitempty"`
	OldJSON     string      `json:"old_json,omitempty"`
	NewJSON     string      `json:"new_json,omitempty"`
}
