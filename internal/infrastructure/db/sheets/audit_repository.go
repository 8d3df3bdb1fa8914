package sheets

import (
	"context"
	"strconv"

	"github.com/teamorders/orderdesk/internal/core/domain"
)

// AuditRepository persists the append-only audit trail in the AuditLog table.
// It deliberately exposes no update or delete.
type AuditRepository struct {
	table *Table
}

func NewAuditRepository(table *Table) *AuditRepository {
	return &AuditRepository{table: table}
}

func (r *AuditRepository) LoadAll(ctx context.Context) ([]domain.AuditEntry, error) {
	rows, err := r.table.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.AuditEntry, 0, len(rows))
	for _, row := range rows {
		reason := row.Fields["Reason"]
		if reason == "-" {
			reason = ""
		}
		sheetRow, _ := strconv.Atoi(row.Fields["SheetRow"])
		out = append(out, domain.AuditEntry{
			At:          parseTimestamp(row.Fields["At"]),
			Actor:       row.Fields["Actor"],
			Action:      domain.AuditAction(row.Fields["Action"]),
			TargetSheet: row.Fields["TargetSheet"],
			SheetRow:    sheetRow,
			Reason:      reason,
			OldJSON:     row.Fields["OldJSON"],
			NewJSON:     row.Fields["NewJSON"],
		})
	}
	return out, nil
}

func (r *AuditRepository) Append(ctx context.Context, e domain.AuditEntry) error {
	reason := e.Reason
	if reason == "" {
		reason = "-"
	}
	sheetRow := ""
	if e.SheetRow > 0 {
		sheetRow = strconv.Itoa(e.SheetRow)
	}
	return r.table.Append(ctx, map[string]string{
		"At":          e.At.Format(timestampLayout),
		"Actor":       e.Actor,
		"Action":      string(e.Action),
		"TargetSheet": e.TargetSheet,
		"SheetRow":    sheetRow,
		"Reason":      reason,
		"OldJSON":     e.OldJSON,
		"NewJSON":     e.NewJSON,
	})
}
