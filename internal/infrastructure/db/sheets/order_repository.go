package sheets

import (
	"context"
	"strconv"
	"time"

	"github.com/teamorders/orderdesk/internal/core/domain"
	"github.com/teamorders/orderdesk/internal/core/ports"
)

// timestampLayout is the instant format stored in the sheet.
const timestampLayout = "2006-01-02 15:04:05"

// OrderRepository persists orders in the Orders table. The Status column is
// written for people reading the sheet directly but ignored on load; status
// is always recomputed from the timestamp at read time.
type OrderRepository struct {
	table *Table
}

func NewOrderRepository(table *Table) *OrderRepository {
	return &OrderRepository{table: table}
}

func (r *OrderRepository) LoadAll(ctx context.Context) ([]ports.OrderRow, error) {
	rows, err := r.table.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]ports.OrderRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, ports.OrderRow{
			Row: row.Index,
			Order: domain.Order{
				Timestamp: parseTimestamp(row.Fields["Timestamp"]),
				User:      row.Fields["User"],
				Client:    row.Fields["Client"],
				Amount:    Float(row.Fields, "Amount"),
				ProfitPct: Float(row.Fields, "ProfitPct"),
				ProfitAmt: Float(row.Fields, "ProfitAmt"),
			},
		})
	}
	return out, nil
}

func (r *OrderRepository) Append(ctx context.Context, o domain.Order) error {
	return r.table.Append(ctx, orderFields(o))
}

func (r *OrderRepository) Update(ctx context.Context, row int, o domain.Order) error {
	return r.table.Update(ctx, row, orderFields(o))
}

func (r *OrderRepository) Delete(ctx context.Context, row int) error {
	return r.table.Delete(ctx, row)
}

func orderFields(o domain.Order) map[string]string {
	return map[string]string{
		"Timestamp": o.Timestamp.Format(timestampLayout),
		"User":      o.User,
		"Client":    o.Client,
		"Amount":    strconv.FormatFloat(o.Amount, 'f', 2, 64),
		"ProfitPct": strconv.FormatFloat(o.ProfitPct, 'f', -1, 64),
		"ProfitAmt": strconv.FormatFloat(o.ProfitAmt, 'f', 2, 64),
		// Informational only; every read derives status fresh.
		"Status": string(o.StatusAt(time.Now().UTC())),
	}
}

// parseTimestamp degrades a malformed instant to the zero time instead of
// erroring, matching the table's coercion rules.
func parseTimestamp(s string) time.Time {
	t, err := time.ParseInLocation(timestampLayout, s, time.UTC)
	if err != nil {
		return time.Time{}
	}
	return t
}
