package ports

import (
	"context"
	"io"
	"time"
)

// OrderFilter narrows the orders returned by reads. Empty fields match
// everything; From/To are inclusive dates in 2006-01-02 form and are ignored
// when unparseable, mirroring the dashboard's forgiving filter controls.
type OrderFilter struct {
	User   string
	Client string
	Status string
	From   string
	To     string
}

// OrderView is one order as presented: the sheet row it came from plus the
// status derived at read time. Row is stale after any mutating call.
type OrderView struct {
	Row       int       `json:"row"`
	Timestamp time.Time `json:"timestamp"`
	User      string    `json:"user"`
	Client    string    `json:"client"`
	Amount    float64   `json:"amount"`
	ProfitPct float64   `json:"profit_pct"`
	ProfitAmt float64   `json:"profit_amt"`
	Status    string    `json:"status"`
}

// SubmitOrderInput carries a new order. Timestamp and ProfitAmt are derived
// server-side.
type SubmitOrderInput struct {
	User      string
	Client    string
	Amount    float64
	ProfitPct float64
}

// OrderPatch is a partial edit; nil fields are left unchanged. ProfitAmt is
// always recomputed from the merged Amount and ProfitPct.
type OrderPatch struct {
	Client    *string
	Amount    *float64
	ProfitPct *float64
}

// OrderSummary aggregates the filtered order set for the dashboard.
type OrderSummary struct {
	TotalOrders    int                `json:"total_orders"`
	TotalAmount    float64            `json:"total_amount"`
	TotalProfit    float64            `json:"total_profit"`
	UniqueClients  int                `json:"unique_clients"`
	UniqueUsers    int                `json:"unique_users"`
	AmountByClient map[string]float64 `json:"amount_by_client"`
	AmountByUser   map[string]float64 `json:"amount_by_user"`
}

// OrderService implements order entry and the row-addressed admin mutations.
type OrderService interface {
	List(ctx context.Context, f OrderFilter) ([]OrderView, error)
	Submit(ctx context.Context, in SubmitOrderInput) (*OrderView, error)
	// Edit merges the patch into row's current record, recomputes derived
	// fields, and records an EDIT_ORDER audit entry. The reason must be
	// non-empty.
	Edit(ctx context.Context, actor string, row int, patch OrderPatch, reason string) (*OrderView, error)
	// Remove deletes the row, shifting later rows up; every previously
	// returned row index after it is stale. The reason must be non-empty.
	Remove(ctx context.Context, actor string, row int, reason string) error
	Summary(ctx context.Context, f OrderFilter) (*OrderSummary, error)
	// ExportCSV streams the filtered view as CSV in schema column order.
	ExportCSV(ctx context.Context, f OrderFilter, w io.Writer) error
}
