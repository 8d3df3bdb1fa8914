package sheets

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/teamorders/orderdesk/internal/core/domain"
)

func newOrdersTable(t *testing.T, dataRows ...[]string) *Table {
	t.Helper()
	doc := &fakeSpreadsheet{}
	ws, _ := doc.Worksheet(context.Background(), "Orders")
	_ = ws.AppendRow(context.Background(), OrdersSchema.Columns)
	for _, r := range dataRows {
		_ = ws.AppendRow(context.Background(), r)
	}
	table, err := OpenTable(context.Background(), doc, OrdersSchema, false, nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("OpenTable returned error: %v", err)
	}
	return table
}

func TestOrderRepository_LoadAll_Coercion(t *testing.T) {
	repo := NewOrderRepository(newOrdersTable(t,
		[]string{"2026-03-01 10:00:00", "wolf1", "Acme", "$1,500.00", "12.5", "187.50", "In Process"},
		[]string{"not a timestamp", "wolf2", "Globex", "oops", "", "x", ""},
	))

	rows, err := repo.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("LoadAll returned error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	good := rows[0].Order
	want := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	if !good.Timestamp.Equal(want) {
		t.Fatalf("timestamp = %v, want %v", good.Timestamp, want)
	}
	if good.Amount != 1500 || good.ProfitPct != 12.5 || good.ProfitAmt != 187.5 {
		t.Fatalf("unexpected numeric fields: %+v", good)
	}

	// Malformed cells degrade to zero values rather than failing the load.
	bad := rows[1].Order
	if !bad.Timestamp.IsZero() {
		t.Fatalf("malformed timestamp should read as zero, got %v", bad.Timestamp)
	}
	if bad.Amount != 0 || bad.ProfitPct != 0 || bad.ProfitAmt != 0 {
		t.Fatalf("malformed numbers should read as zero: %+v", bad)
	}
	if bad.User != "wolf2" {
		t.Fatalf("text fields must survive coercion: %+v", bad)
	}
}

func TestOrderRepository_AppendThenLoad(t *testing.T) {
	repo := NewOrderRepository(newOrdersTable(t))

	order := domain.Order{
		Timestamp: time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC),
		User:      "wolf1",
		Client:    "Acme",
		Amount:    1500,
		ProfitPct: 12.5,
		ProfitAmt: 187.5,
	}
	if err := repo.Append(context.Background(), order); err != nil {
		t.Fatalf("Append returned error: %v", err)
	}

	rows, err := repo.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("LoadAll returned error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].Row != 2 {
		t.Fatalf("first data row = %d, want 2", rows[0].Row)
	}
	got := rows[0].Order
	if !got.Timestamp.Equal(order.Timestamp) || got.Client != "Acme" || got.Amount != 1500 {
		t.Fatalf("round-tripped order differs: %+v", got)
	}
}
