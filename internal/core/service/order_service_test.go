package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/teamorders/orderdesk/internal/core/domain"
	"github.com/teamorders/orderdesk/internal/core/ports"
)

// stubOrderRepo reproduces the sheet's positional row semantics: data rows
// are numbered from 2 and deleting a row shifts every later row up.
type stubOrderRepo struct {
	orders []domain.Order
}

func (r *stubOrderRepo) LoadAll(_ context.Context) ([]ports.OrderRow, error) {
	rows := make([]ports.OrderRow, len(r.orders))
	for i, o := range r.orders {
		rows[i] = ports.OrderRow{Row: i + 2, Order: o}
	}
	return rows, nil
}

func (r *stubOrderRepo) Append(_ context.Context, o domain.Order) error {
	r.orders = append(r.orders, o)
	return nil
}

func (r *stubOrderRepo) Update(_ context.Context, row int, o domain.Order) error {
	i := row - 2
	if i < 0 || i >= len(r.orders) {
		return domain.ErrRowNotFound
	}
	r.orders[i] = o
	return nil
}

func (r *stubOrderRepo) Delete(_ context.Context, row int) error {
	i := row - 2
	if i < 0 || i >= len(r.orders) {
		return domain.ErrRowNotFound
	}
	r.orders = append(r.orders[:i], r.orders[i+1:]...)
	return nil
}

type stubClientRepo struct {
	clients []domain.Client
}

func (r *stubClientRepo) LoadAll(_ context.Context) ([]ports.ClientRow, error) {
	rows := make([]ports.ClientRow, len(r.clients))
	for i, c := range r.clients {
		rows[i] = ports.ClientRow{Row: i + 2, Client: c}
	}
	return rows, nil
}

func (r *stubClientRepo) Append(_ context.Context, c domain.Client) error {
	r.clients = append(r.clients, c)
	return nil
}

func (r *stubClientRepo) Update(_ context.Context, row int, c domain.Client) error {
	i := row - 2
	if i < 0 || i >= len(r.clients) {
		return domain.ErrRowNotFound
	}
	r.clients[i] = c
	return nil
}

func (r *stubClientRepo) Delete(_ context.Context, row int) error {
	i := row - 2
	if i < 0 || i >= len(r.clients) {
		return domain.ErrRowNotFound
	}
	r.clients = append(r.clients[:i], r.clients[i+1:]...)
	return nil
}

type stubAudit struct {
	entries []domain.AuditEntry
}

func (a *stubAudit) Record(_ context.Context, e domain.AuditEntry) {
	a.entries = append(a.entries, e)
}

func newTestOrderService(now time.Time, orders []domain.Order, clients []domain.Client) (*OrderService, *stubOrderRepo, *stubAudit) {
	repo := &stubOrderRepo{orders: orders}
	audit := &stubAudit{}
	svc := NewOrderService(repo, &stubClientRepo{clients: clients}, audit, zerolog.Nop())
	svc.now = func() time.Time { return now }
	return svc, repo, audit
}

func TestOrderService_Submit(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)
	svc, repo, _ := newTestOrderService(now, nil, []domain.Client{
		{User: "wolf1", Name: "Acme"},
	})

	view, err := svc.Submit(context.Background(), ports.SubmitOrderInput{
		User:      "wolf1",
		Client:    "Acme",
		Amount:    1500,
		ProfitPct: 12.5,
	})
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if view.Row != 2 {
		t.Fatalf("expected first data row 2, got %d", view.Row)
	}
	if view.ProfitAmt != 187.5 {
		t.Fatalf("profit amount = %v, want 187.5", view.ProfitAmt)
	}
	if !view.Timestamp.Equal(now) {
		t.Fatalf("timestamp = %v, want %v", view.Timestamp, now)
	}
	if view.Status != string(domain.StatusInProcess) {
		t.Fatalf("fresh order status = %q", view.Status)
	}
	if len(repo.orders) != 1 {
		t.Fatalf("expected 1 stored order, got %d", len(repo.orders))
	}
}

func TestOrderService_Submit_UnknownClient(t *testing.T) {
	svc, _, _ := newTestOrderService(time.Now(), nil, []domain.Client{
		{User: "wolf2", Name: "Acme"}, // belongs to a different user
	})

	_, err := svc.Submit(context.Background(), ports.SubmitOrderInput{
		User: "wolf1", Client: "Acme", Amount: 10, ProfitPct: 5,
	})
	if !errors.Is(err, domain.ErrUnknownClient) {
		t.Fatalf("expected ErrUnknownClient, got %v", err)
	}
}

func TestOrderService_Submit_EmptyClient(t *testing.T) {
	svc, _, _ := newTestOrderService(time.Now(), nil, nil)

	_, err := svc.Submit(context.Background(), ports.SubmitOrderInput{
		User: "wolf1", Client: "   ", Amount: 10, ProfitPct: 5,
	})
	if !errors.Is(err, domain.ErrClientRequired) {
		t.Fatalf("expected ErrClientRequired, got %v", err)
	}
}

func TestOrderService_Edit_RecomputesProfitAndAudits(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)
	svc, repo, audit := newTestOrderService(now, []domain.Order{
		{Timestamp: now.Add(-time.Hour), User: "wolf1", Client: "Acme", Amount: 1000, ProfitPct: 10, ProfitAmt: 100},
	}, nil)

	amount := 2000.0
	view, err := svc.Edit(context.Background(), "admin", 2, ports.OrderPatch{Amount: &amount}, "typo in amount")
	if err != nil {
		t.Fatalf("Edit returned error: %v", err)
	}
	if view.Amount != 2000 {
		t.Fatalf("amount = %v, want 2000", view.Amount)
	}
	if view.ProfitAmt != 200 {
		t.Fatalf("profit amount not recomputed: %v", view.ProfitAmt)
	}
	if repo.orders[0].ProfitAmt != 200 {
		t.Fatalf("stored profit amount = %v", repo.orders[0].ProfitAmt)
	}

	if len(audit.entries) != 1 {
		t.Fatalf("expected 1 audit entry, got %d", len(audit.entries))
	}
	e := audit.entries[0]
	if e.Action != domain.ActionEditOrder || e.Actor != "admin" || e.SheetRow != 2 {
		t.Fatalf("unexpected audit entry: %+v", e)
	}
	if e.Reason != "typo in amount" {
		t.Fatalf("audit reason = %q", e.Reason)
	}
	if !strings.Contains(e.OldJSON, `"amount":1000`) || !strings.Contains(e.NewJSON, `"amount":2000`) {
		t.Fatalf("audit snapshots missing before/after amounts: old=%s new=%s", e.OldJSON, e.NewJSON)
	}
}

func TestOrderService_Edit_ReasonRequired(t *testing.T) {
	svc, _, audit := newTestOrderService(time.Now(), []domain.Order{{User: "wolf1"}}, nil)

	if _, err := svc.Edit(context.Background(), "admin", 2, ports.OrderPatch{}, "  "); !errors.Is(err, domain.ErrReasonRequired) {
		t.Fatalf("expected ErrReasonRequired, got %v", err)
	}
	if len(audit.entries) != 0 {
		t.Fatalf("no audit entry expected for a rejected edit")
	}
}

func TestOrderService_Edit_StaleRow(t *testing.T) {
	svc, _, _ := newTestOrderService(time.Now(), []domain.Order{{User: "wolf1"}}, nil)

	// Row 5 was valid before earlier deletions; it no longer exists.
	if _, err := svc.Edit(context.Background(), "admin", 5, ports.OrderPatch{}, "fix"); !errors.Is(err, domain.ErrRowNotFound) {
		t.Fatalf("expected ErrRowNotFound, got %v", err)
	}
}

func TestOrderService_Remove_ShiftsRows(t *testing.T) {
	now := time.Now().UTC()
	svc, repo, audit := newTestOrderService(now, []domain.Order{
		{User: "wolf1", Client: "A"},
		{User: "wolf1", Client: "B"},
		{User: "wolf1", Client: "C"},
	}, nil)

	if err := svc.Remove(context.Background(), "admin", 3, "duplicate entry"); err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	if len(repo.orders) != 2 {
		t.Fatalf("expected 2 orders left, got %d", len(repo.orders))
	}
	// C moved up into the deleted row's position.
	if repo.orders[1].Client != "C" {
		t.Fatalf("rows did not shift: %+v", repo.orders)
	}

	if len(audit.entries) != 1 || audit.entries[0].Action != domain.ActionDeleteOrder {
		t.Fatalf("expected DELETE_ORDER audit entry, got %+v", audit.entries)
	}
	if !strings.Contains(audit.entries[0].OldJSON, `"client":"B"`) {
		t.Fatalf("audit snapshot should capture the deleted order: %s", audit.entries[0].OldJSON)
	}
}

func TestOrderService_List_FilterAndOrder(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	svc, _, _ := newTestOrderService(now, []domain.Order{
		{Timestamp: now.Add(-200 * time.Hour), User: "wolf1", Client: "Acme", Amount: 10},
		{Timestamp: now.Add(-2 * time.Hour), User: "wolf2", Client: "Globex", Amount: 20},
		{Timestamp: now.Add(-1 * time.Hour), User: "wolf1", Client: "Globex", Amount: 30},
	}, nil)

	all, err := svc.List(context.Background(), ports.OrderFilter{})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 orders, got %d", len(all))
	}
	// Newest first.
	if all[0].Amount != 30 || all[2].Amount != 10 {
		t.Fatalf("orders not sorted newest first: %+v", all)
	}
	// Status derived at read time.
	if all[2].Status != string(domain.StatusCompleted) {
		t.Fatalf("200h-old order should be completed, got %q", all[2].Status)
	}
	if all[0].Status != string(domain.StatusInProcess) {
		t.Fatalf("1h-old order should be in process, got %q", all[0].Status)
	}

	mine, err := svc.List(context.Background(), ports.OrderFilter{User: "wolf1"})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("expected 2 wolf1 orders, got %d", len(mine))
	}

	completed, err := svc.List(context.Background(), ports.OrderFilter{Status: string(domain.StatusCompleted)})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(completed) != 1 || completed[0].Amount != 10 {
		t.Fatalf("status filter failed: %+v", completed)
	}

	ranged, err := svc.List(context.Background(), ports.OrderFilter{From: "2026-03-10", To: "2026-03-10"})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(ranged) != 2 {
		t.Fatalf("date range filter failed: %+v", ranged)
	}

	// An unparseable date is ignored rather than rejected.
	forgiving, err := svc.List(context.Background(), ports.OrderFilter{From: "not-a-date"})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(forgiving) != 3 {
		t.Fatalf("unparseable date should be ignored, got %d rows", len(forgiving))
	}
}

func TestOrderService_Summary(t *testing.T) {
	now := time.Now().UTC()
	svc, _, _ := newTestOrderService(now, []domain.Order{
		{Timestamp: now, User: "wolf1", Client: "Acme", Amount: 100, ProfitAmt: 10},
		{Timestamp: now, User: "wolf1", Client: "Globex", Amount: 200, ProfitAmt: 20},
		{Timestamp: now, User: "wolf2", Client: "Acme", Amount: 300, ProfitAmt: 30},
	}, nil)

	sum, err := svc.Summary(context.Background(), ports.OrderFilter{})
	if err != nil {
		t.Fatalf("Summary returned error: %v", err)
	}
	if sum.TotalOrders != 3 || sum.TotalAmount != 600 || sum.TotalProfit != 60 {
		t.Fatalf("unexpected totals: %+v", sum)
	}
	if sum.UniqueClients != 2 || sum.UniqueUsers != 2 {
		t.Fatalf("unexpected unique counts: %+v", sum)
	}
	if sum.AmountByClient["Acme"] != 400 || sum.AmountByUser["wolf1"] != 300 {
		t.Fatalf("unexpected breakdowns: %+v", sum)
	}
}

func TestOrderService_ExportCSV(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	svc, _, _ := newTestOrderService(now, []domain.Order{
		{Timestamp: now.Add(-time.Hour), User: "wolf1", Client: "Acme", Amount: 1500, ProfitPct: 12.5, ProfitAmt: 187.5},
	}, nil)

	var buf bytes.Buffer
	if err := svc.ExportCSV(context.Background(), ports.OrderFilter{}, &buf); err != nil {
		t.Fatalf("ExportCSV returned error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 row, got %d lines", len(lines))
	}
	if lines[0] != "Timestamp,User,Client,Amount,ProfitPct,ProfitAmt,Status" {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if lines[1] != "2026-03-10 11:00:00,wolf1,Acme,1500.00,12.5,187.50,In Process" {
		t.Fatalf("unexpected row: %q", lines[1])
	}
}
