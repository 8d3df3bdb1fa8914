package service

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/teamorders/orderdesk/internal/core/domain"
	"github.com/teamorders/orderdesk/internal/core/ports"
)

const dateLayout = "2006-01-02"

// timestampLayout is the human-readable instant format used in the sheet and
// the CSV export.
const timestampLayout = "2006-01-02 15:04:05"

// OrderService implements order entry and the row-addressed admin mutations.
// Every mutation re-loads the table and re-resolves the target row against
// the fresh load before acting, so a row index captured before an earlier
// delete is rejected instead of silently hitting the wrong (shifted) row.
type OrderService struct {
	repo    ports.OrderRepository
	clients ports.ClientRepository
	audit   ports.AuditRecorder
	log     zerolog.Logger
	now     func() time.Time
}

func NewOrderService(repo ports.OrderRepository, clients ports.ClientRepository, audit ports.AuditRecorder, log zerolog.Logger) *OrderService {
	return &OrderService{repo: repo, clients: clients, audit: audit, log: log, now: time.Now}
}

// List returns the filtered orders, newest first, with status derived at the
// current instant.
func (s *OrderService) List(ctx context.Context, f ports.OrderFilter) ([]ports.OrderView, error) {
	rows, err := s.repo.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	views := make([]ports.OrderView, 0, len(rows))
	for _, r := range rows {
		v := s.view(r, now)
		if matchesFilter(v, f) {
			views = append(views, v)
		}
	}

	sort.SliceStable(views, func(i, j int) bool {
		return views[i].Timestamp.After(views[j].Timestamp)
	})
	return views, nil
}

// Submit records a new order for the given user. The client must already be
// on that user's client list; timestamp and profit amount are derived here.
func (s *OrderService) Submit(ctx context.Context, in ports.SubmitOrderInput) (*ports.OrderView, error) {
	if strings.TrimSpace(in.Client) == "" {
		return nil, domain.ErrClientRequired
	}
	if err := s.checkClient(ctx, in.User, in.Client); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	order := domain.Order{
		Timestamp: now.Truncate(time.Second),
		User:      in.User,
		Client:    strings.TrimSpace(in.Client),
		Amount:    in.Amount,
		ProfitPct: in.ProfitPct,
		ProfitAmt: domain.ProfitAmount(in.Amount, in.ProfitPct),
	}

	if err := s.repo.Append(ctx, order); err != nil {
		return nil, err
	}
	s.log.Info().Str("user", order.User).Str("client", order.Client).Float64("amount", order.Amount).Msg("order submitted")

	// Re-resolve the appended row by a fresh load rather than guessing at
	// the new last index.
	rows, err := s.repo.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := len(rows) - 1; i >= 0; i-- {
		r := rows[i]
		if r.Order.User == order.User && r.Order.Timestamp.Equal(order.Timestamp) && r.Order.Client == order.Client {
			v := s.view(r, now)
			return &v, nil
		}
	}

	v := s.view(ports.OrderRow{Order: order}, now)
	return &v, nil
}

// Edit merges the patch into the row's current record, recomputes the profit
// amount, overwrites the row in place, and records EDIT_ORDER.
func (s *OrderService) Edit(ctx context.Context, actor string, row int, patch ports.OrderPatch, reason string) (*ports.OrderView, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, domain.ErrReasonRequired
	}

	target, err := s.resolve(ctx, row)
	if err != nil {
		return nil, err
	}

	old := target.Order
	merged := old
	if patch.Client != nil {
		merged.Client = strings.TrimSpace(*patch.Client)
	}
	if patch.Amount != nil {
		merged.Amount = *patch.Amount
	}
	if patch.ProfitPct != nil {
		merged.ProfitPct = *patch.ProfitPct
	}
	merged.ProfitAmt = domain.ProfitAmount(merged.Amount, merged.ProfitPct)

	if err := s.repo.Update(ctx, row, merged); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, domain.AuditEntry{
		Actor:       actor,
		Action:      domain.ActionEditOrder,
		TargetSheet: "Orders",
		SheetRow:    row,
		Reason:      reason,
		OldJSON:     snapshot(old),
		NewJSON:     snapshot(merged),
	})

	v := s.view(ports.OrderRow{Row: row, Order: merged}, s.now().UTC())
	return &v, nil
}

// Remove deletes the row, shifting every later row up by one, and records
// DELETE_ORDER. All previously returned row indices after the deleted row
// are stale once this returns.
func (s *OrderService) Remove(ctx context.Context, actor string, row int, reason string) error {
	if strings.TrimSpace(reason) == "" {
		return domain.ErrReasonRequired
	}

	target, err := s.resolve(ctx, row)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, row); err != nil {
		return err
	}

	s.audit.Record(ctx, domain.AuditEntry{
		Actor:       actor,
		Action:      domain.ActionDeleteOrder,
		TargetSheet: "Orders",
		SheetRow:    row,
		Reason:      reason,
		OldJSON:     snapshot(target.Order),
	})
	return nil
}

// Summary aggregates the filtered order set for the dashboard.
func (s *OrderService) Summary(ctx context.Context, f ports.OrderFilter) (*ports.OrderSummary, error) {
	views, err := s.List(ctx, f)
	if err != nil {
		return nil, err
	}

	sum := &ports.OrderSummary{
		AmountByClient: make(map[string]float64),
		AmountByUser:   make(map[string]float64),
	}
	clients := make(map[string]struct{})
	users := make(map[string]struct{})
	for _, v := range views {
		sum.TotalOrders++
		sum.TotalAmount += v.Amount
		sum.TotalProfit += v.ProfitAmt
		sum.AmountByClient[v.Client] += v.Amount
		sum.AmountByUser[v.User] += v.Amount
		clients[v.Client] = struct{}{}
		users[v.User] = struct{}{}
	}
	sum.UniqueClients = len(clients)
	sum.UniqueUsers = len(users)
	return sum, nil
}

// ExportCSV streams the filtered view in the table's schema column order.
func (s *OrderService) ExportCSV(ctx context.Context, f ports.OrderFilter, w io.Writer) error {
	views, err := s.List(ctx, f)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Timestamp", "User", "Client", "Amount", "ProfitPct", "ProfitAmt", "Status"}); err != nil {
		return err
	}
	for _, v := range views {
		rec := []string{
			v.Timestamp.Format(timestampLayout),
			v.User,
			v.Client,
			strconv.FormatFloat(v.Amount, 'f', 2, 64),
			strconv.FormatFloat(v.ProfitPct, 'f', -1, 64),
			strconv.FormatFloat(v.ProfitAmt, 'f', 2, 64),
			v.Status,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// resolve re-reads the table and locates the row by its current index. A row
// index that no longer exists fails with ErrRowNotFound.
func (s *OrderService) resolve(ctx context.Context, row int) (*ports.OrderRow, error) {
	rows, err := s.repo.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		if rows[i].Row == row {
			return &rows[i], nil
		}
	}
	return nil, fmt.Errorf("orders row %d: %w", row, domain.ErrRowNotFound)
}

func (s *OrderService) checkClient(ctx context.Context, user, client string) error {
	rows, err := s.clients.LoadAll(ctx)
	if err != nil {
		return err
	}
	name := strings.TrimSpace(client)
	for _, r := range rows {
		if r.Client.User == user && r.Client.Name == name {
			return nil
		}
	}
	return domain.ErrUnknownClient
}

func (s *OrderService) view(r ports.OrderRow, now time.Time) ports.OrderView {
	return ports.OrderView{
		Row:       r.Row,
		Timestamp: r.Order.Timestamp,
		User:      r.Order.User,
		Client:    r.Order.Client,
		Amount:    r.Order.Amount,
		ProfitPct: r.Order.ProfitPct,
		ProfitAmt: r.Order.ProfitAmt,
		Status:    string(r.Order.StatusAt(now)),
	}
}

func matchesFilter(v ports.OrderView, f ports.OrderFilter) bool {
	if f.User != "" && v.User != f.User {
		return false
	}
	if f.Client != "" && v.Client != f.Client {
		return false
	}
	if f.Status != "" && v.Status != f.Status {
		return false
	}
	// Unparseable filter dates are ignored, like the dashboard's forgiving
	// date controls.
	if f.From != "" {
		if from, err := time.ParseInLocation(dateLayout, f.From, time.UTC); err == nil {
			if v.Timestamp.Before(from) {
				return false
			}
		}
	}
	if f.To != "" {
		if to, err := time.ParseInLocation(dateLayout, f.To, time.UTC); err == nil {
			if !v.Timestamp.Before(to.AddDate(0, 0, 1)) {
				return false
			}
		}
	}
	return true
}

// snapshot serialises a record for an audit before/after field. Marshal
// failures degrade to an empty snapshot rather than blocking the mutation.
func snapshot(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}
