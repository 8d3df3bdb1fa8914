package sheets

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/teamorders/orderdesk/internal/api/metrics"
	"github.com/teamorders/orderdesk/internal/core/domain"
	"github.com/teamorders/orderdesk/internal/core/ports"
)

// Schema is the declared current shape of one table: its canonical column
// names plus an allow-list of legacy header spellings that still map onto
// them. Columns not in the schema are tolerated and ignored on read.
type Schema struct {
	Name    string
	Columns []string
	// Aliases maps a lower-cased legacy header cell to its canonical column.
	Aliases map[string]string
}

var (
	OrdersSchema = Schema{
		Name:    "Orders",
		Columns: []string{"Timestamp", "User", "Client", "Amount", "ProfitPct", "ProfitAmt", "Status"},
		Aliases: map[string]string{
			"username":    "User",
			"user name":   "User",
			"client name": "Client",
			"amount($)":   "Amount",
			"profit %":    "ProfitPct",
			"profit":      "ProfitAmt",
		},
	}

	ClientsSchema = Schema{
		Name:    "Clients",
		Columns: []string{"User", "Client", "OpenDate"},
		Aliases: map[string]string{
			"username":    "User",
			"client name": "Client",
			"open date":   "OpenDate",
		},
	}

	UsersSchema = Schema{
		Name:    "Users",
		Columns: []string{"Username", "DisplayName", "Role", "Password", "Active"},
		Aliases: map[string]string{
			"display name": "DisplayName",
			"user":         "Username",
		},
	}

	PresetsSchema = Schema{
		Name:    "FilterPresets",
		Columns: []string{"Name", "User", "Client", "Status", "FromDate", "ToDate"},
		Aliases: map[string]string{
			"from date": "FromDate",
			"to date":   "ToDate",
		},
	}

	AuditSchema = Schema{
		Name:    "AuditLog",
		Columns: []string{"At", "Actor", "Action", "TargetSheet", "SheetRow", "Reason", "OldJSON", "NewJSON"},
		Aliases: map[string]string{},
	}
)

// Row is one data row of a table: its 1-based sheet index (header row is 1)
// and its cells keyed by canonical column name. Missing cells read as "".
type Row struct {
	Index  int               `json:"index"`
	Fields map[string]string `json:"fields"`
}

// Table is the row-addressed CRUD surface over one worksheet. Reads go
// through the snapshot cache when one is configured; every mutation
// invalidates the table's snapshot.
type Table struct {
	ws     ports.Worksheet
	schema Schema
	cache  ports.SnapshotCache
	log    zerolog.Logger
}

// OpenTable opens or creates the worksheet named by the schema and
// reconciles its header row. Reconciliation is idempotent: with a matching
// header it is a read-only no-op.
func OpenTable(ctx context.Context, doc ports.Spreadsheet, schema Schema, fixHeader bool, cache ports.SnapshotCache, log zerolog.Logger) (*Table, error) {
	ws, err := doc.Worksheet(ctx, schema.Name)
	if err != nil {
		return nil, err
	}

	t := &Table{ws: ws, schema: schema, cache: cache, log: log}
	if err := t.reconcileHeader(ctx, fixHeader); err != nil {
		return nil, err
	}
	return t, nil
}

// Name returns the table's sheet name.
func (t *Table) Name() string { return t.schema.Name }

func (t *Table) reconcileHeader(ctx context.Context, fix bool) error {
	values, err := t.ws.Values(ctx)
	if err != nil {
		return err
	}
	if len(values) == 0 {
		return t.ws.AppendRow(ctx, t.schema.Columns)
	}

	first, err := t.ws.RowValues(ctx, 1)
	if err != nil {
		return err
	}
	if headerMatches(first, t.schema.Columns) {
		return nil
	}

	if fix {
		t.log.Info().Str("sheet", t.schema.Name).Strs("header", t.schema.Columns).Msg("overwriting sheet header")
		return t.ws.UpdateRow(ctx, 1, t.schema.Columns)
	}

	// Non-fatal: reads map legacy columns through the alias allow-list and
	// coerce the rest.
	t.log.Warn().
		Str("sheet", t.schema.Name).
		Strs("expected", t.schema.Columns).
		Strs("found", first).
		Msg("sheet header differs, continuing with best-effort column mapping")
	return nil
}

func headerMatches(found, expected []string) bool {
	if len(found) < len(expected) {
		return false
	}
	for i, col := range expected {
		if strings.TrimSpace(found[i]) != col {
			return false
		}
	}
	for _, extra := range found[len(expected):] {
		if strings.TrimSpace(extra) != "" {
			return false
		}
	}
	return true
}

// LoadAll reads every data row. Each Row's Index is valid only until the
// next mutating call against this table.
func (t *Table) LoadAll(ctx context.Context) ([]Row, error) {
	if t.cache != nil {
		var cached []Row
		hit, err := t.cache.Get(ctx, t.schema.Name, &cached)
		if err != nil {
			t.log.Warn().Err(err).Str("sheet", t.schema.Name).Msg("snapshot cache read failed, loading from remote")
		} else if hit {
			metrics.SnapshotCacheTotal.WithLabelValues("hit").Inc()
			return cached, nil
		}
		metrics.SnapshotCacheTotal.WithLabelValues("miss").Inc()
	}

	values, err := t.ws.Values(ctx)
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, nil
	}

	colIdx := t.mapHeader(values[0])
	rows := make([]Row, 0, len(values)-1)
	for i := 1; i < len(values); i++ {
		fields := make(map[string]string, len(t.schema.Columns))
		for _, col := range t.schema.Columns {
			var cell string
			if j, ok := colIdx[col]; ok && j < len(values[i]) {
				cell = strings.TrimSpace(values[i][j])
			}
			fields[col] = cell
		}
		rows = append(rows, Row{Index: i + 1, Fields: fields})
	}

	if t.cache != nil {
		if err := t.cache.Set(ctx, t.schema.Name, rows); err != nil {
			t.log.Warn().Err(err).Str("sheet", t.schema.Name).Msg("snapshot cache write failed")
		}
	}
	return rows, nil
}

// mapHeader resolves each canonical column to a source cell index, exact
// names first, then the legacy alias allow-list.
func (t *Table) mapHeader(header []string) map[string]int {
	colIdx := make(map[string]int, len(t.schema.Columns))
	for j, cell := range header {
		name := strings.TrimSpace(cell)
		for _, col := range t.schema.Columns {
			if name == col {
				if _, taken := colIdx[col]; !taken {
					colIdx[col] = j
				}
			}
		}
	}
	for j, cell := range header {
		alias, ok := t.schema.Aliases[strings.ToLower(strings.TrimSpace(cell))]
		if !ok {
			continue
		}
		if _, taken := colIdx[alias]; !taken {
			colIdx[alias] = j
		}
	}
	return colIdx
}

// Append writes the fields as a new last row in schema column order; deleted
// row indices are never reused.
func (t *Table) Append(ctx context.Context, fields map[string]string) error {
	if err := t.ws.AppendRow(ctx, t.rowValues(fields)); err != nil {
		return err
	}
	t.invalidate(ctx)
	return nil
}

// Update overwrites the full row in place.
func (t *Table) Update(ctx context.Context, row int, fields map[string]string) error {
	if row < 2 {
		return fmt.Errorf("%s row %d: %w", t.schema.Name, row, domain.ErrRowNotFound)
	}
	if err := t.ws.UpdateRow(ctx, row, t.rowValues(fields)); err != nil {
		return err
	}
	t.invalidate(ctx)
	return nil
}

// Delete removes the row; every later row shifts up by one, so indices held
// from an earlier load are stale after this returns.
func (t *Table) Delete(ctx context.Context, row int) error {
	if row < 2 {
		return fmt.Errorf("%s row %d: %w", t.schema.Name, row, domain.ErrRowNotFound)
	}
	if err := t.ws.DeleteRow(ctx, row); err != nil {
		return err
	}
	t.invalidate(ctx)
	return nil
}

func (t *Table) rowValues(fields map[string]string) []string {
	values := make([]string, len(t.schema.Columns))
	for i, col := range t.schema.Columns {
		values[i] = fields[col]
	}
	return values
}

func (t *Table) invalidate(ctx context.Context) {
	if t.cache == nil {
		return
	}
	if err := t.cache.Invalidate(ctx, t.schema.Name); err != nil {
		t.log.Warn().Err(err).Str("sheet", t.schema.Name).Msg("snapshot cache invalidate failed")
	}
}

// Float reads a numeric cell with parse-or-zero semantics: malformed numeric
// text never errors, it degrades to 0.
func Float(fields map[string]string, col string) float64 {
	s := strings.TrimSpace(fields[col])
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
