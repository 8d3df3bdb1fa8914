package sheets

import (
	"context"

	"github.com/teamorders/orderdesk/internal/core/domain"
	"github.com/teamorders/orderdesk/internal/core/ports"
)

// ClientRepository persists per-user client lists in the Clients table.
type ClientRepository struct {
	table *Table
}

func NewClientRepository(table *Table) *ClientRepository {
	return &ClientRepository{table: table}
}

func (r *ClientRepository) LoadAll(ctx context.Context) ([]ports.ClientRow, error) {
	rows, err := r.table.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]ports.ClientRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, ports.ClientRow{
			Row: row.Index,
			Client: domain.Client{
				User:     row.Fields["User"],
				Name:     row.Fields["Client"],
				OpenDate: row.Fields["OpenDate"],
			},
		})
	}
	return out, nil
}

func (r *ClientRepository) Append(ctx context.Context, c domain.Client) error {
	return r.table.Append(ctx, clientFields(c))
}

func (r *ClientRepository) Update(ctx context.Context, row int, c domain.Client) error {
	return r.table.Update(ctx, row, clientFields(c))
}

func (r *ClientRepository) Delete(ctx context.Context, row int) error {
	return r.table.Delete(ctx, row)
}

func clientFields(c domain.Client) map[string]string {
	return map[string]string{
		"User":     c.User,
		"Client":   c.Name,
		"OpenDate": c.OpenDate,
	}
}
