package sheets

import (
	"context"
	"strings"

	"github.com/teamorders/orderdesk/internal/core/domain"
	"github.com/teamorders/orderdesk/internal/core/ports"
)

// UserRepository persists accounts in the Users table.
type UserRepository struct {
	table *Table
}

func NewUserRepository(table *Table) *UserRepository {
	return &UserRepository{table: table}
}

func (r *UserRepository) LoadAll(ctx context.Context) ([]ports.UserRow, error) {
	rows, err := r.table.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]ports.UserRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, ports.UserRow{
			Row: row.Index,
			User: domain.User{
				Username:    row.Fields["Username"],
				DisplayName: row.Fields["DisplayName"],
				Role:        strings.ToLower(row.Fields["Role"]),
				Password:    row.Fields["Password"],
				Active:      parseActive(row.Fields["Active"]),
			},
		})
	}
	return out, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*ports.UserRow, error) {
	rows, err := r.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		if rows[i].User.Username == username {
			return &rows[i], nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) Append(ctx context.Context, u domain.User) error {
	return r.table.Append(ctx, userFields(u))
}

func (r *UserRepository) Update(ctx context.Context, row int, u domain.User) error {
	return r.table.Update(ctx, row, userFields(u))
}

func userFields(u domain.User) map[string]string {
	active := "FALSE"
	if u.Active {
		active = "TRUE"
	}
	return map[string]string{
		"Username":    u.Username,
		"DisplayName": u.DisplayName,
		"Role":        u.Role,
		"Password":    u.Password,
		"Active":      active,
	}
}

// parseActive tolerates the spellings spreadsheet tooling produces for
// booleans. Anything unrecognised reads as inactive.
func parseActive(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "y":
		return true
	default:
		return false
	}
}
