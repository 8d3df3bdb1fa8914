package ports

import (
	"context"

	"github.com/teamorders/orderdesk/internal/core/domain"
)

// UserRow pairs a user with its 1-based sheet row.
type UserRow struct {
	Row  int         `json:"row"`
	User domain.User `json:"user"`
}

// UserRepository persists accounts in the remote users table.
type UserRepository interface {
	LoadAll(ctx context.Context) ([]UserRow, error)
	// FindByUsername returns the user and its current row, or
	// domain.ErrUserNotFound.
	FindByUsername(ctx context.Context, username string) (*UserRow, error)
	Append(ctx context.Context, u domain.User) error
	Update(ctx context.Context, row int, u domain.User) error
}
