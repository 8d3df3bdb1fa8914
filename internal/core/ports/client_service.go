package ports

import (
	"context"

	"github.com/teamorders/orderdesk/internal/core/domain"
)

// ClientService manages per-user client lists.
type ClientService interface {
	// List returns all client rows, or only those owned by user when
	// user is non-empty.
	List(ctx context.Context, user string) ([]ClientRow, error)
	Add(ctx context.Context, c domain.Client) error
	// Edit overwrites the row and records EDIT_CLIENT; reason must be
	// non-empty.
	Edit(ctx context.Context, actor string, row int, c domain.Client, reason string) error
	// Remove deletes the row and records DELETE_CLIENT; reason must be
	// non-empty.
	Remove(ctx context.Context, actor string, row int, reason string) error
}
