package ports

import (
	"context"

	"github.com/teamorders/orderdesk/internal/core/domain"
)

// ClientRow pairs a client with its 1-based sheet row, valid until the next
// mutation against the clients table.
type ClientRow struct {
	Row    int           `json:"row"`
	Client domain.Client `json:"client"`
}

// ClientRepository persists per-user client lists in the remote clients table.
type ClientRepository interface {
	LoadAll(ctx context.Context) ([]ClientRow, error)
	Append(ctx context.Context, c domain.Client) error
	Update(ctx context.Context, row int, c domain.Client) error
	Delete(ctx context.Context, row int) error
}
