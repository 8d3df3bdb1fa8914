package ports

import (
	"context"

	"github.com/teamorders/orderdesk/internal/core/domain"
)

// OrderRow pairs an order with the 1-based sheet row it was loaded from.
// The row index is only valid until the next mutating call against the
// orders table.
type OrderRow struct {
	Row   int          `json:"row"`
	Order domain.Order `json:"order"`
}

// OrderRepository persists orders in the remote orders table.
type OrderRepository interface {
	LoadAll(ctx context.Context) ([]OrderRow, error)
	Append(ctx context.Context, o domain.Order) error
	Update(ctx context.Context, row int, o domain.Order) error
	Delete(ctx context.Context, row int) error
}
