package ports

import (
	"context"

	"github.com/teamorders/orderdesk/internal/core/domain"
)

// UserUpdate is a partial account edit; nil fields are left unchanged.
// Setting Active to false deactivates the account, which is the only form of
// removal the system supports.
type UserUpdate struct {
	DisplayName *string
	Role        *string
	Password    *string
	Active      *bool
}

// UserService manages accounts. All operations are admin-only at the API
// layer.
type UserService interface {
	List(ctx context.Context) ([]UserRow, error)
	Add(ctx context.Context, actor string, u domain.User) error
	Update(ctx context.Context, actor string, row int, upd UserUpdate) (*UserRow, error)
}
