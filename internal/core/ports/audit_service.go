package ports

import (
	"context"

	"github.com/teamorders/orderdesk/internal/core/domain"
)

// AuditService exposes the audit trail read-only.
type AuditService interface {
	List(ctx context.Context) ([]domain.AuditEntry, error)
}
