package ports

import (
	"context"

	"github.com/teamorders/orderdesk/internal/core/domain"
)

// AuditRepository persists the append-only audit trail. Entries are never
// updated or deleted.
type AuditRepository interface {
	LoadAll(ctx context.Context) ([]domain.AuditEntry, error)
	Append(ctx context.Context, e domain.AuditEntry) error
}

// AuditRecorder is the best-effort recording surface used by the mutating
// services. A failed append must never fail the mutation that triggered it;
// implementations log the loss instead of returning it.
type AuditRecorder interface {
	Record(ctx context.Context, e domain.AuditEntry)
}
