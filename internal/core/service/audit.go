package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/teamorders/orderdesk/internal/api/metrics"
	"github.com/teamorders/orderdesk/internal/core/domain"
	"github.com/teamorders/orderdesk/internal/core/ports"
)

// AuditLog records mutating admin actions and serves the trail read-only.
// Recording is best-effort: a failed append never rolls back or fails the
// mutation that triggered it, matching how the trail has always behaved.
type AuditLog struct {
	repo ports.AuditRepository
	log  zerolog.Logger
	now  func() time.Time
}

func NewAuditLog(repo ports.AuditRepository, log zerolog.Logger) *AuditLog {
	return &AuditLog{repo: repo, log: log, now: time.Now}
}

// Record appends one immutable entry. Losses are logged, never surfaced.
func (a *AuditLog) Record(ctx context.Context, e domain.AuditEntry) {
	if e.At.IsZero() {
		e.At = a.now().UTC()
	}

	if err := a.repo.Append(ctx, e); err != nil {
		metrics.AuditAppendFailuresTotal.Inc()
		a.log.Error().
			Err(err).
			Str("action", string(e.Action)).
			Str("actor", e.Actor).
			Str("target_sheet", e.TargetSheet).
			Int("sheet_row", e.SheetRow).
			Msg("audit append failed, mutation not rolled back")
	}
}

func (a *AuditLog) List(ctx context.Context) ([]domain.AuditEntry, error) {
	return a.repo.LoadAll(ctx)
}
