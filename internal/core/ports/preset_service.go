package ports

import (
	"context"

	"github.com/teamorders/orderdesk/internal/core/domain"
)

// PresetService manages saved dashboard filters. Save upserts by preset name.
type PresetService interface {
	List(ctx context.Context) ([]PresetRow, error)
	Save(ctx context.Context, actor string, p domain.FilterPreset) error
	Remove(ctx context.Context, actor string, row int) error
}
