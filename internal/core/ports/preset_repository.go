package ports

import (
	"context"

	"github.com/teamorders/orderdesk/internal/core/domain"
)

// PresetRow pairs a filter preset with its 1-based sheet row.
type PresetRow struct {
	Row    int                 `json:"row"`
	Preset domain.FilterPreset `json:"preset"`
}

// PresetRepository persists saved dashboard filters in the remote presets table.
type PresetRepository interface {
	LoadAll(ctx context.Context) ([]PresetRow, error)
	Append(ctx context.Context, p domain.FilterPreset) error
	Update(ctx context.Context, row int, p domain.FilterPreset) error
	Delete(ctx context.Context, row int) error
}
