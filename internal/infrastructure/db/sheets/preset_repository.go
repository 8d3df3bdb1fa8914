package sheets

import (
	"context"

	"github.com/teamorders/orderdesk/internal/core/domain"
	"github.com/teamorders/orderdesk/internal/core/ports"
)

// PresetRepository persists saved dashboard filters in the FilterPresets
// table.
type PresetRepository struct {
	table *Table
}

func NewPresetRepository(table *Table) *PresetRepository {
	return &PresetRepository{table: table}
}

func (r *PresetRepository) LoadAll(ctx context.Context) ([]ports.PresetRow, error) {
	rows, err := r.table.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]ports.PresetRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, ports.PresetRow{
			Row: row.Index,
			Preset: domain.FilterPreset{
				Name:     row.Fields["Name"],
				User:     row.Fields["User"],
				Client:   row.Fields["Client"],
				Status:   row.Fields["Status"],
				FromDate: row.Fields["FromDate"],
				ToDate:   row.Fields["ToDate"],
			},
		})
	}
	return out, nil
}

func (r *PresetRepository) Append(ctx context.Context, p domain.FilterPreset) error {
	return r.table.Append(ctx, presetFields(p))
}

func (r *PresetRepository) Update(ctx context.Context, row int, p domain.FilterPreset) error {
	return r.table.Update(ctx, row, presetFields(p))
}

func (r *PresetRepository) Delete(ctx context.Context, row int) error {
	return r.table.Delete(ctx, row)
}

func presetFields(p domain.FilterPreset) map[string]string {
	return map[string]string{
		"Name":     p.Name,
		"User":     p.User,
		"Client":   p.Client,
		"Status":   p.Status,
		"FromDate": p.FromDate,
		"ToDate":   p.ToDate,
	}
}
