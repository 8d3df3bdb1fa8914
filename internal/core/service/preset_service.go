package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/teamorders/orderdesk/internal/core/domain"
	"github.com/teamorders/orderdesk/internal/core/ports"
)

// PresetService manages saved dashboard filters, upserted by name.
type PresetService struct {
	repo  ports.PresetRepository
	audit ports.AuditRecorder
	log   zerolog.Logger
}

func NewPresetService(repo ports.PresetRepository, audit ports.AuditRecorder, log zerolog.Logger) *PresetService {
	return &PresetService{repo: repo, audit: audit, log: log}
}

func (s *PresetService) List(ctx context.Context) ([]ports.PresetRow, error) {
	return s.repo.LoadAll(ctx)
}

// Save upserts by preset name and records SAVE_PRESET.
func (s *PresetService) Save(ctx context.Context, actor string, p domain.FilterPreset) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return domain.ErrPresetNameRequired
	}

	rows, err := s.repo.LoadAll(ctx)
	if err != nil {
		return err
	}

	for _, r := range rows {
		if r.Preset.Name == p.Name {
			if err := s.repo.Update(ctx, r.Row, p); err != nil {
				return err
			}
			s.audit.Record(ctx, domain.AuditEntry{
				Actor:       actor,
				Action:      domain.ActionSavePreset,
				TargetSheet: "FilterPresets",
				SheetRow:    r.Row,
				OldJSON:     snapshot(r.Preset),
				NewJSON:     snapshot(p),
			})
			return nil
		}
	}

	if err := s.repo.Append(ctx, p); err != nil {
		return err
	}
	s.audit.Record(ctx, domain.AuditEntry{
		Actor:       actor,
		Action:      domain.ActionSavePreset,
		TargetSheet: "FilterPresets",
		NewJSON:     snapshot(p),
	})
	return nil
}

// Remove deletes the row and records DELETE_PRESET. Presets are not
// destructive data, so no reason is demanded.
func (s *PresetService) Remove(ctx context.Context, actor string, row int) error {
	rows, err := s.repo.LoadAll(ctx)
	if err != nil {
		return err
	}

	for _, r := range rows {
		if r.Row == row {
			if err := s.repo.Delete(ctx, row); err != nil {
				return err
			}
			s.audit.Record(ctx, domain.AuditEntry{
				Actor:       actor,
				Action:      domain.ActionDeletePreset,
				TargetSheet: "FilterPresets",
				SheetRow:    row,
				OldJSON:     snapshot(r.Preset),
			})
			return nil
		}
	}
	return fmt.Errorf("presets row %d: %w", row, domain.ErrRowNotFound)
}
