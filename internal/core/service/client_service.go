package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/teamorders/orderdesk/internal/core/domain"
	"github.com/teamorders/orderdesk/internal/core/ports"
)

// ClientService manages per-user client lists.
type ClientService struct {
	repo  ports.ClientRepository
	audit ports.AuditRecorder
	log   zerolog.Logger
}

func NewClientService(repo ports.ClientRepository, audit ports.AuditRecorder, log zerolog.Logger) *ClientService {
	return &ClientService{repo: repo, audit: audit, log: log}
}

func (s *ClientService) List(ctx context.Context, user string) ([]ports.ClientRow, error) {
	rows, err := s.repo.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	if user == "" {
		return rows, nil
	}

	own := make([]ports.ClientRow, 0, len(rows))
	for _, r := range rows {
		if r.Client.User == user {
			own = append(own, r)
		}
	}
	return own, nil
}

func (s *ClientService) Add(ctx context.Context, c domain.Client) error {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return domain.ErrClientRequired
	}
	c.OpenDate = strings.TrimSpace(c.OpenDate)

	if err := s.repo.Append(ctx, c); err != nil {
		return err
	}
	s.log.Info().Str("user", c.User).Str("client", c.Name).Msg("client added")
	return nil
}

// Edit overwrites the row in place and records EDIT_CLIENT.
func (s *ClientService) Edit(ctx context.Context, actor string, row int, c domain.Client, reason string) error {
	if strings.TrimSpace(reason) == "" {
		return domain.ErrReasonRequired
	}
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return domain.ErrClientRequired
	}

	target, err := s.resolve(ctx, row)
	if err != nil {
		return err
	}

	if err := s.repo.Update(ctx, row, c); err != nil {
		return err
	}

	s.audit.Record(ctx, domain.AuditEntry{
		Actor:       actor,
		Action:      domain.ActionEditClient,
		TargetSheet: "Clients",
		SheetRow:    row,
		Reason:      reason,
		OldJSON:     snapshot(target.Client),
		NewJSON:     snapshot(c),
	})
	return nil
}

// Remove deletes the row and records DELETE_CLIENT. Later row indices are
// stale once this returns.
func (s *ClientService) Remove(ctx context.Context, actor string, row int, reason string) error {
	if strings.TrimSpace(reason) == "" {
		return domain.ErrReasonRequired
	}

	target, err := s.resolve(ctx, row)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, row); err != nil {
		return err
	}

	s.audit.Record(ctx, domain.AuditEntry{
		Actor:       actor,
		Action:      domain.ActionDeleteClient,
		TargetSheet: "Clients",
		SheetRow:    row,
		Reason:      reason,
		OldJSON:     snapshot(target.Client),
	})
	return nil
}

func (s *ClientService) resolve(ctx context.Context, row int) (*ports.ClientRow, error) {
	rows, err := s.repo.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		if rows[i].Row == row {
			return &rows[i], nil
		}
	}
	return nil, fmt.Errorf("clients row %d: %w", row, domain.ErrRowNotFound)
}
