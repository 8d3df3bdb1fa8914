package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/teamorders/orderdesk/internal/core/domain"
	"github.com/teamorders/orderdesk/internal/core/ports"
)

// UserService manages accounts. Accounts are deactivated, never deleted, so
// audit entries always reference a row that still exists.
type UserService struct {
	repo  ports.UserRepository
	audit ports.AuditRecorder
	log   zerolog.Logger
}

func NewUserService(repo ports.UserRepository, audit ports.AuditRecorder, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, audit: audit, log: log}
}

func (s *UserService) List(ctx context.Context) ([]ports.UserRow, error) {
	return s.repo.LoadAll(ctx)
}

// Add creates an account with a hashed password and records ADD_USER.
func (s *UserService) Add(ctx context.Context, actor string, u domain.User) error {
	u.Username = strings.TrimSpace(u.Username)
	if u.Username == "" || u.Password == "" || !domain.ValidRole(u.Role) {
		return domain.ErrInvalidUserFields
	}

	if _, err := s.repo.FindByUsername(ctx, u.Username); err == nil {
		return domain.ErrUserExists
	} else if err != domain.ErrUserNotFound {
		return err
	}

	hash, err := HashPassword(u.Password)
	if err != nil {
		return err
	}
	u.Password = hash
	if u.DisplayName == "" {
		u.DisplayName = u.Username
	}

	if err := s.repo.Append(ctx, u); err != nil {
		return err
	}

	s.audit.Record(ctx, domain.AuditEntry{
		Actor:       actor,
		Action:      domain.ActionAddUser,
		TargetSheet: "Users",
		NewJSON:     snapshot(u),
	})
	s.log.Info().Str("username", u.Username).Str("role", u.Role).Msg("user added")
	return nil
}

// Update applies a partial edit to the account at row and records
// UPDATE_USER. The username is immutable.
func (s *UserService) Update(ctx context.Context, actor string, row int, upd ports.UserUpdate) (*ports.UserRow, error) {
	rows, err := s.repo.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	var target *ports.UserRow
	for i := range rows {
		if rows[i].Row == row {
			target = &rows[i]
			break
		}
	}
	if target == nil {
		return nil, fmt.Errorf("users row %d: %w", row, domain.ErrRowNotFound)
	}

	old := target.User
	merged := old
	if upd.DisplayName != nil {
		merged.DisplayName = *upd.DisplayName
	}
	if upd.Role != nil {
		if !domain.ValidRole(*upd.Role) {
			return nil, domain.ErrInvalidUserFields
		}
		merged.Role = *upd.Role
	}
	if upd.Password != nil && *upd.Password != "" {
		hash, err := HashPassword(*upd.Password)
		if err != nil {
			return nil, err
		}
		merged.Password = hash
	}
	if upd.Active != nil {
		merged.Active = *upd.Active
	}

	if err := s.repo.Update(ctx, row, merged); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, domain.AuditEntry{
		Actor:       actor,
		Action:      domain.ActionUpdateUser,
		TargetSheet: "Users",
		SheetRow:    row,
		OldJSON:     snapshot(old),
		NewJSON:     snapshot(merged),
	})
	if upd.Active != nil && !*upd.Active {
		s.log.Warn().Str("username", merged.Username).Msg("account deactivated")
	}

	return &ports.UserRow{Row: row, User: merged}, nil
}

// SeedDefaults populates an empty users table. It is a no-op when any
// account already exists.
func (s *UserService) SeedDefaults(ctx context.Context, seeds []domain.User) error {
	rows, err := s.repo.LoadAll(ctx)
	if err != nil {
		return err
	}
	if len(rows) > 0 {
		return nil
	}

	for _, u := range seeds {
		hash, err := HashPassword(u.Password)
		if err != nil {
			return err
		}
		u.Password = hash
		u.Active = true
		if u.DisplayName == "" {
			u.DisplayName = u.Username
		}
		if err := s.repo.Append(ctx, u); err != nil {
			return err
		}
	}
	s.log.Info().Int("count", len(seeds)).Msg("seeded users table")
	return nil
}
