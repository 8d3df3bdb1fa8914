package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/teamorders/orderdesk/internal/core/domain"
	"github.com/teamorders/orderdesk/internal/core/ports"
)

func TestUserService_Add(t *testing.T) {
	repo := newStubUserRepo()
	audit := &stubAudit{}
	svc := NewUserService(repo, audit, zerolog.Nop())

	err := svc.Add(context.Background(), "admin", domain.User{
		Username: "wolf3",
		Role:     domain.RoleTeam,
		Password: "wolfpass3",
		Active:   true,
	})
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}

	row, err := repo.FindByUsername(context.Background(), "wolf3")
	if err != nil {
		t.Fatalf("user not stored: %v", err)
	}
	if !strings.HasPrefix(row.User.Password, "$2") {
		t.Fatalf("password stored unhashed: %q", row.User.Password)
	}
	if row.User.DisplayName != "wolf3" {
		t.Fatalf("empty display name should default to username, got %q", row.User.DisplayName)
	}

	if len(audit.entries) != 1 || audit.entries[0].Action != domain.ActionAddUser {
		t.Fatalf("expected ADD_USER audit entry, got %+v", audit.entries)
	}
}

func TestUserService_Add_Duplicate(t *testing.T) {
	repo := newStubUserRepo(domain.User{Username: "wolf1", Role: domain.RoleTeam, Password: "x", Active: true})
	svc := NewUserService(repo, &stubAudit{}, zerolog.Nop())

	err := svc.Add(context.Background(), "admin", domain.User{
		Username: "wolf1", Role: domain.RoleTeam, Password: "y",
	})
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestUserService_Add_InvalidFields(t *testing.T) {
	svc := NewUserService(newStubUserRepo(), &stubAudit{}, zerolog.Nop())

	cases := []domain.User{
		{Username: "wolf3", Role: "superuser", Password: "x"},
		{Username: "", Role: domain.RoleTeam, Password: "x"},
		{Username: "wolf3", Role: domain.RoleTeam, Password: ""},
	}
	for _, u := range cases {
		if err := svc.Add(context.Background(), "admin", u); !errors.Is(err, domain.ErrInvalidUserFields) {
			t.Fatalf("user %+v: expected ErrInvalidUserFields, got %v", u, err)
		}
	}
}

func TestUserService_Update_BadRole(t *testing.T) {
	repo := newStubUserRepo(domain.User{Username: "wolf1", Role: domain.RoleTeam, Password: "x", Active: true})
	svc := NewUserService(repo, &stubAudit{}, zerolog.Nop())

	role := "superuser"
	if _, err := svc.Update(context.Background(), "admin", 2, ports.UserUpdate{Role: &role}); !errors.Is(err, domain.ErrInvalidUserFields) {
		t.Fatalf("expected ErrInvalidUserFields, got %v", err)
	}
}

func TestUserService_Update_Deactivate(t *testing.T) {
	repo := newStubUserRepo(domain.User{Username: "wolf1", Role: domain.RoleTeam, Password: "x", Active: true})
	audit := &stubAudit{}
	svc := NewUserService(repo, audit, zerolog.Nop())

	inactive := false
	row, err := svc.Update(context.Background(), "admin", 2, ports.UserUpdate{Active: &inactive})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if row.User.Active {
		t.Fatalf("user still active after deactivation")
	}
	if row.User.Username != "wolf1" {
		t.Fatalf("username must be immutable, got %q", row.User.Username)
	}

	if len(audit.entries) != 1 || audit.entries[0].Action != domain.ActionUpdateUser {
		t.Fatalf("expected UPDATE_USER audit entry, got %+v", audit.entries)
	}
}

func TestUserService_Update_StaleRow(t *testing.T) {
	svc := NewUserService(newStubUserRepo(), &stubAudit{}, zerolog.Nop())

	if _, err := svc.Update(context.Background(), "admin", 9, ports.UserUpdate{}); !errors.Is(err, domain.ErrRowNotFound) {
		t.Fatalf("expected ErrRowNotFound, got %v", err)
	}
}

func TestUserService_SeedDefaults(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, &stubAudit{}, zerolog.Nop())

	seeds := []domain.User{
		{Username: "admin", DisplayName: "Administrator", Role: domain.RoleAdmin, Password: "admin123"},
		{Username: "wolf1", Role: domain.RoleTeam, Password: "wolfpass1"},
	}
	if err := svc.SeedDefaults(context.Background(), seeds); err != nil {
		t.Fatalf("SeedDefaults returned error: %v", err)
	}

	rows, _ := repo.LoadAll(context.Background())
	if len(rows) != 2 {
		t.Fatalf("expected 2 seeded users, got %d", len(rows))
	}
	for _, r := range rows {
		if !r.User.Active {
			t.Fatalf("seeded user %q not active", r.User.Username)
		}
		if !strings.HasPrefix(r.User.Password, "$2") {
			t.Fatalf("seeded password stored unhashed for %q", r.User.Username)
		}
	}

	// Seeding is a no-op once any account exists.
	if err := svc.SeedDefaults(context.Background(), seeds); err != nil {
		t.Fatalf("SeedDefaults returned error: %v", err)
	}
	rows, _ = repo.LoadAll(context.Background())
	if len(rows) != 2 {
		t.Fatalf("seed must not run twice, got %d users", len(rows))
	}
}
