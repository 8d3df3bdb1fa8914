package service

import (
	"context"
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/teamorders/orderdesk/internal/core/domain"
	"github.com/teamorders/orderdesk/internal/core/ports"
)

// AuthService checks credentials against the users table.
type AuthService struct {
	repo ports.UserRepository
}

func NewAuthService(repo ports.UserRepository) *AuthService {
	return &AuthService{repo: repo}
}

// Authenticate verifies username and password and returns the account row.
// Unknown users fail with ErrInvalidCredentials rather than ErrUserNotFound
// so the login screen never reveals which usernames exist.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*ports.UserRow, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	row, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !verifyPassword(row.User.Password, password) {
		return nil, domain.ErrInvalidCredentials
	}
	if !row.User.Active {
		return nil, domain.ErrAccountInactive
	}

	return row, nil
}

// HashPassword hashes a password for storage in the users table.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// verifyPassword accepts both bcrypt hashes (anything this system writes) and
// legacy plaintext rows inherited from older versions of the users table.
// The plaintext path is a known gap kept for compatibility; it is compared in
// constant time and confined to this function.
func verifyPassword(stored, given string) bool {
	if strings.HasPrefix(stored, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(given)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(given)) == 1
}
