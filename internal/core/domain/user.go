package domain

import "errors"

const (
	RoleAdmin = "admin"
	RoleTeam  = "team"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrAccountInactive    = errors.New("account deactivated")
	ErrForbidden          = errors.New("access forbidden")
	// ErrInvalidUserFields rejects account writes with a missing username or
	// password, or an unrecognised role.
	ErrInvalidUserFields = errors.New("username, password, and a valid role are required")
)

// User models an authenticated actor in the system. Users are never
// hard-deleted; deactivation flips Active so historical audit entries keep
// pointing at a real account.
type User struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
	Password    string `json:"-"`
	Active      bool   `json:"active"`
}

// ValidRole reports whether r is one of the recognised roles.
func ValidRole(r string) bool {
	return r == RoleAdmin || r == RoleTeam
}
