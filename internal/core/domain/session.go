package domain

import "errors"

// ErrLogoutPending blocks a re-login while the browser cookie from the
// previous session has not yet been observed cleared.
var ErrLogoutPending = errors.New("previous session is still being cleared")

// Identity is the subject bound into a signed session token.
type Identity struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
}
