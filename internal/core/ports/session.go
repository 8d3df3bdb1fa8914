package ports

import (
	"context"

	"github.com/teamorders/orderdesk/internal/core/domain"
)

// SessionState is the resolved position in the login state machine.
type SessionState int

const (
	// SessionLoggedOut means no usable session exists.
	SessionLoggedOut SessionState = iota
	// SessionJustLoggedOut means a logout happened but the durable cookie
	// still reports the old token; login stays blocked until the cookie is
	// observed cleared.
	SessionJustLoggedOut
	// SessionLoggedIn means the caller holds a valid, active session.
	SessionLoggedIn
	// SessionPending means the cookie store has not been read yet; the
	// caller must retry instead of treating this as logged out.
	SessionPending
)

// SessionResolution is the outcome of reconciling the process-local session
// store with the durable cookie on one request.
type SessionResolution struct {
	State    SessionState
	Identity *domain.Identity
	// User is the freshly re-read account for a LoggedIn resolution.
	User *domain.User
	// SetCookie asks the transport to (re)write the cookie because it lags
	// behind the process store.
	SetCookie bool
	// SetToken is the token to write when SetCookie is true.
	SetToken string
	// ClearCookie asks the transport to expire the cookie.
	ClearCookie bool
}

// SessionManager drives the login/logout state machine and reconciles the
// in-process token store against the client cookie on every request.
type SessionManager interface {
	// Login checks credentials and issues a fresh token. cookieToken is the
	// session cookie accompanying the login request, if any: while a prior
	// logout is still clearing and the old cookie is still being presented,
	// Login fails with domain.ErrLogoutPending.
	Login(ctx context.Context, username, password, cookieToken string) (string, *domain.User, error)
	// Logout invalidates the process-side session for the given token. The
	// token itself stays cryptographically valid until expiry; only the
	// cookie clearing removes it from the client.
	Logout(token string)
	// Resolve reconciles the cookie with the process store. cookiePresent is
	// whether a cookie value was supplied; cookieKnown is false only when
	// the cookie store itself could not yet be read.
	Resolve(ctx context.Context, cookieToken string, cookiePresent, cookieKnown bool) (SessionResolution, error)
}
