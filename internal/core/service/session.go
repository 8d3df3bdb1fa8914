package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/teamorders/orderdesk/internal/core/domain"
	"github.com/teamorders/orderdesk/internal/core/ports"
)

// SessionManager drives the login state machine. It keeps two process-local
// maps: tokens issued since process start (the authoritative side of the
// cookie catch-up window) and tokens from sessions that were just logged out
// and whose cookie has not yet been observed cleared.
//
// Logout is client-side only: the old token stays cryptographically valid
// until its expiry, so the clearing map is what prevents an unlogged cookie
// from silently re-authenticating right after a logout.
type SessionManager struct {
	tokens *TokenService
	auth   *AuthService
	users  ports.UserRepository
	log    zerolog.Logger

	mu       sync.Mutex
	active   map[string]string // username -> token issued by this process
	clearing map[string]string // username -> old token awaiting cookie clear
}

func NewSessionManager(tokens *TokenService, auth *AuthService, users ports.UserRepository, log zerolog.Logger) *SessionManager {
	return &SessionManager{
		tokens:   tokens,
		auth:     auth,
		users:    users,
		log:      log,
		active:   make(map[string]string),
		clearing: make(map[string]string),
	}
}

// Login checks credentials and issues a fresh token, recording it in the
// process store so Resolve can push it to a lagging cookie.
func (m *SessionManager) Login(ctx context.Context, username, password, cookieToken string) (string, *domain.User, error) {
	m.mu.Lock()
	if old, pending := m.clearing[username]; pending {
		if cookieToken == old {
			// The browser still presents the logged-out cookie; keep
			// blocking until a request confirms it is gone.
			m.mu.Unlock()
			return "", nil, domain.ErrLogoutPending
		}
		delete(m.clearing, username)
	}
	m.mu.Unlock()

	row, err := m.auth.Authenticate(ctx, username, password)
	if err != nil {
		return "", nil, err
	}

	token, err := m.tokens.Issue(row.User.Username, row.User.DisplayName)
	if err != nil {
		return "", nil, err
	}

	m.mu.Lock()
	m.active[row.User.Username] = token
	m.mu.Unlock()

	m.log.Info().Str("username", row.User.Username).Str("role", row.User.Role).Msg("login")
	return token, &row.User, nil
}

// Logout moves the token's session into the clearing state. The cookie clear
// itself is the transport's job; Resolve keeps asking for it until a request
// arrives without the old token.
func (m *SessionManager) Logout(token string) {
	id, ok := m.tokens.Verify(token)
	if !ok {
		return
	}

	m.mu.Lock()
	delete(m.active, id.Username)
	m.clearing[id.Username] = token
	m.mu.Unlock()

	m.log.Info().Str("username", id.Username).Msg("logout")
}

// Resolve reconciles the durable cookie with the process store for one
// request. On every logged-in resolution the account's active flag is
// re-read; a deactivated account forces an immediate logout no matter how
// long the token remains valid.
func (m *SessionManager) Resolve(ctx context.Context, cookieToken string, cookiePresent, cookieKnown bool) (ports.SessionResolution, error) {
	if !cookieKnown {
		// The cookie store has not been read yet; this is "not yet known",
		// not "logged out".
		return ports.SessionResolution{State: ports.SessionPending}, nil
	}
	if !cookiePresent {
		return ports.SessionResolution{State: ports.SessionLoggedOut}, nil
	}

	id, ok := m.tokens.Verify(cookieToken)
	if !ok {
		return ports.SessionResolution{State: ports.SessionLoggedOut, ClearCookie: true}, nil
	}

	res := ports.SessionResolution{State: ports.SessionLoggedIn, Identity: &id}

	m.mu.Lock()
	if old, pending := m.clearing[id.Username]; pending && old == cookieToken {
		m.mu.Unlock()
		return ports.SessionResolution{State: ports.SessionJustLoggedOut, ClearCookie: true}, nil
	}
	if cur, ok := m.active[id.Username]; ok && cur != cookieToken {
		// The cookie has not caught up with a newer login in this process;
		// the process store wins and the cookie gets rewritten.
		res.SetCookie = true
		res.SetToken = cur
		if curID, ok := m.tokens.Verify(cur); ok {
			res.Identity = &curID
		}
	}
	m.mu.Unlock()

	row, err := m.users.FindByUsername(ctx, res.Identity.Username)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return ports.SessionResolution{State: ports.SessionLoggedOut, ClearCookie: true}, nil
		}
		return ports.SessionResolution{}, err
	}
	if !row.User.Active {
		m.mu.Lock()
		delete(m.active, row.User.Username)
		m.mu.Unlock()
		m.log.Warn().Str("username", row.User.Username).Msg("deactivated account presented a valid token")
		return ports.SessionResolution{State: ports.SessionLoggedOut, ClearCookie: true}, domain.ErrAccountInactive
	}

	res.User = &row.User
	return res, nil
}
