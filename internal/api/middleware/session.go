package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/teamorders/orderdesk/internal/core/ports"
)

// CookieName is the single durable cookie holding the signed session token.
const CookieName = "orderdesk_session"

// SetSessionCookie writes the session cookie with the token's full validity
// window as its max-age.
func SetSessionCookie(c echo.Context, token string, ttl time.Duration) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie client-side. The token it
// held stays valid until its own expiry; there is no server-side revocation.
func ClearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ReadSessionCookie returns the cookie token and whether one was present.
func ReadSessionCookie(c echo.Context) (string, bool) {
	cookie, err := c.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

// Session resolves the caller's session on every request and injects the
// identity into context. Cookie writes requested by the resolution (catch-up
// after login, clearing after logout or deactivation) are applied before the
// request is either passed on or rejected.
func Session(mgr ports.SessionManager, ttl time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, present := ReadSessionCookie(c)

			res, err := mgr.Resolve(c.Request().Context(), token, present, true)
			if res.SetCookie {
				SetSessionCookie(c, res.SetToken, ttl)
			}
			if res.ClearCookie {
				ClearSessionCookie(c)
			}
			if err != nil {
				return err
			}

			switch res.State {
			case ports.SessionLoggedIn:
				c.Set("username", res.Identity.Username)
				c.Set("display_name", res.Identity.DisplayName)
				c.Set("role", res.User.Role)
				return next(c)
			case ports.SessionPending:
				// Not yet known is not logged out; ask the client to retry
				// instead of bouncing it to the login screen.
				c.Response().Header().Set("Retry-After", "1")
				return echo.NewHTTPError(http.StatusServiceUnavailable, "session state not yet known")
			default:
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
		}
	}
}
