package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/teamorders/orderdesk/internal/core/domain"
	"github.com/teamorders/orderdesk/internal/core/ports"
)

type stubSessionManager struct {
	resolveFn func(ctx context.Context, token string, present, known bool) (ports.SessionResolution, error)
}

func (s *stubSessionManager) Login(context.Context, string, string, string) (string, *domain.User, error) {
	return "", nil, nil
}

func (s *stubSessionManager) Logout(string) {}

func (s *stubSessionManager) Resolve(ctx context.Context, token string, present, known bool) (ports.SessionResolution, error) {
	return s.resolveFn(ctx, token, present, known)
}

func sessionContext(e *echo.Echo, cookie string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: CookieName, Value: cookie})
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestSession_LoggedInInjectsIdentity(t *testing.T) {
	e := echo.New()
	mgr := &stubSessionManager{
		resolveFn: func(_ context.Context, token string, present, known bool) (ports.SessionResolution, error) {
			if token != "tok" || !present || !known {
				t.Fatalf("unexpected resolve args: %q %v %v", token, present, known)
			}
			return ports.SessionResolution{
				State:    ports.SessionLoggedIn,
				Identity: &domain.Identity{Username: "wolf1", DisplayName: "Wolf One"},
				User:     &domain.User{Username: "wolf1", Role: domain.RoleTeam, Active: true},
			}, nil
		},
	}

	c, rec := sessionContext(e, "tok")
	called := false
	handler := Session(mgr, time.Hour)(func(c echo.Context) error {
		called = true
		if c.Get("username") != "wolf1" || c.Get("role") != domain.RoleTeam {
			t.Fatalf("identity not injected: %v %v", c.Get("username"), c.Get("role"))
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestSession_LoggedOutRejected(t *testing.T) {
	e := echo.New()
	mgr := &stubSessionManager{
		resolveFn: func(context.Context, string, bool, bool) (ports.SessionResolution, error) {
			return ports.SessionResolution{State: ports.SessionLoggedOut}, nil
		},
	}

	c, _ := sessionContext(e, "")
	err := Session(mgr, time.Hour)(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})(c)

	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestSession_PendingAsksForRetry(t *testing.T) {
	e := echo.New()
	mgr := &stubSessionManager{
		resolveFn: func(context.Context, string, bool, bool) (ports.SessionResolution, error) {
			return ports.SessionResolution{State: ports.SessionPending}, nil
		},
	}

	c, rec := sessionContext(e, "")
	err := Session(mgr, time.Hour)(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})(c)

	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %v", err)
	}
	if rec.Header().Get("Retry-After") != "1" {
		t.Fatalf("expected Retry-After header")
	}
}

func TestSession_CookieCatchUp(t *testing.T) {
	e := echo.New()
	mgr := &stubSessionManager{
		resolveFn: func(context.Context, string, bool, bool) (ports.SessionResolution, error) {
			return ports.SessionResolution{
				State:     ports.SessionLoggedIn,
				Identity:  &domain.Identity{Username: "wolf1"},
				User:      &domain.User{Username: "wolf1", Role: domain.RoleTeam},
				SetCookie: true,
				SetToken:  "newer-token",
			}, nil
		},
	}

	c, rec := sessionContext(e, "stale-token")
	if err := Session(mgr, time.Hour)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	setCookie := rec.Header().Get(echo.HeaderSetCookie)
	if !strings.Contains(setCookie, CookieName+"=newer-token") {
		t.Fatalf("expected cookie rewrite, got %q", setCookie)
	}
}

func TestSession_ClearCookieOnForcedLogout(t *testing.T) {
	e := echo.New()
	mgr := &stubSessionManager{
		resolveFn: func(context.Context, string, bool, bool) (ports.SessionResolution, error) {
			return ports.SessionResolution{State: ports.SessionLoggedOut, ClearCookie: true}, domain.ErrAccountInactive
		},
	}

	c, rec := sessionContext(e, "tok")
	err := Session(mgr, time.Hour)(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})(c)

	if !errors.Is(err, domain.ErrAccountInactive) {
		t.Fatalf("expected ErrAccountInactive, got %v", err)
	}
	setCookie := rec.Header().Get(echo.HeaderSetCookie)
	if !strings.Contains(setCookie, CookieName+"=;") && !strings.Contains(setCookie, "Max-Age=0") {
		t.Fatalf("expected cookie clear, got %q", setCookie)
	}
}
