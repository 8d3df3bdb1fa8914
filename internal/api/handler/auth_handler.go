package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/teamorders/orderdesk/internal/api/metrics"
	"github.com/teamorders/orderdesk/internal/api/middleware"
	"github.com/teamorders/orderdesk/internal/core/domain"
	"github.com/teamorders/orderdesk/internal/core/ports"
)

// AuthHandler serves login, logout, and the current-session probe.
type AuthHandler struct {
	sessions ports.SessionManager
	ttl      time.Duration
}

func NewAuthHandler(sessions ports.SessionManager, ttl time.Duration) *AuthHandler {
	return &AuthHandler{sessions: sessions, ttl: ttl}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type sessionResponse struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}

// Login authenticates a user and sets the session cookie.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  sessionResponse
// @Failure      401   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	cookieToken, _ := middleware.ReadSessionCookie(c)
	token, user, err := h.sessions.Login(c.Request().Context(), req.Username, req.Password, cookieToken)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(loginOutcome(err)).Inc()
		if errors.Is(err, domain.ErrLogoutPending) {
			// The old cookie is still being cleared; keep clearing it.
			middleware.ClearSessionCookie(c)
		}
		return err
	}

	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	middleware.SetSessionCookie(c, token, h.ttl)
	return c.JSON(http.StatusOK, sessionResponse{
		Username:    user.Username,
		DisplayName: user.DisplayName,
		Role:        user.Role,
	})
}

// Logout invalidates the process-side session and expires the cookie. The
// token itself stays valid until its absolute expiry.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if token, ok := middleware.ReadSessionCookie(c); ok {
		h.sessions.Logout(token)
	}
	middleware.ClearSessionCookie(c)
	return c.JSON(http.StatusOK, map[string]string{"message": "logged out"})
}

// Session reports the authenticated caller's identity.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Failure      401  {object}  map[string]string
// @Router       /auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	username, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	displayName, _ := c.Get("display_name").(string)
	return c.JSON(http.StatusOK, sessionResponse{
		Username:    username,
		DisplayName: displayName,
		Role:        role,
	})
}

func loginOutcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid"
	case errors.Is(err, domain.ErrAccountInactive):
		return "inactive"
	case errors.Is(err, domain.ErrLogoutPending):
		return "pending"
	default:
		return "error"
	}
}
