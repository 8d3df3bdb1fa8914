package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/teamorders/orderdesk/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Surfaces remote-store failures verbatim; there is no retry behind them.
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors map to deterministic HTTP codes. Auth failures
	// stay deliberately vague.
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrAccountInactive):
		return http.StatusUnauthorized, "account deactivated"
	case errors.Is(err, domain.ErrLogoutPending):
		return http.StatusConflict, err.Error()
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, "user already exists"
	case errors.Is(err, domain.ErrRowNotFound):
		return http.StatusConflict, "row no longer exists at that index, reload and retry"
	case errors.Is(err, domain.ErrReasonRequired),
		errors.Is(err, domain.ErrClientRequired),
		errors.Is(err, domain.ErrUnknownClient),
		errors.Is(err, domain.ErrPresetNameRequired),
		errors.Is(err, domain.ErrInvalidUserFields):
		return http.StatusBadRequest, err.Error()
	}

	// Remote store failures surface verbatim: no retry, no rollback, and the
	// caller needs to know exactly what the backing service said.
	var re *domain.RemoteError
	if errors.As(err, &re) {
		log.Error().Err(err).Str("op", re.Op).Str("sheet", re.Sheet).Msg("remote store failure")
		return http.StatusBadGateway, re.Error()
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
