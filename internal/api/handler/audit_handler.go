package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/teamorders/orderdesk/internal/core/ports"
)

// AuditHandler exposes the audit trail read-only. There are no mutation
// routes; the trail is append-only and written by the services.
type AuditHandler struct {
	service ports.AuditService
}

func NewAuditHandler(service ports.AuditService) *AuditHandler {
	return &AuditHandler{service: service}
}

// List returns the full audit trail.
//
// @Summary      List audit entries (admin)
// @Tags         audit
// @Produce      json
// @Success      200  {array}  domain.AuditEntry
// @Router       /v1/audit [get]
func (h *AuditHandler) List(c echo.Context) error {
	entries, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entries)
}
