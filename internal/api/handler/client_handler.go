package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/teamorders/orderdesk/internal/core/domain"
	"github.com/teamorders/orderdesk/internal/core/ports"
)

// ClientHandler serves the per-user client lists.
type ClientHandler struct {
	service ports.ClientService
}

func NewClientHandler(service ports.ClientService) *ClientHandler {
	return &ClientHandler{service: service}
}

type addClientRequest struct {
	User     string `json:"user,omitempty"`
	Client   string `json:"client" validate:"required"`
	OpenDate string `json:"open_date,omitempty"`
}

type editClientRequest struct {
	User     string `json:"user" validate:"required"`
	Client   string `json:"client" validate:"required"`
	OpenDate string `json:"open_date,omitempty"`
	Reason   string `json:"reason" validate:"required"`
}

// List returns client rows: a team member's own list, or any/all lists for
// an admin via the user query param.
//
// @Summary      List clients
// @Tags         clients
// @Produce      json
// @Param        user  query  string  false  "Filter by owning user (admin only)"
// @Success      200  {array}  ports.ClientRow
// @Router       /v1/clients [get]
func (h *ClientHandler) List(c echo.Context) error {
	username, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	user := username
	if role == domain.RoleAdmin {
		user = c.QueryParam("user")
	}

	rows, err := h.service.List(c.Request().Context(), user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rows)
}

// Add appends a client row. Team members add to their own list; admins may
// add on behalf of any user.
//
// @Summary      Add a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        body  body      addClientRequest  true  "Client details"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Router       /v1/clients [post]
func (h *ClientHandler) Add(c echo.Context) error {
	username, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req addClientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user := username
	if role == domain.RoleAdmin && req.User != "" {
		user = req.User
	}

	if err := h.service.Add(c.Request().Context(), domain.Client{
		User:     user,
		Name:     req.Client,
		OpenDate: req.OpenDate,
	}); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, map[string]string{"message": "client added"})
}

// Edit overwrites the client row in place and records the edit.
//
// @Summary      Edit a client (admin)
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        row   path      int                true  "1-based sheet row"
// @Param        body  body      editClientRequest  true  "New row contents plus required reason"
// @Success      200   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /v1/clients/{row} [put]
func (h *ClientHandler) Edit(c echo.Context) error {
	username, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	row, err := rowParam(c)
	if err != nil {
		return err
	}

	var req editClientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.Edit(c.Request().Context(), username, row, domain.Client{
		User:     req.User,
		Name:     req.Client,
		OpenDate: req.OpenDate,
	}, req.Reason); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "client updated"})
}

// Delete removes the client row; later row indices shift and are stale.
//
// @Summary      Delete a client (admin)
// @Tags         clients
// @Produce      json
// @Param        row     path   int     true  "1-based sheet row"
// @Param        reason  query  string  true  "Reason recorded in the audit trail"
// @Success      200  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /v1/clients/{row} [delete]
func (h *ClientHandler) Delete(c echo.Context) error {
	username, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	row, err := rowParam(c)
	if err != nil {
		return err
	}

	if err := h.service.Remove(c.Request().Context(), username, row, c.QueryParam("reason")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "client deleted; previously returned row indices are stale, reload before the next row operation",
	})
}
