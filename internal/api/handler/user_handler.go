package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/teamorders/orderdesk/internal/core/domain"
	"github.com/teamorders/orderdesk/internal/core/ports"
)

// UserHandler serves the admin user-management screen.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

type addUserRequest struct {
	Username    string `json:"username" validate:"required"`
	DisplayName string `json:"display_name,omitempty"`
	Role        string `json:"role" validate:"required,oneof=admin team"`
	Password    string `json:"password" validate:"required"`
}

type updateUserRequest struct {
	DisplayName *string `json:"display_name,omitempty"`
	Role        *string `json:"role,omitempty" validate:"omitempty,oneof=admin team"`
	Password    *string `json:"password,omitempty"`
	Active      *bool   `json:"active,omitempty"`
}

// List returns every account, active or not.
//
// @Summary      List users (admin)
// @Tags         users
// @Produce      json
// @Success      200  {array}  ports.UserRow
// @Router       /v1/users [get]
func (h *UserHandler) List(c echo.Context) error {
	rows, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rows)
}

// Add creates an account.
//
// @Summary      Add a user (admin)
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      addUserRequest  true  "Account details"
// @Success      201   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /v1/users [post]
func (h *UserHandler) Add(c echo.Context) error {
	username, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req addUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.Add(c.Request().Context(), username, domain.User{
		Username:    req.Username,
		DisplayName: req.DisplayName,
		Role:        req.Role,
		Password:    req.Password,
		Active:      true,
	}); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, map[string]string{"message": "user added"})
}

// Update applies a partial account edit. Deactivation (active=false) is the
// only form of removal; there is no delete route.
//
// @Summary      Update a user (admin)
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        row   path      int                true  "1-based sheet row"
// @Param        body  body      updateUserRequest  true  "Partial account fields"
// @Success      200   {object}  ports.UserRow
// @Failure      409   {object}  map[string]string
// @Router       /v1/users/{row} [put]
func (h *UserHandler) Update(c echo.Context) error {
	username, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	row, err := rowParam(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := h.service.Update(c.Request().Context(), username, row, ports.UserUpdate{
		DisplayName: req.DisplayName,
		Role:        req.Role,
		Password:    req.Password,
		Active:      req.Active,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}
