package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/teamorders/orderdesk/internal/core/domain"
	"github.com/teamorders/orderdesk/internal/core/ports"
)

// PresetHandler serves the saved dashboard filter presets.
type PresetHandler struct {
	service ports.PresetService
}

func NewPresetHandler(service ports.PresetService) *PresetHandler {
	return &PresetHandler{service: service}
}

type savePresetRequest struct {
	Name     string `json:"name" validate:"required"`
	User     string `json:"user,omitempty"`
	Client   string `json:"client,omitempty"`
	Status   string `json:"status,omitempty"`
	FromDate string `json:"from_date,omitempty"`
	ToDate   string `json:"to_date,omitempty"`
}

// List returns all saved presets.
//
// @Summary      List filter presets (admin)
// @Tags         presets
// @Produce      json
// @Success      200  {array}  ports.PresetRow
// @Router       /v1/presets [get]
func (h *PresetHandler) List(c echo.Context) error {
	rows, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rows)
}

// Save upserts a preset by name.
//
// @Summary      Save a filter preset (admin)
// @Tags         presets
// @Accept       json
// @Produce      json
// @Param        body  body      savePresetRequest  true  "Preset fields"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Router       /v1/presets [post]
func (h *PresetHandler) Save(c echo.Context) error {
	username, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req savePresetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.Save(c.Request().Context(), username, domain.FilterPreset{
		Name:     req.Name,
		User:     req.User,
		Client:   req.Client,
		Status:   req.Status,
		FromDate: req.FromDate,
		ToDate:   req.ToDate,
	}); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "preset saved"})
}

// Delete removes the preset row.
//
// @Summary      Delete a filter preset (admin)
// @Tags         presets
// @Produce      json
// @Param        row  path  int  true  "1-based sheet row"
// @Success      200  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /v1/presets/{row} [delete]
func (h *PresetHandler) Delete(c echo.Context) error {
	username, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	row, err := rowParam(c)
	if err != nil {
		return err
	}

	if err := h.service.Remove(c.Request().Context(), username, row); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "preset deleted"})
}
