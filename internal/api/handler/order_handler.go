package handler

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/teamorders/orderdesk/internal/api/metrics"
	"github.com/teamorders/orderdesk/internal/core/domain"
	"github.com/teamorders/orderdesk/internal/core/ports"
)

// OrderHandler serves order entry, the dashboard reads, and the row-addressed
// admin mutations.
type OrderHandler struct {
	service ports.OrderService
}

func NewOrderHandler(service ports.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

type submitOrderRequest struct {
	User      string  `json:"user,omitempty"`
	Client    string  `json:"client" validate:"required"`
	Amount    float64 `json:"amount" validate:"gte=0"`
	ProfitPct float64 `json:"profit_pct" validate:"gte=0,lte=100"`
}

type editOrderRequest struct {
	Client    *string  `json:"client,omitempty"`
	Amount    *float64 `json:"amount,omitempty" validate:"omitempty,gte=0"`
	ProfitPct *float64 `json:"profit_pct,omitempty" validate:"omitempty,gte=0,lte=100"`
	Reason    string   `json:"reason" validate:"required"`
}

// filterFromQuery builds the order filter from query params. Team members
// only ever see their own rows regardless of the user param.
func filterFromQuery(c echo.Context, username, role string) ports.OrderFilter {
	f := ports.OrderFilter{
		User:   c.QueryParam("user"),
		Client: c.QueryParam("client"),
		Status: c.QueryParam("status"),
		From:   c.QueryParam("from"),
		To:     c.QueryParam("to"),
	}
	if role != domain.RoleAdmin {
		f.User = username
	}
	return f
}

// List returns the filtered orders, newest first. Row indices in the
// response are valid only until the next mutation against the orders table.
//
// @Summary      List orders
// @Tags         orders
// @Produce      json
// @Param        user    query  string  false  "Filter by username (admin only)"
// @Param        client  query  string  false  "Filter by client"
// @Param        status  query  string  false  "Filter by derived status"
// @Param        from    query  string  false  "Inclusive start date (2006-01-02)"
// @Param        to      query  string  false  "Inclusive end date (2006-01-02)"
// @Success      200  {array}  ports.OrderView
// @Router       /v1/orders [get]
func (h *OrderHandler) List(c echo.Context) error {
	username, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	views, err := h.service.List(c.Request().Context(), filterFromQuery(c, username, role))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, views)
}

// Submit records a new order for the caller. Admins may submit on behalf of
// another user; team members always submit as themselves.
//
// @Summary      Submit an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body  body      submitOrderRequest  true  "Order details"
// @Success      201   {object}  ports.OrderView
// @Failure      400   {object}  map[string]string
// @Router       /v1/orders [post]
func (h *OrderHandler) Submit(c echo.Context) error {
	username, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req submitOrderRequest
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

	view, err := h.service.Submit(c.Request().Context(), ports.SubmitOrderInput{
		User:      user,
		Client:    req.Client,
		Amount:    req.Amount,
		ProfitPct: req.ProfitPct,
	})
	if err != nil {
		return err
	}

	metrics.OrdersSubmittedTotal.Inc()
	return c.JSON(http.StatusCreated, view)
}

// Edit merges a partial update into the order at the given row, recomputing
// the profit amount, and records the edit in the audit trail.
//
// @Summary      Edit an order (admin)
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        row   path      int               true  "1-based sheet row"
// @Param        body  body      editOrderRequest  true  "Partial fields plus required reason"
// @Success      200   {object}  ports.OrderView
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /v1/orders/{row} [put]
func (h *OrderHandler) Edit(c echo.Context) error {
	username, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	row, err := rowParam(c)
	if err != nil {
		return err
	}

	var req editOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	view, err := h.service.Edit(c.Request().Context(), username, row, ports.OrderPatch{
		Client:    req.Client,
		Amount:    req.Amount,
		ProfitPct: req.ProfitPct,
	}, req.Reason)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// Delete removes the order at the given row. Every row index issued before
// this call is stale afterwards; callers must reload.
//
// @Summary      Delete an order (admin)
// @Tags         orders
// @Produce      json
// @Param        row     path   int     true  "1-based sheet row"
// @Param        reason  query  string  true  "Reason recorded in the audit trail"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /v1/orders/{row} [delete]
func (h *OrderHandler) Delete(c echo.Context) error {
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
		"message": "order deleted; previously returned row indices are stale, reload before the next row operation",
	})
}

// Summary aggregates the filtered orders for the dashboard.
//
// @Summary      Order summary (admin)
// @Tags         orders
// @Produce      json
// @Success      200  {object}  ports.OrderSummary
// @Router       /v1/orders/summary [get]
func (h *OrderHandler) Summary(c echo.Context) error {
	username, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	sum, err := h.service.Summary(c.Request().Context(), filterFromQuery(c, username, role))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sum)
}

// Export returns the filtered orders as CSV in schema column order. The
// export is buffered so a remote load failure surfaces as an error response
// instead of a truncated download.
//
// @Summary      Export orders as CSV (admin)
// @Tags         orders
// @Produce      text/csv
// @Success      200
// @Failure      502  {object}  map[string]string
// @Router       /v1/orders/export [get]
func (h *OrderHandler) Export(c echo.Context) error {
	username, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := h.service.ExportCSV(c.Request().Context(), filterFromQuery(c, username, role), &buf); err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="orders.csv"`)
	return c.Blob(http.StatusOK, "text/csv", buf.Bytes())
}

func rowParam(c echo.Context) (int, error) {
	row, err := strconv.Atoi(c.Param("row"))
	if err != nil || row < 2 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "row must be a sheet row number greater than 1")
	}
	return row, nil
}
