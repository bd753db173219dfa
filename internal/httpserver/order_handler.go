package httpserver

import (
	"net/http"

	"erp-be/internal/order"
	"erp-be/internal/utils"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	Orders order.Service
}

func (h *OrderHandler) Create(c echo.Context) error {
	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Status: "error", Message: "invalid request body"})
	}

	userID, ok := utils.GetUserIDFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing user identity")
	}

	o, err := h.Orders.Create(c.Request().Context(), userID, req.Description)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, o)
}

func (h *OrderHandler) Get(c echo.Context) error {
	o, err := h.Orders.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, o)
}

// Search filters by optional description, status and user query params.
func (h *OrderHandler) Search(c echo.Context) error {
	var f order.Filter

	if v := c.QueryParam("description"); v != "" {
		f.Description = utils.StrPtr(v)
	}
	if v := c.QueryParam("status"); v != "" {
		status := order.Status(v)
		f.Status = &status
	}
	if v := c.QueryParam("userID"); v != "" {
		f.UserID = utils.StrPtr(v)
	}

	orders, err := h.Orders.Search(c.Request().Context(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) AddLine(c echo.Context) error {
	var req lineRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Status: "error", Message: "invalid request body"})
	}

	o, err := h.Orders.AddLine(c.Request().Context(), c.Param("id"), req.ItemID, req.Quantity)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, o)
}

func (h *OrderHandler) UpdateLine(c echo.Context) error {
	var req quantityRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Status: "error", Message: "invalid request body"})
	}

	o, err := h.Orders.UpdateLine(c.Request().Context(), c.Param("id"), c.Param("itemID"), req.Quantity)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, o)
}

func (h *OrderHandler) RemoveLine(c echo.Context) error {
	o, err := h.Orders.RemoveLine(c.Request().Context(), c.Param("id"), c.Param("itemID"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, o)
}

func (h *OrderHandler) ChangeStatus(c echo.Context) error {
	var req statusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Status: "error", Message: "invalid request body"})
	}

	o, err := h.Orders.ChangeStatus(c.Request().Context(), c.Param("id"), req.Action)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, o)
}
