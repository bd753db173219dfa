package httpserver

import (
	"net/http"

	"erp-be/internal/item"
	"erp-be/internal/utils"

	"github.com/labstack/echo/v4"
)

type ItemHandler struct {
	Items item.Service
}

func (h *ItemHandler) List(c echo.Context) error {
	items, err := h.Items.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ItemHandler) Get(c echo.Context) error {
	it, err := h.Items.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, it)
}

func (h *ItemHandler) Create(c echo.Context) error {
	var req itemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Status: "error", Message: "invalid request body"})
	}

	userID, ok := utils.GetUserIDFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing user identity")
	}

	it, err := h.Items.Create(c.Request().Context(), item.CreateParams{
		Name:        req.Name,
		Description: req.Description,
		Stock:       req.Stock,
		Price:       req.Price,
		TagIDs:      req.TagIDs,
		UserID:      userID,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, it)
}

func (h *ItemHandler) Update(c echo.Context) error {
	var req itemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Status: "error", Message: "invalid request body"})
	}

	err := h.Items.Update(c.Request().Context(), item.UpdateParams{
		ID:          c.Param("id"),
		Name:        req.Name,
		Description: req.Description,
		Stock:       req.Stock,
		Price:       req.Price,
		TagIDs:      req.TagIDs,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ItemHandler) Delete(c echo.Context) error {
	if err := h.Items.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
