package httpserver

import (
	"net/http"

	"erp-be/internal/tag"

	"github.com/labstack/echo/v4"
)

type TagHandler struct {
	Tags tag.Service
}

func (h *TagHandler) List(c echo.Context) error {
	tags, err := h.Tags.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, tags)
}

func (h *TagHandler) Create(c echo.Context) error {
	var req tagRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Status: "error", Message: "invalid request body"})
	}

	t, err := h.Tags.Create(c.Request().Context(), req.Name)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, t)
}

func (h *TagHandler) Update(c echo.Context) error {
	var req tagRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Status: "error", Message: "invalid request body"})
	}

	if err := h.Tags.Update(c.Request().Context(), c.Param("id"), req.Name); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *TagHandler) Delete(c echo.Context) error {
	if err := h.Tags.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
