package httpserver

import (
	"net/http"

	"erp-be/internal/report"

	"github.com/labstack/echo/v4"
)

type ReportHandler struct {
	Reports report.Service
}

func (h *ReportHandler) Metadata(c echo.Context) error {
	m, err := h.Reports.Metadata(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, m)
}

func (h *ReportHandler) Overview(c echo.Context) error {
	o, err := h.Reports.Overview(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, o)
}

func (h *ReportHandler) LatestOrders(c echo.Context) error {
	l, err := h.Reports.LatestOrders(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, l)
}
