package httpserver

import (
	"net/http"

	"erp-be/internal/item"
	"erp-be/internal/logger"
	"erp-be/internal/middleware"
	"erp-be/internal/order"
	"erp-be/internal/report"
	"erp-be/internal/tag"
	"erp-be/internal/user"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

type Deps struct {
	Users   user.Service
	Tags    tag.Service
	Items   item.Service
	Orders  order.Service
	Reports report.Service
}

// New builds the Echo instance with all routes and middleware attached.
func New(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Recover())
	e.Use(logger.RequestIDMiddleware)
	e.Use(logger.LoggingMiddleware)
	e.Use(middleware.RateLimitMiddleware)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	auth := &AuthHandler{Users: d.Users}
	tags := &TagHandler{Tags: d.Tags}
	items := &ItemHandler{Items: d.Items}
	orders := &OrderHandler{Orders: d.Orders}
	reports := &ReportHandler{Reports: d.Reports}

	v1 := e.Group("/api/v1")
	v1.POST("/register", auth.Register)
	v1.POST("/login", auth.Login)

	authed := v1.Group("", middleware.AuthMiddleware)
	authed.GET("/me", auth.Me)
	authed.GET("/users", auth.ListUsers)

	authed.GET("/tags", tags.List)
	authed.POST("/tags", tags.Create)
	authed.PUT("/tags/:id", tags.Update)
	authed.DELETE("/tags/:id", tags.Delete)

	authed.GET("/items", items.List)
	authed.GET("/items/:id", items.Get)
	authed.POST("/items", items.Create)
	authed.PUT("/items/:id", items.Update)
	authed.DELETE("/items/:id", items.Delete)

	authed.GET("/orders", orders.Search)
	authed.GET("/orders/:id", orders.Get)
	authed.POST("/orders", orders.Create)
	authed.POST("/orders/:id/lines", orders.AddLine)
	authed.PUT("/orders/:id/lines/:itemID", orders.UpdateLine)
	authed.DELETE("/orders/:id/lines/:itemID", orders.RemoveLine)
	authed.POST("/orders/:id/status", orders.ChangeStatus)

	authed.GET("/reports/metadata", reports.Metadata)
	authed.GET("/reports/overview", reports.Overview)
	authed.GET("/reports/latest-orders", reports.LatestOrders)

	return e
}
