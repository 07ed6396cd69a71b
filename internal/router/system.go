package router

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/item-service/internal/handler"
	"github.com/deppfellow/item-service/static"
)

// registerSystemRoutes registers the probes and the API docs.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/health", h.Health.Live)
	r.GET("/ready", h.Health.Ready)
	r.GET("/status", h.Health.CheckStatus)

	r.StaticFS("/static", static.Files)
	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}
