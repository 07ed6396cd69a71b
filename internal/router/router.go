// Package router builds the Echo instance: global error handler,
// middleware chain and routes.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/item-service/internal/handler"
	"github.com/deppfellow/item-service/internal/middleware"
	"github.com/deppfellow/item-service/internal/server"
)

func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
	)

	// After the request logger, so rejected requests are still logged.
	if middlewares.RateLimit.Enabled() {
		router.Use(middlewares.RateLimit.Limit())
	}

	registerSystemRoutes(router, h)
	registerItemRoutes(router, h)

	return router
}
