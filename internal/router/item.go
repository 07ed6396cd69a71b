package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/item-service/internal/handler"
)

func registerItemRoutes(r *echo.Echo, h *handler.Handlers) {
	items := r.Group("/items")

	items.GET("", handler.Handle(h.Item.Handler, h.Item.ListItems, http.StatusOK))
	items.POST("", handler.Handle(h.Item.Handler, h.Item.CreateItem, http.StatusCreated))
	items.GET("/:id", handler.Handle(h.Item.Handler, h.Item.GetItem, http.StatusOK))
	items.DELETE("/:id", handler.Handle(h.Item.Handler, h.Item.DeleteItem, http.StatusOK))
}
