package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/item-service/internal/model/item"
	"github.com/deppfellow/item-service/internal/server"
	"github.com/deppfellow/item-service/internal/service"
)

type ItemHandler struct {
	Handler
	itemService *service.ItemService
}

func NewItemHandler(s *server.Server, itemService *service.ItemService) *ItemHandler {
	return &ItemHandler{
		Handler:     NewHandler(s),
		itemService: itemService,
	}
}

func (h *ItemHandler) ListItems(c echo.Context, _ *item.ListItemsPayload) (*item.ListItemsResponse, error) {
	return h.itemService.ListItems(c.Request().Context())
}

func (h *ItemHandler) CreateItem(c echo.Context, payload *item.CreateItemPayload) (*item.Item, error) {
	return h.itemService.CreateItem(c.Request().Context(), payload)
}

func (h *ItemHandler) GetItem(c echo.Context, payload *item.ItemIDPayload) (*item.Item, error) {
	return h.itemService.GetItem(c.Request().Context(), payload.ID())
}

func (h *ItemHandler) DeleteItem(c echo.Context, payload *item.ItemIDPayload) (*item.DeleteItemResponse, error) {
	return h.itemService.DeleteItem(c.Request().Context(), payload.ID())
}
