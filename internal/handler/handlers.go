// Package handler is the first layer after the router.
//
// It binds and validates requests using the validation package, calls the
// service layer and writes the JSON responses.
package handler

import (
	"github.com/deppfellow/item-service/internal/server"
	"github.com/deppfellow/item-service/internal/service"
	"github.com/deppfellow/item-service/static"
)

// Handlers groups all HTTP handlers.
type Handlers struct {
	Health  *HealthHandler
	Item    *ItemHandler
	OpenAPI *OpenAPIHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(s, services.System),
		Item:    NewItemHandler(s, services.Items),
		OpenAPI: NewOpenAPIHandler(s, static.Files),
	}
}
