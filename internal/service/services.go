// Package service contains the business logic.
//
// It sits between the handler and repository layers.
// It receives validated data from the handler, calls repository methods,
// logs failures with full detail and converts them into the client-facing
// errors of package errs.
package service

import (
	"github.com/deppfellow/item-service/internal/repository"
	"github.com/deppfellow/item-service/internal/server"
)

type Services struct {
	Items  *ItemService
	System *SystemService
}

func NewServices(s *server.Server, repos *repository.Repositories) *Services {
	var events EventPublisher
	if s.Job != nil {
		events = s.Job
	}

	return &Services{
		Items:  NewItemService(s, repos.Items, events),
		System: NewSystemService(s, repos.System),
	}
}
