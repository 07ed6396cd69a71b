// Package repository handles all interactions with the database.
//
// It contains raw SQL queries and methods to fetch, persist,
// or delete data, abstracting SQL logic away from the service layer.
// Each method acquires its own connection through a Connector and
// never keeps it past the call.
package repository

import (
	"context"

	"github.com/deppfellow/item-service/internal/database"
	"github.com/deppfellow/item-service/internal/server"
)

// Connector hands out a connection scoped to a single call.
// *database.Database is the production implementation.
type Connector interface {
	WithConn(ctx context.Context, fn func(conn database.Conn) error) error
}

// Repositories is a container for all repository instances.
type Repositories struct {
	Items  *ItemRepository
	System *SystemRepository
}

// NewRepositories constructs the repository container on top of s.DB.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Items:  NewItemRepository(s.DB),
		System: NewSystemRepository(s.DB),
	}
}
