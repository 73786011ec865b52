package api

import (
	"context"

	"github.com/listenupapp/shelfnotes/internal/service"
)

// Pinger reports whether the database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Services groups the business logic services used by the API server.
type Services struct {
	Auth    *service.AuthService
	Catalog *service.CatalogService
	Notes   *service.NoteService
	DB      Pinger // Health checks only
}
