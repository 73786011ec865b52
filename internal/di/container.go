// Package di provides dependency injection configuration for the shelfnotes server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/listenupapp/shelfnotes/internal/auth"
	"github.com/listenupapp/shelfnotes/internal/config"
	"github.com/listenupapp/shelfnotes/internal/di/providers"
	"github.com/listenupapp/shelfnotes/internal/logger"
	"github.com/listenupapp/shelfnotes/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideAuthKey)

	// Database layer
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideBootstrap)

	// Auth layer
	do.Provide(injector, providers.ProvideTokenService)
	do.Provide(injector, providers.ProvidePasswordHasher)

	// Business services
	do.Provide(injector, providers.ProvideSessionService)
	do.Provide(injector, providers.ProvideAuthService)
	do.Provide(injector, providers.ProvideCatalogService)
	do.Provide(injector, providers.ProvideNoteService)

	// Workers
	do.Provide(injector, providers.ProvideSessionCleanupJob)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	steps := []func() error{
		invoke[*config.Config](injector),
		invoke[*logger.Logger](injector),
		invoke[providers.AuthKey](injector),
		invoke[*providers.StoreHandle](injector),
		invoke[*providers.Bootstrap](injector),
		invoke[*auth.TokenService](injector),
		invoke[*auth.PasswordHasher](injector),

		// Business services
		invoke[*service.SessionService](injector),
		invoke[*service.AuthService](injector),
		invoke[*service.CatalogService](injector),
		invoke[*service.NoteService](injector),

		// Workers
		invoke[*providers.SessionCleanupJob](injector),

		// Server
		invoke[*providers.HTTPServerHandle](injector),
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

func invoke[T any](injector do.Injector) func() error {
	return func() error {
		_, err := do.Invoke[T](injector)
		return err
	}
}
