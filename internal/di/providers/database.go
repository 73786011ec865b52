package providers

import (
	"context"
	"fmt"
	"os"

	"github.com/samber/do/v2"

	"github.com/listenupapp/shelfnotes/internal/config"
	"github.com/listenupapp/shelfnotes/internal/logger"
	"github.com/listenupapp/shelfnotes/internal/seed"
	"github.com/listenupapp/shelfnotes/internal/store/sqlite"
)

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	*sqlite.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the database store.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if err := os.MkdirAll(cfg.Storage.DataPath, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := cfg.Storage.DatabasePath()
	db, err := sqlite.Open(dbPath, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Database initialized", "path", dbPath)

	return &StoreHandle{Store: db}, nil
}

// Bootstrap records what happened while preparing the catalog.
type Bootstrap struct {
	// SeedApplied is true when the classics were loaded during this start.
	SeedApplied bool
}

// ProvideBootstrap applies the initial catalog seed when enabled.
func ProvideBootstrap(i do.Injector) (*Bootstrap, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)

	if !cfg.Catalog.SeedOnStart {
		log.Info("Catalog seeding disabled by configuration")
		return &Bootstrap{}, nil
	}

	applied, err := seed.NewSeeder(storeHandle.Store, log.Logger).Apply(context.Background())
	if err != nil {
		return nil, fmt.Errorf("apply seed: %w", err)
	}

	return &Bootstrap{SeedApplied: applied}, nil
}
