package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/listenupapp/shelfnotes/internal/auth"
	"github.com/listenupapp/shelfnotes/internal/config"
	"github.com/listenupapp/shelfnotes/internal/logger"
	"github.com/listenupapp/shelfnotes/internal/store/sqlite"
)

// app carries state shared by every subcommand.
type app struct {
	dataPath string
	verbose  bool

	cfg    *config.Config
	logger *slog.Logger
	store  *sqlite.Store
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "shelfctl",
		Short:         "Administer a shelfnotes data directory",
		Long:          "shelfctl manages the catalog seed, books and accounts stored in a shelfnotes SQLite database.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.open()
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return a.close()
		},
	}

	root.PersistentFlags().StringVar(&a.dataPath, "data-path", "", "Data directory (defaults to DATA_PATH)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")

	root.AddCommand(
		newSeedCmd(a),
		newBooksCmd(a),
		newUsersCmd(a),
		newSessionsCmd(a),
	)
	return root
}

func (a *app) open() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	if a.dataPath != "" {
		cfg.Storage.DataPath = a.dataPath
	}
	a.cfg = cfg

	level := slog.LevelWarn
	if a.verbose {
		level = slog.LevelDebug
	}
	a.logger = logger.New(logger.Config{
		Writer:      os.Stderr,
		Level:       level,
		Environment: cfg.App.Environment,
	}).Logger

	if err := os.MkdirAll(cfg.Storage.DataPath, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	st, err := sqlite.Open(cfg.Storage.DatabasePath(), a.logger)
	if err != nil {
		return err
	}
	a.store = st
	return nil
}

func (a *app) close() error {
	if a.store == nil {
		return nil
	}
	err := a.store.Close()
	a.store = nil
	return err
}

// tokenService builds a token service from the data directory key.
func (a *app) tokenService() (*auth.TokenService, error) {
	key, err := auth.LoadOrGenerateKey(a.cfg.Storage.DataPath)
	if err != nil {
		return nil, err
	}
	return auth.NewTokenService(key, a.cfg.Auth.AccessTokenDuration, a.cfg.Auth.RefreshTokenDuration)
}
