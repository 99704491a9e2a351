package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/abhisek/passgate/internal/app"
	"github.com/abhisek/passgate/internal/auth"
	"github.com/abhisek/passgate/internal/config"
	"github.com/abhisek/passgate/internal/logging"
	"github.com/abhisek/passgate/internal/session"
	"github.com/abhisek/passgate/internal/store"
)

// runApp opens the store and the log file, builds the services, and
// launches the TUI.
func runApp(cmd *cobra.Command) error {
	st, cfg, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	level, err := cfg.Level()
	if err != nil {
		return err
	}
	log, closer, err := logging.Open(cfg.LogPath, level)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer closer.Close()

	log.Info("starting", "version", version, "meter_colors", cfg.MeterColors)

	svc, err := newAuthService(st, cfg, log)
	if err != nil {
		return err
	}

	err = app.Run(app.Options{
		Auth:        svc,
		MeterColors: cfg.MeterColors,
		Log:         log,
	})
	if err != nil {
		log.Error("tui exited", "err", err)
		return err
	}
	log.Info("exiting")
	return nil
}

// newAuthService builds the auth service over st with the configured bcrypt
// cost and session lifetime.
func newAuthService(st *store.Store, cfg config.Config, log *slog.Logger) (*auth.Service, error) {
	hasher, err := auth.NewBcryptHasher(cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("create hasher: %w", err)
	}
	return auth.NewService(
		st.UserRepo(),
		st.EventRepo(),
		hasher,
		session.NewManager(cfg.SessionLifetime),
		log,
	), nil
}
