package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/logoquiz/internal/httpserver"
	"github.com/robalobadob/logoquiz/internal/store"
)

var flagPort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the quiz JSON API",
	Long: `Start the HTTP server the browser front end talks to.

Sessions live only as long as the process. SESSION_STORE selects where:
  memory  - a map guarded by a mutex (default)
  sqlite  - an in-memory SQLite database (SQLITE_DSN)

Examples:
  logoquiz serve
  logoquiz serve --port 8080
  SESSION_STORE=sqlite logoquiz serve`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagPort, "port", "", "HTTP port (empty = PORT)")
	// The bare root command serves too.
	rootCmd.Flags().AddFlagSet(serveCmd.Flags())
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	eng, err := newEngine()
	if err != nil {
		return err
	}

	st, closeStore, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	if cfg.Production() && cfg.SessionSecret == "dev_secret_change_me" {
		log.Warn().Msg("SESSION_SECRET is the development default")
	}

	srv := httpserver.New(eng, st, httpserver.Options{
		SessionSecret: cfg.SessionSecret,
		ClientOrigin:  cfg.ClientOrigin,
		Secure:        cfg.Production(),
	})

	port := flagPort
	if port == "" {
		port = cfg.Port
	}
	log.Info().Str("port", port).Str("store", cfg.SessionStore).Msg("starting logoquiz")
	if err := srv.Start(ctx, ":"+port); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}

// openStore builds the session store selected by SESSION_STORE.
func openStore(ctx context.Context) (store.Store, func(), error) {
	if cfg.SessionStore != "sqlite" {
		return store.NewMemoryStore(), func() {}, nil
	}
	db, err := store.OpenSQLite(ctx, cfg.SQLiteDSN)
	if err != nil {
		return nil, nil, err
	}
	return db, func() {
		if err := db.Close(); err != nil {
			log.Warn().Err(err).Msg("close sqlite")
		}
	}, nil
}
