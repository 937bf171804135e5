package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/shrey-c/BookRecommender/internal/config"
	"github.com/shrey-c/BookRecommender/internal/db"
	"github.com/shrey-c/BookRecommender/internal/httpapi"
	"github.com/shrey-c/BookRecommender/internal/logging"
)

func main() {
	root := &cobra.Command{
		Use:   "bookrecommender",
		Short: "Library book lending and recommendation service",
		RunE:  runServe,
	}
	root.AddCommand(newMigrateCmd(), newCreateAdminCmd(), newImportBooksCmd())

	if err := root.Execute(); err != nil {
		logging.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadWithDefaults()
	if err != nil {
		return err
	}
	logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	logging.Info().Str("config", cfg.String()).Msg("configuration loaded")

	d, err := db.Open(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer func() {
		if err := d.Close(); err != nil {
			logging.Error().Err(err).Msg("close db")
		}
	}()

	srv := &http.Server{
		Addr:              cfg.HTTP.Address,
		Handler:           httpapi.NewServer(cfg, d).Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	logging.Info().Str("address", cfg.HTTP.Address).Msg("http server listening")

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errc:
		return err
	case sig := <-sigc:
		logging.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

func newMigrateCmd() *cobra.Command {
	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Schema migration helpers",
	}
	migrate.AddCommand(&cobra.Command{
		Use:   "rollback",
		Short: "Revert the most recently applied migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadWithDefaults()
			if err != nil {
				return err
			}
			d, err := db.Open(cfg.Database.Path)
			if err != nil {
				return err
			}
			defer d.Close()
			if err := db.RollbackLast(d); err != nil {
				return err
			}
			logging.Info().Msg("rolled back last migration")
			return nil
		},
	})
	return migrate
}
