package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/golfph/gateway/internal/api"
	"github.com/golfph/gateway/internal/api/appointments"
	"github.com/golfph/gateway/internal/api/mailing"
	"github.com/golfph/gateway/internal/api/members"
	"github.com/golfph/gateway/internal/api/rates"
	"github.com/golfph/gateway/internal/api/sweep"
	"github.com/golfph/gateway/internal/config"
	"github.com/golfph/gateway/internal/crm"
	"github.com/golfph/gateway/internal/odoo"
	"github.com/golfph/gateway/internal/sendfox"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// A local .env is optional; real deployments set the environment.
	_ = godotenv.Load()
	cfg := config.Load()

	if cfg.OdooURL == "" || cfg.OdooDB == "" || cfg.OdooAPIKey == "" {
		return fmt.Errorf("ODOO_URL, ODOO_DB and ODOO_API_KEY must be set")
	}

	client := odoo.New(cfg.OdooURL, cfg.OdooDB, cfg.OdooUID, cfg.OdooAPIKey)
	svc := crm.New(client)

	sf := sendfox.New(cfg.SendFoxBaseURL, cfg.SendFoxToken)
	migrator := &sendfox.Migrator{
		Client:     sf,
		SourceList: cfg.SourceListID,
		DestList:   cfg.DestListID,
		BatchSize:  cfg.MigrateBatch,
		BatchPause: cfg.MigratePause,
	}

	mux := http.NewServeMux()

	rates.RegisterRoutes(mux, svc)
	members.RegisterRoutes(mux, svc.Partners)
	appointments.RegisterRoutes(mux, svc)
	sweep.RegisterRoutes(mux, client, svc.Partners)
	mailing.RegisterRoutes(mux, sf, migrator)

	// Catch-all: unknown routes get the standard error body.
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		api.WriteError(w, api.NewNotFoundError(
			fmt.Sprintf("no route found for %s %s", r.Method, r.URL.Path)))
	})

	handler := api.Chain(mux,
		api.Recovery(),
		api.RequestID(),
		api.CORS(cfg.AllowedOrigin),
		api.Logging(),
	)

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		slog.Info("shutting down server")
		if err := srv.Shutdown(context.Background()); err != nil {
			slog.Error("server shutdown error", "error", err)
		}
	}()

	slog.Info("starting gateway", "addr", cfg.Addr, "origin", cfg.AllowedOrigin)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen: %w", err)
	}

	return nil
}
