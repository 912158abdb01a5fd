// Package main runs the censotec HTTP server: the REST API under /v1 and
// the web interface under /ui.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/rudidomingues/censotec/internal/api"
	"github.com/rudidomingues/censotec/internal/app"
	"github.com/rudidomingues/censotec/internal/config"
	"github.com/rudidomingues/censotec/internal/engine"
	"github.com/rudidomingues/censotec/internal/middleware"
	"github.com/rudidomingues/censotec/internal/service/ingestion"
	"github.com/rudidomingues/censotec/internal/ui"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadDotEnv(".env"); err != nil {
		slog.Warn("could not load .env", "error", err)
	}

	cfg, err := config.LoadFromEnv()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)
	for _, warning := range cfg.Warnings {
		logger.Warn(warning)
	}

	eng, err := engine.Open(cfg.DuckDBPath, logger)
	if err != nil {
		return err
	}
	defer eng.Close() //nolint:errcheck

	writeDB, readDB, err := app.OpenMetastore(cfg)
	if err != nil {
		return err
	}
	defer writeDB.Close() //nolint:errcheck
	defer readDB.Close()  //nolint:errcheck

	a, err := app.New(app.Deps{Cfg: cfg, Engine: eng, WriteDB: writeDB, ReadDB: readDB, Logger: logger})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.Services.Ingestion.Restore(ctx); err != nil {
		logger.Warn("dataset restore failed", "error", err)
	}

	scheduler, err := ingestion.NewScheduler(a.Services.Ingestion, cfg.RescanCron, logger)
	if err != nil {
		return err
	}
	scheduler.Start()
	defer scheduler.Stop()

	router, err := newRouter(cfg, a, logger)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", cfg.ListenAddr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return err
		}
	}
	return nil
}

func newRouter(cfg *config.Config, a *app.App, logger *slog.Logger) (chi.Router, error) {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))
	r.Use(middleware.RateLimiter(middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		Burst:             cfg.RateLimitBurst,
	}))

	var validator *middleware.HS256Validator
	if cfg.JWTSecret != "" {
		v, err := middleware.NewHS256Validator(cfg.JWTSecret)
		if err != nil {
			return nil, err
		}
		validator = v
	}

	handler := api.NewHandler(
		a.Services.Ingestion, a.Services.Analysis, a.Services.Charts,
		cfg.Alpha, logger,
	)

	var auth func(http.Handler) http.Handler
	if validator != nil {
		auth = middleware.Auth(validator)
	}
	handler.RegisterRoutes(r, auth)

	r.Route("/ui", func(r chi.Router) {
		ui.MountRoutes(r, ui.NewHandler(a.Services.Ingestion, a.Services.Analysis, cfg.Seed, logger))
	})
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/ui", http.StatusTemporaryRedirect)
	})

	return r, nil
}
