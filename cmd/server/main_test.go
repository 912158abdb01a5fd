package main

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rudidomingues/censotec/internal/app"
	"github.com/rudidomingues/censotec/internal/config"
	"github.com/rudidomingues/censotec/internal/engine"
)

func newTestRouter(t *testing.T, cfg *config.Config) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	if cfg.MetaDBPath == "" {
		cfg.MetaDBPath = filepath.Join(t.TempDir(), "meta.sqlite")
	}
	if cfg.RateLimitRPS == 0 {
		cfg.RateLimitRPS = 100
		cfg.RateLimitBurst = 200
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		cfg.CORSAllowedOrigins = []string{"*"}
	}

	eng, err := engine.Open("", logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = eng.Close() })

	writeDB, readDB, err := app.OpenMetastore(cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = writeDB.Close()
		_ = readDB.Close()
	})

	a, err := app.New(app.Deps{Cfg: cfg, Engine: eng, WriteDB: writeDB, ReadDB: readDB, Logger: logger})
	require.NoError(t, err)

	router, err := newRouter(cfg, a, logger)
	require.NoError(t, err)
	return router
}

func TestRouter_PublicEndpoints(t *testing.T) {
	router := newTestRouter(t, &config.Config{Seed: 42, Alpha: 0.05})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ui/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Equal(t, "/ui", rec.Header().Get("Location"))
}

func TestRouter_AuthDisabledWithoutSecret(t *testing.T) {
	router := newTestRouter(t, &config.Config{Seed: 42, Alpha: 0.05})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/datasets", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_AuthRequiredWithSecret(t *testing.T) {
	router := newTestRouter(t, &config.Config{Seed: 42, Alpha: 0.05, JWTSecret: "test-secret"})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/datasets", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Health check stays public.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
