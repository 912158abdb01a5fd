// Package api provides the HTTP handlers for the analysis REST API.
package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rudidomingues/censotec/internal/domain"
)

// ingestionService defines the dataset lifecycle operations used by the handler.
type ingestionService interface {
	Ingest(ctx context.Context, name, source string, mapping domain.ColumnMapping) (*domain.Dataset, error)
	Get(ctx context.Context, name string) (*domain.Dataset, error)
	List(ctx context.Context) ([]*domain.Dataset, error)
	Delete(ctx context.Context, name string) error
}

// analysisService defines the statistics operations used by the handler.
type analysisService interface {
	Summary(ctx context.Context, datasetName string) (*domain.DatasetSummary, error)
	TTest(ctx context.Context, datasetName string, alpha float64) (*domain.TTestResult, error)
	Runs(ctx context.Context, datasetName string, limit int) ([]*domain.AnalysisRun, error)
}

// chartsService renders one dataset chart as SVG.
type chartsService interface {
	Render(ctx context.Context, datasetName, kind string, w io.Writer) error
}

// Handler serves the /v1 REST API.
type Handler struct {
	ingestion    ingestionService
	analysis     analysisService
	charts       chartsService
	defaultAlpha float64
	logger       *slog.Logger
}

// NewHandler creates the API handler. defaultAlpha is used when a t-test
// request does not specify a significance level.
func NewHandler(ing ingestionService, an analysisService, ch chartsService, defaultAlpha float64, logger *slog.Logger) *Handler {
	return &Handler{
		ingestion:    ing,
		analysis:     an,
		charts:       ch,
		defaultAlpha: defaultAlpha,
		logger:       logger.With("component", "api"),
	}
}

// RegisterRoutes attaches /healthz and the /v1 API to r. The auth
// middleware, when non-nil, guards /v1 only; health stays public.
func (h *Handler) RegisterRoutes(r chi.Router, auth func(http.Handler) http.Handler) {
	r.Get("/healthz", h.health)
	r.Route("/v1", func(r chi.Router) {
		if auth != nil {
			r.Use(auth)
		}
		r.Get("/datasets", h.listDatasets)
		r.Post("/datasets", h.createDataset)
		r.Get("/datasets/{name}", h.getDataset)
		r.Delete("/datasets/{name}", h.deleteDataset)
		r.Get("/datasets/{name}/summary", h.getSummary)
		r.Post("/datasets/{name}/ttest", h.runTTest)
		r.Get("/runs", h.listRuns)
		r.Get("/charts/{name}/{kind}", h.getChart)
	})
}

// Routes returns a standalone router with no auth, used by tests.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	h.RegisterRoutes(r, nil)
	return r
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := httpStatusFromDomainError(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", "error", err)
	}
	writeJSON(w, status, map[string]any{
		"code":    status,
		"message": err.Error(),
	})
}
