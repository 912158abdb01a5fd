package ui

import (
	"errors"
	"log/slog"
	"net/http"

	gomponents "maragu.dev/gomponents"

	"github.com/rudidomingues/censotec/internal/domain"
	"github.com/rudidomingues/censotec/internal/service/analysis"
	"github.com/rudidomingues/censotec/internal/service/ingestion"
)

// Handler serves the web interface.
type Handler struct {
	Ingestion *ingestion.Service
	Analysis  *analysis.Service
	Seed      uint64 // seed for the reference distribution charts
	Logger    *slog.Logger
}

// NewHandler creates the UI handler.
func NewHandler(ing *ingestion.Service, an *analysis.Service, seed uint64, logger *slog.Logger) *Handler {
	return &Handler{
		Ingestion: ing,
		Analysis:  an,
		Seed:      seed,
		Logger:    logger.With("component", "ui"),
	}
}

func renderHTML(w http.ResponseWriter, status int, node gomponents.Node) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = node.Render(w)
}

func (h *Handler) renderServiceError(w http.ResponseWriter, err error) {
	var notFound *domain.NotFoundError
	if errors.As(err, &notFound) {
		renderHTML(w, http.StatusNotFound, errorPage("Not found", err.Error()))
		return
	}
	h.Logger.Error("ui request failed", "error", err)
	renderHTML(w, http.StatusInternalServerError, errorPage("Something went wrong", err.Error()))
}
