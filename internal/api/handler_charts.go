package api

import (
	"bytes"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) getChart(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	kind := chi.URLParam(r, "kind")

	// Render into a buffer first so failures still produce a JSON error
	// instead of a truncated SVG.
	var buf bytes.Buffer
	if err := h.charts.Render(r.Context(), name, kind, &buf); err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = buf.WriteTo(w)
}
