package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rudidomingues/censotec/internal/domain"
)

// createDatasetRequest is the body of POST /v1/datasets. Mapping is
// optional; omitted fields fall back to the default census column layout.
type createDatasetRequest struct {
	Name    string                `json:"name"`
	Source  string                `json:"source"`
	Mapping *domain.ColumnMapping `json:"mapping,omitempty"`
}

func (h *Handler) listDatasets(w http.ResponseWriter, r *http.Request) {
	datasets, err := h.ingestion.List(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"datasets":    datasets,
		"total_count": len(datasets),
	})
}

func (h *Handler) createDataset(w http.ResponseWriter, r *http.Request) {
	var req createDatasetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, domain.ErrValidation("invalid request body: %v", err))
		return
	}
	if req.Source == "" {
		h.writeError(w, domain.ErrValidation("source is required"))
		return
	}

	mapping := DefaultMappingOverlay(req.Mapping)
	ds, err := h.ingestion.Ingest(r.Context(), req.Name, req.Source, mapping)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ds)
}

// DefaultMappingOverlay merges a partial mapping onto the default column
// layout. A nil overlay returns the defaults unchanged.
func DefaultMappingOverlay(overlay *domain.ColumnMapping) domain.ColumnMapping {
	m := domain.DefaultColumnMapping()
	if overlay == nil {
		return m
	}
	if overlay.SchoolID != "" {
		m.SchoolID = overlay.SchoolID
	}
	if overlay.Combined != "" {
		m.Combined = overlay.Combined
	}
	if overlay.Lab != "" {
		m.Lab = overlay.Lab
	}
	if overlay.Internet != "" {
		m.Internet = overlay.Internet
	}
	if overlay.Devices != "" {
		m.Devices = overlay.Devices
	}
	if overlay.PassRate != "" {
		m.PassRate = overlay.PassRate
	}
	return m
}

func (h *Handler) getDataset(w http.ResponseWriter, r *http.Request) {
	ds, err := h.ingestion.Get(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ds)
}

func (h *Handler) deleteDataset(w http.ResponseWriter, r *http.Request) {
	if err := h.ingestion.Delete(r.Context(), chi.URLParam(r, "name")); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
