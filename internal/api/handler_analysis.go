package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rudidomingues/censotec/internal/domain"
)

type ttestRequest struct {
	Alpha *float64 `json:"alpha,omitempty"`
}

type ttestResponse struct {
	domain.TTestResult
	Dataset  string `json:"dataset"`
	Decision string `json:"decision"`
}

func (h *Handler) getSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.analysis.Summary(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *Handler) runTTest(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	alpha := h.defaultAlpha
	if r.Body != nil && r.ContentLength != 0 {
		var req ttestRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.writeError(w, domain.ErrValidation("invalid request body: %v", err))
			return
		}
		if req.Alpha != nil {
			alpha = *req.Alpha
		}
	}

	res, err := h.analysis.TTest(r.Context(), name, alpha)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ttestResponse{
		TTestResult: *res,
		Dataset:     name,
		Decision:    res.Decision(),
	})
}

func (h *Handler) listRuns(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			h.writeError(w, domain.ErrValidation("invalid limit %q", raw))
			return
		}
		limit = v
	}

	runs, err := h.analysis.Runs(r.Context(), r.URL.Query().Get("dataset"), limit)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"runs":        runs,
		"total_count": len(runs),
	})
}
