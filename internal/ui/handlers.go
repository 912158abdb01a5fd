package ui

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rudidomingues/censotec/internal/chart"
	"github.com/rudidomingues/censotec/internal/domain"
	"github.com/rudidomingues/censotec/internal/sampler"
)

func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	datasets, err := h.Ingestion.List(r.Context())
	if err != nil {
		h.renderServiceError(w, err)
		return
	}
	runs, err := h.Analysis.Runs(r.Context(), "", 1)
	if err != nil {
		h.renderServiceError(w, err)
		return
	}

	lastRun := emptyStateCard("No analysis runs yet.")
	if len(runs) > 0 {
		run := runs[0]
		lastRun = ttestCard(&domain.TTestResult{
			Alpha:       run.Alpha,
			TStatistic:  run.TStatistic,
			DegreesFree: run.DegreesFree,
			PValue:      run.PValue,
			Significant: run.Significant,
			NWithTech:   int(run.NWithTech),
			NWithout:    int(run.NWithout),
		})
	}
	renderHTML(w, http.StatusOK, overviewPage(len(datasets), len(runs), lastRun))
}

func (h *Handler) DatasetsList(w http.ResponseWriter, r *http.Request) {
	datasets, err := h.Ingestion.List(r.Context())
	if err != nil {
		h.renderServiceError(w, err)
		return
	}

	rows := make([]datasetRowData, 0, len(datasets))
	for _, ds := range datasets {
		rows = append(rows, datasetRowData{
			Filter:      ds.Name,
			Name:        ds.Name,
			URL:         "/ui/datasets/" + ds.Name,
			Rows:        strconv.FormatInt(ds.Rows, 10),
			WithTech:    strconv.FormatInt(ds.WithTech, 10),
			WithoutTech: strconv.FormatInt(ds.WithoutTech, 10),
			Ingested:    formatTime(ds.IngestedAt),
		})
	}
	renderHTML(w, http.StatusOK, datasetsListPage(rows))
}

func (h *Handler) DatasetDetail(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	summary, err := h.Analysis.Summary(r.Context(), name)
	if err != nil {
		h.renderServiceError(w, err)
		return
	}

	var lastTest *domain.TTestResult
	runs, err := h.Analysis.Runs(r.Context(), name, 1)
	if err == nil && len(runs) > 0 {
		run := runs[0]
		lastTest = &domain.TTestResult{
			Alpha:       run.Alpha,
			TStatistic:  run.TStatistic,
			DegreesFree: run.DegreesFree,
			PValue:      run.PValue,
			Significant: run.Significant,
			NWithTech:   int(run.NWithTech),
			NWithout:    int(run.NWithout),
		}
	}

	renderHTML(w, http.StatusOK, datasetDetailPage(datasetDetailPageData{
		Dataset: summary.Dataset,
		Groups:  summary.Groups,
		TTest:   lastTest,
	}))
}

func (h *Handler) RunsList(w http.ResponseWriter, r *http.Request) {
	runs, err := h.Analysis.Runs(r.Context(), "", 100)
	if err != nil {
		h.renderServiceError(w, err)
		return
	}

	rows := make([]runRowData, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, runRowData{
			Filter:      run.DatasetName,
			Dataset:     run.DatasetName,
			DatasetURL:  "/ui/datasets/" + run.DatasetName,
			Alpha:       formatFloat(run.Alpha),
			TStatistic:  formatFloat(run.TStatistic),
			PValue:      strconv.FormatFloat(run.PValue, 'g', 4, 64),
			Significant: run.Significant,
			CreatedAt:   formatTime(run.CreatedAt),
		})
	}
	renderHTML(w, http.StatusOK, runsListPage(rows))
}

func (h *Handler) Distributions(w http.ResponseWriter, _ *http.Request) {
	infos := sampler.Catalog()
	items := make([]distributionItemData, 0, len(infos))
	for _, info := range infos {
		items = append(items, distributionItemData{Name: info.Name, Title: info.Title})
	}
	renderHTML(w, http.StatusOK, distributionsPage(items))
}

// DistributionChart renders one reference distribution histogram as SVG.
func (h *Handler) DistributionChart(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	rs, err := sampler.ReferenceByName(h.Seed, name)
	if err != nil {
		h.renderServiceError(w, err)
		return
	}

	var hist chart.Histogram
	if rs.Discrete {
		hist, err = chart.BuildDiscreteHistogram(rs.Values)
	} else {
		hist, err = chart.BuildHistogram(rs.Values, rs.Bins)
	}
	if err != nil {
		h.renderServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "max-age=3600")
	_ = chart.RenderHistogram(w, rs.Title, []chart.HistSeries{
		{Name: rs.Title, Hist: hist, Color: chart.Color(0)},
	})
}
