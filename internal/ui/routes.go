package ui

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rudidomingues/censotec/internal/ui/assets"
)

// MountRoutes attaches the UI routes to r, which is expected to be mounted
// under /ui.
func MountRoutes(r chi.Router, h *Handler) {
	staticFS, err := fs.Sub(assets.StaticFS(), "static")
	if err == nil {
		r.Handle("/static/*", http.StripPrefix("/ui/static/", http.FileServer(http.FS(staticFS))))
	}

	r.Get("/", h.Home)
	r.Get("/datasets", h.DatasetsList)
	r.Get("/datasets/{name}", h.DatasetDetail)
	r.Get("/runs", h.RunsList)
	r.Get("/distributions", h.Distributions)
	r.Get("/distributions/{name}.svg", h.DistributionChart)
}
