package quiz

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
)

// Routes serves the quiz session endpoints. generatePerMinute limits generation per client IP.
func Routes(h *Handler, generatePerMinute int) chi.Router {
	r := chi.NewRouter()

	generate := r.With()
	if generatePerMinute > 0 {
		generate = r.With(httprate.LimitByIP(generatePerMinute, time.Minute))
	}
	generate.Post("/generate", h.Generate)

	r.Get("/active", h.Active)
	r.Post("/submit", h.Submit)
	r.Post("/quit", h.Quit)
	return r
}

func HistoryRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ListHistory)
	r.Get("/{id}", h.GetResult)
	r.Get("/{id}/export", h.ExportResult)
	return r
}
