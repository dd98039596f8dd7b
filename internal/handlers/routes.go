package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/swaggo/swag"
)

// RegisterRoutes mounts the probes, the API docs and the v1 API on r
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Get("/swagger/doc.json", h.SwaggerDoc)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/extract", h.ExtractStats)
		r.Post("/score", h.ScoreStats)
		r.Get("/tier", h.GetTier)
		r.Post("/simulate", h.Simulate)
		r.Get("/leaderboard", h.GetLeaderboard)

		r.Route("/kingdoms", func(r chi.Router) {
			r.Post("/scores", h.ScoreKingdoms)
			r.Get("/{id}/score", h.GetKingdomScore)
			r.Post("/{id}/simulate", h.SimulateKingdom)
			r.Get("/{id}/history", h.GetKingdomHistory)
		})
	})
}

// SwaggerDoc serves the registered OpenAPI document
func (h *Handler) SwaggerDoc(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		h.logger.Errorw("Swagger doc unavailable", "error", err)
		h.errorResponse(w, http.StatusNotFound, "API documentation not registered")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(doc))
}
