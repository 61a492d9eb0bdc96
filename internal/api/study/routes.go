package study

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers study session routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/study-session", func(r chi.Router) {
		r.Post("/", h.CreateSession)
		r.Get("/{id}", h.GetSession)
		r.Post("/{id}/sheet", h.GenerateSheet)
		r.Post("/{id}/chat", h.Chat)
	})
}
