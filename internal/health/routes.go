package health

import "github.com/go-chi/chi/v5"

// RegisterRoutes monta los endpoints operativos.
func RegisterRoutes(route chi.Router, handler *Handler) {
	route.Get("/", handler.Index)
	route.Get("/health", handler.Health)
	route.Get("/ready", handler.Ready)
	route.Get("/db/stats", handler.Stats)
}
