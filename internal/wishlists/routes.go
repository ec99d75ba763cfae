package wishlists

import (
	"github.com/go-chi/chi/v5"

	"github.com/Development-Team-8/wishlists/internal/httpx"
)

// RegisterRoutes registra rutas de wishlists en el router.
func RegisterRoutes(route chi.Router, handler *Handler) {
	route.Route("/wishlists", func(route chi.Router) {
		route.With(httpx.RequireJSON).Post("/", handler.Create)
		route.Get("/", handler.List)

		route.Route("/{id}", func(route chi.Router) {
			route.Get("/", handler.GetByID)
			route.With(httpx.RequireJSON).Put("/", handler.Update)
			route.Delete("/", handler.Delete)

			route.With(httpx.RequireJSON).Post("/items", handler.AddItem)
			route.Get("/items", handler.ListItems)
			route.Get("/items/{item_id}", handler.GetItem)
			route.Delete("/items/{item_id}", handler.RemoveItem)

			route.With(httpx.RequireJSONIfBody).Put("/public", handler.SetPublic)
			route.Put("/empty", handler.Empty)
		})
	})
}
