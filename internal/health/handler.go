package health

import (
	"context"
	"net/http"
	"time"

	"github.com/Development-Team-8/wishlists/internal/db"
	"github.com/Development-Team-8/wishlists/internal/httpx"
)

// Store es lo mínimo que health necesita del backend de datos.
type Store interface {
	Ping(ctx context.Context) error
	Stats(ctx context.Context) (db.Stats, error)
}

// Handler encapsula endpoints de health, readiness, stats y el banner del servicio.
type Handler struct {
	store   Store
	version string
}

// New crea un handler de health. store puede ser nil (ready responde 503).
func New(store Store, version string) *Handler {
	return &Handler{store: store, version: version}
}

// Index es el banner de GET /.
func (handler *Handler) Index(w http.ResponseWriter, r *http.Request) {
	httpx.OK(w, r, http.StatusOK, map[string]any{
		"status":  http.StatusOK,
		"message": "Wishlist Service",
		"version": handler.version,
	})
}

// Health indica si el proceso está vivo.
// NO chequea base de datos. Eso va en /ready.
func (handler *Handler) Health(w http.ResponseWriter, r *http.Request) {
	httpx.OK(w, r, http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Ready chequea que el store responda dentro de 2 segundos.
func (handler *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if handler.store == nil {
		httpx.Fail(w, r, http.StatusServiceUnavailable, "not_ready", "database not configured")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := handler.store.Ping(ctx); err != nil {
		httpx.Fail(w, r, http.StatusServiceUnavailable, "not_ready", "database is not reachable")
		return
	}

	httpx.OK(w, r, http.StatusOK, map[string]any{"status": "ready"})
}

// Stats expone versión y uptime del servidor de base de datos.
func (handler *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	if handler.store == nil {
		httpx.Fail(w, r, http.StatusServiceUnavailable, "not_ready", "database not configured")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	stats, err := handler.store.Stats(ctx)
	if err != nil {
		httpx.Fail(w, r, http.StatusServiceUnavailable, "not_ready", "database stats unavailable")
		return
	}

	httpx.OK(w, r, http.StatusOK, map[string]any{
		"backend": stats.Backend,
		"version": stats.Version,
		"uptime":  stats.Uptime,
		"message": "Database Stats",
	})
}
