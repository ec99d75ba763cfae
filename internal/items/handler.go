package items

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/Development-Team-8/wishlists/internal/httpx"
	"github.com/Development-Team-8/wishlists/internal/logger"
)

// ServiceAPI define lo que el handler necesita.
// Permite testear handlers con stubs sin tocar DB.
type ServiceAPI interface {
	Create(ctx context.Context, in ItemInput) (Item, error)
	List(ctx context.Context) ([]Item, error)
	Get(ctx context.Context, id int64) (Item, error)
	Delete(ctx context.Context, id int64) error
}

// Handler HTTP para items.
// Solo traduce HTTP <-> dominio (service).
type Handler struct {
	service ServiceAPI
	log     logrus.FieldLogger
}

// NewHandler crea un handler de items.
func NewHandler(service ServiceAPI, log logrus.FieldLogger) *Handler {
	return &Handler{service: service, log: log}
}

// Create maneja POST /items.
func (handler *Handler) Create(writer http.ResponseWriter, request *http.Request) {
	var itemInput ItemInput
	if err := json.NewDecoder(request.Body).Decode(&itemInput); err != nil {
		httpx.Fail(writer, request, http.StatusBadRequest, "invalid_json", "request body must be a JSON object")
		return
	}

	item, err := handler.service.Create(request.Context(), itemInput)
	if err != nil {
		switch {
		case errors.Is(err, ErrorInvalidInput):
			httpx.Fail(writer, request, http.StatusBadRequest, "invalid_input", err.Error())
		case errors.Is(err, ErrorDuplicateID):
			httpx.Fail(writer, request, http.StatusConflict, "conflict", "an item with that item_id already exists")
		default:
			handler.internalError(writer, request, err)
		}
		return
	}

	httpx.OK(writer, request, http.StatusCreated, item)
}

// List maneja GET /items.
func (handler *Handler) List(writer http.ResponseWriter, request *http.Request) {
	items, err := handler.service.List(request.Context())
	if err != nil {
		handler.internalError(writer, request, err)
		return
	}

	httpx.OK(writer, request, http.StatusOK, items)
}

// GetByID maneja GET /items/{id}.
// Un id que no es entero se trata como inexistente.
func (handler *Handler) GetByID(writer http.ResponseWriter, request *http.Request) {
	rawID := chi.URLParam(request, "id")
	id, ok := ParseID(rawID)
	if !ok {
		notFound(writer, request, rawID)
		return
	}

	item, err := handler.service.Get(request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrorNotFound):
			notFound(writer, request, rawID)
		default:
			handler.internalError(writer, request, err)
		}
		return
	}

	httpx.OK(writer, request, http.StatusOK, item)
}

// Delete maneja DELETE /items/{id}.
// Siempre responde 204: borrar algo inexistente es un no-op.
func (handler *Handler) Delete(writer http.ResponseWriter, request *http.Request) {
	id, ok := ParseID(chi.URLParam(request, "id"))
	if ok {
		if err := handler.service.Delete(request.Context(), id); err != nil {
			handler.internalError(writer, request, err)
			return
		}
	}

	// 204 No Content: respuesta vacía.
	httpx.NoContent(writer, request)
}

func notFound(writer http.ResponseWriter, request *http.Request, rawID string) {
	httpx.Fail(writer, request, http.StatusNotFound, "not_found", "Item with id '"+rawID+"' was not found.")
}

// internalError loguea el detalle y responde genérico. No filtramos detalles internos.
func (handler *Handler) internalError(writer http.ResponseWriter, request *http.Request, err error) {
	if handler.log != nil {
		logger.FromRequest(handler.log, request).WithError(err).Error("items request failed")
	}
	httpx.Fail(writer, request, http.StatusInternalServerError, "internal_error", "unexpected error")
}
