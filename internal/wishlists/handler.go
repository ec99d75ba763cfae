package wishlists

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/Development-Team-8/wishlists/internal/httpx"
	"github.com/Development-Team-8/wishlists/internal/items"
	"github.com/Development-Team-8/wishlists/internal/logger"
)

// ServiceAPI define lo que el handler necesita.
type ServiceAPI interface {
	Create(ctx context.Context, input CreateWishlistInput) (Wishlist, error)
	Get(ctx context.Context, id string) (Wishlist, error)
	List(ctx context.Context, filter ListFilter) ([]Wishlist, error)
	Update(ctx context.Context, id string, input UpdateWishlistInput) (Wishlist, error)
	Delete(ctx context.Context, id string) error
	AddItem(ctx context.Context, wishlistID string, input AddItemInput) (Wishlist, error)
	ListItems(ctx context.Context, wishlistID string) ([]items.Item, error)
	GetItem(ctx context.Context, wishlistID string, itemID int64) (items.Item, error)
	RemoveItem(ctx context.Context, wishlistID string, itemID int64) error
	Empty(ctx context.Context, wishlistID string) (Wishlist, error)
	SetPublic(ctx context.Context, wishlistID string, isPublic *bool) (Wishlist, error)
}

// Handler HTTP para wishlists.
type Handler struct {
	service ServiceAPI
	log     logrus.FieldLogger
}

// NewHandler crea un handler de wishlists.
func NewHandler(service ServiceAPI, log logrus.FieldLogger) *Handler {
	return &Handler{service: service, log: log}
}

// Create maneja POST /wishlists.
func (handler *Handler) Create(writer http.ResponseWriter, request *http.Request) {
	var input CreateWishlistInput
	if !decodeBody(writer, request, &input) {
		return
	}

	wishlist, err := handler.service.Create(request.Context(), input)
	if err != nil {
		handler.fail(writer, request, err)
		return
	}

	httpx.OK(writer, request, http.StatusCreated, wishlist)
}

// List maneja GET /wishlists?customer_id=...|name=...
func (handler *Handler) List(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query()
	filter := ListFilter{
		CustomerID: query.Get("customer_id"),
		Name:       query.Get("name"),
	}

	wishlists, err := handler.service.List(request.Context(), filter)
	if err != nil {
		handler.fail(writer, request, err)
		return
	}

	httpx.OK(writer, request, http.StatusOK, wishlists)
}

// GetByID maneja GET /wishlists/{id}.
func (handler *Handler) GetByID(writer http.ResponseWriter, request *http.Request) {
	wishlist, err := handler.service.Get(request.Context(), chi.URLParam(request, "id"))
	if err != nil {
		handler.fail(writer, request, err)
		return
	}

	httpx.OK(writer, request, http.StatusOK, wishlist)
}

// Update maneja PUT /wishlists/{id}.
func (handler *Handler) Update(writer http.ResponseWriter, request *http.Request) {
	var input UpdateWishlistInput
	if !decodeBody(writer, request, &input) {
		return
	}

	wishlist, err := handler.service.Update(request.Context(), chi.URLParam(request, "id"), input)
	if err != nil {
		handler.fail(writer, request, err)
		return
	}

	httpx.OK(writer, request, http.StatusOK, wishlist)
}

// Delete maneja DELETE /wishlists/{id}. Siempre 204.
func (handler *Handler) Delete(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Delete(request.Context(), chi.URLParam(request, "id")); err != nil {
		handler.fail(writer, request, err)
		return
	}

	httpx.NoContent(writer, request)
}

// AddItem maneja POST /wishlists/{id}/items con body {"item_id": N}.
func (handler *Handler) AddItem(writer http.ResponseWriter, request *http.Request) {
	var input AddItemInput
	if !decodeBody(writer, request, &input) {
		return
	}

	wishlist, err := handler.service.AddItem(request.Context(), chi.URLParam(request, "id"), input)
	if err != nil {
		itemID := ""
		if input.ItemID != nil {
			itemID = fmt.Sprint(int64(*input.ItemID))
		}
		handler.failItem(writer, request, err, itemID)
		return
	}

	httpx.OK(writer, request, http.StatusOK, wishlist)
}

// ListItems maneja GET /wishlists/{id}/items.
func (handler *Handler) ListItems(writer http.ResponseWriter, request *http.Request) {
	embedded, err := handler.service.ListItems(request.Context(), chi.URLParam(request, "id"))
	if err != nil {
		handler.fail(writer, request, err)
		return
	}

	httpx.OK(writer, request, http.StatusOK, embedded)
}

// GetItem maneja GET /wishlists/{id}/items/{item_id}.
func (handler *Handler) GetItem(writer http.ResponseWriter, request *http.Request) {
	rawItemID := chi.URLParam(request, "item_id")
	itemID, ok := items.ParseID(rawItemID)
	if !ok {
		handler.failItem(writer, request, ErrorItemNotInWishlist, rawItemID)
		return
	}

	item, err := handler.service.GetItem(request.Context(), chi.URLParam(request, "id"), itemID)
	if err != nil {
		handler.failItem(writer, request, err, rawItemID)
		return
	}

	httpx.OK(writer, request, http.StatusOK, item)
}

// RemoveItem maneja DELETE /wishlists/{id}/items/{item_id}.
func (handler *Handler) RemoveItem(writer http.ResponseWriter, request *http.Request) {
	rawItemID := chi.URLParam(request, "item_id")
	itemID, ok := items.ParseID(rawItemID)
	if !ok {
		handler.failItem(writer, request, ErrorItemNotFound, rawItemID)
		return
	}

	if err := handler.service.RemoveItem(request.Context(), chi.URLParam(request, "id"), itemID); err != nil {
		handler.failItem(writer, request, err, rawItemID)
		return
	}

	httpx.NoContent(writer, request)
}

// Empty maneja PUT /wishlists/{id}/empty.
func (handler *Handler) Empty(writer http.ResponseWriter, request *http.Request) {
	wishlist, err := handler.service.Empty(request.Context(), chi.URLParam(request, "id"))
	if err != nil {
		handler.fail(writer, request, err)
		return
	}

	httpx.OK(writer, request, http.StatusOK, wishlist)
}

// SetPublic maneja PUT /wishlists/{id}/public.
// El body es opcional; sin isPublic el flag se invierte.
func (handler *Handler) SetPublic(writer http.ResponseWriter, request *http.Request) {
	var input SetPublicInput
	if httpx.HasBody(request) {
		if !decodeBody(writer, request, &input) {
			return
		}
	}

	wishlist, err := handler.service.SetPublic(request.Context(), chi.URLParam(request, "id"), input.IsPublic)
	if err != nil {
		handler.fail(writer, request, err)
		return
	}

	httpx.OK(writer, request, http.StatusOK, wishlist)
}

// decodeBody parsea el JSON del body. Si falla ya respondió 400.
func decodeBody(writer http.ResponseWriter, request *http.Request, target any) bool {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		httpx.Fail(writer, request, http.StatusBadRequest, "invalid_json", "request body must be a JSON object")
		return false
	}
	return true
}

func (handler *Handler) fail(writer http.ResponseWriter, request *http.Request, err error) {
	handler.failItem(writer, request, err, "")
}

// failItem traduce errores de dominio a HTTP. itemID solo se usa en los mensajes de item.
func (handler *Handler) failItem(writer http.ResponseWriter, request *http.Request, err error, itemID string) {
	wishlistID := chi.URLParam(request, "id")

	switch {
	case errors.Is(err, ErrorInvalidInput):
		httpx.Fail(writer, request, http.StatusBadRequest, "invalid_input", err.Error())
	case errors.Is(err, ErrorWishlistNotFound):
		httpx.Fail(writer, request, http.StatusNotFound, "not_found",
			fmt.Sprintf("Wishlist with id '%s' was not found.", wishlistID))
	case errors.Is(err, ErrorItemNotFound):
		httpx.Fail(writer, request, http.StatusNotFound, "not_found",
			fmt.Sprintf("Item with id '%s' was not found.", itemID))
	case errors.Is(err, ErrorItemNotInWishlist):
		httpx.Fail(writer, request, http.StatusNotFound, "not_found",
			fmt.Sprintf("Item with id '%s' is not in wishlist '%s'.", itemID, wishlistID))
	default:
		if handler.log != nil {
			logger.FromRequest(handler.log, request).WithError(err).Error("wishlists request failed")
		}
		httpx.Fail(writer, request, http.StatusInternalServerError, "internal_error", "unexpected error")
	}
}
