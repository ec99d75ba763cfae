package items

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/Development-Team-8/wishlists/internal/logger"
)

type routeStub struct{}

func (service *routeStub) Create(ctx context.Context, in ItemInput) (Item, error) {
	return Item{ItemID: 1, ItemName: in.ItemName}, nil
}

func (service *routeStub) List(ctx context.Context) ([]Item, error) {
	return []Item{}, nil
}

func (service *routeStub) Get(ctx context.Context, id int64) (Item, error) {
	return Item{ItemID: id}, nil
}

func (service *routeStub) Delete(ctx context.Context, id int64) error {
	return nil
}

func TestRegisterRoutes(t *testing.T) {
	router := chi.NewRouter()
	RegisterRoutes(router, NewHandler(&routeStub{}, logger.Discard()))

	tests := []struct {
		name        string
		method      string
		path        string
		body        string
		contentType string
		wantStatus  int
	}{
		{
			name:        "post items",
			method:      http.MethodPost,
			path:        "/items",
			body:        `{"item_name":"Phone"}`,
			contentType: "application/json",
			wantStatus:  http.StatusCreated,
		},
		{
			name:       "post items without content type",
			method:     http.MethodPost,
			path:       "/items",
			body:       `{"item_name":"Phone"}`,
			wantStatus: http.StatusUnsupportedMediaType,
		},
		{
			name:        "post items with wrong content type",
			method:      http.MethodPost,
			path:        "/items",
			body:        "jimmy the fish",
			contentType: "plain/text",
			wantStatus:  http.StatusUnsupportedMediaType,
		},
		{
			name:       "get items",
			method:     http.MethodGet,
			path:       "/items",
			wantStatus: http.StatusOK,
		},
		{
			name:       "get item by id",
			method:     http.MethodGet,
			path:       "/items/7",
			wantStatus: http.StatusOK,
		},
		{
			name:       "delete item",
			method:     http.MethodDelete,
			path:       "/items/7",
			wantStatus: http.StatusNoContent,
		},
		{
			name:       "put not allowed",
			method:     http.MethodPut,
			path:       "/items/7",
			wantStatus: http.StatusMethodNotAllowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			recorder := httptest.NewRecorder()

			router.ServeHTTP(recorder, req)

			require.Equal(t, tt.wantStatus, recorder.Code)
		})
	}
}
