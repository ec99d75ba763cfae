package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
)

// RequestIDHeader es el header donde devolvemos el request id al cliente.
const RequestIDHeader = "X-Request-Id"

// RequestIDFrom lee el request id generado por chi (middleware.RequestID).
// Si el request no pasó por el middleware, cae al header que mandó el cliente.
func RequestIDFrom(request *http.Request) string {
	if request == nil {
		return ""
	}
	if requestID := middleware.GetReqID(request.Context()); requestID != "" {
		return requestID
	}
	return request.Header.Get(RequestIDHeader)
}
