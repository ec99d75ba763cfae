package httpx

import (
	"encoding/json"
	"net/http"
)

// ErrorBody es el formato de error que devuelve la API.
// Los clientes existentes leen "message", por eso es el campo principal.
type ErrorBody struct {
	Status    int    `json:"status"`
	Code      string `json:"error"`   // ej: "invalid_input", "not_found"
	Message   string `json:"message"` // mensaje para humanos
	RequestID string `json:"request_id,omitempty"`
}

// JSON escribe una respuesta JSON con headers correctos.
// Nota: en caso de error de encodeo, responde 500 de forma segura.
func JSON(w http.ResponseWriter, status int, body any) {
	payload, err := json.Marshal(body)
	if err != nil {
		// Último recurso: no se pudo serializar JSON.
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"status":500,"error":"internal_error","message":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(append(payload, '\n'))
}

// OK devuelve el recurso tal cual, sin sobre.
// El request id viaja en el header para no ensuciar el body.
func OK(w http.ResponseWriter, r *http.Request, status int, data any) {
	setRequestID(w, r)
	JSON(w, status, data)
}

// NoContent responde 204 con body vacío.
func NoContent(w http.ResponseWriter, r *http.Request) {
	setRequestID(w, r)
	w.WriteHeader(http.StatusNoContent)
}

// Fail devuelve un error estructurado.
func Fail(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	setRequestID(w, r)
	JSON(w, status, ErrorBody{
		Status:    status,
		Code:      code,
		Message:   message,
		RequestID: RequestIDFrom(r),
	})
}

func setRequestID(w http.ResponseWriter, r *http.Request) {
	if requestID := RequestIDFrom(r); requestID != "" {
		w.Header().Set(RequestIDHeader, requestID)
	}
}
