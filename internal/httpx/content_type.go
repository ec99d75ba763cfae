package httpx

import (
	"mime"
	"net/http"
)

// MediaTypeJSON es el único content type que aceptan los endpoints con body.
const MediaTypeJSON = "application/json"

// RequireJSON rechaza con 415 cualquier request sin Content-Type application/json.
// Se usa en rutas donde el body es obligatorio.
func RequireJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !IsJSON(r) {
			unsupportedMediaType(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireJSONIfBody solo valida el Content-Type cuando el request trae body.
func RequireJSONIfBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if HasBody(r) && !IsJSON(r) {
			unsupportedMediaType(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// IsJSON indica si el Content-Type del request es application/json (con o sin charset).
func IsJSON(r *http.Request) bool {
	value := r.Header.Get("Content-Type")
	if value == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(value)
	if err != nil {
		return false
	}
	return mediaType == MediaTypeJSON
}

// HasBody es true si el request declara body o lo manda chunked (ContentLength -1).
func HasBody(r *http.Request) bool {
	return r.Body != nil && r.Body != http.NoBody && r.ContentLength != 0
}

func unsupportedMediaType(w http.ResponseWriter, r *http.Request) {
	Fail(w, r, http.StatusUnsupportedMediaType, "unsupported_media_type", "Content-Type must be "+MediaTypeJSON)
}
