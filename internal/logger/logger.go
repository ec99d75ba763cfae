package logger

import (
	"io"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

// New crea un logger con el nivel indicado.
// En producción escribe JSON; en desarrollo texto con timestamps completos.
func New(level string, production bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)
	Configure(log, level, production)
	return log
}

// Configure ajusta nivel y formato de un logger ya creado.
// Se usa cuando el logger existe antes de tener la configuración cargada.
func Configure(log *logrus.Logger, level string, production bool) {
	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	log.SetLevel(logLevel)

	if production {
		log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
		return
	}
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}

// Discard devuelve un logger que no escribe nada. Útil en tests.
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// FromRequest devuelve una entrada con el request id ya bindeado.
func FromRequest(log logrus.FieldLogger, request *http.Request) *logrus.Entry {
	entry := log.WithField("path", request.URL.Path)
	if requestID := middleware.GetReqID(request.Context()); requestID != "" {
		entry = entry.WithField("request_id", requestID)
	}
	return entry
}

// Middleware loguea una línea por request, compatible con chi.
func Middleware(log logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			start := time.Now()
			wrapped := middleware.NewWrapResponseWriter(writer, request.ProtoMajor)

			next.ServeHTTP(wrapped, request)

			status := wrapped.Status()
			if status == 0 {
				status = http.StatusOK
			}

			FromRequest(log, request).WithFields(logrus.Fields{
				"method":      request.Method,
				"status":      status,
				"bytes":       wrapped.BytesWritten(),
				"latency_ms":  time.Since(start).Milliseconds(),
				"remote_addr": request.RemoteAddr,
			}).Info("request")
		})
	}
}
