package telemetry

import (
	"fmt"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	sentryhttp "github.com/getsentry/sentry-go/http"
)

// SetupSentry inicializa el SDK de Sentry. Con DSN vacío no hace nada.
func SetupSentry(dsn, environment, release string) error {
	if dsn == "" {
		return nil
	}
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Environment:      environment,
		Release:          "wishlists@" + release,
		TracesSampleRate: 0.2,
	}); err != nil {
		return fmt.Errorf("sentry init: %w", err)
	}
	return nil
}

// SentryFlush vacía los eventos pendientes antes de salir.
func SentryFlush() {
	sentry.Flush(2 * time.Second)
}

// SentryMiddleware captura panics y los re-lanza para que Recoverer arme el 500.
func SentryMiddleware() func(http.Handler) http.Handler {
	handler := sentryhttp.New(sentryhttp.Options{Repanic: true})
	return handler.Handle
}
