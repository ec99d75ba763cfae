package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/Development-Team-8/wishlists/internal/config"
	"github.com/Development-Team-8/wishlists/internal/docs"
	"github.com/Development-Team-8/wishlists/internal/health"
	"github.com/Development-Team-8/wishlists/internal/httpx"
	"github.com/Development-Team-8/wishlists/internal/items"
	"github.com/Development-Team-8/wishlists/internal/logger"
	"github.com/Development-Team-8/wishlists/internal/metrics"
	"github.com/Development-Team-8/wishlists/internal/telemetry"
	"github.com/Development-Team-8/wishlists/internal/wishlists"
)

// Hooks de paquete para poder testear main sin red ni base de datos.
var (
	loadConfigFn = config.Load
	openStoreFn  = openStore
	serveFn      = serve
	baseLogger   = logger.New("info", false)
	fatalf       = func(args ...any) { baseLogger.Fatal(args...) }
)

type appDeps struct {
	loadConfig func() (config.Config, error)
	openStore  func(ctx context.Context, uri string) (appStore, error)
	serve      func(ctx context.Context, server *http.Server) error
	log        *logrus.Logger
}

func main() {
	// Contexto raíz del proceso: se cancela con SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := run(ctx, appDeps{
		loadConfig: loadConfigFn,
		openStore:  openStoreFn,
		serve:      serveFn,
		log:        baseLogger,
	})
	if err != nil {
		fatalf(err)
	}
}

func run(ctx context.Context, deps appDeps) error {
	cfg, err := deps.loadConfig()
	if err != nil {
		return err
	}

	log := deps.log
	logger.Configure(log, cfg.LogLevel, cfg.IsProduction())

	if err := telemetry.SetupSentry(cfg.SentryDSN, cfg.Environment, cfg.ServiceVersion); err != nil {
		log.WithError(err).Warn("failed to setup sentry, continuing without crash reporting")
	}
	defer telemetry.SentryFlush()

	store, err := deps.openStore(ctx, cfg.DatabaseURI)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			log.WithError(err).Warn("failed to close database")
		}
	}()
	log.Info("database connected")

	server := httpx.NewServer(":"+cfg.Port, buildRouter(cfg, store, log))
	log.WithFields(logrus.Fields{"addr": server.Addr, "env": cfg.Environment}).Info("listening")

	return deps.serve(ctx, server)
}

// serve corre el server hasta que ctx se cancela y luego hace graceful shutdown.
func serve(ctx context.Context, server *http.Server) error {
	errs := make(chan error, 1)
	go func() {
		errs <- server.ListenAndServe()
	}()

	select {
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func buildRouter(cfg config.Config, store appStore, log logrus.FieldLogger) *chi.Mux {
	httpMetrics := metrics.New()

	router := chi.NewRouter()

	// Orden: request id primero para que todo lo demás lo pueda loguear.
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(logger.Middleware(log))
	router.Use(middleware.Recoverer)
	router.Use(telemetry.SentryMiddleware())
	router.Use(httpMetrics.Middleware)
	router.Use(middleware.Timeout(10 * time.Second))
	router.Use(httpx.CORSMiddleware(cfg.CORSAllowedOrigins))

	// Errores de routing se manejan a nivel router.
	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.Fail(w, r, http.StatusNotFound, "not_found", "resource not found")
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httpx.Fail(w, r, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	})

	health.RegisterRoutes(router, health.New(store, cfg.ServiceVersion))
	router.Method(http.MethodGet, "/metrics", httpMetrics.Handler())
	docs.RegisterRoutes(router)

	itemService := items.NewService(store.Items())
	items.RegisterRoutes(router, items.NewHandler(itemService, log))

	wishlistService := wishlists.NewService(store.Wishlists(), itemService)
	wishlists.RegisterRoutes(router, wishlists.NewHandler(wishlistService, log))

	return router
}
