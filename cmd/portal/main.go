package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/fhuszti/asset-portal-go/internal/admin"
	"github.com/fhuszti/asset-portal-go/internal/backend"
	"github.com/fhuszti/asset-portal-go/internal/cache"
	"github.com/fhuszti/asset-portal-go/internal/catalog"
	"github.com/fhuszti/asset-portal-go/internal/config"
	"github.com/fhuszti/asset-portal-go/internal/handler/api"
	"github.com/fhuszti/asset-portal-go/internal/logger"
	cMiddleware "github.com/fhuszti/asset-portal-go/internal/middleware"
	"github.com/fhuszti/asset-portal-go/internal/notify"
	"github.com/fhuszti/asset-portal-go/internal/port"
	"github.com/fhuszti/asset-portal-go/internal/request"
	"github.com/fhuszti/asset-portal-go/internal/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}

	logger.Init()

	var ca port.Cache
	if cfg.RedisAddr != "" {
		ca = cache.NewCache(cfg.RedisAddr, cfg.RedisPassword, cfg.CatalogCacheTTL)
		logger.Info(ctx, "✅  Redis cache enabled")
	} else {
		ca = cache.NewNoop()
		logger.Warn(ctx, "⚠️  Redis not configured — catalog caching is disabled")
	}

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	be := backend.NewClient(cfg.BackendBaseURL, httpClient)
	loader := catalog.NewLoader(be, ca, httpClient, cfg.AssetBaseURL)

	center := notify.NewCenter(cfg.NotificationTTL)
	coordinator := admin.NewCoordinator(be, center)
	submitter := request.NewSubmitter(be)
	registry := session.NewRegistry(submitter, cfg.GalleryPageSize, cfg.CloseDelay, session.DefaultIdleTTL)

	r := initRouter(ctx, cfg.AllowedOrigins)

	r.Get("/gallery", api.GetGalleryHandler(loader, registry))
	r.Post("/gallery/more", api.ShowMoreHandler(loader, registry))

	r.Post("/selection/toggle", api.ToggleSelectionHandler(loader, registry))
	r.Delete("/selection/{assetId}", api.RemoveSelectionHandler(registry))
	r.Get("/selection", api.GetSelectionHandler(registry))

	r.Get("/flow", api.GetFlowHandler(registry))
	r.Post("/flow/cart", api.OpenCartHandler(registry))
	r.Post("/flow/form", api.ContinueToFormHandler(registry))
	r.Post("/flow/back", api.BackToCartHandler(registry))
	r.Post("/flow/submit", api.SubmitFlowHandler(registry))
	r.Post("/flow/close", api.CloseFlowHandler(registry))

	r.Get("/admin/requests", api.ListRequestsHandler(coordinator))
	r.With(cMiddleware.WithRequestID()).
		Post("/admin/requests/{id}/status", api.SetRequestStatusHandler(coordinator))
	r.Get("/admin/notifications", api.ListNotificationsHandler(center))
	r.Post("/admin/notifications/dismiss", api.DismissNotificationHandler(center))
	r.Post("/admin/login", api.AdminLoginHandler(be))
	r.Post("/admin/create", api.AdminCreateHandler(be))

	listenRouter(ctx, r, cfg, registry, center)
}

func initRouter(ctx context.Context, allowedOrigins []string) *chi.Mux {
	logger.Info(ctx, "initialising router...")

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(cMiddleware.WithSession())

	r.NotFound(api.NotFoundHandler())
	r.MethodNotAllowed(api.MethodNotAllowedHandler())

	return r
}

func listenRouter(ctx context.Context, r *chi.Mux, cfg *config.Settings, registry *session.Registry, center *notify.Center) {
	srv := &http.Server{Addr: ":" + strconv.Itoa(cfg.ServerPort), Handler: r}

	// start serving
	go func() {
		logger.Infof(ctx, "🚀 Portal listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf(ctx, "❌  Listen error: %v", err)
			os.Exit(1)
		}
	}()

	// block until we get SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info(ctx, "🛑 Shutdown signal received, exiting…")

	// graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf(ctx, "❌  Server shutdown failed: %v", err)
		os.Exit(1)
	}

	registry.Close()
	center.Close()
	logger.Info(ctx, "✅  Server gracefully stopped")
}
