package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/Ostelo999925/uniket-sub002/internal/service"
	"github.com/Ostelo999925/uniket-sub002/pkg/health"
	"github.com/Ostelo999925/uniket-sub002/pkg/middleware"
)

// RouterConfig carries the optional pieces of the HTTP router.
type RouterConfig struct {
	// CacheClient enables response caching on the read-heavy dashboard
	// endpoints when set.
	CacheClient *redis.Client
	CacheTTL    time.Duration
}

// NewRouter creates a chi router with all marketplace routes registered.
func NewRouter(
	statsService *service.StatsService,
	moderationService *service.ModerationService,
	settingsService *service.SettingsService,
	notificationService *service.NotificationService,
	healthHandler *health.Handler,
	cfg RouterConfig,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("marketplace"))
	r.Use(middleware.Tracing("marketplace"))

	// Health and metrics endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())

	cache := func(next http.Handler) http.Handler { return next }
	if cfg.CacheClient != nil && cfg.CacheTTL > 0 {
		cache = middleware.ResponseCache(cfg.CacheClient, cfg.CacheTTL, logger)
	}

	// Vendor dashboard endpoints
	vendorHandler := NewVendorHandler(statsService, logger)

	r.Route("/api/v1/vendors", func(r chi.Router) {
		r.With(cache).Get("/leaderboard", vendorHandler.Leaderboard)
		r.With(cache).Get("/{id}/stats", vendorHandler.GetVendorStats)
	})

	// Admin moderation and settings endpoints
	adminHandler := NewAdminHandler(moderationService, logger)
	settingsHandler := NewSettingsHandler(settingsService, logger)

	r.Route("/api/v1/admin", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(UserIDFromHeader)
		r.Use(RequireAdmin)

		r.Get("/products", adminHandler.ListProducts)
		r.Get("/rejection-reasons", adminHandler.ListRejectionReasons)
		r.Post("/products/{id}/approve", adminHandler.ApproveProduct)
		r.Post("/products/{id}/reject", adminHandler.RejectProduct)
		r.Post("/products/{id}/flag", adminHandler.FlagProduct)
		r.Patch("/reviews/{id}/visibility", adminHandler.SetReviewVisibility)

		r.Get("/settings", settingsHandler.GetSettings)
		r.Put("/settings", settingsHandler.UpdateSettings)

		r.Post("/pickup-points", settingsHandler.CreatePickupPoint)
		r.Put("/pickup-points/{id}", settingsHandler.UpdatePickupPoint)
		r.Delete("/pickup-points/{id}", settingsHandler.DeletePickupPoint)
	})

	// Public pickup point listing
	r.Get("/api/v1/pickup-points", settingsHandler.ListPickupPoints)

	// User notification feed
	notificationHandler := NewNotificationHandler(notificationService, logger)

	r.Route("/api/v1/notifications", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(UserIDFromHeader)

		r.Get("/", notificationHandler.ListNotifications)
		r.Post("/{id}/read", notificationHandler.MarkRead)
	})

	return r
}
