package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/voltmart/catalog-service/internal/service"
	"github.com/voltmart/catalog-service/pkg/health"
	"github.com/voltmart/catalog-service/pkg/middleware"
)

// NewRouter creates a chi router with all catalog service routes
// registered.
func NewRouter(
	searchService *service.SearchService,
	catalogService *service.CatalogService,
	feedbackService *service.FeedbackService,
	healthHandler *health.Handler,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("catalog"))

	// Health and metrics endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	searchHandler := NewSearchHandler(searchService, logger)
	catalogHandler := NewCatalogHandler(catalogService, logger)
	feedbackHandler := NewFeedbackHandler(feedbackService, logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Get("/search", searchHandler.Search)

		r.Group(func(r chi.Router) {
			r.Use(middleware.CacheControl(60))

			r.Get("/categories", catalogHandler.ListCategories)
			r.Get("/categories/{slug}", catalogHandler.GetCategory)
			r.Get("/brands", catalogHandler.ListBrands)
			r.Get("/brands/{slug}", catalogHandler.GetBrand)
			r.Get("/filters", catalogHandler.ListFilterGroups)
			r.Get("/products/{slug}", catalogHandler.GetProduct)
			r.Get("/banners", catalogHandler.ListBanners)
		})

		r.Post("/banners", catalogHandler.CreateBanner)
		r.Put("/banners/{id}", catalogHandler.UpdateBanner)
		r.Delete("/banners/{id}", catalogHandler.DeleteBanner)

		r.Post("/feedback", feedbackHandler.SubmitFeedback)
		r.Get("/feedback", feedbackHandler.ListFeedback)
		r.Patch("/feedback/{id}/status", feedbackHandler.UpdateFeedbackStatus)
	})

	return r
}
