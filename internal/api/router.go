package api

import (
	"net/http"

	"github.com/devon/hotel-listing-api/internal/api/handlers"
	"github.com/devon/hotel-listing-api/internal/api/middleware"
	"github.com/devon/hotel-listing-api/internal/domain"
	"github.com/devon/hotel-listing-api/internal/metrics"
	"github.com/devon/hotel-listing-api/internal/service"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

func NewRouter(services *service.Services, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	collector := metrics.NewCollector()
	authLimiter := middleware.NewRateLimiter(30, 10)

	// Global middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.CORS)
	r.Use(collector.Middleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
	r.Method(http.MethodGet, "/metrics", collector.Handler())

	authHandler := handlers.NewAuthHandler(services.Auth, logger)
	countryHandler := handlers.NewCountryHandler(services.Country, logger)
	hotelHandler := handlers.NewHotelHandler(services.Hotel, logger)

	requireAuth := middleware.Auth(services.Auth, logger)
	requireAdmin := middleware.RequireRole(domain.AdminRole)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)

			// Credential endpoints are rate limited per IP
			r.Group(func(r chi.Router) {
				r.Use(authLimiter.Middleware)
				r.Post("/login", authHandler.Login)
				r.Post("/refresh", authHandler.Refresh)
			})
		})

		r.Route("/countries", func(r chi.Router) {
			r.Get("/", countryHandler.GetAll)
			r.Get("/{id}", countryHandler.Get)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/", countryHandler.Create)
				r.Put("/{id}", countryHandler.Update)
				r.With(requireAdmin).Delete("/{id}", countryHandler.Delete)
			})
		})

		r.Route("/hotels", func(r chi.Router) {
			r.Get("/", hotelHandler.GetAll)
			r.Get("/{id}", hotelHandler.Get)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/", hotelHandler.Create)
				r.Put("/{id}", hotelHandler.Update)
				r.With(requireAdmin).Delete("/{id}", hotelHandler.Delete)
			})
		})
	})

	return r
}
