package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/openskyvn/paragliding-backend/api/controllers"
	"github.com/openskyvn/paragliding-backend/api/middleware"
	bookingsvc "github.com/openskyvn/paragliding-backend/internal/bookings"
	"github.com/openskyvn/paragliding-backend/pkg/config"
	"github.com/openskyvn/paragliding-backend/pkg/logger"
	"github.com/openskyvn/paragliding-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP controllers.Pinger,
	redisClient *redis.Client,
	gatherer prometheus.Gatherer,
	bookingService bookingsvc.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	submitPolicy := middleware.NewSubmitRateLimitPolicy(
		"booking",
		cfg.RateLimit.SubmitWindow,
		cfg.RateLimit.SubmitIPLimit,
		cfg.RateLimit.SubmitPhoneLimit,
	)
	submitLimiter := middleware.SubmitRateLimit(submitPolicy, nil, logg)
	if redisClient != nil {
		submitLimiter = middleware.SubmitRateLimit(submitPolicy, redisClient, logg)
	}

	readyDeps := map[string]controllers.Pinger{
		"database": dbP,
	}
	if redisClient != nil {
		readyDeps["redis"] = redisClient
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, readyDeps))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.With(submitLimiter).
			Post("/bookings", controllers.CreateBooking(bookingService, logg))
		r.Post("/quotes", controllers.Quote(bookingService, logg))
		r.Get("/locations", controllers.Locations())
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Route("/bookings/{bookingID}", func(r chi.Router) {
			r.Get("/", controllers.GetBooking(bookingService, logg))
			r.Post("/status", controllers.TransitionBooking(bookingService, logg))
		})
		r.Get("/customers/{customerID}/bookings", controllers.CustomerBookings(bookingService, logg))
	})

	return r
}
