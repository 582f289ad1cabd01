package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/openskyvn/paragliding-backend/api/routes"
	"github.com/openskyvn/paragliding-backend/internal/bookings"
	"github.com/openskyvn/paragliding-backend/internal/customers"
	"github.com/openskyvn/paragliding-backend/internal/notify"
	"github.com/openskyvn/paragliding-backend/internal/pricing"
	"github.com/openskyvn/paragliding-backend/internal/verification"
	"github.com/openskyvn/paragliding-backend/pkg/config"
	"github.com/openskyvn/paragliding-backend/pkg/db"
	"github.com/openskyvn/paragliding-backend/pkg/logger"
	"github.com/openskyvn/paragliding-backend/pkg/metrics"
	"github.com/openskyvn/paragliding-backend/pkg/migrate"
	"github.com/openskyvn/paragliding-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	registry := prometheus.NewRegistry()
	pipelineMetrics := metrics.NewPipelineMetrics(registry)

	gate := verification.NewGate(cfg.Verification, logg)

	identityService, err := customers.NewService(customers.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create customer service", err)
		os.Exit(1)
	}

	var sender notify.Sender
	if cfg.Notify.BotToken != "" {
		sender, err = notify.NewTelegramSender(cfg.Notify.BotToken, notify.WithBaseURL(cfg.Notify.APIBaseURL))
		if err != nil {
			logg.Error(context.Background(), "failed to create telegram sender", err)
			os.Exit(1)
		}
	}
	notifyService := notify.NewService(sender, cfg.Notify.ChatIDs, cfg.Notify.RecipientTimeout, logg, pipelineMetrics)

	bookingService, err := bookings.NewService(
		gate,
		identityService,
		bookings.NewRepository(dbClient.DB()),
		notifyService,
		pricing.NewEngine(cfg.Booking.VNDPerUSD),
		logg,
		pipelineMetrics,
		cfg.Booking.AcceptedLocations,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create booking service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	id := os.Getenv("DYNO")
	if id == "" {
		id = "local"
	}
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": id,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, registry, bookingService),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
