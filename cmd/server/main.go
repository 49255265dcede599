package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campusevents/config"
	_ "campusevents/docs"
	"campusevents/internal/adapters/auth"
	"campusevents/internal/adapters/cache"
	"campusevents/internal/adapters/email"
	"campusevents/internal/adapters/rabbit"
	"campusevents/internal/adapters/venue"
	deliveryhttp "campusevents/internal/delivery/http"
	"campusevents/internal/delivery/http/controllers"
	"campusevents/internal/domain"
	"campusevents/internal/repository/postgres"
	"campusevents/internal/services"
	"campusevents/internal/telemetry"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
)

const serviceName = "campus-events"

// @title Campus Events API
// @version 1.0
// @description Event lifecycle, registration, attendance and rating service.
// @BasePath /api
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := config.NewLogger()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.SetupTracing(ctx, serviceName, cfg.OTelEndpoint)
	if err != nil {
		logger.Error("tracing setup failed, continuing without traces", "err", err)
	}

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		logger.Error("ping database", "err", err)
		os.Exit(1)
	}
	logger.Info("database connected")

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := telemetry.NewMetrics(registry)

	// Repositories
	categoryRepo := postgres.NewEventCategoryRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	registrationRepo := postgres.NewEventRegistrationRepository(db)
	attendanceRepo := postgres.NewEventAttendanceRepository(db)
	ratingRepo := postgres.NewEventRatingRepository(db)

	// Outbound adapters
	var tokens domain.TokenIssuer
	if cfg.Venue.TokenSecret != "" {
		tokens = auth.NewServiceTokenIssuer(cfg.Venue.TokenSecret, serviceName, cfg.Venue.TokenTTL)
	}
	venues := venue.NewHTTPAllocator(venue.Config{BaseURL: cfg.Venue.URL, Timeout: cfg.Venue.Timeout}, &http.Client{}, tokens, metrics, logger)

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SendTimeout: cfg.Email.SendTimeout,
		SES: email.SESConfig{
			Region:             cfg.Email.SESRegion,
			AccessKeyID:        cfg.Email.SESAccessKeyID,
			SecretAccessKey:    cfg.Email.SESSecretAccessKey,
			InsecureSkipVerify: cfg.Email.SESInsecureTLS,
		},
	}, logger)
	if err != nil {
		logger.Error("create mailer", "err", err)
		os.Exit(1)
	}
	renderer, err := email.NewTemplateRenderer()
	if err != nil {
		logger.Error("parse email templates", "err", err)
		os.Exit(1)
	}
	emailService := services.NewEmailService(mailer, renderer, logger)

	publisher := rabbit.NewNoopPublisher(logger)
	if cfg.AMQP.URL != "" {
		p, err := rabbit.NewPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange, logger)
		if err != nil {
			logger.Error("connect to rabbitmq", "err", err)
			os.Exit(1)
		}
		defer p.Close()
		publisher = p
	}

	summaryCache := cache.NewNoopSummaryCache()
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Error("parse redis url", "err", err)
			os.Exit(1)
		}
		rdb := redis.NewClient(opts)
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unreachable, rating summaries will not be cached", "err", err)
		} else {
			summaryCache = cache.NewRedisSummaryCache(rdb, cfg.SummaryCacheTTL)
		}
	}

	// Services
	timeout := cfg.ContextTimeout
	categoryService := services.NewEventCategoryService(categoryRepo, eventRepo, logger, timeout)
	eventService := services.NewEventService(eventRepo, categoryRepo, registrationRepo, venues, logger, timeout)
	registrationService := services.NewRegistrationService(registrationRepo, eventRepo, emailService, publisher, logger, timeout)
	attendanceService := services.NewAttendanceService(attendanceRepo, eventRepo, ratingRepo, logger, timeout)
	ratingService := services.NewRatingService(ratingRepo, attendanceRepo, eventRepo, summaryCache, logger, timeout)

	router := deliveryhttp.NewRouter(deliveryhttp.RouterConfig{
		Logger:        logger,
		CORSOrigins:   cfg.CORSOrigins,
		Metrics:       metrics,
		Gatherer:      registry,
		HealthCheck:   db.PingContext,
		Categories:    controllers.NewCategoryController(logger, categoryService, eventService),
		Events:        controllers.NewEventController(logger, eventService),
		Registrations: controllers.NewRegistrationController(logger, registrationService),
		Interactions:  controllers.NewInteractionController(logger, attendanceService, ratingService),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting server", "port", cfg.Port, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-serverErr:
		logger.Error("server error", "err", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", "err", err)
	}
	if err := eventService.Shutdown(shutdownCtx); err != nil {
		logger.Warn("background venue allocations did not finish", "err", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Warn("tracing shutdown", "err", err)
	}
	logger.Info("shutdown complete")
}
