package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"eventdesk/config"
	_ "eventdesk/docs"
	"eventdesk/internal/adapters/auth"
	"eventdesk/internal/adapters/email"
	"eventdesk/internal/adapters/notify"
	httpdelivery "eventdesk/internal/delivery/http"
	"eventdesk/internal/delivery/http/controllers"
	"eventdesk/internal/delivery/http/middleware"
	"eventdesk/internal/repository/postgres"
	"eventdesk/internal/services"
)

const serviceTimeout = 5 * time.Second

// @title EventDesk API
// @version 1.0
// @description Event organizing core: venues and timeslots, event lifecycle, bookings, and publication.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("failed to ping database", "err", err)
		os.Exit(1)
	}

	venueRepo := postgres.NewVenueRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:             cfg.SESRegion,
			AccessKeyID:        cfg.SESAccessKeyID,
			SecretAccessKey:    cfg.SESSecretAccessKey,
			InsecureSkipVerify: cfg.SESInsecureSkipVerify,
		},
	})
	if err != nil {
		logger.Error("failed to create mailer", "err", err)
		os.Exit(1)
	}
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer())

	// Identity lives outside this service; without a directory the dispatcher
	// falls back to the configured from-address so mail still has somewhere
	// to land in development.
	resolve := func(_ context.Context, userID string) (string, error) {
		if addr := os.Getenv("NOTIFY_FALLBACK_ADDRESS"); addr != "" {
			return addr, nil
		}
		return cfg.EmailFromAddress, nil
	}
	notifier := notify.NewDispatcher(logger, eventRepo, bookingRepo, venueRepo, emailService, resolve, cfg.ShareLinkBase)

	venueRegistry := services.NewVenueRegistry(venueRepo, notifier, serviceTimeout)
	eventService := services.NewEventService(eventRepo, venueRepo, bookingRepo, notifier, serviceTimeout)
	bookingService := services.NewBookingService(bookingRepo, eventRepo, notifier, serviceTimeout)
	viewService := services.NewViewService(eventRepo, bookingRepo, serviceTimeout)

	verifier := auth.NewJWTVerifier(cfg.JWTSecret)

	venueController := controllers.NewVenueController(logger, venueRegistry)
	eventController := controllers.NewEventController(logger, eventService, bookingService, viewService)
	attendeeController := controllers.NewAttendeeController(logger, bookingService, viewService)

	mux := httpdelivery.NewRouter(logger, verifier, venueController, eventController, attendeeController)
	handler := middleware.CORS(cfg.AllowedOrigins, middleware.LoggingMiddleware(logger, mux))

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Port, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server startup failed", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "err", err)
		os.Exit(1)
	}
	logger.Info("server exiting")
}
