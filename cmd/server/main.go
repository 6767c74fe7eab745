// Command server runs the DevEvents API and the server-rendered pages.
//
// @title DevEvents API
// @version 1.0
// @description Event listing and booking API.
// @BasePath /
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"devevents/config"
	_ "devevents/docs"
	"devevents/internal/adapters/cloudinary"
	"devevents/internal/adapters/email"
	"devevents/internal/database"
	delivery "devevents/internal/delivery/http"
	"devevents/internal/delivery/http/controllers"
	"devevents/internal/delivery/http/middleware"
	"devevents/internal/delivery/web"
	"devevents/internal/repository/mongodb"
	"devevents/internal/services"
)

const serviceTimeout = 10 * time.Second

func main() {
	logger := config.NewLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "err", err)
		os.Exit(1)
	}

	connector := database.NewConnector(logger, cfg.MongoURI, cfg.MongoDB)

	// Connect and create indexes up front, but stay up on failure: the
	// connector retries per request, so a database that comes up later is
	// picked up without a restart.
	startupCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	if db, err := connector.Database(startupCtx); err != nil {
		logger.Warn("database not reachable at startup, will retry per request", "err", err)
	} else if err := database.EnsureIndexes(startupCtx, db); err != nil {
		logger.Warn("failed to ensure indexes", "err", err)
	}
	cancel()

	resolver := mongodb.NewResolver(connector)
	eventRepo := mongodb.NewEventRepository(resolver)
	bookingRepo := mongodb.NewBookingRepository(resolver)

	uploader := cloudinary.NewUploader(cloudinary.Config{
		CloudName: cfg.Cloudinary.CloudName,
		APIKey:    cfg.Cloudinary.APIKey,
		APISecret: cfg.Cloudinary.APISecret,
	})

	mailer := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:          cfg.Email.SESRegion,
			AccessKeyID:     cfg.Email.SESAccessKeyID,
			SecretAccessKey: cfg.Email.SESSecretAccessKey,
		},
	}, logger)

	emailSvc := services.NewEmailService(mailer, email.NewTemplateRenderer(), logger)
	eventSvc := services.NewEventService(eventRepo, uploader, serviceTimeout)
	bookingSvc := services.NewBookingService(bookingRepo, eventRepo, emailSvc, logger, cfg.BaseURL, serviceTimeout)

	eventController := controllers.NewEventController(logger, eventSvc, cfg.IsDevelopment())
	bookingController := controllers.NewBookingController(logger, bookingSvc, cfg.IsDevelopment())

	pages, err := web.NewPages(logger, web.NewAPIClient(cfg.BaseURL))
	if err != nil {
		logger.Error("failed to parse page templates", "err", err)
		os.Exit(1)
	}

	healthz := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}

	mux := delivery.NewRouter(eventController, bookingController, pages, healthz)
	handler := middleware.Chain(mux,
		middleware.Logging(logger),
		middleware.CORS(cfg.AllowedOrigins),
	)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "err", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
