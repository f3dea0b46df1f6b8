package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"eventboard/config"
	_ "eventboard/docs"
	"eventboard/internal/adapters/auth"
	"eventboard/internal/adapters/email"
	"eventboard/internal/database/migrations"
	delivery "eventboard/internal/delivery/http"
	"eventboard/internal/delivery/http/controllers"
	"eventboard/internal/delivery/http/middleware"
	"eventboard/internal/notify"
	"eventboard/internal/repository/postgres"
	"eventboard/internal/services"
)

// @title Eventboard API
// @version 1.0
// @description Event listing backend. Users create events, staff approve them, and the public browses approved events.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and a JWT.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	logger := config.NewLogger()
	logger.Info("starting eventboard server", "env", cfg.Environment, "port", cfg.Port)

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	if err := db.PingContext(pingCtx); err != nil {
		cancelPing()
		logger.Error("failed to connect to database", "err", err)
		os.Exit(1)
	}
	cancelPing()

	if cfg.AutoMigrate {
		if err := migrations.Up(db); err != nil {
			logger.Error("failed to run migrations", "err", err)
			os.Exit(1)
		}
		logger.Info("migrations applied")
	}

	eventRepo := postgres.NewEventRepository(db)
	userRepo := postgres.NewUserRepository(db)

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:          cfg.AWSRegion,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
		},
	})
	if err != nil {
		logger.Error("failed to create mailer", "err", err)
		os.Exit(1)
	}
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer())

	queueSize := cfg.NotifyQueueSize
	if queueSize <= 0 {
		queueSize = notify.DefaultQueueSize
	}
	dispatcher := notify.NewDispatcher(logger, emailService, queueSize)
	notifyCtx, stopNotify := context.WithCancel(context.Background())
	go dispatcher.Run(notifyCtx)

	eventService := services.NewEventService(eventRepo, userRepo, dispatcher, cfg.RequestTimeout)

	verifier := auth.NewJWTVerifier(cfg.JWTSecret)
	eventController := controllers.NewEventController(logger, eventService)
	mux := delivery.NewRouter(logger, eventController, verifier, userRepo, db)

	handler := middleware.CORS(cfg.CORSAllowedOrigins, middleware.LoggingMiddleware(logger, mux))

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "err", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "err", err)
	}

	// Stop the notification worker after the server drains so in-flight
	// requests can still enqueue notifications.
	stopNotify()
}
