package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/diagnosis/parkingpro/internal/domain"
	"github.com/diagnosis/parkingpro/internal/http/handlers"
	"github.com/diagnosis/parkingpro/internal/service"
	"github.com/diagnosis/parkingpro/pkg/config"
	"github.com/diagnosis/parkingpro/pkg/logger"
	mw "github.com/diagnosis/parkingpro/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warn("Failed to read .env", "error", err)
	}

	cfg := config.Load()
	logger.Info("Configuration loaded", cfg.Summary()...)

	ctx := context.Background()

	store, err := openStore(ctx, cfg)
	if err != nil {
		logger.Error("Failed to set up store", "driver", cfg.Store.Driver, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	otpStore, closeOTP, err := openOTPStore(cfg)
	if err != nil {
		logger.Error("Failed to set up OTP store", "store", cfg.OTP.Store, "error", err)
		os.Exit(1)
	}
	defer closeOTP()

	mailer, err := newMailer(cfg.Email)
	if err != nil {
		logger.Error("Failed to set up mailer", "driver", cfg.Email.Driver, "error", err)
		os.Exit(1)
	}

	eventBus := openEventBus(cfg.Events)
	defer eventBus.Close()

	// Initialize services
	authService := service.NewAuthService(store.Users, eventBus, cfg.Auth)
	otpService := service.NewOTPService(otpStore, mailer, eventBus, cfg.OTP.TTL, domain.SystemClock)
	bookingService := service.NewBookingService(store.Bookings, eventBus, domain.SystemClock)
	contactService := service.NewContactService(store.Contacts, eventBus, domain.SystemClock)

	h := handlers.New(authService, otpService, bookingService, contactService)

	// Setup router
	r := chi.NewRouter()

	r.Use(mw.RequestID)
	r.Use(mw.ServiceName("parkingpro"))
	r.Use(mw.Logging)
	r.Use(mw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))
	r.Use(mw.Health)
	r.Use(mw.OptionalJWT(cfg.Auth.JWTSecret))

	r.Mount("/", h.Routes())

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Graceful shutdown
	idle := make(chan struct{})
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		close(idle)
	}()

	logger.Info("Server running", "addr", "http://localhost:"+cfg.Server.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
	<-idle
}
