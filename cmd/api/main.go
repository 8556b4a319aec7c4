package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/booking-api/internal/config"
	"github.com/jwalitptl/booking-api/internal/email"
	"github.com/jwalitptl/booking-api/internal/handler"
	bookingHandler "github.com/jwalitptl/booking-api/internal/handler/booking"
	catalogHandler "github.com/jwalitptl/booking-api/internal/handler/catalog"
	doctorHandler "github.com/jwalitptl/booking-api/internal/handler/doctor"
	paymentHandler "github.com/jwalitptl/booking-api/internal/handler/payment"
	userHandler "github.com/jwalitptl/booking-api/internal/handler/user"
	"github.com/jwalitptl/booking-api/internal/middleware"
	"github.com/jwalitptl/booking-api/internal/repository/postgres"
	"github.com/jwalitptl/booking-api/internal/router"
	bookingService "github.com/jwalitptl/booking-api/internal/service/booking"
	catalogService "github.com/jwalitptl/booking-api/internal/service/catalog"
	doctorService "github.com/jwalitptl/booking-api/internal/service/doctor"
	paymentService "github.com/jwalitptl/booking-api/internal/service/payment"
	userService "github.com/jwalitptl/booking-api/internal/service/user"
	"github.com/jwalitptl/booking-api/pkg/auth"
	"github.com/jwalitptl/booking-api/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger.Setup(cfg.Server.LogLevel)

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Repositories
	serviceRepo := postgres.NewServiceRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)
	userRepo := postgres.NewUserRepository(db)
	doctorRepo := postgres.NewDoctorRepository(db)

	// Services
	tokens := auth.NewTokenService(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)
	emailSvc := email.NewService(cfg.SMTP)
	catalogSvc := catalogService.NewService(serviceRepo, bookingRepo)
	bookingSvc := bookingService.NewService(bookingRepo, emailSvc)
	userSvc := userService.NewService(userRepo, tokens)
	doctorSvc := doctorService.NewService(doctorRepo)
	paymentSvc := paymentService.NewService(cfg.Stripe)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(tokens, userSvc)

	// Handlers
	h := handler.NewHandler(db)
	catalogH := catalogHandler.NewHandler(catalogSvc)
	bookingH := bookingHandler.NewHandler(bookingSvc)
	userH := userHandler.NewHandler(userSvc)
	doctorH := doctorHandler.NewHandler(doctorSvc)
	paymentH := paymentHandler.NewHandler(paymentSvc)

	routerCfg := router.DefaultConfig()
	routerCfg.RequestTimeout = time.Duration(cfg.Server.TimeoutSeconds) * time.Second

	r := router.NewRouter(authMiddleware, catalogH, bookingH, userH, doctorH, paymentH, h, routerCfg)
	r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
