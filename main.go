// File: luggagelite/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"luggagelite/config"
	"luggagelite/cron"
	"luggagelite/database"
	bookingRepoPkg "luggagelite/database/repository/booking"
	staffRepoPkg "luggagelite/database/repository/staff"
	stationRepoPkg "luggagelite/database/repository/station"
	"luggagelite/handlers"
	"luggagelite/middleware"
	"luggagelite/models"
	"luggagelite/routes"
	"luggagelite/services/booking"
	"luggagelite/services/notification"
	"luggagelite/services/station"
	"luggagelite/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	stationRepo := stationRepoPkg.NewMongoStationRepo()
	staffRepo := staffRepoPkg.NewMongoStaffRepo()

	// services.
	stationService := &station.DefaultStationService{
		Repo: stationRepo,
	}

	asynqClient := asynq.NewClient(utils.QueueRedisOpt())
	defer asynqClient.Close()
	notificationService := &notification.AsynqNotificationService{
		Client: asynqClient,
	}

	bookingService := &booking.DefaultBookingService{
		Repo:          bookingRepo,
		Stations:      stationService,
		Notifier:      notificationService,
		PricingConfig: models.DefaultPricingConfig(),
		Logger:        logger,
	}

	// Background notification worker.
	cron.InitNotifyWorker(notification.LogEmailSender{}, notification.LogSMSSender{})

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Booking: &handlers.BookingHandler{Service: bookingService},
		Pricing: &handlers.PricingHandler{
			Config:      models.DefaultPricingConfig(),
			Stations:    stationService,
			CacheClient: utils.GetCacheClient(),
		},
		Stations:  &handlers.StationHandler{Service: stationService},
		StaffAuth: &handlers.StaffAuthHandler{Repo: staffRepo},
		StaffRepo: staffRepo,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	utils.StartHealthMonitor(utils.GetCacheClient(), utils.QueueRedisClient(), database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
