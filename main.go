// File: reservo/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"

	"reservo/config"
	"reservo/cron"
	"reservo/database"
	bookingRepoPkg "reservo/database/repository/booking"
	resourceRepoPkg "reservo/database/repository/resource"
	"reservo/handlers"
	"reservo/middleware"
	"reservo/routes"
	"reservo/services/booking"
	"reservo/services/resource"
	"reservo/services/tasks"
	"reservo/utils"
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
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	resRepo := resourceRepoPkg.NewMongoResourceRepo()
	bkRepo := bookingRepoPkg.NewMongoBookingRepo()

	// background reminder worker + scheduler.
	cron.InitReminderWorker()
	reminders := tasks.NewReminderScheduler(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})

	// services.
	resourceService := &resource.DefaultResourceService{
		Repo: resRepo,
	}
	bookingService := &booking.DefaultBookingService{
		Repo:         bkRepo,
		ResourceRepo: resRepo,
		Cache:        utils.GetCacheClient(),
		Reminders:    reminders,
	}

	bookingHandler := handlers.NewBookingHandler(bookingService, logger)
	resourceHandler := handlers.NewResourceHandler(resourceService, logger)

	routes.RegisterRoutes(router, bookingHandler, resourceHandler)

	utils.StartHealthMonitor(utils.GetCacheClient(), database.MongoClient)

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
