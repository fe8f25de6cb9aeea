// File: telecare/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"telecare/config"
	"telecare/cron"
	"telecare/database"
	appointmentRepo "telecare/database/repository/appointment"
	availabilityRepo "telecare/database/repository/availability"
	documentRepo "telecare/database/repository/document"
	userRepoPkg "telecare/database/repository/user"
	"telecare/handlers"
	"telecare/middleware"
	"telecare/routes"
	ai "telecare/services/intelligence"
	"telecare/services/notification"
	"telecare/services/scheduling"
	"telecare/services/tasks"
	"telecare/services/user"
	"telecare/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()
	utils.FirebaseInit()

	cloudinaryStorageService, err := utils.Cloudinary()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize cloudinary storage service: %v", err)
	}

	ensureIndexes(logger)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	availRepo := availabilityRepo.NewMongoAvailabilityRepo()
	apptRepo := appointmentRepo.NewMongoAppointmentRepo()
	docRepo := documentRepo.NewMongoDocumentRepo()

	// services.
	userService := &user.DefaultUserService{
		Repo:  userRepo,
		Cache: utils.GetCacheClient(),
	}

	notificationService, err := notification.NewDefaultNotificationService(userRepo)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize notification service: %v", err)
	}

	reminderQueue := tasks.NewReminderQueue()
	defer reminderQueue.Close()

	schedulingEngine := &scheduling.DefaultSchedulingEngine{
		Appointments: apptRepo,
		Availability: availRepo,
		Notifier:     notificationService,
		Reminders:    reminderQueue,
	}

	aiSvc, err := ai.NewGeminiService(config.AppConfig.GeminiAPIKey)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize gemini service: %v", err)
	}

	// Background workers.
	cron.InitReminderWorker(notificationService)
	cron.InitCompletionSweep(apptRepo)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		UserHandler:         handlers.NewUserHandler(userService),
		AvailabilityHandler: handlers.NewAvailabilityHandler(schedulingEngine),
		AppointmentHandler:  handlers.NewAppointmentHandler(schedulingEngine, logger),
		DocumentHandler:     handlers.NewDocumentHandler(cloudinaryStorageService, aiSvc, docRepo),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

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

func ensureIndexes(logger *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := userRepoPkg.EnsureIndexes(ctx); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure user indexes: %v", err)
	}
	if err := availabilityRepo.EnsureIndexes(ctx); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure availability indexes: %v", err)
	}
	if err := appointmentRepo.EnsureIndexes(ctx); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure appointment indexes: %v", err)
	}
}
