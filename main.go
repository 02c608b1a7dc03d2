package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/EternalGerms/trampoaqui-sub001/config"
	"github.com/EternalGerms/trampoaqui-sub001/cron"
	"github.com/EternalGerms/trampoaqui-sub001/database"
	directoryRepo "github.com/EternalGerms/trampoaqui-sub001/database/repository/directory"
	notificationRepo "github.com/EternalGerms/trampoaqui-sub001/database/repository/notification"
	requestRepo "github.com/EternalGerms/trampoaqui-sub001/database/repository/request"
	reviewRepo "github.com/EternalGerms/trampoaqui-sub001/database/repository/review"
	"github.com/EternalGerms/trampoaqui-sub001/handlers"
	"github.com/EternalGerms/trampoaqui-sub001/middleware"
	"github.com/EternalGerms/trampoaqui-sub001/routes"
	"github.com/EternalGerms/trampoaqui-sub001/services/notification"
	"github.com/EternalGerms/trampoaqui-sub001/services/request"
	"github.com/EternalGerms/trampoaqui-sub001/services/review"
	"github.com/EternalGerms/trampoaqui-sub001/services/tasks"
	"github.com/EternalGerms/trampoaqui-sub001/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitAuthCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	reqRepo := requestRepo.NewMongoRequestRepo()
	revRepo := reviewRepo.NewMongoReviewRepo()
	notifRepo := notificationRepo.NewMongoNotificationRepo()
	dirRepo := directoryRepo.NewMongoDirectoryRepo()

	// services.
	notificationService := &notification.DefaultNotificationService{
		Repo:   notifRepo,
		Logger: logger,
	}
	reminderScheduler := tasks.NewAsynqReminderScheduler()

	requestService := &request.DefaultRequestService{
		Repo:      reqRepo,
		Providers: dirRepo,
		Notifier:  notificationService,
		Reminders: reminderScheduler,
		Logger:    logger,
	}
	reviewService := &review.DefaultReviewService{
		Repo:     revRepo,
		Requests: reqRepo,
		Notifier: notificationService,
		Logger:   logger,
	}

	// Reminder worker consumes the asynq queue and stores notifications.
	cron.InitReminderWorker(notificationService)

	// Assemble the handler bundle.
	handlerBundle := &routes.HandlerBundle{
		Requests:      handlers.NewRequestHandler(requestService, logger),
		Reviews:       handlers.NewReviewHandler(reviewService, logger),
		Notifications: handlers.NewNotificationHandler(notificationService, logger),
		Directory:     handlers.NewDirectoryHandler(dirRepo, dirRepo, logger),
		AuthCache:     utils.GetAuthCacheClient(),
	}
	routes.SetupRoutes(router, handlerBundle)

	utils.StartHealthMonitor(map[string]*redis.Client{
		"cache": utils.GetCacheClient(),
		"auth":  utils.GetAuthCacheClient(),
	}, database.MongoClient)

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
