// File: mediflow/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mediflow/config"
	"mediflow/cron"
	"mediflow/database"
	appointmentRepoPkg "mediflow/database/repository/appointment"
	doctorRepoPkg "mediflow/database/repository/doctor"
	"mediflow/handlers"
	"mediflow/routes"
	"mediflow/services/analytics"
	"mediflow/services/dialogue"
	"mediflow/services/notification"
	"mediflow/services/scheduling"
	"mediflow/services/tasks"
	"mediflow/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitSessionCache()

	if err := appointmentRepoPkg.EnsureIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to create appointment indexes: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// repositories.
	apptRepo := appointmentRepoPkg.NewMongoAppointmentRepo()
	docRepo := doctorRepoPkg.NewMongoDoctorRepo()

	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 10*time.Second)
	if err := doctorRepoPkg.SeedDefaultDoctors(seedCtx, docRepo); err != nil {
		logger.Sugar().Fatalf("main: failed to seed doctors: %v", err)
	}
	cancelSeed()

	// services.
	engine := &scheduling.DefaultAvailabilityEngine{
		Doctors:       docRepo,
		Appointments:  apptRepo,
		BufferMinutes: config.AppConfig.BufferTimeMinutes,
	}

	notifier := &notification.AppointmentNotifier{
		Sender: notification.NewSendGridSender(
			config.AppConfig.SendGridAPIKey,
			config.AppConfig.FromEmail,
			config.AppConfig.ClinicName,
		),
		ClinicName: config.AppConfig.ClinicName,
	}

	reminderClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	defer reminderClient.Close()
	reminderScheduler := &tasks.AsynqReminderScheduler{
		Client:    reminderClient,
		LeadHours: config.AppConfig.ReminderLeadHours,
	}

	bookingService := &scheduling.DefaultBookingService{
		Repo:     apptRepo,
		Doctors:  docRepo,
		Engine:   engine,
		Notifier: notifier,
		Reminder: reminderScheduler,
	}

	slotFinder := &scheduling.DefaultSlotFinder{
		Doctors: docRepo,
		Engine:  engine,
	}

	agent := &dialogue.Agent{
		Slots:      slotFinder,
		Bookings:   bookingService,
		ClinicName: config.AppConfig.ClinicName,
	}

	sessionTTL := time.Duration(config.AppConfig.SessionTTLMinutes) * time.Minute
	sessionStore := dialogue.NewRedisSessionStore(utils.GetSessionCacheClient(), sessionTTL)

	analyticsService := &analytics.Service{Repo: apptRepo}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Agent:     agent,
		Sessions:  sessionStore,
		Engine:    engine,
		Bookings:  bookingService,
		Doctors:   docRepo,
		Analytics: analyticsService,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Background reminder worker and external-service health monitor.
	cron.InitReminderWorker(notifier, apptRepo)
	utils.StartHealthMonitor(utils.GetCacheClient(), utils.GetSessionCacheClient(), database.MongoClient)

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
