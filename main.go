// File: pescalia/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pescalia/config"
	"pescalia/cron"
	"pescalia/database"
	bookingRepoPkg "pescalia/database/repository/booking"
	guideRepoPkg "pescalia/database/repository/guide"
	serviceRepoPkg "pescalia/database/repository/service"
	"pescalia/handlers"
	"pescalia/middleware"
	"pescalia/routes"
	"pescalia/services/approval"
	"pescalia/services/booking"
	"pescalia/services/guide"
	"pescalia/services/notification"
	"pescalia/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()
	utils.FirebaseInit()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	guideRepo := guideRepoPkg.NewMongoGuideRepo()
	serviceRepo := serviceRepoPkg.NewMongoServiceRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()

	// services.
	notificationService := &notification.FCMNotificationService{
		Logger: logger,
	}

	guideService := &guide.DefaultGuideService{
		Guides:   guideRepo,
		Services: serviceRepo,
		Logger:   logger,
	}

	approvalService := &approval.DefaultApprovalService{
		Services: serviceRepo,
		Guides:   guideRepo,
		Cache:    utils.GetCacheClient(),
		Notifier: notificationService,
		Logger:   logger,
	}

	reminderScheduler := cron.NewReminderScheduler()
	wizardService := &booking.DefaultWizardService{
		Services:  serviceRepo,
		Guides:    guideRepo,
		Bookings:  bookingRepo,
		Store:     booking.NewRedisSessionStore(utils.GetSessionCacheClient()),
		Payments:  booking.NewStripePaymentProcessor(logger),
		Reminders: reminderScheduler,
		Notifier:  notificationService,
		Logger:    logger,
	}

	guideHandler := handlers.NewGuideHandler(guideService, logger)
	approvalHandler := handlers.NewApprovalHandler(approvalService, logger)
	bookingHandler := handlers.NewBookingHandler(wizardService, bookingRepo, logger)
	adminHandler := handlers.NewAdminHandler(guideService, approvalService, serviceRepo, bookingRepo, logger)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		// Guide endpoints.
		RegisterGuideHandler:  guideHandler.RegisterGuide,
		GetGuideHandler:       guideHandler.GetGuide,
		ListGuidesHandler:     guideHandler.ListGuides,
		CurrentGuideHandler:   guideHandler.CurrentGuide,
		UpdateGuideHandler:    guideHandler.UpdateGuide,
		UpdateFCMTokenHandler: guideHandler.UpdateFCMToken,
		DeleteGuideHandler:    guideHandler.DeleteGuide,

		// Service listing endpoints.
		CreateServiceHandler: guideHandler.CreateService,
		UpdateServiceHandler: guideHandler.UpdateService,
		DeleteServiceHandler: guideHandler.DeleteService,

		// Approval endpoints.
		ApproveServiceHandler:    approvalHandler.ApproveService,
		UnpublishServiceHandler:  approvalHandler.UnpublishService,
		ApproveAllForGuide:       approvalHandler.ApproveAllForGuide,
		ListGuideServicesHandler: approvalHandler.ListGuideServices,
		PendingCountHandler:      approvalHandler.PendingCount,

		// Booking wizard endpoints.
		StartSession:   bookingHandler.StartSession,
		GetSession:     bookingHandler.GetSession,
		SelectService:  bookingHandler.SelectService,
		SetSchedule:    bookingHandler.SetSchedule,
		SetContact:     bookingHandler.SetContact,
		Advance:        bookingHandler.Advance,
		Back:           bookingHandler.Back,
		ConfirmBooking: bookingHandler.Confirm,
		CancelSession:  bookingHandler.CancelSession,
		MyBookings:     bookingHandler.MyBookings,

		// Admin endpoints.
		AdminHandler: adminHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Background worker for trip reminders.
	cron.InitReminderWorker(guideRepo, notificationService)

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
