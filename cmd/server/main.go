package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/stampdeck/stampdeck-backend/config"
	"github.com/stampdeck/stampdeck-backend/internal/app/controller"
	"github.com/stampdeck/stampdeck-backend/internal/app/repository"
	"github.com/stampdeck/stampdeck-backend/internal/app/service"
	"github.com/stampdeck/stampdeck-backend/internal/db"
	"github.com/stampdeck/stampdeck-backend/internal/middleware"
	"github.com/stampdeck/stampdeck-backend/internal/router"
	"github.com/stampdeck/stampdeck-backend/internal/scheduler"
	"github.com/stampdeck/stampdeck-backend/internal/storage"
	"github.com/stampdeck/stampdeck-backend/internal/websocket"
	"github.com/stampdeck/stampdeck-backend/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting StampDeck Backend Server", map[string]interface{}{
		"environment":  cfg.Server.Environment,
		"port":         cfg.Server.Port,
		"store_driver": cfg.Store.Driver,
		"log_level":    logLevel,
	})

	// Initialize the key-value store backend
	if err := db.Initialize(&cfg.Store); err != nil {
		logger.Fatal("Failed to initialize storage", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close storage", err)
		}
	}()

	// Normalize legacy keys before anything reads collections
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run storage migration", err)
	}

	// Seed demo data (first run only, guarded by the initialized flag)
	if err := db.Seed(); err != nil {
		logger.Warn("Failed to seed demo data", map[string]interface{}{
			"error": err.Error(),
		})
	}

	store := db.GetStore()

	// Initialize repositories
	userRepo := repository.NewUserRepository(store)
	businessRepo := repository.NewBusinessRepository(store)
	campaignRepo := repository.NewCampaignRepository(store)
	rewardRepo := repository.NewRewardRepository(store)
	cardRepo := repository.NewLoyaltyCardRepository(store)
	redemptionRepo := repository.NewRedemptionRepository(store)
	couponRepo := repository.NewCouponRepository(store)
	qrCodeRepo := repository.NewQRCodeRepository(store)
	referralRepo := repository.NewReferralRepository(store)
	joinRepo := repository.NewCustomerCampaignRepository(store)
	brandingRepo := repository.NewBrandingRepository(store)

	// Initialize services
	referralService := service.NewReferralService(referralRepo)
	authService := service.NewAuthService(
		userRepo,
		referralService,
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	businessService := service.NewBusinessService(businessRepo)
	campaignService := service.NewCampaignService(campaignRepo, joinRepo)
	rewardService := service.NewRewardService(rewardRepo)
	loyaltyService := service.NewLoyaltyService(cardRepo, campaignRepo, rewardRepo, redemptionRepo, joinRepo)
	couponService := service.NewCouponService(couponRepo)
	qrCodeService := service.NewQRCodeService(qrCodeRepo, campaignRepo)
	brandingService := service.NewBrandingService(brandingRepo)
	reportService := service.NewReportService(businessRepo, campaignRepo, cardRepo, joinRepo, redemptionRepo)

	// S3 storage for branding asset uploads
	s3Storage := storage.NewS3Storage(
		cfg.S3.Region,
		cfg.S3.Bucket,
		cfg.S3.AccessKeyID,
		cfg.S3.SecretAccessKey,
		cfg.S3.BaseURL,
	)

	// WebSocket change feed
	hub := websocket.NewHub()
	go hub.Run()
	unsubscribe := hub.WatchStore(store)
	defer unsubscribe()

	// Initialize controllers
	authController := controller.NewAuthController(authService)
	businessController := controller.NewBusinessController(businessService)
	campaignController := controller.NewCampaignController(campaignService)
	rewardController := controller.NewRewardController(rewardService)
	loyaltyController := controller.NewLoyaltyController(loyaltyService)
	couponController := controller.NewCouponController(couponService)
	qrCodeController := controller.NewQRCodeController(qrCodeService)
	referralController := controller.NewReferralController(referralService)
	brandingController := controller.NewBrandingController(brandingService)
	reportController := controller.NewReportController(reportService)
	uploadController := controller.NewUploadController(s3Storage)
	eventsController := controller.NewEventsController(hub)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Start the coupon expiry scheduler
	couponScheduler := scheduler.NewCouponScheduler(couponService)
	if err := couponScheduler.Start(); err != nil {
		logger.Fatal("Failed to start coupon scheduler", err)
	}
	defer couponScheduler.Stop()

	// Setup router
	r := router.NewRouter(
		authController,
		businessController,
		campaignController,
		rewardController,
		loyaltyController,
		couponController,
		qrCodeController,
		referralController,
		brandingController,
		reportController,
		uploadController,
		eventsController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
