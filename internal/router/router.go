package router

import (
	"github.com/gin-gonic/gin"

	"github.com/stampdeck/stampdeck-backend/config"
	"github.com/stampdeck/stampdeck-backend/internal/app/controller"
	"github.com/stampdeck/stampdeck-backend/internal/app/model"
	"github.com/stampdeck/stampdeck-backend/internal/middleware"
)

type Router struct {
	authController     *controller.AuthController
	businessController *controller.BusinessController
	campaignController *controller.CampaignController
	rewardController   *controller.RewardController
	loyaltyController  *controller.LoyaltyController
	couponController   *controller.CouponController
	qrCodeController   *controller.QRCodeController
	referralController *controller.ReferralController
	brandingController *controller.BrandingController
	reportController   *controller.ReportController
	uploadController   *controller.UploadController
	eventsController   *controller.EventsController
	authMiddleware     *middleware.AuthMiddleware
	config             *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	businessController *controller.BusinessController,
	campaignController *controller.CampaignController,
	rewardController *controller.RewardController,
	loyaltyController *controller.LoyaltyController,
	couponController *controller.CouponController,
	qrCodeController *controller.QRCodeController,
	referralController *controller.ReferralController,
	brandingController *controller.BrandingController,
	reportController *controller.ReportController,
	uploadController *controller.UploadController,
	eventsController *controller.EventsController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:     authController,
		businessController: businessController,
		campaignController: campaignController,
		rewardController:   rewardController,
		loyaltyController:  loyaltyController,
		couponController:   couponController,
		qrCodeController:   qrCodeController,
		referralController: referralController,
		brandingController: brandingController,
		reportController:   reportController,
		uploadController:   uploadController,
		eventsController:   eventsController,
		authMiddleware:     authMiddleware,
		config:             cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "StampDeck API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.authController.Login)
			auth.POST("/refresh", r.authController.Refresh)
			auth.GET("/me", r.authMiddleware.Authenticate(), r.authController.Me)
		}

		// Unauthenticated storefront routes for the customer-facing card pages
		public := v1.Group("/public")
		{
			public.GET("/businesses/:slug", r.businessController.GetBySlug)
			public.GET("/campaigns/:slug", r.campaignController.GetBySlug)
		}

		businesses := v1.Group("/businesses")
		businesses.Use(r.authMiddleware.Authenticate())
		{
			businesses.GET("", r.businessController.List)
			businesses.GET("/:id", r.businessController.GetByID)
			businesses.POST("",
				r.authMiddleware.RequireRole(string(model.RoleBusinessAdmin), string(model.RoleSuperAdmin)),
				r.businessController.Create,
			)
			businesses.PUT("/:id",
				r.authMiddleware.RequireRole(string(model.RoleBusinessAdmin), string(model.RoleSuperAdmin)),
				r.businessController.Update,
			)
			businesses.DELETE("/:id",
				r.authMiddleware.RequireRole(string(model.RoleBusinessAdmin), string(model.RoleSuperAdmin)),
				r.businessController.Delete,
			)
		}

		campaigns := v1.Group("/campaigns")
		campaigns.Use(r.authMiddleware.Authenticate())
		{
			campaigns.GET("", r.campaignController.List)
			campaigns.GET("/stats",
				r.authMiddleware.RequireRole(string(model.RoleBusinessAdmin), string(model.RoleSuperAdmin)),
				r.campaignController.Stats,
			)
			campaigns.GET("/:id", r.campaignController.GetByID)
			campaigns.POST("",
				r.authMiddleware.RequireRole(string(model.RoleBusinessAdmin), string(model.RoleSuperAdmin)),
				r.campaignController.Create,
			)
			campaigns.PUT("/:id",
				r.authMiddleware.RequireRole(string(model.RoleBusinessAdmin), string(model.RoleSuperAdmin)),
				r.campaignController.Update,
			)
			campaigns.DELETE("/:id",
				r.authMiddleware.RequireRole(string(model.RoleBusinessAdmin), string(model.RoleSuperAdmin)),
				r.campaignController.Delete,
			)
		}

		rewards := v1.Group("/rewards")
		rewards.Use(
			r.authMiddleware.Authenticate(),
			r.authMiddleware.RequireRole(string(model.RoleBusinessAdmin), string(model.RoleSuperAdmin)),
		)
		{
			rewards.GET("", r.rewardController.List)
			rewards.POST("", r.rewardController.Create)
			rewards.PUT("/:id", r.rewardController.Update)
			rewards.DELETE("/:id", r.rewardController.Delete)
		}

		loyalty := v1.Group("/loyalty")
		loyalty.Use(r.authMiddleware.Authenticate())
		{
			loyalty.GET("/cards", r.loyaltyController.ListCards)
			loyalty.POST("/join", r.loyaltyController.Join)
			loyalty.POST("/scan", r.loyaltyController.Scan)
			loyalty.POST("/redeem", r.loyaltyController.Redeem)
			loyalty.GET("/redemptions", r.loyaltyController.ListRedemptions)

			// Manual stamping is a staff action
			loyalty.POST("/stamps",
				r.authMiddleware.RequireRole(string(model.RoleBusinessAdmin), string(model.RoleSuperAdmin)),
				r.loyaltyController.AddStamp,
			)
		}

		coupons := v1.Group("/coupons")
		coupons.Use(r.authMiddleware.Authenticate())
		{
			coupons.POST("/validate", r.couponController.Validate)

			coupons.GET("",
				r.authMiddleware.RequireRole(string(model.RoleBusinessAdmin), string(model.RoleSuperAdmin)),
				r.couponController.List,
			)
			coupons.POST("",
				r.authMiddleware.RequireRole(string(model.RoleBusinessAdmin), string(model.RoleSuperAdmin)),
				r.couponController.Create,
			)
			coupons.POST("/:id/deactivate",
				r.authMiddleware.RequireRole(string(model.RoleBusinessAdmin), string(model.RoleSuperAdmin)),
				r.couponController.Deactivate,
			)
			coupons.DELETE("/:id",
				r.authMiddleware.RequireRole(string(model.RoleBusinessAdmin), string(model.RoleSuperAdmin)),
				r.couponController.Delete,
			)
		}

		qrcodes := v1.Group("/qrcodes")
		qrcodes.Use(
			r.authMiddleware.Authenticate(),
			r.authMiddleware.RequireRole(string(model.RoleBusinessAdmin), string(model.RoleSuperAdmin)),
		)
		{
			qrcodes.GET("", r.qrCodeController.List)
			qrcodes.POST("", r.qrCodeController.Create)
			qrcodes.POST("/:id/deactivate", r.qrCodeController.Deactivate)
			qrcodes.DELETE("/:id", r.qrCodeController.Delete)
		}

		referrals := v1.Group("/referrals")
		referrals.Use(r.authMiddleware.Authenticate())
		{
			referrals.GET("/mine", r.referralController.Mine)
			referrals.POST("/apply", r.referralController.Apply)
		}

		branding := v1.Group("/branding")
		{
			branding.GET("/templates", r.brandingController.Templates)
			branding.GET("/palettes", r.brandingController.Palettes)

			branding.GET("",
				r.authMiddleware.Authenticate(),
				r.brandingController.GetSettings,
			)
			branding.PUT("",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole(string(model.RoleBusinessAdmin), string(model.RoleSuperAdmin)),
				r.brandingController.UpdateSettings,
			)
		}

		reports := v1.Group("/reports")
		reports.Use(r.authMiddleware.Authenticate())
		{
			reports.GET("/campaigns",
				r.authMiddleware.RequireRole(string(model.RoleBusinessAdmin), string(model.RoleSuperAdmin)),
				r.reportController.CampaignReport,
			)
			reports.GET("/platform",
				r.authMiddleware.RequireRole(string(model.RoleSuperAdmin)),
				r.reportController.PlatformReport,
			)
		}

		uploads := v1.Group("/uploads")
		uploads.Use(
			r.authMiddleware.Authenticate(),
			r.authMiddleware.RequireRole(string(model.RoleBusinessAdmin), string(model.RoleSuperAdmin)),
		)
		{
			uploads.POST("/presigned-url", r.uploadController.GeneratePresignedURL)
		}

		events := v1.Group("/events")
		events.Use(r.authMiddleware.Authenticate())
		{
			events.GET("/ws", r.eventsController.Stream)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
