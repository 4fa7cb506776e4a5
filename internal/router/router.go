package router

import (
	"log"
	"time"

	"roamio/config"
	"roamio/internal/handler"
	"roamio/internal/middleware"
	"roamio/internal/repository"
	"roamio/internal/service"
	"roamio/internal/ws"
	"roamio/pkg/cloudinary"
	"roamio/pkg/payout"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"
)

// Setup wires repositories, services, and handlers onto a gin engine.
func Setup(cfg *config.Config, db *gorm.DB, asynqClient *asynq.Client, hub *ws.Hub) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	affiliateRepo := repository.NewAffiliateRepository(db)
	commissionRepo := repository.NewCommissionRepository(db)
	payoutRepo := repository.NewPayoutRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	alertRepo := repository.NewAlertRepository(db)
	settingRepo := repository.NewSettingRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)

	mailer := service.NewMailer(cfg, asynqClient)

	var provider payout.Provider = &payout.StubProvider{}
	if cfg.Payout.PayPalClientID != "" {
		provider = payout.NewPayPalProvider(cfg.Payout.PayPalBaseURL, cfg.Payout.PayPalClientID, cfg.Payout.PayPalClientSecret)
	}

	var uploads cloudinary.Client
	if cfg.Cloudinary.CloudName != "" {
		var err error
		uploads, err = cloudinary.NewClientFromParams(cfg.Cloudinary.CloudName, cfg.Cloudinary.APIKey, cfg.Cloudinary.APISecret)
		if err != nil {
			log.Printf("[router] cloudinary disabled: %v", err)
		}
	}

	authSvc := service.NewAuthService(cfg, userRepo, tokenRepo, affiliateRepo, mailer)
	affiliateSvc := service.NewAffiliateService(cfg, affiliateRepo, commissionRepo, payoutRepo, settingRepo, hub)
	commissionSvc := service.NewCommissionService(affiliateRepo, commissionRepo, settingRepo, userRepo, hub)
	payoutSvc := service.NewPayoutService(cfg, affiliateRepo, payoutRepo, userRepo, settingRepo, provider, mailer, hub)
	bookingSvc := service.NewBookingService(cfg, bookingRepo, commissionSvc)

	authHandler := handler.NewAuthHandler(authSvc)
	googleHandler := handler.NewGoogleOAuthHandler(cfg, authSvc)
	meHandler := handler.NewMeHandler(userRepo, uploads)
	affiliateHandler := handler.NewAffiliateHandler(affiliateSvc, payoutSvc, affiliateRepo, commissionRepo, payoutRepo)
	bookingHandler := handler.NewBookingHandler(bookingSvc, bookingRepo)
	alertHandler := handler.NewAlertHandler(alertRepo)
	adminHandler := handler.NewAdminHandler(affiliateSvc, affiliateRepo, analyticsRepo, settingRepo)
	commissionHandler := handler.NewCommissionHandler(commissionSvc, commissionRepo)
	payoutHandler := handler.NewPayoutHandler(payoutSvc, payoutRepo)

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(middleware.RateLimit(middleware.NewInMemoryRateLimiter(300, time.Minute)))

	// Public referral click-through; redirects to signup.
	r.GET("/r/:code", affiliateHandler.TrackClick)

	// Authenticated lifecycle event feed.
	r.GET("/ws/events", ws.UpgradeEvents(&cfg.JWT, hub))

	v1 := r.Group("/api/v1")
	{
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
			authGroup.POST("/forgot-password", authHandler.ForgotPassword)
			authGroup.POST("/reset-password", authHandler.ResetPassword)
			authGroup.POST("/verify-email", authHandler.VerifyEmail)
			authGroup.GET("/google", googleHandler.Redirect)
			authGroup.GET("/google/callback", googleHandler.Callback)
			authGroup.POST("/verification-email", middleware.AuthRequired(&cfg.JWT), authHandler.ResendVerification)
		}

		me := v1.Group("/me", middleware.AuthRequired(&cfg.JWT))
		{
			me.GET("", meHandler.Get)
			me.PATCH("", meHandler.Update)
			me.POST("/avatar", meHandler.UploadAvatar)
		}

		affiliate := v1.Group("/affiliate", middleware.AuthRequired(&cfg.JWT))
		{
			affiliate.POST("/register", affiliateHandler.Enroll)
			affiliate.GET("/dashboard", affiliateHandler.Dashboard)
			affiliate.GET("/links", affiliateHandler.Links)
			affiliate.GET("/settings", affiliateHandler.GetSettings)
			affiliate.PUT("/settings", affiliateHandler.UpdateSettings)
			affiliate.GET("/commissions", affiliateHandler.ListCommissions)
			affiliate.GET("/payouts", affiliateHandler.ListPayouts)
			affiliate.POST("/payouts/request", affiliateHandler.RequestPayout)
		}

		bookings := v1.Group("/bookings", middleware.AuthRequired(&cfg.JWT))
		{
			bookings.GET("", bookingHandler.List)
			bookings.POST("", bookingHandler.Create)
			bookings.GET("/:id", bookingHandler.Get)
			bookings.DELETE("/:id", bookingHandler.Cancel)
		}

		alerts := v1.Group("/price-alerts", middleware.AuthRequired(&cfg.JWT))
		{
			alerts.GET("", alertHandler.List)
			alerts.POST("", alertHandler.Create)
			alerts.DELETE("/:id", alertHandler.Delete)
		}

		admin := v1.Group("/admin", middleware.AuthRequired(&cfg.JWT), middleware.AdminRequired())
		{
			admin.GET("/analytics", adminHandler.Analytics)
			admin.GET("/analytics/top-performers", adminHandler.TopPerformers)

			admin.GET("/affiliates", adminHandler.ListAffiliates)
			admin.GET("/affiliates/:id", adminHandler.GetAffiliate)
			admin.POST("/affiliates/:id/verify", adminHandler.VerifyAffiliate)
			admin.PATCH("/affiliates/:id/status", adminHandler.UpdateAffiliateStatus)

			admin.GET("/commissions", commissionHandler.List)
			admin.POST("/commissions/:id/approve", commissionHandler.Approve)
			admin.POST("/commissions/:id/reject", commissionHandler.Reject)

			admin.GET("/payouts", payoutHandler.List)
			admin.POST("/payouts/:id/process", payoutHandler.Process)
			admin.POST("/payouts/:id/complete", payoutHandler.Complete)
			admin.POST("/payouts/:id/reject", payoutHandler.Reject)

			admin.GET("/settings", adminHandler.GetSettings)
			admin.PUT("/settings", adminHandler.UpdateSettings)
		}
	}

	return r
}
