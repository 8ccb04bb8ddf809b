package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/Havertz69/rental-app/internal/logger"
	"github.com/Havertz69/rental-app/internal/middleware"
	"github.com/Havertz69/rental-app/internal/services"
)

// RouterConfig carries everything the HTTP layer needs.
type RouterConfig struct {
	Log         *logger.Logger
	DB          Pinger
	Env         string
	CORSOrigins []string
	MatchTopK   int
	// TokenLimiter throttles POST /auth/token. Nil disables throttling.
	TokenLimiter *middleware.IPRateLimiter

	AI          services.AIService
	Dashboard   services.DashboardService
	Auth        services.AuthService
	Properties  services.PropertyService
	Tenants     services.TenantService
	Payments    services.PaymentService
	Maintenance services.MaintenanceService
}

// NewRouter builds the gin engine with middleware in the order
// RequestID, Logger, Recovery, CORS.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(cfg.Log))
	router.Use(middleware.Recovery(cfg.Log))
	router.Use(middleware.CORS(cfg.CORSOrigins))

	health := NewHealthHandler(cfg.DB, cfg.Env)
	router.GET("/health", health.Health)
	router.GET("/health/ready", health.Ready)

	authHandler := NewAuthHandler(cfg.Auth)
	aiHandler := NewAIHandler(cfg.AI, cfg.Dashboard, cfg.MatchTopK)
	propertyHandler := NewPropertyHandler(cfg.Properties)
	tenantHandler := NewTenantHandler(cfg.Tenants)
	paymentHandler := NewPaymentHandler(cfg.Payments)
	maintenanceHandler := NewMaintenanceHandler(cfg.Maintenance)

	v1 := router.Group("/api/v1")
	v1.GET("/info", health.Info)

	tokenChain := []gin.HandlerFunc{}
	if cfg.TokenLimiter != nil {
		tokenChain = append(tokenChain, cfg.TokenLimiter.Middleware())
	}
	tokenChain = append(tokenChain, authHandler.Token)
	v1.POST("/auth/token", tokenChain...)

	api := v1.Group("", middleware.Auth(cfg.Auth))
	{
		api.GET("/auth/me", authHandler.Me)

		ai := api.Group("/ai")
		{
			ai.GET("/tenant-recommendations", aiHandler.TenantRecommendations)
			ai.GET("/tenant-risk-assessment", aiHandler.TenantRiskAssessment)
			ai.GET("/property-risk-assessment", aiHandler.PropertyRiskAssessment)
			ai.POST("/update-property-pricing", aiHandler.UpdatePropertyPricing)
			ai.POST("/update-property-forecasts", aiHandler.UpdatePropertyForecasts)
			ai.POST("/update-payment-prediction", aiHandler.UpdatePaymentPrediction)
			ai.POST("/update-risk-scores", aiHandler.UpdateRiskScores)

			staff := ai.Group("", middleware.RequireStaff())
			staff.GET("/dashboard-analytics", aiHandler.DashboardAnalytics)
			staff.GET("/analytics", aiHandler.Analytics)
			staff.GET("/predictions", aiHandler.Predictions)
		}

		properties := api.Group("/properties")
		{
			properties.GET("", propertyHandler.List)
			properties.POST("", propertyHandler.Create)
			properties.GET("/:id", propertyHandler.Get)
		}

		tenants := api.Group("/tenants")
		{
			tenants.GET("", tenantHandler.List)
			tenants.POST("", tenantHandler.Create)
			tenants.GET("/:id", tenantHandler.Get)
			tenants.GET("/:id/behaviors", tenantHandler.ListBehaviors)
			tenants.POST("/:id/behaviors", tenantHandler.CreateBehavior)
		}

		payments := api.Group("/payments")
		{
			payments.GET("", paymentHandler.List)
			payments.POST("", paymentHandler.Create)
			payments.GET("/:id", paymentHandler.Get)
		}

		maintenance := api.Group("/maintenance")
		{
			maintenance.GET("", maintenanceHandler.List)
			maintenance.POST("", maintenanceHandler.Create)
			maintenance.GET("/:id", maintenanceHandler.Get)
		}
	}

	return router
}
