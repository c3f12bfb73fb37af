package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/valeriaulyamaeva/resilience-tracker/internal/handlers"
	"github.com/valeriaulyamaeva/resilience-tracker/internal/middleware"
	"github.com/valeriaulyamaeva/resilience-tracker/internal/services"
	"go.uber.org/zap"
)

type Options struct {
	AllowedOrigins     []string
	AuthRateLimitRPS   float64
	AuthRateLimitBurst int
	Metrics            *middleware.Metrics
	Logger             *zap.Logger
}

// SetupRouter wires every endpoint of the API onto a new gin engine.
func SetupRouter(svc *services.Service, opts Options) *gin.Engine {
	if opts.Metrics == nil {
		opts.Metrics = middleware.NewMetrics()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(opts.Logger),
		opts.Metrics.Middleware(),
		middleware.CORS(opts.AllowedOrigins),
	)

	r.GET("/healthz", handlers.HealthHandler(svc))
	r.GET("/metrics", opts.Metrics.Handler())

	api := r.Group("/api")

	limiter := middleware.NewLimiter(opts.AuthRateLimitRPS, opts.AuthRateLimitBurst)
	authGroup := api.Group("/auth", middleware.RateLimit(limiter, opts.Metrics.RateLimited.Inc))
	{
		authGroup.POST("/register", handlers.RegisterHandler(svc))
		authGroup.POST("/login", handlers.LoginHandler(svc))
	}

	protected := api.Group("", middleware.Auth(svc.Tokens()))
	{
		protected.GET("/profile", handlers.GetProfileHandler(svc))
		protected.POST("/profile/financial", handlers.SaveFinancialProfileHandler(svc))
		protected.GET("/profile/members", handlers.GetMembersHandler(svc))
		protected.POST("/profile/members", handlers.SaveMembersHandler(svc))

		protected.GET("/economic-score", handlers.EconomicScoreHandler(svc))
		protected.POST("/shock-simulate", handlers.ShockSimulateHandler(svc))
		protected.POST("/opportunity-simulate", handlers.OpportunitySimulateHandler(svc))

		protected.POST("/resilience-tracker", handlers.SaveMonthlyEntryHandler(svc))
		protected.GET("/resilience-tracker/history", handlers.TrackerHistoryHandler(svc))
	}

	return r
}
