package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/humanizer-backend/internal/http/handlers"
	httpMW "github.com/yungbote/humanizer-backend/internal/http/middleware"
	"github.com/yungbote/humanizer-backend/internal/observability"
	"github.com/yungbote/humanizer-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	Metrics     *observability.Metrics
	CORSOrigins []string
	ServiceName string

	AuthMiddleware *httpMW.AuthMiddleware

	HealthHandler     *httpH.HealthHandler
	AuthHandler       *httpH.AuthHandler
	ProfileHandler    *httpH.ProfileHandler
	UsageHandler      *httpH.UsageHandler
	HumanizeHandler   *httpH.HumanizeHandler
	PaymentHandler    *httpH.PaymentHandler
	ReferralHandler   *httpH.ReferralHandler
	ModerationHandler *httpH.ModerationHandler
	PublicHandler     *httpH.PublicHandler
	AdminHandler      *httpH.AdminHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "humanizer"
	}
	r.Use(otelgin.Middleware(serviceName))
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	api := r.Group("/api")
	{
		if cfg.AuthHandler != nil {
			api.POST("/register", cfg.AuthHandler.Register)
			api.POST("/login", cfg.AuthHandler.Login)
		}
		if cfg.PublicHandler != nil {
			api.GET("/plans", cfg.PublicHandler.ListPlans)
			api.POST("/newsletter", cfg.PublicHandler.Subscribe)
		}
	}

	protected := api.Group("/")
	if cfg.AuthMiddleware != nil {
		protected.Use(cfg.AuthMiddleware.RequireAuth())
	}
	{
		if cfg.AuthHandler != nil {
			protected.POST("/refresh", cfg.AuthHandler.Refresh)
			protected.POST("/logout", cfg.AuthHandler.Logout)
		}
		if cfg.ProfileHandler != nil {
			protected.GET("/me", cfg.ProfileHandler.GetMe)
			protected.PATCH("/me", cfg.ProfileHandler.UpdateMe)
		}
		if cfg.UsageHandler != nil {
			protected.GET("/usage", cfg.UsageHandler.Summary)
			protected.GET("/usage/logs", cfg.UsageHandler.Logs)
		}
		if cfg.HumanizeHandler != nil {
			protected.POST("/humanize", cfg.HumanizeHandler.Humanize)
			protected.POST("/humanize/bulk", cfg.HumanizeHandler.Bulk)
			protected.POST("/detection/reanalyze", cfg.HumanizeHandler.Reanalyze)
		}
		if cfg.PaymentHandler != nil {
			protected.GET("/payment-proofs", cfg.PaymentHandler.ListMine)
			protected.POST("/payment-proofs", cfg.PaymentHandler.Submit)
		}
		if cfg.ReferralHandler != nil {
			protected.GET("/referrals", cfg.ReferralHandler.List)
			protected.POST("/referrals", cfg.ReferralHandler.Invite)
		}
		if cfg.ModerationHandler != nil {
			protected.POST("/abuse-reports", cfg.ModerationHandler.Report)
		}
	}

	admin := protected.Group("/admin")
	if cfg.AuthMiddleware != nil {
		admin.Use(cfg.AuthMiddleware.RequireAdmin())
	}
	{
		if cfg.PaymentHandler != nil {
			admin.GET("/payment-proofs", cfg.PaymentHandler.List)
			admin.PATCH("/payment-proofs/:id", cfg.PaymentHandler.Review)
		}
		if cfg.ModerationHandler != nil {
			admin.GET("/abuse-reports", cfg.ModerationHandler.List)
			admin.PATCH("/abuse-reports/:id", cfg.ModerationHandler.UpdateStatus)
		}
		if cfg.AdminHandler != nil {
			admin.GET("/analytics", cfg.AdminHandler.Analytics)
			admin.POST("/usage/reset", cfg.AdminHandler.ResetUsage)
		}
	}

	return r
}
