package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/humanizer-backend/internal/http"
	httpH "github.com/yungbote/humanizer-backend/internal/http/handlers"
	httpMW "github.com/yungbote/humanizer-backend/internal/http/middleware"
	"github.com/yungbote/humanizer-backend/internal/observability"
	"github.com/yungbote/humanizer-backend/internal/platform/logger"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

type Handlers struct {
	Health     *httpH.HealthHandler
	Auth       *httpH.AuthHandler
	Profile    *httpH.ProfileHandler
	Usage      *httpH.UsageHandler
	Humanize   *httpH.HumanizeHandler
	Payment    *httpH.PaymentHandler
	Referral   *httpH.ReferralHandler
	Moderation *httpH.ModerationHandler
	Public     *httpH.PublicHandler
	Admin      *httpH.AdminHandler
}

func wireHandlers(db *gorm.DB, log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:     httpH.NewHealthHandler(db),
		Auth:       httpH.NewAuthHandler(services.Auth),
		Profile:    httpH.NewProfileHandler(services.Profile, services.Usage),
		Usage:      httpH.NewUsageHandler(services.Profile, services.Usage),
		Humanize:   httpH.NewHumanizeHandler(services.Humanize),
		Payment:    httpH.NewPaymentHandler(services.Payment),
		Referral:   httpH.NewReferralHandler(services.Referral),
		Moderation: httpH.NewModerationHandler(services.Moderation),
		Public:     httpH.NewPublicHandler(services.Plan, services.Newsletter),
		Admin:      httpH.NewAdminHandler(log, services.Analytics, services.Usage),
	}
}

func wireMiddleware(log *logger.Logger, services Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, services.Auth, services.Profile),
	}
}

func wireServer(log *logger.Logger, cfg Config, metrics *observability.Metrics, handlers Handlers, middleware Middleware) *http.Server {
	return http.NewServer(http.RouterConfig{
		Log:               log,
		Metrics:           metrics,
		CORSOrigins:       cfg.CORSOrigins,
		ServiceName:       cfg.ServiceName,
		AuthMiddleware:    middleware.Auth,
		HealthHandler:     handlers.Health,
		AuthHandler:       handlers.Auth,
		ProfileHandler:    handlers.Profile,
		UsageHandler:      handlers.Usage,
		HumanizeHandler:   handlers.Humanize,
		PaymentHandler:    handlers.Payment,
		ReferralHandler:   handlers.Referral,
		ModerationHandler: handlers.Moderation,
		PublicHandler:     handlers.Public,
		AdminHandler:      handlers.Admin,
	})
}
