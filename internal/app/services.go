package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/humanizer-backend/internal/humanizer"
	"github.com/yungbote/humanizer-backend/internal/humanizer/tuning"
	"github.com/yungbote/humanizer-backend/internal/observability"
	"github.com/yungbote/humanizer-backend/internal/platform/logger"
	"github.com/yungbote/humanizer-backend/internal/services"
)

type Services struct {
	Auth       services.AuthService
	Profile    services.ProfileService
	Usage      services.UsageService
	Humanize   services.HumanizeService
	Payment    services.PaymentService
	Referral   services.ReferralService
	Moderation services.ModerationService
	Newsletter services.NewsletterService
	Plan       services.PlanService
	Analytics  services.AnalyticsService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos, clients Clients, metrics *observability.Metrics) (Services, error) {
	log.Info("Wiring services...")

	rewriterCfg, err := tuning.Load(cfg.HumanizerPath, nil)
	if err != nil {
		return Services{}, fmt.Errorf("load humanizer config: %w", err)
	}

	limits := services.UsageLimits{
		MonthlyFreeUses: cfg.MonthlyFreeUses,
		MaxCharacters:   cfg.MaxCharacters,
	}

	var limiter services.RateLimiter
	if clients.Redis != nil {
		limiter = services.NewRedisRateLimiter(clients.Redis, log, cfg.RatePerMinute)
	} else {
		log.Warn("REDIS_ADDR not set; using per-process rate limiting")
		limiter = services.NewLocalRateLimiter(cfg.RatePerMinute)
	}

	profileService := services.NewProfileService(log, reposet.Profile)
	usageService := services.NewUsageService(db, log, reposet.Profile, reposet.Usage, reposet.Analytics, metrics, limits)
	referralService := services.NewReferralService(log, reposet.Profile, reposet.Referral, cfg.ReferralBonusUses)
	authService := services.NewAuthService(
		db,
		log,
		reposet.User,
		reposet.Profile,
		reposet.UserToken,
		referralService,
		cfg.JWTSecretKey,
		cfg.AccessTokenTTL,
		cfg.RefreshTokenTTL,
	)
	humanizeService := services.NewHumanizeService(
		log,
		humanizer.New(rewriterCfg),
		profileService,
		usageService,
		limiter,
		services.NewDetectionScorer(nil),
		metrics,
		services.HumanizeConfig{
			BulkMaxTexts:    cfg.BulkMaxTexts,
			BulkConcurrency: cfg.BulkConcurrency,
		},
	)

	return Services{
		Auth:       authService,
		Profile:    profileService,
		Usage:      usageService,
		Humanize:   humanizeService,
		Payment:    services.NewPaymentService(db, log, reposet.PaymentProof, reposet.Profile),
		Referral:   referralService,
		Moderation: services.NewModerationService(log, reposet.AbuseReport),
		Newsletter: services.NewNewsletterService(log, reposet.EmailCapture),
		Plan:       services.NewPlanService(log, reposet.Plan, limits),
		Analytics:  services.NewAnalyticsService(log, reposet.Profile, reposet.Analytics),
	}, nil
}
