package app

import (
	"strings"
	"time"

	"github.com/yungbote/humanizer-backend/internal/platform/logger"
	"github.com/yungbote/humanizer-backend/internal/utils"
)

type Config struct {
	Port        string
	ServiceName string
	Environment string
	Version     string

	JWTSecretKey    string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	MonthlyFreeUses    int
	MaxCharacters      int
	BulkMaxTexts       int
	BulkConcurrency    int
	RatePerMinute      int
	ReferralBonusUses  int
	UsageResetInterval time.Duration

	RedisAddr     string
	CORSOrigins   []string
	HumanizerPath string
}

func LoadConfig(log *logger.Logger) Config {
	accessTokenTTLSeconds := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	refreshTokenTTLSeconds := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400*7, log)
	return Config{
		Port:        utils.GetEnv("PORT", "8080", log),
		ServiceName: utils.GetEnv("OTEL_SERVICE_NAME", "humanizer", log),
		Environment: utils.GetEnv("APP_ENV", "development", log),
		Version:     utils.GetEnv("APP_VERSION", "dev", log),

		JWTSecretKey:    utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log),
		AccessTokenTTL:  time.Duration(accessTokenTTLSeconds) * time.Second,
		RefreshTokenTTL: time.Duration(refreshTokenTTLSeconds) * time.Second,

		MonthlyFreeUses:    utils.GetEnvAsInt("MONTHLY_FREE_USES", 5, log),
		MaxCharacters:      utils.GetEnvAsInt("MAX_CHARACTERS", 10000, log),
		BulkMaxTexts:       utils.GetEnvAsInt("BULK_MAX_TEXTS", 10, log),
		BulkConcurrency:    utils.GetEnvAsInt("BULK_CONCURRENCY", 4, log),
		RatePerMinute:      utils.GetEnvAsInt("HUMANIZE_RATE_PER_MINUTE", 30, log),
		ReferralBonusUses:  utils.GetEnvAsInt("REFERRAL_BONUS_USES", 3, log),
		UsageResetInterval: utils.GetEnvAsDuration("USAGE_RESET_INTERVAL", time.Hour, log),

		RedisAddr:     strings.TrimSpace(utils.GetEnv("REDIS_ADDR", "", log)),
		CORSOrigins:   splitList(utils.GetEnv("CORS_ORIGINS", "", log)),
		HumanizerPath: strings.TrimSpace(utils.GetEnv("HUMANIZER_CONFIG", "", log)),
	}
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
