package services

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yungbote/humanizer-backend/internal/data/repos"
	"github.com/yungbote/humanizer-backend/internal/data/repos/testutil"
	types "github.com/yungbote/humanizer-backend/internal/domain"
	"github.com/yungbote/humanizer-backend/internal/humanizer"
	"github.com/yungbote/humanizer-backend/internal/pkg/dbctx"
	"github.com/yungbote/humanizer-backend/internal/platform/logger"
)

type fixture struct {
	db  *gorm.DB
	log *logger.Logger

	users     repos.UserRepo
	profiles  repos.ProfileRepo
	tokens    repos.UserTokenRepo
	usageLogs repos.UsageRepo
	analytics repos.AnalyticsRepo
	proofs    repos.PaymentProofRepo
	plans     repos.PlanRepo
	referrals repos.ReferralRepo
	captures  repos.EmailCaptureRepo
	reports   repos.AbuseReportRepo

	limits UsageLimits
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.Store(t)
	log := testutil.Logger(t)
	return &fixture{
		db:        db,
		log:       log,
		users:     repos.NewUserRepo(db, log),
		profiles:  repos.NewProfileRepo(db, log),
		tokens:    repos.NewUserTokenRepo(db, log),
		usageLogs: repos.NewUsageRepo(db, log),
		analytics: repos.NewAnalyticsRepo(db, log),
		proofs:    repos.NewPaymentProofRepo(db, log),
		plans:     repos.NewPlanRepo(db, log),
		referrals: repos.NewReferralRepo(db, log),
		captures:  repos.NewEmailCaptureRepo(db, log),
		reports:   repos.NewAbuseReportRepo(db, log),
		limits:    UsageLimits{MonthlyFreeUses: 5, MaxCharacters: 10000},
	}
}

func (f *fixture) profile(t *testing.T, email string, userType types.UserType) *types.Profile {
	t.Helper()
	return testutil.SeedProfile(t, context.Background(), f.db, email, userType)
}

func (f *fixture) reload(t *testing.T, id uuid.UUID) *types.Profile {
	t.Helper()
	p, err := f.profiles.GetByID(dbctx.New(context.Background()), id)
	require.NoError(t, err)
	return p
}

func (f *fixture) usageService() UsageService {
	return NewUsageService(f.db, f.log, f.profiles, f.usageLogs, f.analytics, nil, f.limits)
}

func (f *fixture) referralService() ReferralService {
	return NewReferralService(f.log, f.profiles, f.referrals, 3)
}

func (f *fixture) authService() AuthService {
	return NewAuthService(f.db, f.log, f.users, f.profiles, f.tokens, f.referralService(), "test-secret", 15*time.Minute, 24*time.Hour)
}

func (f *fixture) humanizeService(limiter RateLimiter) HumanizeService {
	return NewHumanizeService(
		f.log,
		humanizer.Default(),
		NewProfileService(f.log, f.profiles),
		f.usageService(),
		limiter,
		NewDetectionScorer(rand.New(rand.NewPCG(1, 2))),
		nil,
		HumanizeConfig{BulkMaxTexts: 3, BulkConcurrency: 2},
	)
}
