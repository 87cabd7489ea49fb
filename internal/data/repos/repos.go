package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/humanizer-backend/internal/data/repos/auth"
	"github.com/yungbote/humanizer-backend/internal/data/repos/billing"
	"github.com/yungbote/humanizer-backend/internal/data/repos/growth"
	"github.com/yungbote/humanizer-backend/internal/data/repos/moderation"
	"github.com/yungbote/humanizer-backend/internal/data/repos/usage"
	"github.com/yungbote/humanizer-backend/internal/data/repos/user"
	"github.com/yungbote/humanizer-backend/internal/platform/logger"
)

type UserRepo = user.UserRepo
type ProfileRepo = user.ProfileRepo
type UserTokenRepo = auth.UserTokenRepo

type UsageRepo = usage.UsageRepo
type AnalyticsRepo = usage.AnalyticsRepo

type PaymentProofRepo = billing.PaymentProofRepo
type PlanRepo = billing.PlanRepo

type ReferralRepo = growth.ReferralRepo
type EmailCaptureRepo = growth.EmailCaptureRepo

type AbuseReportRepo = moderation.AbuseReportRepo

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo { return user.NewUserRepo(db, baseLog) }
func NewProfileRepo(db *gorm.DB, baseLog *logger.Logger) ProfileRepo {
	return user.NewProfileRepo(db, baseLog)
}
func NewUserTokenRepo(db *gorm.DB, baseLog *logger.Logger) UserTokenRepo {
	return auth.NewUserTokenRepo(db, baseLog)
}

func NewUsageRepo(db *gorm.DB, baseLog *logger.Logger) UsageRepo {
	return usage.NewUsageRepo(db, baseLog)
}
func NewAnalyticsRepo(db *gorm.DB, baseLog *logger.Logger) AnalyticsRepo {
	return usage.NewAnalyticsRepo(db, baseLog)
}

func NewPaymentProofRepo(db *gorm.DB, baseLog *logger.Logger) PaymentProofRepo {
	return billing.NewPaymentProofRepo(db, baseLog)
}
func NewPlanRepo(db *gorm.DB, baseLog *logger.Logger) PlanRepo {
	return billing.NewPlanRepo(db, baseLog)
}

func NewReferralRepo(db *gorm.DB, baseLog *logger.Logger) ReferralRepo {
	return growth.NewReferralRepo(db, baseLog)
}
func NewEmailCaptureRepo(db *gorm.DB, baseLog *logger.Logger) EmailCaptureRepo {
	return growth.NewEmailCaptureRepo(db, baseLog)
}

func NewAbuseReportRepo(db *gorm.DB, baseLog *logger.Logger) AbuseReportRepo {
	return moderation.NewAbuseReportRepo(db, baseLog)
}
