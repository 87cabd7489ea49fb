package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/humanizer-backend/internal/data/repos"
	"github.com/yungbote/humanizer-backend/internal/platform/logger"
)

type Repos struct {
	User         repos.UserRepo
	Profile      repos.ProfileRepo
	UserToken    repos.UserTokenRepo
	Usage        repos.UsageRepo
	Analytics    repos.AnalyticsRepo
	PaymentProof repos.PaymentProofRepo
	Plan         repos.PlanRepo
	Referral     repos.ReferralRepo
	EmailCapture repos.EmailCaptureRepo
	AbuseReport  repos.AbuseReportRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:         repos.NewUserRepo(db, log),
		Profile:      repos.NewProfileRepo(db, log),
		UserToken:    repos.NewUserTokenRepo(db, log),
		Usage:        repos.NewUsageRepo(db, log),
		Analytics:    repos.NewAnalyticsRepo(db, log),
		PaymentProof: repos.NewPaymentProofRepo(db, log),
		Plan:         repos.NewPlanRepo(db, log),
		Referral:     repos.NewReferralRepo(db, log),
		EmailCapture: repos.NewEmailCaptureRepo(db, log),
		AbuseReport:  repos.NewAbuseReportRepo(db, log),
	}
}
