package domain

import (
	"github.com/yungbote/humanizer-backend/internal/domain/auth"
	"github.com/yungbote/humanizer-backend/internal/domain/billing"
	"github.com/yungbote/humanizer-backend/internal/domain/growth"
	"github.com/yungbote/humanizer-backend/internal/domain/moderation"
	"github.com/yungbote/humanizer-backend/internal/domain/usage"
	"github.com/yungbote/humanizer-backend/internal/domain/user"
)

type (
	User     = user.User
	Profile  = user.Profile
	UserType = user.UserType

	UserToken = auth.UserToken

	UsageLog         = usage.UsageLog
	DetailedUsageLog = usage.DetailedUsageLog
	UserAnalytics    = usage.UserAnalytics

	PaymentProof     = billing.PaymentProof
	ProofStatus      = billing.ProofStatus
	SubscriptionPlan = billing.SubscriptionPlan

	Referral       = growth.Referral
	ReferralStatus = growth.ReferralStatus
	EmailCapture   = growth.EmailCapture

	AbuseReport  = moderation.AbuseReport
	ReportStatus = moderation.ReportStatus
)

const (
	UserTypeStandard = user.UserTypeStandard
	UserTypePremium  = user.UserTypePremium
	UserTypeAdmin    = user.UserTypeAdmin

	ProofPending  = billing.ProofPending
	ProofApproved = billing.ProofApproved
	ProofRejected = billing.ProofRejected

	ReferralPending   = growth.ReferralPending
	ReferralCompleted = growth.ReferralCompleted

	ReportPending   = moderation.ReportPending
	ReportReviewed  = moderation.ReportReviewed
	ReportResolved  = moderation.ReportResolved
	ReportDismissed = moderation.ReportDismissed
)

var (
	NextResetDate = user.NextResetDate
	Day           = usage.Day
)

// Models lists every persisted type in migration order.
func Models() []any {
	return []any{
		&User{},
		&Profile{},
		&UserToken{},
		&UsageLog{},
		&DetailedUsageLog{},
		&UserAnalytics{},
		&PaymentProof{},
		&SubscriptionPlan{},
		&Referral{},
		&EmailCapture{},
		&AbuseReport{},
	}
}
