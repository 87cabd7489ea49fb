package user

import (
	"time"

	"github.com/google/uuid"
)

type UserType string

const (
	UserTypeStandard UserType = "standard"
	UserTypePremium  UserType = "premium"
	UserTypeAdmin    UserType = "admin"
)

// Profile shares its primary key with User.
type Profile struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email             string    `gorm:"column:email;not null" json:"email"`
	FullName          string    `gorm:"column:full_name" json:"full_name"`
	AvatarURL         string    `gorm:"column:avatar_url" json:"avatar_url"`
	Website           string    `gorm:"column:website" json:"website"`
	UserType          UserType  `gorm:"column:user_type;not null;default:standard;index" json:"user_type"`
	MonthlyUsageCount int       `gorm:"column:monthly_usage_count;not null;default:0" json:"monthly_usage_count"`
	UsageResetDate    time.Time `gorm:"column:usage_reset_date;not null;index" json:"usage_reset_date"`
	BonusUses         int       `gorm:"column:bonus_uses;not null;default:0" json:"bonus_uses"`
	PreferredMode     string    `gorm:"column:preferred_mode;not null;default:casual" json:"preferred_mode"`
	ReferralCode      string    `gorm:"column:referral_code;uniqueIndex;not null" json:"referral_code"`
	CreatedAt         time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt         time.Time `gorm:"not null" json:"updated_at"`
}

func (Profile) TableName() string { return "profiles" }

// Unlimited reports whether the account skips monthly and size limits.
func (p *Profile) Unlimited() bool {
	return p != nil && (p.UserType == UserTypePremium || p.UserType == UserTypeAdmin)
}

func (p *Profile) IsAdmin() bool {
	return p != nil && p.UserType == UserTypeAdmin
}

// NextResetDate is midnight UTC on the first day of the month after now.
func NextResetDate(now time.Time) time.Time {
	now = now.UTC()
	return time.Date(now.Year(), now.Month()+1, 1, 0, 0, 0, 0, time.UTC)
}
