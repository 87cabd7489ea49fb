package growth

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReferralStatus string

const (
	ReferralPending   ReferralStatus = "pending"
	ReferralCompleted ReferralStatus = "completed"
)

type Referral struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ReferrerID     uuid.UUID      `gorm:"type:uuid;index;not null" json:"referrer_id"`
	ReferredEmail  string         `gorm:"column:referred_email;not null;index" json:"referred_email"`
	ReferredUserID *uuid.UUID     `gorm:"type:uuid;column:referred_user_id" json:"referred_user_id,omitempty"`
	Status         ReferralStatus `gorm:"column:status;not null;default:pending" json:"status"`
	RewardGranted  bool           `gorm:"column:reward_granted;not null;default:false" json:"reward_granted"`
	CompletedAt    *time.Time     `gorm:"column:completed_at" json:"completed_at,omitempty"`
	CreatedAt      time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"not null" json:"updated_at"`
}

func (Referral) TableName() string { return "referrals" }

func (r *Referral) BeforeCreate(*gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// EmailCapture is a newsletter signup, possibly from an anonymous visitor.
type EmailCapture struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email      string    `gorm:"column:email;uniqueIndex;not null" json:"email"`
	Source     string    `gorm:"column:source;not null;default:landing" json:"source"`
	Subscribed bool      `gorm:"column:subscribed;not null" json:"subscribed"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}

func (EmailCapture) TableName() string { return "email_captures" }

func (e *EmailCapture) BeforeCreate(*gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
