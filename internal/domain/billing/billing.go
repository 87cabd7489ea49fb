package billing

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ProofStatus string

const (
	ProofPending  ProofStatus = "pending"
	ProofApproved ProofStatus = "approved"
	ProofRejected ProofStatus = "rejected"
)

func (s ProofStatus) Valid() bool {
	switch s {
	case ProofPending, ProofApproved, ProofRejected:
		return true
	default:
		return false
	}
}

// PaymentProof is an unverified claim that the user paid off-band. An admin
// approves or rejects it by hand.
type PaymentProof struct {
	ID              uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID   `gorm:"type:uuid;index;not null" json:"user_id"`
	TransactionHash string      `gorm:"column:transaction_hash" json:"transaction_hash"`
	Amount          float64     `gorm:"column:amount" json:"amount"`
	Currency        string      `gorm:"column:currency;not null;default:USDT" json:"currency"`
	ProofImageURL   string      `gorm:"column:proof_image_url" json:"proof_image_url"`
	Status          ProofStatus `gorm:"column:status;not null;default:pending;index" json:"status"`
	AdminNotes      string      `gorm:"column:admin_notes" json:"admin_notes"`
	ReviewedBy      *uuid.UUID  `gorm:"type:uuid;column:reviewed_by" json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time  `gorm:"column:reviewed_at" json:"reviewed_at,omitempty"`
	SubmittedAt     time.Time   `gorm:"column:submitted_at;not null;index" json:"submitted_at"`
	CreatedAt       time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time   `gorm:"not null" json:"updated_at"`
}

func (PaymentProof) TableName() string { return "payment_proofs" }

func (p *PaymentProof) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

type SubscriptionPlan struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name           string         `gorm:"column:name;uniqueIndex;not null" json:"name"`
	Price          float64        `gorm:"column:price;not null" json:"price"`
	Currency       string         `gorm:"column:currency;not null;default:USDT" json:"currency"`
	Interval       string         `gorm:"column:billing_interval;not null;default:month" json:"interval"`
	MonthlyUses    *int           `gorm:"column:monthly_uses" json:"monthly_uses"`
	CharacterLimit *int           `gorm:"column:character_limit" json:"character_limit"`
	Features       datatypes.JSON `gorm:"column:features" json:"features"`
	IsActive       bool           `gorm:"column:is_active;not null;index" json:"is_active"`
	CreatedAt      time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"not null" json:"updated_at"`
}

func (SubscriptionPlan) TableName() string { return "subscription_plans" }

func (p *SubscriptionPlan) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
