package moderation

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReportStatus string

const (
	ReportPending   ReportStatus = "pending"
	ReportReviewed  ReportStatus = "reviewed"
	ReportResolved  ReportStatus = "resolved"
	ReportDismissed ReportStatus = "dismissed"
)

func (s ReportStatus) Valid() bool {
	switch s {
	case ReportPending, ReportReviewed, ReportResolved, ReportDismissed:
		return true
	default:
		return false
	}
}

// AbuseReport flags a rewrite the user considers harmful or broken.
type AbuseReport struct {
	ID            uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID    `gorm:"type:uuid;index;not null" json:"user_id"`
	InputText     string       `gorm:"column:input_text;not null" json:"input_text"`
	OutputText    string       `gorm:"column:output_text;not null" json:"output_text"`
	ReportReason  string       `gorm:"column:report_reason;not null" json:"report_reason"`
	ReportDetails string       `gorm:"column:report_details" json:"report_details"`
	Status        ReportStatus `gorm:"column:status;not null;default:pending;index" json:"status"`
	AdminNotes    string       `gorm:"column:admin_notes" json:"admin_notes"`
	ReviewedBy    *uuid.UUID   `gorm:"type:uuid;column:reviewed_by" json:"reviewed_by,omitempty"`
	ReviewedAt    *time.Time   `gorm:"column:reviewed_at" json:"reviewed_at,omitempty"`
	CreatedAt     time.Time    `gorm:"not null;index" json:"created_at"`
	UpdatedAt     time.Time    `gorm:"not null" json:"updated_at"`
}

func (AbuseReport) TableName() string { return "abuse_reports" }

func (r *AbuseReport) BeforeCreate(*gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
