package usage

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UsageLog is the coarse per-rewrite record that the monthly counter is
// derived from.
type UsageLog struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	CharactersUsed int       `gorm:"column:characters_used;not null" json:"characters_used"`
	CreatedAt      time.Time `gorm:"not null;index" json:"created_at"`
}

func (UsageLog) TableName() string { return "usage_logs" }

func (l *UsageLog) BeforeCreate(*gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

type DetailedUsageLog struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           uuid.UUID      `gorm:"type:uuid;index;not null" json:"user_id"`
	CharactersUsed   int            `gorm:"column:characters_used;not null" json:"characters_used"`
	InputTextLength  int            `gorm:"column:input_text_length;not null" json:"input_text_length"`
	OutputTextLength int            `gorm:"column:output_text_length;not null" json:"output_text_length"`
	ModeUsed         string         `gorm:"column:mode_used;not null;index" json:"mode_used"`
	ProcessingTimeMS int64          `gorm:"column:processing_time_ms;not null" json:"processing_time_ms"`
	EditCount        int            `gorm:"column:edit_count;not null;default:0" json:"edit_count"`
	Passes           datatypes.JSON `gorm:"column:passes" json:"passes,omitempty"`
	CreatedAt        time.Time      `gorm:"not null;index" json:"created_at"`
}

func (DetailedUsageLog) TableName() string { return "detailed_usage_logs" }

func (l *DetailedUsageLog) BeforeCreate(*gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// UserAnalytics is one row per user per UTC day.
type UserAnalytics struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID              uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_analytics_user_date" json:"user_id"`
	Date                time.Time `gorm:"type:date;not null;uniqueIndex:idx_user_analytics_user_date;index" json:"date"`
	DailyUses           int       `gorm:"column:daily_uses;not null;default:0" json:"daily_uses"`
	CharactersProcessed int       `gorm:"column:characters_processed;not null;default:0" json:"characters_processed"`
	SessionDuration     int       `gorm:"column:session_duration;not null;default:0" json:"session_duration"`
	LastActive          time.Time `gorm:"column:last_active;not null" json:"last_active"`
	CreatedAt           time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt           time.Time `gorm:"not null" json:"updated_at"`
}

func (UserAnalytics) TableName() string { return "user_analytics" }

func (a *UserAnalytics) BeforeCreate(*gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// Day truncates t to midnight UTC, the key of UserAnalytics rows.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
