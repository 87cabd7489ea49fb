package db

import (
	"fmt"

	"gorm.io/gorm"

	types "github.com/yungbote/humanizer-backend/internal/domain"
)

func AutoMigrateAll(db *gorm.DB) error {
	if err := db.AutoMigrate(types.Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return EnsureUsageIndexes(db)
}

// EnsureUsageIndexes adds indexes gorm tags cannot express. Both statements
// are valid on Postgres and SQLite.
func EnsureUsageIndexes(db *gorm.DB) error {
	stmts := []string{
		`CREATE INDEX IF NOT EXISTS idx_payment_proofs_status_submitted ON payment_proofs(status, submitted_at);`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_referrals_referrer_email ON referrals(referrer_id, lower(referred_email));`,
		`CREATE INDEX IF NOT EXISTS idx_detailed_usage_user_created ON detailed_usage_logs(user_id, created_at);`,
	}
	for _, stmt := range stmts {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("ensure index: %w", err)
		}
	}
	return nil
}
