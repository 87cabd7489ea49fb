package usage

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/humanizer-backend/internal/domain"
	"github.com/yungbote/humanizer-backend/internal/pkg/dbctx"
	"github.com/yungbote/humanizer-backend/internal/platform/logger"
)

type UsageRepo interface {
	CreateLog(dbc dbctx.Context, log *types.UsageLog) error
	CreateDetailed(dbc dbctx.Context, log *types.DetailedUsageLog) error
	ListDetailedByUser(dbc dbctx.Context, userID uuid.UUID, limit int) ([]*types.DetailedUsageLog, error)
	CountLogsSince(dbc dbctx.Context, userID uuid.UUID, since time.Time) (int64, error)
}

type usageRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUsageRepo(db *gorm.DB, baseLog *logger.Logger) UsageRepo {
	return &usageRepo{db: db, log: baseLog.With("repo", "UsageRepo")}
}

func (r *usageRepo) CreateLog(dbc dbctx.Context, l *types.UsageLog) error {
	return dbc.DB(r.db).Create(l).Error
}

func (r *usageRepo) CreateDetailed(dbc dbctx.Context, l *types.DetailedUsageLog) error {
	return dbc.DB(r.db).Create(l).Error
}

func (r *usageRepo) ListDetailedByUser(dbc dbctx.Context, userID uuid.UUID, limit int) ([]*types.DetailedUsageLog, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var out []*types.DetailedUsageLog
	err := dbc.DB(r.db).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

func (r *usageRepo) CountLogsSince(dbc dbctx.Context, userID uuid.UUID, since time.Time) (int64, error) {
	var n int64
	err := dbc.DB(r.db).
		Model(&types.UsageLog{}).
		Where("user_id = ? AND created_at >= ?", userID, since.UTC()).
		Count(&n).Error
	return n, err
}

type AnalyticsRepo interface {
	RecordActivity(dbc dbctx.Context, userID uuid.UUID, at time.Time, characters int, sessionSeconds int) error
	ListRange(dbc dbctx.Context, from, to time.Time) ([]*types.UserAnalytics, error)
}

type analyticsRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAnalyticsRepo(db *gorm.DB, baseLog *logger.Logger) AnalyticsRepo {
	return &analyticsRepo{db: db, log: baseLog.With("repo", "AnalyticsRepo")}
}

// RecordActivity upserts the (user, day) row, adding one use and the
// processed characters.
func (r *analyticsRepo) RecordActivity(dbc dbctx.Context, userID uuid.UUID, at time.Time, characters int, sessionSeconds int) error {
	at = at.UTC()
	row := &types.UserAnalytics{
		UserID:              userID,
		Date:                types.Day(at),
		DailyUses:           1,
		CharactersProcessed: characters,
		SessionDuration:     sessionSeconds,
		LastActive:          at,
	}
	return dbc.DB(r.db).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.Assignments(map[string]any{
			"daily_uses":           gorm.Expr("user_analytics.daily_uses + 1"),
			"characters_processed": gorm.Expr("user_analytics.characters_processed + ?", characters),
			"session_duration":     gorm.Expr("user_analytics.session_duration + ?", sessionSeconds),
			"last_active":          at,
			"updated_at":           at,
		}),
	}).Create(row).Error
}

// ListRange returns rows with from <= date <= to, oldest first.
func (r *analyticsRepo) ListRange(dbc dbctx.Context, from, to time.Time) ([]*types.UserAnalytics, error) {
	var out []*types.UserAnalytics
	err := dbc.DB(r.db).
		Where("date >= ? AND date <= ?", types.Day(from), types.Day(to)).
		Order("date ASC").
		Find(&out).Error
	return out, err
}
