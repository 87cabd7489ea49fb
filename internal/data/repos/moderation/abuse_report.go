package moderation

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/humanizer-backend/internal/domain"
	"github.com/yungbote/humanizer-backend/internal/pkg/dbctx"
	perr "github.com/yungbote/humanizer-backend/internal/pkg/errors"
	"github.com/yungbote/humanizer-backend/internal/platform/logger"
)

type AbuseReportRepo interface {
	Create(dbc dbctx.Context, report *types.AbuseReport) error
	ListByStatus(dbc dbctx.Context, status types.ReportStatus, limit int) ([]*types.AbuseReport, error)
	UpdateStatus(dbc dbctx.Context, id uuid.UUID, status types.ReportStatus, notes string, reviewer uuid.UUID, at time.Time) error
}

type abuseReportRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAbuseReportRepo(db *gorm.DB, baseLog *logger.Logger) AbuseReportRepo {
	return &abuseReportRepo{db: db, log: baseLog.With("repo", "AbuseReportRepo")}
}

func (r *abuseReportRepo) Create(dbc dbctx.Context, report *types.AbuseReport) error {
	return dbc.DB(r.db).Create(report).Error
}

func (r *abuseReportRepo) ListByStatus(dbc dbctx.Context, status types.ReportStatus, limit int) ([]*types.AbuseReport, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	q := dbc.DB(r.db).Order("created_at DESC").Limit(limit)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var out []*types.AbuseReport
	err := q.Find(&out).Error
	return out, err
}

func (r *abuseReportRepo) UpdateStatus(dbc dbctx.Context, id uuid.UUID, status types.ReportStatus, notes string, reviewer uuid.UUID, at time.Time) error {
	res := dbc.DB(r.db).
		Model(&types.AbuseReport{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":      status,
			"admin_notes": notes,
			"reviewed_by": reviewer,
			"reviewed_at": at.UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return perr.ErrNotFound
	}
	return nil
}
