package growth

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/humanizer-backend/internal/domain"
	"github.com/yungbote/humanizer-backend/internal/pkg/dbctx"
	perr "github.com/yungbote/humanizer-backend/internal/pkg/errors"
	"github.com/yungbote/humanizer-backend/internal/platform/logger"
)

type ReferralRepo interface {
	Create(dbc dbctx.Context, ref *types.Referral) error
	ListByReferrer(dbc dbctx.Context, referrerID uuid.UUID) ([]*types.Referral, error)
	GetByReferrerAndEmail(dbc dbctx.Context, referrerID uuid.UUID, email string) (*types.Referral, error)
	// MarkCompleted flips a pending referral to completed and reports whether
	// this call did it, so the reward is granted exactly once.
	MarkCompleted(dbc dbctx.Context, id uuid.UUID, referredUserID uuid.UUID, at time.Time) (bool, error)
}

type referralRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewReferralRepo(db *gorm.DB, baseLog *logger.Logger) ReferralRepo {
	return &referralRepo{db: db, log: baseLog.With("repo", "ReferralRepo")}
}

func (r *referralRepo) Create(dbc dbctx.Context, ref *types.Referral) error {
	return dbc.DB(r.db).Create(ref).Error
}

func (r *referralRepo) ListByReferrer(dbc dbctx.Context, referrerID uuid.UUID) ([]*types.Referral, error) {
	var out []*types.Referral
	err := dbc.DB(r.db).Where("referrer_id = ?", referrerID).Order("created_at DESC").Find(&out).Error
	return out, err
}

func (r *referralRepo) GetByReferrerAndEmail(dbc dbctx.Context, referrerID uuid.UUID, email string) (*types.Referral, error) {
	var ref types.Referral
	err := dbc.DB(r.db).
		Where("referrer_id = ? AND lower(referred_email) = ?", referrerID, strings.ToLower(email)).
		First(&ref).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, perr.ErrNotFound
		}
		return nil, err
	}
	return &ref, nil
}

func (r *referralRepo) MarkCompleted(dbc dbctx.Context, id uuid.UUID, referredUserID uuid.UUID, at time.Time) (bool, error) {
	res := dbc.DB(r.db).
		Model(&types.Referral{}).
		Where("id = ? AND reward_granted = ?", id, false).
		Updates(map[string]any{
			"status":           types.ReferralCompleted,
			"referred_user_id": referredUserID,
			"reward_granted":   true,
			"completed_at":     at.UTC(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

type EmailCaptureRepo interface {
	Upsert(dbc dbctx.Context, capture *types.EmailCapture) error
	GetByEmail(dbc dbctx.Context, email string) (*types.EmailCapture, error)
}

type emailCaptureRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEmailCaptureRepo(db *gorm.DB, baseLog *logger.Logger) EmailCaptureRepo {
	return &emailCaptureRepo{db: db, log: baseLog.With("repo", "EmailCaptureRepo")}
}

// Upsert inserts the capture or re-subscribes an existing email.
func (r *emailCaptureRepo) Upsert(dbc dbctx.Context, capture *types.EmailCapture) error {
	return dbc.DB(r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"source", "subscribed", "updated_at"}),
	}).Create(capture).Error
}

func (r *emailCaptureRepo) GetByEmail(dbc dbctx.Context, email string) (*types.EmailCapture, error) {
	var c types.EmailCapture
	if err := dbc.DB(r.db).Where("email = ?", email).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, perr.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}
