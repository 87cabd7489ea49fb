package user

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/humanizer-backend/internal/domain"
	"github.com/yungbote/humanizer-backend/internal/pkg/dbctx"
	perr "github.com/yungbote/humanizer-backend/internal/pkg/errors"
	"github.com/yungbote/humanizer-backend/internal/platform/logger"
)

type ProfileRepo interface {
	Create(dbc dbctx.Context, profile *types.Profile) error
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Profile, error)
	GetByReferralCode(dbc dbctx.Context, code string) (*types.Profile, error)
	ReferralCodeExists(dbc dbctx.Context, code string) (bool, error)
	UpdateFields(dbc dbctx.Context, id uuid.UUID, fields map[string]any) error
	IncrementUsage(dbc dbctx.Context, id uuid.UUID) error
	IncrementUsageBelow(dbc dbctx.Context, id uuid.UUID, limit int) (bool, error)
	ConsumeBonusUse(dbc dbctx.Context, id uuid.UUID) (bool, error)
	AddBonusUses(dbc dbctx.Context, id uuid.UUID, n int) error
	SetUserType(dbc dbctx.Context, id uuid.UUID, userType types.UserType) error
	ResetExpired(dbc dbctx.Context, now, next time.Time) (int64, error)
	Count(dbc dbctx.Context) (int64, error)
	CountByType(dbc dbctx.Context) (map[types.UserType]int64, error)
}

type profileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProfileRepo(db *gorm.DB, baseLog *logger.Logger) ProfileRepo {
	return &profileRepo{db: db, log: baseLog.With("repo", "ProfileRepo")}
}

func (pr *profileRepo) Create(dbc dbctx.Context, profile *types.Profile) error {
	return dbc.DB(pr.db).Create(profile).Error
}

func (pr *profileRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Profile, error) {
	return pr.first(dbc, "id = ?", id)
}

func (pr *profileRepo) GetByReferralCode(dbc dbctx.Context, code string) (*types.Profile, error) {
	return pr.first(dbc, "referral_code = ?", code)
}

func (pr *profileRepo) first(dbc dbctx.Context, query string, arg any) (*types.Profile, error) {
	var p types.Profile
	if err := dbc.DB(pr.db).Where(query, arg).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, perr.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (pr *profileRepo) ReferralCodeExists(dbc dbctx.Context, code string) (bool, error) {
	var count int64
	if err := dbc.DB(pr.db).Model(&types.Profile{}).Where("referral_code = ?", code).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (pr *profileRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	res := dbc.DB(pr.db).Model(&types.Profile{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return perr.ErrNotFound
	}
	return nil
}

// IncrementUsage bumps the monthly counter in SQL so concurrent rewrites
// never lose an increment.
func (pr *profileRepo) IncrementUsage(dbc dbctx.Context, id uuid.UUID) error {
	return dbc.DB(pr.db).
		Model(&types.Profile{}).
		Where("id = ?", id).
		Update("monthly_usage_count", gorm.Expr("monthly_usage_count + 1")).Error
}

// IncrementUsageBelow bumps the counter only while it is under limit. The
// check and the write are one statement, so two concurrent rewrites cannot
// both take the last free use.
func (pr *profileRepo) IncrementUsageBelow(dbc dbctx.Context, id uuid.UUID, limit int) (bool, error) {
	res := dbc.DB(pr.db).
		Model(&types.Profile{}).
		Where("id = ? AND monthly_usage_count < ?", id, limit).
		Update("monthly_usage_count", gorm.Expr("monthly_usage_count + 1"))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (pr *profileRepo) ConsumeBonusUse(dbc dbctx.Context, id uuid.UUID) (bool, error) {
	res := dbc.DB(pr.db).
		Model(&types.Profile{}).
		Where("id = ? AND bonus_uses > 0", id).
		Update("bonus_uses", gorm.Expr("bonus_uses - 1"))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (pr *profileRepo) AddBonusUses(dbc dbctx.Context, id uuid.UUID, n int) error {
	return dbc.DB(pr.db).
		Model(&types.Profile{}).
		Where("id = ?", id).
		Update("bonus_uses", gorm.Expr("bonus_uses + ?", n)).Error
}

func (pr *profileRepo) SetUserType(dbc dbctx.Context, id uuid.UUID, userType types.UserType) error {
	return pr.UpdateFields(dbc, id, map[string]any{"user_type": userType})
}

// ResetExpired zeroes the counter of every profile whose reset date has
// passed and schedules the next reset.
func (pr *profileRepo) ResetExpired(dbc dbctx.Context, now, next time.Time) (int64, error) {
	res := dbc.DB(pr.db).
		Model(&types.Profile{}).
		Where("usage_reset_date <= ?", now.UTC()).
		Updates(map[string]any{
			"monthly_usage_count": 0,
			"usage_reset_date":    next.UTC(),
		})
	return res.RowsAffected, res.Error
}

func (pr *profileRepo) Count(dbc dbctx.Context) (int64, error) {
	var n int64
	err := dbc.DB(pr.db).Model(&types.Profile{}).Count(&n).Error
	return n, err
}

func (pr *profileRepo) CountByType(dbc dbctx.Context) (map[types.UserType]int64, error) {
	var rows []struct {
		UserType types.UserType
		Count    int64
	}
	if err := dbc.DB(pr.db).
		Model(&types.Profile{}).
		Select("user_type, COUNT(*) AS count").
		Group("user_type").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[types.UserType]int64, len(rows))
	for _, r := range rows {
		out[r.UserType] = r.Count
	}
	return out, nil
}
