package billing

import (
	"gorm.io/gorm"

	types "github.com/yungbote/humanizer-backend/internal/domain"
	"github.com/yungbote/humanizer-backend/internal/pkg/dbctx"
	"github.com/yungbote/humanizer-backend/internal/platform/logger"
)

type PlanRepo interface {
	ListActive(dbc dbctx.Context) ([]*types.SubscriptionPlan, error)
	Count(dbc dbctx.Context) (int64, error)
	Create(dbc dbctx.Context, plans []*types.SubscriptionPlan) error
}

type planRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPlanRepo(db *gorm.DB, baseLog *logger.Logger) PlanRepo {
	return &planRepo{db: db, log: baseLog.With("repo", "PlanRepo")}
}

func (r *planRepo) ListActive(dbc dbctx.Context) ([]*types.SubscriptionPlan, error) {
	var out []*types.SubscriptionPlan
	err := dbc.DB(r.db).Where("is_active = ?", true).Order("price ASC").Find(&out).Error
	return out, err
}

func (r *planRepo) Count(dbc dbctx.Context) (int64, error) {
	var n int64
	err := dbc.DB(r.db).Model(&types.SubscriptionPlan{}).Count(&n).Error
	return n, err
}

func (r *planRepo) Create(dbc dbctx.Context, plans []*types.SubscriptionPlan) error {
	if len(plans) == 0 {
		return nil
	}
	return dbc.DB(r.db).Create(&plans).Error
}
