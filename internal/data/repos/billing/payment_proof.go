package billing

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

type PaymentProofRepo interface {
	Create(dbc dbctx.Context, proof *types.PaymentProof) error
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.PaymentProof, error)
	ListByUser(dbc dbctx.Context, userID uuid.UUID) ([]*types.PaymentProof, error)
	ListByStatus(dbc dbctx.Context, status types.ProofStatus, limit int) ([]*types.PaymentProof, error)
	// Review moves a pending proof to status. It reports false when the proof
	// was no longer pending.
	Review(dbc dbctx.Context, id uuid.UUID, status types.ProofStatus, notes string, reviewer uuid.UUID, at time.Time) (bool, error)
}

type paymentProofRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPaymentProofRepo(db *gorm.DB, baseLog *logger.Logger) PaymentProofRepo {
	return &paymentProofRepo{db: db, log: baseLog.With("repo", "PaymentProofRepo")}
}

func (r *paymentProofRepo) Create(dbc dbctx.Context, proof *types.PaymentProof) error {
	return dbc.DB(r.db).Create(proof).Error
}

func (r *paymentProofRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.PaymentProof, error) {
	var p types.PaymentProof
	if err := dbc.DB(r.db).Where("id = ?", id).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, perr.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *paymentProofRepo) ListByUser(dbc dbctx.Context, userID uuid.UUID) ([]*types.PaymentProof, error) {
	var out []*types.PaymentProof
	err := dbc.DB(r.db).Where("user_id = ?", userID).Order("submitted_at DESC").Find(&out).Error
	return out, err
}

func (r *paymentProofRepo) ListByStatus(dbc dbctx.Context, status types.ProofStatus, limit int) ([]*types.PaymentProof, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	q := dbc.DB(r.db).Order("submitted_at DESC").Limit(limit)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var out []*types.PaymentProof
	err := q.Find(&out).Error
	return out, err
}

func (r *paymentProofRepo) Review(dbc dbctx.Context, id uuid.UUID, status types.ProofStatus, notes string, reviewer uuid.UUID, at time.Time) (bool, error) {
	res := dbc.DB(r.db).
		Model(&types.PaymentProof{}).
		Where("id = ? AND status = ?", id, types.ProofPending).
		Updates(map[string]any{
			"status":      status,
			"admin_notes": notes,
			"reviewed_by": reviewer,
			"reviewed_at": at.UTC(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
