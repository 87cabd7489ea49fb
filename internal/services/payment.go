package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/humanizer-backend/internal/data/repos"
	types "github.com/yungbote/humanizer-backend/internal/domain"
	"github.com/yungbote/humanizer-backend/internal/pkg/dbctx"
	perr "github.com/yungbote/humanizer-backend/internal/pkg/errors"
	"github.com/yungbote/humanizer-backend/internal/platform/logger"
)

type PaymentSubmission struct {
	TransactionHash string
	Amount          float64
	Currency        string
	ProofImageURL   string
}

// PaymentService tracks proofs of off-band payments. Nothing here moves
// money; an admin decides whether a proof is genuine.
type PaymentService interface {
	Submit(ctx context.Context, userID uuid.UUID, in PaymentSubmission) (*types.PaymentProof, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]*types.PaymentProof, error)
	List(ctx context.Context, status types.ProofStatus, limit int) ([]*types.PaymentProof, error)
	Review(ctx context.Context, adminID, proofID uuid.UUID, status types.ProofStatus, notes string) (*types.PaymentProof, error)
}

type paymentService struct {
	db          *gorm.DB
	log         *logger.Logger
	proofRepo   repos.PaymentProofRepo
	profileRepo repos.ProfileRepo
	now         func() time.Time
}

func NewPaymentService(db *gorm.DB, log *logger.Logger, proofRepo repos.PaymentProofRepo, profileRepo repos.ProfileRepo) PaymentService {
	return &paymentService{
		db:          db,
		log:         log.With("service", "PaymentService"),
		proofRepo:   proofRepo,
		profileRepo: profileRepo,
		now:         time.Now,
	}
}

func (s *paymentService) Submit(ctx context.Context, userID uuid.UUID, in PaymentSubmission) (*types.PaymentProof, error) {
	hash := strings.TrimSpace(in.TransactionHash)
	image := strings.TrimSpace(in.ProofImageURL)
	if hash == "" && image == "" {
		return nil, fmt.Errorf("%w: a transaction hash or a proof image is required", perr.ErrInvalidArgument)
	}
	if in.Amount < 0 {
		return nil, fmt.Errorf("%w: amount cannot be negative", perr.ErrInvalidArgument)
	}
	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = "USDT"
	}
	proof := &types.PaymentProof{
		UserID:          userID,
		TransactionHash: hash,
		Amount:          in.Amount,
		Currency:        currency,
		ProofImageURL:   image,
		Status:          types.ProofPending,
		SubmittedAt:     s.now().UTC(),
	}
	if err := s.proofRepo.Create(dbctx.New(ctx), proof); err != nil {
		return nil, fmt.Errorf("create payment proof: %w", err)
	}
	s.log.Info("Payment proof submitted", "user_id", userID, "proof_id", proof.ID)
	return proof, nil
}

func (s *paymentService) ListMine(ctx context.Context, userID uuid.UUID) ([]*types.PaymentProof, error) {
	return s.proofRepo.ListByUser(dbctx.New(ctx), userID)
}

func (s *paymentService) List(ctx context.Context, status types.ProofStatus, limit int) ([]*types.PaymentProof, error) {
	if status != "" && !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", perr.ErrInvalidArgument, status)
	}
	return s.proofRepo.ListByStatus(dbctx.New(ctx), status, limit)
}

// Review settles a pending proof. Approval upgrades the owner to premium in
// the same transaction.
func (s *paymentService) Review(ctx context.Context, adminID, proofID uuid.UUID, status types.ProofStatus, notes string) (*types.PaymentProof, error) {
	if status != types.ProofApproved && status != types.ProofRejected {
		return nil, fmt.Errorf("%w: status must be approved or rejected", perr.ErrInvalidArgument)
	}
	var out *types.PaymentProof
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		proof, err := s.proofRepo.GetByID(dbc, proofID)
		if err != nil {
			return err
		}
		ok, err := s.proofRepo.Review(dbc, proofID, status, strings.TrimSpace(notes), adminID, s.now())
		if err != nil {
			return fmt.Errorf("review proof: %w", err)
		}
		if !ok {
			return fmt.Errorf("%w: proof was already %s", perr.ErrConflict, proof.Status)
		}
		if status == types.ProofApproved {
			owner, err := s.profileRepo.GetByID(dbc, proof.UserID)
			if err != nil {
				return fmt.Errorf("load proof owner: %w", err)
			}
			// Admins keep their role.
			if owner.UserType != types.UserTypeAdmin {
				if err := s.profileRepo.SetUserType(dbc, owner.ID, types.UserTypePremium); err != nil {
					return fmt.Errorf("upgrade owner: %w", err)
				}
			}
		}
		out, err = s.proofRepo.GetByID(dbc, proofID)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("Payment proof reviewed", "proof_id", proofID, "status", status, "reviewed_by", adminID)
	return out, nil
}
