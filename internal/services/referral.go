package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/humanizer-backend/internal/data/repos"
	types "github.com/yungbote/humanizer-backend/internal/domain"
	"github.com/yungbote/humanizer-backend/internal/pkg/dbctx"
	perr "github.com/yungbote/humanizer-backend/internal/pkg/errors"
	"github.com/yungbote/humanizer-backend/internal/platform/logger"
	"github.com/yungbote/humanizer-backend/internal/utils"
)

type ReferralOverview struct {
	ReferralCode string            `json:"referral_code"`
	Completed    int               `json:"completed"`
	BonusEarned  int               `json:"bonus_earned"`
	Referrals    []*types.Referral `json:"referrals"`
}

type ReferralService interface {
	Invite(ctx context.Context, referrerID uuid.UUID, email string) (*types.Referral, error)
	List(ctx context.Context, referrerID uuid.UUID) (*ReferralOverview, error)
	// CompleteForSignup runs inside the signup transaction carried by dbc.
	CompleteForSignup(dbc dbctx.Context, code string, newUser *types.Profile) error
}

type referralService struct {
	log          *logger.Logger
	profileRepo  repos.ProfileRepo
	referralRepo repos.ReferralRepo
	bonusUses    int
	now          func() time.Time
}

func NewReferralService(log *logger.Logger, profileRepo repos.ProfileRepo, referralRepo repos.ReferralRepo, bonusUses int) ReferralService {
	return &referralService{
		log:          log.With("service", "ReferralService"),
		profileRepo:  profileRepo,
		referralRepo: referralRepo,
		bonusUses:    bonusUses,
		now:          time.Now,
	}
}

func (s *referralService) Invite(ctx context.Context, referrerID uuid.UUID, email string) (*types.Referral, error) {
	email = utils.NormalizeEmail(email)
	if err := utils.ValidateEmail(email); err != nil {
		return nil, err
	}
	dbc := dbctx.New(ctx)
	referrer, err := s.profileRepo.GetByID(dbc, referrerID)
	if err != nil {
		return nil, err
	}
	if utils.NormalizeEmail(referrer.Email) == email {
		return nil, fmt.Errorf("%w: you cannot refer yourself", perr.ErrInvalidArgument)
	}
	if _, err := s.referralRepo.GetByReferrerAndEmail(dbc, referrerID, email); err == nil {
		return nil, fmt.Errorf("%w: %s was already invited", perr.ErrConflict, email)
	} else if !errors.Is(err, perr.ErrNotFound) {
		return nil, err
	}
	ref := &types.Referral{
		ReferrerID:    referrerID,
		ReferredEmail: email,
		Status:        types.ReferralPending,
	}
	if err := s.referralRepo.Create(dbc, ref); err != nil {
		return nil, fmt.Errorf("create referral: %w", err)
	}
	return ref, nil
}

func (s *referralService) List(ctx context.Context, referrerID uuid.UUID) (*ReferralOverview, error) {
	dbc := dbctx.New(ctx)
	profile, err := s.profileRepo.GetByID(dbc, referrerID)
	if err != nil {
		return nil, err
	}
	refs, err := s.referralRepo.ListByReferrer(dbc, referrerID)
	if err != nil {
		return nil, err
	}
	out := &ReferralOverview{ReferralCode: profile.ReferralCode, Referrals: refs}
	for _, r := range refs {
		if r.Status == types.ReferralCompleted {
			out.Completed++
			if r.RewardGranted {
				out.BonusEarned += s.bonusUses
			}
		}
	}
	return out, nil
}

func (s *referralService) CompleteForSignup(dbc dbctx.Context, code string, newUser *types.Profile) error {
	referrer, err := s.profileRepo.GetByReferralCode(dbc, code)
	if err != nil {
		return err
	}
	if referrer.ID == newUser.ID {
		return fmt.Errorf("%w: self referral", perr.ErrInvalidArgument)
	}
	ref, err := s.referralRepo.GetByReferrerAndEmail(dbc, referrer.ID, newUser.Email)
	if errors.Is(err, perr.ErrNotFound) {
		// Signups through a shared link were never invited by email.
		ref = &types.Referral{
			ReferrerID:    referrer.ID,
			ReferredEmail: newUser.Email,
			Status:        types.ReferralPending,
		}
		if err := s.referralRepo.Create(dbc, ref); err != nil {
			return fmt.Errorf("create referral: %w", err)
		}
	} else if err != nil {
		return err
	}

	granted, err := s.referralRepo.MarkCompleted(dbc, ref.ID, newUser.ID, s.now())
	if err != nil {
		return fmt.Errorf("complete referral: %w", err)
	}
	if !granted {
		return nil
	}
	if err := s.profileRepo.AddBonusUses(dbc, referrer.ID, s.bonusUses); err != nil {
		return fmt.Errorf("grant referral bonus: %w", err)
	}
	s.log.Info("Referral completed", "referrer_id", referrer.ID, "bonus_uses", s.bonusUses)
	return nil
}
