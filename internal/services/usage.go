package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/humanizer-backend/internal/data/repos"
	types "github.com/yungbote/humanizer-backend/internal/domain"
	"github.com/yungbote/humanizer-backend/internal/observability"
	"github.com/yungbote/humanizer-backend/internal/pkg/dbctx"
	perr "github.com/yungbote/humanizer-backend/internal/pkg/errors"
	"github.com/yungbote/humanizer-backend/internal/platform/logger"
)

type UsageLimits struct {
	MonthlyFreeUses int
	MaxCharacters   int
}

type UsageSummary struct {
	UserType      types.UserType `json:"user_type"`
	Unlimited     bool           `json:"unlimited"`
	MonthlyUsed   int            `json:"monthly_used"`
	MonthlyLimit  int            `json:"monthly_limit"`
	BonusUses     int            `json:"bonus_uses"`
	Remaining     int            `json:"remaining"`
	MaxCharacters int            `json:"max_characters"`
	ResetDate     time.Time      `json:"reset_date"`
}

// UsageRecord describes one completed rewrite.
type UsageRecord struct {
	Characters     int
	OutputLength   int
	Mode           string
	ProcessingTime time.Duration
	EditCount      int
	Passes         []string
	At             time.Time
}

type UsageService interface {
	CanHumanize(profile *types.Profile) error
	CheckCharacterLimit(profile *types.Profile, characters int) error
	Summary(profile *types.Profile) UsageSummary
	RecordUsage(ctx context.Context, userID uuid.UUID, rec UsageRecord) (*types.Profile, error)
	ResetExpired(ctx context.Context, now time.Time) (int64, error)
	RecentLogs(ctx context.Context, userID uuid.UUID, limit int) ([]*types.DetailedUsageLog, error)
}

type usageService struct {
	db            *gorm.DB
	log           *logger.Logger
	profileRepo   repos.ProfileRepo
	usageRepo     repos.UsageRepo
	analyticsRepo repos.AnalyticsRepo
	metrics       *observability.Metrics
	limits        UsageLimits
}

func NewUsageService(
	db *gorm.DB,
	log *logger.Logger,
	profileRepo repos.ProfileRepo,
	usageRepo repos.UsageRepo,
	analyticsRepo repos.AnalyticsRepo,
	metrics *observability.Metrics,
	limits UsageLimits,
) UsageService {
	if limits.MonthlyFreeUses < 0 {
		limits.MonthlyFreeUses = 0
	}
	return &usageService{
		db:            db,
		log:           log.With("service", "UsageService"),
		profileRepo:   profileRepo,
		usageRepo:     usageRepo,
		analyticsRepo: analyticsRepo,
		metrics:       metrics,
		limits:        limits,
	}
}

func (s *usageService) CanHumanize(profile *types.Profile) error {
	if profile == nil {
		return perr.ErrUnauthorized
	}
	if profile.Unlimited() {
		return nil
	}
	if profile.MonthlyUsageCount < s.limits.MonthlyFreeUses || profile.BonusUses > 0 {
		return nil
	}
	return fmt.Errorf("%w: %d free rewrites used this month", perr.ErrLimitReached, s.limits.MonthlyFreeUses)
}

func (s *usageService) CheckCharacterLimit(profile *types.Profile, characters int) error {
	if profile.Unlimited() || s.limits.MaxCharacters <= 0 {
		return nil
	}
	if characters > s.limits.MaxCharacters {
		return fmt.Errorf("%w: text is %d characters, the limit is %d", perr.ErrInvalidArgument, characters, s.limits.MaxCharacters)
	}
	return nil
}

func (s *usageService) Summary(profile *types.Profile) UsageSummary {
	sum := UsageSummary{
		UserType:      profile.UserType,
		Unlimited:     profile.Unlimited(),
		MonthlyUsed:   profile.MonthlyUsageCount,
		BonusUses:     profile.BonusUses,
		ResetDate:     profile.UsageResetDate,
		MonthlyLimit:  -1,
		Remaining:     -1,
		MaxCharacters: -1,
	}
	if sum.Unlimited {
		return sum
	}
	sum.MonthlyLimit = s.limits.MonthlyFreeUses
	sum.MaxCharacters = s.limits.MaxCharacters
	sum.Remaining = max(0, s.limits.MonthlyFreeUses-profile.MonthlyUsageCount) + profile.BonusUses
	return sum
}

// RecordUsage writes the usage rows and charges the allowance in one
// transaction. Once the monthly free uses are spent, a bonus use is consumed
// instead of growing the counter.
func (s *usageService) RecordUsage(ctx context.Context, userID uuid.UUID, rec UsageRecord) (*types.Profile, error) {
	if rec.At.IsZero() {
		rec.At = time.Now()
	}
	at := rec.At.UTC()
	var passes datatypes.JSON
	if len(rec.Passes) > 0 {
		raw, err := json.Marshal(rec.Passes)
		if err != nil {
			return nil, fmt.Errorf("encode passes: %w", err)
		}
		passes = datatypes.JSON(raw)
	}

	var updated *types.Profile
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		profile, err := s.profileRepo.GetByID(dbc, userID)
		if err != nil {
			return fmt.Errorf("load profile: %w", err)
		}

		if profile.Unlimited() {
			if err := s.profileRepo.IncrementUsage(dbc, userID); err != nil {
				return fmt.Errorf("increment usage: %w", err)
			}
		} else {
			// The profile read above may already be stale; the row decides.
			counted, err := s.profileRepo.IncrementUsageBelow(dbc, userID, s.limits.MonthlyFreeUses)
			if err != nil {
				return fmt.Errorf("increment usage: %w", err)
			}
			if !counted {
				ok, err := s.profileRepo.ConsumeBonusUse(dbc, userID)
				if err != nil {
					return fmt.Errorf("consume bonus use: %w", err)
				}
				if !ok {
					return fmt.Errorf("%w: no rewrites left", perr.ErrLimitReached)
				}
			}
		}

		if err := s.usageRepo.CreateLog(dbc, &types.UsageLog{
			UserID:         userID,
			CharactersUsed: rec.Characters,
			CreatedAt:      at,
		}); err != nil {
			return fmt.Errorf("usage log: %w", err)
		}
		if err := s.usageRepo.CreateDetailed(dbc, &types.DetailedUsageLog{
			UserID:           userID,
			CharactersUsed:   rec.Characters,
			InputTextLength:  rec.Characters,
			OutputTextLength: rec.OutputLength,
			ModeUsed:         rec.Mode,
			ProcessingTimeMS: rec.ProcessingTime.Milliseconds(),
			EditCount:        rec.EditCount,
			Passes:           passes,
			CreatedAt:        at,
		}); err != nil {
			return fmt.Errorf("detailed usage log: %w", err)
		}
		sessionSeconds := int(rec.ProcessingTime.Round(time.Second) / time.Second)
		if err := s.analyticsRepo.RecordActivity(dbc, userID, at, rec.Characters, sessionSeconds); err != nil {
			return fmt.Errorf("analytics: %w", err)
		}

		updated, err = s.profileRepo.GetByID(dbc, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *usageService) ResetExpired(ctx context.Context, now time.Time) (int64, error) {
	n, err := s.profileRepo.ResetExpired(dbctx.New(ctx), now, types.NextResetDate(now))
	if err != nil {
		return 0, fmt.Errorf("reset usage: %w", err)
	}
	s.metrics.AddUsageResets(n)
	if n > 0 {
		s.log.Info("Monthly usage reset", "profiles", n)
	}
	return n, nil
}

func (s *usageService) RecentLogs(ctx context.Context, userID uuid.UUID, limit int) ([]*types.DetailedUsageLog, error) {
	return s.usageRepo.ListDetailedByUser(dbctx.New(ctx), userID, limit)
}

// CharacterCount is the unit every limit is expressed in.
func CharacterCount(text string) int {
	return utf8.RuneCountInString(text)
}
