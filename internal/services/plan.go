package services

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/yungbote/humanizer-backend/internal/data/repos"
	types "github.com/yungbote/humanizer-backend/internal/domain"
	"github.com/yungbote/humanizer-backend/internal/pkg/dbctx"
	"github.com/yungbote/humanizer-backend/internal/platform/logger"
)

type PlanService interface {
	ListActive(ctx context.Context) ([]*types.SubscriptionPlan, error)
	SeedDefaults(ctx context.Context) error
}

type planService struct {
	log    *logger.Logger
	repo   repos.PlanRepo
	limits UsageLimits
}

func NewPlanService(log *logger.Logger, repo repos.PlanRepo, limits UsageLimits) PlanService {
	return &planService{log: log.With("service", "PlanService"), repo: repo, limits: limits}
}

func (s *planService) ListActive(ctx context.Context) ([]*types.SubscriptionPlan, error) {
	return s.repo.ListActive(dbctx.New(ctx))
}

// SeedDefaults inserts the stock plans into an empty table.
func (s *planService) SeedDefaults(ctx context.Context) error {
	dbc := dbctx.New(ctx)
	n, err := s.repo.Count(dbc)
	if err != nil {
		return fmt.Errorf("count plans: %w", err)
	}
	if n > 0 {
		return nil
	}
	freeUses, freeChars := s.limits.MonthlyFreeUses, s.limits.MaxCharacters
	plans := []*types.SubscriptionPlan{
		{
			Name:           "Free",
			Price:          0,
			Currency:       "USDT",
			Interval:       "month",
			MonthlyUses:    &freeUses,
			CharacterLimit: &freeChars,
			Features:       features(fmt.Sprintf("%d rewrites per month", freeUses), fmt.Sprintf("%d characters per request", freeChars), "Casual and professional modes"),
			IsActive:       true,
		},
		{
			Name:     "Pro",
			Price:    9.99,
			Currency: "USDT",
			Interval: "month",
			Features: features("Unlimited rewrites", "Unlimited characters", "All modes", "Bulk rewriting"),
			IsActive: true,
		},
		{
			Name:     "Yearly",
			Price:    99.99,
			Currency: "USDT",
			Interval: "year",
			Features: features("Everything in Pro", "Two months free"),
			IsActive: true,
		},
	}
	if err := s.repo.Create(dbc, plans); err != nil {
		return fmt.Errorf("seed plans: %w", err)
	}
	s.log.Info("Seeded subscription plans", "count", len(plans))
	return nil
}

func features(items ...string) datatypes.JSON {
	raw, _ := json.Marshal(items)
	return datatypes.JSON(raw)
}
