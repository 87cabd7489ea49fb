package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/yungbote/humanizer-backend/internal/data/repos"
	types "github.com/yungbote/humanizer-backend/internal/domain"
	"github.com/yungbote/humanizer-backend/internal/pkg/dbctx"
	"github.com/yungbote/humanizer-backend/internal/platform/logger"
)

const dashboardDays = 30

type DailyActivity struct {
	Date       string `json:"date"`
	Users      int    `json:"users"`
	Uses       int    `json:"uses"`
	Characters int    `json:"characters"`
}

type Dashboard struct {
	TotalUsers        int64                    `json:"total_users"`
	ActiveUsersToday  int                      `json:"active_users_today"`
	UsageToday        int                      `json:"usage_today"`
	AvgSessionMinutes float64                  `json:"avg_session_minutes"`
	Daily             []DailyActivity          `json:"daily"`
	UserTypes         map[types.UserType]int64 `json:"user_types"`
	GeneratedAt       time.Time                `json:"generated_at"`
}

type AnalyticsService interface {
	Dashboard(ctx context.Context, now time.Time) (*Dashboard, error)
}

type analyticsService struct {
	log           *logger.Logger
	profileRepo   repos.ProfileRepo
	analyticsRepo repos.AnalyticsRepo
}

func NewAnalyticsService(log *logger.Logger, profileRepo repos.ProfileRepo, analyticsRepo repos.AnalyticsRepo) AnalyticsService {
	return &analyticsService{
		log:           log.With("service", "AnalyticsService"),
		profileRepo:   profileRepo,
		analyticsRepo: analyticsRepo,
	}
}

func (s *analyticsService) Dashboard(ctx context.Context, now time.Time) (*Dashboard, error) {
	dbc := dbctx.New(ctx)
	today := types.Day(now)
	from := today.AddDate(0, 0, -(dashboardDays - 1))

	total, err := s.profileRepo.Count(dbc)
	if err != nil {
		return nil, fmt.Errorf("count profiles: %w", err)
	}
	byType, err := s.profileRepo.CountByType(dbc)
	if err != nil {
		return nil, fmt.Errorf("count by type: %w", err)
	}
	rows, err := s.analyticsRepo.ListRange(dbc, from, today)
	if err != nil {
		return nil, fmt.Errorf("load analytics: %w", err)
	}

	// Every day in the window appears, including quiet ones.
	daily := make([]DailyActivity, dashboardDays)
	index := make(map[string]int, dashboardDays)
	for i := range daily {
		key := from.AddDate(0, 0, i).Format(time.DateOnly)
		daily[i].Date = key
		index[key] = i
	}

	out := &Dashboard{TotalUsers: total, UserTypes: byType, GeneratedAt: now.UTC()}
	var sessionSeconds, sessions int
	for _, r := range rows {
		key := types.Day(r.Date).Format(time.DateOnly)
		i, ok := index[key]
		if !ok {
			continue
		}
		daily[i].Users++
		daily[i].Uses += r.DailyUses
		daily[i].Characters += r.CharactersProcessed
		sessionSeconds += r.SessionDuration
		sessions++
		if key == today.Format(time.DateOnly) {
			out.ActiveUsersToday++
			out.UsageToday += r.DailyUses
		}
	}
	if sessions > 0 {
		out.AvgSessionMinutes = math.Round(float64(sessionSeconds)/float64(sessions)/60*10) / 10
	}
	out.Daily = daily
	return out, nil
}
