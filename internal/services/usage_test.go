package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/humanizer-backend/internal/data/repos"
	"github.com/yungbote/humanizer-backend/internal/data/repos/testutil"
	types "github.com/yungbote/humanizer-backend/internal/domain"
	"github.com/yungbote/humanizer-backend/internal/pkg/dbctx"
	perr "github.com/yungbote/humanizer-backend/internal/pkg/errors"
)

func TestUsageLimits(t *testing.T) {
	svc := NewUsageService(nil, testutil.Logger(t), nil, nil, nil, nil, UsageLimits{MonthlyFreeUses: 5, MaxCharacters: 100})

	standard := &types.Profile{UserType: types.UserTypeStandard, MonthlyUsageCount: 4}
	assert.NoError(t, svc.CanHumanize(standard))
	standard.MonthlyUsageCount = 5
	assert.ErrorIs(t, svc.CanHumanize(standard), perr.ErrLimitReached)
	standard.BonusUses = 1
	assert.NoError(t, svc.CanHumanize(standard))

	premium := &types.Profile{UserType: types.UserTypePremium, MonthlyUsageCount: 500}
	assert.NoError(t, svc.CanHumanize(premium))
	assert.NoError(t, svc.CheckCharacterLimit(premium, 1_000_000))

	assert.NoError(t, svc.CheckCharacterLimit(standard, 100))
	assert.ErrorIs(t, svc.CheckCharacterLimit(standard, 101), perr.ErrInvalidArgument)
	assert.ErrorIs(t, svc.CanHumanize(nil), perr.ErrUnauthorized)
}

func TestUsageSummary(t *testing.T) {
	svc := NewUsageService(nil, testutil.Logger(t), nil, nil, nil, nil, UsageLimits{MonthlyFreeUses: 5, MaxCharacters: 10000})

	sum := svc.Summary(&types.Profile{UserType: types.UserTypeStandard, MonthlyUsageCount: 2, BonusUses: 3})
	assert.False(t, sum.Unlimited)
	assert.Equal(t, 5, sum.MonthlyLimit)
	assert.Equal(t, 6, sum.Remaining)
	assert.Equal(t, 10000, sum.MaxCharacters)

	sum = svc.Summary(&types.Profile{UserType: types.UserTypeStandard, MonthlyUsageCount: 9})
	assert.Equal(t, 0, sum.Remaining)

	sum = svc.Summary(&types.Profile{UserType: types.UserTypeAdmin})
	assert.True(t, sum.Unlimited)
	assert.Equal(t, -1, sum.Remaining)
}

func TestRecordUsageChargesCounterThenBonus(t *testing.T) {
	f := newFixture(t)
	f.limits.MonthlyFreeUses = 1
	svc := f.usageService()
	ctx := context.Background()
	p := f.profile(t, "rec@example.com", types.UserTypeStandard)
	require.NoError(t, f.profiles.AddBonusUses(dbctx.New(ctx), p.ID, 1))

	rec := UsageRecord{Characters: 42, OutputLength: 50, Mode: "casual", ProcessingTime: 3 * time.Millisecond, EditCount: 2, Passes: []string{"opener"}}
	updated, err := svc.RecordUsage(ctx, p.ID, rec)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.MonthlyUsageCount)
	assert.Equal(t, 1, updated.BonusUses)

	updated, err = svc.RecordUsage(ctx, p.ID, rec)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.MonthlyUsageCount)
	assert.Equal(t, 0, updated.BonusUses)

	_, err = svc.RecordUsage(ctx, p.ID, rec)
	assert.ErrorIs(t, err, perr.ErrLimitReached)

	logs, err := svc.RecentLogs(ctx, p.ID, 10)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "casual", logs[0].ModeUsed)
	assert.Equal(t, 42, logs[0].InputTextLength)
	assert.JSONEq(t, `["opener"]`, string(logs[0].Passes))

	rows, err := f.analytics.ListRange(dbctx.New(ctx), time.Now(), time.Now())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 2, rows[0].DailyUses)
	assert.Equal(t, 84, rows[0].CharactersProcessed)
}

// staleProfiles returns the profile as it was before a concurrent rewrite
// took the last free use.
type staleProfiles struct {
	repos.ProfileRepo
	count int
}

func (s *staleProfiles) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Profile, error) {
	p, err := s.ProfileRepo.GetByID(dbc, id)
	if err != nil {
		return nil, err
	}
	p.MonthlyUsageCount = s.count
	return p, nil
}

func TestRecordUsageDecidesFromTheRowNotTheRead(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.profile(t, "race@example.com", types.UserTypeStandard)
	dbc := dbctx.New(ctx)
	require.NoError(t, f.profiles.UpdateFields(dbc, p.ID, map[string]any{"monthly_usage_count": 5}))

	svc := NewUsageService(f.db, f.log, &staleProfiles{ProfileRepo: f.profiles, count: 4}, f.usageLogs, f.analytics, nil, f.limits)
	rec := UsageRecord{Characters: 10, Mode: "casual"}

	_, err := svc.RecordUsage(ctx, p.ID, rec)
	require.ErrorIs(t, err, perr.ErrLimitReached)
	assert.Equal(t, 5, f.reload(t, p.ID).MonthlyUsageCount)

	require.NoError(t, f.profiles.AddBonusUses(dbc, p.ID, 1))
	_, err = svc.RecordUsage(ctx, p.ID, rec)
	require.NoError(t, err)
	got := f.reload(t, p.ID)
	assert.Equal(t, 5, got.MonthlyUsageCount)
	assert.Equal(t, 0, got.BonusUses)
}

func TestResetExpired(t *testing.T) {
	f := newFixture(t)
	svc := f.usageService()
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 0, 5, 0, 0, time.UTC)

	due := f.profile(t, "due@example.com", types.UserTypeStandard)
	later := f.profile(t, "later@example.com", types.UserTypeStandard)
	dbc := dbctx.New(ctx)
	require.NoError(t, f.profiles.UpdateFields(dbc, due.ID, map[string]any{"monthly_usage_count": 5, "usage_reset_date": now.Add(-time.Minute)}))
	require.NoError(t, f.profiles.UpdateFields(dbc, later.ID, map[string]any{"monthly_usage_count": 4, "usage_reset_date": now.Add(time.Hour)}))

	n, err := svc.ResetExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got := f.reload(t, due.ID)
	assert.Equal(t, 0, got.MonthlyUsageCount)
	assert.Equal(t, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), got.UsageResetDate.UTC())
	assert.Equal(t, 4, f.reload(t, later.ID).MonthlyUsageCount)

	n, err = svc.ResetExpired(ctx, now)
	require.NoError(t, err)
	assert.Zero(t, n)
}
