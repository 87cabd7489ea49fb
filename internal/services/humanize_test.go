package services

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	types "github.com/yungbote/humanizer-backend/internal/domain"
	"github.com/yungbote/humanizer-backend/internal/humanizer"
	perr "github.com/yungbote/humanizer-backend/internal/pkg/errors"
)

const sample = "It is important to note that the committee will not approve the budget. " +
	"Furthermore, we are going to revisit the plan next quarter because the forecast changed."

func TestHumanizeRecordsUsage(t *testing.T) {
	f := newFixture(t)
	svc := f.humanizeService(nil)
	ctx := context.Background()
	p := f.profile(t, "writer@example.com", types.UserTypeStandard)

	res, err := svc.Humanize(ctx, p.ID, sample, "")
	require.NoError(t, err)
	assert.NotEmpty(t, res.HumanizedText)
	assert.Equal(t, humanizer.ModeCasual, res.Mode)
	assert.Equal(t, res.HumanizedText, humanizer.Apply(sample, res.Edits))
	assert.GreaterOrEqual(t, res.Scores.OriginalAIScore, 75.0)
	require.NotNil(t, res.Usage)
	assert.Equal(t, 1, res.Usage.MonthlyUsed)
	assert.Equal(t, 4, res.Usage.Remaining)
	assert.Equal(t, 1, f.reload(t, p.ID).MonthlyUsageCount)
}

func TestHumanizeRejections(t *testing.T) {
	f := newFixture(t)
	svc := f.humanizeService(nil)
	ctx := context.Background()
	p := f.profile(t, "std@example.com", types.UserTypeStandard)

	_, err := svc.Humanize(ctx, uuid.Nil, sample, "")
	assert.ErrorIs(t, err, perr.ErrUnauthorized)

	_, err = svc.Humanize(ctx, p.ID, "   ", "")
	assert.ErrorIs(t, err, perr.ErrInvalidArgument)

	_, err = svc.Humanize(ctx, p.ID, "?!...", "")
	assert.ErrorIs(t, err, perr.ErrInvalidArgument)

	_, err = svc.Humanize(ctx, p.ID, sample, "shouty")
	assert.ErrorIs(t, err, perr.ErrInvalidArgument)

	_, err = svc.Humanize(ctx, p.ID, sample, "academic")
	assert.ErrorIs(t, err, perr.ErrForbidden)

	_, err = svc.Humanize(ctx, p.ID, strings.Repeat("a", 10001), "")
	assert.ErrorIs(t, err, perr.ErrInvalidArgument)

	assert.Zero(t, f.reload(t, p.ID).MonthlyUsageCount)
}

func TestHumanizeStopsAtMonthlyLimit(t *testing.T) {
	f := newFixture(t)
	svc := f.humanizeService(nil)
	ctx := context.Background()
	p := f.profile(t, "limit@example.com", types.UserTypeStandard)

	for i := 0; i < 5; i++ {
		_, err := svc.Humanize(ctx, p.ID, sample, "professional")
		require.NoError(t, err, "call %d", i+1)
	}
	_, err := svc.Humanize(ctx, p.ID, sample, "professional")
	assert.ErrorIs(t, err, perr.ErrLimitReached)
}

func TestHumanizePremiumModes(t *testing.T) {
	f := newFixture(t)
	svc := f.humanizeService(nil)
	p := f.profile(t, "prem@example.com", types.UserTypePremium)

	res, err := svc.Humanize(context.Background(), p.ID, strings.Repeat("The plan is fine. ", 800), "creative")
	require.NoError(t, err)
	assert.Equal(t, humanizer.ModeCreative, res.Mode)
	assert.True(t, res.Usage.Unlimited)
}

type denyAll struct{}

func (denyAll) Allow(context.Context, string) (bool, error) { return false, nil }

func TestHumanizeRateLimited(t *testing.T) {
	f := newFixture(t)
	svc := f.humanizeService(denyAll{})
	p := f.profile(t, "fast@example.com", types.UserTypePremium)

	_, err := svc.Humanize(context.Background(), p.ID, sample, "")
	assert.ErrorIs(t, err, perr.ErrRateLimited)
}

func TestBulkHumanize(t *testing.T) {
	f := newFixture(t)
	svc := f.humanizeService(nil)
	ctx := context.Background()
	std := f.profile(t, "bulk-std@example.com", types.UserTypeStandard)
	prem := f.profile(t, "bulk-prem@example.com", types.UserTypePremium)

	texts := []string{sample, "We will not stop now.", "They are done with it."}

	_, err := svc.BulkHumanize(ctx, std.ID, texts, "")
	assert.ErrorIs(t, err, perr.ErrForbidden)

	_, err = svc.BulkHumanize(ctx, prem.ID, append(texts, "one too many"), "")
	assert.ErrorIs(t, err, perr.ErrInvalidArgument)

	_, err = svc.BulkHumanize(ctx, prem.ID, []string{sample, " "}, "")
	assert.ErrorIs(t, err, perr.ErrInvalidArgument)

	out, err := svc.BulkHumanize(ctx, prem.ID, texts, "friendly")
	require.NoError(t, err)
	require.Len(t, out.Results, len(texts))
	for i, r := range out.Results {
		assert.NotEmpty(t, r.HumanizedText)
		assert.Equal(t, r.HumanizedText, humanizer.Apply(texts[i], r.Edits))
	}
	assert.Equal(t, len(texts), out.Usage.MonthlyUsed)
	logs, err := f.usageService().RecentLogs(ctx, prem.ID, 10)
	require.NoError(t, err)
	assert.Len(t, logs, len(texts))
}

func TestReanalyze(t *testing.T) {
	svc := newFixture(t).humanizeService(nil)

	scores, err := svc.Reanalyze(90)
	require.NoError(t, err)
	assert.Equal(t, 90.0, scores.OriginalAIScore)
	assert.GreaterOrEqual(t, scores.HumanizedAIScore, 18.0)
	assert.LessOrEqual(t, scores.HumanizedAIScore, 54.0)

	_, err = svc.Reanalyze(0)
	assert.ErrorIs(t, err, perr.ErrInvalidArgument)
	_, err = svc.Reanalyze(101)
	assert.ErrorIs(t, err, perr.ErrInvalidArgument)
}
