package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/humanizer-backend/internal/data/repos/testutil"
	types "github.com/yungbote/humanizer-backend/internal/domain"
	"github.com/yungbote/humanizer-backend/internal/pkg/dbctx"
	perr "github.com/yungbote/humanizer-backend/internal/pkg/errors"
)

func TestUserRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewUserRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	created, err := repo.Create(dbc, []*types.User{{Email: "userrepo@example.com", Password: "pw"}})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(created) != 1 || created[0].ID == uuid.Nil {
		t.Fatalf("Create: expected 1 user with an id, got %+v", created)
	}

	got, err := repo.GetByID(dbc, created[0].ID)
	if err != nil || got.Email != "userrepo@example.com" {
		t.Fatalf("GetByID: %+v, %v", got, err)
	}

	got, err = repo.GetByEmail(dbc, "userrepo@example.com")
	if err != nil || got.ID != created[0].ID {
		t.Fatalf("GetByEmail: %+v, %v", got, err)
	}

	if _, err := repo.GetByEmail(dbc, "missing@example.com"); !errors.Is(err, perr.ErrNotFound) {
		t.Fatalf("GetByEmail missing: expected ErrNotFound, got %v", err)
	}

	exists, err := repo.EmailExists(dbc, "userrepo@example.com")
	if err != nil || !exists {
		t.Fatalf("EmailExists: expected true, got %v, %v", exists, err)
	}
	exists, err = repo.EmailExists(dbc, "does-not-exist@example.com")
	if err != nil || exists {
		t.Fatalf("EmailExists: expected false, got %v, %v", exists, err)
	}
}

func TestProfileRepoUsageCounters(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	repo := NewProfileRepo(db, testutil.Logger(t))
	p := testutil.SeedProfile(t, ctx, tx, "profile@example.com", types.UserTypeStandard)

	for i := 0; i < 3; i++ {
		if err := repo.IncrementUsage(dbc, p.ID); err != nil {
			t.Fatalf("IncrementUsage: %v", err)
		}
	}
	if err := repo.AddBonusUses(dbc, p.ID, 2); err != nil {
		t.Fatalf("AddBonusUses: %v", err)
	}
	for i, want := range []bool{true, true, false} {
		ok, err := repo.ConsumeBonusUse(dbc, p.ID)
		if err != nil {
			t.Fatalf("ConsumeBonusUse: %v", err)
		}
		if ok != want {
			t.Fatalf("ConsumeBonusUse #%d: expected %v, got %v", i, want, ok)
		}
	}

	got, err := repo.GetByID(dbc, p.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.MonthlyUsageCount != 3 || got.BonusUses != 0 {
		t.Fatalf("unexpected counters: count=%d bonus=%d", got.MonthlyUsageCount, got.BonusUses)
	}

	byCode, err := repo.GetByReferralCode(dbc, p.ReferralCode)
	if err != nil || byCode.ID != p.ID {
		t.Fatalf("GetByReferralCode: %+v, %v", byCode, err)
	}

	if err := repo.SetUserType(dbc, p.ID, types.UserTypePremium); err != nil {
		t.Fatalf("SetUserType: %v", err)
	}
	counts, err := repo.CountByType(dbc)
	if err != nil {
		t.Fatalf("CountByType: %v", err)
	}
	if counts[types.UserTypePremium] < 1 {
		t.Fatalf("CountByType: expected a premium profile, got %v", counts)
	}

	if err := repo.UpdateFields(dbc, uuid.New(), map[string]any{"full_name": "x"}); !errors.Is(err, perr.ErrNotFound) {
		t.Fatalf("UpdateFields unknown id: expected ErrNotFound, got %v", err)
	}
}

func TestProfileRepoResetExpired(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewProfileRepo(db, testutil.Logger(t))

	now := time.Date(2026, 5, 1, 0, 5, 0, 0, time.UTC)
	due := testutil.SeedProfile(t, ctx, tx, "due@example.com", types.UserTypeStandard)
	notDue := testutil.SeedProfile(t, ctx, tx, "notdue@example.com", types.UserTypeStandard)

	if err := repo.UpdateFields(dbc, due.ID, map[string]any{
		"monthly_usage_count": 5,
		"usage_reset_date":    time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
	}); err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}
	if err := repo.UpdateFields(dbc, notDue.ID, map[string]any{
		"monthly_usage_count": 4,
		"usage_reset_date":    time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
	}); err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}

	next := types.NextResetDate(now)
	n, err := repo.ResetExpired(dbc, now, next)
	if err != nil {
		t.Fatalf("ResetExpired: %v", err)
	}
	if n != 1 {
		t.Fatalf("ResetExpired: expected 1 row, got %d", n)
	}

	got, _ := repo.GetByID(dbc, due.ID)
	if got.MonthlyUsageCount != 0 || !got.UsageResetDate.Equal(next) {
		t.Fatalf("due profile not reset: %+v", got)
	}
	got, _ = repo.GetByID(dbc, notDue.ID)
	if got.MonthlyUsageCount != 4 {
		t.Fatalf("profile reset too early: %+v", got)
	}
}

func TestProfileRepoIncrementUsageBelowStopsAtLimit(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewProfileRepo(db, testutil.Logger(t))
	p := testutil.SeedProfile(t, ctx, tx, "below@example.com", types.UserTypeStandard)

	if err := repo.UpdateFields(dbc, p.ID, map[string]any{"monthly_usage_count": 4}); err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}
	for i, want := range []bool{true, false, false} {
		ok, err := repo.IncrementUsageBelow(dbc, p.ID, 5)
		if err != nil {
			t.Fatalf("IncrementUsageBelow: %v", err)
		}
		if ok != want {
			t.Fatalf("IncrementUsageBelow #%d: expected %v, got %v", i, want, ok)
		}
	}

	got, err := repo.GetByID(dbc, p.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.MonthlyUsageCount != 5 {
		t.Fatalf("expected the counter to stop at 5, got %d", got.MonthlyUsageCount)
	}
}
