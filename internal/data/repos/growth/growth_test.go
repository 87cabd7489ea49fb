package growth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/yungbote/humanizer-backend/internal/data/repos/testutil"
	types "github.com/yungbote/humanizer-backend/internal/domain"
	"github.com/yungbote/humanizer-backend/internal/pkg/dbctx"
	perr "github.com/yungbote/humanizer-backend/internal/pkg/errors"
)

func TestReferralRepoCompletesOnce(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	repo := NewReferralRepo(db, testutil.Logger(t))
	referrer := testutil.SeedProfile(t, ctx, tx, "referrer@example.com", types.UserTypeStandard)
	friend := testutil.SeedProfile(t, ctx, tx, "friend@example.com", types.UserTypeStandard)

	ref := &types.Referral{ReferrerID: referrer.ID, ReferredEmail: "friend@example.com", Status: types.ReferralPending}
	if err := repo.Create(dbc, ref); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByReferrerAndEmail(dbc, referrer.ID, "Friend@Example.com")
	if err != nil || got.ID != ref.ID {
		t.Fatalf("GetByReferrerAndEmail: %+v, %v", got, err)
	}
	if _, err := repo.GetByReferrerAndEmail(dbc, referrer.ID, "stranger@example.com"); !errors.Is(err, perr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	ok, err := repo.MarkCompleted(dbc, ref.ID, friend.ID, time.Now())
	if err != nil || !ok {
		t.Fatalf("MarkCompleted: ok=%v err=%v", ok, err)
	}
	ok, err = repo.MarkCompleted(dbc, ref.ID, friend.ID, time.Now())
	if err != nil || ok {
		t.Fatalf("second MarkCompleted should be a no-op: ok=%v err=%v", ok, err)
	}

	list, err := repo.ListByReferrer(dbc, referrer.ID)
	if err != nil || len(list) != 1 {
		t.Fatalf("ListByReferrer: %d rows, err=%v", len(list), err)
	}
	if list[0].Status != types.ReferralCompleted || !list[0].RewardGranted || list[0].ReferredUserID == nil {
		t.Fatalf("unexpected referral: %+v", list[0])
	}
}

func TestEmailCaptureUpsert(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}
	repo := NewEmailCaptureRepo(db, testutil.Logger(t))

	if err := repo.Upsert(dbc, &types.EmailCapture{Email: "news@example.com", Source: "landing", Subscribed: true}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := repo.Upsert(dbc, &types.EmailCapture{Email: "news@example.com", Source: "pricing", Subscribed: true}); err != nil {
		t.Fatalf("Upsert again: %v", err)
	}
	got, err := repo.GetByEmail(dbc, "news@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if got.Source != "pricing" || !got.Subscribed {
		t.Fatalf("unexpected capture: %+v", got)
	}
}
