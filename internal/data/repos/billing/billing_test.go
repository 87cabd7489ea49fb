package billing

import (
	"context"
	"testing"
	"time"

	"github.com/yungbote/humanizer-backend/internal/data/repos/testutil"
	types "github.com/yungbote/humanizer-backend/internal/domain"
	"github.com/yungbote/humanizer-backend/internal/pkg/dbctx"
)

func TestPaymentProofReviewOnlyOnce(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	repo := NewPaymentProofRepo(db, testutil.Logger(t))
	owner := testutil.SeedProfile(t, ctx, tx, "payer@example.com", types.UserTypeStandard)
	admin := testutil.SeedProfile(t, ctx, tx, "admin@example.com", types.UserTypeAdmin)

	proof := &types.PaymentProof{
		UserID:          owner.ID,
		TransactionHash: "0xabc",
		Amount:          9.99,
		Currency:        "USDT",
		Status:          types.ProofPending,
		SubmittedAt:     time.Now().UTC(),
	}
	if err := repo.Create(dbc, proof); err != nil {
		t.Fatalf("Create: %v", err)
	}

	pending, err := repo.ListByStatus(dbc, types.ProofPending, 10)
	if err != nil || len(pending) != 1 {
		t.Fatalf("ListByStatus: %d rows, err=%v", len(pending), err)
	}

	ok, err := repo.Review(dbc, proof.ID, types.ProofApproved, "looks good", admin.ID, time.Now())
	if err != nil || !ok {
		t.Fatalf("Review: ok=%v err=%v", ok, err)
	}
	ok, err = repo.Review(dbc, proof.ID, types.ProofRejected, "second look", admin.ID, time.Now())
	if err != nil || ok {
		t.Fatalf("second Review should be a no-op: ok=%v err=%v", ok, err)
	}

	got, err := repo.GetByID(dbc, proof.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != types.ProofApproved || got.ReviewedBy == nil || *got.ReviewedBy != admin.ID || got.ReviewedAt == nil {
		t.Fatalf("unexpected reviewed proof: %+v", got)
	}

	mine, err := repo.ListByUser(dbc, owner.ID)
	if err != nil || len(mine) != 1 {
		t.Fatalf("ListByUser: %d rows, err=%v", len(mine), err)
	}
}

func TestPlanRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}
	repo := NewPlanRepo(db, testutil.Logger(t))

	if err := repo.Create(dbc, []*types.SubscriptionPlan{
		{Name: "Yearly", Price: 99, Currency: "USDT", Interval: "year", IsActive: true},
		{Name: "Pro", Price: 9.99, Currency: "USDT", Interval: "month", IsActive: true},
		{Name: "Legacy", Price: 4.99, Currency: "USDT", Interval: "month", IsActive: false},
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	plans, err := repo.ListActive(dbc)
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	if len(plans) != 2 || plans[0].Name != "Pro" || plans[1].Name != "Yearly" {
		t.Fatalf("ListActive: unexpected plans %+v", plans)
	}
}
