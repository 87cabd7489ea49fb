package moderation

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

func TestAbuseReportRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	repo := NewAbuseReportRepo(db, testutil.Logger(t))
	reporter := testutil.SeedProfile(t, ctx, tx, "reporter@example.com", types.UserTypeStandard)
	admin := testutil.SeedProfile(t, ctx, tx, "mod@example.com", types.UserTypeAdmin)

	report := &types.AbuseReport{
		UserID:       reporter.ID,
		InputText:    "in",
		OutputText:   "out",
		ReportReason: "nonsense output",
		Status:       types.ReportPending,
	}
	if err := repo.Create(dbc, report); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := repo.UpdateStatus(dbc, report.ID, types.ReportResolved, "fixed", admin.ID, time.Now()); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if err := repo.UpdateStatus(dbc, uuid.New(), types.ReportResolved, "", admin.ID, time.Now()); !errors.Is(err, perr.ErrNotFound) {
		t.Fatalf("UpdateStatus unknown id: expected ErrNotFound, got %v", err)
	}

	resolved, err := repo.ListByStatus(dbc, types.ReportResolved, 10)
	if err != nil || len(resolved) != 1 || resolved[0].AdminNotes != "fixed" {
		t.Fatalf("ListByStatus: %+v, %v", resolved, err)
	}
	pending, err := repo.ListByStatus(dbc, types.ReportPending, 10)
	if err != nil || len(pending) != 0 {
		t.Fatalf("ListByStatus pending: %+v, %v", pending, err)
	}
}
