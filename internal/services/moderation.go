package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/humanizer-backend/internal/data/repos"
	types "github.com/yungbote/humanizer-backend/internal/domain"
	"github.com/yungbote/humanizer-backend/internal/pkg/dbctx"
	perr "github.com/yungbote/humanizer-backend/internal/pkg/errors"
	"github.com/yungbote/humanizer-backend/internal/platform/logger"
)

type AbuseReportInput struct {
	InputText  string
	OutputText string
	Reason     string
	Details    string
}

type ModerationService interface {
	Report(ctx context.Context, userID uuid.UUID, in AbuseReportInput) (*types.AbuseReport, error)
	List(ctx context.Context, status types.ReportStatus, limit int) ([]*types.AbuseReport, error)
	UpdateStatus(ctx context.Context, adminID, reportID uuid.UUID, status types.ReportStatus, notes string) error
}

type moderationService struct {
	log        *logger.Logger
	reportRepo repos.AbuseReportRepo
	now        func() time.Time
}

func NewModerationService(log *logger.Logger, reportRepo repos.AbuseReportRepo) ModerationService {
	return &moderationService{
		log:        log.With("service", "ModerationService"),
		reportRepo: reportRepo,
		now:        time.Now,
	}
}

func (s *moderationService) Report(ctx context.Context, userID uuid.UUID, in AbuseReportInput) (*types.AbuseReport, error) {
	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: a reason is required", perr.ErrInvalidArgument)
	}
	if strings.TrimSpace(in.InputText) == "" && strings.TrimSpace(in.OutputText) == "" {
		return nil, fmt.Errorf("%w: the reported text is empty", perr.ErrInvalidArgument)
	}
	report := &types.AbuseReport{
		UserID:        userID,
		InputText:     in.InputText,
		OutputText:    in.OutputText,
		ReportReason:  reason,
		ReportDetails: strings.TrimSpace(in.Details),
		Status:        types.ReportPending,
	}
	if err := s.reportRepo.Create(dbctx.New(ctx), report); err != nil {
		return nil, fmt.Errorf("create abuse report: %w", err)
	}
	s.log.Info("Abuse report filed", "user_id", userID, "report_id", report.ID)
	return report, nil
}

func (s *moderationService) List(ctx context.Context, status types.ReportStatus, limit int) ([]*types.AbuseReport, error) {
	if status != "" && !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", perr.ErrInvalidArgument, status)
	}
	return s.reportRepo.ListByStatus(dbctx.New(ctx), status, limit)
}

func (s *moderationService) UpdateStatus(ctx context.Context, adminID, reportID uuid.UUID, status types.ReportStatus, notes string) error {
	if !status.Valid() {
		return fmt.Errorf("%w: unknown status %q", perr.ErrInvalidArgument, status)
	}
	return s.reportRepo.UpdateStatus(dbctx.New(ctx), reportID, status, strings.TrimSpace(notes), adminID, s.now())
}
