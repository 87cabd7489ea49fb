package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/yungbote/humanizer-backend/internal/data/repos"
	types "github.com/yungbote/humanizer-backend/internal/domain"
	"github.com/yungbote/humanizer-backend/internal/pkg/dbctx"
	"github.com/yungbote/humanizer-backend/internal/platform/logger"
	"github.com/yungbote/humanizer-backend/internal/utils"
)

type NewsletterService interface {
	Subscribe(ctx context.Context, email, source string) error
}

type newsletterService struct {
	log  *logger.Logger
	repo repos.EmailCaptureRepo
}

func NewNewsletterService(log *logger.Logger, repo repos.EmailCaptureRepo) NewsletterService {
	return &newsletterService{log: log.With("service", "NewsletterService"), repo: repo}
}

func (s *newsletterService) Subscribe(ctx context.Context, email, source string) error {
	email = utils.NormalizeEmail(email)
	if err := utils.ValidateEmail(email); err != nil {
		return err
	}
	source = strings.TrimSpace(source)
	if source == "" {
		source = "landing"
	}
	if err := s.repo.Upsert(dbctx.New(ctx), &types.EmailCapture{
		Email:      email,
		Source:     source,
		Subscribed: true,
	}); err != nil {
		return fmt.Errorf("subscribe: %w", err)
	}
	return nil
}
