package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	types "github.com/yungbote/humanizer-backend/internal/domain"
	"github.com/yungbote/humanizer-backend/internal/humanizer"
	"github.com/yungbote/humanizer-backend/internal/observability"
	perr "github.com/yungbote/humanizer-backend/internal/pkg/errors"
	"github.com/yungbote/humanizer-backend/internal/platform/logger"
)

type HumanizeConfig struct {
	BulkMaxTexts    int
	BulkConcurrency int
}

type HumanizeResult struct {
	HumanizedText    string           `json:"humanized_text"`
	Replacements     []humanizer.Edit `json:"replacements"`
	Edits            []humanizer.Edit `json:"edits"`
	Mode             humanizer.Mode   `json:"mode"`
	Scores           DetectionScores  `json:"scores"`
	ProcessingTimeMS int64            `json:"processing_time_ms"`
	Usage            *UsageSummary    `json:"usage,omitempty"`
}

type BulkResult struct {
	Results []*HumanizeResult `json:"results"`
	Usage   UsageSummary      `json:"usage"`
}

type HumanizeService interface {
	Humanize(ctx context.Context, userID uuid.UUID, text, mode string) (*HumanizeResult, error)
	BulkHumanize(ctx context.Context, userID uuid.UUID, texts []string, mode string) (*BulkResult, error)
	Reanalyze(originalAIScore float64) (DetectionScores, error)
}

type humanizeService struct {
	log      *logger.Logger
	rewriter *humanizer.Rewriter
	profiles ProfileService
	usage    UsageService
	limiter  RateLimiter
	scorer   *DetectionScorer
	metrics  *observability.Metrics
	cfg      HumanizeConfig
	newRand  func() *rand.Rand
}

func NewHumanizeService(
	log *logger.Logger,
	rewriter *humanizer.Rewriter,
	profiles ProfileService,
	usage UsageService,
	limiter RateLimiter,
	scorer *DetectionScorer,
	metrics *observability.Metrics,
	cfg HumanizeConfig,
) HumanizeService {
	if cfg.BulkMaxTexts <= 0 {
		cfg.BulkMaxTexts = 10
	}
	if cfg.BulkConcurrency <= 0 {
		cfg.BulkConcurrency = 4
	}
	if scorer == nil {
		scorer = NewDetectionScorer(nil)
	}
	return &humanizeService{
		log:      log.With("service", "HumanizeService"),
		rewriter: rewriter,
		profiles: profiles,
		usage:    usage,
		limiter:  limiter,
		scorer:   scorer,
		metrics:  metrics,
		cfg:      cfg,
		newRand: func() *rand.Rand {
			return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		},
	}
}

func (s *humanizeService) Humanize(ctx context.Context, userID uuid.UUID, text, mode string) (*HumanizeResult, error) {
	profile, m, err := s.admit(ctx, userID, mode)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: text is empty", perr.ErrInvalidArgument)
	}
	if err := s.usage.CanHumanize(profile); err != nil {
		s.metrics.IncRejection("limit_reached")
		return nil, err
	}
	chars := CharacterCount(text)
	if err := s.usage.CheckCharacterLimit(profile, chars); err != nil {
		s.metrics.IncRejection("too_long")
		return nil, err
	}

	res, elapsed := s.rewrite(ctx, text, m, "single")
	if res.HumanizedText == "" {
		return nil, fmt.Errorf("%w: text has no words to rewrite", perr.ErrInvalidArgument)
	}
	updated, err := s.usage.RecordUsage(ctx, userID, UsageRecord{
		Characters:     chars,
		OutputLength:   CharacterCount(res.HumanizedText),
		Mode:           m.String(),
		ProcessingTime: elapsed,
		EditCount:      len(res.Edits),
		Passes:         s.rewriter.Passes(),
	})
	if err != nil {
		return nil, fmt.Errorf("record usage: %w", err)
	}
	sum := s.usage.Summary(updated)
	res.Usage = &sum
	return res, nil
}

// BulkHumanize rewrites every text concurrently, then charges usage one text
// at a time so the counters stay exact.
func (s *humanizeService) BulkHumanize(ctx context.Context, userID uuid.UUID, texts []string, mode string) (*BulkResult, error) {
	profile, m, err := s.admit(ctx, userID, mode)
	if err != nil {
		return nil, err
	}
	if !profile.Unlimited() {
		return nil, fmt.Errorf("%w: bulk rewriting needs a premium account", perr.ErrForbidden)
	}
	if len(texts) == 0 || len(texts) > s.cfg.BulkMaxTexts {
		return nil, fmt.Errorf("%w: send between 1 and %d texts", perr.ErrInvalidArgument, s.cfg.BulkMaxTexts)
	}
	for i, t := range texts {
		if strings.TrimSpace(t) == "" {
			return nil, fmt.Errorf("%w: text %d is empty", perr.ErrInvalidArgument, i+1)
		}
	}

	results := make([]*HumanizeResult, len(texts))
	elapsed := make([]time.Duration, len(texts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.BulkConcurrency)
	for i, t := range texts {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i], elapsed[i] = s.rewrite(gctx, t, m, "bulk")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, r := range results {
		if r.HumanizedText == "" {
			return nil, fmt.Errorf("%w: text %d has no words to rewrite", perr.ErrInvalidArgument, i+1)
		}
	}

	var updated *types.Profile
	for i, t := range texts {
		updated, err = s.usage.RecordUsage(ctx, userID, UsageRecord{
			Characters:     CharacterCount(t),
			OutputLength:   CharacterCount(results[i].HumanizedText),
			Mode:           m.String(),
			ProcessingTime: elapsed[i],
			EditCount:      len(results[i].Edits),
			Passes:         s.rewriter.Passes(),
		})
		if err != nil {
			return nil, fmt.Errorf("record usage for text %d: %w", i+1, err)
		}
	}
	return &BulkResult{Results: results, Usage: s.usage.Summary(updated)}, nil
}

func (s *humanizeService) Reanalyze(originalAIScore float64) (DetectionScores, error) {
	if originalAIScore <= 0 || originalAIScore > 100 {
		return DetectionScores{}, fmt.Errorf("%w: original score must be in (0, 100]", perr.ErrInvalidArgument)
	}
	return s.scorer.Rescore(originalAIScore), nil
}

// admit resolves the caller, validates the mode and applies the rate limit.
func (s *humanizeService) admit(ctx context.Context, userID uuid.UUID, mode string) (*types.Profile, humanizer.Mode, error) {
	if userID == uuid.Nil {
		return nil, "", perr.ErrUnauthorized
	}
	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, perr.ErrNotFound) {
			return nil, "", fmt.Errorf("%w: no profile for user", perr.ErrUnauthorized)
		}
		return nil, "", err
	}
	if strings.TrimSpace(mode) == "" {
		mode = profile.PreferredMode
	}
	m, err := humanizer.ParseMode(mode)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", perr.ErrInvalidArgument, err)
	}
	if m.Premium() && !profile.Unlimited() {
		s.metrics.IncRejection("premium_mode")
		return nil, "", fmt.Errorf("%w: %s mode needs a premium account", perr.ErrForbidden, m)
	}
	if s.limiter != nil {
		ok, err := s.limiter.Allow(ctx, "humanize:"+userID.String())
		if err != nil {
			// A broken limiter backend never blocks rewrites.
			s.log.Warn("Rate limiter unavailable", "error", err)
		} else if !ok {
			s.metrics.IncRejection("rate_limited")
			return nil, "", fmt.Errorf("%w: too many rewrites, slow down", perr.ErrRateLimited)
		}
	}
	return profile, m, nil
}

func (s *humanizeService) rewrite(ctx context.Context, text string, m humanizer.Mode, source string) (*HumanizeResult, time.Duration) {
	_, span := observability.Tracer().Start(ctx, "humanizer.Rewrite")
	defer span.End()

	start := time.Now()
	res := s.rewriter.Rewrite(text, humanizer.Options{Mode: m, Rand: s.newRand()})
	edits := humanizer.Diff(text, res.HumanizedText)
	elapsed := time.Since(start)

	span.SetAttributes(
		attribute.String("humanizer.mode", m.String()),
		attribute.String("humanizer.source", source),
		attribute.Int("humanizer.input_chars", CharacterCount(text)),
		attribute.Int("humanizer.edits", len(edits)),
	)
	if res.HumanizedText == "" {
		span.SetStatus(codes.Error, "empty rewrite")
	}
	s.metrics.ObserveRewrite(m.String(), source, CharacterCount(text), len(edits), elapsed)

	return &HumanizeResult{
		HumanizedText:    res.HumanizedText,
		Replacements:     res.Replacements,
		Edits:            edits,
		Mode:             m,
		Scores:           s.scorer.Score(),
		ProcessingTimeMS: elapsed.Milliseconds(),
	}, elapsed
}
