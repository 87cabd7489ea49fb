package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/yungbote/humanizer-backend/internal/data/repos"
	types "github.com/yungbote/humanizer-backend/internal/domain"
	"github.com/yungbote/humanizer-backend/internal/humanizer"
	"github.com/yungbote/humanizer-backend/internal/pkg/dbctx"
	perr "github.com/yungbote/humanizer-backend/internal/pkg/errors"
	"github.com/yungbote/humanizer-backend/internal/platform/logger"
	"github.com/yungbote/humanizer-backend/internal/requestdata"
)

// ProfileUpdate carries the editable fields. Nil leaves a field untouched.
type ProfileUpdate struct {
	FullName      *string
	Website       *string
	AvatarURL     *string
	PreferredMode *string
}

type ProfileService interface {
	GetMe(ctx context.Context) (*types.Profile, error)
	Get(ctx context.Context, userID uuid.UUID) (*types.Profile, error)
	UpdateMe(ctx context.Context, in ProfileUpdate) (*types.Profile, error)
}

type profileService struct {
	log         *logger.Logger
	profileRepo repos.ProfileRepo
}

func NewProfileService(log *logger.Logger, profileRepo repos.ProfileRepo) ProfileService {
	return &profileService{log: log.With("service", "ProfileService"), profileRepo: profileRepo}
}

func (s *profileService) GetMe(ctx context.Context) (*types.Profile, error) {
	return s.Get(ctx, requestdata.UserID(ctx))
}

func (s *profileService) Get(ctx context.Context, userID uuid.UUID) (*types.Profile, error) {
	if userID == uuid.Nil {
		return nil, perr.ErrUnauthorized
	}
	return s.profileRepo.GetByID(dbctx.New(ctx), userID)
}

func (s *profileService) UpdateMe(ctx context.Context, in ProfileUpdate) (*types.Profile, error) {
	profile, err := s.GetMe(ctx)
	if err != nil {
		return nil, err
	}
	fields := map[string]any{}
	if in.FullName != nil {
		fields["full_name"] = strings.TrimSpace(*in.FullName)
	}
	if in.Website != nil {
		site := strings.TrimSpace(*in.Website)
		if site != "" {
			if u, err := url.Parse(site); err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
				return nil, fmt.Errorf("%w: website must be an http(s) URL", perr.ErrInvalidArgument)
			}
		}
		fields["website"] = site
	}
	if in.AvatarURL != nil {
		fields["avatar_url"] = strings.TrimSpace(*in.AvatarURL)
	}
	if in.PreferredMode != nil {
		mode, err := humanizer.ParseMode(*in.PreferredMode)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", perr.ErrInvalidArgument, err)
		}
		if mode.Premium() && !profile.Unlimited() {
			return nil, fmt.Errorf("%w: %s mode needs a premium account", perr.ErrForbidden, mode)
		}
		fields["preferred_mode"] = mode.String()
	}
	dbc := dbctx.New(ctx)
	if err := s.profileRepo.UpdateFields(dbc, profile.ID, fields); err != nil {
		return nil, err
	}
	return s.profileRepo.GetByID(dbc, profile.ID)
}
