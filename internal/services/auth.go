package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/humanizer-backend/internal/data/repos"
	types "github.com/yungbote/humanizer-backend/internal/domain"
	"github.com/yungbote/humanizer-backend/internal/pkg/dbctx"
	perr "github.com/yungbote/humanizer-backend/internal/pkg/errors"
	"github.com/yungbote/humanizer-backend/internal/platform/logger"
	"github.com/yungbote/humanizer-backend/internal/requestdata"
	"github.com/yungbote/humanizer-backend/internal/utils"
)

type JWTClaims struct {
	jwt.RegisteredClaims
}

type RegisterInput struct {
	Email        string
	Password     string
	FullName     string
	ReferralCode string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*types.Profile, error)
	Login(ctx context.Context, email, password string) (string, string, error)
	Refresh(ctx context.Context) (string, string, error)
	Logout(ctx context.Context) error
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	GetAccessTTL() time.Duration
}

type authService struct {
	db              *gorm.DB
	log             *logger.Logger
	userRepo        repos.UserRepo
	profileRepo     repos.ProfileRepo
	userTokenRepo   repos.UserTokenRepo
	referralService ReferralService
	jwtSecretKey    string
	accessTTL       time.Duration
	refreshTTL      time.Duration
	now             func() time.Time
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	profileRepo repos.ProfileRepo,
	userTokenRepo repos.UserTokenRepo,
	referralService ReferralService,
	jwtSecretKey string,
	accessTTL time.Duration,
	refreshTTL time.Duration,
) AuthService {
	return &authService{
		db:              db,
		log:             log.With("service", "AuthService"),
		userRepo:        userRepo,
		profileRepo:     profileRepo,
		userTokenRepo:   userTokenRepo,
		referralService: referralService,
		jwtSecretKey:    jwtSecretKey,
		accessTTL:       accessTTL,
		refreshTTL:      refreshTTL,
		now:             time.Now,
	}
}

func (as *authService) Register(ctx context.Context, in RegisterInput) (*types.Profile, error) {
	email := utils.NormalizeEmail(in.Email)
	if err := utils.ValidateRegistration(email, in.Password); err != nil {
		return nil, err
	}
	exists, err := as.userRepo.EmailExists(dbctx.New(ctx), email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: email already registered", perr.ErrConflict)
	}
	hashed, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	var profile *types.Profile
	err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		created, err := as.userRepo.Create(dbc, []*types.User{{Email: email, Password: hashed}})
		if err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		user := created[0]

		code, err := as.newReferralCode(dbc)
		if err != nil {
			return err
		}
		profile = &types.Profile{
			ID:             user.ID,
			Email:          email,
			FullName:       strings.TrimSpace(in.FullName),
			UserType:       types.UserTypeStandard,
			UsageResetDate: types.NextResetDate(as.now()),
			PreferredMode:  "casual",
			ReferralCode:   code,
		}
		if err := as.profileRepo.Create(dbc, profile); err != nil {
			return fmt.Errorf("create profile: %w", err)
		}

		if code := strings.TrimSpace(in.ReferralCode); code != "" && as.referralService != nil {
			if err := as.referralService.CompleteForSignup(dbc, code, profile); err != nil {
				// An unknown or self-referencing code never blocks signup.
				if !errors.Is(err, perr.ErrNotFound) && !errors.Is(err, perr.ErrInvalidArgument) {
					return fmt.Errorf("complete referral: %w", err)
				}
				as.log.Warn("Ignoring referral code at signup", "referral_code", code, "error", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	as.log.Info("User registered", "user_id", profile.ID)
	return profile, nil
}

const referralAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func (as *authService) newReferralCode(dbc dbctx.Context) (string, error) {
	for attempt := 0; attempt < 5; attempt++ {
		buf := make([]byte, 8)
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("referral code: %w", err)
		}
		for i := range buf {
			buf[i] = referralAlphabet[int(buf[i])%len(referralAlphabet)]
		}
		code := string(buf)
		exists, err := as.profileRepo.ReferralCodeExists(dbc, code)
		if err != nil {
			return "", fmt.Errorf("referral code lookup: %w", err)
		}
		if !exists {
			return code, nil
		}
	}
	return "", errors.New("could not allocate a unique referral code")
}

func (as *authService) Login(ctx context.Context, email, password string) (string, string, error) {
	email = utils.NormalizeEmail(email)
	if err := utils.ValidateLogin(email, password); err != nil {
		return "", "", err
	}
	user, err := as.userRepo.GetByEmail(dbctx.New(ctx), email)
	if err != nil {
		if errors.Is(err, perr.ErrNotFound) {
			return "", "", fmt.Errorf("%w: invalid email or password", perr.ErrUnauthorized)
		}
		return "", "", fmt.Errorf("load user: %w", err)
	}
	if !utils.CheckPassword(user.Password, password) {
		return "", "", fmt.Errorf("%w: invalid email or password", perr.ErrUnauthorized)
	}

	var accessToken, refreshToken string
	err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		if _, err := as.userTokenRepo.FullDeleteExpired(dbc, as.now()); err != nil {
			as.log.Warn("Failed to prune expired tokens", "error", err)
		}
		var err error
		accessToken, refreshToken, err = as.issueTokens(dbc, user.ID)
		return err
	})
	if err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

func (as *authService) Refresh(ctx context.Context) (string, string, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.RefreshToken == "" {
		return "", "", fmt.Errorf("%w: no refresh token in request", perr.ErrUnauthorized)
	}

	var accessToken, refreshToken string
	err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		existing, err := as.userTokenRepo.GetByRefreshToken(dbc, rd.RefreshToken)
		if err != nil {
			if errors.Is(err, perr.ErrNotFound) {
				return fmt.Errorf("%w: unknown refresh token", perr.ErrUnauthorized)
			}
			return fmt.Errorf("load refresh token: %w", err)
		}
		if existing.ExpiresAt.Before(as.now()) {
			if err := as.userTokenRepo.FullDeleteByIDs(dbc, []uuid.UUID{existing.ID}); err != nil {
				return fmt.Errorf("delete expired token: %w", err)
			}
			return fmt.Errorf("%w: refresh token expired", perr.ErrUnauthorized)
		}
		accessToken, refreshToken, err = as.issueTokens(dbc, existing.UserID)
		if err != nil {
			return err
		}
		if err := as.userTokenRepo.FullDeleteByIDs(dbc, []uuid.UUID{existing.ID}); err != nil {
			return fmt.Errorf("remove old token: %w", err)
		}
		return nil
	})
	if err != nil {
		as.log.Warn("Refresh failed", "error", err)
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

func (as *authService) Logout(ctx context.Context) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.TokenString == "" {
		return fmt.Errorf("%w: no token in request", perr.ErrUnauthorized)
	}
	return as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		tok, err := as.userTokenRepo.GetByAccessToken(dbc, rd.TokenString)
		if err != nil {
			if errors.Is(err, perr.ErrNotFound) {
				return nil
			}
			return fmt.Errorf("load token: %w", err)
		}
		return as.userTokenRepo.FullDeleteByIDs(dbc, []uuid.UUID{tok.ID})
	})
}

func (as *authService) issueTokens(dbc dbctx.Context, userID uuid.UUID) (string, string, error) {
	access, err := as.generateAccessToken(userID)
	if err != nil {
		return "", "", fmt.Errorf("generate access token: %w", err)
	}
	refresh := uuid.New().String()
	_, err = as.userTokenRepo.Create(dbc, []*types.UserToken{{
		UserID:       userID,
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    as.now().Add(as.refreshTTL),
	}})
	if err != nil {
		return "", "", fmt.Errorf("create user token: %w", err)
	}
	return access, refresh, nil
}

func (as *authService) generateAccessToken(userID uuid.UUID) (string, error) {
	now := as.now()
	claims := JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(as.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.jwtSecretKey))
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	if tokenString == "" {
		return ctx, fmt.Errorf("%w: missing token", perr.ErrUnauthorized)
	}
	parsed, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(as.jwtSecretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return ctx, fmt.Errorf("%w: %v", perr.ErrUnauthorized, err)
	}
	claims, ok := parsed.Claims.(*JWTClaims)
	if !ok || !parsed.Valid {
		return ctx, fmt.Errorf("%w: invalid or expired token", perr.ErrUnauthorized)
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ctx, fmt.Errorf("%w: invalid subject", perr.ErrUnauthorized)
	}
	tok, err := as.userTokenRepo.GetByAccessToken(dbctx.New(ctx), tokenString)
	if err != nil {
		if errors.Is(err, perr.ErrNotFound) {
			return ctx, fmt.Errorf("%w: token revoked", perr.ErrUnauthorized)
		}
		return ctx, fmt.Errorf("load token: %w", err)
	}
	return requestdata.WithRequestData(ctx, &requestdata.RequestData{
		TokenString:  tokenString,
		RefreshToken: tok.RefreshToken,
		UserID:       userID,
	}), nil
}

func (as *authService) GetAccessTTL() time.Duration {
	return as.accessTTL
}
