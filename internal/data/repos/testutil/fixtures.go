package testutil

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/humanizer-backend/internal/domain"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:       uuid.New(),
		Email:    email,
		Password: "pw",
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

// SeedProfile creates a user and its profile with the given type.
func SeedProfile(tb testing.TB, ctx context.Context, tx *gorm.DB, email string, userType types.UserType) *types.Profile {
	tb.Helper()
	u := SeedUser(tb, ctx, tx, email)
	p := &types.Profile{
		ID:             u.ID,
		Email:          u.Email,
		UserType:       userType,
		UsageResetDate: time.Now().UTC().AddDate(0, 1, 0),
		PreferredMode:  "casual",
		ReferralCode:   strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8]),
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed profile: %v", err)
	}
	return p
}
