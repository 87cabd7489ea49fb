package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/humanizer-backend/internal/pkg/dbctx"
	perr "github.com/yungbote/humanizer-backend/internal/pkg/errors"
)

func TestNewsletterSubscribeIsIdempotent(t *testing.T) {
	f := newFixture(t)
	svc := NewNewsletterService(f.log, f.captures)
	ctx := context.Background()

	assert.ErrorIs(t, svc.Subscribe(ctx, "nope", ""), perr.ErrInvalidArgument)
	require.NoError(t, svc.Subscribe(ctx, "Reader@Example.com", ""))
	require.NoError(t, svc.Subscribe(ctx, "reader@example.com", "exit_intent"))

	got, err := f.captures.GetByEmail(dbctx.New(ctx), "reader@example.com")
	require.NoError(t, err)
	assert.Equal(t, "exit_intent", got.Source)
	assert.True(t, got.Subscribed)
}
