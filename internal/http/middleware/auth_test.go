package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	types "github.com/yungbote/humanizer-backend/internal/domain"
	perr "github.com/yungbote/humanizer-backend/internal/pkg/errors"
	"github.com/yungbote/humanizer-backend/internal/platform/logger"
	"github.com/yungbote/humanizer-backend/internal/requestdata"
	"github.com/yungbote/humanizer-backend/internal/services"
)

type stubAuth struct {
	services.AuthService
	users map[string]uuid.UUID
}

func (s stubAuth) SetContextFromToken(ctx context.Context, token string) (context.Context, error) {
	id, ok := s.users[token]
	if !ok {
		return ctx, perr.ErrUnauthorized
	}
	return requestdata.WithRequestData(ctx, &requestdata.RequestData{TokenString: token, UserID: id}), nil
}

func (s stubAuth) GetAccessTTL() time.Duration { return time.Minute }

type stubProfiles struct {
	services.ProfileService
	kinds map[uuid.UUID]types.UserType
}

func (s stubProfiles) GetMe(ctx context.Context) (*types.Profile, error) {
	id := requestdata.UserID(ctx)
	t, ok := s.kinds[id]
	if !ok {
		return nil, perr.ErrNotFound
	}
	return &types.Profile{ID: id, UserType: t}, nil
}

func newAuthRouter(t *testing.T) (*gin.Engine, uuid.UUID, uuid.UUID) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	user, admin := uuid.New(), uuid.New()
	am := NewAuthMiddleware(log,
		stubAuth{users: map[string]uuid.UUID{"user-token": user, "admin-token": admin}},
		stubProfiles{kinds: map[uuid.UUID]types.UserType{user: types.UserTypeStandard, admin: types.UserTypeAdmin}},
	)
	r := gin.New()
	api := r.Group("/api", am.RequireAuth())
	api.GET("/me", func(c *gin.Context) {
		c.String(http.StatusOK, requestdata.UserID(c.Request.Context()).String())
	})
	api.GET("/admin/analytics", am.RequireAdmin(), func(c *gin.Context) { c.Status(http.StatusOK) })
	return r, user, admin
}

func call(r http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRequireAuth(t *testing.T) {
	r, user, _ := newAuthRouter(t)

	assert.Equal(t, http.StatusUnauthorized, call(r, "/api/me", "").Code)
	assert.Equal(t, http.StatusUnauthorized, call(r, "/api/me", "forged").Code)

	rec := call(r, "/api/me", "user-token")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, user.String(), rec.Body.String())
}

func TestRequireAdmin(t *testing.T) {
	r, _, _ := newAuthRouter(t)
	assert.Equal(t, http.StatusForbidden, call(r, "/api/admin/analytics", "user-token").Code)
	assert.Equal(t, http.StatusOK, call(r, "/api/admin/analytics", "admin-token").Code)
}
