package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	perr "github.com/yungbote/humanizer-backend/internal/pkg/errors"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"explicit", New(http.StatusConflict, "email_taken", errors.New("taken")), http.StatusConflict, "email_taken"},
		{"explicit without code", New(http.StatusTeapot, "", nil), http.StatusTeapot, "fallback"},
		{"wrapped sentinel", fmt.Errorf("lookup: %w", perr.ErrNotFound), http.StatusNotFound, "not_found"},
		{"limit", perr.ErrLimitReached, http.StatusPaymentRequired, "usage_limit_reached"},
		{"rate", perr.ErrRateLimited, http.StatusTooManyRequests, "rate_limited"},
		{"forbidden", perr.ErrForbidden, http.StatusForbidden, "forbidden"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "fallback"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, code := Resolve(tt.err, "fallback")
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, code)
		})
	}
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "inner", New(400, "code", errors.New("inner")).Error())
	assert.Equal(t, "code", New(400, "code", nil).Error())
	assert.Equal(t, "api error (400)", New(400, "", nil).Error())
	var nilErr *Error
	assert.Equal(t, "", nilErr.Error())
}
