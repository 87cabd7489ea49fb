package apierr

import (
	"errors"
	"fmt"
	"net/http"

	perr "github.com/yungbote/humanizer-backend/internal/pkg/errors"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

// Resolve maps err onto a status and code. Explicit *Error values win,
// then the shared sentinels, then fallbackCode with a 500.
func Resolve(err error, fallbackCode string) (int, string) {
	var ae *Error
	if errors.As(err, &ae) && ae.Status != 0 {
		code := ae.Code
		if code == "" {
			code = fallbackCode
		}
		return ae.Status, code
	}
	switch {
	case errors.Is(err, perr.ErrInvalidArgument):
		return http.StatusBadRequest, "invalid_argument"
	case errors.Is(err, perr.ErrUnauthorized):
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, perr.ErrForbidden):
		return http.StatusForbidden, "forbidden"
	case errors.Is(err, perr.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, perr.ErrConflict):
		return http.StatusConflict, "conflict"
	case errors.Is(err, perr.ErrLimitReached):
		return http.StatusPaymentRequired, "usage_limit_reached"
	case errors.Is(err, perr.ErrRateLimited):
		return http.StatusTooManyRequests, "rate_limited"
	default:
		return http.StatusInternalServerError, fallbackCode
	}
}
