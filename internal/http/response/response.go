package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/humanizer-backend/internal/platform/apierr"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// RespondErr resolves err through apierr. Server errors keep their detail
// out of the body; the request log has it.
func RespondErr(c *gin.Context, err error, fallbackCode string) {
	status, code := apierr.Resolve(err, fallbackCode)
	if err != nil {
		_ = c.Error(err)
	}
	if status >= http.StatusInternalServerError {
		RespondError(c, status, code, nil)
		return
	}
	RespondError(c, status, code, err)
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}
