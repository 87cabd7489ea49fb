package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/humanizer-backend/internal/http/response"
	"github.com/yungbote/humanizer-backend/internal/platform/logger"
	"github.com/yungbote/humanizer-backend/internal/requestdata"
	"github.com/yungbote/humanizer-backend/internal/services"
)

type AuthMiddleware struct {
	log            *logger.Logger
	authService    services.AuthService
	profileService services.ProfileService
}

func NewAuthMiddleware(log *logger.Logger, authService services.AuthService, profileService services.ProfileService) *AuthMiddleware {
	return &AuthMiddleware{
		log:            log.With("Middleware", "AuthMiddleware"),
		authService:    authService,
		profileService: profileService,
	}
}

func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractBearer(c)
		if tokenString == "" {
			c.Abort()
			response.RespondError(c, http.StatusUnauthorized, "unauthorized", errMissingToken)
			return
		}
		ctx, err := am.authService.SetContextFromToken(c.Request.Context(), tokenString)
		if err != nil {
			am.log.Debug("Rejected token", "error", err)
			c.Abort()
			response.RespondErr(c, err, "unauthorized")
			return
		}
		c.Request = c.Request.WithContext(ctx)
		if requestdata.UserID(ctx) == uuid.Nil {
			c.Abort()
			response.RespondError(c, http.StatusForbidden, "forbidden", nil)
			return
		}
		c.Next()
	}
}

// RequireAdmin must run after RequireAuth.
func (am *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, err := am.profileService.GetMe(c.Request.Context())
		if err != nil {
			c.Abort()
			response.RespondErr(c, err, "load_profile_failed")
			return
		}
		if !profile.IsAdmin() {
			c.Abort()
			response.RespondError(c, http.StatusForbidden, "forbidden", errAdminOnly)
			return
		}
		c.Next()
	}
}

func extractBearer(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ""
}
