package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/humanizer-backend/internal/http/response"
	"github.com/yungbote/humanizer-backend/internal/services"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (ah *AuthHandler) tokens(c *gin.Context, status int, access, refresh string, extra gin.H) {
	body := gin.H{
		"access_token":  access,
		"refresh_token": refresh,
		"expires_in":    int(ah.authService.GetAccessTTL().Seconds()),
	}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(status, body)
}

// POST /api/register
func (ah *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Email        string `json:"email" binding:"required,email"`
		Password     string `json:"password" binding:"required"`
		FullName     string `json:"full_name" binding:"max=200"`
		ReferralCode string `json:"referral_code" binding:"max=32"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondErr(c, badJSON(err), "invalid_request")
		return
	}
	profile, err := ah.authService.Register(c.Request.Context(), services.RegisterInput{
		Email:        req.Email,
		Password:     req.Password,
		FullName:     req.FullName,
		ReferralCode: req.ReferralCode,
	})
	if err != nil {
		response.RespondErr(c, err, "registration_failed")
		return
	}
	access, refresh, err := ah.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.RespondErr(c, err, "login_failed")
		return
	}
	ah.tokens(c, http.StatusCreated, access, refresh, gin.H{"profile": profile})
}

// POST /api/login
func (ah *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondErr(c, badJSON(err), "invalid_request")
		return
	}
	access, refresh, err := ah.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.RespondErr(c, err, "invalid_credentials")
		return
	}
	ah.tokens(c, http.StatusOK, access, refresh, nil)
}

// POST /api/refresh
func (ah *AuthHandler) Refresh(c *gin.Context) {
	access, refresh, err := ah.authService.Refresh(c.Request.Context())
	if err != nil {
		response.RespondErr(c, err, "refresh_failed")
		return
	}
	ah.tokens(c, http.StatusOK, access, refresh, nil)
}

// POST /api/logout
func (ah *AuthHandler) Logout(c *gin.Context) {
	if err := ah.authService.Logout(c.Request.Context()); err != nil {
		response.RespondErr(c, err, "logout_failed")
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
