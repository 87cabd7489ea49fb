package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/humanizer-backend/internal/http/response"
	"github.com/yungbote/humanizer-backend/internal/services"
)

type ProfileHandler struct {
	profiles services.ProfileService
	usage    services.UsageService
}

func NewProfileHandler(profiles services.ProfileService, usage services.UsageService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, usage: usage}
}

// GET /api/me
func (h *ProfileHandler) GetMe(c *gin.Context) {
	me, err := h.profiles.GetMe(c.Request.Context())
	if err != nil {
		response.RespondErr(c, err, "load_profile_failed")
		return
	}
	response.RespondOK(c, gin.H{"me": me, "usage": h.usage.Summary(me)})
}

// PATCH /api/me
// body: any of { "full_name", "website", "avatar_url", "preferred_mode" }
func (h *ProfileHandler) UpdateMe(c *gin.Context) {
	var req struct {
		FullName      *string `json:"full_name" binding:"omitempty,max=200"`
		Website       *string `json:"website" binding:"omitempty,max=500"`
		AvatarURL     *string `json:"avatar_url" binding:"omitempty,max=500"`
		PreferredMode *string `json:"preferred_mode"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondErr(c, badJSON(err), "invalid_request")
		return
	}
	me, err := h.profiles.UpdateMe(c.Request.Context(), services.ProfileUpdate{
		FullName:      req.FullName,
		Website:       req.Website,
		AvatarURL:     req.AvatarURL,
		PreferredMode: req.PreferredMode,
	})
	if err != nil {
		response.RespondErr(c, err, "update_profile_failed")
		return
	}
	response.RespondOK(c, gin.H{"me": me})
}
