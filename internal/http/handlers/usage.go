package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/humanizer-backend/internal/http/response"
	"github.com/yungbote/humanizer-backend/internal/services"
)

type UsageHandler struct {
	profiles services.ProfileService
	usage    services.UsageService
}

func NewUsageHandler(profiles services.ProfileService, usage services.UsageService) *UsageHandler {
	return &UsageHandler{profiles: profiles, usage: usage}
}

// GET /api/usage
func (h *UsageHandler) Summary(c *gin.Context) {
	me, err := h.profiles.GetMe(c.Request.Context())
	if err != nil {
		response.RespondErr(c, err, "load_profile_failed")
		return
	}
	response.RespondOK(c, h.usage.Summary(me))
}

// GET /api/usage/logs?limit=20
func (h *UsageHandler) Logs(c *gin.Context) {
	userID, err := currentUser(c)
	if err != nil {
		response.RespondErr(c, err, "unauthorized")
		return
	}
	logs, err := h.usage.RecentLogs(c.Request.Context(), userID, queryLimit(c, 20))
	if err != nil {
		response.RespondErr(c, err, "list_usage_failed")
		return
	}
	response.RespondOK(c, gin.H{"logs": logs})
}
