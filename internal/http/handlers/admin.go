package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/humanizer-backend/internal/http/response"
	"github.com/yungbote/humanizer-backend/internal/platform/logger"
	"github.com/yungbote/humanizer-backend/internal/services"
)

type AdminHandler struct {
	log       *logger.Logger
	analytics services.AnalyticsService
	usage     services.UsageService
	now       func() time.Time
}

func NewAdminHandler(log *logger.Logger, analytics services.AnalyticsService, usage services.UsageService) *AdminHandler {
	return &AdminHandler{
		log:       log.With("handler", "AdminHandler"),
		analytics: analytics,
		usage:     usage,
		now:       time.Now,
	}
}

// GET /api/admin/analytics
func (h *AdminHandler) Analytics(c *gin.Context) {
	d, err := h.analytics.Dashboard(c.Request.Context(), h.now())
	if err != nil {
		response.RespondErr(c, err, "analytics_failed")
		return
	}
	response.RespondOK(c, d)
}

// POST /api/admin/usage/reset
// Runs the same sweep the scheduler runs.
func (h *AdminHandler) ResetUsage(c *gin.Context) {
	n, err := h.usage.ResetExpired(c.Request.Context(), h.now())
	if err != nil {
		response.RespondErr(c, err, "usage_reset_failed")
		return
	}
	h.log.Info("Manual usage reset", "profiles_reset", n)
	response.RespondOK(c, gin.H{"reset": n})
}
