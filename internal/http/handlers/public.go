package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/humanizer-backend/internal/http/response"
	"github.com/yungbote/humanizer-backend/internal/services"
)

// PublicHandler serves the unauthenticated landing-page endpoints.
type PublicHandler struct {
	plans      services.PlanService
	newsletter services.NewsletterService
}

func NewPublicHandler(plans services.PlanService, newsletter services.NewsletterService) *PublicHandler {
	return &PublicHandler{plans: plans, newsletter: newsletter}
}

// GET /api/plans
func (h *PublicHandler) ListPlans(c *gin.Context) {
	plans, err := h.plans.ListActive(c.Request.Context())
	if err != nil {
		response.RespondErr(c, err, "list_plans_failed")
		return
	}
	response.RespondOK(c, gin.H{"plans": plans})
}

// POST /api/newsletter
// body: { "email": "...", "source": "footer" }
func (h *PublicHandler) Subscribe(c *gin.Context) {
	var req struct {
		Email  string `json:"email" binding:"required,email"`
		Source string `json:"source"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondErr(c, badJSON(err), "invalid_request")
		return
	}
	if err := h.newsletter.Subscribe(c.Request.Context(), req.Email, req.Source); err != nil {
		response.RespondErr(c, err, "subscribe_failed")
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
