package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/humanizer-backend/internal/http/response"
	"github.com/yungbote/humanizer-backend/internal/services"
)

type ReferralHandler struct {
	referrals services.ReferralService
}

func NewReferralHandler(referrals services.ReferralService) *ReferralHandler {
	return &ReferralHandler{referrals: referrals}
}

// GET /api/referrals
func (h *ReferralHandler) List(c *gin.Context) {
	userID, err := currentUser(c)
	if err != nil {
		response.RespondErr(c, err, "unauthorized")
		return
	}
	overview, err := h.referrals.List(c.Request.Context(), userID)
	if err != nil {
		response.RespondErr(c, err, "list_referrals_failed")
		return
	}
	response.RespondOK(c, overview)
}

// POST /api/referrals
// body: { "email": "friend@example.com" }
func (h *ReferralHandler) Invite(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondErr(c, badJSON(err), "invalid_request")
		return
	}
	userID, err := currentUser(c)
	if err != nil {
		response.RespondErr(c, err, "unauthorized")
		return
	}
	ref, err := h.referrals.Invite(c.Request.Context(), userID, req.Email)
	if err != nil {
		response.RespondErr(c, err, "invite_failed")
		return
	}
	response.RespondCreated(c, gin.H{"referral": ref})
}
