package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/humanizer-backend/internal/http/response"
	"github.com/yungbote/humanizer-backend/internal/services"
)

type HumanizeHandler struct {
	humanize services.HumanizeService
}

func NewHumanizeHandler(humanize services.HumanizeService) *HumanizeHandler {
	return &HumanizeHandler{humanize: humanize}
}

// POST /api/humanize
// body: { "text": "...", "mode": "casual" }
func (h *HumanizeHandler) Humanize(c *gin.Context) {
	var req struct {
		Text string `json:"text" binding:"required"`
		Mode string `json:"mode"`
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
	res, err := h.humanize.Humanize(c.Request.Context(), userID, req.Text, req.Mode)
	if err != nil {
		response.RespondErr(c, err, "humanize_failed")
		return
	}
	response.RespondOK(c, res)
}

// POST /api/humanize/bulk
// body: { "texts": ["...", "..."], "mode": "academic" }
func (h *HumanizeHandler) Bulk(c *gin.Context) {
	var req struct {
		Texts []string `json:"texts" binding:"required,min=1,dive,required"`
		Mode  string   `json:"mode"`
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
	res, err := h.humanize.BulkHumanize(c.Request.Context(), userID, req.Texts, req.Mode)
	if err != nil {
		response.RespondErr(c, err, "bulk_humanize_failed")
		return
	}
	response.RespondOK(c, res)
}

// POST /api/detection/reanalyze
// body: { "original_ai_score": 91.4 }
func (h *HumanizeHandler) Reanalyze(c *gin.Context) {
	var req struct {
		OriginalAIScore float64 `json:"original_ai_score" binding:"required,gt=0,lte=100"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondErr(c, badJSON(err), "invalid_request")
		return
	}
	scores, err := h.humanize.Reanalyze(req.OriginalAIScore)
	if err != nil {
		response.RespondErr(c, err, "reanalyze_failed")
		return
	}
	response.RespondOK(c, gin.H{"scores": scores})
}
