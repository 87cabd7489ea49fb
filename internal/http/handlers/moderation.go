package handlers

import (
	"github.com/gin-gonic/gin"

	types "github.com/yungbote/humanizer-backend/internal/domain"
	"github.com/yungbote/humanizer-backend/internal/http/response"
	"github.com/yungbote/humanizer-backend/internal/services"
)

type ModerationHandler struct {
	moderation services.ModerationService
}

func NewModerationHandler(moderation services.ModerationService) *ModerationHandler {
	return &ModerationHandler{moderation: moderation}
}

// POST /api/abuse-reports
func (h *ModerationHandler) Report(c *gin.Context) {
	var req struct {
		InputText     string `json:"input_text"`
		OutputText    string `json:"output_text"`
		ReportReason  string `json:"report_reason" binding:"required"`
		ReportDetails string `json:"report_details"`
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
	report, err := h.moderation.Report(c.Request.Context(), userID, services.AbuseReportInput{
		InputText:  req.InputText,
		OutputText: req.OutputText,
		Reason:     req.ReportReason,
		Details:    req.ReportDetails,
	})
	if err != nil {
		response.RespondErr(c, err, "report_failed")
		return
	}
	response.RespondCreated(c, gin.H{"report": report})
}

// GET /api/admin/abuse-reports?status=pending
func (h *ModerationHandler) List(c *gin.Context) {
	reports, err := h.moderation.List(c.Request.Context(), types.ReportStatus(c.Query("status")), queryLimit(c, 50))
	if err != nil {
		response.RespondErr(c, err, "list_reports_failed")
		return
	}
	response.RespondOK(c, gin.H{"reports": reports})
}

// PATCH /api/admin/abuse-reports/:id
func (h *ModerationHandler) UpdateStatus(c *gin.Context) {
	var req struct {
		Status     types.ReportStatus `json:"status" binding:"required,oneof=pending reviewed resolved dismissed"`
		AdminNotes string             `json:"admin_notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondErr(c, badJSON(err), "invalid_request")
		return
	}
	reportID, err := pathID(c)
	if err != nil {
		response.RespondErr(c, err, "invalid_id")
		return
	}
	adminID, err := currentUser(c)
	if err != nil {
		response.RespondErr(c, err, "unauthorized")
		return
	}
	if err := h.moderation.UpdateStatus(c.Request.Context(), adminID, reportID, req.Status, req.AdminNotes); err != nil {
		response.RespondErr(c, err, "update_report_failed")
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
