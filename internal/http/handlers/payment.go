package handlers

import (
	"github.com/gin-gonic/gin"

	types "github.com/yungbote/humanizer-backend/internal/domain"
	"github.com/yungbote/humanizer-backend/internal/http/response"
	"github.com/yungbote/humanizer-backend/internal/services"
)

type PaymentHandler struct {
	payments services.PaymentService
}

func NewPaymentHandler(payments services.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// POST /api/payment-proofs
func (h *PaymentHandler) Submit(c *gin.Context) {
	var req struct {
		TransactionHash string  `json:"transaction_hash" binding:"required_without=ProofImageURL"`
		Amount          float64 `json:"amount" binding:"gte=0"`
		Currency        string  `json:"currency"`
		ProofImageURL   string  `json:"proof_image_url" binding:"omitempty,url"`
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
	proof, err := h.payments.Submit(c.Request.Context(), userID, services.PaymentSubmission{
		TransactionHash: req.TransactionHash,
		Amount:          req.Amount,
		Currency:        req.Currency,
		ProofImageURL:   req.ProofImageURL,
	})
	if err != nil {
		response.RespondErr(c, err, "submit_proof_failed")
		return
	}
	response.RespondCreated(c, gin.H{"proof": proof})
}

// GET /api/payment-proofs
func (h *PaymentHandler) ListMine(c *gin.Context) {
	userID, err := currentUser(c)
	if err != nil {
		response.RespondErr(c, err, "unauthorized")
		return
	}
	proofs, err := h.payments.ListMine(c.Request.Context(), userID)
	if err != nil {
		response.RespondErr(c, err, "list_proofs_failed")
		return
	}
	response.RespondOK(c, gin.H{"proofs": proofs})
}

// GET /api/admin/payment-proofs?status=pending&limit=50
func (h *PaymentHandler) List(c *gin.Context) {
	proofs, err := h.payments.List(c.Request.Context(), types.ProofStatus(c.Query("status")), queryLimit(c, 50))
	if err != nil {
		response.RespondErr(c, err, "list_proofs_failed")
		return
	}
	response.RespondOK(c, gin.H{"proofs": proofs})
}

// PATCH /api/admin/payment-proofs/:id
// body: { "status": "approved" | "rejected", "admin_notes": "..." }
func (h *PaymentHandler) Review(c *gin.Context) {
	var req struct {
		Status     types.ProofStatus `json:"status" binding:"required,oneof=approved rejected"`
		AdminNotes string            `json:"admin_notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondErr(c, badJSON(err), "invalid_request")
		return
	}
	proofID, err := pathID(c)
	if err != nil {
		response.RespondErr(c, err, "invalid_id")
		return
	}
	adminID, err := currentUser(c)
	if err != nil {
		response.RespondErr(c, err, "unauthorized")
		return
	}
	proof, err := h.payments.Review(c.Request.Context(), adminID, proofID, req.Status, req.AdminNotes)
	if err != nil {
		response.RespondErr(c, err, "review_proof_failed")
		return
	}
	response.RespondOK(c, gin.H{"proof": proof})
}
