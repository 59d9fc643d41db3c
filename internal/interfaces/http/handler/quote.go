package handler

import (
	"errors"
	"io"

	pricingapp "github.com/clinic/backend/internal/application/pricing"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// QuoteHandler handles pricing quote and approval API endpoints
type QuoteHandler struct {
	BaseHandler
	quoteService *pricingapp.QuoteService
}

// NewQuoteHandler creates a new QuoteHandler
func NewQuoteHandler(quoteService *pricingapp.QuoteService) *QuoteHandler {
	return &QuoteHandler{
		quoteService: quoteService,
	}
}

// Calculate handles POST /pricing/quote
func (h *QuoteHandler) Calculate(c *gin.Context) {
	var req pricingapp.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.quoteService.Calculate(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Optimize handles POST /pricing/optimize
func (h *QuoteHandler) Optimize(c *gin.Context) {
	var req pricingapp.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.quoteService.Optimize(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// RequestApproval handles POST /approvals
func (h *QuoteHandler) RequestApproval(c *gin.Context) {
	var req pricingapp.CreateApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	staffID, err := getStaffID(c)
	if err != nil {
		h.Unauthorized(c, "Staff identity required")
		return
	}
	req.RequestedBy = staffID

	approval, err := h.quoteService.RequestApproval(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, approval)
}

// GetApproval handles GET /approvals/:id
func (h *QuoteHandler) GetApproval(c *gin.Context) {
	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid approval request ID format")
		return
	}

	approval, err := h.quoteService.GetApproval(c.Request.Context(), requestID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, approval)
}

// ListApprovals handles GET /approvals
func (h *QuoteHandler) ListApprovals(c *gin.Context) {
	var filter pricingapp.ApprovalListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	approvals, total, err := h.quoteService.ListApprovals(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, approvals, total, filter.Page, filter.PageSize)
}

// Approve handles POST /approvals/:id/approve
func (h *QuoteHandler) Approve(c *gin.Context) {
	h.decide(c, true)
}

// Reject handles POST /approvals/:id/reject
func (h *QuoteHandler) Reject(c *gin.Context) {
	h.decide(c, false)
}

func (h *QuoteHandler) decide(c *gin.Context, approve bool) {
	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid approval request ID format")
		return
	}

	// Decision note is optional; an empty body is a decision without a note
	var req pricingapp.ApprovalDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.BadRequest(c, err.Error())
		return
	}

	staffID, err := getStaffID(c)
	if err != nil {
		h.Unauthorized(c, "Staff identity required")
		return
	}
	req.DecidedBy = staffID

	var approval *pricingapp.ApprovalRequestResponse
	if approve {
		approval, err = h.quoteService.Approve(c.Request.Context(), requestID, req)
	} else {
		approval, err = h.quoteService.Reject(c.Request.Context(), requestID, req)
	}
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, approval)
}
