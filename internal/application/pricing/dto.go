package pricing

import (
	"time"

	"github.com/clinic/backend/internal/domain/pricing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AddOnInput represents one add-on line in a quote request
type AddOnInput struct {
	ID        string          `json:"id" binding:"max=50"`
	Name      string          `json:"name" binding:"required,max=200"`
	UnitPrice decimal.Decimal `json:"unit_price" binding:"required"`
	Quantity  int             `json:"quantity" binding:"required,min=1"`
}

// QuoteRequest represents a request to price one purchase
type QuoteRequest struct {
	CustomerID  uuid.UUID    `json:"customer_id" binding:"required"`
	ServiceID   uuid.UUID    `json:"service_id" binding:"required"`
	PackageType string       `json:"package_type" binding:"omitempty,oneof=single package4 package8 package10"`
	Quantity    int          `json:"quantity" binding:"required,min=1"`
	AddOns      []AddOnInput `json:"add_ons" binding:"dive"`
	At          *time.Time   `json:"at"`
}

// CreateApprovalRequest represents a staff request for managerial review of a
// flagged quote
type CreateApprovalRequest struct {
	QuoteRequest
	StaffNote string `json:"staff_note" binding:"max=500"`
	// RequestedBy is filled from the authenticated staff context
	RequestedBy string `json:"-"`
}

// ApprovalDecisionRequest represents an approve or reject decision
type ApprovalDecisionRequest struct {
	Note string `json:"note" binding:"max=500"`
	// DecidedBy is filled from the authenticated staff context
	DecidedBy string `json:"-"`
}

// ApprovalListFilter represents filter options for listing approval requests
type ApprovalListFilter struct {
	Page        int    `form:"page"`
	PageSize    int    `form:"page_size"`
	Search      string `form:"search"`
	Status      string `form:"status" binding:"omitempty,oneof=pending approved rejected"`
	PendingOnly bool   `form:"pending_only"`
}

// ApprovalRequestResponse represents an approval request in API responses
type ApprovalRequestResponse struct {
	ID             uuid.UUID       `json:"id"`
	OrderID        *uuid.UUID      `json:"order_id,omitempty"`
	CustomerID     uuid.UUID       `json:"customer_id"`
	Reason         string          `json:"reason"`
	OriginalAmount decimal.Decimal `json:"original_amount"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	FinalAmount    decimal.Decimal `json:"final_amount"`
	RequestedBy    string          `json:"requested_by"`
	StaffNote      string          `json:"staff_note,omitempty"`
	Status         string          `json:"status"`
	DecidedBy      string          `json:"decided_by,omitempty"`
	DecisionNote   string          `json:"decision_note,omitempty"`
	DecidedAt      *time.Time      `json:"decided_at,omitempty"`
	Payload        string          `json:"payload"`
	CreatedAt      time.Time       `json:"created_at"`
}

// toDomainAddOns converts request add-ons into engine lines
func toDomainAddOns(addOns []AddOnInput) []pricing.AddOnLine {
	if len(addOns) == 0 {
		return nil
	}
	lines := make([]pricing.AddOnLine, len(addOns))
	for i, a := range addOns {
		lines[i] = pricing.AddOnLine{
			ID:        a.ID,
			Name:      a.Name,
			UnitPrice: a.UnitPrice,
			Quantity:  a.Quantity,
		}
	}
	return lines
}
