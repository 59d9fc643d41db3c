package trade

import (
	"time"

	"github.com/clinic/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderAddOnItem represents one add-on line on an order
type OrderAddOnItem struct {
	ID        string          `json:"id" binding:"max=50"`
	Name      string          `json:"name" binding:"required,max=200"`
	UnitPrice decimal.Decimal `json:"unit_price" binding:"required"`
	Quantity  int             `json:"quantity" binding:"required,min=1"`
}

// CreateOrderRequest represents a request to create an order
type CreateOrderRequest struct {
	CustomerID  uuid.UUID        `json:"customer_id" binding:"required"`
	ServiceID   uuid.UUID        `json:"service_id" binding:"required"`
	PackageType string           `json:"package_type" binding:"omitempty,oneof=single package4 package8 package10"`
	Quantity    int              `json:"quantity" binding:"required,min=1"`
	AddOns      []OrderAddOnItem `json:"add_ons" binding:"dive"`
	CouponCode  string           `json:"coupon_code" binding:"max=50"`
	Notes       string           `json:"notes"`
	StaffNote   string           `json:"staff_note" binding:"max=500"`
	// RequestedBy is filled from the authenticated staff context
	RequestedBy string `json:"-"`
}

// OrderListFilter represents filter options for listing orders
type OrderListFilter struct {
	Page       int        `form:"page"`
	PageSize   int        `form:"page_size"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir"`
	Search     string     `form:"search"`
	Status     string     `form:"status" binding:"omitempty,oneof=draft confirmed cancelled"`
	Tier       string     `form:"tier" binding:"omitempty,oneof=single package4 package8 package10"`
	CustomerID *uuid.UUID `form:"customer_id"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID                      uuid.UUID       `json:"id"`
	OrderNo                 string          `json:"order_no"`
	CustomerID              uuid.UUID       `json:"customer_id"`
	ServiceID               uuid.UUID       `json:"service_id"`
	ServiceName             string          `json:"service_name"`
	Tier                    string          `json:"tier"`
	Quantity                int             `json:"quantity"`
	AddOns                  string          `json:"add_ons"`
	Breakdown               string          `json:"breakdown"`
	OriginalAmount          decimal.Decimal `json:"original_amount"`
	DiscountAmount          decimal.Decimal `json:"discount_amount"`
	FinalAmount             decimal.Decimal `json:"final_amount"`
	CouponCode              string          `json:"coupon_code,omitempty"`
	CouponDiscount          decimal.Decimal `json:"coupon_discount"`
	BirthdayDiscountApplied bool            `json:"birthday_discount_applied"`
	RequiresApproval        bool            `json:"requires_approval"`
	ApprovalGranted         bool            `json:"approval_granted"`
	ApprovalRequestID       *uuid.UUID      `json:"approval_request_id,omitempty"`
	Status                  string          `json:"status"`
	ConfirmedAt             *time.Time      `json:"confirmed_at,omitempty"`
	Notes                   string          `json:"notes"`
	CreatedAt               time.Time       `json:"created_at"`
	UpdatedAt               time.Time       `json:"updated_at"`
}

// ToOrderResponse converts a domain order to a response DTO
func ToOrderResponse(o *trade.Order) OrderResponse {
	return OrderResponse{
		ID:                      o.ID,
		OrderNo:                 o.OrderNo,
		CustomerID:              o.CustomerID,
		ServiceID:               o.ServiceID,
		ServiceName:             o.ServiceName,
		Tier:                    string(o.Tier),
		Quantity:                o.Quantity,
		AddOns:                  o.AddOnsJSON,
		Breakdown:               o.BreakdownJSON,
		OriginalAmount:          o.OriginalAmount,
		DiscountAmount:          o.DiscountAmount,
		FinalAmount:             o.FinalAmount,
		CouponCode:              o.CouponCode,
		CouponDiscount:          o.CouponDiscount,
		BirthdayDiscountApplied: o.BirthdayDiscountApplied,
		RequiresApproval:        o.RequiresApproval,
		ApprovalGranted:         o.ApprovalGranted,
		Status:                  string(o.Status),
		ConfirmedAt:             o.ConfirmedAt,
		Notes:                   o.Notes,
		CreatedAt:               o.CreatedAt,
		UpdatedAt:               o.UpdatedAt,
	}
}

// ToOrderResponses converts a slice of domain orders to response DTOs
func ToOrderResponses(orders []trade.Order) []OrderResponse {
	responses := make([]OrderResponse, len(orders))
	for i := range orders {
		responses[i] = ToOrderResponse(&orders[i])
	}
	return responses
}
