package coupon

import (
	"time"

	"github.com/clinic/backend/internal/domain/coupon"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateCouponRequest represents a request to create a new coupon
type CreateCouponRequest struct {
	Code           string          `json:"code" binding:"required,min=1,max=50"`
	Description    string          `json:"description" binding:"max=500"`
	Kind           string          `json:"kind" binding:"required,oneof=amount_off percent_off"`
	Value          decimal.Decimal `json:"value" binding:"required"`
	ValidFrom      time.Time       `json:"valid_from" binding:"required"`
	ValidUntil     time.Time       `json:"valid_until" binding:"required"`
	MaxRedemptions *int            `json:"max_redemptions"`
}

// UpdateCouponRequest represents a request to update a coupon
type UpdateCouponRequest struct {
	Description    *string    `json:"description" binding:"omitempty,max=500"`
	ValidFrom      *time.Time `json:"valid_from"`
	ValidUntil     *time.Time `json:"valid_until"`
	MaxRedemptions *int       `json:"max_redemptions"`
}

// CouponListFilter represents filter options for listing coupons
type CouponListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=active inactive"`
	Kind     string `form:"kind" binding:"omitempty,oneof=amount_off percent_off"`
}

// CouponResponse represents a coupon in API responses
type CouponResponse struct {
	ID              uuid.UUID       `json:"id"`
	Code            string          `json:"code"`
	Description     string          `json:"description"`
	Kind            string          `json:"kind"`
	Value           decimal.Decimal `json:"value"`
	ValidFrom       time.Time       `json:"valid_from"`
	ValidUntil      time.Time       `json:"valid_until"`
	Status          string          `json:"status"`
	MaxRedemptions  int             `json:"max_redemptions"`
	RedemptionCount int             `json:"redemption_count"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ToCouponResponse converts a domain coupon to a response DTO
func ToCouponResponse(c *coupon.Coupon) CouponResponse {
	return CouponResponse{
		ID:              c.ID,
		Code:            c.Code,
		Description:     c.Description,
		Kind:            string(c.Kind),
		Value:           c.Value,
		ValidFrom:       c.ValidFrom,
		ValidUntil:      c.ValidUntil,
		Status:          string(c.Status),
		MaxRedemptions:  c.MaxRedemptions,
		RedemptionCount: c.RedemptionCount,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

// ToCouponResponses converts a slice of domain coupons to response DTOs
func ToCouponResponses(coupons []coupon.Coupon) []CouponResponse {
	responses := make([]CouponResponse, len(coupons))
	for i := range coupons {
		responses[i] = ToCouponResponse(&coupons[i])
	}
	return responses
}
