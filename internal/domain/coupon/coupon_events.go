package coupon

import (
	"github.com/clinic/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeCoupon = "Coupon"

// Event type constants
const (
	EventTypeCouponCreated  = "CouponCreated"
	EventTypeCouponRedeemed = "CouponRedeemed"
)

// CouponCreatedEvent is published when a new coupon is created
type CouponCreatedEvent struct {
	shared.BaseDomainEvent
	CouponID uuid.UUID  `json:"coupon_id"`
	Code     string     `json:"code"`
	Kind     CouponKind `json:"kind"`
}

// NewCouponCreatedEvent creates a new CouponCreatedEvent
func NewCouponCreatedEvent(coupon *Coupon) *CouponCreatedEvent {
	return &CouponCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCouponCreated, AggregateTypeCoupon, coupon.ID),
		CouponID:        coupon.ID,
		Code:            coupon.Code,
		Kind:            coupon.Kind,
	}
}

// CouponRedeemedEvent is published when a coupon is redeemed
type CouponRedeemedEvent struct {
	shared.BaseDomainEvent
	CouponID        uuid.UUID `json:"coupon_id"`
	Code            string    `json:"code"`
	RedemptionCount int       `json:"redemption_count"`
}

// NewCouponRedeemedEvent creates a new CouponRedeemedEvent
func NewCouponRedeemedEvent(coupon *Coupon) *CouponRedeemedEvent {
	return &CouponRedeemedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCouponRedeemed, AggregateTypeCoupon, coupon.ID),
		CouponID:        coupon.ID,
		Code:            coupon.Code,
		RedemptionCount: coupon.RedemptionCount,
	}
}
