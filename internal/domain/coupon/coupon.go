package coupon

import (
	"strings"
	"time"

	"github.com/clinic/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CouponStatus represents the status of a coupon
type CouponStatus string

const (
	CouponStatusActive   CouponStatus = "active"
	CouponStatusInactive CouponStatus = "inactive"
)

// CouponKind determines how the coupon value is applied
type CouponKind string

const (
	KindAmountOff  CouponKind = "amount_off"
	KindPercentOff CouponKind = "percent_off"
)

var oneHundred = decimal.NewFromInt(100)

// Coupon represents a front-desk promotional coupon. Coupons are an
// order-entry facility handled alongside the discount engine, never inside it.
type Coupon struct {
	shared.BaseAggregateRoot
	Code        string     `gorm:"type:varchar(50);not null;uniqueIndex"`
	Description string     `gorm:"type:varchar(500)"`
	Kind        CouponKind `gorm:"type:varchar(20);not null"`
	// Value is a currency amount for amount_off, a percentage (0-100] for
	// percent_off.
	Value      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ValidFrom  time.Time       `gorm:"not null"`
	ValidUntil time.Time       `gorm:"not null"`
	Status     CouponStatus    `gorm:"type:varchar(20);not null;default:'active'"`
	// MaxRedemptions of zero means unlimited.
	MaxRedemptions  int `gorm:"not null;default:0"`
	RedemptionCount int `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Coupon) TableName() string {
	return "coupons"
}

// NewCoupon creates a new coupon with required fields
func NewCoupon(code string, kind CouponKind, value decimal.Decimal, validFrom, validUntil time.Time) (*Coupon, error) {
	if err := validateCouponCode(code); err != nil {
		return nil, err
	}
	if err := validateKindValue(kind, value); err != nil {
		return nil, err
	}
	if !validUntil.After(validFrom) {
		return nil, shared.NewDomainError("INVALID_VALIDITY", "Validity window must end after it starts")
	}

	coupon := &Coupon{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(code),
		Kind:              kind,
		Value:             value,
		ValidFrom:         validFrom,
		ValidUntil:        validUntil,
		Status:            CouponStatusActive,
	}

	coupon.AddDomainEvent(NewCouponCreatedEvent(coupon))

	return coupon, nil
}

// Update updates the coupon's description and validity window
func (c *Coupon) Update(description string, validFrom, validUntil time.Time) error {
	if len(description) > 500 {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot exceed 500 characters")
	}
	if !validUntil.After(validFrom) {
		return shared.NewDomainError("INVALID_VALIDITY", "Validity window must end after it starts")
	}

	c.Description = description
	c.ValidFrom = validFrom
	c.ValidUntil = validUntil
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetMaxRedemptions limits how often the coupon can be redeemed. Zero removes the limit.
func (c *Coupon) SetMaxRedemptions(max int) error {
	if max < 0 {
		return shared.NewDomainError("INVALID_LIMIT", "Redemption limit cannot be negative")
	}

	c.MaxRedemptions = max
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// IsValidAt reports whether the coupon can be redeemed at the given time
func (c *Coupon) IsValidAt(at time.Time) bool {
	if c.Status != CouponStatusActive {
		return false
	}
	if at.Before(c.ValidFrom) || at.After(c.ValidUntil) {
		return false
	}
	if c.MaxRedemptions > 0 && c.RedemptionCount >= c.MaxRedemptions {
		return false
	}
	return true
}

// Redeem records one redemption after checking validity
func (c *Coupon) Redeem(at time.Time) error {
	if !c.IsValidAt(at) {
		return shared.NewDomainError("COUPON_NOT_REDEEMABLE", "Coupon is expired, inactive, or fully redeemed")
	}

	c.RedemptionCount++
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewCouponRedeemedEvent(c))

	return nil
}

// DiscountOn returns the coupon's value against an order amount, capped at the
// amount itself so the result is never negative.
func (c *Coupon) DiscountOn(amount decimal.Decimal) decimal.Decimal {
	var discount decimal.Decimal
	switch c.Kind {
	case KindPercentOff:
		discount = amount.Mul(c.Value).Div(oneHundred).Round(0)
	default:
		discount = c.Value
	}
	if discount.GreaterThan(amount) {
		return amount
	}
	return discount
}

// Activate activates the coupon
func (c *Coupon) Activate() error {
	if c.Status == CouponStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Coupon is already active")
	}

	c.Status = CouponStatusActive
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// Deactivate deactivates the coupon
func (c *Coupon) Deactivate() error {
	if c.Status == CouponStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Coupon is already inactive")
	}

	c.Status = CouponStatusInactive
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// Validation functions

func validateCouponCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Coupon code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Coupon code cannot exceed 50 characters")
	}
	for _, r := range code {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return shared.NewDomainError("INVALID_CODE", "Coupon code can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}

func validateKindValue(kind CouponKind, value decimal.Decimal) error {
	switch kind {
	case KindAmountOff:
		if !value.GreaterThan(decimal.Zero) {
			return shared.NewDomainError("INVALID_VALUE", "Amount off must be positive")
		}
	case KindPercentOff:
		if !value.GreaterThan(decimal.Zero) || value.GreaterThan(oneHundred) {
			return shared.NewDomainError("INVALID_VALUE", "Percent off must be between 0 and 100")
		}
	default:
		return shared.NewDomainError("INVALID_KIND", "Invalid coupon kind")
	}
	return nil
}
