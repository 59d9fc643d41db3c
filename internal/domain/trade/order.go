package trade

import (
	"strings"
	"time"

	"github.com/clinic/backend/internal/domain/pricing"
	"github.com/clinic/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the status of an order
type OrderStatus string

const (
	OrderStatusDraft     OrderStatus = "draft"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order represents one priced purchase of a service for a customer. The money
// fields are a snapshot taken from the pricing engine at creation time; they
// are never recomputed from live catalog data afterwards.
type Order struct {
	shared.BaseAggregateRoot
	OrderNo     string              `gorm:"type:varchar(50);not null;uniqueIndex"`
	CustomerID  uuid.UUID           `gorm:"type:uuid;not null;index"`
	ServiceID   uuid.UUID           `gorm:"type:uuid;not null;index"`
	ServiceName string              `gorm:"type:varchar(200);not null"`
	Tier        pricing.PackageType `gorm:"type:varchar(20);not null"`
	Quantity    int                 `gorm:"not null"`
	// AddOnsJSON and BreakdownJSON hold the serialized engine snapshot.
	AddOnsJSON     string          `gorm:"type:text"`
	BreakdownJSON  string          `gorm:"type:text"`
	OriginalAmount decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	FinalAmount    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	// Coupon redemption applied on top of the engine result at order entry.
	CouponCode     string          `gorm:"type:varchar(50)"`
	CouponDiscount decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	// BirthdayDiscountApplied marks orders that must bump the customer's
	// annual counter on completion.
	BirthdayDiscountApplied bool        `gorm:"not null;default:false"`
	RequiresApproval        bool        `gorm:"not null;default:false"`
	ApprovalGranted         bool        `gorm:"not null;default:false"`
	Status                  OrderStatus `gorm:"type:varchar(20);not null;default:'draft'"`
	ConfirmedAt             *time.Time
	Notes                   string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates a draft order for a customer and service
func NewOrder(orderNo string, customerID, serviceID uuid.UUID, serviceName string, tier pricing.PackageType, quantity int) (*Order, error) {
	if strings.TrimSpace(orderNo) == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NO", "Order number cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer is required")
	}
	if serviceID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SERVICE", "Service is required")
	}
	if quantity < 1 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}

	order := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNo:           orderNo,
		CustomerID:        customerID,
		ServiceID:         serviceID,
		ServiceName:       serviceName,
		Tier:              tier,
		Quantity:          quantity,
		Status:            OrderStatusDraft,
	}

	order.AddDomainEvent(NewOrderCreatedEvent(order))

	return order, nil
}

// ApplyPricing snapshots an engine result onto the order. Draft only.
func (o *Order) ApplyPricing(original, discount, final decimal.Decimal, breakdownJSON, addOnsJSON string, requiresApproval, birthdayApplied bool) error {
	if o.Status != OrderStatusDraft {
		return shared.NewDomainError("ORDER_NOT_DRAFT", "Pricing can only be applied to a draft order")
	}

	o.OriginalAmount = original
	o.DiscountAmount = discount
	o.FinalAmount = final
	o.BreakdownJSON = breakdownJSON
	o.AddOnsJSON = addOnsJSON
	o.RequiresApproval = requiresApproval
	o.BirthdayDiscountApplied = birthdayApplied
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// ApplyCoupon records a coupon redemption against the final amount.
// The deduction is capped so the final amount never goes negative.
func (o *Order) ApplyCoupon(code string, amount decimal.Decimal) error {
	if o.Status != OrderStatusDraft {
		return shared.NewDomainError("ORDER_NOT_DRAFT", "Coupons can only be applied to a draft order")
	}
	if o.CouponCode != "" {
		return shared.NewDomainError("COUPON_ALREADY_APPLIED", "Order already carries a coupon")
	}
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_VALUE", "Coupon amount cannot be negative")
	}

	if amount.GreaterThan(o.FinalAmount) {
		amount = o.FinalAmount
	}
	o.CouponCode = code
	o.CouponDiscount = amount
	o.FinalAmount = o.FinalAmount.Sub(amount)
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// GrantApproval marks the order's pending managerial approval as granted
func (o *Order) GrantApproval() error {
	if !o.RequiresApproval {
		return shared.NewDomainError("APPROVAL_NOT_REQUIRED", "Order does not require approval")
	}

	o.ApprovalGranted = true
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// Confirm finalizes the order. Orders flagged for approval must have it
// granted first.
func (o *Order) Confirm(at time.Time) error {
	if o.Status != OrderStatusDraft {
		return shared.NewDomainError("ORDER_NOT_DRAFT", "Only draft orders can be confirmed")
	}
	if o.RequiresApproval && !o.ApprovalGranted {
		return shared.NewDomainError("APPROVAL_PENDING", "Order requires managerial approval before confirmation")
	}

	o.Status = OrderStatusConfirmed
	o.ConfirmedAt = &at
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderConfirmedEvent(o))

	return nil
}

// Cancel cancels a draft or confirmed order
func (o *Order) Cancel() error {
	if o.Status == OrderStatusCancelled {
		return shared.NewDomainError("ALREADY_CANCELLED", "Order is already cancelled")
	}

	o.Status = OrderStatusCancelled
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderCancelledEvent(o))

	return nil
}

// SetNotes sets free-form notes
func (o *Order) SetNotes(notes string) {
	o.Notes = notes
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
}

// IsConfirmed returns true if the order has been confirmed
func (o *Order) IsConfirmed() bool {
	return o.Status == OrderStatusConfirmed
}
