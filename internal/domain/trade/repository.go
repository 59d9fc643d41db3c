package trade

import (
	"context"
	"time"

	"github.com/clinic/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RevenueTotals aggregates confirmed-order money over a period
type RevenueTotals struct {
	OrderCount     int64
	GrossAmount    decimal.Decimal
	DiscountAmount decimal.Decimal
	NetAmount      decimal.Decimal
}

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// FindByID finds an order by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByOrderNo finds an order by its order number
	FindByOrderNo(ctx context.Context, orderNo string) (*Order, error)

	// FindAll finds all orders matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)

	// FindByCustomer finds orders for a customer
	FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]Order, error)

	// Save creates or updates an order
	Save(ctx context.Context, order *Order) error

	// Delete deletes an order
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts orders matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// RevenueBetween aggregates confirmed orders in the window
	RevenueBetween(ctx context.Context, from, to time.Time) (*RevenueTotals, error)

	// RevenueByTierBetween aggregates confirmed orders per package tier
	RevenueByTierBetween(ctx context.Context, from, to time.Time) (map[string]RevenueTotals, error)
}

// ApprovalRequestRepository defines the interface for approval request persistence
type ApprovalRequestRepository interface {
	// FindByID finds an approval request by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*ApprovalRequest, error)

	// FindAll finds all approval requests matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]ApprovalRequest, error)

	// FindPending finds requests awaiting a decision
	FindPending(ctx context.Context, filter shared.Filter) ([]ApprovalRequest, error)

	// FindByCustomer finds requests raised for a customer
	FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]ApprovalRequest, error)

	// Save creates or updates an approval request
	Save(ctx context.Context, request *ApprovalRequest) error

	// Count counts approval requests matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
