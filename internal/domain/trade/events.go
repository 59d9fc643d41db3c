package trade

import (
	"github.com/clinic/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constants
const (
	AggregateTypeOrder           = "Order"
	AggregateTypeApprovalRequest = "ApprovalRequest"
)

// Event type constants
const (
	EventTypeOrderCreated      = "OrderCreated"
	EventTypeOrderConfirmed    = "OrderConfirmed"
	EventTypeOrderCancelled    = "OrderCancelled"
	EventTypeApprovalRequested = "ApprovalRequested"
	EventTypeApprovalDecided   = "ApprovalDecided"
)

// OrderCreatedEvent is published when a new order is created
type OrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderID    uuid.UUID `json:"order_id"`
	OrderNo    string    `json:"order_no"`
	CustomerID uuid.UUID `json:"customer_id"`
}

// NewOrderCreatedEvent creates a new OrderCreatedEvent
func NewOrderCreatedEvent(order *Order) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCreated, AggregateTypeOrder, order.ID),
		OrderID:         order.ID,
		OrderNo:         order.OrderNo,
		CustomerID:      order.CustomerID,
	}
}

// OrderConfirmedEvent is published when an order is confirmed
type OrderConfirmedEvent struct {
	shared.BaseDomainEvent
	OrderID                 uuid.UUID `json:"order_id"`
	OrderNo                 string    `json:"order_no"`
	CustomerID              uuid.UUID `json:"customer_id"`
	BirthdayDiscountApplied bool      `json:"birthday_discount_applied"`
}

// NewOrderConfirmedEvent creates a new OrderConfirmedEvent
func NewOrderConfirmedEvent(order *Order) *OrderConfirmedEvent {
	return &OrderConfirmedEvent{
		BaseDomainEvent:         shared.NewBaseDomainEvent(EventTypeOrderConfirmed, AggregateTypeOrder, order.ID),
		OrderID:                 order.ID,
		OrderNo:                 order.OrderNo,
		CustomerID:              order.CustomerID,
		BirthdayDiscountApplied: order.BirthdayDiscountApplied,
	}
}

// OrderCancelledEvent is published when an order is cancelled
type OrderCancelledEvent struct {
	shared.BaseDomainEvent
	OrderID uuid.UUID `json:"order_id"`
	OrderNo string    `json:"order_no"`
}

// NewOrderCancelledEvent creates a new OrderCancelledEvent
func NewOrderCancelledEvent(order *Order) *OrderCancelledEvent {
	return &OrderCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCancelled, AggregateTypeOrder, order.ID),
		OrderID:         order.ID,
		OrderNo:         order.OrderNo,
	}
}

// ApprovalRequestedEvent is published when an approval request is submitted
type ApprovalRequestedEvent struct {
	shared.BaseDomainEvent
	RequestID   uuid.UUID `json:"request_id"`
	CustomerID  uuid.UUID `json:"customer_id"`
	RequestedBy string    `json:"requested_by"`
}

// NewApprovalRequestedEvent creates a new ApprovalRequestedEvent
func NewApprovalRequestedEvent(request *ApprovalRequest) *ApprovalRequestedEvent {
	return &ApprovalRequestedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeApprovalRequested, AggregateTypeApprovalRequest, request.ID),
		RequestID:       request.ID,
		CustomerID:      request.CustomerID,
		RequestedBy:     request.RequestedBy,
	}
}

// ApprovalDecidedEvent is published when an approval request is decided
type ApprovalDecidedEvent struct {
	shared.BaseDomainEvent
	RequestID uuid.UUID      `json:"request_id"`
	Status    ApprovalStatus `json:"status"`
	DecidedBy string         `json:"decided_by"`
}

// NewApprovalDecidedEvent creates a new ApprovalDecidedEvent
func NewApprovalDecidedEvent(request *ApprovalRequest) *ApprovalDecidedEvent {
	return &ApprovalDecidedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeApprovalDecided, AggregateTypeApprovalRequest, request.ID),
		RequestID:       request.ID,
		Status:          request.Status,
		DecidedBy:       request.DecidedBy,
	}
}
