package partner

import (
	"github.com/clinic/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeCustomer = "Customer"

// Event type constants
const (
	EventTypeCustomerCreated              = "CustomerCreated"
	EventTypeCustomerUpdated              = "CustomerUpdated"
	EventTypeCustomerDiscountClassChanged = "CustomerDiscountClassChanged"
	EventTypeCustomerBirthdayUseRecorded  = "CustomerBirthdayUseRecorded"
)

// CustomerCreatedEvent is published when a new customer is created
type CustomerCreatedEvent struct {
	shared.BaseDomainEvent
	CustomerID uuid.UUID `json:"customer_id"`
	Code       string    `json:"code"`
	Name       string    `json:"name"`
}

// NewCustomerCreatedEvent creates a new CustomerCreatedEvent
func NewCustomerCreatedEvent(customer *Customer) *CustomerCreatedEvent {
	return &CustomerCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerCreated, AggregateTypeCustomer, customer.ID),
		CustomerID:      customer.ID,
		Code:            customer.Code,
		Name:            customer.Name,
	}
}

// CustomerUpdatedEvent is published when a customer is updated
type CustomerUpdatedEvent struct {
	shared.BaseDomainEvent
	CustomerID uuid.UUID `json:"customer_id"`
	Code       string    `json:"code"`
	Name       string    `json:"name"`
}

// NewCustomerUpdatedEvent creates a new CustomerUpdatedEvent
func NewCustomerUpdatedEvent(customer *Customer) *CustomerUpdatedEvent {
	return &CustomerUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerUpdated, AggregateTypeCustomer, customer.ID),
		CustomerID:      customer.ID,
		Code:            customer.Code,
		Name:            customer.Name,
	}
}

// CustomerDiscountClassChangedEvent is published when a customer's discount class changes
type CustomerDiscountClassChangedEvent struct {
	shared.BaseDomainEvent
	CustomerID uuid.UUID     `json:"customer_id"`
	OldClass   DiscountClass `json:"old_class"`
	NewClass   DiscountClass `json:"new_class"`
}

// NewCustomerDiscountClassChangedEvent creates a new CustomerDiscountClassChangedEvent
func NewCustomerDiscountClassChangedEvent(customer *Customer, oldClass, newClass DiscountClass) *CustomerDiscountClassChangedEvent {
	return &CustomerDiscountClassChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerDiscountClassChanged, AggregateTypeCustomer, customer.ID),
		CustomerID:      customer.ID,
		OldClass:        oldClass,
		NewClass:        newClass,
	}
}

// CustomerBirthdayUseRecordedEvent is published when a birthday-discounted use is recorded
type CustomerBirthdayUseRecordedEvent struct {
	shared.BaseDomainEvent
	CustomerID uuid.UUID `json:"customer_id"`
	Year       int       `json:"year"`
	UsageCount int       `json:"usage_count"`
}

// NewCustomerBirthdayUseRecordedEvent creates a new CustomerBirthdayUseRecordedEvent
func NewCustomerBirthdayUseRecordedEvent(customer *Customer) *CustomerBirthdayUseRecordedEvent {
	return &CustomerBirthdayUseRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerBirthdayUseRecorded, AggregateTypeCustomer, customer.ID),
		CustomerID:      customer.ID,
		Year:            customer.BirthdayUsageYear,
		UsageCount:      customer.BirthdayUsageCount,
	}
}
