package catalog

import (
	"github.com/clinic/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeService = "Service"

// Event type constants
const (
	EventTypeServiceCreated      = "ServiceCreated"
	EventTypeServiceUpdated      = "ServiceUpdated"
	EventTypeServicePriceChanged = "ServicePriceChanged"
)

// ServiceCreatedEvent is published when a new service is created
type ServiceCreatedEvent struct {
	shared.BaseDomainEvent
	ServiceID uuid.UUID       `json:"service_id"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Category  ServiceCategory `json:"category"`
}

// NewServiceCreatedEvent creates a new ServiceCreatedEvent
func NewServiceCreatedEvent(service *Service) *ServiceCreatedEvent {
	return &ServiceCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeServiceCreated, AggregateTypeService, service.ID),
		ServiceID:       service.ID,
		Code:            service.Code,
		Name:            service.Name,
		Category:        service.Category,
	}
}

// ServiceUpdatedEvent is published when a service is updated
type ServiceUpdatedEvent struct {
	shared.BaseDomainEvent
	ServiceID uuid.UUID `json:"service_id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
}

// NewServiceUpdatedEvent creates a new ServiceUpdatedEvent
func NewServiceUpdatedEvent(service *Service) *ServiceUpdatedEvent {
	return &ServiceUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeServiceUpdated, AggregateTypeService, service.ID),
		ServiceID:       service.ID,
		Code:            service.Code,
		Name:            service.Name,
	}
}

// ServicePriceChangedEvent is published when a service's base price changes
type ServicePriceChangedEvent struct {
	shared.BaseDomainEvent
	ServiceID uuid.UUID       `json:"service_id"`
	Code      string          `json:"code"`
	OldPrice  decimal.Decimal `json:"old_price"`
	NewPrice  decimal.Decimal `json:"new_price"`
}

// NewServicePriceChangedEvent creates a new ServicePriceChangedEvent
func NewServicePriceChangedEvent(service *Service, oldPrice, newPrice decimal.Decimal) *ServicePriceChangedEvent {
	return &ServicePriceChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeServicePriceChanged, AggregateTypeService, service.ID),
		ServiceID:       service.ID,
		Code:            service.Code,
		OldPrice:        oldPrice,
		NewPrice:        newPrice,
	}
}
