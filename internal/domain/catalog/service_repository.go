package catalog

import (
	"context"

	"github.com/clinic/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ServiceRepository defines the interface for service persistence
type ServiceRepository interface {
	// FindByID finds a service by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Service, error)

	// FindByCode finds a service by its code
	FindByCode(ctx context.Context, code string) (*Service, error)

	// FindAll finds all services matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Service, error)

	// FindActive finds all active services
	FindActive(ctx context.Context, filter shared.Filter) ([]Service, error)

	// Save creates or updates a service
	Save(ctx context.Context, service *Service) error

	// Delete deletes a service
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts services matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsByCode checks if a service with the given code exists
	ExistsByCode(ctx context.Context, code string) (bool, error)
}
