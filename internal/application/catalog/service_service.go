package catalog

import (
	"context"

	"github.com/clinic/backend/internal/domain/catalog"
	"github.com/clinic/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ServiceService handles catalog service operations
type ServiceService struct {
	serviceRepo    catalog.ServiceRepository
	eventPublisher shared.EventPublisher
}

// NewServiceService creates a new ServiceService
func NewServiceService(serviceRepo catalog.ServiceRepository) *ServiceService {
	return &ServiceService{
		serviceRepo: serviceRepo,
	}
}

// SetEventPublisher sets the event publisher for recorded domain events
func (s *ServiceService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// publishDomainEvents publishes the service's recorded events after a save
func (s *ServiceService) publishDomainEvents(ctx context.Context, service *catalog.Service) {
	if s.eventPublisher == nil {
		return
	}
	events := service.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	// Handler errors are logged by the event bus, not propagated
	_ = s.eventPublisher.Publish(ctx, events...)
	service.ClearDomainEvents()
}

// Create creates a new service
func (s *ServiceService) Create(ctx context.Context, req CreateServiceRequest) (*ServiceResponse, error) {
	exists, err := s.serviceRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Service with this code already exists")
	}

	service, err := catalog.NewService(req.Code, req.Name, catalog.ServiceCategory(req.Category), req.BasePrice, req.DurationMinutes)
	if err != nil {
		return nil, err
	}

	if req.Package4Price != nil || req.Package8Price != nil || req.Package10Price != nil {
		if err := service.SetPackagePrices(req.Package4Price, req.Package8Price, req.Package10Price); err != nil {
			return nil, err
		}
	}

	service.SetAddOnPermissions(req.AllowVitaminShot, req.AllowExtendedMonitoring)

	if req.Notes != "" {
		service.SetNotes(req.Notes)
	}
	if req.SortOrder != nil {
		service.SetSortOrder(*req.SortOrder)
	}

	if err := s.serviceRepo.Save(ctx, service); err != nil {
		return nil, err
	}
	s.publishDomainEvents(ctx, service)

	response := ToServiceResponse(service)
	return &response, nil
}

// GetByID retrieves a service by ID
func (s *ServiceService) GetByID(ctx context.Context, serviceID uuid.UUID) (*ServiceResponse, error) {
	service, err := s.serviceRepo.FindByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	response := ToServiceResponse(service)
	return &response, nil
}

// GetByCode retrieves a service by code
func (s *ServiceService) GetByCode(ctx context.Context, code string) (*ServiceResponse, error) {
	service, err := s.serviceRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	response := ToServiceResponse(service)
	return &response, nil
}

// List retrieves services with filtering and pagination
func (s *ServiceService) List(ctx context.Context, filter ServiceListFilter) ([]ServiceResponse, int64, error) {
	domainFilter := buildServiceFilter(filter)

	var (
		services []catalog.Service
		err      error
	)
	if filter.ActiveOnly {
		services, err = s.serviceRepo.FindActive(ctx, domainFilter)
	} else {
		services, err = s.serviceRepo.FindAll(ctx, domainFilter)
	}
	if err != nil {
		return nil, 0, err
	}

	total, err := s.serviceRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToServiceResponses(services), total, nil
}

// Update updates a service
func (s *ServiceService) Update(ctx context.Context, serviceID uuid.UUID, req UpdateServiceRequest) (*ServiceResponse, error) {
	service, err := s.serviceRepo.FindByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil || req.Category != nil || req.DurationMinutes != nil {
		name := service.Name
		category := service.Category
		duration := service.DurationMinutes

		if req.Name != nil {
			name = *req.Name
		}
		if req.Category != nil {
			category = catalog.ServiceCategory(*req.Category)
		}
		if req.DurationMinutes != nil {
			duration = *req.DurationMinutes
		}

		if err := service.Update(name, category, duration); err != nil {
			return nil, err
		}
	}

	if req.BasePrice != nil {
		if err := service.SetBasePrice(*req.BasePrice); err != nil {
			return nil, err
		}
	}

	if req.Package4Price != nil || req.Package8Price != nil || req.Package10Price != nil {
		p4 := service.Package4Price
		p8 := service.Package8Price
		p10 := service.Package10Price

		if req.Package4Price != nil {
			p4 = req.Package4Price
		}
		if req.Package8Price != nil {
			p8 = req.Package8Price
		}
		if req.Package10Price != nil {
			p10 = req.Package10Price
		}

		if err := service.SetPackagePrices(p4, p8, p10); err != nil {
			return nil, err
		}
	}

	if req.AllowVitaminShot != nil || req.AllowExtendedMonitoring != nil {
		vitaminShot := service.AllowVitaminShot
		extendedMonitoring := service.AllowExtendedMonitoring

		if req.AllowVitaminShot != nil {
			vitaminShot = *req.AllowVitaminShot
		}
		if req.AllowExtendedMonitoring != nil {
			extendedMonitoring = *req.AllowExtendedMonitoring
		}

		service.SetAddOnPermissions(vitaminShot, extendedMonitoring)
	}

	if req.Notes != nil {
		service.SetNotes(*req.Notes)
	}
	if req.SortOrder != nil {
		service.SetSortOrder(*req.SortOrder)
	}

	if err := s.serviceRepo.Save(ctx, service); err != nil {
		return nil, err
	}
	s.publishDomainEvents(ctx, service)

	response := ToServiceResponse(service)
	return &response, nil
}

// Activate activates a service
func (s *ServiceService) Activate(ctx context.Context, serviceID uuid.UUID) error {
	service, err := s.serviceRepo.FindByID(ctx, serviceID)
	if err != nil {
		return err
	}

	if err := service.Activate(); err != nil {
		return err
	}

	if err := s.serviceRepo.Save(ctx, service); err != nil {
		return err
	}
	s.publishDomainEvents(ctx, service)
	return nil
}

// Deactivate deactivates a service
func (s *ServiceService) Deactivate(ctx context.Context, serviceID uuid.UUID) error {
	service, err := s.serviceRepo.FindByID(ctx, serviceID)
	if err != nil {
		return err
	}

	if err := service.Deactivate(); err != nil {
		return err
	}

	if err := s.serviceRepo.Save(ctx, service); err != nil {
		return err
	}
	s.publishDomainEvents(ctx, service)
	return nil
}

// Delete deletes a service
func (s *ServiceService) Delete(ctx context.Context, serviceID uuid.UUID) error {
	return s.serviceRepo.Delete(ctx, serviceID)
}

func buildServiceFilter(filter ServiceListFilter) shared.Filter {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]any),
	}

	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.Category != "" {
		domainFilter.Filters["category"] = filter.Category
	}

	return domainFilter
}
