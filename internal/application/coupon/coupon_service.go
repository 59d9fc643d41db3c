package coupon

import (
	"context"

	"github.com/clinic/backend/internal/domain/coupon"
	"github.com/clinic/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CouponService handles coupon-related business operations
type CouponService struct {
	couponRepo     coupon.CouponRepository
	eventPublisher shared.EventPublisher
}

// NewCouponService creates a new CouponService
func NewCouponService(couponRepo coupon.CouponRepository) *CouponService {
	return &CouponService{
		couponRepo: couponRepo,
	}
}

// SetEventPublisher sets the event publisher for recorded domain events
func (s *CouponService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// publishDomainEvents publishes the coupon's recorded events after a save
func (s *CouponService) publishDomainEvents(ctx context.Context, c *coupon.Coupon) {
	if s.eventPublisher == nil {
		return
	}
	events := c.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	// Handler errors are logged by the event bus, not propagated
	_ = s.eventPublisher.Publish(ctx, events...)
	c.ClearDomainEvents()
}

// Create creates a new coupon
func (s *CouponService) Create(ctx context.Context, req CreateCouponRequest) (*CouponResponse, error) {
	exists, err := s.couponRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Coupon with this code already exists")
	}

	c, err := coupon.NewCoupon(req.Code, coupon.CouponKind(req.Kind), req.Value, req.ValidFrom, req.ValidUntil)
	if err != nil {
		return nil, err
	}

	if req.Description != "" {
		if err := c.Update(req.Description, c.ValidFrom, c.ValidUntil); err != nil {
			return nil, err
		}
	}
	if req.MaxRedemptions != nil {
		if err := c.SetMaxRedemptions(*req.MaxRedemptions); err != nil {
			return nil, err
		}
	}

	if err := s.couponRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	s.publishDomainEvents(ctx, c)

	response := ToCouponResponse(c)
	return &response, nil
}

// GetByID retrieves a coupon by ID
func (s *CouponService) GetByID(ctx context.Context, couponID uuid.UUID) (*CouponResponse, error) {
	c, err := s.couponRepo.FindByID(ctx, couponID)
	if err != nil {
		return nil, err
	}

	response := ToCouponResponse(c)
	return &response, nil
}

// GetByCode retrieves a coupon by code
func (s *CouponService) GetByCode(ctx context.Context, code string) (*CouponResponse, error) {
	c, err := s.couponRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	response := ToCouponResponse(c)
	return &response, nil
}

// List retrieves coupons with filtering and pagination
func (s *CouponService) List(ctx context.Context, filter CouponListFilter) ([]CouponResponse, int64, error) {
	domainFilter := buildCouponFilter(filter)

	coupons, err := s.couponRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.couponRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToCouponResponses(coupons), total, nil
}

// Update updates a coupon
func (s *CouponService) Update(ctx context.Context, couponID uuid.UUID, req UpdateCouponRequest) (*CouponResponse, error) {
	c, err := s.couponRepo.FindByID(ctx, couponID)
	if err != nil {
		return nil, err
	}

	if req.Description != nil || req.ValidFrom != nil || req.ValidUntil != nil {
		description := c.Description
		validFrom := c.ValidFrom
		validUntil := c.ValidUntil

		if req.Description != nil {
			description = *req.Description
		}
		if req.ValidFrom != nil {
			validFrom = *req.ValidFrom
		}
		if req.ValidUntil != nil {
			validUntil = *req.ValidUntil
		}

		if err := c.Update(description, validFrom, validUntil); err != nil {
			return nil, err
		}
	}

	if req.MaxRedemptions != nil {
		if err := c.SetMaxRedemptions(*req.MaxRedemptions); err != nil {
			return nil, err
		}
	}

	if err := s.couponRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	s.publishDomainEvents(ctx, c)

	response := ToCouponResponse(c)
	return &response, nil
}

// Activate activates a coupon
func (s *CouponService) Activate(ctx context.Context, couponID uuid.UUID) error {
	c, err := s.couponRepo.FindByID(ctx, couponID)
	if err != nil {
		return err
	}

	if err := c.Activate(); err != nil {
		return err
	}

	if err := s.couponRepo.Save(ctx, c); err != nil {
		return err
	}
	s.publishDomainEvents(ctx, c)
	return nil
}

// Deactivate deactivates a coupon
func (s *CouponService) Deactivate(ctx context.Context, couponID uuid.UUID) error {
	c, err := s.couponRepo.FindByID(ctx, couponID)
	if err != nil {
		return err
	}

	if err := c.Deactivate(); err != nil {
		return err
	}

	if err := s.couponRepo.Save(ctx, c); err != nil {
		return err
	}
	s.publishDomainEvents(ctx, c)
	return nil
}

// Delete deletes a coupon
func (s *CouponService) Delete(ctx context.Context, couponID uuid.UUID) error {
	return s.couponRepo.Delete(ctx, couponID)
}

func buildCouponFilter(filter CouponListFilter) shared.Filter {
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
	if filter.Kind != "" {
		domainFilter.Filters["kind"] = filter.Kind
	}

	return domainFilter
}
