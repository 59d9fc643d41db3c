package trade

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/clinic/backend/internal/domain/catalog"
	"github.com/clinic/backend/internal/domain/coupon"
	"github.com/clinic/backend/internal/domain/partner"
	"github.com/clinic/backend/internal/domain/pricing"
	"github.com/clinic/backend/internal/domain/shared"
	"github.com/clinic/backend/internal/domain/trade"
	"github.com/google/uuid"
)

// OrderService handles order business operations. Pricing is computed once at
// creation and stored on the order as an immutable snapshot.
type OrderService struct {
	engine         *pricing.Engine
	orderRepo      trade.OrderRepository
	approvalRepo   trade.ApprovalRequestRepository
	customerRepo   partner.CustomerRepository
	serviceRepo    catalog.ServiceRepository
	couponRepo     coupon.CouponRepository
	eventPublisher shared.EventPublisher
}

// NewOrderService creates a new OrderService
func NewOrderService(
	engine *pricing.Engine,
	orderRepo trade.OrderRepository,
	approvalRepo trade.ApprovalRequestRepository,
	customerRepo partner.CustomerRepository,
	serviceRepo catalog.ServiceRepository,
	couponRepo coupon.CouponRepository,
) *OrderService {
	return &OrderService{
		engine:       engine,
		orderRepo:    orderRepo,
		approvalRepo: approvalRepo,
		customerRepo: customerRepo,
		serviceRepo:  serviceRepo,
		couponRepo:   couponRepo,
	}
}

// SetEventPublisher sets the event publisher for recorded domain events
func (s *OrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// publishDomainEvents publishes an aggregate's recorded events after a save.
// Confirmation touches the order, the customer and the coupon, so the helper
// takes the aggregate interface rather than a concrete type.
func (s *OrderService) publishDomainEvents(ctx context.Context, aggregate shared.AggregateRoot) {
	if s.eventPublisher == nil {
		return
	}
	events := aggregate.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	// Handler errors are logged by the event bus, not propagated
	_ = s.eventPublisher.Publish(ctx, events...)
	aggregate.ClearDomainEvents()
}

// Create prices the purchase and persists a draft order carrying the full
// pricing snapshot. A flagged quote additionally files an approval request
// attached to the order.
func (s *OrderService) Create(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}
	service, err := s.serviceRepo.FindByID(ctx, req.ServiceID)
	if err != nil {
		return nil, err
	}
	if !service.IsActive() {
		return nil, shared.NewDomainError("SERVICE_INACTIVE", "Service is not available for sale")
	}

	tier := pricing.PackageType(req.PackageType)
	if req.PackageType == "" {
		tier = pricing.PackageSingle
	}

	input := pricing.CalculationInput{
		Service:     service,
		Customer:    customer,
		PackageType: tier,
		Quantity:    req.Quantity,
		AddOns:      toAddOnLines(req.AddOns),
	}

	result, err := s.engine.Calculate(input)
	if err != nil {
		return nil, err
	}

	order, err := trade.NewOrder(generateOrderNo(), customer.ID, service.ID, service.Name, tier, req.Quantity)
	if err != nil {
		return nil, err
	}

	breakdownJSON, err := json.Marshal(result.Breakdown)
	if err != nil {
		return nil, err
	}
	addOnsJSON, err := json.Marshal(input.AddOns)
	if err != nil {
		return nil, err
	}

	birthdayApplied := result.Breakdown.Birthday.IsPositive()
	err = order.ApplyPricing(
		result.OriginalPrice, result.TotalDiscount, result.FinalPrice,
		string(breakdownJSON), string(addOnsJSON),
		result.RequiresApproval, birthdayApplied,
	)
	if err != nil {
		return nil, err
	}

	if req.CouponCode != "" {
		c, err := s.couponRepo.FindByCode(ctx, req.CouponCode)
		if err != nil {
			return nil, err
		}
		if !c.IsValidAt(time.Now()) {
			return nil, shared.NewDomainError("COUPON_INVALID", "Coupon is not currently valid")
		}
		if err := order.ApplyCoupon(c.Code, c.DiscountOn(order.FinalAmount)); err != nil {
			return nil, err
		}
	}

	if req.Notes != "" {
		order.SetNotes(req.Notes)
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	s.publishDomainEvents(ctx, order)

	response := ToOrderResponse(order)

	if result.RequiresApproval {
		request, err := s.fileApproval(ctx, input, result, order, req)
		if err != nil {
			return nil, err
		}
		response.ApprovalRequestID = &request.ID
	}

	return &response, nil
}

// GetByID retrieves an order by ID
func (s *OrderService) GetByID(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// GetByOrderNo retrieves an order by order number
func (s *OrderService) GetByOrderNo(ctx context.Context, orderNo string) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByOrderNo(ctx, orderNo)
	if err != nil {
		return nil, err
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// List retrieves orders with filtering and pagination
func (s *OrderService) List(ctx context.Context, filter OrderListFilter) ([]OrderResponse, int64, error) {
	domainFilter := buildOrderFilter(filter)

	var (
		orders []trade.Order
		err    error
	)
	if filter.CustomerID != nil {
		orders, err = s.orderRepo.FindByCustomer(ctx, *filter.CustomerID, domainFilter)
	} else {
		orders, err = s.orderRepo.FindAll(ctx, domainFilter)
	}
	if err != nil {
		return nil, 0, err
	}

	total, err := s.orderRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToOrderResponses(orders), total, nil
}

// Confirm finalizes a draft order. Confirmation is when side effects land:
// the birthday counter advances and the coupon redemption is recorded.
func (s *OrderService) Confirm(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := order.Confirm(now); err != nil {
		return nil, err
	}

	if order.BirthdayDiscountApplied {
		customer, err := s.customerRepo.FindByID(ctx, order.CustomerID)
		if err != nil {
			return nil, err
		}
		customer.RecordBirthdayUse(now.Year())
		if err := s.customerRepo.Save(ctx, customer); err != nil {
			return nil, err
		}
		s.publishDomainEvents(ctx, customer)
	}

	if order.CouponCode != "" {
		c, err := s.couponRepo.FindByCode(ctx, order.CouponCode)
		if err != nil {
			return nil, err
		}
		if err := c.Redeem(now); err != nil {
			return nil, err
		}
		if err := s.couponRepo.Save(ctx, c); err != nil {
			return nil, err
		}
		s.publishDomainEvents(ctx, c)
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	s.publishDomainEvents(ctx, order)

	response := ToOrderResponse(order)
	return &response, nil
}

// Cancel cancels an order
func (s *OrderService) Cancel(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := order.Cancel(); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	s.publishDomainEvents(ctx, order)

	response := ToOrderResponse(order)
	return &response, nil
}

// fileApproval creates the approval request for a flagged order
func (s *OrderService) fileApproval(ctx context.Context, input pricing.CalculationInput, result *pricing.CalculationResult, order *trade.Order, req CreateOrderRequest) (*trade.ApprovalRequest, error) {
	payload := pricing.BuildApprovalRequestFromCalculation(input, result, req.RequestedBy, req.StaffNote)
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	request, err := trade.NewApprovalRequest(
		order.CustomerID, string(payloadJSON), payload.ConflictReason,
		req.RequestedBy, req.StaffNote,
		result.OriginalPrice, result.TotalDiscount, result.FinalPrice,
	)
	if err != nil {
		return nil, err
	}
	request.AttachOrder(order.ID)

	if err := s.approvalRepo.Save(ctx, request); err != nil {
		return nil, err
	}
	s.publishDomainEvents(ctx, request)
	return request, nil
}

func toAddOnLines(items []OrderAddOnItem) []pricing.AddOnLine {
	if len(items) == 0 {
		return nil
	}
	lines := make([]pricing.AddOnLine, len(items))
	for i, item := range items {
		lines[i] = pricing.AddOnLine{
			ID:        item.ID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		}
	}
	return lines
}

// generateOrderNo builds a unique human-scannable order number
func generateOrderNo() string {
	suffix := strings.ToUpper(uuid.New().String()[:8])
	return fmt.Sprintf("ORD-%s-%s", time.Now().Format("20060102"), suffix)
}

func buildOrderFilter(filter OrderListFilter) shared.Filter {
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
	if filter.Tier != "" {
		domainFilter.Filters["tier"] = filter.Tier
	}

	return domainFilter
}
