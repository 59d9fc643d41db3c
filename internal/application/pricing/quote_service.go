package pricing

import (
	"context"
	"encoding/json"

	"github.com/clinic/backend/internal/domain/catalog"
	"github.com/clinic/backend/internal/domain/partner"
	"github.com/clinic/backend/internal/domain/pricing"
	"github.com/clinic/backend/internal/domain/shared"
	"github.com/clinic/backend/internal/domain/trade"
	"github.com/google/uuid"
)

// QuoteService prices purchases through the discount engine and raises
// approval requests for flagged quotes
type QuoteService struct {
	engine         *pricing.Engine
	customerRepo   partner.CustomerRepository
	serviceRepo    catalog.ServiceRepository
	approvalRepo   trade.ApprovalRequestRepository
	orderRepo      trade.OrderRepository
	eventPublisher shared.EventPublisher
}

// NewQuoteService creates a new QuoteService
func NewQuoteService(
	engine *pricing.Engine,
	customerRepo partner.CustomerRepository,
	serviceRepo catalog.ServiceRepository,
	approvalRepo trade.ApprovalRequestRepository,
	orderRepo trade.OrderRepository,
) *QuoteService {
	return &QuoteService{
		engine:       engine,
		customerRepo: customerRepo,
		serviceRepo:  serviceRepo,
		approvalRepo: approvalRepo,
		orderRepo:    orderRepo,
	}
}

// SetEventPublisher sets the event publisher for recorded domain events
func (s *QuoteService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// publishDomainEvents publishes an aggregate's recorded events after a save
func (s *QuoteService) publishDomainEvents(ctx context.Context, aggregate shared.AggregateRoot) {
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

// Calculate prices the requested combination exactly as asked
func (s *QuoteService) Calculate(ctx context.Context, req QuoteRequest) (*pricing.CalculationResult, error) {
	input, err := s.buildInput(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.engine.Calculate(input)
}

// Optimize ranks every viable discount option for the purchase
func (s *QuoteService) Optimize(ctx context.Context, req QuoteRequest) (*pricing.OptimalResult, error) {
	input, err := s.buildInput(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.engine.Optimize(input)
}

// RequestApproval prices the quote and files an approval request carrying the
// full pricing snapshot. The quote does not need conflicts to be filed; staff
// may escalate any discount for review.
func (s *QuoteService) RequestApproval(ctx context.Context, req CreateApprovalRequest) (*ApprovalRequestResponse, error) {
	input, err := s.buildInput(ctx, req.QuoteRequest)
	if err != nil {
		return nil, err
	}

	result, err := s.engine.Calculate(input)
	if err != nil {
		return nil, err
	}

	payload := pricing.BuildApprovalRequestFromCalculation(input, result, req.RequestedBy, req.StaffNote)
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	request, err := trade.NewApprovalRequest(
		input.Customer.ID, string(payloadJSON), payload.ConflictReason,
		req.RequestedBy, req.StaffNote,
		result.OriginalPrice, result.TotalDiscount, result.FinalPrice,
	)
	if err != nil {
		return nil, err
	}

	if err := s.approvalRepo.Save(ctx, request); err != nil {
		return nil, err
	}
	s.publishDomainEvents(ctx, request)

	response := toApprovalRequestResponse(request)
	return &response, nil
}

// GetApproval retrieves an approval request by ID
func (s *QuoteService) GetApproval(ctx context.Context, requestID uuid.UUID) (*ApprovalRequestResponse, error) {
	request, err := s.approvalRepo.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	response := toApprovalRequestResponse(request)
	return &response, nil
}

// ListApprovals retrieves approval requests with filtering and pagination
func (s *QuoteService) ListApprovals(ctx context.Context, filter ApprovalListFilter) ([]ApprovalRequestResponse, int64, error) {
	domainFilter := buildApprovalFilter(filter)

	var (
		requests []trade.ApprovalRequest
		err      error
	)
	if filter.PendingOnly {
		requests, err = s.approvalRepo.FindPending(ctx, domainFilter)
	} else {
		requests, err = s.approvalRepo.FindAll(ctx, domainFilter)
	}
	if err != nil {
		return nil, 0, err
	}

	total, err := s.approvalRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ApprovalRequestResponse, len(requests))
	for i := range requests {
		responses[i] = toApprovalRequestResponse(&requests[i])
	}
	return responses, total, nil
}

// Approve grants a pending approval request
func (s *QuoteService) Approve(ctx context.Context, requestID uuid.UUID, req ApprovalDecisionRequest) (*ApprovalRequestResponse, error) {
	return s.decide(ctx, requestID, req, true)
}

// Reject denies a pending approval request
func (s *QuoteService) Reject(ctx context.Context, requestID uuid.UUID, req ApprovalDecisionRequest) (*ApprovalRequestResponse, error) {
	return s.decide(ctx, requestID, req, false)
}

func (s *QuoteService) decide(ctx context.Context, requestID uuid.UUID, req ApprovalDecisionRequest, approve bool) (*ApprovalRequestResponse, error) {
	request, err := s.approvalRepo.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if approve {
		err = request.Approve(req.DecidedBy, req.Note)
	} else {
		err = request.Reject(req.DecidedBy, req.Note)
	}
	if err != nil {
		return nil, err
	}

	if err := s.approvalRepo.Save(ctx, request); err != nil {
		return nil, err
	}
	s.publishDomainEvents(ctx, request)

	// An approval attached to an order unblocks that order's confirmation
	if approve && request.OrderID != nil {
		order, err := s.orderRepo.FindByID(ctx, *request.OrderID)
		if err != nil {
			return nil, err
		}
		if err := order.GrantApproval(); err != nil {
			return nil, err
		}
		if err := s.orderRepo.Save(ctx, order); err != nil {
			return nil, err
		}
	}

	response := toApprovalRequestResponse(request)
	return &response, nil
}

// buildInput loads the aggregates the engine needs. The tier defaults to a
// single session when omitted.
func (s *QuoteService) buildInput(ctx context.Context, req QuoteRequest) (pricing.CalculationInput, error) {
	customer, err := s.customerRepo.FindByID(ctx, req.CustomerID)
	if err != nil {
		return pricing.CalculationInput{}, err
	}

	service, err := s.serviceRepo.FindByID(ctx, req.ServiceID)
	if err != nil {
		return pricing.CalculationInput{}, err
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
		AddOns:      toDomainAddOns(req.AddOns),
	}
	if req.At != nil {
		input.At = *req.At
	}
	return input, nil
}

func toApprovalRequestResponse(r *trade.ApprovalRequest) ApprovalRequestResponse {
	return ApprovalRequestResponse{
		ID:             r.ID,
		OrderID:        r.OrderID,
		CustomerID:     r.CustomerID,
		Reason:         r.Reason,
		OriginalAmount: r.OriginalAmount,
		DiscountAmount: r.DiscountAmount,
		FinalAmount:    r.FinalAmount,
		RequestedBy:    r.RequestedBy,
		StaffNote:      r.StaffNote,
		Status:         string(r.Status),
		DecidedBy:      r.DecidedBy,
		DecisionNote:   r.DecisionNote,
		DecidedAt:      r.DecidedAt,
		Payload:        r.PayloadJSON,
		CreatedAt:      r.CreatedAt,
	}
}

func buildApprovalFilter(filter ApprovalListFilter) shared.Filter {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		Search:   filter.Search,
		Filters:  make(map[string]any),
	}

	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	return domainFilter
}
