package report

import (
	"context"
	"time"

	"github.com/clinic/backend/internal/domain/shared"
	"github.com/clinic/backend/internal/domain/trade"
)

// RevenueReportService aggregates confirmed-order revenue for back-office
// reporting. Draft and cancelled orders never count.
type RevenueReportService struct {
	orderRepo    trade.OrderRepository
	approvalRepo trade.ApprovalRequestRepository
}

// NewRevenueReportService creates a new RevenueReportService
func NewRevenueReportService(orderRepo trade.OrderRepository, approvalRepo trade.ApprovalRequestRepository) *RevenueReportService {
	return &RevenueReportService{
		orderRepo:    orderRepo,
		approvalRepo: approvalRepo,
	}
}

// Revenue aggregates confirmed orders in the window, overall and per tier,
// alongside the number of approval requests still awaiting a decision
func (s *RevenueReportService) Revenue(ctx context.Context, from, to time.Time) (*RevenueReportResponse, error) {
	if !to.After(from) {
		return nil, shared.NewDomainError("INVALID_RANGE", "Report range end must be after its start")
	}

	totals, err := s.orderRepo.RevenueBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}

	byTier, err := s.orderRepo.RevenueByTierBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}

	pending, err := s.approvalRepo.Count(ctx, shared.Filter{
		Filters: map[string]any{"status": trade.ApprovalStatusPending},
	})
	if err != nil {
		return nil, err
	}

	tierResponses := make(map[string]RevenueTotalsResponse, len(byTier))
	for tier, t := range byTier {
		tierResponses[tier] = toRevenueTotalsResponse(t)
	}

	return &RevenueReportResponse{
		From:             from,
		To:               to,
		Totals:           toRevenueTotalsResponse(*totals),
		ByTier:           tierResponses,
		PendingApprovals: pending,
	}, nil
}
