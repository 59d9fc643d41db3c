package report

import (
	"context"
	"testing"
	"time"

	"github.com/clinic/backend/internal/domain/shared"
	"github.com/clinic/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockOrderRepository is a mock implementation of OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByOrderNo(ctx context.Context, orderNo string) (*trade.Order, error) {
	args := m.Called(ctx, orderNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.Order, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]trade.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]trade.Order, error) {
	args := m.Called(ctx, customerID, filter)
	return args.Get(0).([]trade.Order), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, order *trade.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) RevenueBetween(ctx context.Context, from, to time.Time) (*trade.RevenueTotals, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.RevenueTotals), args.Error(1)
}

func (m *MockOrderRepository) RevenueByTierBetween(ctx context.Context, from, to time.Time) (map[string]trade.RevenueTotals, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]trade.RevenueTotals), args.Error(1)
}

var _ trade.OrderRepository = (*MockOrderRepository)(nil)

// MockApprovalRequestRepository is a mock implementation of ApprovalRequestRepository
type MockApprovalRequestRepository struct {
	mock.Mock
}

func (m *MockApprovalRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.ApprovalRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.ApprovalRequest), args.Error(1)
}

func (m *MockApprovalRequestRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.ApprovalRequest, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]trade.ApprovalRequest), args.Error(1)
}

func (m *MockApprovalRequestRepository) FindPending(ctx context.Context, filter shared.Filter) ([]trade.ApprovalRequest, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]trade.ApprovalRequest), args.Error(1)
}

func (m *MockApprovalRequestRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]trade.ApprovalRequest, error) {
	args := m.Called(ctx, customerID, filter)
	return args.Get(0).([]trade.ApprovalRequest), args.Error(1)
}

func (m *MockApprovalRequestRepository) Save(ctx context.Context, request *trade.ApprovalRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockApprovalRequestRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

var _ trade.ApprovalRequestRepository = (*MockApprovalRequestRepository)(nil)

func TestRevenueReportService_Revenue_Success(t *testing.T) {
	orders := new(MockOrderRepository)
	approvals := new(MockApprovalRequestRepository)
	service := NewRevenueReportService(orders, approvals)

	ctx := context.Background()
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	totals := &trade.RevenueTotals{
		OrderCount:     3,
		GrossAmount:    decimal.NewFromInt(900000),
		DiscountAmount: decimal.NewFromInt(185000),
		NetAmount:      decimal.NewFromInt(715000),
	}
	byTier := map[string]trade.RevenueTotals{
		"single":   {OrderCount: 2, GrossAmount: decimal.NewFromInt(220000), NetAmount: decimal.NewFromInt(160000)},
		"package8": {OrderCount: 1, GrossAmount: decimal.NewFromInt(680000), NetAmount: decimal.NewFromInt(555000)},
	}

	orders.On("RevenueBetween", ctx, from, to).Return(totals, nil)
	orders.On("RevenueByTierBetween", ctx, from, to).Return(byTier, nil)
	approvals.On("Count", ctx, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Filters["status"] == trade.ApprovalStatusPending
	})).Return(int64(2), nil)

	result, err := service.Revenue(ctx, from, to)

	require.NoError(t, err)
	assert.Equal(t, int64(3), result.Totals.OrderCount)
	assert.True(t, result.Totals.NetAmount.Equal(decimal.NewFromInt(715000)))
	assert.Len(t, result.ByTier, 2)
	assert.Equal(t, int64(2), result.PendingApprovals)
	orders.AssertExpectations(t)
	approvals.AssertExpectations(t)
}

func TestRevenueReportService_Revenue_InvalidRange(t *testing.T) {
	orders := new(MockOrderRepository)
	approvals := new(MockApprovalRequestRepository)
	service := NewRevenueReportService(orders, approvals)

	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	result, err := service.Revenue(context.Background(), from, from)

	assert.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_RANGE", domainErr.Code)
	orders.AssertNotCalled(t, "RevenueBetween", mock.Anything, mock.Anything, mock.Anything)
}
