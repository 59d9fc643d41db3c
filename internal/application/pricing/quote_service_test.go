package pricing

import (
	"context"
	"testing"
	"time"

	"github.com/clinic/backend/internal/domain/catalog"
	"github.com/clinic/backend/internal/domain/partner"
	"github.com/clinic/backend/internal/domain/pricing"
	"github.com/clinic/backend/internal/domain/shared"
	"github.com/clinic/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// MockCustomerRepository is a mock implementation of CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByCode(ctx context.Context, code string) (*partner.Customer, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Customer, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByDiscountClass(ctx context.Context, class partner.DiscountClass, filter shared.Filter) ([]partner.Customer, error) {
	args := m.Called(ctx, class, filter)
	return args.Get(0).([]partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCustomerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCustomerRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockCustomerRepository) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	args := m.Called(ctx, phone)
	return args.Bool(0), args.Error(1)
}

var _ partner.CustomerRepository = (*MockCustomerRepository)(nil)

// MockServiceRepository is a mock implementation of ServiceRepository
type MockServiceRepository struct {
	mock.Mock
}

func (m *MockServiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Service, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Service), args.Error(1)
}

func (m *MockServiceRepository) FindByCode(ctx context.Context, code string) (*catalog.Service, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Service), args.Error(1)
}

func (m *MockServiceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Service, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Service), args.Error(1)
}

func (m *MockServiceRepository) FindActive(ctx context.Context, filter shared.Filter) ([]catalog.Service, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Service), args.Error(1)
}

func (m *MockServiceRepository) Save(ctx context.Context, service *catalog.Service) error {
	args := m.Called(ctx, service)
	return args.Error(0)
}

func (m *MockServiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockServiceRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockServiceRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

var _ catalog.ServiceRepository = (*MockServiceRepository)(nil)

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

// =============================================================================
// Test Helper Functions
// =============================================================================

type quoteServiceMocks struct {
	customers *MockCustomerRepository
	services  *MockServiceRepository
	approvals *MockApprovalRequestRepository
	orders    *MockOrderRepository
}

func newTestQuoteService() (*QuoteService, quoteServiceMocks) {
	mocks := quoteServiceMocks{
		customers: new(MockCustomerRepository),
		services:  new(MockServiceRepository),
		approvals: new(MockApprovalRequestRepository),
		orders:    new(MockOrderRepository),
	}
	engine := pricing.NewEngine(pricing.DefaultPolicy())
	service := NewQuoteService(engine, mocks.customers, mocks.services, mocks.approvals, mocks.orders)
	return service, mocks
}

func createRegularCustomer() *partner.Customer {
	customer, _ := partner.NewCustomer("CUST-001", "Regular Customer")
	return customer
}

func createVIPCustomer() *partner.Customer {
	customer, _ := partner.NewCustomer("VIP-001", "VIP Customer")
	_ = customer.SetDiscountClass(partner.DiscountClassVIP)
	return customer
}

func createPremiumService() *catalog.Service {
	service, _ := catalog.NewService("SVC-NAD", "Premium NAD+ Therapy", catalog.CategoryPremium, decimal.NewFromInt(110000), 90)
	return service
}

func createStandardService() *catalog.Service {
	service, _ := catalog.NewService("SVC-HYD", "Hydration Boost", catalog.CategoryIVTherapy, decimal.NewFromInt(60000), 45)
	return service
}

// =============================================================================
// QuoteService Tests
// =============================================================================

func TestQuoteService_Calculate_RegularSingle(t *testing.T) {
	service, mocks := newTestQuoteService()

	ctx := context.Background()
	customer := createRegularCustomer()
	svc := createStandardService()

	mocks.customers.On("FindByID", ctx, customer.ID).Return(customer, nil)
	mocks.services.On("FindByID", ctx, svc.ID).Return(svc, nil)

	result, err := service.Calculate(ctx, QuoteRequest{
		CustomerID: customer.ID,
		ServiceID:  svc.ID,
		Quantity:   1,
	})

	require.NoError(t, err)
	assert.True(t, result.OriginalPrice.Equal(decimal.NewFromInt(60000)))
	assert.True(t, result.TotalDiscount.IsZero())
	assert.True(t, result.FinalPrice.Equal(decimal.NewFromInt(60000)))
	assert.False(t, result.RequiresApproval)
	mocks.customers.AssertExpectations(t)
	mocks.services.AssertExpectations(t)
}

func TestQuoteService_Calculate_VIPFreeService(t *testing.T) {
	service, mocks := newTestQuoteService()

	ctx := context.Background()
	customer := createVIPCustomer()
	svc := createPremiumService()

	mocks.customers.On("FindByID", ctx, customer.ID).Return(customer, nil)
	mocks.services.On("FindByID", ctx, svc.ID).Return(svc, nil)

	result, err := service.Calculate(ctx, QuoteRequest{
		CustomerID: customer.ID,
		ServiceID:  svc.ID,
		Quantity:   1,
	})

	require.NoError(t, err)
	assert.True(t, result.FinalPrice.IsZero())
	assert.True(t, result.CustomerDiscount.Equal(decimal.NewFromInt(110000)))
	// A fully free single session is flagged but does not need sign-off
	assert.False(t, result.RequiresApproval)
	assert.NotEmpty(t, result.Conflicts)
}

func TestQuoteService_Calculate_VIPPackageNeedsApproval(t *testing.T) {
	service, mocks := newTestQuoteService()

	ctx := context.Background()
	customer := createVIPCustomer()
	svc := createPremiumService()

	mocks.customers.On("FindByID", ctx, customer.ID).Return(customer, nil)
	mocks.services.On("FindByID", ctx, svc.ID).Return(svc, nil)

	result, err := service.Calculate(ctx, QuoteRequest{
		CustomerID:  customer.ID,
		ServiceID:   svc.ID,
		PackageType: "package4",
		Quantity:    1,
	})

	require.NoError(t, err)
	assert.True(t, result.RequiresApproval)
	assert.True(t, result.FinalPrice.IsZero())
}

func TestQuoteService_Calculate_CustomerNotFound(t *testing.T) {
	service, mocks := newTestQuoteService()

	ctx := context.Background()
	customerID := uuid.New()

	mocks.customers.On("FindByID", ctx, customerID).Return(nil, shared.ErrNotFound)

	result, err := service.Calculate(ctx, QuoteRequest{
		CustomerID: customerID,
		ServiceID:  uuid.New(),
		Quantity:   1,
	})

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestQuoteService_Optimize_RanksOptions(t *testing.T) {
	service, mocks := newTestQuoteService()

	ctx := context.Background()
	customer := createRegularCustomer()
	svc := createStandardService()

	mocks.customers.On("FindByID", ctx, customer.ID).Return(customer, nil)
	mocks.services.On("FindByID", ctx, svc.ID).Return(svc, nil)

	result, err := service.Optimize(ctx, QuoteRequest{
		CustomerID: customer.ID,
		ServiceID:  svc.ID,
		Quantity:   1,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, result.AllOptions)
	assert.NotEmpty(t, result.BestOption.Label)
}

func TestQuoteService_RequestApproval_Success(t *testing.T) {
	service, mocks := newTestQuoteService()

	ctx := context.Background()
	customer := createVIPCustomer()
	svc := createPremiumService()

	mocks.customers.On("FindByID", ctx, customer.ID).Return(customer, nil)
	mocks.services.On("FindByID", ctx, svc.ID).Return(svc, nil)
	mocks.approvals.On("Save", ctx, mock.AnythingOfType("*trade.ApprovalRequest")).Return(nil)

	result, err := service.RequestApproval(ctx, CreateApprovalRequest{
		QuoteRequest: QuoteRequest{
			CustomerID:  customer.ID,
			ServiceID:   svc.ID,
			PackageType: "package4",
			Quantity:    1,
		},
		StaffNote:   "Long-standing client, manager aware",
		RequestedBy: "staff-01",
	})

	require.NoError(t, err)
	assert.Equal(t, "pending", result.Status)
	assert.Equal(t, "staff-01", result.RequestedBy)
	assert.Equal(t, customer.ID, result.CustomerID)
	assert.NotEmpty(t, result.Payload)
	assert.Nil(t, result.OrderID)
	mocks.approvals.AssertExpectations(t)
}

func TestQuoteService_Approve_Success(t *testing.T) {
	service, mocks := newTestQuoteService()

	ctx := context.Background()
	customer := createVIPCustomer()
	request, err := trade.NewApprovalRequest(
		customer.ID, `{"conflicts":[]}`, "package discount stacked on a VIP-free service",
		"staff-01", "",
		decimal.NewFromInt(440000), decimal.NewFromInt(440000), decimal.Zero,
	)
	require.NoError(t, err)

	mocks.approvals.On("FindByID", ctx, request.ID).Return(request, nil)
	mocks.approvals.On("Save", ctx, request).Return(nil)

	result, err := service.Approve(ctx, request.ID, ApprovalDecisionRequest{
		Note:      "Approved as courtesy",
		DecidedBy: "manager-01",
	})

	require.NoError(t, err)
	assert.Equal(t, "approved", result.Status)
	assert.Equal(t, "manager-01", result.DecidedBy)
	assert.NotNil(t, result.DecidedAt)
	mocks.approvals.AssertExpectations(t)
}

func TestQuoteService_Approve_GrantsAttachedOrder(t *testing.T) {
	service, mocks := newTestQuoteService()

	ctx := context.Background()
	customer := createVIPCustomer()
	svc := createPremiumService()

	order, err := trade.NewOrder("ORD-20260301-AB12CD34", customer.ID, svc.ID, svc.Name, pricing.Package4, 1)
	require.NoError(t, err)
	require.NoError(t, order.ApplyPricing(
		decimal.NewFromInt(440000), decimal.NewFromInt(440000), decimal.Zero,
		"{}", "[]", true, false,
	))

	request, err := trade.NewApprovalRequest(
		customer.ID, `{"conflicts":[]}`, "package discount stacked on a VIP-free service",
		"staff-01", "",
		decimal.NewFromInt(440000), decimal.NewFromInt(440000), decimal.Zero,
	)
	require.NoError(t, err)
	request.AttachOrder(order.ID)

	mocks.approvals.On("FindByID", ctx, request.ID).Return(request, nil)
	mocks.approvals.On("Save", ctx, request).Return(nil)
	mocks.orders.On("FindByID", ctx, order.ID).Return(order, nil)
	mocks.orders.On("Save", ctx, order).Return(nil)

	result, err := service.Approve(ctx, request.ID, ApprovalDecisionRequest{
		DecidedBy: "manager-01",
	})

	require.NoError(t, err)
	assert.Equal(t, "approved", result.Status)
	assert.True(t, order.ApprovalGranted)
	mocks.approvals.AssertExpectations(t)
	mocks.orders.AssertExpectations(t)
}

func TestQuoteService_Reject_Success(t *testing.T) {
	service, mocks := newTestQuoteService()

	ctx := context.Background()
	customer := createVIPCustomer()
	request, err := trade.NewApprovalRequest(
		customer.ID, `{"conflicts":[]}`, "birthday discount beyond the annual cap of 8 uses",
		"staff-01", "",
		decimal.NewFromInt(120000), decimal.NewFromInt(60000), decimal.NewFromInt(60000),
	)
	require.NoError(t, err)

	mocks.approvals.On("FindByID", ctx, request.ID).Return(request, nil)
	mocks.approvals.On("Save", ctx, request).Return(nil)

	result, err := service.Reject(ctx, request.ID, ApprovalDecisionRequest{
		Note:      "Cap is firm",
		DecidedBy: "manager-01",
	})

	require.NoError(t, err)
	assert.Equal(t, "rejected", result.Status)
	assert.Equal(t, "Cap is firm", result.DecisionNote)
	mocks.approvals.AssertExpectations(t)
}

func TestQuoteService_Approve_AlreadyDecided(t *testing.T) {
	service, mocks := newTestQuoteService()

	ctx := context.Background()
	customer := createVIPCustomer()
	request, err := trade.NewApprovalRequest(
		customer.ID, `{"conflicts":[]}`, "reason",
		"staff-01", "",
		decimal.NewFromInt(100000), decimal.NewFromInt(50000), decimal.NewFromInt(50000),
	)
	require.NoError(t, err)
	require.NoError(t, request.Approve("manager-01", ""))

	mocks.approvals.On("FindByID", ctx, request.ID).Return(request, nil)

	result, err := service.Approve(ctx, request.ID, ApprovalDecisionRequest{
		DecidedBy: "manager-02",
	})

	assert.Error(t, err)
	assert.Nil(t, result)
	mocks.approvals.AssertExpectations(t)
}

func TestQuoteService_ListApprovals_PendingOnly(t *testing.T) {
	service, mocks := newTestQuoteService()

	ctx := context.Background()
	customer := createVIPCustomer()
	request, err := trade.NewApprovalRequest(
		customer.ID, `{"conflicts":[]}`, "reason",
		"staff-01", "",
		decimal.NewFromInt(100000), decimal.NewFromInt(50000), decimal.NewFromInt(50000),
	)
	require.NoError(t, err)

	mocks.approvals.On("FindPending", ctx, mock.AnythingOfType("shared.Filter")).Return([]trade.ApprovalRequest{*request}, nil)
	mocks.approvals.On("Count", ctx, mock.AnythingOfType("shared.Filter")).Return(int64(1), nil)

	results, total, err := service.ListApprovals(ctx, ApprovalListFilter{PendingOnly: true})

	require.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, int64(1), total)
	mocks.approvals.AssertExpectations(t)
}
