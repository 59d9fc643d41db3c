package coupon

import (
	"context"
	"testing"
	"time"

	"github.com/clinic/backend/internal/domain/coupon"
	"github.com/clinic/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockCouponRepository is a mock implementation of CouponRepository
type MockCouponRepository struct {
	mock.Mock
}

func (m *MockCouponRepository) FindByID(ctx context.Context, id uuid.UUID) (*coupon.Coupon, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*coupon.Coupon), args.Error(1)
}

func (m *MockCouponRepository) FindByCode(ctx context.Context, code string) (*coupon.Coupon, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*coupon.Coupon), args.Error(1)
}

func (m *MockCouponRepository) FindAll(ctx context.Context, filter shared.Filter) ([]coupon.Coupon, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]coupon.Coupon), args.Error(1)
}

func (m *MockCouponRepository) Save(ctx context.Context, c *coupon.Coupon) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCouponRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCouponRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCouponRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

// Verify interface compliance
var _ coupon.CouponRepository = (*MockCouponRepository)(nil)

func newTestCouponID() uuid.UUID {
	return uuid.MustParse("44444444-4444-4444-4444-444444444444")
}

func testValidity() (time.Time, time.Time) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(1, 0, 0)
}

func createTestCoupon() *coupon.Coupon {
	from, until := testValidity()
	c, _ := coupon.NewCoupon("WELCOME10", coupon.KindPercentOff, decimal.NewFromInt(10), from, until)
	return c
}

func TestCouponService_Create_Success(t *testing.T) {
	mockRepo := new(MockCouponRepository)
	service := NewCouponService(mockRepo)

	ctx := context.Background()
	from, until := testValidity()
	maxRedemptions := 100
	req := CreateCouponRequest{
		Code:           "SPRING20",
		Description:    "Spring promotion",
		Kind:           "amount_off",
		Value:          decimal.NewFromInt(20000),
		ValidFrom:      from,
		ValidUntil:     until,
		MaxRedemptions: &maxRedemptions,
	}

	mockRepo.On("ExistsByCode", ctx, req.Code).Return(false, nil)
	mockRepo.On("Save", ctx, mock.AnythingOfType("*coupon.Coupon")).Return(nil)

	result, err := service.Create(ctx, req)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, "SPRING20", result.Code)
	assert.Equal(t, "Spring promotion", result.Description)
	assert.Equal(t, "amount_off", result.Kind)
	assert.Equal(t, "active", result.Status)
	assert.Equal(t, 100, result.MaxRedemptions)
	assert.Equal(t, 0, result.RedemptionCount)
	mockRepo.AssertExpectations(t)
}

func TestCouponService_Create_DuplicateCode(t *testing.T) {
	mockRepo := new(MockCouponRepository)
	service := NewCouponService(mockRepo)

	ctx := context.Background()
	from, until := testValidity()
	req := CreateCouponRequest{
		Code:       "WELCOME10",
		Kind:       "percent_off",
		Value:      decimal.NewFromInt(10),
		ValidFrom:  from,
		ValidUntil: until,
	}

	mockRepo.On("ExistsByCode", ctx, req.Code).Return(true, nil)

	result, err := service.Create(ctx, req)

	assert.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	mockRepo.AssertExpectations(t)
}

func TestCouponService_GetByCode_Success(t *testing.T) {
	mockRepo := new(MockCouponRepository)
	service := NewCouponService(mockRepo)

	ctx := context.Background()
	c := createTestCoupon()

	mockRepo.On("FindByCode", ctx, "WELCOME10").Return(c, nil)

	result, err := service.GetByCode(ctx, "WELCOME10")

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, "WELCOME10", result.Code)
	assert.Equal(t, "percent_off", result.Kind)
	mockRepo.AssertExpectations(t)
}

func TestCouponService_List_Success(t *testing.T) {
	mockRepo := new(MockCouponRepository)
	service := NewCouponService(mockRepo)

	ctx := context.Background()
	coupons := []coupon.Coupon{*createTestCoupon()}

	mockRepo.On("FindAll", ctx, mock.AnythingOfType("shared.Filter")).Return(coupons, nil)
	mockRepo.On("Count", ctx, mock.AnythingOfType("shared.Filter")).Return(int64(1), nil)

	results, total, err := service.List(ctx, CouponListFilter{Status: "active"})

	assert.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, int64(1), total)
	mockRepo.AssertExpectations(t)
}

func TestCouponService_Update_ExtendsValidity(t *testing.T) {
	mockRepo := new(MockCouponRepository)
	service := NewCouponService(mockRepo)

	ctx := context.Background()
	couponID := newTestCouponID()
	c := createTestCoupon()

	newUntil := c.ValidUntil.AddDate(0, 6, 0)

	mockRepo.On("FindByID", ctx, couponID).Return(c, nil)
	mockRepo.On("Save", ctx, mock.AnythingOfType("*coupon.Coupon")).Return(nil)

	result, err := service.Update(ctx, couponID, UpdateCouponRequest{
		ValidUntil: &newUntil,
	})

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.True(t, newUntil.Equal(result.ValidUntil))
	mockRepo.AssertExpectations(t)
}

func TestCouponService_Deactivate_Success(t *testing.T) {
	mockRepo := new(MockCouponRepository)
	service := NewCouponService(mockRepo)

	ctx := context.Background()
	couponID := newTestCouponID()
	c := createTestCoupon()

	mockRepo.On("FindByID", ctx, couponID).Return(c, nil)
	mockRepo.On("Save", ctx, mock.AnythingOfType("*coupon.Coupon")).Return(nil)

	err := service.Deactivate(ctx, couponID)

	assert.NoError(t, err)
	assert.Equal(t, coupon.CouponStatusInactive, c.Status)
	mockRepo.AssertExpectations(t)
}
