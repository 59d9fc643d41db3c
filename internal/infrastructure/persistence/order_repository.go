package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/clinic/backend/internal/domain/shared"
	"github.com/clinic/backend/internal/domain/trade"
	"github.com/clinic/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order by its ID
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByOrderNo finds an order by its order number
func (r *GormOrderRepository) FindByOrderNo(ctx context.Context, orderNo string) (*trade.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).
		Where("order_no = ?", orderNo).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all orders matching the filter
func (r *GormOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.Order, error) {
	var orderModels []models.OrderModel
	query := applyPagination(r.filtered(ctx, filter), filter, "created_at DESC")

	if err := query.Find(&orderModels).Error; err != nil {
		return nil, err
	}
	return ordersToDomain(orderModels), nil
}

// FindByCustomer finds orders for a customer
func (r *GormOrderRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]trade.Order, error) {
	var orderModels []models.OrderModel
	query := applyPagination(
		r.filtered(ctx, filter).Where("customer_id = ?", customerID),
		filter, "created_at DESC",
	)

	if err := query.Find(&orderModels).Error; err != nil {
		return nil, err
	}
	return ordersToDomain(orderModels), nil
}

// Save creates or updates an order
func (r *GormOrderRepository) Save(ctx context.Context, order *trade.Order) error {
	model := models.OrderModelFromDomain(order)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes an order
func (r *GormOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.OrderModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts orders matching the filter
func (r *GormOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.filtered(ctx, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// revenueRow is the scan target for revenue aggregation queries
type revenueRow struct {
	Tier           string
	OrderCount     int64
	GrossAmount    decimal.Decimal
	DiscountAmount decimal.Decimal
	NetAmount      decimal.Decimal
}

// RevenueBetween aggregates confirmed orders in the window
func (r *GormOrderRepository) RevenueBetween(ctx context.Context, from, to time.Time) (*trade.RevenueTotals, error) {
	var row revenueRow
	err := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Select(
			"COUNT(*) AS order_count, "+
				"COALESCE(SUM(original_amount), 0) AS gross_amount, "+
				"COALESCE(SUM(discount_amount + coupon_discount), 0) AS discount_amount, "+
				"COALESCE(SUM(final_amount), 0) AS net_amount",
		).
		Where("status = ? AND confirmed_at >= ? AND confirmed_at < ?", trade.OrderStatusConfirmed, from, to).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}

	return &trade.RevenueTotals{
		OrderCount:     row.OrderCount,
		GrossAmount:    row.GrossAmount,
		DiscountAmount: row.DiscountAmount,
		NetAmount:      row.NetAmount,
	}, nil
}

// RevenueByTierBetween aggregates confirmed orders per package tier
func (r *GormOrderRepository) RevenueByTierBetween(ctx context.Context, from, to time.Time) (map[string]trade.RevenueTotals, error) {
	var rows []revenueRow
	err := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Select(
			"tier, COUNT(*) AS order_count, "+
				"COALESCE(SUM(original_amount), 0) AS gross_amount, "+
				"COALESCE(SUM(discount_amount + coupon_discount), 0) AS discount_amount, "+
				"COALESCE(SUM(final_amount), 0) AS net_amount",
		).
		Where("status = ? AND confirmed_at >= ? AND confirmed_at < ?", trade.OrderStatusConfirmed, from, to).
		Group("tier").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	totals := make(map[string]trade.RevenueTotals, len(rows))
	for _, row := range rows {
		totals[row.Tier] = trade.RevenueTotals{
			OrderCount:     row.OrderCount,
			GrossAmount:    row.GrossAmount,
			DiscountAmount: row.DiscountAmount,
			NetAmount:      row.NetAmount,
		}
	}
	return totals, nil
}

func (r *GormOrderRepository) filtered(ctx context.Context, filter shared.Filter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.OrderModel{})
	query = applySearch(query, filter.Search, "order_no", "service_name")

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "tier":
			query = query.Where("tier = ?", value)
		case "requires_approval":
			query = query.Where("requires_approval = ?", value)
		}
	}
	return query
}

func ordersToDomain(orderModels []models.OrderModel) []trade.Order {
	orders := make([]trade.Order, len(orderModels))
	for i, model := range orderModels {
		orders[i] = *model.ToDomain()
	}
	return orders
}

// Ensure GormOrderRepository implements OrderRepository
var _ trade.OrderRepository = (*GormOrderRepository)(nil)
