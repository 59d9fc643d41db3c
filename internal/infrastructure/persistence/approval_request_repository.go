package persistence

import (
	"context"
	"errors"

	"github.com/clinic/backend/internal/domain/shared"
	"github.com/clinic/backend/internal/domain/trade"
	"github.com/clinic/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormApprovalRequestRepository implements ApprovalRequestRepository using GORM
type GormApprovalRequestRepository struct {
	db *gorm.DB
}

// NewGormApprovalRequestRepository creates a new GormApprovalRequestRepository
func NewGormApprovalRequestRepository(db *gorm.DB) *GormApprovalRequestRepository {
	return &GormApprovalRequestRepository{db: db}
}

// FindByID finds an approval request by its ID
func (r *GormApprovalRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.ApprovalRequest, error) {
	var model models.ApprovalRequestModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all approval requests matching the filter
func (r *GormApprovalRequestRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.ApprovalRequest, error) {
	var requestModels []models.ApprovalRequestModel
	query := applyPagination(r.filtered(ctx, filter), filter, "created_at DESC")

	if err := query.Find(&requestModels).Error; err != nil {
		return nil, err
	}
	return approvalRequestsToDomain(requestModels), nil
}

// FindPending finds requests awaiting a decision
func (r *GormApprovalRequestRepository) FindPending(ctx context.Context, filter shared.Filter) ([]trade.ApprovalRequest, error) {
	var requestModels []models.ApprovalRequestModel
	query := applyPagination(
		r.filtered(ctx, filter).Where("status = ?", trade.ApprovalStatusPending),
		filter, "created_at ASC",
	)

	if err := query.Find(&requestModels).Error; err != nil {
		return nil, err
	}
	return approvalRequestsToDomain(requestModels), nil
}

// FindByCustomer finds requests raised for a customer
func (r *GormApprovalRequestRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]trade.ApprovalRequest, error) {
	var requestModels []models.ApprovalRequestModel
	query := applyPagination(
		r.filtered(ctx, filter).Where("customer_id = ?", customerID),
		filter, "created_at DESC",
	)

	if err := query.Find(&requestModels).Error; err != nil {
		return nil, err
	}
	return approvalRequestsToDomain(requestModels), nil
}

// Save creates or updates an approval request
func (r *GormApprovalRequestRepository) Save(ctx context.Context, request *trade.ApprovalRequest) error {
	model := models.ApprovalRequestModelFromDomain(request)
	return r.db.WithContext(ctx).Save(model).Error
}

// Count counts approval requests matching the filter
func (r *GormApprovalRequestRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.filtered(ctx, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormApprovalRequestRepository) filtered(ctx context.Context, filter shared.Filter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.ApprovalRequestModel{})
	query = applySearch(query, filter.Search, "reason", "requested_by")

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "requested_by":
			query = query.Where("requested_by = ?", value)
		}
	}
	return query
}

func approvalRequestsToDomain(requestModels []models.ApprovalRequestModel) []trade.ApprovalRequest {
	requests := make([]trade.ApprovalRequest, len(requestModels))
	for i, model := range requestModels {
		requests[i] = *model.ToDomain()
	}
	return requests
}

// Ensure GormApprovalRequestRepository implements ApprovalRequestRepository
var _ trade.ApprovalRequestRepository = (*GormApprovalRequestRepository)(nil)
