package catalog

import (
	"time"

	"github.com/clinic/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateServiceRequest represents a request to create a new service
type CreateServiceRequest struct {
	Code                    string           `json:"code" binding:"required,min=1,max=50"`
	Name                    string           `json:"name" binding:"required,min=1,max=200"`
	Category                string           `json:"category" binding:"required,oneof=iv_therapy vitamin recovery premium"`
	BasePrice               decimal.Decimal  `json:"base_price" binding:"required"`
	DurationMinutes         int              `json:"duration_minutes" binding:"required,min=1"`
	Package4Price           *decimal.Decimal `json:"package4_price"`
	Package8Price           *decimal.Decimal `json:"package8_price"`
	Package10Price          *decimal.Decimal `json:"package10_price"`
	AllowVitaminShot        bool             `json:"allow_vitamin_shot"`
	AllowExtendedMonitoring bool             `json:"allow_extended_monitoring"`
	Notes                   string           `json:"notes"`
	SortOrder               *int             `json:"sort_order"`
}

// UpdateServiceRequest represents a request to update a service
type UpdateServiceRequest struct {
	Name                    *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Category                *string          `json:"category" binding:"omitempty,oneof=iv_therapy vitamin recovery premium"`
	BasePrice               *decimal.Decimal `json:"base_price"`
	DurationMinutes         *int             `json:"duration_minutes" binding:"omitempty,min=1"`
	Package4Price           *decimal.Decimal `json:"package4_price"`
	Package8Price           *decimal.Decimal `json:"package8_price"`
	Package10Price          *decimal.Decimal `json:"package10_price"`
	AllowVitaminShot        *bool            `json:"allow_vitamin_shot"`
	AllowExtendedMonitoring *bool            `json:"allow_extended_monitoring"`
	Notes                   *string          `json:"notes"`
	SortOrder               *int             `json:"sort_order"`
}

// ServiceListFilter represents filter options for listing services
type ServiceListFilter struct {
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
	OrderBy    string `form:"order_by"`
	OrderDir   string `form:"order_dir"`
	Search     string `form:"search"`
	Status     string `form:"status" binding:"omitempty,oneof=active inactive"`
	Category   string `form:"category" binding:"omitempty,oneof=iv_therapy vitamin recovery premium"`
	ActiveOnly bool   `form:"active_only"`
}

// ServiceResponse represents a service in API responses
type ServiceResponse struct {
	ID                      uuid.UUID        `json:"id"`
	Code                    string           `json:"code"`
	Name                    string           `json:"name"`
	Category                string           `json:"category"`
	Status                  string           `json:"status"`
	BasePrice               decimal.Decimal  `json:"base_price"`
	DurationMinutes         int              `json:"duration_minutes"`
	Package4Price           *decimal.Decimal `json:"package4_price,omitempty"`
	Package8Price           *decimal.Decimal `json:"package8_price,omitempty"`
	Package10Price          *decimal.Decimal `json:"package10_price,omitempty"`
	AllowVitaminShot        bool             `json:"allow_vitamin_shot"`
	AllowExtendedMonitoring bool             `json:"allow_extended_monitoring"`
	Notes                   string           `json:"notes"`
	SortOrder               int              `json:"sort_order"`
	CreatedAt               time.Time        `json:"created_at"`
	UpdatedAt               time.Time        `json:"updated_at"`
}

// ToServiceResponse converts a domain service to a response DTO
func ToServiceResponse(s *catalog.Service) ServiceResponse {
	return ServiceResponse{
		ID:                      s.ID,
		Code:                    s.Code,
		Name:                    s.Name,
		Category:                string(s.Category),
		Status:                  string(s.Status),
		BasePrice:               s.BasePrice,
		DurationMinutes:         s.DurationMinutes,
		Package4Price:           s.Package4Price,
		Package8Price:           s.Package8Price,
		Package10Price:          s.Package10Price,
		AllowVitaminShot:        s.AllowVitaminShot,
		AllowExtendedMonitoring: s.AllowExtendedMonitoring,
		Notes:                   s.Notes,
		SortOrder:               s.SortOrder,
		CreatedAt:               s.CreatedAt,
		UpdatedAt:               s.UpdatedAt,
	}
}

// ToServiceResponses converts a slice of domain services to response DTOs
func ToServiceResponses(services []catalog.Service) []ServiceResponse {
	responses := make([]ServiceResponse, len(services))
	for i := range services {
		responses[i] = ToServiceResponse(&services[i])
	}
	return responses
}
