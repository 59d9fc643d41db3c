package partner

import (
	"time"

	"github.com/clinic/backend/internal/domain/partner"
	"github.com/google/uuid"
)

// CreateCustomerRequest represents a request to create a new customer
type CreateCustomerRequest struct {
	Code          string     `json:"code" binding:"required,min=1,max=50"`
	Name          string     `json:"name" binding:"required,min=1,max=200"`
	DiscountClass string     `json:"discount_class" binding:"omitempty,oneof=regular vip birthday employee"`
	Phone         string     `json:"phone" binding:"max=50"`
	Email         string     `json:"email" binding:"omitempty,email,max=200"`
	BirthDate     *time.Time `json:"birth_date"`
	Notes         string     `json:"notes"`
	SortOrder     *int       `json:"sort_order"`
}

// UpdateCustomerRequest represents a request to update a customer
type UpdateCustomerRequest struct {
	Name          *string    `json:"name" binding:"omitempty,min=1,max=200"`
	DiscountClass *string    `json:"discount_class" binding:"omitempty,oneof=regular vip birthday employee"`
	Phone         *string    `json:"phone" binding:"omitempty,max=50"`
	Email         *string    `json:"email" binding:"omitempty,email,max=200"`
	BirthDate     *time.Time `json:"birth_date"`
	Notes         *string    `json:"notes"`
	SortOrder     *int       `json:"sort_order"`
}

// CustomerListFilter represents filter options for listing customers
type CustomerListFilter struct {
	Page          int    `form:"page"`
	PageSize      int    `form:"page_size"`
	OrderBy       string `form:"order_by"`
	OrderDir      string `form:"order_dir"`
	Search        string `form:"search"`
	Status        string `form:"status" binding:"omitempty,oneof=active inactive"`
	DiscountClass string `form:"discount_class" binding:"omitempty,oneof=regular vip birthday employee"`
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID                 uuid.UUID  `json:"id"`
	Code               string     `json:"code"`
	Name               string     `json:"name"`
	Status             string     `json:"status"`
	DiscountClass      string     `json:"discount_class"`
	Phone              string     `json:"phone"`
	Email              string     `json:"email"`
	BirthDate          *time.Time `json:"birth_date,omitempty"`
	BirthdayUsageYear  int        `json:"birthday_usage_year"`
	BirthdayUsageCount int        `json:"birthday_usage_count"`
	Notes              string     `json:"notes"`
	SortOrder          int        `json:"sort_order"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// ToCustomerResponse converts a domain customer to a response DTO
func ToCustomerResponse(c *partner.Customer) CustomerResponse {
	return CustomerResponse{
		ID:                 c.ID,
		Code:               c.Code,
		Name:               c.Name,
		Status:             string(c.Status),
		DiscountClass:      string(c.DiscountClass),
		Phone:              c.Phone,
		Email:              c.Email,
		BirthDate:          c.BirthDate,
		BirthdayUsageYear:  c.BirthdayUsageYear,
		BirthdayUsageCount: c.BirthdayUsageCount,
		Notes:              c.Notes,
		SortOrder:          c.SortOrder,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}
}

// ToCustomerResponses converts a slice of domain customers to response DTOs
func ToCustomerResponses(customers []partner.Customer) []CustomerResponse {
	responses := make([]CustomerResponse, len(customers))
	for i := range customers {
		responses[i] = ToCustomerResponse(&customers[i])
	}
	return responses
}
