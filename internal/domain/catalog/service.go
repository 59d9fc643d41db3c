package catalog

import (
	"strings"
	"time"

	"github.com/clinic/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ServiceStatus represents the status of a catalog service
type ServiceStatus string

const (
	ServiceStatusActive   ServiceStatus = "active"
	ServiceStatusInactive ServiceStatus = "inactive"
)

// ServiceCategory classifies a service for catalog browsing and reports
type ServiceCategory string

const (
	CategoryIVTherapy ServiceCategory = "iv_therapy"
	CategoryVitamin   ServiceCategory = "vitamin"
	CategoryRecovery  ServiceCategory = "recovery"
	CategoryPremium   ServiceCategory = "premium"
)

// Service represents an infusion service offered by the clinic.
// It is the aggregate root for catalog operations and is treated as an
// immutable snapshot by the pricing engine for the duration of a calculation.
type Service struct {
	shared.BaseAggregateRoot
	Code     string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name     string          `gorm:"type:varchar(200);not null"`
	Category ServiceCategory `gorm:"type:varchar(30);not null;default:'iv_therapy'"`
	Status   ServiceStatus   `gorm:"type:varchar(20);not null;default:'active'"`
	// BasePrice is the single-unit price in whole currency units.
	BasePrice decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	// DurationMinutes is the expected chair time for one unit.
	DurationMinutes int `gorm:"not null;default:60"`
	// Override prices for multi-use packages. When nil the standard flat
	// package rates apply instead.
	Package4Price  *decimal.Decimal `gorm:"type:decimal(18,4)"`
	Package8Price  *decimal.Decimal `gorm:"type:decimal(18,4)"`
	Package10Price *decimal.Decimal `gorm:"type:decimal(18,4)"`
	// Add-on permissions. Add-ons are priced additively and never discounted.
	AllowVitaminShot        bool   `gorm:"not null;default:false"`
	AllowExtendedMonitoring bool   `gorm:"not null;default:false"`
	Notes                   string `gorm:"type:text"`
	SortOrder               int    `gorm:"not null;default:0"`
}

// PackageOverride returns the configured override price for a package of the
// given unit count, or nil when the flat package rate applies.
func (s *Service) PackageOverride(units int) *decimal.Decimal {
	switch units {
	case 4:
		return s.Package4Price
	case 8:
		return s.Package8Price
	case 10:
		return s.Package10Price
	default:
		return nil
	}
}

// TableName returns the table name for GORM
func (Service) TableName() string {
	return "services"
}

// NewService creates a new catalog service with required fields
func NewService(code, name string, category ServiceCategory, basePrice decimal.Decimal, durationMinutes int) (*Service, error) {
	if err := validateServiceCode(code); err != nil {
		return nil, err
	}
	if err := validateServiceName(name); err != nil {
		return nil, err
	}
	if err := validateCategory(category); err != nil {
		return nil, err
	}
	if basePrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Base price cannot be negative")
	}
	if durationMinutes <= 0 {
		return nil, shared.NewDomainError("INVALID_DURATION", "Duration must be positive")
	}

	service := &Service{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(code),
		Name:              name,
		Category:          category,
		Status:            ServiceStatusActive,
		BasePrice:         basePrice,
		DurationMinutes:   durationMinutes,
	}

	service.AddDomainEvent(NewServiceCreatedEvent(service))

	return service, nil
}

// Update updates the service's basic information
func (s *Service) Update(name string, category ServiceCategory, durationMinutes int) error {
	if err := validateServiceName(name); err != nil {
		return err
	}
	if err := validateCategory(category); err != nil {
		return err
	}
	if durationMinutes <= 0 {
		return shared.NewDomainError("INVALID_DURATION", "Duration must be positive")
	}

	s.Name = name
	s.Category = category
	s.DurationMinutes = durationMinutes
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	s.AddDomainEvent(NewServiceUpdatedEvent(s))

	return nil
}

// SetBasePrice changes the single-unit price
func (s *Service) SetBasePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Base price cannot be negative")
	}

	oldPrice := s.BasePrice
	s.BasePrice = price
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	s.AddDomainEvent(NewServicePriceChangedEvent(s, oldPrice, price))

	return nil
}

// SetPackagePrices configures the optional per-package override prices.
// A nil value clears the override so the flat package rate applies.
func (s *Service) SetPackagePrices(p4, p8, p10 *decimal.Decimal) error {
	for _, p := range []*decimal.Decimal{p4, p8, p10} {
		if p != nil && p.IsNegative() {
			return shared.NewDomainError("INVALID_PRICE", "Package price cannot be negative")
		}
	}

	s.Package4Price = p4
	s.Package8Price = p8
	s.Package10Price = p10
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// SetAddOnPermissions configures which add-ons may be attached to an order line
func (s *Service) SetAddOnPermissions(vitaminShot, extendedMonitoring bool) {
	s.AllowVitaminShot = vitaminShot
	s.AllowExtendedMonitoring = extendedMonitoring
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}

// SetNotes sets free-form notes
func (s *Service) SetNotes(notes string) {
	s.Notes = notes
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}

// SetSortOrder sets the display order
func (s *Service) SetSortOrder(order int) {
	s.SortOrder = order
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}

// Activate activates the service
func (s *Service) Activate() error {
	if s.Status == ServiceStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Service is already active")
	}

	s.Status = ServiceStatusActive
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// Deactivate deactivates the service so it cannot be ordered
func (s *Service) Deactivate() error {
	if s.Status == ServiceStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Service is already inactive")
	}

	s.Status = ServiceStatusInactive
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// IsActive returns true if the service can be ordered
func (s *Service) IsActive() bool {
	return s.Status == ServiceStatusActive
}

// Validation functions

func validateServiceCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Service code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Service code cannot exceed 50 characters")
	}
	for _, r := range code {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return shared.NewDomainError("INVALID_CODE", "Service code can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}

func validateServiceName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Service name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Service name cannot exceed 200 characters")
	}
	return nil
}

func validateCategory(category ServiceCategory) error {
	switch category {
	case CategoryIVTherapy, CategoryVitamin, CategoryRecovery, CategoryPremium:
		return nil
	default:
		return shared.NewDomainError("INVALID_CATEGORY", "Invalid service category")
	}
}
