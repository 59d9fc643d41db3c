package models

import (
	"github.com/clinic/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ServiceModel is the persistence model for the Service domain entity.
type ServiceModel struct {
	AggregateModel
	Code                    string                  `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name                    string                  `gorm:"type:varchar(200);not null"`
	Category                catalog.ServiceCategory `gorm:"type:varchar(30);not null;default:'iv_therapy'"`
	Status                  catalog.ServiceStatus   `gorm:"type:varchar(20);not null;default:'active'"`
	BasePrice               decimal.Decimal         `gorm:"type:decimal(18,4);not null;default:0"`
	DurationMinutes         int                     `gorm:"not null;default:60"`
	Package4Price           *decimal.Decimal        `gorm:"type:decimal(18,4)"`
	Package8Price           *decimal.Decimal        `gorm:"type:decimal(18,4)"`
	Package10Price          *decimal.Decimal        `gorm:"type:decimal(18,4)"`
	AllowVitaminShot        bool                    `gorm:"not null;default:false"`
	AllowExtendedMonitoring bool                    `gorm:"not null;default:false"`
	Notes                   string                  `gorm:"type:text"`
	SortOrder               int                     `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (ServiceModel) TableName() string {
	return "services"
}

// ToDomain converts the persistence model to a domain Service entity.
func (m *ServiceModel) ToDomain() *catalog.Service {
	return &catalog.Service{
		BaseAggregateRoot:       m.ToBaseAggregateRoot(),
		Code:                    m.Code,
		Name:                    m.Name,
		Category:                m.Category,
		Status:                  m.Status,
		BasePrice:               m.BasePrice,
		DurationMinutes:         m.DurationMinutes,
		Package4Price:           m.Package4Price,
		Package8Price:           m.Package8Price,
		Package10Price:          m.Package10Price,
		AllowVitaminShot:        m.AllowVitaminShot,
		AllowExtendedMonitoring: m.AllowExtendedMonitoring,
		Notes:                   m.Notes,
		SortOrder:               m.SortOrder,
	}
}

// FromDomain populates the persistence model from a domain Service entity.
func (m *ServiceModel) FromDomain(s *catalog.Service) {
	m.FromBaseAggregateRoot(s.BaseAggregateRoot)
	m.Code = s.Code
	m.Name = s.Name
	m.Category = s.Category
	m.Status = s.Status
	m.BasePrice = s.BasePrice
	m.DurationMinutes = s.DurationMinutes
	m.Package4Price = s.Package4Price
	m.Package8Price = s.Package8Price
	m.Package10Price = s.Package10Price
	m.AllowVitaminShot = s.AllowVitaminShot
	m.AllowExtendedMonitoring = s.AllowExtendedMonitoring
	m.Notes = s.Notes
	m.SortOrder = s.SortOrder
}

// ServiceModelFromDomain creates a new persistence model from a domain Service entity.
func ServiceModelFromDomain(s *catalog.Service) *ServiceModel {
	m := &ServiceModel{}
	m.FromDomain(s)
	return m
}
