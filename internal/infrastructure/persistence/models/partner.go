package models

import (
	"time"

	"github.com/clinic/backend/internal/domain/partner"
)

// CustomerModel is the persistence model for the Customer domain entity.
type CustomerModel struct {
	AggregateModel
	Code               string                 `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name               string                 `gorm:"type:varchar(200);not null"`
	Status             partner.CustomerStatus `gorm:"type:varchar(20);not null;default:'active'"`
	DiscountClass      partner.DiscountClass  `gorm:"type:varchar(20);not null;default:'regular';index"`
	Phone              string                 `gorm:"type:varchar(50);index"`
	Email              string                 `gorm:"type:varchar(200);index"`
	BirthDate          *time.Time             `gorm:"type:date"`
	BirthdayUsageYear  int                    `gorm:"not null;default:0"`
	BirthdayUsageCount int                    `gorm:"not null;default:0"`
	Notes              string                 `gorm:"type:text"`
	SortOrder          int                    `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer entity.
func (m *CustomerModel) ToDomain() *partner.Customer {
	return &partner.Customer{
		BaseAggregateRoot:  m.ToBaseAggregateRoot(),
		Code:               m.Code,
		Name:               m.Name,
		Status:             m.Status,
		DiscountClass:      m.DiscountClass,
		Phone:              m.Phone,
		Email:              m.Email,
		BirthDate:          m.BirthDate,
		BirthdayUsageYear:  m.BirthdayUsageYear,
		BirthdayUsageCount: m.BirthdayUsageCount,
		Notes:              m.Notes,
		SortOrder:          m.SortOrder,
	}
}

// FromDomain populates the persistence model from a domain Customer entity.
func (m *CustomerModel) FromDomain(c *partner.Customer) {
	m.FromBaseAggregateRoot(c.BaseAggregateRoot)
	m.Code = c.Code
	m.Name = c.Name
	m.Status = c.Status
	m.DiscountClass = c.DiscountClass
	m.Phone = c.Phone
	m.Email = c.Email
	m.BirthDate = c.BirthDate
	m.BirthdayUsageYear = c.BirthdayUsageYear
	m.BirthdayUsageCount = c.BirthdayUsageCount
	m.Notes = c.Notes
	m.SortOrder = c.SortOrder
}

// CustomerModelFromDomain creates a new persistence model from a domain Customer entity.
func CustomerModelFromDomain(c *partner.Customer) *CustomerModel {
	m := &CustomerModel{}
	m.FromDomain(c)
	return m
}
