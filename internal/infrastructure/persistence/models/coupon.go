package models

import (
	"time"

	"github.com/clinic/backend/internal/domain/coupon"
	"github.com/shopspring/decimal"
)

// CouponModel is the persistence model for the Coupon domain entity.
type CouponModel struct {
	AggregateModel
	Code            string              `gorm:"type:varchar(50);not null;uniqueIndex"`
	Description     string              `gorm:"type:varchar(500)"`
	Kind            coupon.CouponKind   `gorm:"type:varchar(20);not null"`
	Value           decimal.Decimal     `gorm:"type:decimal(18,4);not null"`
	ValidFrom       time.Time           `gorm:"not null"`
	ValidUntil      time.Time           `gorm:"not null"`
	Status          coupon.CouponStatus `gorm:"type:varchar(20);not null;default:'active'"`
	MaxRedemptions  int                 `gorm:"not null;default:0"`
	RedemptionCount int                 `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (CouponModel) TableName() string {
	return "coupons"
}

// ToDomain converts the persistence model to a domain Coupon entity.
func (m *CouponModel) ToDomain() *coupon.Coupon {
	return &coupon.Coupon{
		BaseAggregateRoot: m.ToBaseAggregateRoot(),
		Code:              m.Code,
		Description:       m.Description,
		Kind:              m.Kind,
		Value:             m.Value,
		ValidFrom:         m.ValidFrom,
		ValidUntil:        m.ValidUntil,
		Status:            m.Status,
		MaxRedemptions:    m.MaxRedemptions,
		RedemptionCount:   m.RedemptionCount,
	}
}

// FromDomain populates the persistence model from a domain Coupon entity.
func (m *CouponModel) FromDomain(c *coupon.Coupon) {
	m.FromBaseAggregateRoot(c.BaseAggregateRoot)
	m.Code = c.Code
	m.Description = c.Description
	m.Kind = c.Kind
	m.Value = c.Value
	m.ValidFrom = c.ValidFrom
	m.ValidUntil = c.ValidUntil
	m.Status = c.Status
	m.MaxRedemptions = c.MaxRedemptions
	m.RedemptionCount = c.RedemptionCount
}

// CouponModelFromDomain creates a new persistence model from a domain Coupon entity.
func CouponModelFromDomain(c *coupon.Coupon) *CouponModel {
	m := &CouponModel{}
	m.FromDomain(c)
	return m
}
