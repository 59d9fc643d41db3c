package models

import (
	"time"

	"github.com/clinic/backend/internal/domain/pricing"
	"github.com/clinic/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderModel is the persistence model for the Order domain entity.
type OrderModel struct {
	AggregateModel
	OrderNo                 string              `gorm:"type:varchar(50);not null;uniqueIndex"`
	CustomerID              uuid.UUID           `gorm:"type:uuid;not null;index"`
	ServiceID               uuid.UUID           `gorm:"type:uuid;not null;index"`
	ServiceName             string              `gorm:"type:varchar(200);not null"`
	Tier                    pricing.PackageType `gorm:"type:varchar(20);not null"`
	Quantity                int                 `gorm:"not null"`
	AddOnsJSON              string              `gorm:"type:text"`
	BreakdownJSON           string              `gorm:"type:text"`
	OriginalAmount          decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0"`
	DiscountAmount          decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0"`
	FinalAmount             decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0"`
	CouponCode              string              `gorm:"type:varchar(50)"`
	CouponDiscount          decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0"`
	BirthdayDiscountApplied bool                `gorm:"not null;default:false"`
	RequiresApproval        bool                `gorm:"not null;default:false"`
	ApprovalGranted         bool                `gorm:"not null;default:false"`
	Status                  trade.OrderStatus   `gorm:"type:varchar(20);not null;default:'draft';index"`
	ConfirmedAt             *time.Time          `gorm:"index"`
	Notes                   string              `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order entity.
func (m *OrderModel) ToDomain() *trade.Order {
	return &trade.Order{
		BaseAggregateRoot:       m.ToBaseAggregateRoot(),
		OrderNo:                 m.OrderNo,
		CustomerID:              m.CustomerID,
		ServiceID:               m.ServiceID,
		ServiceName:             m.ServiceName,
		Tier:                    m.Tier,
		Quantity:                m.Quantity,
		AddOnsJSON:              m.AddOnsJSON,
		BreakdownJSON:           m.BreakdownJSON,
		OriginalAmount:          m.OriginalAmount,
		DiscountAmount:          m.DiscountAmount,
		FinalAmount:             m.FinalAmount,
		CouponCode:              m.CouponCode,
		CouponDiscount:          m.CouponDiscount,
		BirthdayDiscountApplied: m.BirthdayDiscountApplied,
		RequiresApproval:        m.RequiresApproval,
		ApprovalGranted:         m.ApprovalGranted,
		Status:                  m.Status,
		ConfirmedAt:             m.ConfirmedAt,
		Notes:                   m.Notes,
	}
}

// FromDomain populates the persistence model from a domain Order entity.
func (m *OrderModel) FromDomain(o *trade.Order) {
	m.FromBaseAggregateRoot(o.BaseAggregateRoot)
	m.OrderNo = o.OrderNo
	m.CustomerID = o.CustomerID
	m.ServiceID = o.ServiceID
	m.ServiceName = o.ServiceName
	m.Tier = o.Tier
	m.Quantity = o.Quantity
	m.AddOnsJSON = o.AddOnsJSON
	m.BreakdownJSON = o.BreakdownJSON
	m.OriginalAmount = o.OriginalAmount
	m.DiscountAmount = o.DiscountAmount
	m.FinalAmount = o.FinalAmount
	m.CouponCode = o.CouponCode
	m.CouponDiscount = o.CouponDiscount
	m.BirthdayDiscountApplied = o.BirthdayDiscountApplied
	m.RequiresApproval = o.RequiresApproval
	m.ApprovalGranted = o.ApprovalGranted
	m.Status = o.Status
	m.ConfirmedAt = o.ConfirmedAt
	m.Notes = o.Notes
}

// OrderModelFromDomain creates a new persistence model from a domain Order entity.
func OrderModelFromDomain(o *trade.Order) *OrderModel {
	m := &OrderModel{}
	m.FromDomain(o)
	return m
}

// ApprovalRequestModel is the persistence model for the ApprovalRequest domain entity.
type ApprovalRequestModel struct {
	AggregateModel
	OrderID        *uuid.UUID           `gorm:"type:uuid;index"`
	CustomerID     uuid.UUID            `gorm:"type:uuid;not null;index"`
	PayloadJSON    string               `gorm:"type:text;not null"`
	Reason         string               `gorm:"type:text"`
	OriginalAmount decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	DiscountAmount decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	FinalAmount    decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	RequestedBy    string               `gorm:"type:varchar(100);not null"`
	StaffNote      string               `gorm:"type:text"`
	Status         trade.ApprovalStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	DecidedBy      string               `gorm:"type:varchar(100)"`
	DecisionNote   string               `gorm:"type:text"`
	DecidedAt      *time.Time
}

// TableName returns the table name for GORM
func (ApprovalRequestModel) TableName() string {
	return "approval_requests"
}

// ToDomain converts the persistence model to a domain ApprovalRequest entity.
func (m *ApprovalRequestModel) ToDomain() *trade.ApprovalRequest {
	return &trade.ApprovalRequest{
		BaseAggregateRoot: m.ToBaseAggregateRoot(),
		OrderID:           m.OrderID,
		CustomerID:        m.CustomerID,
		PayloadJSON:       m.PayloadJSON,
		Reason:            m.Reason,
		OriginalAmount:    m.OriginalAmount,
		DiscountAmount:    m.DiscountAmount,
		FinalAmount:       m.FinalAmount,
		RequestedBy:       m.RequestedBy,
		StaffNote:         m.StaffNote,
		Status:            m.Status,
		DecidedBy:         m.DecidedBy,
		DecisionNote:      m.DecisionNote,
		DecidedAt:         m.DecidedAt,
	}
}

// FromDomain populates the persistence model from a domain ApprovalRequest entity.
func (m *ApprovalRequestModel) FromDomain(r *trade.ApprovalRequest) {
	m.FromBaseAggregateRoot(r.BaseAggregateRoot)
	m.OrderID = r.OrderID
	m.CustomerID = r.CustomerID
	m.PayloadJSON = r.PayloadJSON
	m.Reason = r.Reason
	m.OriginalAmount = r.OriginalAmount
	m.DiscountAmount = r.DiscountAmount
	m.FinalAmount = r.FinalAmount
	m.RequestedBy = r.RequestedBy
	m.StaffNote = r.StaffNote
	m.Status = r.Status
	m.DecidedBy = r.DecidedBy
	m.DecisionNote = r.DecisionNote
	m.DecidedAt = r.DecidedAt
}

// ApprovalRequestModelFromDomain creates a new persistence model from a domain ApprovalRequest entity.
func ApprovalRequestModelFromDomain(r *trade.ApprovalRequest) *ApprovalRequestModel {
	m := &ApprovalRequestModel{}
	m.FromDomain(r)
	return m
}
