package trade

import (
	"strings"
	"time"

	"github.com/clinic/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ApprovalStatus represents the lifecycle state of an approval request
type ApprovalStatus string

const (
	ApprovalStatusPending  ApprovalStatus = "pending"
	ApprovalStatusApproved ApprovalStatus = "approved"
	ApprovalStatusRejected ApprovalStatus = "rejected"
)

// ApprovalRequest stores a discount approval submitted by front-desk staff.
// The pricing engine only builds the payload; the request lifecycle lives
// here, decided by a manager.
type ApprovalRequest struct {
	shared.BaseAggregateRoot
	OrderID    *uuid.UUID `gorm:"type:uuid;index"`
	CustomerID uuid.UUID  `gorm:"type:uuid;not null;index"`
	// PayloadJSON is the serialized engine payload, kept verbatim so the
	// reviewed numbers are exactly what staff saw.
	PayloadJSON    string          `gorm:"type:text;not null"`
	Reason         string          `gorm:"type:text"`
	OriginalAmount decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	FinalAmount    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	RequestedBy    string          `gorm:"type:varchar(100);not null"`
	StaffNote      string          `gorm:"type:text"`
	Status         ApprovalStatus  `gorm:"type:varchar(20);not null;default:'pending'"`
	DecidedBy      string          `gorm:"type:varchar(100)"`
	DecisionNote   string          `gorm:"type:text"`
	DecidedAt      *time.Time
}

// TableName returns the table name for GORM
func (ApprovalRequest) TableName() string {
	return "approval_requests"
}

// NewApprovalRequest creates a pending approval request
func NewApprovalRequest(customerID uuid.UUID, payloadJSON, reason, requestedBy, staffNote string, original, discount, final decimal.Decimal) (*ApprovalRequest, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer is required")
	}
	if strings.TrimSpace(payloadJSON) == "" {
		return nil, shared.NewDomainError("INVALID_PAYLOAD", "Approval payload cannot be empty")
	}
	if strings.TrimSpace(requestedBy) == "" {
		return nil, shared.NewDomainError("INVALID_REQUESTER", "Requester identity is required")
	}

	request := &ApprovalRequest{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerID:        customerID,
		PayloadJSON:       payloadJSON,
		Reason:            reason,
		OriginalAmount:    original,
		DiscountAmount:    discount,
		FinalAmount:       final,
		RequestedBy:       requestedBy,
		StaffNote:         staffNote,
		Status:            ApprovalStatusPending,
	}

	request.AddDomainEvent(NewApprovalRequestedEvent(request))

	return request, nil
}

// AttachOrder links the request to the order it was raised for
func (r *ApprovalRequest) AttachOrder(orderID uuid.UUID) {
	r.OrderID = &orderID
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
}

// Approve records an approving decision. Pending requests only.
func (r *ApprovalRequest) Approve(decidedBy, note string) error {
	return r.decide(ApprovalStatusApproved, decidedBy, note)
}

// Reject records a rejecting decision. Pending requests only.
func (r *ApprovalRequest) Reject(decidedBy, note string) error {
	return r.decide(ApprovalStatusRejected, decidedBy, note)
}

func (r *ApprovalRequest) decide(status ApprovalStatus, decidedBy, note string) error {
	if r.Status != ApprovalStatusPending {
		return shared.NewDomainError("ALREADY_DECIDED", "Approval request has already been decided")
	}
	if strings.TrimSpace(decidedBy) == "" {
		return shared.NewDomainError("INVALID_DECIDER", "Decider identity is required")
	}

	now := time.Now()
	r.Status = status
	r.DecidedBy = decidedBy
	r.DecisionNote = note
	r.DecidedAt = &now
	r.UpdatedAt = now
	r.IncrementVersion()

	r.AddDomainEvent(NewApprovalDecidedEvent(r))

	return nil
}

// IsPending returns true while no decision has been recorded
func (r *ApprovalRequest) IsPending() bool {
	return r.Status == ApprovalStatusPending
}
