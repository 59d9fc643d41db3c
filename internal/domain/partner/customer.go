package partner

import (
	"regexp"
	"strings"
	"time"

	"github.com/clinic/backend/internal/domain/shared"
)

// CustomerStatus represents the status of a customer
type CustomerStatus string

const (
	CustomerStatusActive   CustomerStatus = "active"
	CustomerStatusInactive CustomerStatus = "inactive"
)

// DiscountClass represents the customer's discount eligibility class.
// A customer has exactly one class at a time.
type DiscountClass string

const (
	DiscountClassRegular  DiscountClass = "regular"
	DiscountClassVIP      DiscountClass = "vip"
	DiscountClassBirthday DiscountClass = "birthday"
	DiscountClassEmployee DiscountClass = "employee"
)

// BirthdayAnnualCap is the number of birthday-discounted uses allowed per
// calendar year before managerial approval is required.
const BirthdayAnnualCap = 8

// Customer represents a clinic customer.
// It is the aggregate root for customer-related operations. The pricing
// engine only ever reads it; the annual usage counter is mutated here, by
// the order-completion flow, never by the engine.
type Customer struct {
	shared.BaseAggregateRoot
	Code          string         `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name          string         `gorm:"type:varchar(200);not null"`
	Status        CustomerStatus `gorm:"type:varchar(20);not null;default:'active'"`
	DiscountClass DiscountClass  `gorm:"type:varchar(20);not null;default:'regular'"`
	Phone         string         `gorm:"type:varchar(50);index"`
	Email         string         `gorm:"type:varchar(200);index"`
	BirthDate     *time.Time     `gorm:"type:date"`
	// BirthdayUsageYear is the calendar year BirthdayUsageCount applies to.
	// A mismatch with the current year means the counter is stale and
	// resets on the next recorded use.
	BirthdayUsageYear  int    `gorm:"not null;default:0"`
	BirthdayUsageCount int    `gorm:"not null;default:0"`
	Notes              string `gorm:"type:text"`
	SortOrder          int    `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a new customer with required fields
func NewCustomer(code, name string) (*Customer, error) {
	if err := validateCustomerCode(code); err != nil {
		return nil, err
	}
	if err := validateCustomerName(name); err != nil {
		return nil, err
	}

	customer := &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(code),
		Name:              name,
		Status:            CustomerStatusActive,
		DiscountClass:     DiscountClassRegular,
	}

	customer.AddDomainEvent(NewCustomerCreatedEvent(customer))

	return customer, nil
}

// Update updates the customer's basic information
func (c *Customer) Update(name string) error {
	if err := validateCustomerName(name); err != nil {
		return err
	}

	c.Name = name
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewCustomerUpdatedEvent(c))

	return nil
}

// SetContact sets the customer's contact information
func (c *Customer) SetContact(phone, email string) error {
	if phone != "" {
		if err := validatePhone(phone); err != nil {
			return err
		}
	}
	if email != "" {
		if err := validateEmail(email); err != nil {
			return err
		}
	}

	c.Phone = phone
	c.Email = email
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetBirthDate sets the customer's date of birth
func (c *Customer) SetBirthDate(birthDate time.Time) error {
	if birthDate.After(time.Now()) {
		return shared.NewDomainError("INVALID_BIRTH_DATE", "Birth date cannot be in the future")
	}

	c.BirthDate = &birthDate
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetDiscountClass changes the customer's discount class.
// Classes are mutually exclusive; assigning a new one replaces the old.
func (c *Customer) SetDiscountClass(class DiscountClass) error {
	if err := validateDiscountClass(class); err != nil {
		return err
	}

	oldClass := c.DiscountClass
	c.DiscountClass = class
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewCustomerDiscountClassChangedEvent(c, oldClass, class))

	return nil
}

// BirthdayUsesThisYear returns the number of birthday-discounted uses
// consumed in the given year. Returns 0 when the stored counter belongs to
// an earlier year.
func (c *Customer) BirthdayUsesThisYear(year int) int {
	if c.BirthdayUsageYear != year {
		return 0
	}
	return c.BirthdayUsageCount
}

// RecordBirthdayUse increments the annual birthday usage counter for the
// given year, resetting it first when the year has rolled over. This is the
// order-completion collaborator's read-modify-write; the pricing engine only
// reads the counter.
func (c *Customer) RecordBirthdayUse(year int) {
	if c.BirthdayUsageYear != year {
		c.BirthdayUsageYear = year
		c.BirthdayUsageCount = 0
	}
	c.BirthdayUsageCount++
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewCustomerBirthdayUseRecordedEvent(c))
}

// SetNotes sets the customer's notes
func (c *Customer) SetNotes(notes string) {
	c.Notes = notes
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// SetSortOrder sets the display order
func (c *Customer) SetSortOrder(order int) {
	c.SortOrder = order
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// Activate activates the customer
func (c *Customer) Activate() error {
	if c.Status == CustomerStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Customer is already active")
	}

	c.Status = CustomerStatusActive
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// Deactivate deactivates the customer
func (c *Customer) Deactivate() error {
	if c.Status == CustomerStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Customer is already inactive")
	}

	c.Status = CustomerStatusInactive
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// IsActive returns true if the customer is active
func (c *Customer) IsActive() bool {
	return c.Status == CustomerStatusActive
}

// Validation functions

func validateCustomerCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Customer code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Customer code cannot exceed 50 characters")
	}
	for _, r := range code {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return shared.NewDomainError("INVALID_CODE", "Customer code can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}

func validateCustomerName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot exceed 200 characters")
	}
	return nil
}

func validateDiscountClass(class DiscountClass) error {
	switch class {
	case DiscountClassRegular, DiscountClassVIP, DiscountClassBirthday, DiscountClassEmployee:
		return nil
	default:
		return shared.NewDomainError("INVALID_DISCOUNT_CLASS", "Invalid discount class")
	}
}

func validatePhone(phone string) error {
	if len(phone) > 50 {
		return shared.NewDomainError("INVALID_PHONE", "Phone number cannot exceed 50 characters")
	}
	validPhone := regexp.MustCompile(`^[\d\s\-\(\)\+]+$`)
	if !validPhone.MatchString(phone) {
		return shared.NewDomainError("INVALID_PHONE", "Invalid phone number format")
	}
	return nil
}

func validateEmail(email string) error {
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}
