package partner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomer(t *testing.T) {
	t.Run("valid customer", func(t *testing.T) {
		customer, err := NewCustomer("cust-001", "Jane Doe")
		require.NoError(t, err)

		assert.Equal(t, "CUST-001", customer.Code)
		assert.Equal(t, "Jane Doe", customer.Name)
		assert.Equal(t, CustomerStatusActive, customer.Status)
		assert.Equal(t, DiscountClassRegular, customer.DiscountClass)
		assert.Len(t, customer.GetDomainEvents(), 1)
	})

	t.Run("empty code", func(t *testing.T) {
		_, err := NewCustomer("", "Jane Doe")
		assert.Error(t, err)
	})

	t.Run("invalid code characters", func(t *testing.T) {
		_, err := NewCustomer("cust 001!", "Jane Doe")
		assert.Error(t, err)
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := NewCustomer("CUST-001", "")
		assert.Error(t, err)
	})
}

func TestCustomerDiscountClass(t *testing.T) {
	t.Run("class change emits event", func(t *testing.T) {
		customer, err := NewCustomer("CUST-001", "Jane Doe")
		require.NoError(t, err)
		customer.ClearDomainEvents()

		require.NoError(t, customer.SetDiscountClass(DiscountClassVIP))
		assert.Equal(t, DiscountClassVIP, customer.DiscountClass)
		assert.Len(t, customer.GetDomainEvents(), 1)
	})

	t.Run("invalid class rejected", func(t *testing.T) {
		customer, err := NewCustomer("CUST-001", "Jane Doe")
		require.NoError(t, err)

		assert.Error(t, customer.SetDiscountClass(DiscountClass("platinum")))
	})
}

func TestBirthdayUsageCounter(t *testing.T) {
	t.Run("fresh customer has no uses", func(t *testing.T) {
		customer, err := NewCustomer("CUST-001", "Jane Doe")
		require.NoError(t, err)

		assert.Equal(t, 0, customer.BirthdayUsesThisYear(2026))
	})

	t.Run("stale year reads as zero", func(t *testing.T) {
		customer, err := NewCustomer("CUST-001", "Jane Doe")
		require.NoError(t, err)
		customer.BirthdayUsageYear = 2025
		customer.BirthdayUsageCount = 5

		assert.Equal(t, 0, customer.BirthdayUsesThisYear(2026))
		assert.Equal(t, 5, customer.BirthdayUsesThisYear(2025))
	})

	t.Run("recording increments within the year", func(t *testing.T) {
		customer, err := NewCustomer("CUST-001", "Jane Doe")
		require.NoError(t, err)

		customer.RecordBirthdayUse(2026)
		customer.RecordBirthdayUse(2026)

		assert.Equal(t, 2026, customer.BirthdayUsageYear)
		assert.Equal(t, 2, customer.BirthdayUsesThisYear(2026))
	})

	t.Run("year rollover resets before incrementing", func(t *testing.T) {
		customer, err := NewCustomer("CUST-001", "Jane Doe")
		require.NoError(t, err)
		customer.BirthdayUsageYear = 2025
		customer.BirthdayUsageCount = BirthdayAnnualCap

		customer.RecordBirthdayUse(2026)

		assert.Equal(t, 2026, customer.BirthdayUsageYear)
		assert.Equal(t, 1, customer.BirthdayUsageCount)
	})
}

func TestCustomerContact(t *testing.T) {
	customer, err := NewCustomer("CUST-001", "Jane Doe")
	require.NoError(t, err)

	t.Run("valid contact", func(t *testing.T) {
		require.NoError(t, customer.SetContact("+46 70-123 45 67", "jane@example.com"))
		assert.Equal(t, "+46 70-123 45 67", customer.Phone)
	})

	t.Run("invalid email", func(t *testing.T) {
		assert.Error(t, customer.SetContact("", "not-an-email"))
	})

	t.Run("invalid phone", func(t *testing.T) {
		assert.Error(t, customer.SetContact("phone#1", ""))
	})

	t.Run("future birth date rejected", func(t *testing.T) {
		assert.Error(t, customer.SetBirthDate(time.Now().Add(24*time.Hour)))
	})
}

func TestCustomerLifecycle(t *testing.T) {
	customer, err := NewCustomer("CUST-001", "Jane Doe")
	require.NoError(t, err)

	t.Run("activating an active customer fails", func(t *testing.T) {
		assert.Error(t, customer.Activate())
	})

	t.Run("deactivate then reactivate", func(t *testing.T) {
		require.NoError(t, customer.Deactivate())
		assert.False(t, customer.IsActive())

		require.NoError(t, customer.Activate())
		assert.True(t, customer.IsActive())
	})
}
