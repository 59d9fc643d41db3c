package pricing

import (
	"testing"

	"github.com/clinic/backend/internal/domain/partner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertSortedByDiscount(t *testing.T, options []DiscountOption) {
	t.Helper()
	for i := 1; i < len(options); i++ {
		assert.False(t, options[i].DiscountAmount.GreaterThan(options[i-1].DiscountAmount),
			"options must be sorted non-increasing by discount amount")
	}
}

func TestOptimize(t *testing.T) {
	engine := NewEngine(DefaultPolicy())

	t.Run("employee with all tiers available", func(t *testing.T) {
		result, err := engine.Optimize(CalculationInput{
			Service:     testService(t, "Hydration Boost", 100000),
			Customer:    testCustomer(t, partner.DiscountClassEmployee),
			PackageType: PackageSingle,
			Quantity:    1,
			At:          testTime,
		})
		require.NoError(t, err)

		// employee-only, three package tiers, three combinations, floor
		assert.Len(t, result.AllOptions, 8)
		assertSortedByDiscount(t, result.AllOptions)

		best := result.BestOption
		assert.Equal(t, OptionCombination, best.Kind)
		assert.Equal(t, Package10, best.Tier)
		assert.Equal(t, partner.DiscountClassEmployee, best.Class)
		// 250000 package + half of the remaining 750000
		assert.True(t, best.DiscountAmount.Equal(amount(625000)))
		assert.True(t, best.RequiresApproval)
		assert.False(t, result.CanAutoApply)
	})

	t.Run("ten-pack options are omitted outside the allow-list", func(t *testing.T) {
		result, err := engine.Optimize(CalculationInput{
			Service:     testService(t, "Premium NAD+ Therapy", 100000),
			Customer:    testCustomer(t, partner.DiscountClassRegular),
			PackageType: PackageSingle,
			Quantity:    1,
			At:          testTime,
		})
		require.NoError(t, err)

		for _, opt := range result.AllOptions {
			assert.NotEqual(t, Package10, opt.Tier)
		}

		// best is the plain 8-pack, auto-applicable
		assert.Equal(t, OptionPackageOnly, result.BestOption.Kind)
		assert.Equal(t, Package8, result.BestOption.Tier)
		assert.True(t, result.BestOption.DiscountAmount.Equal(amount(160000)))
		assert.False(t, result.BestOption.RequiresApproval)
		assert.True(t, result.CanAutoApply)
	})

	t.Run("combinations always require approval", func(t *testing.T) {
		result, err := engine.Optimize(CalculationInput{
			Service:     testService(t, "Hydration Boost", 100000),
			Customer:    testCustomer(t, partner.DiscountClassEmployee),
			PackageType: PackageSingle,
			Quantity:    1,
			At:          testTime,
		})
		require.NoError(t, err)

		combos := 0
		for _, opt := range result.AllOptions {
			if opt.Kind == OptionCombination {
				combos++
				assert.True(t, opt.RequiresApproval)
			}
		}
		assert.Equal(t, 3, combos)
	})

	t.Run("vip combinations carry the free-tier conflict", func(t *testing.T) {
		result, err := engine.Optimize(CalculationInput{
			Service:     testService(t, "Premium NAD+ Therapy", 100000),
			Customer:    testCustomer(t, partner.DiscountClassVIP),
			PackageType: PackageSingle,
			Quantity:    1,
			At:          testTime,
		})
		require.NoError(t, err)

		for _, opt := range result.AllOptions {
			if opt.Kind == OptionCombination {
				_, ok := findConflict(opt.Conflicts, ConflictPackageWithFreeTier)
				assert.True(t, ok)
			}
		}
	})

	t.Run("disallowed requested tier anchors baseline at single pricing", func(t *testing.T) {
		result, err := engine.Optimize(CalculationInput{
			Service:     testService(t, "Premium NAD+ Therapy", 100000),
			Customer:    testCustomer(t, partner.DiscountClassRegular),
			PackageType: Package10,
			Quantity:    1,
			At:          testTime,
		})
		require.NoError(t, err)

		// Neither the baseline nor the floor may carry the 10-pack price
		assert.True(t, result.OriginalPrice.Equal(amount(100000)))
		for _, opt := range result.AllOptions {
			assert.NotEqual(t, Package10, opt.Tier)
			if opt.Kind == OptionNoDiscount {
				assert.Equal(t, PackageSingle, opt.Tier)
				assert.True(t, opt.FinalPrice.Equal(amount(100000)))
			}
		}
	})

	t.Run("no applicable discount leaves only the floor", func(t *testing.T) {
		result, err := engine.Optimize(CalculationInput{
			Service:     testService(t, "Hydration Boost", 0),
			Customer:    testCustomer(t, partner.DiscountClassRegular),
			PackageType: PackageSingle,
			Quantity:    1,
			At:          testTime,
		})
		require.NoError(t, err)

		require.Len(t, result.AllOptions, 1)
		assert.Equal(t, OptionNoDiscount, result.BestOption.Kind)
		assert.True(t, result.BestOption.DiscountAmount.IsZero())
		assert.True(t, result.CanAutoApply)
	})

	t.Run("floor option ranks last", func(t *testing.T) {
		result, err := engine.Optimize(CalculationInput{
			Service:     testService(t, "Hydration Boost", 100000),
			Customer:    testCustomer(t, partner.DiscountClassRegular),
			PackageType: PackageSingle,
			Quantity:    1,
			At:          testTime,
		})
		require.NoError(t, err)

		last := result.AllOptions[len(result.AllOptions)-1]
		assert.Equal(t, OptionNoDiscount, last.Kind)
		assert.True(t, last.DiscountAmount.IsZero())
	})

	t.Run("birthday at the cap produces no birthday options", func(t *testing.T) {
		customer := testCustomer(t, partner.DiscountClassBirthday)
		customer.BirthdayUsageYear = testTime.Year()
		customer.BirthdayUsageCount = partner.BirthdayAnnualCap

		result, err := engine.Optimize(CalculationInput{
			Service:     testService(t, "Glow Vitamin Infusion", 120000),
			Customer:    customer,
			PackageType: PackageSingle,
			Quantity:    1,
			At:          testTime,
		})
		require.NoError(t, err)

		for _, opt := range result.AllOptions {
			assert.True(t, opt.Breakdown.Birthday.IsZero())
		}
	})

	t.Run("add-ons raise every option price but never the discount", func(t *testing.T) {
		result, err := engine.Optimize(CalculationInput{
			Service:     testService(t, "Hydration Boost", 100000),
			Customer:    testCustomer(t, partner.DiscountClassRegular),
			PackageType: PackageSingle,
			Quantity:    1,
			AddOns: []AddOnLine{
				{ID: "vitamin-shot", Name: "Vitamin Shot", UnitPrice: amount(5000), Quantity: 2},
			},
			At: testTime,
		})
		require.NoError(t, err)

		assert.True(t, result.OriginalPrice.Equal(amount(110000)))
		for _, opt := range result.AllOptions {
			assert.True(t, opt.FinalPrice.GreaterThanOrEqual(amount(10000)))
		}
	})

	t.Run("invalid input is rejected", func(t *testing.T) {
		_, err := engine.Optimize(CalculationInput{
			Service:  testService(t, "Hydration Boost", 100000),
			Customer: testCustomer(t, partner.DiscountClassRegular),
			Quantity: 0,
		})
		assert.Error(t, err)
	})
}
