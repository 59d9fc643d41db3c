package pricing

import (
	"testing"
	"time"

	"github.com/clinic/backend/internal/domain/catalog"
	"github.com/clinic/backend/internal/domain/partner"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

func testService(t *testing.T, name string, basePrice int64) *catalog.Service {
	t.Helper()
	svc, err := catalog.NewService("SVC-TEST", name, catalog.CategoryIVTherapy, decimal.NewFromInt(basePrice), 60)
	require.NoError(t, err)
	return svc
}

func testCustomer(t *testing.T, class partner.DiscountClass) *partner.Customer {
	t.Helper()
	customer, err := partner.NewCustomer("CUST-TEST", "Test Customer")
	require.NoError(t, err)
	require.NoError(t, customer.SetDiscountClass(class))
	return customer
}

func amount(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func TestResolveBasePrice(t *testing.T) {
	engine := NewEngine(DefaultPolicy())

	t.Run("single unit uses base price", func(t *testing.T) {
		svc := testService(t, "Hydration Boost", 80000)
		price := engine.ResolveBasePrice(svc, PackageSingle, 1)
		assert.True(t, price.Equal(amount(80000)))
	})

	t.Run("package multiplies base price by units", func(t *testing.T) {
		svc := testService(t, "Hydration Boost", 80000)
		price := engine.ResolveBasePrice(svc, Package4, 1)
		assert.True(t, price.Equal(amount(320000)))
	})

	t.Run("quantity multiplies the tier price", func(t *testing.T) {
		svc := testService(t, "Hydration Boost", 80000)
		price := engine.ResolveBasePrice(svc, Package4, 2)
		assert.True(t, price.Equal(amount(640000)))
	})

	t.Run("override replaces the standard tier price", func(t *testing.T) {
		svc := testService(t, "Hydration Boost", 80000)
		p4 := amount(280000)
		require.NoError(t, svc.SetPackagePrices(&p4, nil, nil))

		price := engine.ResolveBasePrice(svc, Package4, 1)
		assert.True(t, price.Equal(amount(280000)))

		// Other tiers keep standard pricing
		price = engine.ResolveBasePrice(svc, Package8, 1)
		assert.True(t, price.Equal(amount(640000)))
	})

	t.Run("unknown tier degrades to single pricing", func(t *testing.T) {
		svc := testService(t, "Hydration Boost", 80000)
		price := engine.ResolveBasePrice(svc, PackageType("package99"), 1)
		assert.True(t, price.Equal(amount(80000)))
	})
}

func TestPackageDiscount(t *testing.T) {
	engine := NewEngine(DefaultPolicy())

	t.Run("single purchase has no package discount", func(t *testing.T) {
		svc := testService(t, "Hydration Boost", 80000)
		assert.True(t, engine.PackageDiscount(svc, PackageSingle, 1).IsZero())
	})

	t.Run("flat rates apply per tier", func(t *testing.T) {
		svc := testService(t, "Hydration Boost", 80000)
		assert.True(t, engine.PackageDiscount(svc, Package4, 1).Equal(amount(32000)))
		assert.True(t, engine.PackageDiscount(svc, Package8, 1).Equal(amount(128000)))
		assert.True(t, engine.PackageDiscount(svc, Package10, 1).Equal(amount(200000)))
	})

	t.Run("override yields delta against standard price", func(t *testing.T) {
		svc := testService(t, "Hydration Boost", 80000)
		p4 := amount(280000)
		require.NoError(t, svc.SetPackagePrices(&p4, nil, nil))
		assert.True(t, engine.PackageDiscount(svc, Package4, 1).Equal(amount(40000)))
	})

	t.Run("override above standard price yields zero", func(t *testing.T) {
		svc := testService(t, "Hydration Boost", 80000)
		p4 := amount(350000)
		require.NoError(t, svc.SetPackagePrices(&p4, nil, nil))
		assert.True(t, engine.PackageDiscount(svc, Package4, 1).IsZero())
	})

	t.Run("quantity scales the discount", func(t *testing.T) {
		svc := testService(t, "Hydration Boost", 80000)
		assert.True(t, engine.PackageDiscount(svc, Package4, 3).Equal(amount(96000)))
	})
}

func TestCustomerDiscount(t *testing.T) {
	engine := NewEngine(DefaultPolicy())

	t.Run("regular customers never get a class discount", func(t *testing.T) {
		svc := testService(t, "Premium NAD+ Therapy", 100000)
		customer := testCustomer(t, partner.DiscountClassRegular)
		got := engine.CustomerDiscount(customer, svc, amount(100000), testTime)
		assert.True(t, got.IsZero())
	})

	t.Run("vip takes allow-listed services free", func(t *testing.T) {
		svc := testService(t, "Premium NAD+ Therapy", 100000)
		customer := testCustomer(t, partner.DiscountClassVIP)
		got := engine.CustomerDiscount(customer, svc, amount(100000), testTime)
		assert.True(t, got.Equal(amount(100000)))
	})

	t.Run("vip gets nothing outside the allow-list", func(t *testing.T) {
		svc := testService(t, "Hydration Boost", 100000)
		customer := testCustomer(t, partner.DiscountClassVIP)
		got := engine.CustomerDiscount(customer, svc, amount(100000), testTime)
		assert.True(t, got.IsZero())
	})

	t.Run("birthday halves eligible premium services", func(t *testing.T) {
		svc := testService(t, "Glow Vitamin Infusion", 120000)
		customer := testCustomer(t, partner.DiscountClassBirthday)
		got := engine.CustomerDiscount(customer, svc, amount(120000), testTime)
		assert.True(t, got.Equal(amount(60000)))
	})

	t.Run("birthday gets nothing outside the premium list", func(t *testing.T) {
		svc := testService(t, "Hydration Boost", 120000)
		customer := testCustomer(t, partner.DiscountClassBirthday)
		got := engine.CustomerDiscount(customer, svc, amount(120000), testTime)
		assert.True(t, got.IsZero())
	})

	t.Run("birthday at the annual cap yields zero", func(t *testing.T) {
		svc := testService(t, "Glow Vitamin Infusion", 120000)
		customer := testCustomer(t, partner.DiscountClassBirthday)
		customer.BirthdayUsageYear = testTime.Year()
		customer.BirthdayUsageCount = partner.BirthdayAnnualCap

		got := engine.CustomerDiscount(customer, svc, amount(120000), testTime)
		assert.True(t, got.IsZero())
	})

	t.Run("stale counter from a previous year does not block", func(t *testing.T) {
		svc := testService(t, "Glow Vitamin Infusion", 120000)
		customer := testCustomer(t, partner.DiscountClassBirthday)
		customer.BirthdayUsageYear = testTime.Year() - 1
		customer.BirthdayUsageCount = partner.BirthdayAnnualCap

		got := engine.CustomerDiscount(customer, svc, amount(120000), testTime)
		assert.True(t, got.Equal(amount(60000)))
	})

	t.Run("employee halves any service", func(t *testing.T) {
		svc := testService(t, "Hydration Boost", 50000)
		customer := testCustomer(t, partner.DiscountClassEmployee)
		got := engine.CustomerDiscount(customer, svc, amount(50000), testTime)
		assert.True(t, got.Equal(amount(25000)))
	})

	t.Run("half amounts are rounded to whole currency units", func(t *testing.T) {
		svc := testService(t, "Hydration Boost", 33333)
		customer := testCustomer(t, partner.DiscountClassEmployee)
		got := engine.CustomerDiscount(customer, svc, amount(33333), testTime)
		assert.True(t, got.Equal(amount(16667)))
	})
}

func TestCalculate(t *testing.T) {
	engine := NewEngine(DefaultPolicy())

	t.Run("regular customer with flat package rate", func(t *testing.T) {
		result, err := engine.Calculate(CalculationInput{
			Service:     testService(t, "Hydration Boost", 80000),
			Customer:    testCustomer(t, partner.DiscountClassRegular),
			PackageType: Package4,
			Quantity:    1,
			At:          testTime,
		})
		require.NoError(t, err)

		assert.True(t, result.OriginalPrice.Equal(amount(320000)))
		assert.True(t, result.PackageDiscount.Equal(amount(32000)))
		assert.True(t, result.CustomerDiscount.IsZero())
		assert.True(t, result.FinalPrice.Equal(amount(288000)))
		assert.Empty(t, result.Conflicts)
		assert.False(t, result.RequiresApproval)
	})

	t.Run("employee half price on a single session", func(t *testing.T) {
		result, err := engine.Calculate(CalculationInput{
			Service:     testService(t, "Hydration Boost", 50000),
			Customer:    testCustomer(t, partner.DiscountClassEmployee),
			PackageType: PackageSingle,
			Quantity:    1,
			At:          testTime,
		})
		require.NoError(t, err)

		assert.True(t, result.CustomerDiscount.Equal(amount(25000)))
		assert.True(t, result.FinalPrice.Equal(amount(25000)))
		assert.True(t, result.Breakdown.Employee.Equal(amount(25000)))
	})

	t.Run("birthday customer under the cap", func(t *testing.T) {
		customer := testCustomer(t, partner.DiscountClassBirthday)
		customer.BirthdayUsageYear = testTime.Year()
		customer.BirthdayUsageCount = 7

		result, err := engine.Calculate(CalculationInput{
			Service:     testService(t, "Glow Vitamin Infusion", 120000),
			Customer:    customer,
			PackageType: PackageSingle,
			Quantity:    1,
			At:          testTime,
		})
		require.NoError(t, err)

		assert.True(t, result.CustomerDiscount.Equal(amount(60000)))
		assert.True(t, result.FinalPrice.Equal(amount(60000)))
		// The engine never touches the counter
		assert.Equal(t, 7, customer.BirthdayUsageCount)
	})

	t.Run("customer discount applies to the post-package price", func(t *testing.T) {
		result, err := engine.Calculate(CalculationInput{
			Service:     testService(t, "Hydration Boost", 80000),
			Customer:    testCustomer(t, partner.DiscountClassEmployee),
			PackageType: Package4,
			Quantity:    1,
			At:          testTime,
		})
		require.NoError(t, err)

		// 320000 - 32000 = 288000, halved
		assert.True(t, result.PackageDiscount.Equal(amount(32000)))
		assert.True(t, result.CustomerDiscount.Equal(amount(144000)))
		assert.True(t, result.FinalPrice.Equal(amount(144000)))
	})

	t.Run("add-ons are additive and never discounted", func(t *testing.T) {
		result, err := engine.Calculate(CalculationInput{
			Service:     testService(t, "Premium NAD+ Therapy", 100000),
			Customer:    testCustomer(t, partner.DiscountClassVIP),
			PackageType: PackageSingle,
			Quantity:    1,
			AddOns: []AddOnLine{
				{ID: "vitamin-shot", Name: "Vitamin Shot", UnitPrice: amount(5000), Quantity: 1},
			},
			At: testTime,
		})
		require.NoError(t, err)

		assert.True(t, result.OriginalPrice.Equal(amount(105000)))
		assert.True(t, result.CustomerDiscount.Equal(amount(100000)))
		assert.True(t, result.FinalPrice.Equal(amount(5000)))
	})

	t.Run("final price never drops below the add-on total", func(t *testing.T) {
		result, err := engine.Calculate(CalculationInput{
			Service:     testService(t, "Premium NAD+ Therapy", 100000),
			Customer:    testCustomer(t, partner.DiscountClassVIP),
			PackageType: PackageSingle,
			Quantity:    1,
			At:          testTime,
		})
		require.NoError(t, err)

		assert.True(t, result.FinalPrice.IsZero())
		assert.True(t, result.FinalPrice.Equal(result.OriginalPrice.Sub(result.TotalDiscount)))
	})

	t.Run("zero price yields zero discount rate", func(t *testing.T) {
		result, err := engine.Calculate(CalculationInput{
			Service:     testService(t, "Hydration Boost", 0),
			Customer:    testCustomer(t, partner.DiscountClassEmployee),
			PackageType: PackageSingle,
			Quantity:    1,
			At:          testTime,
		})
		require.NoError(t, err)
		assert.True(t, result.DiscountRate.IsZero())
	})

	t.Run("ten-pack is rejected outside the allow-list", func(t *testing.T) {
		_, err := engine.Calculate(CalculationInput{
			Service:     testService(t, "Premium NAD+ Therapy", 100000),
			Customer:    testCustomer(t, partner.DiscountClassRegular),
			PackageType: Package10,
			Quantity:    1,
			At:          testTime,
		})
		assert.Error(t, err)
	})

	t.Run("missing service or customer is rejected", func(t *testing.T) {
		_, err := engine.Calculate(CalculationInput{
			Customer:    testCustomer(t, partner.DiscountClassRegular),
			PackageType: PackageSingle,
			Quantity:    1,
		})
		assert.Error(t, err)

		_, err = engine.Calculate(CalculationInput{
			Service:     testService(t, "Hydration Boost", 80000),
			PackageType: PackageSingle,
			Quantity:    1,
		})
		assert.Error(t, err)
	})

	t.Run("non-positive quantity is rejected", func(t *testing.T) {
		_, err := engine.Calculate(CalculationInput{
			Service:     testService(t, "Hydration Boost", 80000),
			Customer:    testCustomer(t, partner.DiscountClassRegular),
			PackageType: PackageSingle,
			Quantity:    0,
		})
		assert.Error(t, err)
	})

	t.Run("identical inputs produce identical output", func(t *testing.T) {
		in := CalculationInput{
			Service:     testService(t, "Glow Vitamin Infusion", 120000),
			Customer:    testCustomer(t, partner.DiscountClassBirthday),
			PackageType: Package4,
			Quantity:    2,
			At:          testTime,
		}

		first, err := engine.Calculate(in)
		require.NoError(t, err)
		second, err := engine.Calculate(in)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})
}

func TestCalculateOverridePricing(t *testing.T) {
	// Standard 4-pack price 320000, override 280000, delta 40000.
	newInput := func(t *testing.T) CalculationInput {
		svc := testService(t, "Hydration Boost", 80000)
		p4 := amount(280000)
		require.NoError(t, svc.SetPackagePrices(&p4, nil, nil))
		return CalculationInput{
			Service:     svc,
			Customer:    testCustomer(t, partner.DiscountClassRegular),
			PackageType: Package4,
			Quantity:    1,
			At:          testTime,
		}
	}

	t.Run("historical mode deducts the delta from the override price", func(t *testing.T) {
		engine := NewEngine(DefaultPolicy())

		result, err := engine.Calculate(newInput(t))
		require.NoError(t, err)

		assert.True(t, result.OriginalPrice.Equal(amount(280000)))
		assert.True(t, result.PackageDiscount.Equal(amount(40000)))
		assert.True(t, result.FinalPrice.Equal(amount(240000)))
	})

	t.Run("corrected mode charges the override price as-is", func(t *testing.T) {
		policy := DefaultPolicy()
		policy.DeductOverrideDelta = false
		engine := NewEngine(policy)

		result, err := engine.Calculate(newInput(t))
		require.NoError(t, err)

		assert.True(t, result.OriginalPrice.Equal(amount(280000)))
		assert.True(t, result.PackageDiscount.IsZero())
		assert.True(t, result.FinalPrice.Equal(amount(280000)))
	})
}
