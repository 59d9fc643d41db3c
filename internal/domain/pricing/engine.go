package pricing

import (
	"fmt"
	"time"

	"github.com/clinic/backend/internal/domain/catalog"
	"github.com/clinic/backend/internal/domain/partner"
	"github.com/clinic/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

var half = decimal.NewFromFloat(0.5)

// Engine performs discount calculation and optimization. It is stateless
// apart from the policy and safe for concurrent use; all inputs are read-only
// snapshots and every call computes from scratch.
type Engine struct {
	policy Policy
}

// NewEngine creates an engine bound to a pricing policy
func NewEngine(policy Policy) *Engine {
	return &Engine{policy: policy}
}

// Policy returns the engine's policy
func (e *Engine) Policy() Policy {
	return e.policy
}

// ResolveBasePrice returns the pre-discount price for the tier and quantity.
// A configured override price replaces the standard base-times-units price
// for its tier; quantity multiplies either.
func (e *Engine) ResolveBasePrice(svc *catalog.Service, tier PackageType, quantity int) decimal.Decimal {
	qty := decimal.NewFromInt(int64(quantity))
	if override := svc.PackageOverride(tier.Units()); override != nil {
		return override.Mul(qty)
	}
	return e.standardPrice(svc, tier, quantity)
}

// standardPrice is the no-override tier price: base price times units times quantity.
func (e *Engine) standardPrice(svc *catalog.Service, tier PackageType, quantity int) decimal.Decimal {
	units := decimal.NewFromInt(int64(tier.Units()))
	qty := decimal.NewFromInt(int64(quantity))
	return svc.BasePrice.Mul(units).Mul(qty)
}

// PackageDiscount returns the saving a package tier yields against buying the
// same number of units as singles. Override-priced tiers yield the delta
// between the standard price and the override; flat-rate tiers yield the
// standard price times the tier rate, rounded to whole currency units.
// Single purchases and negative deltas yield zero.
func (e *Engine) PackageDiscount(svc *catalog.Service, tier PackageType, quantity int) decimal.Decimal {
	if !tier.IsPackage() {
		return decimal.Zero
	}
	standard := e.standardPrice(svc, tier, quantity)
	if override := svc.PackageOverride(tier.Units()); override != nil {
		qty := decimal.NewFromInt(int64(quantity))
		delta := standard.Sub(override.Mul(qty))
		if delta.IsNegative() {
			return decimal.Zero
		}
		return delta
	}
	return standard.Mul(e.policy.PackageRate(tier)).Round(0)
}

// CustomerDiscount returns the customer-class discount against the given
// reference price. Classes are mutually exclusive so at most one rule fires:
// VIP takes the service free when allow-listed, BIRTHDAY halves eligible
// premium services while the annual counter is under the cap, EMPLOYEE halves
// anything, REGULAR gets nothing.
func (e *Engine) CustomerDiscount(customer *partner.Customer, svc *catalog.Service, reference decimal.Decimal, at time.Time) decimal.Decimal {
	return e.classDiscount(customer.DiscountClass, customer, svc, reference, at)
}

func (e *Engine) classDiscount(class partner.DiscountClass, customer *partner.Customer, svc *catalog.Service, reference decimal.Decimal, at time.Time) decimal.Decimal {
	if customer.DiscountClass != class {
		return decimal.Zero
	}
	switch class {
	case partner.DiscountClassVIP:
		if e.policy.VIPEligible(svc.Name) {
			return reference
		}
		return decimal.Zero
	case partner.DiscountClassBirthday:
		if !e.policy.BirthdayEligible(svc.Name) {
			return decimal.Zero
		}
		if customer.BirthdayUsesThisYear(at.Year()) >= e.policy.BirthdayAnnualCap {
			return decimal.Zero
		}
		return reference.Mul(half).Round(0)
	case partner.DiscountClassEmployee:
		return reference.Mul(half).Round(0)
	default:
		return decimal.Zero
	}
}

// DetectConflicts inspects a discount breakdown for combinations that need
// review. Detection never blocks the calculation.
func (e *Engine) DetectConflicts(breakdown DiscountBreakdown, customer *partner.Customer, svc *catalog.Service, tier PackageType, at time.Time) []Conflict {
	var conflicts []Conflict

	if breakdown.CustomerClassCount() > 1 {
		conflicts = append(conflicts, NewConflict(ConflictMultipleCustomerDiscounts,
			"more than one customer-class discount applied to a single order line"))
	}

	if breakdown.Package.GreaterThan(decimal.Zero) && breakdown.VIP.GreaterThan(decimal.Zero) {
		conflicts = append(conflicts, NewConflict(ConflictPackageWithFreeTier,
			fmt.Sprintf("package discount stacked on a VIP-free service (%s)", svc.Name)))
	}

	if breakdown.Birthday.GreaterThan(decimal.Zero) &&
		customer.BirthdayUsesThisYear(at.Year()) >= e.policy.BirthdayAnnualCap {
		conflicts = append(conflicts, NewConflict(ConflictAnnualCapExceeded,
			fmt.Sprintf("birthday discount beyond the annual cap of %d uses", e.policy.BirthdayAnnualCap)))
	}

	nominal := e.ResolveBasePrice(svc, tier, 1)
	if nominal.GreaterThan(decimal.Zero) {
		combined := breakdown.Package.Add(breakdown.CustomerClassAmount())
		rate := combined.Div(nominal)
		if rate.GreaterThanOrEqual(e.policy.HighDiscountRateThreshold) {
			conflicts = append(conflicts, NewConflict(ConflictHighDiscountRate,
				fmt.Sprintf("combined discount reaches %s%% of the tier price", rate.Mul(decimal.NewFromInt(100)).Round(1))))
		}
	}

	return conflicts
}

// Calculate prices one concrete purchase: the requested tier and quantity with
// the customer's own discount class. The package discount is computed against
// the tier's nominal price and the customer discount against the post-package
// remainder; add-ons are appended undiscounted. The final price never goes
// below the add-on total.
func (e *Engine) Calculate(in CalculationInput) (*CalculationResult, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if !e.policy.TierAllowed(in.PackageType, in.Service.Name) {
		return nil, shared.NewDomainError("TIER_NOT_ALLOWED", "Service cannot be sold in this package tier")
	}

	at := in.at()
	addOnTotal := AddOnTotal(in.AddOns)
	tierPrice := e.ResolveBasePrice(in.Service, in.PackageType, in.Quantity)
	original := tierPrice.Add(addOnTotal)

	pkgDiscount := e.PackageDiscount(in.Service, in.PackageType, in.Quantity)
	pkgDeduction := pkgDiscount
	if in.Service.PackageOverride(in.PackageType.Units()) != nil && !e.policy.DeductOverrideDelta {
		// The override price already embeds the package saving; report it
		// without subtracting it a second time.
		pkgDeduction = decimal.Zero
	}

	reference := tierPrice.Sub(pkgDeduction)
	if reference.IsNegative() {
		reference = decimal.Zero
	}
	custDiscount := e.CustomerDiscount(in.Customer, in.Service, reference, at)

	breakdown := DiscountBreakdown{}
	breakdown.Package = pkgDeduction
	switch in.Customer.DiscountClass {
	case partner.DiscountClassVIP:
		breakdown.VIP = custDiscount
	case partner.DiscountClassBirthday:
		breakdown.Birthday = custDiscount
	case partner.DiscountClassEmployee:
		breakdown.Employee = custDiscount
	}

	conflicts := e.DetectConflicts(breakdown, in.Customer, in.Service, in.PackageType, at)

	total := pkgDeduction.Add(custDiscount)
	final := original.Sub(total)
	floor := addOnTotal
	if final.LessThan(floor) {
		final = floor
		total = original.Sub(final)
	}

	rate := decimal.Zero
	if original.GreaterThan(decimal.Zero) {
		rate = total.Div(original).Round(4)
	}

	return &CalculationResult{
		OriginalPrice:    original,
		PackageDiscount:  pkgDeduction,
		CustomerDiscount: custDiscount,
		AddOnTotal:       addOnTotal,
		TotalDiscount:    total,
		FinalPrice:       final,
		DiscountRate:     rate,
		Breakdown:        breakdown,
		Conflicts:        conflicts,
		RequiresApproval: AnyRequiresApproval(conflicts),
	}, nil
}

func validateInput(in CalculationInput) error {
	if in.Service == nil {
		return shared.NewDomainError("INVALID_INPUT", "Service is required")
	}
	if in.Customer == nil {
		return shared.NewDomainError("INVALID_INPUT", "Customer is required")
	}
	if in.Quantity < 1 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	for _, a := range in.AddOns {
		if a.Quantity < 1 {
			return shared.NewDomainError("INVALID_QUANTITY", "Add-on quantity must be at least 1")
		}
		if a.UnitPrice.IsNegative() {
			return shared.NewDomainError("INVALID_PRICE", "Add-on price cannot be negative")
		}
	}
	return nil
}
