package pricing

import (
	"github.com/clinic/backend/internal/domain/partner"
	"github.com/shopspring/decimal"
)

// Policy holds the tunable pricing rules. It is loaded from configuration at
// startup and treated as immutable afterwards; the engine never writes to it.
type Policy struct {
	// VIPServiceNames lists the services VIP customers receive free of charge.
	VIPServiceNames []string
	// BirthdayServiceNames lists the premium services eligible for the
	// birthday 50% discount.
	BirthdayServiceNames []string
	// Package10ServiceNames lists the services that may be sold as a 10-pack.
	Package10ServiceNames []string
	// BirthdayAnnualCap is the number of birthday-discounted uses per
	// calendar year before approval is required.
	BirthdayAnnualCap int
	// Flat package discount rates applied when no override price is set.
	Package4Rate  decimal.Decimal
	Package8Rate  decimal.Decimal
	Package10Rate decimal.Decimal
	// HighDiscountRateThreshold flags combinations whose combined discount
	// reaches this share of the tier's nominal price.
	HighDiscountRateThreshold decimal.Decimal
	// DeductOverrideDelta preserves the historical behavior of subtracting
	// the override-based package saving from the override-based original
	// price, applying it twice in effect. Set false to charge the override
	// price as-is and report the saving without deducting it again.
	DeductOverrideDelta bool
}

// DefaultPolicy returns the clinic's standing pricing rules
func DefaultPolicy() Policy {
	return Policy{
		VIPServiceNames:           []string{"Premium NAD+ Therapy", "Executive Recovery Drip"},
		BirthdayServiceNames:      []string{"Premium NAD+ Therapy", "Executive Recovery Drip", "Glow Vitamin Infusion"},
		Package10ServiceNames:     []string{"Hydration Boost", "Immune Support Drip", "Glow Vitamin Infusion"},
		BirthdayAnnualCap:         partner.BirthdayAnnualCap,
		Package4Rate:              decimal.NewFromFloat(0.10),
		Package8Rate:              decimal.NewFromFloat(0.20),
		Package10Rate:             decimal.NewFromFloat(0.25),
		HighDiscountRateThreshold: decimal.NewFromFloat(0.70),
		DeductOverrideDelta:       true,
	}
}

// PackageRate returns the flat discount rate for the tier. Single and unknown
// tiers carry no package discount.
func (p Policy) PackageRate(tier PackageType) decimal.Decimal {
	switch tier {
	case Package4:
		return p.Package4Rate
	case Package8:
		return p.Package8Rate
	case Package10:
		return p.Package10Rate
	default:
		return decimal.Zero
	}
}

// VIPEligible reports whether the service is free for VIP customers
func (p Policy) VIPEligible(serviceName string) bool {
	return containsName(p.VIPServiceNames, serviceName)
}

// BirthdayEligible reports whether the service qualifies for the birthday discount
func (p Policy) BirthdayEligible(serviceName string) bool {
	return containsName(p.BirthdayServiceNames, serviceName)
}

// Package10Allowed reports whether the service may be sold as a 10-pack
func (p Policy) Package10Allowed(serviceName string) bool {
	return containsName(p.Package10ServiceNames, serviceName)
}

// TierAllowed reports whether the tier may be sold for the service.
// Only the 10-pack is gated by an allow-list.
func (p Policy) TierAllowed(tier PackageType, serviceName string) bool {
	if tier == Package10 {
		return p.Package10Allowed(serviceName)
	}
	return true
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
