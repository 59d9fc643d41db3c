package pricing

import (
	"fmt"
	"sort"
	"time"

	"github.com/clinic/backend/internal/domain/partner"
	"github.com/shopspring/decimal"
)

// customerClasses lists the discounting classes in generation order
var customerClasses = []partner.DiscountClass{
	partner.DiscountClassVIP,
	partner.DiscountClassBirthday,
	partner.DiscountClassEmployee,
}

// Optimize enumerates every viable discount option for the purchase and ranks
// them by discount amount, largest first. Generation follows a fixed order so
// equal-amount options rank deterministically: customer-class discounts on
// single sessions, then each package tier alone, then tier-and-class
// combinations, then the no-discount floor. Combination options always
// require approval regardless of detected conflicts.
func (e *Engine) Optimize(in CalculationInput) (*OptimalResult, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	at := in.at()
	addOnTotal := AddOnTotal(in.AddOns)

	// A tier the policy disallows for this service cannot anchor the
	// baseline or the no-discount floor; single-session pricing does.
	baseTier := in.PackageType
	if !e.policy.TierAllowed(baseTier, in.Service.Name) {
		baseTier = PackageSingle
	}
	original := e.ResolveBasePrice(in.Service, baseTier, in.Quantity).Add(addOnTotal)

	var options []DiscountOption

	for _, class := range customerClasses {
		if opt, ok := e.buildOption(in, PackageSingle, class, at, addOnTotal); ok {
			options = append(options, opt)
		}
	}

	for _, tier := range packageTiers {
		if opt, ok := e.buildOption(in, tier, "", at, addOnTotal); ok {
			options = append(options, opt)
		}
	}

	for _, tier := range packageTiers {
		for _, class := range customerClasses {
			if opt, ok := e.buildOption(in, tier, class, at, addOnTotal); ok {
				options = append(options, opt)
			}
		}
	}

	options = append(options, DiscountOption{
		Kind:           OptionNoDiscount,
		Tier:           baseTier,
		Label:          "No discount",
		OriginalPrice:  original,
		DiscountAmount: decimal.Zero,
		FinalPrice:     original,
		DiscountRate:   decimal.Zero,
	})

	sort.SliceStable(options, func(i, j int) bool {
		return options[i].DiscountAmount.GreaterThan(options[j].DiscountAmount)
	})

	return &OptimalResult{
		OriginalPrice: original,
		BestOption:    options[0],
		AllOptions:    options,
		CanAutoApply:  !options[0].RequiresApproval,
	}, nil
}

// buildOption prices one candidate tier-and-class pairing with the same math
// as Calculate. It returns false when the pairing yields nothing: a class the
// customer does not hold, an ineligible service, a disallowed tier, or a zero
// package saving.
func (e *Engine) buildOption(in CalculationInput, tier PackageType, class partner.DiscountClass, at time.Time, addOnTotal decimal.Decimal) (DiscountOption, bool) {
	if !e.policy.TierAllowed(tier, in.Service.Name) {
		return DiscountOption{}, false
	}

	pkgDiscount := e.PackageDiscount(in.Service, tier, in.Quantity)
	if tier.IsPackage() && !pkgDiscount.GreaterThan(decimal.Zero) {
		return DiscountOption{}, false
	}
	pkgDeduction := pkgDiscount
	if in.Service.PackageOverride(tier.Units()) != nil && !e.policy.DeductOverrideDelta {
		pkgDeduction = decimal.Zero
	}

	tierPrice := e.ResolveBasePrice(in.Service, tier, in.Quantity)
	reference := tierPrice.Sub(pkgDeduction)
	if reference.IsNegative() {
		reference = decimal.Zero
	}

	classAmount := decimal.Zero
	if class != "" {
		classAmount = e.classDiscount(class, in.Customer, in.Service, reference, at)
		if !classAmount.GreaterThan(decimal.Zero) {
			return DiscountOption{}, false
		}
	}

	breakdown := DiscountBreakdown{Package: pkgDeduction}
	switch class {
	case partner.DiscountClassVIP:
		breakdown.VIP = classAmount
	case partner.DiscountClassBirthday:
		breakdown.Birthday = classAmount
	case partner.DiscountClassEmployee:
		breakdown.Employee = classAmount
	}

	conflicts := e.DetectConflicts(breakdown, in.Customer, in.Service, tier, at)

	total := pkgDeduction.Add(classAmount)
	optOriginal := tierPrice.Add(addOnTotal)
	final := optOriginal.Sub(total)
	if final.LessThan(addOnTotal) {
		final = addOnTotal
		total = optOriginal.Sub(final)
	}

	rate := decimal.Zero
	if optOriginal.GreaterThan(decimal.Zero) {
		rate = total.Div(optOriginal).Round(4)
	}

	kind := optionKind(tier, class)
	opt := DiscountOption{
		Kind:             kind,
		Tier:             tier,
		Class:            class,
		Label:            optionLabel(tier, class),
		OriginalPrice:    optOriginal,
		DiscountAmount:   total,
		FinalPrice:       final,
		DiscountRate:     rate,
		Breakdown:        breakdown,
		Conflicts:        conflicts,
		RequiresApproval: kind == OptionCombination || AnyRequiresApproval(conflicts),
	}
	return opt, true
}

func optionKind(tier PackageType, class partner.DiscountClass) OptionKind {
	switch {
	case tier.IsPackage() && class != "":
		return OptionCombination
	case tier.IsPackage():
		return OptionPackageOnly
	case class != "":
		return OptionCustomerOnly
	default:
		return OptionNoDiscount
	}
}

func optionLabel(tier PackageType, class partner.DiscountClass) string {
	classLabel := map[partner.DiscountClass]string{
		partner.DiscountClassVIP:      "VIP free service",
		partner.DiscountClassBirthday: "Birthday 50% off",
		partner.DiscountClassEmployee: "Employee 50% off",
	}
	tierLabel := map[PackageType]string{
		Package4:  "4-session package",
		Package8:  "8-session package",
		Package10: "10-session package",
	}
	switch {
	case tier.IsPackage() && class != "":
		return fmt.Sprintf("%s + %s", tierLabel[tier], classLabel[class])
	case tier.IsPackage():
		return tierLabel[tier]
	case class != "":
		return classLabel[class]
	default:
		return "No discount"
	}
}
