package pricing

import (
	"time"

	"github.com/clinic/backend/internal/domain/catalog"
	"github.com/clinic/backend/internal/domain/partner"
	"github.com/shopspring/decimal"
)

// PackageType represents a package purchase tier
type PackageType string

const (
	PackageSingle PackageType = "single"
	Package4      PackageType = "package4"
	Package8      PackageType = "package8"
	Package10     PackageType = "package10"
)

// packageTiers lists the multi-use tiers in generation order
var packageTiers = []PackageType{Package4, Package8, Package10}

// Units returns the number of treatment units in the tier.
// Unknown tiers degrade to single-unit pricing.
func (p PackageType) Units() int {
	switch p {
	case Package4:
		return 4
	case Package8:
		return 8
	case Package10:
		return 10
	default:
		return 1
	}
}

// IsPackage returns true for multi-use tiers
func (p PackageType) IsPackage() bool {
	return p.Units() > 1
}

// AddOnLine represents an optional add-on attached to an order line.
// Add-ons are priced additively and never discounted.
type AddOnLine struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

// Total returns the add-on line total
func (a AddOnLine) Total() decimal.Decimal {
	return a.UnitPrice.Mul(decimal.NewFromInt(int64(a.Quantity)))
}

// AddOnTotal sums a set of add-on lines
func AddOnTotal(addOns []AddOnLine) decimal.Decimal {
	total := decimal.Zero
	for _, a := range addOns {
		total = total.Add(a.Total())
	}
	return total
}

// DiscountBreakdown decomposes a total discount into its contributing rule
// amounts. At most one of the customer-class fields (VIP, Birthday, Employee)
// is non-zero per calculation because the discount class is exclusive; the
// package amount is computed independently.
type DiscountBreakdown struct {
	VIP      decimal.Decimal `json:"vip"`
	Birthday decimal.Decimal `json:"birthday"`
	Employee decimal.Decimal `json:"employee"`
	Package  decimal.Decimal `json:"package"`
	AddOn    decimal.Decimal `json:"add_on"`
}

// CustomerClassAmount returns the largest of the customer-class amounts.
// Under the exclusivity invariant this is the single applied class amount.
func (b DiscountBreakdown) CustomerClassAmount() decimal.Decimal {
	max := b.VIP
	if b.Birthday.GreaterThan(max) {
		max = b.Birthday
	}
	if b.Employee.GreaterThan(max) {
		max = b.Employee
	}
	return max
}

// CustomerClassCount returns how many customer-class amounts are non-zero
func (b DiscountBreakdown) CustomerClassCount() int {
	count := 0
	for _, amt := range []decimal.Decimal{b.VIP, b.Birthday, b.Employee} {
		if amt.GreaterThan(decimal.Zero) {
			count++
		}
	}
	return count
}

// Total sums all breakdown amounts
func (b DiscountBreakdown) Total() decimal.Decimal {
	return b.VIP.Add(b.Birthday).Add(b.Employee).Add(b.Package).Add(b.AddOn)
}

// CalculationInput carries everything a single price calculation needs.
// The engine never mutates the service or customer.
type CalculationInput struct {
	Service     *catalog.Service
	Customer    *partner.Customer
	PackageType PackageType
	Quantity    int
	AddOns      []AddOnLine
	// At anchors year-sensitive rules (birthday cap). Zero means now.
	At time.Time
}

func (in CalculationInput) at() time.Time {
	if in.At.IsZero() {
		return time.Now()
	}
	return in.At
}

// CalculationResult is the checkout-path output: one concrete combination
// priced with its conflicts.
type CalculationResult struct {
	OriginalPrice    decimal.Decimal   `json:"original_price"`
	PackageDiscount  decimal.Decimal   `json:"package_discount"`
	CustomerDiscount decimal.Decimal   `json:"customer_discount"`
	AddOnTotal       decimal.Decimal   `json:"add_on_total"`
	TotalDiscount    decimal.Decimal   `json:"total_discount"`
	FinalPrice       decimal.Decimal   `json:"final_price"`
	DiscountRate     decimal.Decimal   `json:"discount_rate"`
	Breakdown        DiscountBreakdown `json:"breakdown"`
	Conflicts        []Conflict        `json:"conflicts"`
	RequiresApproval bool              `json:"requires_approval"`
}
