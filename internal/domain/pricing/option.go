package pricing

import (
	"github.com/clinic/backend/internal/domain/partner"
	"github.com/shopspring/decimal"
)

// OptionKind identifies how a discount option was assembled
type OptionKind string

const (
	OptionCustomerOnly OptionKind = "customer_only"
	OptionPackageOnly  OptionKind = "package_only"
	OptionCombination  OptionKind = "combination"
	OptionNoDiscount   OptionKind = "no_discount"
)

// DiscountOption is one candidate way to discount a purchase. Options are
// generated by the optimizer and ranked by discount amount.
type DiscountOption struct {
	Kind             OptionKind            `json:"kind"`
	Tier             PackageType           `json:"tier"`
	Class            partner.DiscountClass `json:"class,omitempty"`
	Label            string                `json:"label"`
	OriginalPrice    decimal.Decimal       `json:"original_price"`
	DiscountAmount   decimal.Decimal       `json:"discount_amount"`
	FinalPrice       decimal.Decimal       `json:"final_price"`
	DiscountRate     decimal.Decimal       `json:"discount_rate"`
	Breakdown        DiscountBreakdown     `json:"breakdown"`
	Conflicts        []Conflict            `json:"conflicts"`
	RequiresApproval bool                  `json:"requires_approval"`
}

// OptimalResult is the advisory output of the optimizer: every viable option
// ranked best-first, with the recommendation on top.
type OptimalResult struct {
	OriginalPrice decimal.Decimal  `json:"original_price"`
	BestOption    DiscountOption   `json:"best_option"`
	AllOptions    []DiscountOption `json:"all_options"`
	CanAutoApply  bool             `json:"can_auto_apply"`
}
