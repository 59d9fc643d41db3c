package pricing

// ConflictKind identifies a discount conflict rule
type ConflictKind string

const (
	ConflictMultipleCustomerDiscounts ConflictKind = "multiple_customer_discounts"
	ConflictPackageWithFreeTier       ConflictKind = "package_with_free_tier"
	ConflictAnnualCapExceeded         ConflictKind = "annual_cap_exceeded"
	ConflictHighDiscountRate          ConflictKind = "high_discount_rate"
	ConflictCustom                    ConflictKind = "custom"
)

// ConflictSeverity grades a conflict
type ConflictSeverity string

const (
	SeverityWarning  ConflictSeverity = "warning"
	SeverityCritical ConflictSeverity = "critical"
)

// Conflict describes a problematic discount combination detected during a
// calculation. A conflict never blocks the calculation; it flags the result
// for review and, depending on the kind, for managerial approval.
type Conflict struct {
	Kind             ConflictKind     `json:"kind"`
	Severity         ConflictSeverity `json:"severity"`
	Description      string           `json:"description"`
	RequiresApproval bool             `json:"requires_approval"`
}

// DefaultSeverity returns the grade assigned to the conflict kind
func (k ConflictKind) DefaultSeverity() ConflictSeverity {
	switch k {
	case ConflictAnnualCapExceeded:
		return SeverityCritical
	case ConflictMultipleCustomerDiscounts, ConflictPackageWithFreeTier, ConflictHighDiscountRate, ConflictCustom:
		return SeverityWarning
	default:
		return SeverityWarning
	}
}

// NeedsApproval returns whether the conflict kind requires managerial approval
func (k ConflictKind) NeedsApproval() bool {
	switch k {
	case ConflictMultipleCustomerDiscounts, ConflictPackageWithFreeTier, ConflictAnnualCapExceeded:
		return true
	case ConflictHighDiscountRate:
		return false
	default:
		return false
	}
}

// NewConflict builds a conflict with the kind's default severity and approval flag
func NewConflict(kind ConflictKind, description string) Conflict {
	return Conflict{
		Kind:             kind,
		Severity:         kind.DefaultSeverity(),
		Description:      description,
		RequiresApproval: kind.NeedsApproval(),
	}
}

// AnyRequiresApproval reports whether any conflict in the set requires approval
func AnyRequiresApproval(conflicts []Conflict) bool {
	for _, c := range conflicts {
		if c.RequiresApproval {
			return true
		}
	}
	return false
}
