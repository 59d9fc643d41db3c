package pricing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ApprovalPayload is the serializable snapshot a managerial approval request
// carries: who is buying what, the money involved, and why review is needed.
// It is assembled here so the approval workflow never recomputes prices.
type ApprovalPayload struct {
	CustomerID     string            `json:"customer_id"`
	CustomerName   string            `json:"customer_name"`
	ServiceName    string            `json:"service_name"`
	Tier           PackageType       `json:"tier"`
	Quantity       int               `json:"quantity"`
	OrderSummary   string            `json:"order_summary"`
	OriginalAmount decimal.Decimal   `json:"original_amount"`
	DiscountAmount decimal.Decimal   `json:"discount_amount"`
	FinalAmount    decimal.Decimal   `json:"final_amount"`
	Breakdown      DiscountBreakdown `json:"breakdown"`
	ConflictReason string            `json:"conflict_reason"`
	RequestedBy    string            `json:"requested_by"`
	StaffNote      string            `json:"staff_note,omitempty"`
}

// BuildApprovalRequest assembles the approval payload for a chosen option.
// Conflict descriptions are joined into a single human-readable reason line.
func BuildApprovalRequest(in CalculationInput, option DiscountOption, requestedBy, staffNote string) ApprovalPayload {
	return ApprovalPayload{
		CustomerID:     in.Customer.ID.String(),
		CustomerName:   in.Customer.Name,
		ServiceName:    in.Service.Name,
		Tier:           option.Tier,
		Quantity:       in.Quantity,
		OrderSummary:   summarizeOrder(in, option.Tier),
		OriginalAmount: option.OriginalPrice,
		DiscountAmount: option.DiscountAmount,
		FinalAmount:    option.FinalPrice,
		Breakdown:      option.Breakdown,
		ConflictReason: joinConflicts(option.Conflicts),
		RequestedBy:    requestedBy,
		StaffNote:      staffNote,
	}
}

// BuildApprovalRequestFromCalculation assembles the approval payload for a
// checkout-path calculation on the requested tier.
func BuildApprovalRequestFromCalculation(in CalculationInput, result *CalculationResult, requestedBy, staffNote string) ApprovalPayload {
	return ApprovalPayload{
		CustomerID:     in.Customer.ID.String(),
		CustomerName:   in.Customer.Name,
		ServiceName:    in.Service.Name,
		Tier:           in.PackageType,
		Quantity:       in.Quantity,
		OrderSummary:   summarizeOrder(in, in.PackageType),
		OriginalAmount: result.OriginalPrice,
		DiscountAmount: result.TotalDiscount,
		FinalAmount:    result.FinalPrice,
		Breakdown:      result.Breakdown,
		ConflictReason: joinConflicts(result.Conflicts),
		RequestedBy:    requestedBy,
		StaffNote:      staffNote,
	}
}

func summarizeOrder(in CalculationInput, tier PackageType) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s x%d (%s)", in.Service.Name, in.Quantity, tier)
	for _, a := range in.AddOns {
		fmt.Fprintf(&b, " + %s x%d", a.Name, a.Quantity)
	}
	return b.String()
}

func joinConflicts(conflicts []Conflict) string {
	if len(conflicts) == 0 {
		return ""
	}
	descriptions := make([]string, 0, len(conflicts))
	for _, c := range conflicts {
		descriptions = append(descriptions, c.Description)
	}
	return strings.Join(descriptions, "; ")
}
