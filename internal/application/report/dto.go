package report

import (
	"time"

	"github.com/clinic/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// RevenueTotalsResponse represents aggregated revenue figures
type RevenueTotalsResponse struct {
	OrderCount     int64           `json:"order_count"`
	GrossAmount    decimal.Decimal `json:"gross_amount"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	NetAmount      decimal.Decimal `json:"net_amount"`
}

// RevenueReportResponse represents the revenue report for a period
type RevenueReportResponse struct {
	From             time.Time                        `json:"from"`
	To               time.Time                        `json:"to"`
	Totals           RevenueTotalsResponse            `json:"totals"`
	ByTier           map[string]RevenueTotalsResponse `json:"by_tier"`
	PendingApprovals int64                            `json:"pending_approvals"`
}

func toRevenueTotalsResponse(t trade.RevenueTotals) RevenueTotalsResponse {
	return RevenueTotalsResponse{
		OrderCount:     t.OrderCount,
		GrossAmount:    t.GrossAmount,
		DiscountAmount: t.DiscountAmount,
		NetAmount:      t.NetAmount,
	}
}
