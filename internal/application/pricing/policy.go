package pricing

import (
	"github.com/clinic/backend/internal/domain/pricing"
	"github.com/clinic/backend/internal/infrastructure/config"
	"github.com/shopspring/decimal"
)

// PolicyFromConfig builds the engine policy from configuration. Allow-lists
// left empty in the config fall back to the clinic's standing defaults.
func PolicyFromConfig(cfg config.PricingConfig) pricing.Policy {
	policy := pricing.DefaultPolicy()

	if len(cfg.VIPServiceNames) > 0 {
		policy.VIPServiceNames = cfg.VIPServiceNames
	}
	if len(cfg.BirthdayServiceNames) > 0 {
		policy.BirthdayServiceNames = cfg.BirthdayServiceNames
	}
	if len(cfg.Package10ServiceNames) > 0 {
		policy.Package10ServiceNames = cfg.Package10ServiceNames
	}
	if cfg.BirthdayAnnualCap > 0 {
		policy.BirthdayAnnualCap = cfg.BirthdayAnnualCap
	}
	if cfg.Package4Rate > 0 {
		policy.Package4Rate = decimal.NewFromFloat(cfg.Package4Rate)
	}
	if cfg.Package8Rate > 0 {
		policy.Package8Rate = decimal.NewFromFloat(cfg.Package8Rate)
	}
	if cfg.Package10Rate > 0 {
		policy.Package10Rate = decimal.NewFromFloat(cfg.Package10Rate)
	}
	if cfg.HighDiscountRateThreshold > 0 {
		policy.HighDiscountRateThreshold = decimal.NewFromFloat(cfg.HighDiscountRateThreshold)
	}
	policy.DeductOverrideDelta = cfg.DeductOverrideDelta

	return policy
}
