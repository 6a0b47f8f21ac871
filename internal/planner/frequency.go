// Package planner implements the monthly planning calculations: frequency
// normalization, household aggregates, the transfer timeline, the per-account
// cash-flow simulation and goal recommendations. All functions are pure and
// total: malformed or missing optional fields fall back to documented
// defaults instead of returning errors.
package planner

import (
	"github.com/shopspring/decimal"

	"github.com/mkral/budget-planner/internal/models"
)

var (
	weeklyFactor   = decimal.RequireFromString("4.33")
	biweeklyFactor = decimal.RequireFromString("2.17")
	three          = decimal.NewFromInt(3)
	twelve         = decimal.NewFromInt(12)
	hundred        = decimal.NewFromInt(100)
)

// ToMonthlyAmount converts a recurring amount into its monthly equivalent
// using fixed multipliers (weekly ×4.33, biweekly ×2.17, quarterly ÷3,
// yearly ÷12). Unknown frequencies pass through unchanged.
func ToMonthlyAmount(amount decimal.Decimal, freq models.Frequency) decimal.Decimal {
	switch freq {
	case models.FrequencyWeekly:
		return amount.Mul(weeklyFactor)
	case models.FrequencyBiweekly:
		return amount.Mul(biweeklyFactor)
	case models.FrequencyMonthly:
		return amount
	case models.FrequencyQuarterly:
		return amount.Div(three)
	case models.FrequencyYearly:
		return amount.Div(twelve)
	default:
		return amount
	}
}
