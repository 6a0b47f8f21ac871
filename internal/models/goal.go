package models

import "github.com/shopspring/decimal"

// GoalVariant selects the recommendation rule applied to a goal.
type GoalVariant string

const (
	GoalWeeklyVariable GoalVariant = "weekly_variable"
	GoalFund           GoalVariant = "fund"
	GoalYearly         GoalVariant = "yearly_goal"
)

// Valid reports whether v is one of the known goal variants.
func (v GoalVariant) Valid() bool {
	switch v {
	case GoalWeeklyVariable, GoalFund, GoalYearly:
		return true
	}
	return false
}

// Goal represents a savings or variable-cost financial goal.
// Only the fields of the goal's variant carry meaning:
// weekly_variable uses WeeklyAmount and DayOfWeek (0=Monday..6=Sunday),
// fund uses MonthlyContribution and Balance,
// yearly_goal uses YearlyAmount, TargetMonth and Saved.
type Goal struct {
	ID                  int64           `json:"id"`
	UserID              int64           `json:"user_id"`
	Name                string          `json:"name"`
	Variant             GoalVariant     `json:"variant"`
	Color               string          `json:"color"`
	Icon                string          `json:"icon,omitempty"`
	WeeklyAmount        decimal.Decimal `json:"weekly_amount"`
	DayOfWeek           int             `json:"day_of_week"`
	MonthlyContribution decimal.Decimal `json:"monthly_contribution"`
	Balance             decimal.Decimal `json:"current_balance"`
	YearlyAmount        decimal.Decimal `json:"yearly_amount"`
	TargetMonth         int             `json:"target_month"` // 1-12
	Saved               decimal.Decimal `json:"current_saved"`
	AccountID           *int64          `json:"account_id,omitempty"`
	Notes               string          `json:"notes,omitempty"`
	Active              bool            `json:"active"`
	CreatedAt           string          `json:"created_at"`
	UpdatedAt           string          `json:"updated_at"`
}
