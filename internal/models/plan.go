package models

import "github.com/shopspring/decimal"

// MonthlyPlan tracks planned vs realized occurrences of a goal for one
// (year, month). RealizedCount never exceeds PlannedCount.
type MonthlyPlan struct {
	ID            int64           `json:"id"`
	GoalID        int64           `json:"goal_id"`
	Year          int             `json:"year"`
	Month         int             `json:"month"`
	PlannedCount  int             `json:"planned_count"`
	RealizedCount int             `json:"realized_count"`
	PlannedTotal  decimal.Decimal `json:"planned_total"`
	RealizedTotal decimal.Decimal `json:"realized_total"`
	CreatedAt     string          `json:"created_at"`
	UpdatedAt     string          `json:"updated_at"`
}
