package models

import "github.com/shopspring/decimal"

// Summary represents household-level monthly aggregates
type Summary struct {
	TotalMonthlyIncome decimal.Decimal   `json:"total_monthly_income"`
	TotalFixedExpenses decimal.Decimal   `json:"total_fixed_expenses"`
	TotalBudgets       decimal.Decimal   `json:"total_budgets"`
	Remaining          decimal.Decimal   `json:"remaining"` // negative signals a deficit
	Members            []MemberBreakdown `json:"members"`
	Categories         []CategoryShare   `json:"categories"`
}

// MemberBreakdown represents one member's monthly income share
type MemberBreakdown struct {
	MemberID      int64           `json:"member_id"`
	Name          string          `json:"name"`
	MonthlyIncome decimal.Decimal `json:"monthly_income"`
	IncomeShare   decimal.Decimal `json:"income_share"` // percent of total income
}

// CategoryShare represents a spending category's share of total income
type CategoryShare struct {
	Category      string          `json:"category"`
	MonthlyAmount decimal.Decimal `json:"monthly_amount"`
	IncomeShare   decimal.Decimal `json:"income_share"` // percent of total income
}

// TimelineDay groups the transfers scheduled for one day of the month
type TimelineDay struct {
	Day       int             `json:"day"`
	Transfers []Transfer      `json:"transfers"`
	Total     decimal.Decimal `json:"total"`
}

// Timeline represents the day-ordered transfer schedule for a month
type Timeline struct {
	Days        []TimelineDay   `json:"days"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// EventType classifies a simulated cash-flow event.
type EventType string

const (
	EventIncome      EventType = "income"
	EventExpense     EventType = "expense"
	EventTransferIn  EventType = "transfer_in"
	EventTransferOut EventType = "transfer_out"
)

// CashFlowEvent represents one dated money movement within a simulated month
type CashFlowEvent struct {
	Day         int             `json:"day"`
	Type        EventType       `json:"type"`
	Amount      decimal.Decimal `json:"amount"` // signed
	Description string          `json:"description"`
	Balance     decimal.Decimal `json:"balance"` // running balance after the event
}

// AccountCashFlow represents the simulated month of a single account
type AccountCashFlow struct {
	AccountID          int64           `json:"account_id"`
	AccountName        string          `json:"account_name"`
	InitialBalance     decimal.Decimal `json:"initial_balance"`
	Events             []CashFlowEvent `json:"events"`
	MinBalance         decimal.Decimal `json:"min_balance"`
	TotalInflow        decimal.Decimal `json:"total_inflow"`
	TotalOutflow       decimal.Decimal `json:"total_outflow"` // positive magnitude
	EndOfMonthBalance  decimal.Decimal `json:"end_of_month_balance"`
	HasNegativeBalance bool            `json:"has_negative_balance"`
	Premium            *PremiumCheck   `json:"premium,omitempty"`
}

// PremiumCheck represents the minimum-turnover evaluation of a premium account
type PremiumCheck struct {
	RequiredFlow decimal.Decimal `json:"required_flow"`
	ActualFlow   decimal.Decimal `json:"actual_flow"`
	IsOk         bool            `json:"is_ok"`
}

// GoalRecommendation represents the suggested monthly allocation for a goal
type GoalRecommendation struct {
	GoalID      int64           `json:"goal_id"`
	Name        string          `json:"name"`
	Variant     GoalVariant     `json:"variant"`
	Recommended decimal.Decimal `json:"recommended"`
	Occurrences int             `json:"occurrences,omitempty"` // weekly_variable only
	SavedBonus  decimal.Decimal `json:"saved_bonus"`           // weekly_variable only
	Progress    decimal.Decimal `json:"progress"`              // yearly_goal only, percent
}
