package models

import "github.com/shopspring/decimal"

// Expense represents a fixed recurring expense.
// DueMonth anchors quarterly/yearly cadence: a yearly expense fires only
// when the simulated month equals DueMonth, a quarterly one every third
// month counted from it. DueMonth 0 keeps the expense firing every month.
type Expense struct {
	ID         int64           `json:"id"`
	UserID     int64           `json:"user_id"`
	Name       string          `json:"name"`
	Amount     decimal.Decimal `json:"amount"`
	Category   string          `json:"category"`
	Frequency  Frequency       `json:"frequency"`
	DayOfMonth int             `json:"day_of_month"`
	DueMonth   int             `json:"due_month,omitempty"` // 1-12, 0 means unset
	AccountID  *int64          `json:"account_id,omitempty"`
	MemberID   *int64          `json:"member_id,omitempty"` // nil means shared
	Notes      string          `json:"notes,omitempty"`
	Active     bool            `json:"active"`
	CreatedAt  string          `json:"created_at"`
	UpdatedAt  string          `json:"updated_at"`
}
