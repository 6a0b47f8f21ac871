package models

import "github.com/shopspring/decimal"

// Income represents a recurring income of a household member
type Income struct {
	ID         int64           `json:"id"`
	MemberID   int64           `json:"member_id"`
	Name       string          `json:"name"`
	Amount     decimal.Decimal `json:"amount"`
	Frequency  Frequency       `json:"frequency"`
	DayOfMonth int             `json:"day_of_month,omitempty"` // 0 means unset, defaults to 1
	AccountID  *int64          `json:"account_id,omitempty"`   // destination account, nil means unassigned
	Active     bool            `json:"active"`
	CreatedAt  string          `json:"created_at"`
	UpdatedAt  string          `json:"updated_at"`
}
