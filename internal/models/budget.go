package models

import "github.com/shopspring/decimal"

// Budget represents a discretionary monthly budget category
type Budget struct {
	ID           int64           `json:"id"`
	UserID       int64           `json:"user_id"`
	Name         string          `json:"name"`
	Type         string          `json:"type"`
	MonthlyLimit decimal.Decimal `json:"monthly_limit"`
	Color        string          `json:"color"`
	Icon         string          `json:"icon,omitempty"`
	MemberID     *int64          `json:"member_id,omitempty"` // nil means shared
	CreatedAt    string          `json:"created_at"`
	UpdatedAt    string          `json:"updated_at"`
}
