package models

import "github.com/shopspring/decimal"

// TransferCategory classifies a scheduled transfer for display grouping.
type TransferCategory string

const (
	TransferTechnical  TransferCategory = "technical"
	TransferMortgage   TransferCategory = "mortgage"
	TransferSavings    TransferCategory = "savings"
	TransferBudget     TransferCategory = "budget"
	TransferCreditCard TransferCategory = "credit_card"
)

// Transfer represents a scheduled inter-account transfer that fires
// once per month on its configured day.
type Transfer struct {
	ID            int64            `json:"id"`
	UserID        int64            `json:"user_id"`
	Name          string           `json:"name"`
	FromAccountID int64            `json:"from_account_id"`
	ToAccountID   int64            `json:"to_account_id"`
	Amount        decimal.Decimal  `json:"amount"`
	DayOfMonth    int              `json:"day_of_month"`
	Description   string           `json:"description,omitempty"`
	Category      TransferCategory `json:"category"`
	DisplayOrder  int              `json:"display_order"`
	Active        bool             `json:"active"`
	CreatedAt     string           `json:"created_at"`
	UpdatedAt     string           `json:"updated_at"`
}
