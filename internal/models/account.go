package models

import "github.com/shopspring/decimal"

// AccountType classifies an account.
type AccountType string

const (
	AccountChecking   AccountType = "checking"
	AccountSavings    AccountType = "savings"
	AccountMortgage   AccountType = "mortgage"
	AccountPremium    AccountType = "premium"
	AccountCreditCard AccountType = "credit_card"
	AccountInvestment AccountType = "investment"
	AccountCash       AccountType = "cash"
	AccountOther      AccountType = "other"
)

// Valid reports whether t is one of the known account types.
func (t AccountType) Valid() bool {
	switch t {
	case AccountChecking, AccountSavings, AccountMortgage, AccountPremium,
		AccountCreditCard, AccountInvestment, AccountCash, AccountOther:
		return true
	}
	return false
}

// Account represents a bank account of the household.
// Balance is the starting point for the cash-flow simulation.
type Account struct {
	ID             int64            `json:"id"`
	UserID         int64            `json:"user_id"`
	Name           string           `json:"name"`
	Type           AccountType      `json:"type"`
	BankID         *int64           `json:"bank_id,omitempty"`
	MemberID       *int64           `json:"member_id,omitempty"` // nil means shared
	Currency       string           `json:"currency"`
	Balance        decimal.Decimal  `json:"balance"`
	AccountNumber  string           `json:"account_number,omitempty"` // stored encrypted, masked in responses
	IsPremium      bool             `json:"is_premium"`
	PremiumMinFlow *decimal.Decimal `json:"premium_min_flow,omitempty"` // meaningful only when IsPremium
	CreditLimit    *decimal.Decimal `json:"credit_limit,omitempty"`     // credit_card type only
	Active         bool             `json:"active"`
	CreatedAt      string           `json:"created_at"`
	UpdatedAt      string           `json:"updated_at"`
}
