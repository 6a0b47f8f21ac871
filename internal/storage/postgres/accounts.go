package postgres

import (
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mkral/budget-planner/internal/models"
	"github.com/mkral/budget-planner/internal/storage"
)

// CreateBank creates a new bank
func (s *Store) CreateBank(bank *models.Bank) error {
	query := `
		INSERT INTO budget.banks (user_id, name, short_name, color, notes, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err := s.db.QueryRow(query, bank.UserID, bank.Name, bank.ShortName, bank.Color, bank.Notes, bank.Active).
		Scan(&bank.ID, &bank.CreatedAt, &bank.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create bank: %w", err)
	}
	return nil
}

// ListBanks retrieves the banks of the household
func (s *Store) ListBanks(userID int64, activeOnly bool) ([]models.Bank, error) {
	query := `
		SELECT id, user_id, name, short_name, color, notes, active, created_at, updated_at
		FROM budget.banks
		WHERE user_id = $1 AND ($2 = FALSE OR active)
		ORDER BY id`
	rows, err := s.db.Query(query, userID, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list banks: %w", err)
	}
	defer rows.Close()
	var out []models.Bank
	for rows.Next() {
		var b models.Bank
		if err := rows.Scan(&b.ID, &b.UserID, &b.Name, &b.ShortName, &b.Color, &b.Notes,
			&b.Active, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan bank: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// UpdateBank updates a bank
func (s *Store) UpdateBank(userID int64, bank *models.Bank) error {
	query := `
		UPDATE budget.banks
		SET name = $1, short_name = $2, color = $3, notes = $4, active = $5, updated_at = CURRENT_TIMESTAMP
		WHERE id = $6 AND user_id = $7
		RETURNING updated_at`
	err := s.db.QueryRow(query, bank.Name, bank.ShortName, bank.Color, bank.Notes, bank.Active,
		bank.ID, userID).Scan(&bank.UpdatedAt)
	if err == sql.ErrNoRows {
		return storage.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update bank: %w", err)
	}
	return nil
}

// DeleteBank deletes a bank
func (s *Store) DeleteBank(userID, id int64) error {
	res, err := s.db.Exec(`DELETE FROM budget.banks WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete bank: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

const accountColumns = `id, user_id, name, type, bank_id, member_id, currency, balance, account_number, is_premium, premium_min_flow, credit_limit, active, created_at, updated_at`

func scanAccount(scan func(...any) error) (models.Account, error) {
	var a models.Account
	var bankID, memberID sql.NullInt64
	var minFlow, creditLimit decimal.NullDecimal
	err := scan(&a.ID, &a.UserID, &a.Name, &a.Type, &bankID, &memberID, &a.Currency, &a.Balance,
		&a.AccountNumber, &a.IsPremium, &minFlow, &creditLimit, &a.Active, &a.CreatedAt, &a.UpdatedAt)
	a.BankID = idPtr(bankID)
	a.MemberID = idPtr(memberID)
	a.PremiumMinFlow = decPtr(minFlow)
	a.CreditLimit = decPtr(creditLimit)
	return a, err
}

// CreateAccount creates a new account
func (s *Store) CreateAccount(account *models.Account) error {
	query := `
		INSERT INTO budget.accounts (user_id, name, type, bank_id, member_id, currency, balance, account_number, is_premium, premium_min_flow, credit_limit, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err := s.db.QueryRow(query, account.UserID, account.Name, account.Type, nullID(account.BankID),
		nullID(account.MemberID), account.Currency, account.Balance, account.AccountNumber,
		account.IsPremium, nullDec(account.PremiumMinFlow), nullDec(account.CreditLimit), account.Active).
		Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

// GetAccount retrieves one account of the household
func (s *Store) GetAccount(userID, id int64) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM budget.accounts WHERE id = $1 AND user_id = $2`
	a, err := scanAccount(s.db.QueryRow(query, id, userID).Scan)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find account: %w", err)
	}
	return &a, nil
}

// ListAccounts retrieves the accounts of the household
func (s *Store) ListAccounts(userID int64, activeOnly bool) ([]models.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM budget.accounts
		WHERE user_id = $1 AND ($2 = FALSE OR active)
		ORDER BY id`
	rows, err := s.db.Query(query, userID, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()
	var out []models.Account
	for rows.Next() {
		a, err := scanAccount(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// UpdateAccount updates an account
func (s *Store) UpdateAccount(userID int64, account *models.Account) error {
	query := `
		UPDATE budget.accounts
		SET name = $1, type = $2, bank_id = $3, member_id = $4, currency = $5, balance = $6,
			account_number = $7, is_premium = $8, premium_min_flow = $9, credit_limit = $10,
			active = $11, updated_at = CURRENT_TIMESTAMP
		WHERE id = $12 AND user_id = $13
		RETURNING updated_at`
	err := s.db.QueryRow(query, account.Name, account.Type, nullID(account.BankID),
		nullID(account.MemberID), account.Currency, account.Balance, account.AccountNumber,
		account.IsPremium, nullDec(account.PremiumMinFlow), nullDec(account.CreditLimit),
		account.Active, account.ID, userID).Scan(&account.UpdatedAt)
	if err == sql.ErrNoRows {
		return storage.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}
	return nil
}

// DeleteAccount deletes an account
func (s *Store) DeleteAccount(userID, id int64) error {
	res, err := s.db.Exec(`DELETE FROM budget.accounts WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return storage.ErrNotFound
	}
	return nil
}
