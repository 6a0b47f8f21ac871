package postgres

import (
	"database/sql"
	"fmt"

	"github.com/mkral/budget-planner/internal/models"
	"github.com/mkral/budget-planner/internal/storage"
)

// CreateTransfer creates a scheduled transfer
func (s *Store) CreateTransfer(transfer *models.Transfer) error {
	query := `
		INSERT INTO budget.transfers (user_id, name, from_account_id, to_account_id, amount, day_of_month, description, category, display_order, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err := s.db.QueryRow(query, transfer.UserID, transfer.Name, transfer.FromAccountID,
		transfer.ToAccountID, transfer.Amount, transfer.DayOfMonth, transfer.Description,
		transfer.Category, transfer.DisplayOrder, transfer.Active).
		Scan(&transfer.ID, &transfer.CreatedAt, &transfer.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create transfer: %w", err)
	}
	return nil
}

// ListTransfers retrieves the scheduled transfers of the household
func (s *Store) ListTransfers(userID int64) ([]models.Transfer, error) {
	query := `
		SELECT id, user_id, name, from_account_id, to_account_id, amount, day_of_month, description, category, display_order, active, created_at, updated_at
		FROM budget.transfers
		WHERE user_id = $1
		ORDER BY day_of_month, display_order, id`
	rows, err := s.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transfers: %w", err)
	}
	defer rows.Close()
	var out []models.Transfer
	for rows.Next() {
		var t models.Transfer
		if err := rows.Scan(&t.ID, &t.UserID, &t.Name, &t.FromAccountID, &t.ToAccountID,
			&t.Amount, &t.DayOfMonth, &t.Description, &t.Category, &t.DisplayOrder,
			&t.Active, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transfer: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// UpdateTransfer updates a scheduled transfer
func (s *Store) UpdateTransfer(userID int64, transfer *models.Transfer) error {
	query := `
		UPDATE budget.transfers
		SET name = $1, from_account_id = $2, to_account_id = $3, amount = $4, day_of_month = $5,
			description = $6, category = $7, display_order = $8, active = $9, updated_at = CURRENT_TIMESTAMP
		WHERE id = $10 AND user_id = $11
		RETURNING updated_at`
	err := s.db.QueryRow(query, transfer.Name, transfer.FromAccountID, transfer.ToAccountID,
		transfer.Amount, transfer.DayOfMonth, transfer.Description, transfer.Category,
		transfer.DisplayOrder, transfer.Active, transfer.ID, userID).Scan(&transfer.UpdatedAt)
	if err == sql.ErrNoRows {
		return storage.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update transfer: %w", err)
	}
	return nil
}

// DeleteTransfer deletes a scheduled transfer
func (s *Store) DeleteTransfer(userID, id int64) error {
	res, err := s.db.Exec(`DELETE FROM budget.transfers WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete transfer: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

const expenseColumns = `id, user_id, name, amount, category, frequency, day_of_month, due_month, account_id, member_id, notes, active, created_at, updated_at`

func scanExpense(scan func(...any) error) (models.Expense, error) {
	var e models.Expense
	var accountID, memberID sql.NullInt64
	err := scan(&e.ID, &e.UserID, &e.Name, &e.Amount, &e.Category, &e.Frequency, &e.DayOfMonth,
		&e.DueMonth, &accountID, &memberID, &e.Notes, &e.Active, &e.CreatedAt, &e.UpdatedAt)
	e.AccountID = idPtr(accountID)
	e.MemberID = idPtr(memberID)
	return e, err
}

// CreateExpense creates a fixed expense
func (s *Store) CreateExpense(expense *models.Expense) error {
	query := `
		INSERT INTO budget.expenses (user_id, name, amount, category, frequency, day_of_month, due_month, account_id, member_id, notes, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err := s.db.QueryRow(query, expense.UserID, expense.Name, expense.Amount, expense.Category,
		expense.Frequency, expense.DayOfMonth, expense.DueMonth, nullID(expense.AccountID),
		nullID(expense.MemberID), expense.Notes, expense.Active).
		Scan(&expense.ID, &expense.CreatedAt, &expense.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}
	return nil
}

// ListExpenses retrieves the fixed expenses of the household
func (s *Store) ListExpenses(userID int64) ([]models.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM budget.expenses WHERE user_id = $1 ORDER BY id`
	rows, err := s.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()
	var out []models.Expense
	for rows.Next() {
		e, err := scanExpense(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// UpdateExpense updates a fixed expense
func (s *Store) UpdateExpense(userID int64, expense *models.Expense) error {
	query := `
		UPDATE budget.expenses
		SET name = $1, amount = $2, category = $3, frequency = $4, day_of_month = $5, due_month = $6,
			account_id = $7, member_id = $8, notes = $9, active = $10, updated_at = CURRENT_TIMESTAMP
		WHERE id = $11 AND user_id = $12
		RETURNING updated_at`
	err := s.db.QueryRow(query, expense.Name, expense.Amount, expense.Category, expense.Frequency,
		expense.DayOfMonth, expense.DueMonth, nullID(expense.AccountID), nullID(expense.MemberID),
		expense.Notes, expense.Active, expense.ID, userID).Scan(&expense.UpdatedAt)
	if err == sql.ErrNoRows {
		return storage.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}
	return nil
}

// DeleteExpense deletes a fixed expense
func (s *Store) DeleteExpense(userID, id int64) error {
	res, err := s.db.Exec(`DELETE FROM budget.expenses WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// CreateBudget creates a budget category
func (s *Store) CreateBudget(budget *models.Budget) error {
	query := `
		INSERT INTO budget.budgets (user_id, name, type, monthly_limit, color, icon, member_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err := s.db.QueryRow(query, budget.UserID, budget.Name, budget.Type, budget.MonthlyLimit,
		budget.Color, budget.Icon, nullID(budget.MemberID)).
		Scan(&budget.ID, &budget.CreatedAt, &budget.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create budget: %w", err)
	}
	return nil
}

// ListBudgets retrieves the budget categories of the household
func (s *Store) ListBudgets(userID int64) ([]models.Budget, error) {
	query := `
		SELECT id, user_id, name, type, monthly_limit, color, icon, member_id, created_at, updated_at
		FROM budget.budgets
		WHERE user_id = $1
		ORDER BY id`
	rows, err := s.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	defer rows.Close()
	var out []models.Budget
	for rows.Next() {
		var b models.Budget
		var memberID sql.NullInt64
		if err := rows.Scan(&b.ID, &b.UserID, &b.Name, &b.Type, &b.MonthlyLimit, &b.Color,
			&b.Icon, &memberID, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}
		b.MemberID = idPtr(memberID)
		out = append(out, b)
	}
	return out, rows.Err()
}

// UpdateBudget updates a budget category
func (s *Store) UpdateBudget(userID int64, budget *models.Budget) error {
	query := `
		UPDATE budget.budgets
		SET name = $1, type = $2, monthly_limit = $3, color = $4, icon = $5, member_id = $6, updated_at = CURRENT_TIMESTAMP
		WHERE id = $7 AND user_id = $8
		RETURNING updated_at`
	err := s.db.QueryRow(query, budget.Name, budget.Type, budget.MonthlyLimit, budget.Color,
		budget.Icon, nullID(budget.MemberID), budget.ID, userID).Scan(&budget.UpdatedAt)
	if err == sql.ErrNoRows {
		return storage.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update budget: %w", err)
	}
	return nil
}

// DeleteBudget deletes a budget category
func (s *Store) DeleteBudget(userID, id int64) error {
	res, err := s.db.Exec(`DELETE FROM budget.budgets WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete budget: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return storage.ErrNotFound
	}
	return nil
}
