package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mkral/budget-planner/internal/models"
	"github.com/mkral/budget-planner/internal/storage"
)

// LoadSnapshot reads every collection of the household inside a single
// repeatable-read transaction, so derived aggregates never see a mix of
// stale and fresh collections.
func (s *Store) LoadSnapshot(userID int64) (*storage.Snapshot, error) {
	tx, err := s.db.BeginTx(context.Background(), &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to begin snapshot read: %w", err)
	}
	defer tx.Rollback()

	snap := &storage.Snapshot{}

	rows, err := tx.Query(`SELECT id, user_id, name, color, created_at, updated_at FROM budget.members WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to read members: %w", err)
	}
	for rows.Next() {
		var m models.Member
		if err := rows.Scan(&m.ID, &m.UserID, &m.Name, &m.Color, &m.CreatedAt, &m.UpdatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		snap.Members = append(snap.Members, m)
	}
	rows.Close()

	rows, err = tx.Query(`
		SELECT `+incomeColumns+`
		FROM budget.incomes i
		JOIN budget.members m ON m.id = i.member_id
		WHERE m.user_id = $1 ORDER BY i.id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to read incomes: %w", err)
	}
	for rows.Next() {
		in, err := scanIncome(rows.Scan)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan income: %w", err)
		}
		snap.Incomes = append(snap.Incomes, in)
	}
	rows.Close()

	rows, err = tx.Query(`SELECT id, user_id, name, short_name, color, notes, active, created_at, updated_at FROM budget.banks WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to read banks: %w", err)
	}
	for rows.Next() {
		var b models.Bank
		if err := rows.Scan(&b.ID, &b.UserID, &b.Name, &b.ShortName, &b.Color, &b.Notes, &b.Active, &b.CreatedAt, &b.UpdatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan bank: %w", err)
		}
		snap.Banks = append(snap.Banks, b)
	}
	rows.Close()

	rows, err = tx.Query(`SELECT `+accountColumns+` FROM budget.accounts WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to read accounts: %w", err)
	}
	for rows.Next() {
		a, err := scanAccount(rows.Scan)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		snap.Accounts = append(snap.Accounts, a)
	}
	rows.Close()

	rows, err = tx.Query(`
		SELECT id, user_id, name, from_account_id, to_account_id, amount, day_of_month, description, category, display_order, active, created_at, updated_at
		FROM budget.transfers WHERE user_id = $1 ORDER BY day_of_month, display_order, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to read transfers: %w", err)
	}
	for rows.Next() {
		var t models.Transfer
		if err := rows.Scan(&t.ID, &t.UserID, &t.Name, &t.FromAccountID, &t.ToAccountID, &t.Amount,
			&t.DayOfMonth, &t.Description, &t.Category, &t.DisplayOrder, &t.Active, &t.CreatedAt, &t.UpdatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan transfer: %w", err)
		}
		snap.Transfers = append(snap.Transfers, t)
	}
	rows.Close()

	rows, err = tx.Query(`SELECT `+expenseColumns+` FROM budget.expenses WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to read expenses: %w", err)
	}
	for rows.Next() {
		e, err := scanExpense(rows.Scan)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		snap.Expenses = append(snap.Expenses, e)
	}
	rows.Close()

	rows, err = tx.Query(`
		SELECT id, user_id, name, type, monthly_limit, color, icon, member_id, created_at, updated_at
		FROM budget.budgets WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to read budgets: %w", err)
	}
	for rows.Next() {
		var b models.Budget
		var memberID sql.NullInt64
		if err := rows.Scan(&b.ID, &b.UserID, &b.Name, &b.Type, &b.MonthlyLimit, &b.Color, &b.Icon,
			&memberID, &b.CreatedAt, &b.UpdatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}
		b.MemberID = idPtr(memberID)
		snap.Budgets = append(snap.Budgets, b)
	}
	rows.Close()

	rows, err = tx.Query(`SELECT `+goalColumns+` FROM budget.goals WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to read goals: %w", err)
	}
	for rows.Next() {
		g, err := scanGoal(rows.Scan)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		snap.Goals = append(snap.Goals, g)
	}
	rows.Close()

	rows, err = tx.Query(`
		SELECT p.id, p.goal_id, p.year, p.month, p.planned_count, p.realized_count, p.planned_total, p.realized_total, p.created_at, p.updated_at
		FROM budget.monthly_plans p
		JOIN budget.goals g ON g.id = p.goal_id
		WHERE g.user_id = $1 ORDER BY p.id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to read monthly plans: %w", err)
	}
	for rows.Next() {
		var p models.MonthlyPlan
		if err := rows.Scan(&p.ID, &p.GoalID, &p.Year, &p.Month, &p.PlannedCount, &p.RealizedCount,
			&p.PlannedTotal, &p.RealizedTotal, &p.CreatedAt, &p.UpdatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan monthly plan: %w", err)
		}
		snap.Plans = append(snap.Plans, p)
	}
	rows.Close()

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit snapshot read: %w", err)
	}
	return snap, nil
}

// ImportSnapshot replaces the household's data with the given backup.
// Record ids are reassigned; references between collections are remapped.
func (s *Store) ImportSnapshot(userID int64, snap *storage.Snapshot) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin import: %w", err)
	}
	defer tx.Rollback()

	// Cascades remove incomes and monthly plans.
	for _, table := range []string{"transfers", "expenses", "budgets", "goals", "accounts", "banks", "members"} {
		if _, err := tx.Exec(`DELETE FROM budget.`+table+` WHERE user_id = $1`, userID); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	memberIDs := make(map[int64]int64, len(snap.Members))
	for _, m := range snap.Members {
		var id int64
		err := tx.QueryRow(`
			INSERT INTO budget.members (user_id, name, color)
			VALUES ($1, $2, $3) RETURNING id`, userID, m.Name, m.Color).Scan(&id)
		if err != nil {
			return fmt.Errorf("failed to import member: %w", err)
		}
		memberIDs[m.ID] = id
	}

	bankIDs := make(map[int64]int64, len(snap.Banks))
	for _, b := range snap.Banks {
		var id int64
		err := tx.QueryRow(`
			INSERT INTO budget.banks (user_id, name, short_name, color, notes, active)
			VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
			userID, b.Name, b.ShortName, b.Color, b.Notes, b.Active).Scan(&id)
		if err != nil {
			return fmt.Errorf("failed to import bank: %w", err)
		}
		bankIDs[b.ID] = id
	}

	accountIDs := make(map[int64]int64, len(snap.Accounts))
	for _, a := range snap.Accounts {
		var id int64
		err := tx.QueryRow(`
			INSERT INTO budget.accounts (user_id, name, type, bank_id, member_id, currency, balance, account_number, is_premium, premium_min_flow, credit_limit, active)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id`,
			userID, a.Name, a.Type, remapID(a.BankID, bankIDs), remapID(a.MemberID, memberIDs),
			a.Currency, a.Balance, a.AccountNumber, a.IsPremium,
			nullDec(a.PremiumMinFlow), nullDec(a.CreditLimit), a.Active).Scan(&id)
		if err != nil {
			return fmt.Errorf("failed to import account: %w", err)
		}
		accountIDs[a.ID] = id
	}

	for _, in := range snap.Incomes {
		memberID, ok := memberIDs[in.MemberID]
		if !ok {
			continue // income of a member missing from the backup
		}
		_, err := tx.Exec(`
			INSERT INTO budget.incomes (member_id, name, amount, frequency, day_of_month, account_id, active)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			memberID, in.Name, in.Amount, in.Frequency, in.DayOfMonth,
			remapID(in.AccountID, accountIDs), in.Active)
		if err != nil {
			return fmt.Errorf("failed to import income: %w", err)
		}
	}

	for _, t := range snap.Transfers {
		from, okFrom := accountIDs[t.FromAccountID]
		to, okTo := accountIDs[t.ToAccountID]
		if !okFrom || !okTo {
			continue
		}
		_, err := tx.Exec(`
			INSERT INTO budget.transfers (user_id, name, from_account_id, to_account_id, amount, day_of_month, description, category, display_order, active)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			userID, t.Name, from, to, t.Amount, t.DayOfMonth, t.Description,
			t.Category, t.DisplayOrder, t.Active)
		if err != nil {
			return fmt.Errorf("failed to import transfer: %w", err)
		}
	}

	for _, e := range snap.Expenses {
		_, err := tx.Exec(`
			INSERT INTO budget.expenses (user_id, name, amount, category, frequency, day_of_month, due_month, account_id, member_id, notes, active)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			userID, e.Name, e.Amount, e.Category, e.Frequency, e.DayOfMonth, e.DueMonth,
			remapID(e.AccountID, accountIDs), remapID(e.MemberID, memberIDs), e.Notes, e.Active)
		if err != nil {
			return fmt.Errorf("failed to import expense: %w", err)
		}
	}

	for _, b := range snap.Budgets {
		_, err := tx.Exec(`
			INSERT INTO budget.budgets (user_id, name, type, monthly_limit, color, icon, member_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			userID, b.Name, b.Type, b.MonthlyLimit, b.Color, b.Icon, remapID(b.MemberID, memberIDs))
		if err != nil {
			return fmt.Errorf("failed to import budget: %w", err)
		}
	}

	goalIDs := make(map[int64]int64, len(snap.Goals))
	for _, g := range snap.Goals {
		var id int64
		err := tx.QueryRow(`
			INSERT INTO budget.goals (user_id, name, variant, color, icon, weekly_amount, day_of_week, monthly_contribution, current_balance, yearly_amount, target_month, current_saved, account_id, notes, active)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15) RETURNING id`,
			userID, g.Name, g.Variant, g.Color, g.Icon, g.WeeklyAmount, g.DayOfWeek,
			g.MonthlyContribution, g.Balance, g.YearlyAmount, g.TargetMonth, g.Saved,
			remapID(g.AccountID, accountIDs), g.Notes, g.Active).Scan(&id)
		if err != nil {
			return fmt.Errorf("failed to import goal: %w", err)
		}
		goalIDs[g.ID] = id
	}

	for _, p := range snap.Plans {
		goalID, ok := goalIDs[p.GoalID]
		if !ok {
			continue
		}
		_, err := tx.Exec(`
			INSERT INTO budget.monthly_plans (goal_id, year, month, planned_count, realized_count, planned_total, realized_total)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			goalID, p.Year, p.Month, p.PlannedCount, p.RealizedCount, p.PlannedTotal, p.RealizedTotal)
		if err != nil {
			return fmt.Errorf("failed to import monthly plan: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit import: %w", err)
	}
	return nil
}

func remapID(old *int64, ids map[int64]int64) sql.NullInt64 {
	if old == nil {
		return sql.NullInt64{}
	}
	id, ok := ids[*old]
	if !ok {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: id, Valid: true}
}
