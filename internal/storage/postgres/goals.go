package postgres

import (
	"database/sql"
	"fmt"

	"github.com/mkral/budget-planner/internal/models"
	"github.com/mkral/budget-planner/internal/storage"
)

const goalColumns = `id, user_id, name, variant, color, icon, weekly_amount, day_of_week, monthly_contribution, current_balance, yearly_amount, target_month, current_saved, account_id, notes, active, created_at, updated_at`

func scanGoal(scan func(...any) error) (models.Goal, error) {
	var g models.Goal
	var accountID sql.NullInt64
	err := scan(&g.ID, &g.UserID, &g.Name, &g.Variant, &g.Color, &g.Icon, &g.WeeklyAmount,
		&g.DayOfWeek, &g.MonthlyContribution, &g.Balance, &g.YearlyAmount, &g.TargetMonth,
		&g.Saved, &accountID, &g.Notes, &g.Active, &g.CreatedAt, &g.UpdatedAt)
	g.AccountID = idPtr(accountID)
	return g, err
}

// CreateGoal creates a financial goal
func (s *Store) CreateGoal(goal *models.Goal) error {
	query := `
		INSERT INTO budget.goals (user_id, name, variant, color, icon, weekly_amount, day_of_week, monthly_contribution, current_balance, yearly_amount, target_month, current_saved, account_id, notes, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err := s.db.QueryRow(query, goal.UserID, goal.Name, goal.Variant, goal.Color, goal.Icon,
		goal.WeeklyAmount, goal.DayOfWeek, goal.MonthlyContribution, goal.Balance,
		goal.YearlyAmount, goal.TargetMonth, goal.Saved, nullID(goal.AccountID),
		goal.Notes, goal.Active).
		Scan(&goal.ID, &goal.CreatedAt, &goal.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create goal: %w", err)
	}
	return nil
}

// GetGoal retrieves one goal of the household
func (s *Store) GetGoal(userID, id int64) (*models.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM budget.goals WHERE id = $1 AND user_id = $2`
	g, err := scanGoal(s.db.QueryRow(query, id, userID).Scan)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find goal: %w", err)
	}
	return &g, nil
}

// ListGoals retrieves the goals of the household
func (s *Store) ListGoals(userID int64) ([]models.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM budget.goals WHERE user_id = $1 ORDER BY id`
	rows, err := s.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	defer rows.Close()
	var out []models.Goal
	for rows.Next() {
		g, err := scanGoal(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// UpdateGoal updates a financial goal
func (s *Store) UpdateGoal(userID int64, goal *models.Goal) error {
	query := `
		UPDATE budget.goals
		SET name = $1, variant = $2, color = $3, icon = $4, weekly_amount = $5, day_of_week = $6,
			monthly_contribution = $7, current_balance = $8, yearly_amount = $9, target_month = $10,
			current_saved = $11, account_id = $12, notes = $13, active = $14, updated_at = CURRENT_TIMESTAMP
		WHERE id = $15 AND user_id = $16
		RETURNING updated_at`
	err := s.db.QueryRow(query, goal.Name, goal.Variant, goal.Color, goal.Icon, goal.WeeklyAmount,
		goal.DayOfWeek, goal.MonthlyContribution, goal.Balance, goal.YearlyAmount,
		goal.TargetMonth, goal.Saved, nullID(goal.AccountID), goal.Notes, goal.Active,
		goal.ID, userID).Scan(&goal.UpdatedAt)
	if err == sql.ErrNoRows {
		return storage.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update goal: %w", err)
	}
	return nil
}

// DeleteGoal deletes a goal; its monthly plans are removed by cascade
func (s *Store) DeleteGoal(userID, id int64) error {
	res, err := s.db.Exec(`DELETE FROM budget.goals WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// GetMonthlyPlan retrieves the plan of a goal for one (year, month)
func (s *Store) GetMonthlyPlan(goalID int64, year, month int) (*models.MonthlyPlan, error) {
	p := &models.MonthlyPlan{}
	query := `
		SELECT id, goal_id, year, month, planned_count, realized_count, planned_total, realized_total, created_at, updated_at
		FROM budget.monthly_plans
		WHERE goal_id = $1 AND year = $2 AND month = $3`
	err := s.db.QueryRow(query, goalID, year, month).
		Scan(&p.ID, &p.GoalID, &p.Year, &p.Month, &p.PlannedCount, &p.RealizedCount,
			&p.PlannedTotal, &p.RealizedTotal, &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find monthly plan: %w", err)
	}
	return p, nil
}

// UpsertMonthlyPlan inserts or replaces the plan of a goal for one (year, month)
func (s *Store) UpsertMonthlyPlan(plan *models.MonthlyPlan) error {
	query := `
		INSERT INTO budget.monthly_plans (goal_id, year, month, planned_count, realized_count, planned_total, realized_total, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		ON CONFLICT (goal_id, year, month) DO UPDATE
		SET planned_count = EXCLUDED.planned_count, realized_count = EXCLUDED.realized_count,
			planned_total = EXCLUDED.planned_total, realized_total = EXCLUDED.realized_total,
			updated_at = CURRENT_TIMESTAMP
		RETURNING id, created_at, updated_at`
	err := s.db.QueryRow(query, plan.GoalID, plan.Year, plan.Month, plan.PlannedCount,
		plan.RealizedCount, plan.PlannedTotal, plan.RealizedTotal).
		Scan(&plan.ID, &plan.CreatedAt, &plan.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert monthly plan: %w", err)
	}
	return nil
}

// ListMonthlyPlans retrieves all plans of the household for one (year, month)
func (s *Store) ListMonthlyPlans(userID int64, year, month int) ([]models.MonthlyPlan, error) {
	query := `
		SELECT p.id, p.goal_id, p.year, p.month, p.planned_count, p.realized_count, p.planned_total, p.realized_total, p.created_at, p.updated_at
		FROM budget.monthly_plans p
		JOIN budget.goals g ON g.id = p.goal_id
		WHERE g.user_id = $1 AND p.year = $2 AND p.month = $3
		ORDER BY p.goal_id`
	rows, err := s.db.Query(query, userID, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list monthly plans: %w", err)
	}
	defer rows.Close()
	var out []models.MonthlyPlan
	for rows.Next() {
		var p models.MonthlyPlan
		if err := rows.Scan(&p.ID, &p.GoalID, &p.Year, &p.Month, &p.PlannedCount, &p.RealizedCount,
			&p.PlannedTotal, &p.RealizedTotal, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan monthly plan: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
