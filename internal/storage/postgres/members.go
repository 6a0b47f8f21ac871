package postgres

import (
	"database/sql"
	"fmt"

	"github.com/mkral/budget-planner/internal/models"
	"github.com/mkral/budget-planner/internal/storage"
)

// CreateMember creates a new household member
func (s *Store) CreateMember(member *models.Member) error {
	query := `
		INSERT INTO budget.members (user_id, name, color, created_at, updated_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err := s.db.QueryRow(query, member.UserID, member.Name, member.Color).
		Scan(&member.ID, &member.CreatedAt, &member.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create member: %w", err)
	}
	return nil
}

// ListMembers retrieves all members of the household
func (s *Store) ListMembers(userID int64) ([]models.Member, error) {
	query := `
		SELECT id, user_id, name, color, created_at, updated_at
		FROM budget.members
		WHERE user_id = $1
		ORDER BY id`
	rows, err := s.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()
	var out []models.Member
	for rows.Next() {
		var m models.Member
		if err := rows.Scan(&m.ID, &m.UserID, &m.Name, &m.Color, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// UpdateMember updates a member's name and color
func (s *Store) UpdateMember(userID int64, member *models.Member) error {
	query := `
		UPDATE budget.members
		SET name = $1, color = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $3 AND user_id = $4
		RETURNING updated_at`
	err := s.db.QueryRow(query, member.Name, member.Color, member.ID, userID).
		Scan(&member.UpdatedAt)
	if err == sql.ErrNoRows {
		return storage.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update member: %w", err)
	}
	return nil
}

// DeleteMember deletes a member; its incomes are removed by cascade
func (s *Store) DeleteMember(userID, id int64) error {
	res, err := s.db.Exec(`DELETE FROM budget.members WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete member: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

const incomeColumns = `i.id, i.member_id, i.name, i.amount, i.frequency, i.day_of_month, i.account_id, i.active, i.created_at, i.updated_at`

func scanIncome(scan func(...any) error) (models.Income, error) {
	var in models.Income
	var accountID sql.NullInt64
	err := scan(&in.ID, &in.MemberID, &in.Name, &in.Amount, &in.Frequency,
		&in.DayOfMonth, &accountID, &in.Active, &in.CreatedAt, &in.UpdatedAt)
	in.AccountID = idPtr(accountID)
	return in, err
}

// CreateIncome creates an income for a member of the household
func (s *Store) CreateIncome(userID int64, income *models.Income) error {
	query := `
		INSERT INTO budget.incomes (member_id, name, amount, frequency, day_of_month, account_id, active, created_at, updated_at)
		SELECT $1, $2, $3, $4, $5, $6, $7, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP
		WHERE EXISTS (SELECT 1 FROM budget.members WHERE id = $1 AND user_id = $8)
		RETURNING id, created_at, updated_at`
	err := s.db.QueryRow(query, income.MemberID, income.Name, income.Amount, income.Frequency,
		income.DayOfMonth, nullID(income.AccountID), income.Active, userID).
		Scan(&income.ID, &income.CreatedAt, &income.UpdatedAt)
	if err == sql.ErrNoRows {
		return storage.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to create income: %w", err)
	}
	return nil
}

// ListIncomes retrieves all incomes of the household
func (s *Store) ListIncomes(userID int64) ([]models.Income, error) {
	query := `
		SELECT ` + incomeColumns + `
		FROM budget.incomes i
		JOIN budget.members m ON m.id = i.member_id
		WHERE m.user_id = $1
		ORDER BY i.id`
	return s.queryIncomes(query, userID)
}

// ListMemberIncomes retrieves the incomes of one member
func (s *Store) ListMemberIncomes(userID, memberID int64) ([]models.Income, error) {
	query := `
		SELECT ` + incomeColumns + `
		FROM budget.incomes i
		JOIN budget.members m ON m.id = i.member_id
		WHERE m.user_id = $1 AND i.member_id = $2
		ORDER BY i.id`
	return s.queryIncomes(query, userID, memberID)
}

func (s *Store) queryIncomes(query string, args ...any) ([]models.Income, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list incomes: %w", err)
	}
	defer rows.Close()
	var out []models.Income
	for rows.Next() {
		in, err := scanIncome(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan income: %w", err)
		}
		out = append(out, in)
	}
	return out, rows.Err()
}

// UpdateIncome updates an income of the household
func (s *Store) UpdateIncome(userID int64, income *models.Income) error {
	query := `
		UPDATE budget.incomes i
		SET name = $1, amount = $2, frequency = $3, day_of_month = $4, account_id = $5, active = $6, updated_at = CURRENT_TIMESTAMP
		FROM budget.members m
		WHERE i.id = $7 AND m.id = i.member_id AND m.user_id = $8
		RETURNING i.updated_at`
	err := s.db.QueryRow(query, income.Name, income.Amount, income.Frequency, income.DayOfMonth,
		nullID(income.AccountID), income.Active, income.ID, userID).
		Scan(&income.UpdatedAt)
	if err == sql.ErrNoRows {
		return storage.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update income: %w", err)
	}
	return nil
}

// DeleteIncome deletes an income of the household
func (s *Store) DeleteIncome(userID, id int64) error {
	query := `
		DELETE FROM budget.incomes i
		USING budget.members m
		WHERE i.id = $1 AND m.id = i.member_id AND m.user_id = $2`
	res, err := s.db.Exec(query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete income: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return storage.ErrNotFound
	}
	return nil
}
