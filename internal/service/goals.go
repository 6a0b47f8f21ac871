package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mkral/budget-planner/internal/models"
	"github.com/mkral/budget-planner/internal/planner"
	"github.com/mkral/budget-planner/internal/storage"
)

func validateGoal(goal *models.Goal) error {
	if goal.Name == "" {
		return fmt.Errorf("%w: goal name is required", ErrValidation)
	}
	if !goal.Variant.Valid() {
		return fmt.Errorf("%w: unknown goal variant %q", ErrValidation, goal.Variant)
	}
	switch goal.Variant {
	case models.GoalWeeklyVariable:
		if goal.WeeklyAmount.IsNegative() {
			return fmt.Errorf("%w: weekly amount must not be negative", ErrValidation)
		}
		if goal.DayOfWeek < 0 || goal.DayOfWeek > 6 {
			return fmt.Errorf("%w: day of week must be between 0 and 6", ErrValidation)
		}
	case models.GoalFund:
		if goal.MonthlyContribution.IsNegative() {
			return fmt.Errorf("%w: monthly contribution must not be negative", ErrValidation)
		}
	case models.GoalYearly:
		if goal.YearlyAmount.IsNegative() {
			return fmt.Errorf("%w: yearly amount must not be negative", ErrValidation)
		}
		if goal.TargetMonth < 1 || goal.TargetMonth > 12 {
			return fmt.Errorf("%w: target month must be between 1 and 12", ErrValidation)
		}
	}
	return nil
}

// CreateGoal creates a financial goal
func (s *Service) CreateGoal(ctx context.Context, goal *models.Goal) error {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return err
	}
	if err := validateGoal(goal); err != nil {
		return err
	}
	goal.UserID = userID
	if err := s.store.CreateGoal(goal); err != nil {
		return err
	}
	s.cache.invalidate(userID, mutGoals)
	s.log.Infof("Goal created for user %d: %s (%s)", userID, goal.Name, goal.Variant)
	return nil
}

// GetGoal retrieves a single goal
func (s *Service) GetGoal(ctx context.Context, id int64) (*models.Goal, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.store.GetGoal(userID, id)
}

// ListGoals retrieves the household's goals
func (s *Service) ListGoals(ctx context.Context) ([]models.Goal, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.store.ListGoals(userID)
}

// UpdateGoal updates a goal
func (s *Service) UpdateGoal(ctx context.Context, goal *models.Goal) error {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return err
	}
	if err := validateGoal(goal); err != nil {
		return err
	}
	if err := s.store.UpdateGoal(userID, goal); err != nil {
		return err
	}
	s.cache.invalidate(userID, mutGoals)
	return nil
}

// DeleteGoal deletes a goal and its monthly plans
func (s *Service) DeleteGoal(ctx context.Context, id int64) error {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return err
	}
	if err := s.store.DeleteGoal(userID, id); err != nil {
		return err
	}
	s.cache.invalidate(userID, mutGoals)
	return nil
}

// ContributeFund adds an amount to a fund goal's balance
func (s *Service) ContributeFund(ctx context.Context, id int64, amount decimal.Decimal) (*models.Goal, error) {
	return s.adjustFund(ctx, id, amount, false)
}

// WithdrawFund removes an amount from a fund goal's balance. The balance
// never goes negative; an oversized withdrawal fails with
// ErrInsufficientFunds.
func (s *Service) WithdrawFund(ctx context.Context, id int64, amount decimal.Decimal) (*models.Goal, error) {
	return s.adjustFund(ctx, id, amount, true)
}

func (s *Service) adjustFund(ctx context.Context, id int64, amount decimal.Decimal, withdraw bool) (*models.Goal, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", ErrValidation)
	}
	goal, err := s.store.GetGoal(userID, id)
	if err != nil {
		return nil, err
	}
	if goal.Variant != models.GoalFund {
		return nil, fmt.Errorf("%w: goal %d is not a fund", ErrValidation, id)
	}
	if withdraw {
		if amount.GreaterThan(goal.Balance) {
			return nil, fmt.Errorf("%w: balance is %s", ErrInsufficientFunds, goal.Balance)
		}
		goal.Balance = goal.Balance.Sub(amount)
	} else {
		goal.Balance = goal.Balance.Add(amount)
	}
	if err := s.store.UpdateGoal(userID, goal); err != nil {
		return nil, err
	}
	s.cache.invalidate(userID, mutGoals)
	s.log.Infof("Fund %d adjusted for user %d, new balance %s", id, userID, goal.Balance)
	return goal, nil
}

// GetPlan retrieves the monthly plan of a goal, computing a fresh one
// from the calendar when none is stored yet.
func (s *Service) GetPlan(ctx context.Context, goalID int64, year, month int) (*models.MonthlyPlan, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateYearMonth(year, month); err != nil {
		return nil, err
	}
	goal, err := s.store.GetGoal(userID, goalID)
	if err != nil {
		return nil, err
	}
	plan, err := s.store.GetMonthlyPlan(goalID, year, month)
	if errors.Is(err, storage.ErrNotFound) {
		return defaultPlan(goal, year, month), nil
	}
	if err != nil {
		return nil, err
	}
	return plan, nil
}

// SavePlan stores the planned and realized progress of a goal's month
func (s *Service) SavePlan(ctx context.Context, plan *models.MonthlyPlan) error {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return err
	}
	if err := validateYearMonth(plan.Year, plan.Month); err != nil {
		return err
	}
	if plan.PlannedCount < 0 || plan.RealizedCount < 0 {
		return fmt.Errorf("%w: counts must not be negative", ErrValidation)
	}
	if plan.RealizedCount > plan.PlannedCount {
		return fmt.Errorf("%w: realized count exceeds planned count", ErrValidation)
	}
	if _, err := s.store.GetGoal(userID, plan.GoalID); err != nil {
		return err
	}
	if err := s.store.UpsertMonthlyPlan(plan); err != nil {
		return err
	}
	s.cache.invalidate(userID, mutPlans)
	return nil
}

// ListPlans retrieves the stored plans of the given month
func (s *Service) ListPlans(ctx context.Context, year, month int) ([]models.MonthlyPlan, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateYearMonth(year, month); err != nil {
		return nil, err
	}
	return s.store.ListMonthlyPlans(userID, year, month)
}

// RolloverPlans seeds the given month's plan for every active
// weekly-variable goal of the user that does not have one yet. Called by
// the monthly scheduled job.
func (s *Service) RolloverPlans(userID int64, year, month int) error {
	goals, err := s.store.ListGoals(userID)
	if err != nil {
		return err
	}
	seeded := 0
	for _, goal := range goals {
		if !goal.Active || goal.Variant != models.GoalWeeklyVariable {
			continue
		}
		_, err := s.store.GetMonthlyPlan(goal.ID, year, month)
		if err == nil {
			continue
		}
		if !errors.Is(err, storage.ErrNotFound) {
			return err
		}
		plan := defaultPlan(&goal, year, month)
		if err := s.store.UpsertMonthlyPlan(plan); err != nil {
			return fmt.Errorf("failed to seed plan for goal %d: %w", goal.ID, err)
		}
		seeded++
	}
	if seeded > 0 {
		s.cache.invalidate(userID, mutPlans)
		s.log.Infof("Seeded %d monthly plans for user %d (%d-%02d)", seeded, userID, year, month)
	}
	return nil
}

// defaultPlan derives a month's plan from the goal's weekly schedule.
func defaultPlan(goal *models.Goal, year, month int) *models.MonthlyPlan {
	planned := 0
	total := decimal.Zero
	if goal.Variant == models.GoalWeeklyVariable {
		planned = planner.WeekdayOccurrences(year, time.Month(month), goal.DayOfWeek)
		total = goal.WeeklyAmount.Mul(decimal.NewFromInt(int64(planned)))
	}
	return &models.MonthlyPlan{
		GoalID:       goal.ID,
		Year:         year,
		Month:        month,
		PlannedCount: planned,
		PlannedTotal: total,
	}
}
