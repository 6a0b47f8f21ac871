package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/mkral/budget-planner/internal/models"
	"github.com/mkral/budget-planner/internal/planner"
	"github.com/mkral/budget-planner/internal/storage"
)

// snapshot returns the household's consistent snapshot, loading and
// caching it on a miss.
func (s *Service) snapshot(ctx context.Context) (*storage.Snapshot, int64, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, 0, err
	}
	snap, err := s.snapshotFor(userID)
	if err != nil {
		return nil, 0, err
	}
	return snap, userID, nil
}

func (s *Service) snapshotFor(userID int64) (*storage.Snapshot, error) {
	if snap, ok := s.cache.get(userID); ok {
		return snap, nil
	}
	snap, err := s.store.LoadSnapshot(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	s.cache.put(userID, snap)
	return snap, nil
}

func validateYearMonth(year, month int) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("%w: month must be between 1 and 12", ErrValidation)
	}
	if year < 1970 || year > 9999 {
		return fmt.Errorf("%w: year %d is out of range", ErrValidation, year)
	}
	return nil
}

// SummaryReport computes the household's monthly aggregates
func (s *Service) SummaryReport(ctx context.Context) (*models.Summary, error) {
	snap, _, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	summary := planner.Summarize(snap.Members, snap.Incomes, snap.Expenses, snap.Budgets)
	return &summary, nil
}

// TimelineReport computes the day-ordered transfer schedule
func (s *Service) TimelineReport(ctx context.Context) (*models.Timeline, error) {
	snap, _, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	timeline := planner.BuildTimeline(snap.Transfers)
	return &timeline, nil
}

// CashFlowReport simulates the given month for every active account,
// ordered by account id.
func (s *Service) CashFlowReport(ctx context.Context, year, month int) ([]models.AccountCashFlow, error) {
	if err := validateYearMonth(year, month); err != nil {
		return nil, err
	}
	_, userID, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return s.CashFlowForUser(userID, year, month)
}

// CashFlowForUser simulates the given month for one household's active
// accounts. Used directly by the scheduled alert job.
func (s *Service) CashFlowForUser(userID int64, year, month int) ([]models.AccountCashFlow, error) {
	snap, err := s.snapshotFor(userID)
	if err != nil {
		return nil, err
	}
	flows := planner.SimulateAll(snap.Accounts, snap.Incomes, snap.Expenses, snap.Transfers, year, time.Month(month))
	result := make([]models.AccountCashFlow, 0, len(flows))
	for _, flow := range flows {
		result = append(result, flow)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].AccountID < result[j].AccountID })
	return result, nil
}

// GoalsReport computes the recommended allocation for every active goal
// in the given month.
func (s *Service) GoalsReport(ctx context.Context, year, month int) ([]models.GoalRecommendation, error) {
	if err := validateYearMonth(year, month); err != nil {
		return nil, err
	}
	snap, _, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	plans := make(map[int64]models.MonthlyPlan)
	for _, plan := range snap.Plans {
		if plan.Year == year && plan.Month == month {
			plans[plan.GoalID] = plan
		}
	}
	return planner.RecommendGoals(snap.Goals, plans, year, time.Month(month)), nil
}
