package planner

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mkral/budget-planner/internal/models"
)

// WeekdayOccurrences counts how often the given weekday (0=Monday..6=Sunday)
// occurs within the calendar month. Calendar-accurate, unlike the flat
// frequency multipliers.
func WeekdayOccurrences(year int, month time.Month, dayOfWeek int) int {
	// Our week starts on Monday, time.Weekday on Sunday.
	want := time.Weekday((dayOfWeek + 1) % 7)
	count := 0
	for d := 1; d <= DaysInMonth(year, month); d++ {
		if time.Date(year, month, d, 0, 0, 0, 0, time.UTC).Weekday() == want {
			count++
		}
	}
	return count
}

// RecommendGoal computes the recommended monthly allocation for one goal in
// the given month. plan may be nil; it only contributes the saved bonus of
// weekly-variable goals when fewer occurrences than planned were realized.
func RecommendGoal(goal models.Goal, plan *models.MonthlyPlan, year int, month time.Month) models.GoalRecommendation {
	rec := models.GoalRecommendation{
		GoalID:  goal.ID,
		Name:    goal.Name,
		Variant: goal.Variant,
	}

	switch goal.Variant {
	case models.GoalWeeklyVariable:
		count := WeekdayOccurrences(year, month, goal.DayOfWeek)
		rec.Occurrences = count
		rec.Recommended = goal.WeeklyAmount.Mul(decimal.NewFromInt(int64(count)))
		if plan != nil && plan.RealizedCount < count {
			skipped := int64(count - plan.RealizedCount)
			rec.SavedBonus = goal.WeeklyAmount.Mul(decimal.NewFromInt(skipped))
		}

	case models.GoalFund:
		rec.Recommended = goal.MonthlyContribution

	case models.GoalYearly:
		remaining := monthsUntil(int(month), goal.TargetMonth)
		needed := goal.YearlyAmount.Sub(goal.Saved)
		if needed.IsNegative() {
			needed = decimal.Zero
		}
		rec.Recommended = needed.Div(decimal.NewFromInt(int64(remaining)))
		if !goal.YearlyAmount.IsZero() {
			progress := goal.Saved.Div(goal.YearlyAmount).Mul(hundred)
			if progress.GreaterThan(hundred) {
				progress = hundred
			}
			rec.Progress = progress
		}
	}
	return rec
}

// RecommendGoals computes recommendations for every active goal. plans is
// keyed by goal id and holds the (year, month) tracking records.
func RecommendGoals(goals []models.Goal, plans map[int64]models.MonthlyPlan, year int, month time.Month) []models.GoalRecommendation {
	out := make([]models.GoalRecommendation, 0, len(goals))
	for _, g := range goals {
		if !g.Active {
			continue
		}
		var plan *models.MonthlyPlan
		if p, ok := plans[g.ID]; ok {
			plan = &p
		}
		out = append(out, RecommendGoal(g, plan, year, month))
	}
	return out
}

// monthsUntil returns the number of months from the current month to the
// target month, in 1..12. A target equal to the current month means a full
// year away, never zero.
func monthsUntil(current, target int) int {
	m := ((target-current)%12 + 12) % 12
	if m == 0 {
		return 12
	}
	return m
}
