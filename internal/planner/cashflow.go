package planner

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mkral/budget-planner/internal/models"
)

// DaysInMonth returns the number of days of the given calendar month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Simulate replays every dated money movement of one account across the
// days of the given calendar month, starting from the account's current
// balance (the day-0 state, before day 1). It returns the day-ordered
// event ledger with running balances, the minimum balance observed
// (including the initial one), total inflow and outflow, the end-of-month
// balance and whether the balance ever goes negative. For premium accounts
// the minimum-turnover condition is evaluated against total inflow; an
// unset threshold counts as 0 and is always satisfied.
func Simulate(account models.Account, incomes []models.Income, expenses []models.Expense, transfers []models.Transfer, year int, month time.Month) models.AccountCashFlow {
	lastDay := DaysInMonth(year, month)
	var events []models.CashFlowEvent

	for _, in := range incomes {
		if !in.Active || in.AccountID == nil || *in.AccountID != account.ID {
			continue
		}
		for _, day := range occurrenceDays(in.Frequency, in.DayOfMonth, lastDay) {
			events = append(events, models.CashFlowEvent{
				Day:         day,
				Type:        models.EventIncome,
				Amount:      in.Amount,
				Description: in.Name,
			})
		}
	}

	for _, e := range expenses {
		if !e.Active || e.AccountID == nil || *e.AccountID != account.ID {
			continue
		}
		if !dueThisMonth(e.Frequency, e.DueMonth, month) {
			continue
		}
		events = append(events, models.CashFlowEvent{
			Day:         clampDay(e.DayOfMonth, lastDay),
			Type:        models.EventExpense,
			Amount:      e.Amount.Neg(),
			Description: e.Name,
		})
	}

	for _, t := range transfers {
		if !t.Active {
			continue
		}
		if t.FromAccountID == account.ID {
			events = append(events, models.CashFlowEvent{
				Day:         clampDay(t.DayOfMonth, lastDay),
				Type:        models.EventTransferOut,
				Amount:      t.Amount.Neg(),
				Description: t.Name,
			})
		}
		if t.ToAccountID == account.ID {
			events = append(events, models.CashFlowEvent{
				Day:         clampDay(t.DayOfMonth, lastDay),
				Type:        models.EventTransferIn,
				Amount:      t.Amount,
				Description: t.Name,
			})
		}
	}

	// Stable keeps same-day events in insertion order.
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Day < events[j].Day
	})

	balance := account.Balance
	minBalance := balance
	inflow := decimal.Zero
	outflow := decimal.Zero
	for i := range events {
		balance = balance.Add(events[i].Amount)
		events[i].Balance = balance
		if balance.LessThan(minBalance) {
			minBalance = balance
		}
		if events[i].Amount.IsNegative() {
			outflow = outflow.Add(events[i].Amount.Abs())
		} else {
			inflow = inflow.Add(events[i].Amount)
		}
	}

	result := models.AccountCashFlow{
		AccountID:          account.ID,
		AccountName:        account.Name,
		InitialBalance:     account.Balance,
		Events:             events,
		MinBalance:         minBalance,
		TotalInflow:        inflow,
		TotalOutflow:       outflow,
		EndOfMonthBalance:  balance,
		HasNegativeBalance: minBalance.IsNegative(),
	}

	if account.IsPremium {
		required := decimal.Zero
		if account.PremiumMinFlow != nil {
			required = *account.PremiumMinFlow
		}
		result.Premium = &models.PremiumCheck{
			RequiredFlow: required,
			ActualFlow:   inflow,
			IsOk:         inflow.GreaterThanOrEqual(required),
		}
	}
	return result
}

// SimulateAll runs the simulation for every active account against the
// same snapshot and returns the results keyed by account id.
func SimulateAll(accounts []models.Account, incomes []models.Income, expenses []models.Expense, transfers []models.Transfer, year int, month time.Month) map[int64]models.AccountCashFlow {
	out := make(map[int64]models.AccountCashFlow, len(accounts))
	for _, a := range accounts {
		if !a.Active {
			continue
		}
		out[a.ID] = Simulate(a, incomes, expenses, transfers, year, month)
	}
	return out
}

// clampDay resolves a day-of-month anchor against the month length.
// An unset or negative anchor defaults to day 1; anchors past the end of
// the month land on its last day.
func clampDay(day, lastDay int) int {
	if day < 1 {
		return 1
	}
	if day > lastDay {
		return lastDay
	}
	return day
}

// occurrenceDays expands an income's frequency into the days it pays out
// within the month. Weekly incomes repeat every 7 days from the anchor,
// biweekly every 14. Everything else pays once on the anchor day;
// quarterly and yearly incomes carry no anchor month, so they fall back
// to the monthly behavior.
func occurrenceDays(freq models.Frequency, anchor, lastDay int) []int {
	first := clampDay(anchor, lastDay)
	step := 0
	switch freq {
	case models.FrequencyWeekly:
		step = 7
	case models.FrequencyBiweekly:
		step = 14
	default:
		return []int{first}
	}
	var days []int
	for d := first; d <= lastDay; d += step {
		days = append(days, d)
	}
	return days
}

// dueThisMonth reports whether a fixed expense fires in the given month.
// Without a due month every cadence fires monthly. With one, yearly
// expenses fire only in that month and quarterly ones every third month
// counted from it.
func dueThisMonth(freq models.Frequency, dueMonth int, month time.Month) bool {
	if dueMonth < 1 || dueMonth > 12 {
		return true
	}
	switch freq {
	case models.FrequencyYearly:
		return int(month) == dueMonth
	case models.FrequencyQuarterly:
		return (int(month)-dueMonth)%3 == 0
	}
	return true
}
