package planner

import (
	"github.com/shopspring/decimal"

	"github.com/mkral/budget-planner/internal/models"
)

// Summarize reduces the household's active incomes, fixed expenses and
// budget categories to monthly totals, the remaining balance and
// per-member / per-category breakdowns. Shares are percentages of total
// monthly income and are 0 when income is 0.
func Summarize(members []models.Member, incomes []models.Income, expenses []models.Expense, budgets []models.Budget) models.Summary {
	totalIncome := decimal.Zero
	perMember := make(map[int64]decimal.Decimal, len(members))
	for _, in := range incomes {
		if !in.Active {
			continue
		}
		monthly := ToMonthlyAmount(in.Amount, in.Frequency)
		totalIncome = totalIncome.Add(monthly)
		perMember[in.MemberID] = perMember[in.MemberID].Add(monthly)
	}

	totalFixed := decimal.Zero
	var categories []models.CategoryShare
	catIndex := make(map[string]int)
	for _, e := range expenses {
		if !e.Active {
			continue
		}
		monthly := ToMonthlyAmount(e.Amount, e.Frequency)
		totalFixed = totalFixed.Add(monthly)
		i, ok := catIndex[e.Category]
		if !ok {
			i = len(categories)
			catIndex[e.Category] = i
			categories = append(categories, models.CategoryShare{Category: e.Category})
		}
		categories[i].MonthlyAmount = categories[i].MonthlyAmount.Add(monthly)
	}

	totalBudgets := decimal.Zero
	for _, b := range budgets {
		totalBudgets = totalBudgets.Add(b.MonthlyLimit)
		categories = append(categories, models.CategoryShare{
			Category:      b.Name,
			MonthlyAmount: b.MonthlyLimit,
		})
	}

	for i := range categories {
		categories[i].IncomeShare = shareOf(categories[i].MonthlyAmount, totalIncome)
	}

	breakdown := make([]models.MemberBreakdown, 0, len(members))
	for _, m := range members {
		monthly := perMember[m.ID]
		breakdown = append(breakdown, models.MemberBreakdown{
			MemberID:      m.ID,
			Name:          m.Name,
			MonthlyIncome: monthly,
			IncomeShare:   shareOf(monthly, totalIncome),
		})
	}

	return models.Summary{
		TotalMonthlyIncome: totalIncome,
		TotalFixedExpenses: totalFixed,
		TotalBudgets:       totalBudgets,
		Remaining:          totalIncome.Sub(totalFixed).Sub(totalBudgets),
		Members:            breakdown,
		Categories:         categories,
	}
}

// shareOf returns amount as a percentage of total, 0 when total is 0.
func shareOf(amount, total decimal.Decimal) decimal.Decimal {
	if total.IsZero() {
		return decimal.Zero
	}
	return amount.Div(total).Mul(hundred)
}
