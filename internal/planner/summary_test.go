package planner

import (
	"testing"

	"github.com/mkral/budget-planner/internal/models"
)

func TestSummarizeTotalsAndRemaining(t *testing.T) {
	members := []models.Member{
		{ID: 1, Name: "Anna"},
		{ID: 2, Name: "Ben"},
	}
	incomes := []models.Income{
		{ID: 1, MemberID: 1, Amount: dec("3000"), Frequency: models.FrequencyMonthly, Active: true},
		{ID: 2, MemberID: 2, Amount: dec("12000"), Frequency: models.FrequencyYearly, Active: true},
		{ID: 3, MemberID: 2, Amount: dec("500"), Frequency: models.FrequencyMonthly, Active: false},
	}
	expenses := []models.Expense{
		{ID: 1, Name: "Rent", Category: "housing", Amount: dec("1200"), Frequency: models.FrequencyMonthly, Active: true},
		{ID: 2, Name: "Insurance", Category: "insurance", Amount: dec("600"), Frequency: models.FrequencyYearly, Active: true},
		{ID: 3, Name: "Old gym", Category: "leisure", Amount: dec("99"), Frequency: models.FrequencyMonthly, Active: false},
	}
	budgets := []models.Budget{
		{ID: 1, Name: "Groceries", MonthlyLimit: dec("800")},
		{ID: 2, Name: "Fun", MonthlyLimit: dec("200")},
	}

	s := Summarize(members, incomes, expenses, budgets)

	if !s.TotalMonthlyIncome.Equal(dec("4000")) {
		t.Errorf("TotalMonthlyIncome = %s, want 4000", s.TotalMonthlyIncome)
	}
	if !s.TotalFixedExpenses.Equal(dec("1250")) {
		t.Errorf("TotalFixedExpenses = %s, want 1250", s.TotalFixedExpenses)
	}
	if !s.TotalBudgets.Equal(dec("1000")) {
		t.Errorf("TotalBudgets = %s, want 1000", s.TotalBudgets)
	}
	if !s.Remaining.Equal(dec("1750")) {
		t.Errorf("Remaining = %s, want 1750", s.Remaining)
	}

	// Reconstructive identity: remaining + fixed + budgets == income.
	back := s.Remaining.Add(s.TotalFixedExpenses).Add(s.TotalBudgets)
	if !back.Equal(s.TotalMonthlyIncome) {
		t.Errorf("remaining + fixed + budgets = %s, want %s", back, s.TotalMonthlyIncome)
	}

	if len(s.Members) != 2 {
		t.Fatalf("len(Members) = %d, want 2", len(s.Members))
	}
	if !s.Members[0].MonthlyIncome.Equal(dec("3000")) {
		t.Errorf("Anna monthly income = %s, want 3000", s.Members[0].MonthlyIncome)
	}
	if !s.Members[0].IncomeShare.Equal(dec("75")) {
		t.Errorf("Anna income share = %s, want 75", s.Members[0].IncomeShare)
	}
	if !s.Members[1].IncomeShare.Equal(dec("25")) {
		t.Errorf("Ben income share = %s, want 25", s.Members[1].IncomeShare)
	}
}

func TestSummarizeEmptyHousehold(t *testing.T) {
	s := Summarize(nil, nil, nil, nil)
	if !s.TotalMonthlyIncome.IsZero() || !s.TotalFixedExpenses.IsZero() || !s.TotalBudgets.IsZero() {
		t.Errorf("empty household totals = %s/%s/%s, want all zero",
			s.TotalMonthlyIncome, s.TotalFixedExpenses, s.TotalBudgets)
	}
	if !s.Remaining.IsZero() {
		t.Errorf("Remaining = %s, want 0", s.Remaining)
	}
}

func TestSummarizeZeroIncomeGuardsShares(t *testing.T) {
	members := []models.Member{{ID: 1, Name: "Anna"}}
	expenses := []models.Expense{
		{ID: 1, Name: "Rent", Category: "housing", Amount: dec("1200"), Frequency: models.FrequencyMonthly, Active: true},
	}
	s := Summarize(members, nil, expenses, nil)
	if !s.Members[0].IncomeShare.IsZero() {
		t.Errorf("member share with zero income = %s, want 0", s.Members[0].IncomeShare)
	}
	if !s.Categories[0].IncomeShare.IsZero() {
		t.Errorf("category share with zero income = %s, want 0", s.Categories[0].IncomeShare)
	}
}

func TestSummarizeIdempotent(t *testing.T) {
	incomes := []models.Income{
		{ID: 1, MemberID: 1, Amount: dec("1234.56"), Frequency: models.FrequencyWeekly, Active: true},
	}
	expenses := []models.Expense{
		{ID: 1, Name: "Rent", Category: "housing", Amount: dec("77.70"), Frequency: models.FrequencyQuarterly, Active: true},
	}
	a := Summarize(nil, incomes, expenses, nil)
	b := Summarize(nil, incomes, expenses, nil)
	if !a.TotalMonthlyIncome.Equal(b.TotalMonthlyIncome) ||
		!a.TotalFixedExpenses.Equal(b.TotalFixedExpenses) ||
		!a.Remaining.Equal(b.Remaining) {
		t.Errorf("two runs over the same snapshot differ: %+v vs %+v", a, b)
	}
}
