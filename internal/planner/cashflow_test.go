package planner

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mkral/budget-planner/internal/models"
)

func ptr(v int64) *int64 { return &v }

func TestSimulateExpenseDrivesBalanceNegative(t *testing.T) {
	account := models.Account{ID: 1, Name: "Checking", Balance: dec("1000"), Active: true}
	expenses := []models.Expense{
		{ID: 1, Name: "Rent", Amount: dec("1500"), Frequency: models.FrequencyMonthly,
			DayOfMonth: 10, AccountID: ptr(1), Active: true},
	}

	cf := Simulate(account, nil, expenses, nil, 2026, time.March)

	if !cf.MinBalance.Equal(dec("-500")) {
		t.Errorf("MinBalance = %s, want -500", cf.MinBalance)
	}
	if !cf.HasNegativeBalance {
		t.Error("HasNegativeBalance = false, want true")
	}
	if !cf.EndOfMonthBalance.Equal(dec("-500")) {
		t.Errorf("EndOfMonthBalance = %s, want -500", cf.EndOfMonthBalance)
	}
	if !cf.TotalOutflow.Equal(dec("1500")) {
		t.Errorf("TotalOutflow = %s, want 1500", cf.TotalOutflow)
	}
}

func TestSimulateIncomeThenTransferOut(t *testing.T) {
	account := models.Account{ID: 1, Name: "Checking", Balance: dec("0"), Active: true}
	incomes := []models.Income{
		{ID: 1, Name: "Salary", Amount: dec("2000"), Frequency: models.FrequencyMonthly,
			DayOfMonth: 1, AccountID: ptr(1), Active: true},
	}
	transfers := []models.Transfer{
		{ID: 1, Name: "To savings", FromAccountID: 1, ToAccountID: 2,
			Amount: dec("500"), DayOfMonth: 5, Active: true},
	}

	cf := Simulate(account, incomes, nil, transfers, 2026, time.March)

	if len(cf.Events) != 2 {
		t.Fatalf("len(Events) = %d, want 2", len(cf.Events))
	}
	if cf.Events[0].Type != models.EventIncome || cf.Events[0].Day != 1 {
		t.Errorf("event[0] = {%s, day %d}, want {income, day 1}", cf.Events[0].Type, cf.Events[0].Day)
	}
	if cf.Events[1].Type != models.EventTransferOut || cf.Events[1].Day != 5 {
		t.Errorf("event[1] = {%s, day %d}, want {transfer_out, day 5}", cf.Events[1].Type, cf.Events[1].Day)
	}
	if !cf.Events[0].Balance.Equal(dec("2000")) || !cf.Events[1].Balance.Equal(dec("1500")) {
		t.Errorf("running balances = [%s, %s], want [2000, 1500]", cf.Events[0].Balance, cf.Events[1].Balance)
	}
	// Minimum includes the initial balance, which never recovers below 0 here.
	if !cf.MinBalance.Equal(dec("0")) {
		t.Errorf("MinBalance = %s, want 0", cf.MinBalance)
	}
	if !cf.EndOfMonthBalance.Equal(dec("1500")) {
		t.Errorf("EndOfMonthBalance = %s, want 1500", cf.EndOfMonthBalance)
	}
	if cf.HasNegativeBalance {
		t.Error("HasNegativeBalance = true, want false")
	}
}

func TestSimulateNoEvents(t *testing.T) {
	account := models.Account{ID: 1, Balance: dec("123.45"), Active: true}
	cf := Simulate(account, nil, nil, nil, 2026, time.February)
	if !cf.EndOfMonthBalance.Equal(dec("123.45")) {
		t.Errorf("EndOfMonthBalance = %s, want initial 123.45", cf.EndOfMonthBalance)
	}
	if !cf.MinBalance.Equal(dec("123.45")) {
		t.Errorf("MinBalance = %s, want 123.45", cf.MinBalance)
	}
	if cf.HasNegativeBalance {
		t.Error("HasNegativeBalance = true, want false")
	}
}

func TestSimulateTransferInAndOutSameAccountPair(t *testing.T) {
	account := models.Account{ID: 2, Name: "Savings", Balance: dec("100"), Active: true}
	transfers := []models.Transfer{
		{ID: 1, Name: "Top up", FromAccountID: 1, ToAccountID: 2, Amount: dec("300"), DayOfMonth: 2, Active: true},
		{ID: 2, Name: "Mortgage pot", FromAccountID: 2, ToAccountID: 3, Amount: dec("250"), DayOfMonth: 20, Active: true},
	}
	cf := Simulate(account, nil, nil, transfers, 2026, time.March)
	if !cf.TotalInflow.Equal(dec("300")) || !cf.TotalOutflow.Equal(dec("250")) {
		t.Errorf("flows = in %s / out %s, want 300 / 250", cf.TotalInflow, cf.TotalOutflow)
	}
	if !cf.EndOfMonthBalance.Equal(dec("150")) {
		t.Errorf("EndOfMonthBalance = %s, want 150", cf.EndOfMonthBalance)
	}
}

func TestSimulatePremiumCheck(t *testing.T) {
	minFlow := dec("25000")
	account := models.Account{
		ID: 1, Name: "Premium", Balance: dec("0"),
		IsPremium: true, PremiumMinFlow: &minFlow, Active: true,
	}

	tests := []struct {
		name   string
		inflow string
		wantOk bool
	}{
		{"below threshold", "20000", false},
		{"above threshold", "30000", true},
		{"exactly at threshold", "25000", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			incomes := []models.Income{
				{ID: 1, Name: "Salary", Amount: dec(tt.inflow), Frequency: models.FrequencyMonthly,
					DayOfMonth: 1, AccountID: ptr(1), Active: true},
			}
			cf := Simulate(account, incomes, nil, nil, 2026, time.March)
			if cf.Premium == nil {
				t.Fatal("Premium = nil, want check result")
			}
			if cf.Premium.IsOk != tt.wantOk {
				t.Errorf("IsOk = %v, want %v (inflow %s)", cf.Premium.IsOk, tt.wantOk, tt.inflow)
			}
		})
	}
}

func TestSimulatePremiumUnsetThresholdAlwaysOk(t *testing.T) {
	account := models.Account{ID: 1, Balance: dec("0"), IsPremium: true, Active: true}
	cf := Simulate(account, nil, nil, nil, 2026, time.March)
	if cf.Premium == nil || !cf.Premium.IsOk {
		t.Errorf("unset premium threshold: got %+v, want always ok", cf.Premium)
	}
}

func TestSimulateNonPremiumHasNoCheck(t *testing.T) {
	account := models.Account{ID: 1, Balance: dec("0"), Active: true}
	cf := Simulate(account, nil, nil, nil, 2026, time.March)
	if cf.Premium != nil {
		t.Errorf("Premium = %+v, want nil for non-premium account", cf.Premium)
	}
}

func TestSimulateUnsetDayDefaultsToFirst(t *testing.T) {
	account := models.Account{ID: 1, Balance: dec("0"), Active: true}
	incomes := []models.Income{
		{ID: 1, Name: "Salary", Amount: dec("100"), Frequency: models.FrequencyMonthly,
			AccountID: ptr(1), Active: true}, // no day set
	}
	cf := Simulate(account, incomes, nil, nil, 2026, time.March)
	if len(cf.Events) != 1 || cf.Events[0].Day != 1 {
		t.Fatalf("events = %+v, want single event on day 1", cf.Events)
	}
}

func TestSimulateDayPastMonthEndLandsOnLastDay(t *testing.T) {
	account := models.Account{ID: 1, Balance: dec("0"), Active: true}
	expenses := []models.Expense{
		{ID: 1, Name: "Rent", Amount: dec("10"), Frequency: models.FrequencyMonthly,
			DayOfMonth: 31, AccountID: ptr(1), Active: true},
	}
	cf := Simulate(account, nil, expenses, nil, 2026, time.February)
	if len(cf.Events) != 1 || cf.Events[0].Day != 28 {
		t.Fatalf("events = %+v, want single event on day 28", cf.Events)
	}
}

func TestSimulateWeeklyIncomeExpansion(t *testing.T) {
	account := models.Account{ID: 1, Balance: dec("0"), Active: true}
	incomes := []models.Income{
		{ID: 1, Name: "Shift pay", Amount: dec("400"), Frequency: models.FrequencyWeekly,
			DayOfMonth: 3, AccountID: ptr(1), Active: true},
	}
	// March has 31 days: 3, 10, 17, 24, 31.
	cf := Simulate(account, incomes, nil, nil, 2026, time.March)
	wantDays := []int{3, 10, 17, 24, 31}
	if len(cf.Events) != len(wantDays) {
		t.Fatalf("len(Events) = %d, want %d", len(cf.Events), len(wantDays))
	}
	for i, d := range wantDays {
		if cf.Events[i].Day != d {
			t.Errorf("event[%d].Day = %d, want %d", i, cf.Events[i].Day, d)
		}
	}
	if !cf.TotalInflow.Equal(dec("2000")) {
		t.Errorf("TotalInflow = %s, want 2000", cf.TotalInflow)
	}
}

func TestSimulateBiweeklyIncomeExpansion(t *testing.T) {
	account := models.Account{ID: 1, Balance: dec("0"), Active: true}
	incomes := []models.Income{
		{ID: 1, Name: "Pay", Amount: dec("900"), Frequency: models.FrequencyBiweekly,
			DayOfMonth: 1, AccountID: ptr(1), Active: true},
	}
	// 30-day month: 1, 15, 29.
	cf := Simulate(account, incomes, nil, nil, 2026, time.April)
	if len(cf.Events) != 3 {
		t.Fatalf("len(Events) = %d, want 3", len(cf.Events))
	}
	if cf.Events[2].Day != 29 {
		t.Errorf("last payout day = %d, want 29", cf.Events[2].Day)
	}
}

func TestSimulateQuarterlyExpenseDueMonths(t *testing.T) {
	account := models.Account{ID: 1, Balance: dec("0"), Active: true}
	expenses := []models.Expense{
		{ID: 1, Name: "Water bill", Amount: dec("90"), Frequency: models.FrequencyQuarterly,
			DayOfMonth: 15, DueMonth: 2, AccountID: ptr(1), Active: true},
	}

	tests := []struct {
		month time.Month
		fires bool
	}{
		{time.January, false},
		{time.February, true},
		{time.March, false},
		{time.May, true},
		{time.August, true},
		{time.November, true},
		{time.December, false},
	}
	for _, tt := range tests {
		cf := Simulate(account, nil, expenses, nil, 2026, tt.month)
		if got := len(cf.Events) == 1; got != tt.fires {
			t.Errorf("%s: fires = %v, want %v", tt.month, got, tt.fires)
		}
	}
}

func TestSimulateYearlyExpenseFiresOnlyInDueMonth(t *testing.T) {
	account := models.Account{ID: 1, Balance: dec("0"), Active: true}
	expenses := []models.Expense{
		{ID: 1, Name: "Car tax", Amount: dec("480"), Frequency: models.FrequencyYearly,
			DayOfMonth: 5, DueMonth: 6, AccountID: ptr(1), Active: true},
	}
	for m := time.January; m <= time.December; m++ {
		cf := Simulate(account, nil, expenses, nil, 2026, m)
		want := m == time.June
		if got := len(cf.Events) == 1; got != want {
			t.Errorf("%s: fires = %v, want %v", m, got, want)
		}
	}
}

func TestSimulateYearlyExpenseWithoutDueMonthFiresMonthly(t *testing.T) {
	account := models.Account{ID: 1, Balance: dec("0"), Active: true}
	expenses := []models.Expense{
		{ID: 1, Name: "Subscription", Amount: dec("12"), Frequency: models.FrequencyYearly,
			DayOfMonth: 5, AccountID: ptr(1), Active: true},
	}
	for _, m := range []time.Month{time.January, time.July} {
		cf := Simulate(account, nil, expenses, nil, 2026, m)
		if len(cf.Events) != 1 {
			t.Errorf("%s: len(Events) = %d, want 1", m, len(cf.Events))
		}
	}
}

func TestSimulateDoesNotMutateInputs(t *testing.T) {
	account := models.Account{ID: 1, Balance: dec("50"), Active: true}
	incomes := []models.Income{
		{ID: 1, Name: "Salary", Amount: dec("100"), Frequency: models.FrequencyMonthly,
			DayOfMonth: 1, AccountID: ptr(1), Active: true},
	}
	before := incomes[0].Amount
	_ = Simulate(account, incomes, nil, nil, 2026, time.March)
	if !incomes[0].Amount.Equal(before) || !account.Balance.Equal(dec("50")) {
		t.Error("Simulate mutated its inputs")
	}
}

func TestSimulateAllSkipsInactiveAccounts(t *testing.T) {
	accounts := []models.Account{
		{ID: 1, Balance: decimal.Zero, Active: true},
		{ID: 2, Balance: decimal.Zero, Active: false},
	}
	got := SimulateAll(accounts, nil, nil, nil, 2026, time.March)
	if len(got) != 1 {
		t.Fatalf("len(results) = %d, want 1", len(got))
	}
	if _, ok := got[1]; !ok {
		t.Error("missing result for active account 1")
	}
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2026, time.February, 28},
		{2028, time.February, 29},
		{2026, time.April, 30},
		{2026, time.December, 31},
	}
	for _, tt := range tests {
		if got := DaysInMonth(tt.year, tt.month); got != tt.want {
			t.Errorf("DaysInMonth(%d, %s) = %d, want %d", tt.year, tt.month, got, tt.want)
		}
	}
}
