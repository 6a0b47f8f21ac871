package memory

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mkral/budget-planner/internal/models"
	"github.com/mkral/budget-planner/internal/storage"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newHousehold(t *testing.T) (*Store, int64) {
	t.Helper()
	s := New()
	u := &models.User{Username: "fam", Email: "fam@example.com", PasswordHash: "x"}
	if err := s.CreateUser(u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return s, u.ID
}

func TestMemberCRUDAndIncomeCascade(t *testing.T) {
	s, userID := newHousehold(t)

	m := &models.Member{UserID: userID, Name: "Anna", Color: "#fab387"}
	if err := s.CreateMember(m); err != nil {
		t.Fatalf("CreateMember: %v", err)
	}
	in := &models.Income{MemberID: m.ID, Name: "Salary", Amount: dec("3000"), Frequency: models.FrequencyMonthly, Active: true}
	if err := s.CreateIncome(userID, in); err != nil {
		t.Fatalf("CreateIncome: %v", err)
	}

	m.Name = "Anna K"
	if err := s.UpdateMember(userID, m); err != nil {
		t.Fatalf("UpdateMember: %v", err)
	}
	members, _ := s.ListMembers(userID)
	if len(members) != 1 || members[0].Name != "Anna K" {
		t.Fatalf("members = %+v, want one named Anna K", members)
	}

	if err := s.DeleteMember(userID, m.ID); err != nil {
		t.Fatalf("DeleteMember: %v", err)
	}
	incomes, _ := s.ListIncomes(userID)
	if len(incomes) != 0 {
		t.Errorf("incomes after member delete = %d, want 0 (cascade)", len(incomes))
	}
}

func TestIncomeRequiresOwnedMember(t *testing.T) {
	s, userID := newHousehold(t)
	other := &models.User{Username: "other", Email: "other@example.com", PasswordHash: "x"}
	if err := s.CreateUser(other); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	m := &models.Member{UserID: other.ID, Name: "Stranger"}
	if err := s.CreateMember(m); err != nil {
		t.Fatalf("CreateMember: %v", err)
	}

	in := &models.Income{MemberID: m.ID, Name: "Salary", Amount: dec("1"), Frequency: models.FrequencyMonthly}
	if err := s.CreateIncome(userID, in); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("CreateIncome for foreign member = %v, want ErrNotFound", err)
	}
}

func TestUpdateMissingRecordReturnsNotFound(t *testing.T) {
	s, userID := newHousehold(t)
	b := &models.Bank{ID: 999, UserID: userID, Name: "Ghost"}
	if err := s.UpdateBank(userID, b); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("UpdateBank missing = %v, want ErrNotFound", err)
	}
	if err := s.DeleteAccount(userID, 999); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("DeleteAccount missing = %v, want ErrNotFound", err)
	}
}

func TestAccountDeleteRemovesTransfers(t *testing.T) {
	s, userID := newHousehold(t)
	a := &models.Account{UserID: userID, Name: "Checking", Type: models.AccountChecking, Balance: dec("100"), Active: true}
	b := &models.Account{UserID: userID, Name: "Savings", Type: models.AccountSavings, Balance: dec("0"), Active: true}
	if err := s.CreateAccount(a); err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}
	if err := s.CreateAccount(b); err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}
	tr := &models.Transfer{UserID: userID, Name: "Save", FromAccountID: a.ID, ToAccountID: b.ID,
		Amount: dec("50"), DayOfMonth: 5, Active: true}
	if err := s.CreateTransfer(tr); err != nil {
		t.Fatalf("CreateTransfer: %v", err)
	}

	if err := s.DeleteAccount(userID, b.ID); err != nil {
		t.Fatalf("DeleteAccount: %v", err)
	}
	transfers, _ := s.ListTransfers(userID)
	if len(transfers) != 0 {
		t.Errorf("transfers after account delete = %d, want 0", len(transfers))
	}
}

func TestMonthlyPlanUpsert(t *testing.T) {
	s, userID := newHousehold(t)
	g := &models.Goal{UserID: userID, Name: "Groceries", Variant: models.GoalWeeklyVariable,
		WeeklyAmount: dec("1150"), DayOfWeek: 1, Active: true}
	if err := s.CreateGoal(g); err != nil {
		t.Fatalf("CreateGoal: %v", err)
	}

	p := &models.MonthlyPlan{GoalID: g.ID, Year: 2026, Month: 2, PlannedCount: 4, PlannedTotal: dec("4600")}
	if err := s.UpsertMonthlyPlan(p); err != nil {
		t.Fatalf("UpsertMonthlyPlan: %v", err)
	}
	firstID := p.ID

	p.RealizedCount = 3
	p.RealizedTotal = dec("3450")
	if err := s.UpsertMonthlyPlan(p); err != nil {
		t.Fatalf("UpsertMonthlyPlan update: %v", err)
	}
	if p.ID != firstID {
		t.Errorf("upsert created a second row: id %d then %d", firstID, p.ID)
	}

	got, err := s.GetMonthlyPlan(g.ID, 2026, 2)
	if err != nil {
		t.Fatalf("GetMonthlyPlan: %v", err)
	}
	if got.RealizedCount != 3 || !got.RealizedTotal.Equal(dec("3450")) {
		t.Errorf("plan = %+v, want realized 3 / 3450", got)
	}

	if _, err := s.GetMonthlyPlan(g.ID, 2026, 3); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetMonthlyPlan missing month = %v, want ErrNotFound", err)
	}
}

func TestLoadSnapshotScopesToHousehold(t *testing.T) {
	s, userID := newHousehold(t)
	other := &models.User{Username: "other", Email: "other@example.com", PasswordHash: "x"}
	if err := s.CreateUser(other); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	mine := &models.Account{UserID: userID, Name: "Mine", Type: models.AccountChecking, Active: true}
	theirs := &models.Account{UserID: other.ID, Name: "Theirs", Type: models.AccountChecking, Active: true}
	if err := s.CreateAccount(mine); err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}
	if err := s.CreateAccount(theirs); err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}

	snap, err := s.LoadSnapshot(userID)
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if len(snap.Accounts) != 1 || snap.Accounts[0].Name != "Mine" {
		t.Errorf("snapshot accounts = %+v, want only Mine", snap.Accounts)
	}
}

func TestImportSnapshotRemapsReferences(t *testing.T) {
	s, userID := newHousehold(t)

	backup := &storage.Snapshot{
		Members: []models.Member{{ID: 77, Name: "Anna"}},
		Banks:   []models.Bank{{ID: 10, Name: "Sparbank", Active: true}},
		Accounts: []models.Account{
			{ID: 50, Name: "Checking", Type: models.AccountChecking, Balance: dec("100"), Active: true},
			{ID: 51, Name: "Savings", Type: models.AccountSavings, Balance: dec("0"), Active: true},
		},
		Incomes: []models.Income{
			{ID: 5, MemberID: 77, Name: "Salary", Amount: dec("3000"), Frequency: models.FrequencyMonthly, Active: true},
		},
		Transfers: []models.Transfer{
			{ID: 9, Name: "Save", FromAccountID: 50, ToAccountID: 51, Amount: dec("200"), DayOfMonth: 2, Active: true},
		},
		Goals: []models.Goal{{ID: 3, Name: "Fund", Variant: models.GoalFund, MonthlyContribution: dec("50"), Active: true}},
		Plans: []models.MonthlyPlan{{ID: 1, GoalID: 3, Year: 2026, Month: 1, PlannedCount: 4}},
	}

	if err := s.ImportSnapshot(userID, backup); err != nil {
		t.Fatalf("ImportSnapshot: %v", err)
	}

	snap, err := s.LoadSnapshot(userID)
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if len(snap.Members) != 1 || len(snap.Accounts) != 2 || len(snap.Transfers) != 1 {
		t.Fatalf("imported shape = %d members / %d accounts / %d transfers", len(snap.Members), len(snap.Accounts), len(snap.Transfers))
	}
	if snap.Incomes[0].MemberID != snap.Members[0].ID {
		t.Errorf("income member id = %d, want remapped %d", snap.Incomes[0].MemberID, snap.Members[0].ID)
	}
	tr := snap.Transfers[0]
	if tr.FromAccountID != snap.Accounts[0].ID || tr.ToAccountID != snap.Accounts[1].ID {
		t.Errorf("transfer accounts = %d->%d, want %d->%d",
			tr.FromAccountID, tr.ToAccountID, snap.Accounts[0].ID, snap.Accounts[1].ID)
	}
	if snap.Plans[0].GoalID != snap.Goals[0].ID {
		t.Errorf("plan goal id = %d, want remapped %d", snap.Plans[0].GoalID, snap.Goals[0].ID)
	}
}
