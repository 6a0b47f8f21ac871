package service

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/mkral/budget-planner/internal/config"
	"github.com/mkral/budget-planner/internal/models"
	"github.com/mkral/budget-planner/internal/storage/memory"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestService(t *testing.T) (*Service, context.Context) {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	cfg := &config.Config{
		Storage:       "memory",
		JWTSecret:     "test-secret",
		EncryptionKey: "6368616e676520746869732070617373",
		BackupSecret:  "test-backup-secret",
	}
	svc, err := NewService(memory.New(), log, cfg)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	user, err := svc.Register("tester", "tester@example.com", "password")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	ctx := context.WithValue(context.Background(), "userID", "1")
	if user.ID != 1 {
		t.Fatalf("expected first user id 1, got %d", user.ID)
	}
	return svc, ctx
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newTestService(t)

	token, err := svc.Login("tester@example.com", "password")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token == "" {
		t.Error("expected a token")
	}

	if _, err := svc.Login("tester@example.com", "wrong"); err == nil {
		t.Error("expected login to fail with wrong password")
	}
	if _, err := svc.Login("nobody@example.com", "password"); err == nil {
		t.Error("expected login to fail for unknown email")
	}
}

func TestRegisterRequiresEmailAndPassword(t *testing.T) {
	svc, _ := newTestService(t)
	if _, err := svc.Register("x", "", "pw"); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
	if _, err := svc.Register("x", "x@example.com", ""); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestCreateMemberValidation(t *testing.T) {
	svc, ctx := newTestService(t)
	err := svc.CreateMember(ctx, &models.Member{})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for empty name, got %v", err)
	}
}

func TestTransferValidation(t *testing.T) {
	svc, ctx := newTestService(t)

	err := svc.CreateTransfer(ctx, &models.Transfer{
		Name: "self", FromAccountID: 1, ToAccountID: 1,
		Amount: dec("10"), DayOfMonth: 5, Active: true,
	})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for same accounts, got %v", err)
	}

	err = svc.CreateTransfer(ctx, &models.Transfer{
		Name: "zero", FromAccountID: 1, ToAccountID: 2,
		Amount: dec("0"), DayOfMonth: 5, Active: true,
	})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for zero amount, got %v", err)
	}

	err = svc.CreateTransfer(ctx, &models.Transfer{
		Name: "day", FromAccountID: 1, ToAccountID: 2,
		Amount: dec("10"), DayOfMonth: 0, Active: true,
	})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for day 0, got %v", err)
	}
}

func TestAccountNumberStoredEncryptedAndMasked(t *testing.T) {
	svc, ctx := newTestService(t)

	account := &models.Account{
		Name:          "Main",
		Type:          models.AccountChecking,
		AccountNumber: "1234567890123456",
		Balance:       dec("100"),
		Active:        true,
	}
	if err := svc.CreateAccount(ctx, account); err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}
	if got, want := account.AccountNumber, "************3456"; got != want {
		t.Errorf("returned number = %q, want %q", got, want)
	}

	stored, err := svc.store.GetAccount(1, account.ID)
	if err != nil {
		t.Fatalf("GetAccount: %v", err)
	}
	if stored.AccountNumber == "1234567890123456" {
		t.Error("account number stored in plaintext")
	}

	accounts, err := svc.ListAccounts(ctx, false)
	if err != nil {
		t.Fatalf("ListAccounts: %v", err)
	}
	if got, want := accounts[0].AccountNumber, "************3456"; got != want {
		t.Errorf("listed number = %q, want %q", got, want)
	}
}

func TestPremiumFlowOnlyOnPremiumAccounts(t *testing.T) {
	svc, ctx := newTestService(t)
	flow := dec("25000")
	err := svc.CreateAccount(ctx, &models.Account{
		Name: "Plain", Type: models.AccountChecking, PremiumMinFlow: &flow, Active: true,
	})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestFundContributeAndWithdraw(t *testing.T) {
	svc, ctx := newTestService(t)

	goal := &models.Goal{
		Name:    "Vacation",
		Variant: models.GoalFund,
		Active:  true,
	}
	if err := svc.CreateGoal(ctx, goal); err != nil {
		t.Fatalf("CreateGoal: %v", err)
	}

	updated, err := svc.ContributeFund(ctx, goal.ID, dec("100"))
	if err != nil {
		t.Fatalf("ContributeFund: %v", err)
	}
	if !updated.Balance.Equal(dec("100")) {
		t.Errorf("balance = %s, want 100", updated.Balance)
	}

	updated, err = svc.WithdrawFund(ctx, goal.ID, dec("30"))
	if err != nil {
		t.Fatalf("WithdrawFund: %v", err)
	}
	if !updated.Balance.Equal(dec("70")) {
		t.Errorf("balance = %s, want 70", updated.Balance)
	}

	if _, err := svc.WithdrawFund(ctx, goal.ID, dec("100")); !errors.Is(err, ErrInsufficientFunds) {
		t.Errorf("expected ErrInsufficientFunds, got %v", err)
	}
	updated, _ = svc.GetGoal(ctx, goal.ID)
	if !updated.Balance.Equal(dec("70")) {
		t.Errorf("failed withdrawal changed balance to %s", updated.Balance)
	}
}

func TestFundOpsRejectNonFundGoal(t *testing.T) {
	svc, ctx := newTestService(t)
	goal := &models.Goal{
		Name: "Groceries", Variant: models.GoalWeeklyVariable,
		WeeklyAmount: dec("50"), DayOfWeek: 0, Active: true,
	}
	if err := svc.CreateGoal(ctx, goal); err != nil {
		t.Fatalf("CreateGoal: %v", err)
	}
	if _, err := svc.ContributeFund(ctx, goal.ID, dec("10")); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestSummaryReportReflectsMutations(t *testing.T) {
	svc, ctx := newTestService(t)

	member := &models.Member{Name: "Alice"}
	if err := svc.CreateMember(ctx, member); err != nil {
		t.Fatalf("CreateMember: %v", err)
	}
	income := &models.Income{
		MemberID: member.ID, Name: "Salary",
		Amount: dec("3000"), Frequency: models.FrequencyMonthly, Active: true,
	}
	if err := svc.CreateIncome(ctx, income); err != nil {
		t.Fatalf("CreateIncome: %v", err)
	}

	summary, err := svc.SummaryReport(ctx)
	if err != nil {
		t.Fatalf("SummaryReport: %v", err)
	}
	if !summary.TotalMonthlyIncome.Equal(dec("3000")) {
		t.Errorf("income = %s, want 3000", summary.TotalMonthlyIncome)
	}

	// The cached snapshot must be dropped by the mutation.
	income.Amount = dec("3500")
	if err := svc.UpdateIncome(ctx, income); err != nil {
		t.Fatalf("UpdateIncome: %v", err)
	}
	summary, err = svc.SummaryReport(ctx)
	if err != nil {
		t.Fatalf("SummaryReport: %v", err)
	}
	if !summary.TotalMonthlyIncome.Equal(dec("3500")) {
		t.Errorf("income after update = %s, want 3500", summary.TotalMonthlyIncome)
	}
}

func TestGetPlanDefaultsFromCalendar(t *testing.T) {
	svc, ctx := newTestService(t)

	goal := &models.Goal{
		Name: "Groceries", Variant: models.GoalWeeklyVariable,
		WeeklyAmount: dec("1150"), DayOfWeek: 1, Active: true,
	}
	if err := svc.CreateGoal(ctx, goal); err != nil {
		t.Fatalf("CreateGoal: %v", err)
	}

	// February 2026 has four Tuesdays.
	plan, err := svc.GetPlan(ctx, goal.ID, 2026, 2)
	if err != nil {
		t.Fatalf("GetPlan: %v", err)
	}
	if plan.PlannedCount != 4 {
		t.Errorf("planned count = %d, want 4", plan.PlannedCount)
	}
	if !plan.PlannedTotal.Equal(dec("4600")) {
		t.Errorf("planned total = %s, want 4600", plan.PlannedTotal)
	}
	if plan.ID != 0 {
		t.Errorf("derived plan should not be persisted, got id %d", plan.ID)
	}
}

func TestSavePlanRejectsRealizedAbovePlanned(t *testing.T) {
	svc, ctx := newTestService(t)

	goal := &models.Goal{
		Name: "Groceries", Variant: models.GoalWeeklyVariable,
		WeeklyAmount: dec("100"), DayOfWeek: 0, Active: true,
	}
	if err := svc.CreateGoal(ctx, goal); err != nil {
		t.Fatalf("CreateGoal: %v", err)
	}

	err := svc.SavePlan(ctx, &models.MonthlyPlan{
		GoalID: goal.ID, Year: 2026, Month: 3,
		PlannedCount: 4, RealizedCount: 5,
	})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestRolloverPlansSeedsOnlyMissing(t *testing.T) {
	svc, ctx := newTestService(t)

	weekly := &models.Goal{
		Name: "Groceries", Variant: models.GoalWeeklyVariable,
		WeeklyAmount: dec("200"), DayOfWeek: 0, Active: true,
	}
	fund := &models.Goal{Name: "Vacation", Variant: models.GoalFund, Active: true}
	for _, g := range []*models.Goal{weekly, fund} {
		if err := svc.CreateGoal(ctx, g); err != nil {
			t.Fatalf("CreateGoal: %v", err)
		}
	}
	if err := svc.SavePlan(ctx, &models.MonthlyPlan{
		GoalID: weekly.ID, Year: 2026, Month: 3,
		PlannedCount: 3, RealizedCount: 1, PlannedTotal: dec("600"),
	}); err != nil {
		t.Fatalf("SavePlan: %v", err)
	}

	if err := svc.RolloverPlans(1, 2026, 3); err != nil {
		t.Fatalf("RolloverPlans: %v", err)
	}

	plans, err := svc.ListPlans(ctx, 2026, 3)
	if err != nil {
		t.Fatalf("ListPlans: %v", err)
	}
	if len(plans) != 1 {
		t.Fatalf("expected 1 plan, got %d", len(plans))
	}
	// The stored plan must not be overwritten by the rollover.
	if plans[0].PlannedCount != 3 {
		t.Errorf("planned count = %d, want 3", plans[0].PlannedCount)
	}

	// A month with no stored plan gets seeded. March 2026 has five Mondays.
	if err := svc.RolloverPlans(1, 2026, 4); err != nil {
		t.Fatalf("RolloverPlans: %v", err)
	}
	plans, err = svc.ListPlans(ctx, 2026, 4)
	if err != nil {
		t.Fatalf("ListPlans: %v", err)
	}
	if len(plans) != 1 {
		t.Fatalf("expected 1 seeded plan, got %d", len(plans))
	}
	if plans[0].GoalID != weekly.ID {
		t.Errorf("seeded plan for goal %d, want %d", plans[0].GoalID, weekly.ID)
	}
}

func TestBackupExportImportRoundTrip(t *testing.T) {
	svc, ctx := newTestService(t)

	member := &models.Member{Name: "Alice"}
	if err := svc.CreateMember(ctx, member); err != nil {
		t.Fatalf("CreateMember: %v", err)
	}
	income := &models.Income{
		MemberID: member.ID, Name: "Salary",
		Amount: dec("3000"), Frequency: models.FrequencyMonthly, Active: true,
	}
	if err := svc.CreateIncome(ctx, income); err != nil {
		t.Fatalf("CreateIncome: %v", err)
	}

	archive, err := svc.ExportBackup(ctx)
	if err != nil {
		t.Fatalf("ExportBackup: %v", err)
	}
	if archive.ArchiveID == "" || archive.Checksum == "" {
		t.Fatal("archive missing id or checksum")
	}

	if err := svc.DeleteMember(ctx, member.ID); err != nil {
		t.Fatalf("DeleteMember: %v", err)
	}

	if err := svc.ImportBackup(ctx, archive); err != nil {
		t.Fatalf("ImportBackup: %v", err)
	}
	members, err := svc.ListMembers(ctx)
	if err != nil {
		t.Fatalf("ListMembers: %v", err)
	}
	if len(members) != 1 || members[0].Name != "Alice" {
		t.Fatalf("restored members = %+v", members)
	}
	incomes, err := svc.ListMemberIncomes(ctx, members[0].ID)
	if err != nil {
		t.Fatalf("ListMemberIncomes: %v", err)
	}
	if len(incomes) != 1 {
		t.Fatalf("expected income restored under remapped member, got %d", len(incomes))
	}
}

func TestImportBackupRejectsTamperedArchive(t *testing.T) {
	svc, ctx := newTestService(t)

	archive, err := svc.ExportBackup(ctx)
	if err != nil {
		t.Fatalf("ExportBackup: %v", err)
	}
	archive.Snapshot.Members = append(archive.Snapshot.Members, models.Member{Name: "Mallory"})

	if err := svc.ImportBackup(ctx, archive); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for tampered archive, got %v", err)
	}
}
