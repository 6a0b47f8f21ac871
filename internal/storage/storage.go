// Package storage defines the persistence interface of the service and a
// consistent-snapshot read used by the planning calculations.
package storage

import (
	"errors"

	"github.com/mkral/budget-planner/internal/models"
)

// ErrNotFound is returned when the requested record does not exist or
// belongs to another household.
var ErrNotFound = errors.New("not found")

// Snapshot is an atomic read of every collection of one household.
// Derived aggregates must always be computed from a single snapshot, never
// from a mix of reads taken at different times.
type Snapshot struct {
	Members   []models.Member      `json:"members"`
	Incomes   []models.Income      `json:"incomes"`
	Banks     []models.Bank        `json:"banks"`
	Accounts  []models.Account     `json:"accounts"`
	Transfers []models.Transfer    `json:"transfers"`
	Expenses  []models.Expense     `json:"expenses"`
	Budgets   []models.Budget      `json:"budgets"`
	Goals     []models.Goal        `json:"goals"`
	Plans     []models.MonthlyPlan `json:"plans"`
}

// Store provides database operations. Two implementations exist: Postgres
// for durable operation and an in-memory store for dev mode and tests,
// selected by configuration.
type Store interface {
	// Users
	CreateUser(user *models.User) error
	FindUserByEmail(email string) (*models.User, error)
	FindUserByID(id int64) (*models.User, error)
	ListUsers() ([]models.User, error)

	// Members. Deleting a member cascades to its incomes.
	CreateMember(member *models.Member) error
	ListMembers(userID int64) ([]models.Member, error)
	UpdateMember(userID int64, member *models.Member) error
	DeleteMember(userID, id int64) error

	// Incomes
	CreateIncome(userID int64, income *models.Income) error
	ListIncomes(userID int64) ([]models.Income, error)
	ListMemberIncomes(userID, memberID int64) ([]models.Income, error)
	UpdateIncome(userID int64, income *models.Income) error
	DeleteIncome(userID, id int64) error

	// Banks
	CreateBank(bank *models.Bank) error
	ListBanks(userID int64, activeOnly bool) ([]models.Bank, error)
	UpdateBank(userID int64, bank *models.Bank) error
	DeleteBank(userID, id int64) error

	// Accounts
	CreateAccount(account *models.Account) error
	GetAccount(userID, id int64) (*models.Account, error)
	ListAccounts(userID int64, activeOnly bool) ([]models.Account, error)
	UpdateAccount(userID int64, account *models.Account) error
	DeleteAccount(userID, id int64) error

	// Scheduled transfers
	CreateTransfer(transfer *models.Transfer) error
	ListTransfers(userID int64) ([]models.Transfer, error)
	UpdateTransfer(userID int64, transfer *models.Transfer) error
	DeleteTransfer(userID, id int64) error

	// Fixed expenses
	CreateExpense(expense *models.Expense) error
	ListExpenses(userID int64) ([]models.Expense, error)
	UpdateExpense(userID int64, expense *models.Expense) error
	DeleteExpense(userID, id int64) error

	// Budget categories
	CreateBudget(budget *models.Budget) error
	ListBudgets(userID int64) ([]models.Budget, error)
	UpdateBudget(userID int64, budget *models.Budget) error
	DeleteBudget(userID, id int64) error

	// Financial goals and monthly plans
	CreateGoal(goal *models.Goal) error
	GetGoal(userID, id int64) (*models.Goal, error)
	ListGoals(userID int64) ([]models.Goal, error)
	UpdateGoal(userID int64, goal *models.Goal) error
	DeleteGoal(userID, id int64) error
	GetMonthlyPlan(goalID int64, year, month int) (*models.MonthlyPlan, error)
	UpsertMonthlyPlan(plan *models.MonthlyPlan) error
	ListMonthlyPlans(userID int64, year, month int) ([]models.MonthlyPlan, error)

	// LoadSnapshot reads every collection of the household atomically.
	LoadSnapshot(userID int64) (*Snapshot, error)
	// ImportSnapshot replaces the entire household with the given backup.
	ImportSnapshot(userID int64, snap *Snapshot) error
}
