// Package memory implements the storage.Store interface with in-process
// maps. It backs dev mode and tests; semantics match the Postgres store.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/mkral/budget-planner/internal/models"
	"github.com/mkral/budget-planner/internal/storage"
)

var _ storage.Store = (*Store)(nil)

// Store provides database operations held entirely in memory
type Store struct {
	mu     sync.RWMutex
	nextID int64

	users     map[int64]models.User
	members   map[int64]models.Member
	incomes   map[int64]models.Income
	banks     map[int64]models.Bank
	accounts  map[int64]models.Account
	transfers map[int64]models.Transfer
	expenses  map[int64]models.Expense
	budgets   map[int64]models.Budget
	goals     map[int64]models.Goal
	plans     map[int64]models.MonthlyPlan
}

// New initializes an empty in-memory store
func New() *Store {
	return &Store{
		users:     make(map[int64]models.User),
		members:   make(map[int64]models.Member),
		incomes:   make(map[int64]models.Income),
		banks:     make(map[int64]models.Bank),
		accounts:  make(map[int64]models.Account),
		transfers: make(map[int64]models.Transfer),
		expenses:  make(map[int64]models.Expense),
		budgets:   make(map[int64]models.Budget),
		goals:     make(map[int64]models.Goal),
		plans:     make(map[int64]models.MonthlyPlan),
	}
}

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// CreateUser creates a new user
func (s *Store) CreateUser(user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user.ID = s.id()
	user.CreatedAt = now()
	s.users[user.ID] = *user
	return nil
}

// FindUserByEmail retrieves a user by email
func (s *Store) FindUserByEmail(email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, storage.ErrNotFound
}

// FindUserByID retrieves a user by id
func (s *Store) FindUserByID(id int64) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	user := u
	return &user, nil
}

// ListUsers retrieves all users
func (s *Store) ListUsers() ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// CreateMember creates a household member
func (s *Store) CreateMember(member *models.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	member.ID = s.id()
	member.CreatedAt = now()
	member.UpdatedAt = member.CreatedAt
	s.members[member.ID] = *member
	return nil
}

// ListMembers retrieves the members of the household
func (s *Store) ListMembers(userID int64) ([]models.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listMembersLocked(userID), nil
}

func (s *Store) listMembersLocked(userID int64) []models.Member {
	var out []models.Member
	for _, m := range s.members {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// UpdateMember updates a member's name and color
func (s *Store) UpdateMember(userID int64, member *models.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.members[member.ID]
	if !ok || cur.UserID != userID {
		return storage.ErrNotFound
	}
	cur.Name = member.Name
	cur.Color = member.Color
	cur.UpdatedAt = now()
	s.members[cur.ID] = cur
	*member = cur
	return nil
}

// DeleteMember deletes a member and cascades to its incomes
func (s *Store) DeleteMember(userID, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.members[id]
	if !ok || m.UserID != userID {
		return storage.ErrNotFound
	}
	delete(s.members, id)
	for incID, in := range s.incomes {
		if in.MemberID == id {
			delete(s.incomes, incID)
		}
	}
	return nil
}

func (s *Store) memberOwnedLocked(userID, memberID int64) bool {
	m, ok := s.members[memberID]
	return ok && m.UserID == userID
}

// CreateIncome creates an income for a member of the household
func (s *Store) CreateIncome(userID int64, income *models.Income) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.memberOwnedLocked(userID, income.MemberID) {
		return storage.ErrNotFound
	}
	income.ID = s.id()
	income.CreatedAt = now()
	income.UpdatedAt = income.CreatedAt
	s.incomes[income.ID] = *income
	return nil
}

// ListIncomes retrieves all incomes of the household
func (s *Store) ListIncomes(userID int64) ([]models.Income, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listIncomesLocked(userID), nil
}

func (s *Store) listIncomesLocked(userID int64) []models.Income {
	var out []models.Income
	for _, in := range s.incomes {
		if s.memberOwnedLocked(userID, in.MemberID) {
			out = append(out, in)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ListMemberIncomes retrieves the incomes of one member
func (s *Store) ListMemberIncomes(userID, memberID int64) ([]models.Income, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Income
	for _, in := range s.incomes {
		if in.MemberID == memberID && s.memberOwnedLocked(userID, memberID) {
			out = append(out, in)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// UpdateIncome updates an income of the household
func (s *Store) UpdateIncome(userID int64, income *models.Income) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.incomes[income.ID]
	if !ok || !s.memberOwnedLocked(userID, cur.MemberID) {
		return storage.ErrNotFound
	}
	cur.Name = income.Name
	cur.Amount = income.Amount
	cur.Frequency = income.Frequency
	cur.DayOfMonth = income.DayOfMonth
	cur.AccountID = income.AccountID
	cur.Active = income.Active
	cur.UpdatedAt = now()
	s.incomes[cur.ID] = cur
	*income = cur
	return nil
}

// DeleteIncome deletes an income of the household
func (s *Store) DeleteIncome(userID, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	in, ok := s.incomes[id]
	if !ok || !s.memberOwnedLocked(userID, in.MemberID) {
		return storage.ErrNotFound
	}
	delete(s.incomes, id)
	return nil
}

// CreateBank creates a bank
func (s *Store) CreateBank(bank *models.Bank) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	bank.ID = s.id()
	bank.CreatedAt = now()
	bank.UpdatedAt = bank.CreatedAt
	s.banks[bank.ID] = *bank
	return nil
}

// ListBanks retrieves the banks of the household
func (s *Store) ListBanks(userID int64, activeOnly bool) ([]models.Bank, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Bank
	for _, b := range s.banks {
		if b.UserID == userID && (!activeOnly || b.Active) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// UpdateBank updates a bank
func (s *Store) UpdateBank(userID int64, bank *models.Bank) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.banks[bank.ID]
	if !ok || cur.UserID != userID {
		return storage.ErrNotFound
	}
	cur.Name = bank.Name
	cur.ShortName = bank.ShortName
	cur.Color = bank.Color
	cur.Notes = bank.Notes
	cur.Active = bank.Active
	cur.UpdatedAt = now()
	s.banks[cur.ID] = cur
	*bank = cur
	return nil
}

// DeleteBank deletes a bank
func (s *Store) DeleteBank(userID, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.banks[id]
	if !ok || b.UserID != userID {
		return storage.ErrNotFound
	}
	delete(s.banks, id)
	for accID, a := range s.accounts {
		if a.BankID != nil && *a.BankID == id {
			a.BankID = nil
			s.accounts[accID] = a
		}
	}
	return nil
}

// CreateAccount creates an account
func (s *Store) CreateAccount(account *models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	account.ID = s.id()
	account.CreatedAt = now()
	account.UpdatedAt = account.CreatedAt
	s.accounts[account.ID] = *account
	return nil
}

// GetAccount retrieves one account of the household
func (s *Store) GetAccount(userID, id int64) (*models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.accounts[id]
	if !ok || a.UserID != userID {
		return nil, storage.ErrNotFound
	}
	account := a
	return &account, nil
}

// ListAccounts retrieves the accounts of the household
func (s *Store) ListAccounts(userID int64, activeOnly bool) ([]models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Account
	for _, a := range s.accounts {
		if a.UserID == userID && (!activeOnly || a.Active) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// UpdateAccount updates an account
func (s *Store) UpdateAccount(userID int64, account *models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.accounts[account.ID]
	if !ok || cur.UserID != userID {
		return storage.ErrNotFound
	}
	cur.Name = account.Name
	cur.Type = account.Type
	cur.BankID = account.BankID
	cur.MemberID = account.MemberID
	cur.Currency = account.Currency
	cur.Balance = account.Balance
	cur.AccountNumber = account.AccountNumber
	cur.IsPremium = account.IsPremium
	cur.PremiumMinFlow = account.PremiumMinFlow
	cur.CreditLimit = account.CreditLimit
	cur.Active = account.Active
	cur.UpdatedAt = now()
	s.accounts[cur.ID] = cur
	*account = cur
	return nil
}

// DeleteAccount deletes an account and the transfers touching it
func (s *Store) DeleteAccount(userID, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[id]
	if !ok || a.UserID != userID {
		return storage.ErrNotFound
	}
	delete(s.accounts, id)
	for tID, t := range s.transfers {
		if t.FromAccountID == id || t.ToAccountID == id {
			delete(s.transfers, tID)
		}
	}
	return nil
}

// CreateTransfer creates a scheduled transfer
func (s *Store) CreateTransfer(transfer *models.Transfer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	transfer.ID = s.id()
	transfer.CreatedAt = now()
	transfer.UpdatedAt = transfer.CreatedAt
	s.transfers[transfer.ID] = *transfer
	return nil
}

// ListTransfers retrieves the scheduled transfers of the household
func (s *Store) ListTransfers(userID int64) ([]models.Transfer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listTransfersLocked(userID), nil
}

func (s *Store) listTransfersLocked(userID int64) []models.Transfer {
	var out []models.Transfer
	for _, t := range s.transfers {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.DayOfMonth != b.DayOfMonth {
			return a.DayOfMonth < b.DayOfMonth
		}
		if a.DisplayOrder != b.DisplayOrder {
			return a.DisplayOrder < b.DisplayOrder
		}
		return a.ID < b.ID
	})
	return out
}

// UpdateTransfer updates a scheduled transfer
func (s *Store) UpdateTransfer(userID int64, transfer *models.Transfer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.transfers[transfer.ID]
	if !ok || cur.UserID != userID {
		return storage.ErrNotFound
	}
	cur.Name = transfer.Name
	cur.FromAccountID = transfer.FromAccountID
	cur.ToAccountID = transfer.ToAccountID
	cur.Amount = transfer.Amount
	cur.DayOfMonth = transfer.DayOfMonth
	cur.Description = transfer.Description
	cur.Category = transfer.Category
	cur.DisplayOrder = transfer.DisplayOrder
	cur.Active = transfer.Active
	cur.UpdatedAt = now()
	s.transfers[cur.ID] = cur
	*transfer = cur
	return nil
}

// DeleteTransfer deletes a scheduled transfer
func (s *Store) DeleteTransfer(userID, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.transfers[id]
	if !ok || t.UserID != userID {
		return storage.ErrNotFound
	}
	delete(s.transfers, id)
	return nil
}

// CreateExpense creates a fixed expense
func (s *Store) CreateExpense(expense *models.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	expense.ID = s.id()
	expense.CreatedAt = now()
	expense.UpdatedAt = expense.CreatedAt
	s.expenses[expense.ID] = *expense
	return nil
}

// ListExpenses retrieves the fixed expenses of the household
func (s *Store) ListExpenses(userID int64) ([]models.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listExpensesLocked(userID), nil
}

func (s *Store) listExpensesLocked(userID int64) []models.Expense {
	var out []models.Expense
	for _, e := range s.expenses {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// UpdateExpense updates a fixed expense
func (s *Store) UpdateExpense(userID int64, expense *models.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.expenses[expense.ID]
	if !ok || cur.UserID != userID {
		return storage.ErrNotFound
	}
	cur.Name = expense.Name
	cur.Amount = expense.Amount
	cur.Category = expense.Category
	cur.Frequency = expense.Frequency
	cur.DayOfMonth = expense.DayOfMonth
	cur.DueMonth = expense.DueMonth
	cur.AccountID = expense.AccountID
	cur.MemberID = expense.MemberID
	cur.Notes = expense.Notes
	cur.Active = expense.Active
	cur.UpdatedAt = now()
	s.expenses[cur.ID] = cur
	*expense = cur
	return nil
}

// DeleteExpense deletes a fixed expense
func (s *Store) DeleteExpense(userID, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.expenses[id]
	if !ok || e.UserID != userID {
		return storage.ErrNotFound
	}
	delete(s.expenses, id)
	return nil
}

// CreateBudget creates a budget category
func (s *Store) CreateBudget(budget *models.Budget) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	budget.ID = s.id()
	budget.CreatedAt = now()
	budget.UpdatedAt = budget.CreatedAt
	s.budgets[budget.ID] = *budget
	return nil
}

// ListBudgets retrieves the budget categories of the household
func (s *Store) ListBudgets(userID int64) ([]models.Budget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listBudgetsLocked(userID), nil
}

func (s *Store) listBudgetsLocked(userID int64) []models.Budget {
	var out []models.Budget
	for _, b := range s.budgets {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// UpdateBudget updates a budget category
func (s *Store) UpdateBudget(userID int64, budget *models.Budget) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.budgets[budget.ID]
	if !ok || cur.UserID != userID {
		return storage.ErrNotFound
	}
	cur.Name = budget.Name
	cur.Type = budget.Type
	cur.MonthlyLimit = budget.MonthlyLimit
	cur.Color = budget.Color
	cur.Icon = budget.Icon
	cur.MemberID = budget.MemberID
	cur.UpdatedAt = now()
	s.budgets[cur.ID] = cur
	*budget = cur
	return nil
}

// DeleteBudget deletes a budget category
func (s *Store) DeleteBudget(userID, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.budgets[id]
	if !ok || b.UserID != userID {
		return storage.ErrNotFound
	}
	delete(s.budgets, id)
	return nil
}

// CreateGoal creates a financial goal
func (s *Store) CreateGoal(goal *models.Goal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	goal.ID = s.id()
	goal.CreatedAt = now()
	goal.UpdatedAt = goal.CreatedAt
	s.goals[goal.ID] = *goal
	return nil
}

// GetGoal retrieves one goal of the household
func (s *Store) GetGoal(userID, id int64) (*models.Goal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.goals[id]
	if !ok || g.UserID != userID {
		return nil, storage.ErrNotFound
	}
	goal := g
	return &goal, nil
}

// ListGoals retrieves the goals of the household
func (s *Store) ListGoals(userID int64) ([]models.Goal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listGoalsLocked(userID), nil
}

func (s *Store) listGoalsLocked(userID int64) []models.Goal {
	var out []models.Goal
	for _, g := range s.goals {
		if g.UserID == userID {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// UpdateGoal updates a financial goal
func (s *Store) UpdateGoal(userID int64, goal *models.Goal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.goals[goal.ID]
	if !ok || cur.UserID != userID {
		return storage.ErrNotFound
	}
	cur.Name = goal.Name
	cur.Variant = goal.Variant
	cur.Color = goal.Color
	cur.Icon = goal.Icon
	cur.WeeklyAmount = goal.WeeklyAmount
	cur.DayOfWeek = goal.DayOfWeek
	cur.MonthlyContribution = goal.MonthlyContribution
	cur.Balance = goal.Balance
	cur.YearlyAmount = goal.YearlyAmount
	cur.TargetMonth = goal.TargetMonth
	cur.Saved = goal.Saved
	cur.AccountID = goal.AccountID
	cur.Notes = goal.Notes
	cur.Active = goal.Active
	cur.UpdatedAt = now()
	s.goals[cur.ID] = cur
	*goal = cur
	return nil
}

// DeleteGoal deletes a goal and cascades to its monthly plans
func (s *Store) DeleteGoal(userID, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.goals[id]
	if !ok || g.UserID != userID {
		return storage.ErrNotFound
	}
	delete(s.goals, id)
	for pID, p := range s.plans {
		if p.GoalID == id {
			delete(s.plans, pID)
		}
	}
	return nil
}

// GetMonthlyPlan retrieves the plan of a goal for one (year, month)
func (s *Store) GetMonthlyPlan(goalID int64, year, month int) (*models.MonthlyPlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.plans {
		if p.GoalID == goalID && p.Year == year && p.Month == month {
			plan := p
			return &plan, nil
		}
	}
	return nil, storage.ErrNotFound
}

// UpsertMonthlyPlan inserts or replaces the plan of a goal for one (year, month)
func (s *Store) UpsertMonthlyPlan(plan *models.MonthlyPlan) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, p := range s.plans {
		if p.GoalID == plan.GoalID && p.Year == plan.Year && p.Month == plan.Month {
			p.PlannedCount = plan.PlannedCount
			p.RealizedCount = plan.RealizedCount
			p.PlannedTotal = plan.PlannedTotal
			p.RealizedTotal = plan.RealizedTotal
			p.UpdatedAt = now()
			s.plans[id] = p
			*plan = p
			return nil
		}
	}
	plan.ID = s.id()
	plan.CreatedAt = now()
	plan.UpdatedAt = plan.CreatedAt
	s.plans[plan.ID] = *plan
	return nil
}

// ListMonthlyPlans retrieves all plans of the household for one (year, month)
func (s *Store) ListMonthlyPlans(userID int64, year, month int) ([]models.MonthlyPlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.MonthlyPlan
	for _, p := range s.plans {
		g, ok := s.goals[p.GoalID]
		if ok && g.UserID == userID && p.Year == year && p.Month == month {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].GoalID < out[j].GoalID })
	return out, nil
}

// LoadSnapshot reads every collection of the household under one lock
func (s *Store) LoadSnapshot(userID int64) (*storage.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := &storage.Snapshot{
		Members:   s.listMembersLocked(userID),
		Incomes:   s.listIncomesLocked(userID),
		Transfers: s.listTransfersLocked(userID),
		Expenses:  s.listExpensesLocked(userID),
		Budgets:   s.listBudgetsLocked(userID),
		Goals:     s.listGoalsLocked(userID),
	}
	for _, b := range s.banks {
		if b.UserID == userID {
			snap.Banks = append(snap.Banks, b)
		}
	}
	sort.Slice(snap.Banks, func(i, j int) bool { return snap.Banks[i].ID < snap.Banks[j].ID })
	for _, a := range s.accounts {
		if a.UserID == userID {
			snap.Accounts = append(snap.Accounts, a)
		}
	}
	sort.Slice(snap.Accounts, func(i, j int) bool { return snap.Accounts[i].ID < snap.Accounts[j].ID })
	for _, p := range s.plans {
		if g, ok := s.goals[p.GoalID]; ok && g.UserID == userID {
			snap.Plans = append(snap.Plans, p)
		}
	}
	sort.Slice(snap.Plans, func(i, j int) bool { return snap.Plans[i].ID < snap.Plans[j].ID })
	return snap, nil
}

// ImportSnapshot replaces the household's data with the given backup
func (s *Store) ImportSnapshot(userID int64, snap *storage.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, m := range s.members {
		if m.UserID == userID {
			delete(s.members, id)
			for incID, in := range s.incomes {
				if in.MemberID == id {
					delete(s.incomes, incID)
				}
			}
		}
	}
	for id, b := range s.banks {
		if b.UserID == userID {
			delete(s.banks, id)
		}
	}
	for id, a := range s.accounts {
		if a.UserID == userID {
			delete(s.accounts, id)
		}
	}
	for id, t := range s.transfers {
		if t.UserID == userID {
			delete(s.transfers, id)
		}
	}
	for id, e := range s.expenses {
		if e.UserID == userID {
			delete(s.expenses, id)
		}
	}
	for id, b := range s.budgets {
		if b.UserID == userID {
			delete(s.budgets, id)
		}
	}
	for id, g := range s.goals {
		if g.UserID == userID {
			delete(s.goals, id)
			for pID, p := range s.plans {
				if p.GoalID == id {
					delete(s.plans, pID)
				}
			}
		}
	}

	memberIDs := make(map[int64]int64, len(snap.Members))
	for _, m := range snap.Members {
		old := m.ID
		m.ID = s.id()
		m.UserID = userID
		s.members[m.ID] = m
		memberIDs[old] = m.ID
	}
	bankIDs := make(map[int64]int64, len(snap.Banks))
	for _, b := range snap.Banks {
		old := b.ID
		b.ID = s.id()
		b.UserID = userID
		s.banks[b.ID] = b
		bankIDs[old] = b.ID
	}
	accountIDs := make(map[int64]int64, len(snap.Accounts))
	for _, a := range snap.Accounts {
		old := a.ID
		a.ID = s.id()
		a.UserID = userID
		a.BankID = remap(a.BankID, bankIDs)
		a.MemberID = remap(a.MemberID, memberIDs)
		s.accounts[a.ID] = a
		accountIDs[old] = a.ID
	}
	for _, in := range snap.Incomes {
		memberID, ok := memberIDs[in.MemberID]
		if !ok {
			continue
		}
		in.ID = s.id()
		in.MemberID = memberID
		in.AccountID = remap(in.AccountID, accountIDs)
		s.incomes[in.ID] = in
	}
	for _, t := range snap.Transfers {
		from, okFrom := accountIDs[t.FromAccountID]
		to, okTo := accountIDs[t.ToAccountID]
		if !okFrom || !okTo {
			continue
		}
		t.ID = s.id()
		t.UserID = userID
		t.FromAccountID = from
		t.ToAccountID = to
		s.transfers[t.ID] = t
	}
	for _, e := range snap.Expenses {
		e.ID = s.id()
		e.UserID = userID
		e.AccountID = remap(e.AccountID, accountIDs)
		e.MemberID = remap(e.MemberID, memberIDs)
		s.expenses[e.ID] = e
	}
	for _, b := range snap.Budgets {
		b.ID = s.id()
		b.UserID = userID
		b.MemberID = remap(b.MemberID, memberIDs)
		s.budgets[b.ID] = b
	}
	goalIDs := make(map[int64]int64, len(snap.Goals))
	for _, g := range snap.Goals {
		old := g.ID
		g.ID = s.id()
		g.UserID = userID
		g.AccountID = remap(g.AccountID, accountIDs)
		s.goals[g.ID] = g
		goalIDs[old] = g.ID
	}
	for _, p := range snap.Plans {
		goalID, ok := goalIDs[p.GoalID]
		if !ok {
			continue
		}
		p.ID = s.id()
		p.GoalID = goalID
		s.plans[p.ID] = p
	}
	return nil
}

func remap(old *int64, ids map[int64]int64) *int64 {
	if old == nil {
		return nil
	}
	id, ok := ids[*old]
	if !ok {
		return nil
	}
	return &id
}
