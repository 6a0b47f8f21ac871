package service

import (
	"context"
	"fmt"

	"github.com/mkral/budget-planner/internal/models"
	"github.com/mkral/budget-planner/internal/utils"
)

// Defaults are filled in at this boundary so the planner never has to
// deal with unset optional fields beyond its documented fallbacks.

// CreateMember creates a household member
func (s *Service) CreateMember(ctx context.Context, member *models.Member) error {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return err
	}
	if member.Name == "" {
		return fmt.Errorf("%w: member name is required", ErrValidation)
	}
	member.UserID = userID
	if err := s.store.CreateMember(member); err != nil {
		return err
	}
	s.cache.invalidate(userID, mutMembers)
	s.log.Infof("Member created for user %d: %s", userID, member.Name)
	return nil
}

// ListMembers retrieves the household's members
func (s *Service) ListMembers(ctx context.Context) ([]models.Member, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.store.ListMembers(userID)
}

// UpdateMember updates a household member
func (s *Service) UpdateMember(ctx context.Context, member *models.Member) error {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return err
	}
	if member.Name == "" {
		return fmt.Errorf("%w: member name is required", ErrValidation)
	}
	if err := s.store.UpdateMember(userID, member); err != nil {
		return err
	}
	s.cache.invalidate(userID, mutMembers)
	return nil
}

// DeleteMember deletes a member; its incomes are removed with it
func (s *Service) DeleteMember(ctx context.Context, id int64) error {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return err
	}
	if err := s.store.DeleteMember(userID, id); err != nil {
		return err
	}
	s.cache.invalidate(userID, mutMembers)
	s.log.Infof("Member %d deleted for user %d", id, userID)
	return nil
}

func validateIncome(income *models.Income) error {
	if income.Amount.IsNegative() {
		return fmt.Errorf("%w: income amount must not be negative", ErrValidation)
	}
	if income.Frequency == "" {
		income.Frequency = models.FrequencyMonthly
	}
	if !income.Frequency.Valid() {
		return fmt.Errorf("%w: unknown frequency %q", ErrValidation, income.Frequency)
	}
	if income.DayOfMonth < 0 || income.DayOfMonth > 31 {
		return fmt.Errorf("%w: day of month must be between 1 and 31", ErrValidation)
	}
	return nil
}

// CreateIncome creates an income for a member
func (s *Service) CreateIncome(ctx context.Context, income *models.Income) error {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return err
	}
	if err := validateIncome(income); err != nil {
		return err
	}
	if err := s.store.CreateIncome(userID, income); err != nil {
		return err
	}
	s.cache.invalidate(userID, mutIncomes)
	return nil
}

// ListIncomes retrieves all incomes of the household
func (s *Service) ListIncomes(ctx context.Context) ([]models.Income, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.store.ListIncomes(userID)
}

// ListMemberIncomes retrieves the incomes of one member
func (s *Service) ListMemberIncomes(ctx context.Context, memberID int64) ([]models.Income, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.store.ListMemberIncomes(userID, memberID)
}

// UpdateIncome updates an income
func (s *Service) UpdateIncome(ctx context.Context, income *models.Income) error {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return err
	}
	if err := validateIncome(income); err != nil {
		return err
	}
	if err := s.store.UpdateIncome(userID, income); err != nil {
		return err
	}
	s.cache.invalidate(userID, mutIncomes)
	return nil
}

// DeleteIncome deletes an income
func (s *Service) DeleteIncome(ctx context.Context, id int64) error {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return err
	}
	if err := s.store.DeleteIncome(userID, id); err != nil {
		return err
	}
	s.cache.invalidate(userID, mutIncomes)
	return nil
}

// CreateBank creates a bank
func (s *Service) CreateBank(ctx context.Context, bank *models.Bank) error {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return err
	}
	if bank.Name == "" {
		return fmt.Errorf("%w: bank name is required", ErrValidation)
	}
	bank.UserID = userID
	if err := s.store.CreateBank(bank); err != nil {
		return err
	}
	s.cache.invalidate(userID, mutBanks)
	return nil
}

// ListBanks retrieves the household's banks
func (s *Service) ListBanks(ctx context.Context, activeOnly bool) ([]models.Bank, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.store.ListBanks(userID, activeOnly)
}

// UpdateBank updates a bank
func (s *Service) UpdateBank(ctx context.Context, bank *models.Bank) error {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return err
	}
	if bank.Name == "" {
		return fmt.Errorf("%w: bank name is required", ErrValidation)
	}
	if err := s.store.UpdateBank(userID, bank); err != nil {
		return err
	}
	s.cache.invalidate(userID, mutBanks)
	return nil
}

// DeleteBank deletes a bank
func (s *Service) DeleteBank(ctx context.Context, id int64) error {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return err
	}
	if err := s.store.DeleteBank(userID, id); err != nil {
		return err
	}
	s.cache.invalidate(userID, mutBanks)
	return nil
}

func validateAccount(account *models.Account) error {
	if account.Name == "" {
		return fmt.Errorf("%w: account name is required", ErrValidation)
	}
	if account.Type == "" {
		account.Type = models.AccountChecking
	}
	if !account.Type.Valid() {
		return fmt.Errorf("%w: unknown account type %q", ErrValidation, account.Type)
	}
	if !account.IsPremium && account.PremiumMinFlow != nil {
		return fmt.Errorf("%w: premium_min_flow is only valid for premium accounts", ErrValidation)
	}
	if account.Type != models.AccountCreditCard && account.CreditLimit != nil {
		return fmt.Errorf("%w: credit_limit is only valid for credit card accounts", ErrValidation)
	}
	return nil
}

// CreateAccount creates an account. The account number, if given, is
// stored encrypted.
func (s *Service) CreateAccount(ctx context.Context, account *models.Account) error {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return err
	}
	if err := validateAccount(account); err != nil {
		return err
	}
	account.UserID = userID
	if account.AccountNumber != "" {
		enc, err := utils.Encrypt(account.AccountNumber, s.encKey)
		if err != nil {
			return fmt.Errorf("failed to encrypt account number: %w", err)
		}
		account.AccountNumber = enc
	}
	if err := s.store.CreateAccount(account); err != nil {
		return err
	}
	s.cache.invalidate(userID, mutAccounts)
	s.log.Infof("Account created for user %d: %s (%s)", userID, account.Name, account.Type)
	s.maskAccount(account)
	return nil
}

// ListAccounts retrieves the household's accounts with masked numbers
func (s *Service) ListAccounts(ctx context.Context, activeOnly bool) ([]models.Account, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	accounts, err := s.store.ListAccounts(userID, activeOnly)
	if err != nil {
		return nil, err
	}
	for i := range accounts {
		s.maskAccount(&accounts[i])
	}
	return accounts, nil
}

// UpdateAccount updates an account
func (s *Service) UpdateAccount(ctx context.Context, account *models.Account) error {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return err
	}
	if err := validateAccount(account); err != nil {
		return err
	}
	if account.AccountNumber != "" {
		enc, err := utils.Encrypt(account.AccountNumber, s.encKey)
		if err != nil {
			return fmt.Errorf("failed to encrypt account number: %w", err)
		}
		account.AccountNumber = enc
	}
	if err := s.store.UpdateAccount(userID, account); err != nil {
		return err
	}
	s.cache.invalidate(userID, mutAccounts)
	s.maskAccount(account)
	return nil
}

// DeleteAccount deletes an account
func (s *Service) DeleteAccount(ctx context.Context, id int64) error {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return err
	}
	if err := s.store.DeleteAccount(userID, id); err != nil {
		return err
	}
	s.cache.invalidate(userID, mutAccounts)
	return nil
}

func (s *Service) maskAccount(account *models.Account) {
	if account.AccountNumber == "" {
		return
	}
	plain, err := utils.Decrypt(account.AccountNumber, s.encKey)
	if err != nil {
		// Tolerate records written before encryption was configured.
		plain = account.AccountNumber
	}
	account.AccountNumber = utils.MaskAccountNumber(plain)
}

func validateTransfer(transfer *models.Transfer) error {
	if transfer.FromAccountID == transfer.ToAccountID {
		return fmt.Errorf("%w: source and destination accounts must differ", ErrValidation)
	}
	if !transfer.Amount.IsPositive() {
		return fmt.Errorf("%w: transfer amount must be positive", ErrValidation)
	}
	if transfer.DayOfMonth < 1 || transfer.DayOfMonth > 31 {
		return fmt.Errorf("%w: day of month must be between 1 and 31", ErrValidation)
	}
	if transfer.Category == "" {
		transfer.Category = models.TransferTechnical
	}
	return nil
}

// CreateTransfer creates a scheduled transfer
func (s *Service) CreateTransfer(ctx context.Context, transfer *models.Transfer) error {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return err
	}
	if err := validateTransfer(transfer); err != nil {
		return err
	}
	transfer.UserID = userID
	if err := s.store.CreateTransfer(transfer); err != nil {
		return err
	}
	s.cache.invalidate(userID, mutTransfers)
	return nil
}

// ListTransfers retrieves the household's scheduled transfers
func (s *Service) ListTransfers(ctx context.Context) ([]models.Transfer, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.store.ListTransfers(userID)
}

// UpdateTransfer updates a scheduled transfer
func (s *Service) UpdateTransfer(ctx context.Context, transfer *models.Transfer) error {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return err
	}
	if err := validateTransfer(transfer); err != nil {
		return err
	}
	if err := s.store.UpdateTransfer(userID, transfer); err != nil {
		return err
	}
	s.cache.invalidate(userID, mutTransfers)
	return nil
}

// DeleteTransfer deletes a scheduled transfer
func (s *Service) DeleteTransfer(ctx context.Context, id int64) error {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return err
	}
	if err := s.store.DeleteTransfer(userID, id); err != nil {
		return err
	}
	s.cache.invalidate(userID, mutTransfers)
	return nil
}

func validateExpense(expense *models.Expense) error {
	if !expense.Amount.IsPositive() {
		return fmt.Errorf("%w: expense amount must be positive", ErrValidation)
	}
	if expense.Frequency == "" {
		expense.Frequency = models.FrequencyMonthly
	}
	switch expense.Frequency {
	case models.FrequencyMonthly, models.FrequencyQuarterly, models.FrequencyYearly:
	default:
		return fmt.Errorf("%w: expense frequency must be monthly, quarterly or yearly", ErrValidation)
	}
	if expense.DayOfMonth < 1 || expense.DayOfMonth > 31 {
		return fmt.Errorf("%w: day of month must be between 1 and 31", ErrValidation)
	}
	if expense.DueMonth < 0 || expense.DueMonth > 12 {
		return fmt.Errorf("%w: due month must be between 1 and 12", ErrValidation)
	}
	return nil
}

// CreateExpense creates a fixed expense
func (s *Service) CreateExpense(ctx context.Context, expense *models.Expense) error {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return err
	}
	if err := validateExpense(expense); err != nil {
		return err
	}
	expense.UserID = userID
	if err := s.store.CreateExpense(expense); err != nil {
		return err
	}
	s.cache.invalidate(userID, mutExpenses)
	return nil
}

// ListExpenses retrieves the household's fixed expenses
func (s *Service) ListExpenses(ctx context.Context) ([]models.Expense, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.store.ListExpenses(userID)
}

// UpdateExpense updates a fixed expense
func (s *Service) UpdateExpense(ctx context.Context, expense *models.Expense) error {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return err
	}
	if err := validateExpense(expense); err != nil {
		return err
	}
	if err := s.store.UpdateExpense(userID, expense); err != nil {
		return err
	}
	s.cache.invalidate(userID, mutExpenses)
	return nil
}

// DeleteExpense deletes a fixed expense
func (s *Service) DeleteExpense(ctx context.Context, id int64) error {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return err
	}
	if err := s.store.DeleteExpense(userID, id); err != nil {
		return err
	}
	s.cache.invalidate(userID, mutExpenses)
	return nil
}

// CreateBudget creates a budget category
func (s *Service) CreateBudget(ctx context.Context, budget *models.Budget) error {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return err
	}
	if budget.MonthlyLimit.IsNegative() {
		return fmt.Errorf("%w: monthly limit must not be negative", ErrValidation)
	}
	budget.UserID = userID
	if err := s.store.CreateBudget(budget); err != nil {
		return err
	}
	s.cache.invalidate(userID, mutBudgets)
	return nil
}

// ListBudgets retrieves the household's budget categories
func (s *Service) ListBudgets(ctx context.Context) ([]models.Budget, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.store.ListBudgets(userID)
}

// UpdateBudget updates a budget category
func (s *Service) UpdateBudget(ctx context.Context, budget *models.Budget) error {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return err
	}
	if budget.MonthlyLimit.IsNegative() {
		return fmt.Errorf("%w: monthly limit must not be negative", ErrValidation)
	}
	if err := s.store.UpdateBudget(userID, budget); err != nil {
		return err
	}
	s.cache.invalidate(userID, mutBudgets)
	return nil
}

// DeleteBudget deletes a budget category
func (s *Service) DeleteBudget(ctx context.Context, id int64) error {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return err
	}
	if err := s.store.DeleteBudget(userID, id); err != nil {
		return err
	}
	s.cache.invalidate(userID, mutBudgets)
	return nil
}
