package account

import (
	"context"

	"github.com/google/uuid"
	"github.com/kasabook/kasabook/pkg/transaction"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type AccountService interface {
	GetAll(ctx context.Context) ([]AccountWithBalance, error)
	Get(ctx context.Context, id string) (AccountWithBalance, error)
	Create(ctx context.Context, account Account) (Account, error)
	Update(ctx context.Context, account Account) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type AccountServiceImpl struct {
	repo            AccountRepo
	transactionRepo transaction.TransactionRepo
}

func NewAccountService(repo AccountRepo, transactionRepo transaction.TransactionRepo) *AccountServiceImpl {
	return &AccountServiceImpl{repo: repo, transactionRepo: transactionRepo}
}

// GetAll returns every account with its balance derived from the full ledger.
// One transaction list serves all accounts, so a transfer contributes to both
// of its legs from the same data.
func (s *AccountServiceImpl) GetAll(ctx context.Context) ([]AccountWithBalance, error) {
	accounts, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	transactions, err := s.transactionRepo.List(ctx, transaction.Filter{})
	if err != nil {
		return nil, err
	}

	result := make([]AccountWithBalance, 0, len(accounts))
	for _, a := range accounts {
		result = append(result, AccountWithBalance{
			Account:        a,
			CurrentBalance: CalculateBalance(a, transactions),
		})
	}
	return result, nil
}

func (s *AccountServiceImpl) Get(ctx context.Context, id string) (AccountWithBalance, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return AccountWithBalance{}, err
	}
	transactions, err := s.transactionRepo.List(ctx, transaction.Filter{AccountID: id})
	if err != nil {
		return AccountWithBalance{}, err
	}
	return AccountWithBalance{
		Account:        a,
		CurrentBalance: CalculateBalance(a, transactions),
	}, nil
}

func (s *AccountServiceImpl) Create(ctx context.Context, a Account) (Account, error) {
	if err := a.Validate(); err != nil {
		return Account{}, err
	}
	a.ID = uuid.NewString()
	if a.Currency == "" {
		a.Currency = "BGN"
	}
	if err := s.repo.Store(ctx, a); err != nil {
		return Account{}, err
	}
	return a, nil
}

func (s *AccountServiceImpl) Update(ctx context.Context, a Account) (bool, error) {
	if err := a.Validate(); err != nil {
		return false, err
	}
	updated, err := s.repo.Update(ctx, a)
	if err != nil {
		return false, err
	}
	if !updated {
		log.Warnf("account not updated, probably because it does not exist (%s)", a.ID)
		return false, nil
	}
	return true, nil
}

// Delete refuses to remove an account that still appears in the ledger, on
// either leg of any transaction.
func (s *AccountServiceImpl) Delete(ctx context.Context, id string) (bool, error) {
	count, err := s.transactionRepo.CountForAccount(ctx, id)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, ErrInUse
	}
	return s.repo.Delete(ctx, id)
}

// TotalBalance sums the derived balances, used by the forecaster as its
// starting point.
func TotalBalance(accounts []AccountWithBalance) decimal.Decimal {
	total := decimal.Zero
	for _, a := range accounts {
		total = total.Add(a.CurrentBalance)
	}
	return total
}
