package forecast

import (
	"context"

	"github.com/kasabook/kasabook/internal/utils"
	"github.com/kasabook/kasabook/pkg/account"
	"github.com/kasabook/kasabook/pkg/transaction"
)

type ForecastService interface {
	Forecast(ctx context.Context, horizonMonths int) (Projection, error)
}

// ForecastServiceImpl composes the projection inputs: the summed derived
// balance of all accounts and the recurring templates from the ledger.
type ForecastServiceImpl struct {
	accountService  account.AccountService
	transactionRepo transaction.TransactionRepo
	clock           utils.Clock
}

func NewForecastService(
	accountService account.AccountService,
	transactionRepo transaction.TransactionRepo,
	clock utils.Clock,
) *ForecastServiceImpl {
	return &ForecastServiceImpl{
		accountService:  accountService,
		transactionRepo: transactionRepo,
		clock:           clock,
	}
}

func (s *ForecastServiceImpl) Forecast(ctx context.Context, horizonMonths int) (Projection, error) {
	accounts, err := s.accountService.GetAll(ctx)
	if err != nil {
		return Projection{}, err
	}
	templates, err := s.transactionRepo.List(ctx, transaction.Filter{TemplatesOnly: true})
	if err != nil {
		return Projection{}, err
	}

	return Project(utils.Today(s.clock), account.TotalBalance(accounts), templates, horizonMonths)
}
