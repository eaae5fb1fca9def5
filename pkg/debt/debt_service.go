package debt

import (
	"context"

	"github.com/google/uuid"
	"github.com/kasabook/kasabook/internal/event_bus"
	"github.com/kasabook/kasabook/pkg/transaction"
	log "github.com/sirupsen/logrus"
)

type DebtService interface {
	GetAll(ctx context.Context) ([]Debt, error)
	Get(ctx context.Context, id string) (Debt, error)
	Create(ctx context.Context, debt Debt) (Debt, error)
	Update(ctx context.Context, debt Debt) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type DebtServiceImpl struct {
	repo DebtRepo
}

func NewDebtService(repo DebtRepo) *DebtServiceImpl {
	return &DebtServiceImpl{repo: repo}
}

func (s *DebtServiceImpl) GetAll(ctx context.Context) ([]Debt, error) {
	return s.repo.GetAll(ctx)
}

func (s *DebtServiceImpl) Get(ctx context.Context, id string) (Debt, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *DebtServiceImpl) Create(ctx context.Context, d Debt) (Debt, error) {
	d.ID = uuid.NewString()
	if d.Currency == "" {
		d.Currency = "BGN"
	}
	if d.CurrentAmount.IsZero() {
		d.CurrentAmount = d.InitialAmount
	}
	if err := s.repo.Store(ctx, d); err != nil {
		return Debt{}, err
	}
	return d, nil
}

func (s *DebtServiceImpl) Update(ctx context.Context, d Debt) (bool, error) {
	updated, err := s.repo.Update(ctx, d)
	if err != nil {
		return false, err
	}
	if !updated {
		log.Warnf("debt not updated, probably because it does not exist (%s)", d.ID)
		return false, nil
	}
	return true, nil
}

func (s *DebtServiceImpl) Delete(ctx context.Context, id string) (bool, error) {
	return s.repo.Delete(ctx, id)
}

// SubscribeToTransactions keeps the cached current amount in line with the
// ledger: an expense payment linked to a debt reduces it, and deleting that
// payment puts the amount back.
func SubscribeToTransactions(bus *event_bus.EventBus, repo DebtRepo) {
	event_bus.SubscribeTyped(bus, event_bus.TransactionCreatedType,
		func(e event_bus.EventT[event_bus.TransactionCreated]) error {
			if e.Data.DebtID == "" || e.Data.Type != string(transaction.TypeExpense) {
				return nil
			}
			adjusted, err := repo.AdjustCurrentAmount(e.Context(), e.Data.DebtID, e.Data.Amount.Neg())
			if err != nil {
				return err
			}
			if !adjusted {
				log.Warnf("debt %s referenced by transaction %s does not exist", e.Data.DebtID, e.Data.TransactionID)
			}
			return nil
		})

	event_bus.SubscribeTyped(bus, event_bus.TransactionDeletedType,
		func(e event_bus.EventT[event_bus.TransactionDeleted]) error {
			if e.Data.DebtID == "" || e.Data.Type != string(transaction.TypeExpense) {
				return nil
			}
			_, err := repo.AdjustCurrentAmount(e.Context(), e.Data.DebtID, e.Data.Amount)
			return err
		})
}
