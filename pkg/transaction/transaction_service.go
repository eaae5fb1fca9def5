package transaction

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/kasabook/kasabook/internal/event_bus"
	"github.com/kasabook/kasabook/pkg/money"
	log "github.com/sirupsen/logrus"
)

type TransactionService interface {
	List(ctx context.Context, filter Filter) ([]Transaction, error)
	Get(ctx context.Context, id string) (Transaction, error)
	Create(ctx context.Context, transaction Transaction) (Transaction, error)
	Update(ctx context.Context, transaction Transaction) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type TransactionServiceImpl struct {
	repo TransactionRepo
	bus  *event_bus.EventBus
}

func NewTransactionService(repo TransactionRepo, bus *event_bus.EventBus) *TransactionServiceImpl {
	return &TransactionServiceImpl{repo: repo, bus: bus}
}

func (s *TransactionServiceImpl) List(ctx context.Context, filter Filter) ([]Transaction, error) {
	return s.repo.List(ctx, filter)
}

func (s *TransactionServiceImpl) Get(ctx context.Context, id string) (Transaction, error) {
	return s.repo.GetByID(ctx, id)
}

// Create validates the transaction, normalizes its monetary fields (VAT
// derivation and sign convention), stores it, and announces it on the bus so
// that a linked debt can be reduced.
func (s *TransactionServiceImpl) Create(ctx context.Context, t Transaction) (Transaction, error) {
	if err := t.Validate(); err != nil {
		return Transaction{}, err
	}

	t.ID = uuid.NewString()
	if t.PLDate.IsZero() {
		t.PLDate = t.TransactionDate
	}
	t = normalizeAmounts(t)

	if err := s.repo.Store(ctx, t); err != nil {
		return Transaction{}, err
	}

	if err := s.bus.Publish(event_bus.NewEvent(ctx, event_bus.TransactionCreatedType, event_bus.TransactionCreated{
		TransactionID: t.ID,
		Type:          string(t.Type),
		DebtID:        t.DebtID,
		Amount:        t.CombinedMagnitude(),
	})); err != nil {
		log.Warnf("transaction %s stored but event handling failed: %v", t.ID, err)
	}

	return t, nil
}

func (s *TransactionServiceImpl) Update(ctx context.Context, t Transaction) (bool, error) {
	if err := t.Validate(); err != nil {
		return false, err
	}
	if t.PLDate.IsZero() {
		t.PLDate = t.TransactionDate
	}
	t = normalizeAmounts(t)

	updated, err := s.repo.Update(ctx, t)
	if err != nil {
		return false, err
	}
	if !updated {
		log.Warnf("transaction not updated, probably because it does not exist (%s)", t.ID)
		return false, nil
	}
	return true, nil
}

func (s *TransactionServiceImpl) Delete(ctx context.Context, id string) (bool, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return false, err
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if !deleted {
		return false, nil
	}

	if err := s.bus.Publish(event_bus.NewEvent(ctx, event_bus.TransactionDeletedType, event_bus.TransactionDeleted{
		TransactionID: t.ID,
		Type:          string(t.Type),
		DebtID:        t.DebtID,
		Amount:        t.CombinedMagnitude(),
	})); err != nil {
		log.Warnf("transaction %s deleted but event handling failed: %v", id, err)
	}
	return true, nil
}

// normalizeAmounts applies the canonical monetary rules before persisting:
// a gross K1 entry derives net and VAT at the fixed rate, a net-only entry
// carries no VAT, and all four fields get the sign of the transaction type.
func normalizeAmounts(t Transaction) Transaction {
	if !t.AmountWithVat.IsZero() {
		split := money.SplitFromGross(t.AmountWithVat)
		t.AmountWithoutVat = split.WithoutVat
		t.VatAmount = split.Vat
	} else if !t.AmountWithoutVat.IsZero() {
		split := money.SplitFromNet(t.AmountWithoutVat)
		t.AmountWithVat = split.WithVat
		t.VatAmount = split.Vat
	}

	sign := money.SignForType(string(t.Type))
	t.AmountWithVat = money.ApplySign(t.AmountWithVat, sign)
	t.AmountWithoutVat = money.ApplySign(t.AmountWithoutVat, sign)
	t.VatAmount = money.ApplySign(t.VatAmount, sign)
	t.K2Amount = money.ApplySign(t.K2Amount, sign)
	return t
}

// ResolveProjectScope expands a single optional project id into the id list
// used by the List filter, so handlers can pass through either one project or
// an explicit set.
func ResolveProjectScope(projectID string, projectIDs []string) ([]string, error) {
	if projectID != "" && len(projectIDs) > 0 {
		return nil, fmt.Errorf("projectId and projectIds are mutually exclusive")
	}
	if projectID != "" {
		return []string{projectID}, nil
	}
	return projectIDs, nil
}
