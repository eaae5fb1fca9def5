package debt

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"
)

type StubDebtRepo struct {
	data map[string]Debt
}

func NewStubDebtRepo() *StubDebtRepo {
	return &StubDebtRepo{data: map[string]Debt{}}
}

func (s *StubDebtRepo) Store(ctx context.Context, d Debt) error {
	s.data[d.ID] = d
	return nil
}

func (s *StubDebtRepo) GetAll(ctx context.Context) ([]Debt, error) {
	debts := make([]Debt, 0, len(s.data))
	for _, d := range s.data {
		debts = append(debts, d)
	}
	sort.Slice(debts, func(i, j int) bool {
		return debts[i].Name < debts[j].Name
	})
	return debts, nil
}

func (s *StubDebtRepo) GetByID(ctx context.Context, id string) (Debt, error) {
	d, ok := s.data[id]
	if !ok {
		return Debt{}, ErrNotFound
	}
	return d, nil
}

func (s *StubDebtRepo) Update(ctx context.Context, d Debt) (bool, error) {
	if _, ok := s.data[d.ID]; !ok {
		return false, nil
	}
	s.data[d.ID] = d
	return true, nil
}

func (s *StubDebtRepo) Delete(ctx context.Context, id string) (bool, error) {
	if _, ok := s.data[id]; !ok {
		return false, nil
	}
	delete(s.data, id)
	return true, nil
}

func (s *StubDebtRepo) AdjustCurrentAmount(ctx context.Context, id string, delta decimal.Decimal) (bool, error) {
	d, ok := s.data[id]
	if !ok {
		return false, nil
	}
	d.CurrentAmount = d.CurrentAmount.Add(delta)
	s.data[id] = d
	return true, nil
}

func (s *StubDebtRepo) Cleanup() {
	s.data = map[string]Debt{}
}
