package transaction

import (
	"context"
	"sort"
)

type StubTransactionRepo struct {
	data map[string]Transaction
}

func NewStubTransactionRepo() *StubTransactionRepo {
	return &StubTransactionRepo{data: map[string]Transaction{}}
}

func (s *StubTransactionRepo) Store(ctx context.Context, t Transaction) error {
	s.data[t.ID] = t
	return nil
}

func (s *StubTransactionRepo) List(ctx context.Context, filter Filter) ([]Transaction, error) {
	var transactions []Transaction
	for _, t := range s.data {
		if !matches(t, filter) {
			continue
		}
		transactions = append(transactions, t)
	}
	sort.Slice(transactions, func(i, j int) bool {
		if !transactions[i].TransactionDate.Equal(transactions[j].TransactionDate) {
			return transactions[i].TransactionDate.Before(transactions[j].TransactionDate)
		}
		return transactions[i].ID < transactions[j].ID
	})
	return transactions, nil
}

func (s *StubTransactionRepo) GetByID(ctx context.Context, id string) (Transaction, error) {
	t, ok := s.data[id]
	if !ok {
		return Transaction{}, ErrNotFound
	}
	return t, nil
}

func (s *StubTransactionRepo) Update(ctx context.Context, t Transaction) (bool, error) {
	if _, ok := s.data[t.ID]; !ok {
		return false, nil
	}
	s.data[t.ID] = t
	return true, nil
}

func (s *StubTransactionRepo) Delete(ctx context.Context, id string) (bool, error) {
	if _, ok := s.data[id]; !ok {
		return false, nil
	}
	delete(s.data, id)
	return true, nil
}

func (s *StubTransactionRepo) CountForAccount(ctx context.Context, accountID string) (int, error) {
	count := 0
	for _, t := range s.data {
		if t.AccountID == accountID || t.ToAccountID == accountID {
			count++
		}
	}
	return count, nil
}

func (s *StubTransactionRepo) Cleanup() {
	s.data = map[string]Transaction{}
}

func matches(t Transaction, filter Filter) bool {
	if filter.AccountID != "" && t.AccountID != filter.AccountID && t.ToAccountID != filter.AccountID {
		return false
	}
	if len(filter.CategoryIDs) > 0 && !contains(filter.CategoryIDs, t.CategoryID) {
		return false
	}
	if len(filter.ProjectIDs) > 0 && !contains(filter.ProjectIDs, t.ProjectID) {
		return false
	}
	if filter.ParentTransactionID != "" && t.ParentTransactionID != filter.ParentTransactionID {
		return false
	}
	if !filter.TransactionDate.IsZero() && !t.TransactionDate.Equal(filter.TransactionDate) {
		return false
	}
	if !filter.PLDateFrom.IsZero() && t.PLDate.Before(filter.PLDateFrom) {
		return false
	}
	if !filter.PLDateUntil.IsZero() && !t.PLDate.Before(filter.PLDateUntil) {
		return false
	}
	if filter.TemplatesOnly && !t.IsTemplate() {
		return false
	}
	return true
}

func contains(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
