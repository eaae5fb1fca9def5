package account

import (
	"context"
	"sort"
)

type StubAccountRepo struct {
	data map[string]Account
}

func NewStubAccountRepo() *StubAccountRepo {
	return &StubAccountRepo{data: map[string]Account{}}
}

func (s *StubAccountRepo) Store(ctx context.Context, a Account) error {
	s.data[a.ID] = a
	return nil
}

func (s *StubAccountRepo) GetAll(ctx context.Context) ([]Account, error) {
	accounts := make([]Account, 0, len(s.data))
	for _, a := range s.data {
		accounts = append(accounts, a)
	}
	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i].Name < accounts[j].Name
	})
	return accounts, nil
}

func (s *StubAccountRepo) GetByID(ctx context.Context, id string) (Account, error) {
	a, ok := s.data[id]
	if !ok {
		return Account{}, ErrNotFound
	}
	return a, nil
}

func (s *StubAccountRepo) Update(ctx context.Context, a Account) (bool, error) {
	if _, ok := s.data[a.ID]; !ok {
		return false, nil
	}
	s.data[a.ID] = a
	return true, nil
}

func (s *StubAccountRepo) Delete(ctx context.Context, id string) (bool, error) {
	if _, ok := s.data[id]; !ok {
		return false, nil
	}
	delete(s.data, id)
	return true, nil
}

func (s *StubAccountRepo) Cleanup() {
	s.data = map[string]Account{}
}
