package category

import (
	"context"
	"sort"
)

type StubCategoryRepo struct {
	data map[string]Category
}

func NewStubCategoryRepo() *StubCategoryRepo {
	return &StubCategoryRepo{data: map[string]Category{}}
}

func (s *StubCategoryRepo) Store(ctx context.Context, category Category) error {
	s.data[category.ID] = category
	return nil
}

func (s *StubCategoryRepo) GetAll(ctx context.Context) ([]Category, error) {
	categories := make([]Category, 0, len(s.data))
	for _, c := range s.data {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].OrderIndex < categories[j].OrderIndex
	})
	return categories, nil
}

func (s *StubCategoryRepo) GetByID(ctx context.Context, id string) (Category, error) {
	c, ok := s.data[id]
	if !ok {
		return Category{}, ErrNotFound
	}
	return c, nil
}

func (s *StubCategoryRepo) Update(ctx context.Context, category Category) (bool, error) {
	if _, ok := s.data[category.ID]; !ok {
		return false, nil
	}
	s.data[category.ID] = category
	return true, nil
}

func (s *StubCategoryRepo) UpdateOrderIndex(ctx context.Context, id string, orderIndex int) (bool, error) {
	c, ok := s.data[id]
	if !ok {
		return false, nil
	}
	c.OrderIndex = orderIndex
	s.data[id] = c
	return true, nil
}

func (s *StubCategoryRepo) MaxOrderIndex(ctx context.Context, parentID string, categoryType CategoryType) (int, error) {
	maxIndex := 0
	for _, c := range s.data {
		if c.ParentID != parentID {
			continue
		}
		if parentID == "" && c.Type != categoryType {
			continue
		}
		if c.OrderIndex > maxIndex {
			maxIndex = c.OrderIndex
		}
	}
	return maxIndex, nil
}

func (s *StubCategoryRepo) Delete(ctx context.Context, id string) (bool, error) {
	if _, ok := s.data[id]; !ok {
		return false, nil
	}
	delete(s.data, id)
	return true, nil
}

func (s *StubCategoryRepo) Cleanup() {
	s.data = map[string]Category{}
}
