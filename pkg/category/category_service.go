package category

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type CategoryService interface {
	GetAll(ctx context.Context) ([]Category, error)
	Create(ctx context.Context, category Category) (Category, error)
	Update(ctx context.Context, category Category) (bool, error)
	Move(ctx context.Context, id string, direction MoveDirection) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type MoveDirection string

const (
	MoveUp   MoveDirection = "up"
	MoveDown MoveDirection = "down"
)

type CategoryServiceImpl struct {
	repo CategoryRepo
}

func NewCategoryService(repo CategoryRepo) *CategoryServiceImpl {
	return &CategoryServiceImpl{repo: repo}
}

func (s *CategoryServiceImpl) GetAll(ctx context.Context) ([]Category, error) {
	return s.repo.GetAll(ctx)
}

func (s *CategoryServiceImpl) Create(ctx context.Context, category Category) (Category, error) {
	if err := s.validateParent(ctx, category); err != nil {
		return Category{}, err
	}

	maxIndex, err := s.repo.MaxOrderIndex(ctx, category.ParentID, category.Type)
	if err != nil {
		return Category{}, err
	}
	category.ID = uuid.NewString()
	category.OrderIndex = maxIndex + 1

	if err := s.repo.Store(ctx, category); err != nil {
		return Category{}, err
	}
	return category, nil
}

func (s *CategoryServiceImpl) Update(ctx context.Context, category Category) (bool, error) {
	if err := s.validateParent(ctx, category); err != nil {
		return false, err
	}

	updated, err := s.repo.Update(ctx, category)
	if err != nil {
		return false, err
	}
	if !updated {
		log.Warnf("category not updated, probably because it does not exist (%s)", category.ID)
		return false, nil
	}
	return true, nil
}

// Move swaps the category's order index with its adjacent sibling. Siblings
// share the same parent (or the same type for top-level categories).
func (s *CategoryServiceImpl) Move(ctx context.Context, id string, direction MoveDirection) (bool, error) {
	categories, err := s.repo.GetAll(ctx)
	if err != nil {
		return false, err
	}
	byID := ByID(categories)
	target, ok := byID[id]
	if !ok {
		return false, ErrNotFound
	}

	siblings := siblingsOf(target, categories, byID)
	idx := -1
	for i, c := range siblings {
		if c.ID == id {
			idx = i
			break
		}
	}

	var neighbor Category
	switch {
	case direction == MoveUp && idx > 0:
		neighbor = siblings[idx-1]
	case direction == MoveDown && idx >= 0 && idx < len(siblings)-1:
		neighbor = siblings[idx+1]
	default:
		// already at the edge of its sibling group
		return false, nil
	}

	if _, err := s.repo.UpdateOrderIndex(ctx, target.ID, neighbor.OrderIndex); err != nil {
		return false, err
	}
	if _, err := s.repo.UpdateOrderIndex(ctx, neighbor.ID, target.OrderIndex); err != nil {
		return false, err
	}
	return true, nil
}

func (s *CategoryServiceImpl) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if !deleted {
		log.Warnf("category not deleted, probably because it does not exist (%s)", id)
		return false, nil
	}
	return true, nil
}

// validateParent enforces the two-level tree: a parent reference must point
// at an existing top-level category.
func (s *CategoryServiceImpl) validateParent(ctx context.Context, category Category) error {
	if category.ParentID == "" {
		return nil
	}
	parent, err := s.repo.GetByID(ctx, category.ParentID)
	if err != nil {
		return fmt.Errorf("failed to load parent category: %w", err)
	}
	if !parent.IsParent() {
		return ErrTooDeep
	}
	return nil
}

func siblingsOf(target Category, categories []Category, byID map[string]Category) []Category {
	var siblings []Category
	for _, c := range categories {
		if c.ParentID != target.ParentID {
			continue
		}
		if target.IsParent() && ResolveType(c, byID) != ResolveType(target, byID) {
			continue
		}
		siblings = append(siblings, c)
	}
	return siblings
}
