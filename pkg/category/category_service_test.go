package category

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var repoStub = NewStubCategoryRepo()

func setup(t *testing.T) (CategoryService, context.Context, func()) {
	service := NewCategoryService(repoStub)
	return service, context.Background(), func() {
		t.Log("Teardown after test")
		repoStub.Cleanup()
	}
}

func TestCategoryServiceImpl_Create(t *testing.T) {
	t.Run("assigns id and next order index within sibling group", func(t *testing.T) {
		service, ctx, teardown := setup(t)
		defer teardown()

		// given
		first, err := service.Create(ctx, Category{Name: "Revenue", Type: TypeIncome})
		require.NoError(t, err)

		// when
		second, err := service.Create(ctx, Category{Name: "Operations", Type: TypeIncome})

		// then
		require.NoError(t, err)
		assert.NotEmpty(t, second.ID)
		assert.Equal(t, first.OrderIndex+1, second.OrderIndex)
	})

	t.Run("allows a child under a top-level parent", func(t *testing.T) {
		service, ctx, teardown := setup(t)
		defer teardown()

		parent, err := service.Create(ctx, Category{Name: "Expenses", Type: TypeExpense})
		require.NoError(t, err)

		child, err := service.Create(ctx, Category{Name: "Office", ParentID: parent.ID})

		require.NoError(t, err)
		assert.Equal(t, parent.ID, child.ParentID)
	})

	t.Run("rejects a child under another child", func(t *testing.T) {
		service, ctx, teardown := setup(t)
		defer teardown()

		parent, err := service.Create(ctx, Category{Name: "Expenses", Type: TypeExpense})
		require.NoError(t, err)
		child, err := service.Create(ctx, Category{Name: "Office", ParentID: parent.ID})
		require.NoError(t, err)

		_, err = service.Create(ctx, Category{Name: "Paper", ParentID: child.ID})

		assert.ErrorIs(t, err, ErrTooDeep)
	})

	t.Run("rejects a missing parent", func(t *testing.T) {
		service, ctx, teardown := setup(t)
		defer teardown()

		_, err := service.Create(ctx, Category{Name: "Orphan", ParentID: "no-such-id"})

		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestCategoryServiceImpl_Move(t *testing.T) {
	t.Run("swaps order with the previous sibling", func(t *testing.T) {
		service, ctx, teardown := setup(t)
		defer teardown()

		// given
		first, err := service.Create(ctx, Category{Name: "A", Type: TypeExpense})
		require.NoError(t, err)
		second, err := service.Create(ctx, Category{Name: "B", Type: TypeExpense})
		require.NoError(t, err)

		// when
		moved, err := service.Move(ctx, second.ID, MoveUp)

		// then
		require.NoError(t, err)
		assert.True(t, moved)
		all, err := service.GetAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, "B", all[0].Name)
		assert.Equal(t, "A", all[1].Name)
		_ = first
	})

	t.Run("does not move past the edge of the group", func(t *testing.T) {
		service, ctx, teardown := setup(t)
		defer teardown()

		first, err := service.Create(ctx, Category{Name: "A", Type: TypeExpense})
		require.NoError(t, err)

		moved, err := service.Move(ctx, first.ID, MoveUp)

		require.NoError(t, err)
		assert.False(t, moved)
	})

	t.Run("does not mix siblings across types", func(t *testing.T) {
		service, ctx, teardown := setup(t)
		defer teardown()

		_, err := service.Create(ctx, Category{Name: "Revenue", Type: TypeIncome})
		require.NoError(t, err)
		expense, err := service.Create(ctx, Category{Name: "Costs", Type: TypeExpense})
		require.NoError(t, err)

		// only member of the expense group, nothing to swap with
		moved, err := service.Move(ctx, expense.ID, MoveUp)

		require.NoError(t, err)
		assert.False(t, moved)
	})
}

func TestResolveType(t *testing.T) {
	parent := Category{ID: "p1", Name: "Expenses", Type: TypeExpense}
	child := Category{ID: "c1", Name: "Office", ParentID: "p1"}
	byID := ByID([]Category{parent, child})

	assert.Equal(t, TypeExpense, ResolveType(child, byID))
	assert.Equal(t, TypeExpense, ResolveType(parent, byID))
	assert.Equal(t, CategoryType(""), ResolveType(Category{ID: "x"}, byID))
}
