package budget

import (
	"context"
	"testing"

	"github.com/kasabook/kasabook/pkg/category"
	"github.com/kasabook/kasabook/pkg/transaction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	repoStub            = NewStubBudgetRepo()
	categoryRepoStub    = category.NewStubCategoryRepo()
	transactionRepoStub = transaction.NewStubTransactionRepo()
)

func setup(t *testing.T) (BudgetService, context.Context, func()) {
	service := NewBudgetService(repoStub, categoryRepoStub, transactionRepoStub)
	return service, context.Background(), func() {
		t.Log("Teardown after test")
		repoStub.Cleanup()
		categoryRepoStub.Cleanup()
		transactionRepoStub.Cleanup()
	}
}

func TestBudgetServiceImpl_GetReport(t *testing.T) {
	t.Run("assembles a single-month report", func(t *testing.T) {
		service, ctx, teardown := setup(t)
		defer teardown()

		// given
		require.NoError(t, categoryRepoStub.Store(ctx, category.Category{ID: "c", Name: "Rent", Type: category.TypeExpense}))
		require.NoError(t, repoStub.UpsertRow(ctx, Row{ID: "r1", CategoryID: "c", Month: "2024-03"}.SetK1WithVat(dec("120"))))
		require.NoError(t, transactionRepoStub.Store(ctx, transaction.Transaction{
			ID: "t1", CategoryID: "c", AccountID: "acc",
			TransactionDate: day("2024-03-10"), PLDate: day("2024-03-10"),
			Type: transaction.TypeExpense, AmountWithoutVat: dec("-40"),
		}))

		// when
		report, err := service.GetReport(ctx, "monthly", "2024-03", "")

		// then
		require.NoError(t, err)
		assert.False(t, report.ReadOnly)
		assert.Equal(t, []string{"2024-03"}, report.Result.Months)
		require.Len(t, report.Result.Expense, 1)
		assert.True(t, report.Result.Expense[0].Total.TotalWithVat.Equal(dec("120")))
		assert.True(t, report.Result.Expense[0].Total.ActualWithoutVat.Equal(dec("40")))
	})

	t.Run("an annual all-projects report is read-only", func(t *testing.T) {
		service, ctx, teardown := setup(t)
		defer teardown()

		report, err := service.GetReport(ctx, "annual", "2024", "")

		require.NoError(t, err)
		assert.True(t, report.ReadOnly)
	})

	t.Run("an annual report scoped to one project is editable", func(t *testing.T) {
		service, ctx, teardown := setup(t)
		defer teardown()

		report, err := service.GetReport(ctx, "annual", "2024", "proj-1")

		require.NoError(t, err)
		assert.False(t, report.ReadOnly)
	})

	t.Run("rejects a malformed period", func(t *testing.T) {
		service, ctx, teardown := setup(t)
		defer teardown()

		_, err := service.GetReport(ctx, "monthly", "March 2024", "")

		assert.Error(t, err)
	})
}

func TestBudgetServiceImpl_CommitRow(t *testing.T) {
	t.Run("a gross edit persists the fully recomputed row", func(t *testing.T) {
		service, ctx, teardown := setup(t)
		defer teardown()

		row := Row{CategoryID: "c", Month: "2024-03", ProjectID: "p", K2: dec("30")}

		committed, err := service.CommitRow(ctx, row, FieldK1WithVat, dec("120"))

		require.NoError(t, err)
		assert.NotEmpty(t, committed.ID)
		stored, err := repoStub.ListForMonths(ctx, []string{"2024-03"}, []string{"p"})
		require.NoError(t, err)
		require.Len(t, stored, 1)
		assert.True(t, stored[0].K1WithoutVat.Equal(dec("100")))
		assert.True(t, stored[0].TotalWithVat.Equal(dec("150")))
	})

	t.Run("a second commit for the same cell replaces the row", func(t *testing.T) {
		service, ctx, teardown := setup(t)
		defer teardown()

		row := Row{CategoryID: "c", Month: "2024-03"}
		_, err := service.CommitRow(ctx, row, FieldK1WithVat, dec("120"))
		require.NoError(t, err)
		_, err = service.CommitRow(ctx, row, FieldK1WithoutVat, dec("80"))
		require.NoError(t, err)

		stored, err := repoStub.ListForMonths(ctx, []string{"2024-03"}, nil)
		require.NoError(t, err)
		require.Len(t, stored, 1)
		assert.True(t, stored[0].K1WithVat.IsZero())
		assert.True(t, stored[0].K1WithoutVat.Equal(dec("80")))
	})

	t.Run("rejects an unknown field", func(t *testing.T) {
		service, ctx, teardown := setup(t)
		defer teardown()

		_, err := service.CommitRow(ctx, Row{CategoryID: "c", Month: "2024-03"}, "k3", dec("1"))

		assert.ErrorIs(t, err, ErrUnknownField)
	})
}

func TestBudgetServiceImpl_AddCategories(t *testing.T) {
	t.Run("inserts zero rows and rejects duplicates individually", func(t *testing.T) {
		service, ctx, teardown := setup(t)
		defer teardown()

		// given: category "a" already has a row in the scope
		require.NoError(t, repoStub.UpsertRow(ctx, Row{ID: "r1", CategoryID: "a", Month: "2024-03", ProjectID: "p"}))

		// when
		added, errs := service.AddCategories(ctx, "2024-03", "p", []string{"a", "b", "c"})

		// then: the conflict does not stop the rest of the batch
		assert.Equal(t, 2, added)
		require.Len(t, errs, 1)
		var conflict ConflictError
		require.ErrorAs(t, errs[0], &conflict)
		assert.Equal(t, "a", conflict.CategoryID)

		present, err := repoStub.ListCategoryIDs(ctx, "2024-03", "p")
		require.NoError(t, err)
		assert.Len(t, present, 3)
	})

	t.Run("rejects the same id twice within one batch", func(t *testing.T) {
		service, ctx, teardown := setup(t)
		defer teardown()

		added, errs := service.AddCategories(ctx, "2024-03", "", []string{"x", "x"})

		assert.Equal(t, 1, added)
		assert.Len(t, errs, 1)
	})
}
