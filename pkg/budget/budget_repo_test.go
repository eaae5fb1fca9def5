package budget

import (
	"context"
	"database/sql"
	"testing"

	"github.com/kasabook/kasabook/internal/test_utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupBudgetRepoTest(t *testing.T) (*BudgetRepoImpl, *sql.DB, context.Context) {
	db := test_utils.SetupTestDB(t)
	return NewBudgetRepo(db), db, context.Background()
}

func seedCategory(t *testing.T, db *sql.DB, id string) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO categories (id, name, type) VALUES (?, ?, 'expense')`, id, "category "+id)
	require.NoError(t, err)
}

func seedProject(t *testing.T, db *sql.DB, id string) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO projects (id, name) VALUES (?, ?)`, id, "project "+id)
	require.NoError(t, err)
}

func TestBudgetRepoImpl_UpsertRowReplacesCell(t *testing.T) {
	// Setup
	repository, db, ctx := setupBudgetRepoTest(t)
	seedCategory(t, db, "cat-1")
	seedProject(t, db, "proj-1")

	// Given a stored row for the (category, month, project) cell
	row := Row{
		ID: "b1", CategoryID: "cat-1", ProjectID: "proj-1", Month: "2026-01",
		K1WithVat: dec("120"), Vat: dec("20"), TotalWithVat: dec("120"),
	}
	require.NoError(t, repository.UpsertRow(ctx, row))

	// When the same cell is written again with new amounts
	row.ID = "b2"
	row.K1WithVat = dec("240")
	row.TotalWithVat = dec("240")
	require.NoError(t, repository.UpsertRow(ctx, row))

	// Then a single row remains, carrying the new amounts and the original id
	rows, err := repository.ListForMonths(ctx, []string{"2026-01"}, nil)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "b1", rows[0].ID)
	assert.True(t, dec("240").Equal(rows[0].K1WithVat))
}

func TestBudgetRepoImpl_UpsertRowAllProjectsScope(t *testing.T) {
	// Setup
	repository, db, ctx := setupBudgetRepoTest(t)
	seedCategory(t, db, "cat-1")

	// Given a row without a project, stored twice
	row := Row{ID: "b1", CategoryID: "cat-1", Month: "2026-01", K1WithoutVat: dec("50"), TotalWithoutVat: dec("50")}
	require.NoError(t, repository.UpsertRow(ctx, row))
	row.ID = "b2"
	row.K1WithoutVat = dec("75")
	require.NoError(t, repository.UpsertRow(ctx, row))

	// Then the NULL project scope still holds a single row
	rows, err := repository.ListForMonths(ctx, []string{"2026-01"}, nil)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "", rows[0].ProjectID)
	assert.True(t, dec("75").Equal(rows[0].K1WithoutVat))
}

func TestBudgetRepoImpl_ListForMonths(t *testing.T) {
	// Setup
	repository, db, ctx := setupBudgetRepoTest(t)
	seedCategory(t, db, "cat-1")
	seedCategory(t, db, "cat-2")
	seedProject(t, db, "proj-1")

	require.NoError(t, repository.UpsertRow(ctx, Row{ID: "b1", CategoryID: "cat-1", Month: "2026-01", K1WithVat: dec("10")}))
	require.NoError(t, repository.UpsertRow(ctx, Row{ID: "b2", CategoryID: "cat-2", ProjectID: "proj-1", Month: "2026-01", K1WithVat: dec("20")}))
	require.NoError(t, repository.UpsertRow(ctx, Row{ID: "b3", CategoryID: "cat-1", Month: "2026-02", K1WithVat: dec("30")}))

	// When listing one month without a project filter
	rows, err := repository.ListForMonths(ctx, []string{"2026-01"}, nil)
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	// When listing with a project filter
	rows, err = repository.ListForMonths(ctx, []string{"2026-01", "2026-02"}, []string{"proj-1"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "b2", rows[0].ID)
	assert.Equal(t, "2026-01", rows[0].Month)
}

func TestBudgetRepoImpl_ListForProjectCategory(t *testing.T) {
	// Setup
	repository, db, ctx := setupBudgetRepoTest(t)
	seedCategory(t, db, "cat-1")
	seedCategory(t, db, "cat-2")
	seedProject(t, db, "proj-1")

	require.NoError(t, repository.UpsertRow(ctx, Row{ID: "b1", CategoryID: "cat-1", ProjectID: "proj-1", Month: "2026-01", K1WithVat: dec("10")}))
	require.NoError(t, repository.UpsertRow(ctx, Row{ID: "b2", CategoryID: "cat-1", ProjectID: "proj-1", Month: "2026-02", K1WithVat: dec("20")}))
	require.NoError(t, repository.UpsertRow(ctx, Row{ID: "b3", CategoryID: "cat-2", ProjectID: "proj-1", Month: "2026-01", K1WithVat: dec("99")}))

	// When listing one category of the project across all months
	rows, err := repository.ListForProjectCategory(ctx, "proj-1", "cat-1")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, row := range rows {
		assert.Equal(t, "cat-1", row.CategoryID)
	}
}

func TestBudgetRepoImpl_ListCategoryIDs(t *testing.T) {
	// Setup
	repository, db, ctx := setupBudgetRepoTest(t)
	seedCategory(t, db, "cat-1")
	seedCategory(t, db, "cat-2")
	seedProject(t, db, "proj-1")

	require.NoError(t, repository.UpsertRow(ctx, Row{ID: "b1", CategoryID: "cat-1", Month: "2026-01"}))
	require.NoError(t, repository.UpsertRow(ctx, Row{ID: "b2", CategoryID: "cat-2", ProjectID: "proj-1", Month: "2026-01"}))

	// Then each scope only sees its own categories
	present, err := repository.ListCategoryIDs(ctx, "2026-01", "")
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"cat-1": true}, present)

	present, err = repository.ListCategoryIDs(ctx, "2026-01", "proj-1")
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"cat-2": true}, present)
}
