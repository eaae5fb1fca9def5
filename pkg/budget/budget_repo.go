package budget

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
)

type BudgetRepo interface {
	// UpsertRow writes the full row for its (category, month, project) cell,
	// inserting or replacing atomically.
	UpsertRow(ctx context.Context, row Row) error
	ListForMonths(ctx context.Context, months []string, projectIDs []string) ([]Row, error)
	// ListForProjectCategory returns every row of one category within one
	// project, across all months.
	ListForProjectCategory(ctx context.Context, projectID, categoryID string) ([]Row, error)
	ListCategoryIDs(ctx context.Context, month string, projectID string) (map[string]bool, error)
}

type BudgetRepoImpl struct {
	db *sql.DB
}

func NewBudgetRepo(db *sql.DB) *BudgetRepoImpl {
	return &BudgetRepoImpl{db: db}
}

// Months are stored as the first day of the month so that date comparisons
// and the "YYYY-MM" view form stay trivially convertible.
func monthToDB(month string) string {
	return month + "-01"
}

func monthFromDB(month string) string {
	if len(month) >= 7 {
		return month[:7]
	}
	return month
}

func (r BudgetRepoImpl) UpsertRow(ctx context.Context, row Row) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		err := fmt.Errorf("could not begin budget upsert: %w", err)
		log.Error(err)
		return err
	}
	defer tx.Rollback()

	// The project scope may be empty (all-projects budget), which is stored
	// as NULL; the update predicate has to match NULL explicitly because the
	// UNIQUE constraint treats NULLs as distinct.
	updateQuery := `UPDATE budgets SET
		k1_with_vat = ?, k1_without_vat = ?, vat = ?, k2 = ?,
		total_without_vat = ?, total_with_vat = ?, updated_at = datetime('now')
		WHERE category_id = ? AND month = ?`
	args := []any{
		row.K1WithVat, row.K1WithoutVat, row.Vat, row.K2,
		row.TotalWithoutVat, row.TotalWithVat,
		row.CategoryID, monthToDB(row.Month),
	}
	if row.ProjectID == "" {
		updateQuery += ` AND project_id IS NULL`
	} else {
		updateQuery += ` AND project_id = ?`
		args = append(args, row.ProjectID)
	}

	result, err := tx.ExecContext(ctx, updateQuery, args...)
	if err != nil {
		err := fmt.Errorf("could not update budget row: %w", err)
		log.Error(err)
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return err
	}

	if affected == 0 {
		insertQuery := `INSERT INTO budgets (
			id, category_id, project_id, month,
			k1_with_vat, k1_without_vat, vat, k2, total_without_vat, total_with_vat)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
		_, err = tx.ExecContext(ctx, insertQuery,
			row.ID, row.CategoryID, nullableString(row.ProjectID), monthToDB(row.Month),
			row.K1WithVat, row.K1WithoutVat, row.Vat, row.K2,
			row.TotalWithoutVat, row.TotalWithVat,
		)
		if err != nil {
			err := fmt.Errorf("could not insert budget row: %w", err)
			log.Error(err)
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		err := fmt.Errorf("could not commit budget upsert: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (r BudgetRepoImpl) ListForMonths(ctx context.Context, months []string, projectIDs []string) ([]Row, error) {
	if len(months) == 0 {
		return nil, nil
	}

	monthArgs := make([]any, 0, len(months))
	for _, m := range months {
		monthArgs = append(monthArgs, monthToDB(m))
	}

	query := `SELECT id, category_id, project_id, month,
		k1_with_vat, k1_without_vat, vat, k2, total_without_vat, total_with_vat
		FROM budgets WHERE month IN (` + placeholders(len(months)) + `)`
	args := monthArgs
	if len(projectIDs) > 0 {
		query += ` AND project_id IN (` + placeholders(len(projectIDs)) + `)`
		for _, id := range projectIDs {
			args = append(args, id)
		}
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query budget rows: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var result []Row
	for rows.Next() {
		var row Row
		var projectID sql.NullString
		var month string
		if err := rows.Scan(
			&row.ID, &row.CategoryID, &projectID, &month,
			&row.K1WithVat, &row.K1WithoutVat, &row.Vat, &row.K2,
			&row.TotalWithoutVat, &row.TotalWithVat,
		); err != nil {
			err := fmt.Errorf("could not scan budget row: %w", err)
			log.Error(err)
			return nil, err
		}
		row.ProjectID = projectID.String
		row.Month = monthFromDB(month)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return result, nil
}

func (r BudgetRepoImpl) ListForProjectCategory(ctx context.Context, projectID, categoryID string) ([]Row, error) {
	query := `SELECT id, category_id, project_id, month,
		k1_with_vat, k1_without_vat, vat, k2, total_without_vat, total_with_vat
		FROM budgets WHERE project_id = ? AND category_id = ?`

	rows, err := r.db.QueryContext(ctx, query, projectID, categoryID)
	if err != nil {
		err := fmt.Errorf("could not query budget rows: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var result []Row
	for rows.Next() {
		var row Row
		var project sql.NullString
		var month string
		if err := rows.Scan(
			&row.ID, &row.CategoryID, &project, &month,
			&row.K1WithVat, &row.K1WithoutVat, &row.Vat, &row.K2,
			&row.TotalWithoutVat, &row.TotalWithVat,
		); err != nil {
			err := fmt.Errorf("could not scan budget row: %w", err)
			log.Error(err)
			return nil, err
		}
		row.ProjectID = project.String
		row.Month = monthFromDB(month)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return result, nil
}

// ListCategoryIDs returns the set of categories that already have a row in
// the given (month, project) scope.
func (r BudgetRepoImpl) ListCategoryIDs(ctx context.Context, month string, projectID string) (map[string]bool, error) {
	query := `SELECT category_id FROM budgets WHERE month = ?`
	args := []any{monthToDB(month)}
	if projectID == "" {
		query += ` AND project_id IS NULL`
	} else {
		query += ` AND project_id = ?`
		args = append(args, projectID)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query budget categories: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	present := map[string]bool{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			err := fmt.Errorf("could not scan category id: %w", err)
			log.Error(err)
			return nil, err
		}
		present[id] = true
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return present, nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
