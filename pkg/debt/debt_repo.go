package debt

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type DebtRepo interface {
	Store(ctx context.Context, debt Debt) error
	GetAll(ctx context.Context) ([]Debt, error)
	GetByID(ctx context.Context, id string) (Debt, error)
	Update(ctx context.Context, debt Debt) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	// AdjustCurrentAmount moves the cached figure by delta in one statement,
	// so concurrent payments do not lose updates.
	AdjustCurrentAmount(ctx context.Context, id string, delta decimal.Decimal) (bool, error)
}

type DebtRepoImpl struct {
	db *sql.DB
}

func NewDebtRepo(db *sql.DB) *DebtRepoImpl {
	return &DebtRepoImpl{db: db}
}

const debtColumns = `id, name, initial_amount, current_amount, interest_rate, currency, notes, created_at`

func (r DebtRepoImpl) Store(ctx context.Context, d Debt) error {
	query := `INSERT INTO debts (id, name, initial_amount, current_amount, interest_rate, currency, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		d.ID, d.Name, d.InitialAmount, d.CurrentAmount, d.InterestRate, d.Currency, nullableString(d.Notes))
	if err != nil {
		err := fmt.Errorf("could not store debt: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (r DebtRepoImpl) GetAll(ctx context.Context) ([]Debt, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+debtColumns+` FROM debts ORDER BY name`)
	if err != nil {
		err := fmt.Errorf("could not query debts: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var debts []Debt
	for rows.Next() {
		d, err := scanDebt(rows.Scan)
		if err != nil {
			log.Error(err)
			return nil, err
		}
		debts = append(debts, d)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return debts, nil
}

func (r DebtRepoImpl) GetByID(ctx context.Context, id string) (Debt, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+debtColumns+` FROM debts WHERE id = ?`, id)
	d, err := scanDebt(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return Debt{}, ErrNotFound
	}
	if err != nil {
		err := fmt.Errorf("could not get debt %s: %w", id, err)
		log.Error(err)
		return Debt{}, err
	}
	return d, nil
}

func (r DebtRepoImpl) Update(ctx context.Context, d Debt) (bool, error) {
	query := `UPDATE debts SET
		name = ?, initial_amount = ?, current_amount = ?, interest_rate = ?, currency = ?, notes = ?,
		updated_at = datetime('now')
		WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		d.Name, d.InitialAmount, d.CurrentAmount, d.InterestRate, d.Currency, nullableString(d.Notes), d.ID)
	if err != nil {
		err := fmt.Errorf("could not update debt: %w", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return false, err
	}
	return rowsAffected == 1, nil
}

func (r DebtRepoImpl) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM debts WHERE id = ?`, id)
	if err != nil {
		err := fmt.Errorf("could not delete debt: %w", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return false, err
	}
	return rowsAffected == 1, nil
}

func (r DebtRepoImpl) AdjustCurrentAmount(ctx context.Context, id string, delta decimal.Decimal) (bool, error) {
	// Amounts are stored as exact decimal text, so the arithmetic happens
	// here rather than in SQL. The transaction keeps the read and write a
	// single unit.
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		err := fmt.Errorf("could not begin debt adjustment: %w", err)
		log.Error(err)
		return false, err
	}
	defer tx.Rollback()

	var current decimal.Decimal
	err = tx.QueryRowContext(ctx, `SELECT current_amount FROM debts WHERE id = ?`, id).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		err := fmt.Errorf("could not read debt %s: %w", id, err)
		log.Error(err)
		return false, err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE debts SET current_amount = ?, updated_at = datetime('now') WHERE id = ?`,
		current.Add(delta), id)
	if err != nil {
		err := fmt.Errorf("could not adjust debt %s: %w", id, err)
		log.Error(err)
		return false, err
	}

	if err := tx.Commit(); err != nil {
		err := fmt.Errorf("could not commit debt adjustment: %w", err)
		log.Error(err)
		return false, err
	}
	return true, nil
}

func scanDebt(scan func(...any) error) (Debt, error) {
	var d Debt
	var interestRate sql.NullString
	var notes sql.NullString
	var createdAt string

	if err := scan(&d.ID, &d.Name, &d.InitialAmount, &d.CurrentAmount, &interestRate, &d.Currency, &notes, &createdAt); err != nil {
		return Debt{}, err
	}
	if interestRate.Valid {
		if rate, err := decimal.NewFromString(interestRate.String); err == nil {
			d.InterestRate = rate
		}
	}
	d.Notes = notes.String
	if parsed, err := time.Parse("2006-01-02 15:04:05", createdAt); err == nil {
		d.CreatedAt = parsed
	}
	return d, nil
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
