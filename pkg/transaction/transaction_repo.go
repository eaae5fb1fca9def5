package transaction

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// Filter narrows a List query. Zero values are ignored. PLDateFrom and
// PLDateUntil form a half-open interval [from, until).
type Filter struct {
	AccountID           string
	CategoryIDs         []string
	ProjectIDs          []string
	ParentTransactionID string
	TransactionDate     time.Time
	PLDateFrom          time.Time
	PLDateUntil         time.Time
	TemplatesOnly       bool
}

type TransactionRepo interface {
	Store(ctx context.Context, transaction Transaction) error
	List(ctx context.Context, filter Filter) ([]Transaction, error)
	GetByID(ctx context.Context, id string) (Transaction, error)
	Update(ctx context.Context, transaction Transaction) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	CountForAccount(ctx context.Context, accountID string) (int, error)
}

type TransactionRepoImpl struct {
	db *sql.DB
}

func NewTransactionRepo(db *sql.DB) *TransactionRepoImpl {
	return &TransactionRepoImpl{db: db}
}

const transactionColumns = `id, transaction_date, pl_date, account_id, type, category_id, debt_id,
	project_id, to_account_id, amount_with_vat, amount_without_vat, vat_amount, k2_amount, notes,
	is_recurring, recurrence_frequency, recurrence_interval, recurrence_end_date, parent_transaction_id`

const dateFormat = "2006-01-02"

func (r TransactionRepoImpl) Store(ctx context.Context, t Transaction) error {
	query := `INSERT INTO transactions (` + transactionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.TransactionDate.Format(dateFormat),
		t.PLDate.Format(dateFormat),
		t.AccountID,
		string(t.Type),
		nullableString(t.CategoryID),
		nullableString(t.DebtID),
		nullableString(t.ProjectID),
		nullableString(t.ToAccountID),
		t.AmountWithVat,
		t.AmountWithoutVat,
		t.VatAmount,
		t.K2Amount,
		nullableString(t.Notes),
		t.IsRecurring,
		nullableString(string(t.RecurrenceFrequency)),
		nullableInt(t.RecurrenceInterval),
		nullableDate(t.RecurrenceEndDate),
		nullableString(t.ParentTransactionID),
	)
	if err != nil {
		err := fmt.Errorf("could not store transaction: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (r TransactionRepoImpl) List(ctx context.Context, filter Filter) ([]Transaction, error) {
	var conditions []string
	var args []any

	if filter.AccountID != "" {
		conditions = append(conditions, "(account_id = ? OR to_account_id = ?)")
		args = append(args, filter.AccountID, filter.AccountID)
	}
	if len(filter.CategoryIDs) > 0 {
		conditions = append(conditions, "category_id IN ("+placeholders(len(filter.CategoryIDs))+")")
		for _, id := range filter.CategoryIDs {
			args = append(args, id)
		}
	}
	if len(filter.ProjectIDs) > 0 {
		conditions = append(conditions, "project_id IN ("+placeholders(len(filter.ProjectIDs))+")")
		for _, id := range filter.ProjectIDs {
			args = append(args, id)
		}
	}
	if filter.ParentTransactionID != "" {
		conditions = append(conditions, "parent_transaction_id = ?")
		args = append(args, filter.ParentTransactionID)
	}
	if !filter.TransactionDate.IsZero() {
		conditions = append(conditions, "transaction_date = ?")
		args = append(args, filter.TransactionDate.Format(dateFormat))
	}
	if !filter.PLDateFrom.IsZero() {
		conditions = append(conditions, "pl_date >= ?")
		args = append(args, filter.PLDateFrom.Format(dateFormat))
	}
	if !filter.PLDateUntil.IsZero() {
		conditions = append(conditions, "pl_date < ?")
		args = append(args, filter.PLDateUntil.Format(dateFormat))
	}
	if filter.TemplatesOnly {
		conditions = append(conditions, "is_recurring = 1 AND parent_transaction_id IS NULL")
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY transaction_date, id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query transactions: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var transactions []Transaction
	for rows.Next() {
		t, err := scanTransaction(rows.Scan)
		if err != nil {
			log.Error(err)
			return nil, err
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return transactions, nil
}

func (r TransactionRepoImpl) GetByID(ctx context.Context, id string) (Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = ?`

	row := r.db.QueryRowContext(ctx, query, id)
	t, err := scanTransaction(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return Transaction{}, ErrNotFound
	}
	if err != nil {
		err := fmt.Errorf("could not get transaction %s: %w", id, err)
		log.Error(err)
		return Transaction{}, err
	}
	return t, nil
}

func (r TransactionRepoImpl) Update(ctx context.Context, t Transaction) (bool, error) {
	query := `UPDATE transactions SET
		transaction_date = ?, pl_date = ?, account_id = ?, type = ?, category_id = ?, debt_id = ?,
		project_id = ?, to_account_id = ?, amount_with_vat = ?, amount_without_vat = ?, vat_amount = ?,
		k2_amount = ?, notes = ?, is_recurring = ?, recurrence_frequency = ?, recurrence_interval = ?,
		recurrence_end_date = ?, updated_at = datetime('now')
		WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		t.TransactionDate.Format(dateFormat),
		t.PLDate.Format(dateFormat),
		t.AccountID,
		string(t.Type),
		nullableString(t.CategoryID),
		nullableString(t.DebtID),
		nullableString(t.ProjectID),
		nullableString(t.ToAccountID),
		t.AmountWithVat,
		t.AmountWithoutVat,
		t.VatAmount,
		t.K2Amount,
		nullableString(t.Notes),
		t.IsRecurring,
		nullableString(string(t.RecurrenceFrequency)),
		nullableInt(t.RecurrenceInterval),
		nullableDate(t.RecurrenceEndDate),
		t.ID,
	)
	if err != nil {
		err := fmt.Errorf("could not update transaction: %w", err)
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

func (r TransactionRepoImpl) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		err := fmt.Errorf("could not delete transaction: %w", err)
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

func (r TransactionRepoImpl) CountForAccount(ctx context.Context, accountID string) (int, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM transactions WHERE account_id = ? OR to_account_id = ?`,
		accountID, accountID)
	var count int
	if err := row.Scan(&count); err != nil {
		err := fmt.Errorf("could not count transactions for account %s: %w", accountID, err)
		log.Error(err)
		return 0, err
	}
	return count, nil
}

func scanTransaction(scan func(...any) error) (Transaction, error) {
	var t Transaction
	var transactionDate, plDate string
	var categoryID, debtID, projectID, toAccountID, notes sql.NullString
	var frequency, endDate, parentID sql.NullString
	var interval sql.NullInt64

	if err := scan(
		&t.ID,
		&transactionDate,
		&plDate,
		&t.AccountID,
		&t.Type,
		&categoryID,
		&debtID,
		&projectID,
		&toAccountID,
		&t.AmountWithVat,
		&t.AmountWithoutVat,
		&t.VatAmount,
		&t.K2Amount,
		&notes,
		&t.IsRecurring,
		&frequency,
		&interval,
		&endDate,
		&parentID,
	); err != nil {
		return Transaction{}, err
	}

	var err error
	t.TransactionDate, err = time.Parse(dateFormat, transactionDate)
	if err != nil {
		return Transaction{}, fmt.Errorf("could not parse transaction date: %w", err)
	}
	t.PLDate, err = time.Parse(dateFormat, plDate)
	if err != nil {
		return Transaction{}, fmt.Errorf("could not parse pl date: %w", err)
	}
	t.CategoryID = categoryID.String
	t.DebtID = debtID.String
	t.ProjectID = projectID.String
	t.ToAccountID = toAccountID.String
	t.Notes = notes.String
	t.ParentTransactionID = parentID.String
	t.RecurrenceFrequency = Frequency(frequency.String)
	t.RecurrenceInterval = int(interval.Int64)
	if endDate.Valid {
		t.RecurrenceEndDate, err = time.Parse(dateFormat, endDate.String)
		if err != nil {
			return Transaction{}, fmt.Errorf("could not parse recurrence end date: %w", err)
		}
	}
	return t, nil
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

func nullableInt(i int) any {
	if i == 0 {
		return nil
	}
	return i
}

func nullableDate(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.Format(dateFormat)
}
