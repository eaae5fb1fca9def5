package account

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

type AccountRepo interface {
	Store(ctx context.Context, account Account) error
	GetAll(ctx context.Context) ([]Account, error)
	GetByID(ctx context.Context, id string) (Account, error)
	Update(ctx context.Context, account Account) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type AccountRepoImpl struct {
	db *sql.DB
}

func NewAccountRepo(db *sql.DB) *AccountRepoImpl {
	return &AccountRepoImpl{db: db}
}

const accountColumns = `id, name, account_type, account_location, initial_balance, currency, created_at`

func (r AccountRepoImpl) Store(ctx context.Context, a Account) error {
	query := `INSERT INTO accounts (id, name, account_type, account_location, initial_balance, currency)
		VALUES (?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		a.ID, a.Name, string(a.Type), nullableString(string(a.Location)), a.InitialBalance, a.Currency)
	if err != nil {
		err := fmt.Errorf("could not store account: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (r AccountRepoImpl) GetAll(ctx context.Context) ([]Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not query accounts: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var accounts []Account
	for rows.Next() {
		a, err := scanAccount(rows.Scan)
		if err != nil {
			log.Error(err)
			return nil, err
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return accounts, nil
}

func (r AccountRepoImpl) GetByID(ctx context.Context, id string) (Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = ?`

	row := r.db.QueryRowContext(ctx, query, id)
	a, err := scanAccount(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return Account{}, ErrNotFound
	}
	if err != nil {
		err := fmt.Errorf("could not get account %s: %w", id, err)
		log.Error(err)
		return Account{}, err
	}
	return a, nil
}

func (r AccountRepoImpl) Update(ctx context.Context, a Account) (bool, error) {
	query := `UPDATE accounts SET
		name = ?, account_type = ?, account_location = ?, initial_balance = ?, currency = ?,
		updated_at = datetime('now')
		WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		a.Name, string(a.Type), nullableString(string(a.Location)), a.InitialBalance, a.Currency, a.ID)
	if err != nil {
		err := fmt.Errorf("could not update account: %w", err)
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

func (r AccountRepoImpl) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = ?`, id)
	if err != nil {
		err := fmt.Errorf("could not delete account: %w", err)
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

func scanAccount(scan func(...any) error) (Account, error) {
	var a Account
	var location sql.NullString
	var createdAt string

	if err := scan(&a.ID, &a.Name, &a.Type, &location, &a.InitialBalance, &a.Currency, &createdAt); err != nil {
		return Account{}, err
	}
	a.Location = AccountLocation(location.String)
	if parsed, err := time.Parse("2006-01-02 15:04:05", createdAt); err == nil {
		a.CreatedAt = parsed
	}
	return a, nil
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
