package asset

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

type AssetRepo interface {
	Store(ctx context.Context, asset Asset) error
	GetAll(ctx context.Context) ([]Asset, error)
	GetByID(ctx context.Context, id string) (Asset, error)
	Update(ctx context.Context, asset Asset) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type AssetRepoImpl struct {
	db *sql.DB
}

func NewAssetRepo(db *sql.DB) *AssetRepoImpl {
	return &AssetRepoImpl{db: db}
}

const assetColumns = `id, name, type, value, currency, purchase_date, notes, created_at`
const dateFormat = "2006-01-02"

func (r AssetRepoImpl) Store(ctx context.Context, a Asset) error {
	query := `INSERT INTO assets (id, name, type, value, currency, purchase_date, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		a.ID, a.Name, a.Type, a.Value, a.Currency, nullableDate(a.PurchaseDate), nullableString(a.Notes))
	if err != nil {
		err := fmt.Errorf("could not store asset: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (r AssetRepoImpl) GetAll(ctx context.Context) ([]Asset, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+assetColumns+` FROM assets ORDER BY name`)
	if err != nil {
		err := fmt.Errorf("could not query assets: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var assets []Asset
	for rows.Next() {
		a, err := scanAsset(rows.Scan)
		if err != nil {
			log.Error(err)
			return nil, err
		}
		assets = append(assets, a)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return assets, nil
}

func (r AssetRepoImpl) GetByID(ctx context.Context, id string) (Asset, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+assetColumns+` FROM assets WHERE id = ?`, id)
	a, err := scanAsset(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return Asset{}, ErrNotFound
	}
	if err != nil {
		err := fmt.Errorf("could not get asset %s: %w", id, err)
		log.Error(err)
		return Asset{}, err
	}
	return a, nil
}

func (r AssetRepoImpl) Update(ctx context.Context, a Asset) (bool, error) {
	query := `UPDATE assets SET
		name = ?, type = ?, value = ?, currency = ?, purchase_date = ?, notes = ?,
		updated_at = datetime('now')
		WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		a.Name, a.Type, a.Value, a.Currency, nullableDate(a.PurchaseDate), nullableString(a.Notes), a.ID)
	if err != nil {
		err := fmt.Errorf("could not update asset: %w", err)
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

func (r AssetRepoImpl) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM assets WHERE id = ?`, id)
	if err != nil {
		err := fmt.Errorf("could not delete asset: %w", err)
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

func scanAsset(scan func(...any) error) (Asset, error) {
	var a Asset
	var purchaseDate, notes sql.NullString
	var createdAt string

	if err := scan(&a.ID, &a.Name, &a.Type, &a.Value, &a.Currency, &purchaseDate, &notes, &createdAt); err != nil {
		return Asset{}, err
	}
	if purchaseDate.Valid {
		if parsed, err := time.Parse(dateFormat, purchaseDate.String); err == nil {
			a.PurchaseDate = parsed
		}
	}
	a.Notes = notes.String
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

func nullableDate(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.Format(dateFormat)
}
