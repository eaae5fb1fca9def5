package category

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

type CategoryRepo interface {
	Store(ctx context.Context, category Category) error
	GetAll(ctx context.Context) ([]Category, error)
	GetByID(ctx context.Context, id string) (Category, error)
	Update(ctx context.Context, category Category) (bool, error)
	UpdateOrderIndex(ctx context.Context, id string, orderIndex int) (bool, error)
	MaxOrderIndex(ctx context.Context, parentID string, categoryType CategoryType) (int, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type CategoryRepoImpl struct {
	db *sql.DB
}

func NewCategoryRepo(db *sql.DB) *CategoryRepoImpl {
	return &CategoryRepoImpl{db: db}
}

func (r CategoryRepoImpl) Store(ctx context.Context, category Category) error {
	query := `INSERT INTO categories (id, name, type, parent_id, order_index) VALUES (?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		category.ID,
		category.Name,
		nullableString(string(category.Type)),
		nullableString(category.ParentID),
		category.OrderIndex,
	)
	if err != nil {
		err := fmt.Errorf("could not store category: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (r CategoryRepoImpl) GetAll(ctx context.Context) ([]Category, error) {
	query := `SELECT id, name, type, parent_id, order_index FROM categories ORDER BY order_index`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not query categories: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		category, err := scanCategory(rows.Scan)
		if err != nil {
			log.Error(err)
			return nil, err
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return categories, nil
}

func (r CategoryRepoImpl) GetByID(ctx context.Context, id string) (Category, error) {
	query := `SELECT id, name, type, parent_id, order_index FROM categories WHERE id = ?`

	row := r.db.QueryRowContext(ctx, query, id)
	category, err := scanCategory(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return Category{}, ErrNotFound
	}
	if err != nil {
		err := fmt.Errorf("could not get category %s: %w", id, err)
		log.Error(err)
		return Category{}, err
	}
	return category, nil
}

func (r CategoryRepoImpl) Update(ctx context.Context, category Category) (bool, error) {
	query := `UPDATE categories SET name = ?, type = ?, parent_id = ?, order_index = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		category.Name,
		nullableString(string(category.Type)),
		nullableString(category.ParentID),
		category.OrderIndex,
		category.ID,
	)
	if err != nil {
		err := fmt.Errorf("could not update category: %w", err)
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

func (r CategoryRepoImpl) UpdateOrderIndex(ctx context.Context, id string, orderIndex int) (bool, error) {
	query := `UPDATE categories SET order_index = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, orderIndex, id)
	if err != nil {
		err := fmt.Errorf("could not update category order: %w", err)
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

func (r CategoryRepoImpl) MaxOrderIndex(ctx context.Context, parentID string, categoryType CategoryType) (int, error) {
	var row *sql.Row
	if parentID != "" {
		row = r.db.QueryRowContext(ctx,
			`SELECT MAX(order_index) FROM categories WHERE parent_id = ?`, parentID)
	} else {
		row = r.db.QueryRowContext(ctx,
			`SELECT MAX(order_index) FROM categories WHERE parent_id IS NULL AND type = ?`, string(categoryType))
	}

	var maxIndex sql.NullInt64
	if err := row.Scan(&maxIndex); err != nil {
		err := fmt.Errorf("could not find max order index: %w", err)
		log.Error(err)
		return 0, err
	}
	if !maxIndex.Valid {
		return 0, nil
	}
	return int(maxIndex.Int64), nil
}

func (r CategoryRepoImpl) Delete(ctx context.Context, id string) (bool, error) {
	query := `DELETE FROM categories WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		err := fmt.Errorf("could not delete category: %w", err)
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

func scanCategory(scan func(...any) error) (Category, error) {
	var category Category
	var categoryType, parentID sql.NullString
	if err := scan(
		&category.ID,
		&category.Name,
		&categoryType,
		&parentID,
		&category.OrderIndex,
	); err != nil {
		return Category{}, err
	}
	if categoryType.Valid {
		category.Type = CategoryType(categoryType.String)
	}
	if parentID.Valid {
		category.ParentID = parentID.String
	}
	return category, nil
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
