package project

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/kasabook/kasabook/pkg/money"
	log "github.com/sirupsen/logrus"
)

type ProjectRepo interface {
	Store(ctx context.Context, project Project) error
	GetAll(ctx context.Context) ([]Project, error)
	GetByID(ctx context.Context, id string) (Project, error)
	Update(ctx context.Context, project Project) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type ProjectRepoImpl struct {
	db *sql.DB
}

func NewProjectRepo(db *sql.DB) *ProjectRepoImpl {
	return &ProjectRepoImpl{db: db}
}

const projectColumns = `id, name, description, budget, status, start_date, end_date, created_at`
const dateFormat = "2006-01-02"

func (r ProjectRepoImpl) Store(ctx context.Context, p Project) error {
	query := `INSERT INTO projects (id, name, description, budget, status, start_date, end_date)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.Name, nullableString(p.Description), p.Budget, string(p.Status),
		nullableDate(p.StartDate), nullableDate(p.EndDate))
	if err != nil {
		err := fmt.Errorf("could not store project: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (r ProjectRepoImpl) GetAll(ctx context.Context) ([]Project, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY name`)
	if err != nil {
		err := fmt.Errorf("could not query projects: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var projects []Project
	for rows.Next() {
		p, err := scanProject(rows.Scan)
		if err != nil {
			log.Error(err)
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return projects, nil
}

func (r ProjectRepoImpl) GetByID(ctx context.Context, id string) (Project, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)
	p, err := scanProject(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return Project{}, ErrNotFound
	}
	if err != nil {
		err := fmt.Errorf("could not get project %s: %w", id, err)
		log.Error(err)
		return Project{}, err
	}
	return p, nil
}

func (r ProjectRepoImpl) Update(ctx context.Context, p Project) (bool, error) {
	query := `UPDATE projects SET
		name = ?, description = ?, budget = ?, status = ?, start_date = ?, end_date = ?,
		updated_at = datetime('now')
		WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		p.Name, nullableString(p.Description), p.Budget, string(p.Status),
		nullableDate(p.StartDate), nullableDate(p.EndDate), p.ID)
	if err != nil {
		err := fmt.Errorf("could not update project: %w", err)
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

func (r ProjectRepoImpl) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		err := fmt.Errorf("could not delete project: %w", err)
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

func scanProject(scan func(...any) error) (Project, error) {
	var p Project
	var description, budget, startDate, endDate sql.NullString
	var createdAt string

	if err := scan(&p.ID, &p.Name, &description, &budget, &p.Status, &startDate, &endDate, &createdAt); err != nil {
		return Project{}, err
	}
	p.Description = description.String
	p.Budget = money.ParseAmount(budget.String)
	if startDate.Valid {
		if parsed, err := time.Parse(dateFormat, startDate.String); err == nil {
			p.StartDate = parsed
		}
	}
	if endDate.Valid {
		if parsed, err := time.Parse(dateFormat, endDate.String); err == nil {
			p.EndDate = parsed
		}
	}
	if parsed, err := time.Parse("2006-01-02 15:04:05", createdAt); err == nil {
		p.CreatedAt = parsed
	}
	return p, nil
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
