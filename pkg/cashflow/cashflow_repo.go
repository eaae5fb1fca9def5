package cashflow

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

type ScheduleRepo interface {
	Store(ctx context.Context, schedule Schedule) error
	GetAll(ctx context.Context) ([]Schedule, error)
	GetByID(ctx context.Context, id string) (Schedule, error)
	Update(ctx context.Context, schedule Schedule) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type ScheduleRepoImpl struct {
	db *sql.DB
}

func NewScheduleRepo(db *sql.DB) *ScheduleRepoImpl {
	return &ScheduleRepoImpl{db: db}
}

const scheduleColumns = `id, project_id, category_id, budgeted_amount, actual_amount,
	remaining_amount, scheduled_month, scheduled_amount, notes, created_at`

func monthToDB(month string) string {
	return month + "-01"
}

func monthFromDB(month string) string {
	if len(month) >= 7 {
		return month[:7]
	}
	return month
}

func (r ScheduleRepoImpl) Store(ctx context.Context, s Schedule) error {
	query := `INSERT INTO cash_flow_schedule (id, project_id, category_id, budgeted_amount,
		actual_amount, remaining_amount, scheduled_month, scheduled_amount, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.ProjectID, s.CategoryID, s.BudgetedAmount, s.ActualAmount,
		s.RemainingAmount, monthToDB(s.ScheduledMonth), s.ScheduledAmount, nullableString(s.Notes))
	if err != nil {
		err := fmt.Errorf("could not store schedule entry: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (r ScheduleRepoImpl) GetAll(ctx context.Context) ([]Schedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM cash_flow_schedule ORDER BY scheduled_month`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not query schedule entries: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var schedules []Schedule
	for rows.Next() {
		s, err := scanSchedule(rows.Scan)
		if err != nil {
			log.Error(err)
			return nil, err
		}
		schedules = append(schedules, s)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return schedules, nil
}

func (r ScheduleRepoImpl) GetByID(ctx context.Context, id string) (Schedule, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+scheduleColumns+` FROM cash_flow_schedule WHERE id = ?`, id)
	s, err := scanSchedule(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return Schedule{}, ErrNotFound
	}
	if err != nil {
		err := fmt.Errorf("could not get schedule entry %s: %w", id, err)
		log.Error(err)
		return Schedule{}, err
	}
	return s, nil
}

func (r ScheduleRepoImpl) Update(ctx context.Context, s Schedule) (bool, error) {
	query := `UPDATE cash_flow_schedule SET
		scheduled_month = ?, scheduled_amount = ?, notes = ?, updated_at = datetime('now')
		WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		monthToDB(s.ScheduledMonth), s.ScheduledAmount, nullableString(s.Notes), s.ID)
	if err != nil {
		err := fmt.Errorf("could not update schedule entry: %w", err)
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

func (r ScheduleRepoImpl) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM cash_flow_schedule WHERE id = ?`, id)
	if err != nil {
		err := fmt.Errorf("could not delete schedule entry: %w", err)
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

func scanSchedule(scan func(...any) error) (Schedule, error) {
	var s Schedule
	var month string
	var notes sql.NullString
	var createdAt string

	if err := scan(&s.ID, &s.ProjectID, &s.CategoryID, &s.BudgetedAmount, &s.ActualAmount,
		&s.RemainingAmount, &month, &s.ScheduledAmount, &notes, &createdAt); err != nil {
		return Schedule{}, err
	}
	s.ScheduledMonth = monthFromDB(month)
	s.Notes = notes.String
	if parsed, err := time.Parse("2006-01-02 15:04:05", createdAt); err == nil {
		s.CreatedAt = parsed
	}
	return s, nil
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
