package budget

import (
	"context"
)

type StubBudgetRepo struct {
	data map[string]Row
}

func NewStubBudgetRepo() *StubBudgetRepo {
	return &StubBudgetRepo{data: map[string]Row{}}
}

func cellKey(row Row) string {
	return row.CategoryID + "|" + row.Month + "|" + row.ProjectID
}

func (s *StubBudgetRepo) UpsertRow(ctx context.Context, row Row) error {
	key := cellKey(row)
	if existing, ok := s.data[key]; ok {
		row.ID = existing.ID
	}
	s.data[key] = row
	return nil
}

func (s *StubBudgetRepo) ListForMonths(ctx context.Context, months []string, projectIDs []string) ([]Row, error) {
	var rows []Row
	for _, row := range s.data {
		if !containsString(months, row.Month) {
			continue
		}
		if len(projectIDs) > 0 && !containsString(projectIDs, row.ProjectID) {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *StubBudgetRepo) ListForProjectCategory(ctx context.Context, projectID, categoryID string) ([]Row, error) {
	var rows []Row
	for _, row := range s.data {
		if row.ProjectID == projectID && row.CategoryID == categoryID {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func (s *StubBudgetRepo) ListCategoryIDs(ctx context.Context, month string, projectID string) (map[string]bool, error) {
	present := map[string]bool{}
	for _, row := range s.data {
		if row.Month == month && row.ProjectID == projectID {
			present[row.CategoryID] = true
		}
	}
	return present, nil
}

func (s *StubBudgetRepo) Cleanup() {
	s.data = map[string]Row{}
}

func containsString(values []string, value string) bool {
	for _, candidate := range values {
		if candidate == value {
			return true
		}
	}
	return false
}
