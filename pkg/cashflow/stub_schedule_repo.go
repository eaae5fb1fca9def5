package cashflow

import (
	"context"
	"sort"
)

type StubScheduleRepo struct {
	data map[string]Schedule
}

func NewStubScheduleRepo() *StubScheduleRepo {
	return &StubScheduleRepo{data: map[string]Schedule{}}
}

func (s *StubScheduleRepo) Store(ctx context.Context, schedule Schedule) error {
	s.data[schedule.ID] = schedule
	return nil
}

func (s *StubScheduleRepo) GetAll(ctx context.Context) ([]Schedule, error) {
	schedules := make([]Schedule, 0, len(s.data))
	for _, schedule := range s.data {
		schedules = append(schedules, schedule)
	}
	sort.Slice(schedules, func(i, j int) bool {
		if schedules[i].ScheduledMonth != schedules[j].ScheduledMonth {
			return schedules[i].ScheduledMonth < schedules[j].ScheduledMonth
		}
		return schedules[i].ID < schedules[j].ID
	})
	return schedules, nil
}

func (s *StubScheduleRepo) GetByID(ctx context.Context, id string) (Schedule, error) {
	schedule, ok := s.data[id]
	if !ok {
		return Schedule{}, ErrNotFound
	}
	return schedule, nil
}

func (s *StubScheduleRepo) Update(ctx context.Context, schedule Schedule) (bool, error) {
	existing, ok := s.data[schedule.ID]
	if !ok {
		return false, nil
	}
	existing.ScheduledMonth = schedule.ScheduledMonth
	existing.ScheduledAmount = schedule.ScheduledAmount
	existing.Notes = schedule.Notes
	s.data[schedule.ID] = existing
	return true, nil
}

func (s *StubScheduleRepo) Delete(ctx context.Context, id string) (bool, error) {
	if _, ok := s.data[id]; !ok {
		return false, nil
	}
	delete(s.data, id)
	return true, nil
}

func (s *StubScheduleRepo) Cleanup() {
	s.data = map[string]Schedule{}
}
