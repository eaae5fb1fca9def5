package cashflow

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/kasabook/kasabook/pkg/budget"
	"github.com/kasabook/kasabook/pkg/money"
	"github.com/kasabook/kasabook/pkg/transaction"
	log "github.com/sirupsen/logrus"
)

type ScheduleService interface {
	GetAll(ctx context.Context) ([]Schedule, error)
	CreateBatch(ctx context.Context, inputs []ScheduleInput) ([]Schedule, []error)
	Update(ctx context.Context, schedule Schedule) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type ScheduleServiceImpl struct {
	repo            ScheduleRepo
	budgetRepo      budget.BudgetRepo
	transactionRepo transaction.TransactionRepo
}

func NewScheduleService(
	repo ScheduleRepo,
	budgetRepo budget.BudgetRepo,
	transactionRepo transaction.TransactionRepo,
) *ScheduleServiceImpl {
	return &ScheduleServiceImpl{
		repo:            repo,
		budgetRepo:      budgetRepo,
		transactionRepo: transactionRepo,
	}
}

func (s *ScheduleServiceImpl) GetAll(ctx context.Context) ([]Schedule, error) {
	return s.repo.GetAll(ctx)
}

// CreateBatch stores one entry per input, each with a freshly captured
// budget-vs-actual snapshot for its (project, category) pair. A failing input
// is reported and skipped; the rest of the batch proceeds.
func (s *ScheduleServiceImpl) CreateBatch(ctx context.Context, inputs []ScheduleInput) ([]Schedule, []error) {
	var created []Schedule
	var errs []error

	for _, input := range inputs {
		schedule, err := s.create(ctx, input)
		if err != nil {
			log.Errorf("could not create schedule entry for category %s: %v", input.CategoryID, err)
			errs = append(errs, err)
			continue
		}
		created = append(created, schedule)
	}
	return created, errs
}

func (s *ScheduleServiceImpl) create(ctx context.Context, input ScheduleInput) (Schedule, error) {
	if input.ProjectID == "" || input.CategoryID == "" || input.ScheduledMonth == "" {
		return Schedule{}, fmt.Errorf("schedule entry requires projectId, categoryId, and scheduledMonth")
	}

	rows, err := s.budgetRepo.ListForProjectCategory(ctx, input.ProjectID, input.CategoryID)
	if err != nil {
		return Schedule{}, err
	}
	transactions, err := s.transactionRepo.List(ctx, transaction.Filter{
		ProjectIDs:  []string{input.ProjectID},
		CategoryIDs: []string{input.CategoryID},
	})
	if err != nil {
		return Schedule{}, err
	}

	schedule := Schedule{
		ID:              uuid.NewString(),
		ProjectID:       input.ProjectID,
		CategoryID:      input.CategoryID,
		ScheduledMonth:  input.ScheduledMonth,
		ScheduledAmount: input.ScheduledAmount,
		Notes:           input.Notes,
	}
	for _, row := range rows {
		schedule.BudgetedAmount = schedule.BudgetedAmount.Add(money.K1(row.K1WithVat, row.K1WithoutVat))
	}
	for _, t := range transactions {
		schedule.ActualAmount = schedule.ActualAmount.Add(money.K1(t.AmountWithVat, t.AmountWithoutVat).Abs())
	}
	schedule.RemainingAmount = schedule.BudgetedAmount.Sub(schedule.ActualAmount)

	if err := s.repo.Store(ctx, schedule); err != nil {
		return Schedule{}, err
	}
	return schedule, nil
}

func (s *ScheduleServiceImpl) Update(ctx context.Context, schedule Schedule) (bool, error) {
	updated, err := s.repo.Update(ctx, schedule)
	if err != nil {
		return false, err
	}
	if !updated {
		log.Warnf("schedule entry not updated, probably because it does not exist (%s)", schedule.ID)
		return false, nil
	}
	return true, nil
}

func (s *ScheduleServiceImpl) Delete(ctx context.Context, id string) (bool, error) {
	return s.repo.Delete(ctx, id)
}
