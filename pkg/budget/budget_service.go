package budget

import (
	"context"

	"github.com/google/uuid"
	"github.com/kasabook/kasabook/pkg/category"
	"github.com/kasabook/kasabook/pkg/period"
	"github.com/kasabook/kasabook/pkg/transaction"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// EditableField names the one budgeted figure changed by a row commit. The
// other columns are rederived so the stored row stays internally consistent.
type EditableField string

const (
	FieldK1WithVat    EditableField = "k1WithVat"
	FieldK1WithoutVat EditableField = "k1WithoutVat"
	FieldK2           EditableField = "k2"
)

// Report is the aggregated budget view for one period and project scope.
// ReadOnly marks scopes where row commits are not offered: a multi-month
// period at the all-projects scope.
type Report struct {
	PeriodType string
	Period     string
	Label      string
	ReadOnly   bool
	Result     AggregateResult
}

type BudgetService interface {
	GetReport(ctx context.Context, periodType, periodToken, projectID string) (Report, error)
	CommitRow(ctx context.Context, row Row, field EditableField, value decimal.Decimal) (Row, error)
	AddCategories(ctx context.Context, month, projectID string, categoryIDs []string) (int, []error)
}

type BudgetServiceImpl struct {
	repo            BudgetRepo
	categoryRepo    category.CategoryRepo
	transactionRepo transaction.TransactionRepo
}

func NewBudgetService(
	repo BudgetRepo,
	categoryRepo category.CategoryRepo,
	transactionRepo transaction.TransactionRepo,
) *BudgetServiceImpl {
	return &BudgetServiceImpl{
		repo:            repo,
		categoryRepo:    categoryRepo,
		transactionRepo: transactionRepo,
	}
}

// GetReport resolves the period, fetches categories, budget rows, and ledger
// transactions concurrently, and aggregates them into the report view.
func (s *BudgetServiceImpl) GetReport(ctx context.Context, periodType, periodToken, projectID string) (Report, error) {
	r, err := period.Resolve(period.Type(periodType), periodToken)
	if err != nil {
		return Report{}, err
	}

	var projectIDs []string
	if projectID != "" {
		projectIDs = []string{projectID}
	}

	var (
		categories   []category.Category
		rows         []Row
		transactions []transaction.Transaction
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		categories, err = s.categoryRepo.GetAll(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		rows, err = s.repo.ListForMonths(gctx, r.Months, projectIDs)
		return err
	})
	g.Go(func() error {
		var err error
		transactions, err = s.transactionRepo.List(gctx, transaction.Filter{
			ProjectIDs:  projectIDs,
			PLDateFrom:  r.Start,
			PLDateUntil: r.EndExclusive,
		})
		return err
	})
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	return Report{
		PeriodType: periodType,
		Period:     periodToken,
		Label:      period.Label(period.Type(periodType), periodToken),
		ReadOnly:   len(r.Months) > 1 && projectID == "",
		Result:     Aggregate(categories, rows, transactions, r.Months),
	}, nil
}

// CommitRow applies one field edit to the given cell and upserts the full
// recomputed row. There is no partial-field write path.
func (s *BudgetServiceImpl) CommitRow(ctx context.Context, row Row, field EditableField, value decimal.Decimal) (Row, error) {
	switch field {
	case FieldK1WithVat:
		row = row.SetK1WithVat(value)
	case FieldK1WithoutVat:
		row = row.SetK1WithoutVat(value)
	case FieldK2:
		row = row.SetK2(value)
	default:
		return Row{}, ErrUnknownField
	}

	if row.ID == "" {
		row.ID = uuid.NewString()
	}
	if err := s.repo.UpsertRow(ctx, row); err != nil {
		return Row{}, err
	}
	return row, nil
}

// AddCategories inserts a zero-valued row per category into the (month,
// project) scope. Categories already present are rejected individually by a
// set-membership check; the batch continues past each conflict.
func (s *BudgetServiceImpl) AddCategories(ctx context.Context, month, projectID string, categoryIDs []string) (int, []error) {
	present, err := s.repo.ListCategoryIDs(ctx, month, projectID)
	if err != nil {
		return 0, []error{err}
	}

	added := 0
	var errs []error
	for _, categoryID := range categoryIDs {
		if present[categoryID] {
			errs = append(errs, ConflictError{CategoryID: categoryID})
			continue
		}
		row := Row{
			ID:         uuid.NewString(),
			CategoryID: categoryID,
			ProjectID:  projectID,
			Month:      month,
		}
		if err := s.repo.UpsertRow(ctx, row); err != nil {
			log.Errorf("could not add category %s to budget scope: %v", categoryID, err)
			errs = append(errs, err)
			continue
		}
		present[categoryID] = true
		added++
	}
	return added, errs
}
