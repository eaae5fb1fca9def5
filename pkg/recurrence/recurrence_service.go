package recurrence

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kasabook/kasabook/internal/utils"
	"github.com/kasabook/kasabook/pkg/transaction"
	log "github.com/sirupsen/logrus"
)

// Result reports one expander run. Errors holds per-occurrence failures; a
// failing template never aborts the rest of the batch.
type Result struct {
	Generated int
	Errors    []error
}

type ExpanderService interface {
	GenerateDue(ctx context.Context) (Result, error)
}

// Expander materializes concrete transactions from recurring templates. Each
// run walks every template's schedule from its start date up to today and
// inserts the occurrences that do not exist yet, so the operation can be
// re-run at any time.
type Expander struct {
	repo  transaction.TransactionRepo
	clock utils.Clock
}

func NewExpander(repo transaction.TransactionRepo, clock utils.Clock) *Expander {
	return &Expander{repo: repo, clock: clock}
}

func (e *Expander) GenerateDue(ctx context.Context) (Result, error) {
	templates, err := e.repo.List(ctx, transaction.Filter{TemplatesOnly: true})
	if err != nil {
		return Result{}, err
	}

	today := utils.Today(e.clock)
	result := Result{}

	for _, template := range templates {
		generated, errs := e.expandTemplate(ctx, template, today)
		result.Generated += generated
		result.Errors = append(result.Errors, errs...)
	}

	log.Infof("recurrence run generated %d transactions (%d errors)", result.Generated, len(result.Errors))
	return result, nil
}

// expandTemplate advances a cursor from the template's transaction date one
// period at a time. The loop is bounded by today; an occurrence past the
// recurrence end date is skipped but the cursor keeps advancing to today.
func (e *Expander) expandTemplate(ctx context.Context, template transaction.Transaction, today time.Time) (int, []error) {
	interval := template.RecurrenceInterval
	if interval < 1 {
		interval = 1
	}

	generated := 0
	var errs []error

	cursor := template.TransactionDate
	for !cursor.After(today) {
		cursor = advance(cursor, template.RecurrenceFrequency, interval)
		if cursor.After(today) {
			break
		}
		if !template.RecurrenceEndDate.IsZero() && cursor.After(template.RecurrenceEndDate) {
			continue
		}

		existing, err := e.repo.List(ctx, transaction.Filter{
			ParentTransactionID: template.ID,
			TransactionDate:     cursor,
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("template %s: could not check occurrence at %s: %w",
				template.ID, cursor.Format("2006-01-02"), err))
			continue
		}
		if len(existing) > 0 {
			continue
		}

		occurrence := materialize(template, cursor)
		if err := e.repo.Store(ctx, occurrence); err != nil {
			errs = append(errs, fmt.Errorf("template %s: could not store occurrence at %s: %w",
				template.ID, cursor.Format("2006-01-02"), err))
			continue
		}
		generated++
	}

	return generated, errs
}

func advance(date time.Time, frequency transaction.Frequency, interval int) time.Time {
	switch frequency {
	case transaction.FrequencyWeekly:
		return date.AddDate(0, 0, 7*interval)
	case transaction.FrequencyMonthly:
		return date.AddDate(0, interval, 0)
	case transaction.FrequencyYearly:
		return date.AddDate(interval, 0, 0)
	default:
		// An unknown frequency would loop forever; push past any horizon.
		return date.AddDate(1000, 0, 0)
	}
}

// materialize copies the template's account, type, and amount fields into a
// concrete transaction dated at the cursor, linked back to its template.
func materialize(template transaction.Transaction, date time.Time) transaction.Transaction {
	notes := "Auto-generated recurring transaction"
	if template.Notes != "" {
		notes = template.Notes + " (Auto-generated)"
	}
	return transaction.Transaction{
		ID:                  uuid.NewString(),
		TransactionDate:     date,
		PLDate:              date,
		AccountID:           template.AccountID,
		Type:                template.Type,
		CategoryID:          template.CategoryID,
		DebtID:              template.DebtID,
		ProjectID:           template.ProjectID,
		ToAccountID:         template.ToAccountID,
		AmountWithVat:       template.AmountWithVat,
		AmountWithoutVat:    template.AmountWithoutVat,
		VatAmount:           template.VatAmount,
		K2Amount:            template.K2Amount,
		Notes:               notes,
		IsRecurring:         false,
		ParentTransactionID: template.ID,
	}
}
