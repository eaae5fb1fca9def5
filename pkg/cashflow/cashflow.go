package cashflow

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("schedule entry not found")

// Schedule is one planned installment against a category's project budget.
// BudgetedAmount, ActualAmount, and RemainingAmount are a snapshot of the
// budget-vs-ledger state taken when the entry is created; they are not
// recomputed afterwards.
type Schedule struct {
	ID              string
	ProjectID       string
	CategoryID      string
	BudgetedAmount  decimal.Decimal
	ActualAmount    decimal.Decimal
	RemainingAmount decimal.Decimal
	ScheduledMonth  string
	ScheduledAmount decimal.Decimal
	Notes           string
	CreatedAt       time.Time
}

// ScheduleInput is the caller-supplied part of a new entry; the snapshot
// fields are derived at creation.
type ScheduleInput struct {
	ProjectID       string
	CategoryID      string
	ScheduledMonth  string
	ScheduledAmount decimal.Decimal
	Notes           string
}
