package debt

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("debt not found")

// Debt tracks an outstanding liability. CurrentAmount is a cached figure kept
// in sync by the transaction lifecycle events: an expense payment linked to
// the debt reduces it, deleting that payment restores it.
type Debt struct {
	ID            string
	Name          string
	InitialAmount decimal.Decimal
	CurrentAmount decimal.Decimal
	InterestRate  decimal.Decimal
	Currency      string
	Notes         string
	CreatedAt     time.Time
}
