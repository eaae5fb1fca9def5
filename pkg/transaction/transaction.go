package transaction

import (
	"errors"
	"time"

	"github.com/kasabook/kasabook/pkg/money"
	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TypeIncome   TransactionType = "income"
	TypeExpense  TransactionType = "expense"
	TypeTransfer TransactionType = "transfer"
)

type Frequency string

const (
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyYearly  Frequency = "yearly"
)

var (
	ErrNotFound = errors.New("transaction not found")
	// ErrMissingToAccount and ErrSameAccountTransfer guard the transfer shape
	// at the boundary; the balance calculator assumes both legs are distinct.
	ErrMissingToAccount    = errors.New("transfer requires a destination account")
	ErrSameAccountTransfer = errors.New("transfer source and destination must differ")
	ErrMissingAccount      = errors.New("transaction requires an account")
	ErrInvalidType         = errors.New("invalid transaction type")
	ErrInvalidRecurrence   = errors.New("invalid recurrence settings")
)

type Transaction struct {
	ID string
	// TransactionDate is the economic event date; PLDate is the date the
	// amount is recognized for profit-and-loss reporting. They may differ.
	TransactionDate time.Time
	PLDate          time.Time
	AccountID       string
	Type            TransactionType
	CategoryID      string
	DebtID          string
	ProjectID       string
	ToAccountID     string

	// K1 base split plus the K2 addition. All four are stored already signed:
	// non-negative for income, non-positive for expense and transfer.
	AmountWithVat    decimal.Decimal
	AmountWithoutVat decimal.Decimal
	VatAmount        decimal.Decimal
	K2Amount         decimal.Decimal

	Notes string

	IsRecurring         bool
	RecurrenceFrequency Frequency
	RecurrenceInterval  int
	RecurrenceEndDate   time.Time
	// ParentTransactionID links a generated occurrence back to its template.
	ParentTransactionID string
}

// IsTemplate reports whether the transaction is a recurring template rather
// than a concrete (possibly generated) row.
func (t Transaction) IsTemplate() bool {
	return t.IsRecurring && t.ParentTransactionID == ""
}

// CombinedEffect is the signed effect on the source account: K1 plus K2.
func (t Transaction) CombinedEffect() decimal.Decimal {
	return money.CombinedEffect(t.AmountWithVat, t.AmountWithoutVat, t.K2Amount)
}

// CombinedMagnitude is the unsigned size of the transaction: |K1| + |K2|.
func (t Transaction) CombinedMagnitude() decimal.Decimal {
	return money.CombinedMagnitude(t.AmountWithVat, t.AmountWithoutVat, t.K2Amount)
}

// Validate checks the structural invariants enforced at the write boundary.
func (t Transaction) Validate() error {
	if t.AccountID == "" {
		return ErrMissingAccount
	}
	switch t.Type {
	case TypeIncome, TypeExpense, TypeTransfer:
	default:
		return ErrInvalidType
	}
	if t.Type == TypeTransfer {
		if t.ToAccountID == "" {
			return ErrMissingToAccount
		}
		if t.ToAccountID == t.AccountID {
			return ErrSameAccountTransfer
		}
	}
	if t.IsRecurring {
		switch t.RecurrenceFrequency {
		case FrequencyWeekly, FrequencyMonthly, FrequencyYearly:
		default:
			return ErrInvalidRecurrence
		}
		if t.RecurrenceInterval < 1 {
			return ErrInvalidRecurrence
		}
	}
	return nil
}
