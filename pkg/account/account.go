package account

import (
	"errors"
	"time"

	"github.com/kasabook/kasabook/pkg/transaction"
	"github.com/shopspring/decimal"
)

type AccountType string

const (
	TypePayment AccountType = "payment"
	TypeSavings AccountType = "savings"
	TypeCredit  AccountType = "credit"
)

type AccountLocation string

const (
	LocationBank AccountLocation = "bank"
	LocationCash AccountLocation = "cash"
)

var (
	ErrNotFound        = errors.New("account not found")
	ErrInvalidType     = errors.New("invalid account type")
	ErrInvalidLocation = errors.New("invalid account location")
	// ErrInUse blocks deletion while transactions still reference the account,
	// because removing it would silently change every derived balance.
	ErrInUse = errors.New("account has transactions and cannot be deleted")
)

type Account struct {
	ID             string
	Name           string
	Type           AccountType
	Location       AccountLocation
	InitialBalance decimal.Decimal
	Currency       string
	CreatedAt      time.Time
}

// AccountWithBalance pairs an account with its derived current balance.
// The balance is never stored; it is recomputed from the ledger on read.
type AccountWithBalance struct {
	Account
	CurrentBalance decimal.Decimal
}

func (a Account) Validate() error {
	switch a.Type {
	case TypePayment, TypeSavings, TypeCredit:
	default:
		return ErrInvalidType
	}
	switch a.Location {
	case LocationBank, LocationCash, "":
	default:
		return ErrInvalidLocation
	}
	return nil
}

// CalculateBalance replays the ledger against the account's initial balance.
// A transaction affects the balance through its source leg (signed K1 plus K2)
// and, for transfers, credits the destination account with the absolute value
// of the same amount.
func CalculateBalance(a Account, transactions []transaction.Transaction) decimal.Decimal {
	balance := a.InitialBalance
	for _, t := range transactions {
		if t.AccountID == a.ID {
			balance = balance.Add(t.CombinedEffect())
		}
		if t.Type == transaction.TypeTransfer && t.ToAccountID == a.ID {
			balance = balance.Add(t.CombinedEffect().Abs())
		}
	}
	return balance
}
