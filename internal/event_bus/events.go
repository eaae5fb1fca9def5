package event_bus

import "github.com/shopspring/decimal"

const (
	TransactionCreatedType EventType = "transaction.created"
	TransactionDeletedType EventType = "transaction.deleted"
)

// TransactionCreated is published after a transaction row has been stored.
// Amount is the combined magnitude |K1| + |K2| of the stored row.
type TransactionCreated struct {
	TransactionID string
	Type          string
	DebtID        string
	Amount        decimal.Decimal
}

// TransactionDeleted is published after a transaction row has been removed.
type TransactionDeleted struct {
	TransactionID string
	Type          string
	DebtID        string
	Amount        decimal.Decimal
}
