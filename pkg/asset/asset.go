package asset

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("asset not found")

type Asset struct {
	ID           string
	Name         string
	Type         string
	Value        decimal.Decimal
	Currency     string
	PurchaseDate time.Time
	Notes        string
	CreatedAt    time.Time
}
