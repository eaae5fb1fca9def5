package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// VAT is charged at a fixed 20% rate; gross amounts divide by 1.2 to get net.
var vatDivisor = decimal.RequireFromString("1.2")

// Split is the decomposition of a K1 amount into gross, net, and VAT parts.
type Split struct {
	WithVat    decimal.Decimal
	WithoutVat decimal.Decimal
	Vat        decimal.Decimal
}

// SplitFromGross derives the net and VAT parts from a gross (with-VAT) amount.
// The VAT part is computed as gross minus net, so WithoutVat + Vat always
// reconstructs WithVat exactly.
func SplitFromGross(withVat decimal.Decimal) Split {
	withoutVat := withVat.Div(vatDivisor)
	return Split{
		WithVat:    withVat,
		WithoutVat: withoutVat,
		Vat:        withVat.Sub(withoutVat),
	}
}

// SplitFromNet represents a net-only entry. Entering a net amount is treated
// as "VAT not applicable": the gross and VAT parts are cleared, not computed
// forward. Net-only entries therefore never contribute to with-VAT actuals.
func SplitFromNet(withoutVat decimal.Decimal) Split {
	return Split{
		WithVat:    decimal.Zero,
		WithoutVat: withoutVat,
		Vat:        decimal.Zero,
	}
}

// TotalWithVat is the gross month total: K1 gross plus the K2 addition.
// K2 is not VAT-bearing, it is added as-is to both totals.
func TotalWithVat(k1WithVat, k2 decimal.Decimal) decimal.Decimal {
	return k1WithVat.Add(k2)
}

// TotalWithoutVat is the net month total: K1 net plus the K2 addition.
func TotalWithoutVat(k1WithoutVat, k2 decimal.Decimal) decimal.Decimal {
	return k1WithoutVat.Add(k2)
}

// SignForType returns the sign applied to stored amounts of a transaction
// type: income amounts are stored non-negative, expense and transfer amounts
// non-positive.
func SignForType(transactionType string) int {
	if transactionType == "income" {
		return 1
	}
	return -1
}

// ApplySign conforms an amount to the given sign convention. Only positive
// amounts are negated for a negative sign; amounts already carrying a sign
// are left untouched.
func ApplySign(amount decimal.Decimal, sign int) decimal.Decimal {
	if sign < 0 && amount.IsPositive() {
		return amount.Neg()
	}
	return amount
}

// K1 picks the base amount of a row: the gross figure when present, otherwise
// the net figure. Exactly one of the two carries the K1 base in normal use.
func K1(withVat, withoutVat decimal.Decimal) decimal.Decimal {
	if !withVat.IsZero() {
		return withVat
	}
	return withoutVat
}

// CombinedEffect is a transaction's signed effect on its source account:
// the K1 base plus the K2 addition, both already signed at write time.
func CombinedEffect(withVat, withoutVat, k2 decimal.Decimal) decimal.Decimal {
	return K1(withVat, withoutVat).Add(k2)
}

// CombinedMagnitude is the unsigned size of a transaction: |K1| + |K2|.
func CombinedMagnitude(withVat, withoutVat, k2 decimal.Decimal) decimal.Decimal {
	return K1(withVat, withoutVat).Abs().Add(k2.Abs())
}

// ParseAmount parses a user-entered monetary string. It tolerates a comma
// decimal separator and surrounding whitespace, and returns zero for empty or
// unparseable input so that bad input never propagates as a parse failure
// into a sum.
func ParseAmount(raw string) decimal.Decimal {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero
	}
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
