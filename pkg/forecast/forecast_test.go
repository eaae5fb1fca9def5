package forecast

import (
	"testing"
	"time"

	"github.com/kasabook/kasabook/pkg/transaction"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func date(value string) time.Time {
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return d
}

func monthlyTemplate(amount string, transactionType transaction.TransactionType) transaction.Transaction {
	return transaction.Transaction{
		ID:                  "template",
		TransactionDate:     date("2024-01-01"),
		Type:                transactionType,
		AmountWithVat:       dec(amount),
		IsRecurring:         true,
		RecurrenceFrequency: transaction.FrequencyMonthly,
		RecurrenceInterval:  1,
	}
}

func TestProject(t *testing.T) {
	today := date("2024-01-15")

	t.Run("output length is horizon plus the starting point", func(t *testing.T) {
		for _, horizon := range []int{1, 3, 6, 12} {
			projection, err := Project(today, dec("1000"), nil, horizon)
			require.NoError(t, err)
			assert.Len(t, projection.Points, horizon+1)
		}
	})

	t.Run("point zero carries the current balance exactly", func(t *testing.T) {
		projection, err := Project(today, dec("123.45"), []transaction.Transaction{
			monthlyTemplate("-50", transaction.TypeExpense),
		}, 3)

		require.NoError(t, err)
		first := projection.Points[0]
		assert.Equal(t, 0, first.MonthIndex)
		assert.True(t, first.Balance.Equal(dec("123.45")))
		assert.True(t, first.Income.IsZero())
		assert.True(t, first.Expense.IsZero())
	})

	t.Run("rejects a horizon below one month", func(t *testing.T) {
		_, err := Project(today, dec("0"), nil, 0)
		assert.ErrorIs(t, err, ErrInvalidHorizon)
	})

	t.Run("cumulative monthly counts feed each offset", func(t *testing.T) {
		// count through month i is i for a monthly interval-1 template, so
		// month 1 projects one occurrence and month 2 projects two more.
		projection, err := Project(today, dec("1000"), []transaction.Transaction{
			monthlyTemplate("-100", transaction.TypeExpense),
		}, 2)

		require.NoError(t, err)
		assert.True(t, projection.Points[1].Expense.Equal(dec("100")))
		assert.True(t, projection.Points[2].Expense.Equal(dec("200")))
		assert.True(t, projection.Points[1].Balance.Equal(dec("900")))
		assert.True(t, projection.Points[2].Balance.Equal(dec("700")))
	})

	t.Run("income and expense buckets split by template type", func(t *testing.T) {
		projection, err := Project(today, dec("0"), []transaction.Transaction{
			monthlyTemplate("200", transaction.TypeIncome),
			monthlyTemplate("-50", transaction.TypeExpense),
		}, 1)

		require.NoError(t, err)
		assert.True(t, projection.Points[1].Income.Equal(dec("200")))
		assert.True(t, projection.Points[1].Expense.Equal(dec("50")))
		assert.True(t, projection.FinalBalance.Equal(dec("150")))
		assert.True(t, projection.NetChange.Equal(dec("150")))
	})

	t.Run("a template past its end date stops contributing", func(t *testing.T) {
		template := monthlyTemplate("-100", transaction.TypeExpense)
		template.RecurrenceEndDate = date("2024-02-20")

		projection, err := Project(today, dec("1000"), []transaction.Transaction{template}, 3)

		require.NoError(t, err)
		assert.True(t, projection.Points[1].Expense.Equal(dec("100")))
		assert.True(t, projection.Points[2].Expense.IsZero())
		assert.True(t, projection.Points[3].Expense.IsZero())
	})

	t.Run("yearly templates appear once the offset reaches a full cycle", func(t *testing.T) {
		template := transaction.Transaction{
			TransactionDate:     date("2024-01-01"),
			Type:                transaction.TypeExpense,
			AmountWithVat:       dec("-1200"),
			IsRecurring:         true,
			RecurrenceFrequency: transaction.FrequencyYearly,
			RecurrenceInterval:  1,
		}

		projection, err := Project(today, dec("0"), []transaction.Transaction{template}, 12)

		require.NoError(t, err)
		assert.True(t, projection.Points[11].Expense.IsZero())
		assert.True(t, projection.Points[12].Expense.Equal(dec("1200")))
	})

	t.Run("weekly counts use the thirty-day month approximation", func(t *testing.T) {
		template := transaction.Transaction{
			TransactionDate:     date("2024-01-01"),
			Type:                transaction.TypeIncome,
			AmountWithVat:       dec("70"),
			IsRecurring:         true,
			RecurrenceFrequency: transaction.FrequencyWeekly,
			RecurrenceInterval:  1,
		}

		projection, err := Project(today, dec("0"), []transaction.Transaction{template}, 1)

		// floor(30 / 7) = 4 occurrences through the first month
		require.NoError(t, err)
		assert.True(t, projection.Points[1].Income.Equal(dec("280")), projection.Points[1].Income.String())
	})
}
