package recurrence

import (
	"context"
	"testing"
	"time"

	"github.com/kasabook/kasabook/internal/utils"
	"github.com/kasabook/kasabook/pkg/transaction"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var repoStub = transaction.NewStubTransactionRepo()

func setup(t *testing.T, today string) (*Expander, context.Context, func()) {
	now, err := time.Parse("2006-01-02", today)
	require.NoError(t, err)
	clock := &utils.MockClock{FixedNow: now}

	expander := NewExpander(repoStub, clock)
	return expander, context.Background(), func() {
		t.Log("Teardown after test")
		repoStub.Cleanup()
	}
}

func date(value string) time.Time {
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return d
}

func storeTemplate(t *testing.T, ctx context.Context, template transaction.Transaction) transaction.Transaction {
	t.Helper()
	template.IsRecurring = true
	if template.ID == "" {
		template.ID = "template-1"
	}
	if template.AccountID == "" {
		template.AccountID = "acc-1"
	}
	if template.Type == "" {
		template.Type = transaction.TypeExpense
	}
	require.NoError(t, repoStub.Store(ctx, template))
	return template
}

func TestExpander_GenerateDue(t *testing.T) {
	t.Run("a monthly template generates one row per elapsed month", func(t *testing.T) {
		expander, ctx, teardown := setup(t, "2024-04-01")
		defer teardown()

		// given
		template := storeTemplate(t, ctx, transaction.Transaction{
			TransactionDate:     date("2024-01-01"),
			PLDate:              date("2024-01-01"),
			RecurrenceFrequency: transaction.FrequencyMonthly,
			RecurrenceInterval:  1,
			AmountWithVat:       decimal.RequireFromString("-120"),
		})

		// when
		result, err := expander.GenerateDue(ctx)

		// then: the start date itself is not a generated occurrence
		require.NoError(t, err)
		assert.Equal(t, 3, result.Generated)
		assert.Empty(t, result.Errors)

		occurrences, err := repoStub.List(ctx, transaction.Filter{ParentTransactionID: template.ID})
		require.NoError(t, err)
		require.Len(t, occurrences, 3)
		assert.Equal(t, date("2024-02-01"), occurrences[0].TransactionDate)
		assert.Equal(t, date("2024-03-01"), occurrences[1].TransactionDate)
		assert.Equal(t, date("2024-04-01"), occurrences[2].TransactionDate)
	})

	t.Run("a second run generates nothing new", func(t *testing.T) {
		expander, ctx, teardown := setup(t, "2024-04-01")
		defer teardown()

		storeTemplate(t, ctx, transaction.Transaction{
			TransactionDate:     date("2024-01-01"),
			RecurrenceFrequency: transaction.FrequencyMonthly,
			RecurrenceInterval:  1,
		})

		first, err := expander.GenerateDue(ctx)
		require.NoError(t, err)
		second, err := expander.GenerateDue(ctx)
		require.NoError(t, err)

		assert.Equal(t, 3, first.Generated)
		assert.Equal(t, 0, second.Generated)
	})

	t.Run("occurrences past the end date are not generated", func(t *testing.T) {
		expander, ctx, teardown := setup(t, "2024-04-01")
		defer teardown()

		template := storeTemplate(t, ctx, transaction.Transaction{
			TransactionDate:     date("2024-01-01"),
			RecurrenceFrequency: transaction.FrequencyMonthly,
			RecurrenceInterval:  1,
			RecurrenceEndDate:   date("2024-02-15"),
		})

		result, err := expander.GenerateDue(ctx)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Generated)
		occurrences, err := repoStub.List(ctx, transaction.Filter{ParentTransactionID: template.ID})
		require.NoError(t, err)
		require.Len(t, occurrences, 1)
		assert.Equal(t, date("2024-02-01"), occurrences[0].TransactionDate)
	})

	t.Run("a weekly template advances in interval-sized steps", func(t *testing.T) {
		expander, ctx, teardown := setup(t, "2024-01-31")
		defer teardown()

		template := storeTemplate(t, ctx, transaction.Transaction{
			TransactionDate:     date("2024-01-01"),
			RecurrenceFrequency: transaction.FrequencyWeekly,
			RecurrenceInterval:  2,
		})

		result, err := expander.GenerateDue(ctx)

		require.NoError(t, err)
		assert.Equal(t, 2, result.Generated)
		occurrences, err := repoStub.List(ctx, transaction.Filter{ParentTransactionID: template.ID})
		require.NoError(t, err)
		require.Len(t, occurrences, 2)
		assert.Equal(t, date("2024-01-15"), occurrences[0].TransactionDate)
		assert.Equal(t, date("2024-01-29"), occurrences[1].TransactionDate)
	})

	t.Run("generated rows copy amounts and carry the auto note", func(t *testing.T) {
		expander, ctx, teardown := setup(t, "2024-02-01")
		defer teardown()

		template := storeTemplate(t, ctx, transaction.Transaction{
			TransactionDate:     date("2024-01-01"),
			RecurrenceFrequency: transaction.FrequencyMonthly,
			RecurrenceInterval:  1,
			AmountWithVat:       decimal.RequireFromString("-120"),
			AmountWithoutVat:    decimal.RequireFromString("-100"),
			VatAmount:           decimal.RequireFromString("-20"),
			Notes:               "Office rent",
		})

		_, err := expander.GenerateDue(ctx)
		require.NoError(t, err)

		occurrences, err := repoStub.List(ctx, transaction.Filter{ParentTransactionID: template.ID})
		require.NoError(t, err)
		require.Len(t, occurrences, 1)
		got := occurrences[0]
		assert.True(t, got.AmountWithVat.Equal(decimal.RequireFromString("-120")))
		assert.False(t, got.IsRecurring)
		assert.Equal(t, template.ID, got.ParentTransactionID)
		assert.Equal(t, got.TransactionDate, got.PLDate)
		assert.Equal(t, "Office rent (Auto-generated)", got.Notes)
	})

	t.Run("generated occurrences are not treated as templates", func(t *testing.T) {
		expander, ctx, teardown := setup(t, "2024-03-01")
		defer teardown()

		storeTemplate(t, ctx, transaction.Transaction{
			TransactionDate:     date("2024-01-01"),
			RecurrenceFrequency: transaction.FrequencyMonthly,
			RecurrenceInterval:  1,
		})

		_, err := expander.GenerateDue(ctx)
		require.NoError(t, err)

		templates, err := repoStub.List(ctx, transaction.Filter{TemplatesOnly: true})
		require.NoError(t, err)
		assert.Len(t, templates, 1)
	})
}
