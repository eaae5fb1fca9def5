package transaction

import (
	"context"
	"database/sql"
	"testing"

	"github.com/kasabook/kasabook/internal/test_utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTransactionRepoTest(t *testing.T) (*TransactionRepoImpl, *sql.DB, context.Context) {
	db := test_utils.SetupTestDB(t)
	return NewTransactionRepo(db), db, context.Background()
}

func seedAccount(t *testing.T, db *sql.DB, id string) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO accounts (id, name, account_type) VALUES (?, ?, 'payment')`, id, "account "+id)
	require.NoError(t, err)
}

func TestTransactionRepoImpl_StoreRoundTrip(t *testing.T) {
	// Setup
	repository, db, ctx := setupTransactionRepoTest(t)
	seedAccount(t, db, "acc-1")

	// Given a recurring template with all optional fields set
	stored := Transaction{
		ID:                  "t1",
		TransactionDate:     date("2026-01-15"),
		PLDate:              date("2026-02-01"),
		AccountID:           "acc-1",
		Type:                TypeExpense,
		AmountWithVat:       decimal.RequireFromString("-120"),
		AmountWithoutVat:    decimal.RequireFromString("-100"),
		VatAmount:           decimal.RequireFromString("-20"),
		K2Amount:            decimal.RequireFromString("-30"),
		Notes:               "office rent",
		IsRecurring:         true,
		RecurrenceFrequency: FrequencyMonthly,
		RecurrenceInterval:  1,
		RecurrenceEndDate:   date("2026-12-31"),
	}

	// When
	require.NoError(t, repository.Store(ctx, stored))
	fetched, err := repository.GetByID(ctx, "t1")

	// Then
	require.NoError(t, err)
	assert.Equal(t, stored.TransactionDate, fetched.TransactionDate)
	assert.Equal(t, stored.PLDate, fetched.PLDate)
	assert.Equal(t, TypeExpense, fetched.Type)
	assert.True(t, stored.AmountWithVat.Equal(fetched.AmountWithVat))
	assert.True(t, stored.K2Amount.Equal(fetched.K2Amount))
	assert.Equal(t, "office rent", fetched.Notes)
	assert.True(t, fetched.IsRecurring)
	assert.Equal(t, FrequencyMonthly, fetched.RecurrenceFrequency)
	assert.Equal(t, 1, fetched.RecurrenceInterval)
	assert.Equal(t, date("2026-12-31"), fetched.RecurrenceEndDate)
}

func TestTransactionRepoImpl_OccurrenceUniquePerTemplateAndDate(t *testing.T) {
	// Setup
	repository, db, ctx := setupTransactionRepoTest(t)
	seedAccount(t, db, "acc-1")

	template := Transaction{
		ID: "tpl-1", TransactionDate: date("2026-01-01"), PLDate: date("2026-01-01"),
		AccountID: "acc-1", Type: TypeExpense,
		IsRecurring: true, RecurrenceFrequency: FrequencyMonthly, RecurrenceInterval: 1,
	}
	require.NoError(t, repository.Store(ctx, template))

	occurrence := Transaction{
		ID: "occ-1", TransactionDate: date("2026-02-01"), PLDate: date("2026-02-01"),
		AccountID: "acc-1", Type: TypeExpense, ParentTransactionID: "tpl-1",
	}
	require.NoError(t, repository.Store(ctx, occurrence))

	// When a second occurrence lands on the same template and date
	occurrence.ID = "occ-2"
	err := repository.Store(ctx, occurrence)

	// Then the store rejects the duplicate
	assert.Error(t, err)

	// and a different date is still fine
	occurrence.ID = "occ-3"
	occurrence.TransactionDate = date("2026-03-01")
	occurrence.PLDate = date("2026-03-01")
	assert.NoError(t, repository.Store(ctx, occurrence))
}

func TestTransactionRepoImpl_ListFilters(t *testing.T) {
	// Setup
	repository, db, ctx := setupTransactionRepoTest(t)
	seedAccount(t, db, "acc-1")

	store := func(id, plDate string, recurring bool) {
		tx := Transaction{
			ID: id, TransactionDate: date(plDate), PLDate: date(plDate),
			AccountID: "acc-1", Type: TypeIncome,
		}
		if recurring {
			tx.IsRecurring = true
			tx.RecurrenceFrequency = FrequencyWeekly
			tx.RecurrenceInterval = 1
		}
		require.NoError(t, repository.Store(ctx, tx))
	}
	store("t1", "2026-01-15", false)
	store("t2", "2026-01-31", false)
	store("t3", "2026-02-01", false)
	store("t4", "2026-01-20", true)

	// Then the profit-and-loss range is half-open
	listed, err := repository.List(ctx, Filter{PLDateFrom: date("2026-01-01"), PLDateUntil: date("2026-02-01")})
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, "t1", listed[0].ID)
	assert.Equal(t, "t4", listed[1].ID)
	assert.Equal(t, "t2", listed[2].ID)

	// and templates can be listed on their own
	templates, err := repository.List(ctx, Filter{TemplatesOnly: true})
	require.NoError(t, err)
	require.Len(t, templates, 1)
	assert.Equal(t, "t4", templates[0].ID)
}

func TestTransactionRepoImpl_CountForAccountCountsBothLegs(t *testing.T) {
	// Setup
	repository, db, ctx := setupTransactionRepoTest(t)
	seedAccount(t, db, "acc-1")
	seedAccount(t, db, "acc-2")

	require.NoError(t, repository.Store(ctx, Transaction{
		ID: "t1", TransactionDate: date("2026-01-10"), PLDate: date("2026-01-10"),
		AccountID: "acc-1", Type: TypeTransfer, ToAccountID: "acc-2",
	}))

	count, err := repository.CountForAccount(ctx, "acc-2")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
