package debt

import (
	"context"
	"testing"
	"time"

	"github.com/kasabook/kasabook/internal/event_bus"
	"github.com/kasabook/kasabook/pkg/transaction"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	repoStub            = NewStubDebtRepo()
	transactionRepoStub = transaction.NewStubTransactionRepo()
)

func setup(t *testing.T) (DebtService, transaction.TransactionService, context.Context, func()) {
	bus := event_bus.NewEventBus()
	SubscribeToTransactions(bus, repoStub)

	service := NewDebtService(repoStub)
	transactionService := transaction.NewTransactionService(transactionRepoStub, bus)
	return service, transactionService, context.Background(), func() {
		t.Log("Teardown after test")
		repoStub.Cleanup()
		transactionRepoStub.Cleanup()
	}
}

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

func TestDebtServiceImpl_Create(t *testing.T) {
	t.Run("current amount defaults to the initial amount", func(t *testing.T) {
		service, _, ctx, teardown := setup(t)
		defer teardown()

		created, err := service.Create(ctx, Debt{Name: "Loan", InitialAmount: dec("5000")})

		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.True(t, created.CurrentAmount.Equal(dec("5000")))
	})
}

func TestDebtSubscriber(t *testing.T) {
	t.Run("an expense payment reduces the debt", func(t *testing.T) {
		service, transactions, ctx, teardown := setup(t)
		defer teardown()

		// given
		loan, err := service.Create(ctx, Debt{Name: "Loan", InitialAmount: dec("5000")})
		require.NoError(t, err)

		// when: pay 120 gross plus 30 pass-through
		_, err = transactions.Create(ctx, transaction.Transaction{
			TransactionDate: date("2024-03-01"),
			AccountID:       "acc-1",
			Type:            transaction.TypeExpense,
			DebtID:          loan.ID,
			AmountWithVat:   dec("120"),
			K2Amount:        dec("30"),
		})
		require.NoError(t, err)

		// then
		got, err := service.Get(ctx, loan.ID)
		require.NoError(t, err)
		assert.True(t, got.CurrentAmount.Equal(dec("4850")), got.CurrentAmount.String())
	})

	t.Run("deleting the payment restores the debt", func(t *testing.T) {
		service, transactions, ctx, teardown := setup(t)
		defer teardown()

		loan, err := service.Create(ctx, Debt{Name: "Loan", InitialAmount: dec("5000")})
		require.NoError(t, err)
		payment, err := transactions.Create(ctx, transaction.Transaction{
			TransactionDate: date("2024-03-01"),
			AccountID:       "acc-1",
			Type:            transaction.TypeExpense,
			DebtID:          loan.ID,
			AmountWithVat:   dec("120"),
		})
		require.NoError(t, err)

		_, err = transactions.Delete(ctx, payment.ID)
		require.NoError(t, err)

		got, err := service.Get(ctx, loan.ID)
		require.NoError(t, err)
		assert.True(t, got.CurrentAmount.Equal(dec("5000")), got.CurrentAmount.String())
	})

	t.Run("an income linked to a debt leaves it untouched", func(t *testing.T) {
		service, transactions, ctx, teardown := setup(t)
		defer teardown()

		loan, err := service.Create(ctx, Debt{Name: "Loan", InitialAmount: dec("5000")})
		require.NoError(t, err)

		_, err = transactions.Create(ctx, transaction.Transaction{
			TransactionDate: date("2024-03-01"),
			AccountID:       "acc-1",
			Type:            transaction.TypeIncome,
			DebtID:          loan.ID,
			AmountWithVat:   dec("120"),
		})
		require.NoError(t, err)

		got, err := service.Get(ctx, loan.ID)
		require.NoError(t, err)
		assert.True(t, got.CurrentAmount.Equal(dec("5000")))
	})
}
