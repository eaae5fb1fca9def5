package transaction

import (
	"context"
	"testing"
	"time"

	"github.com/kasabook/kasabook/internal/event_bus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var repoStub = NewStubTransactionRepo()

func setup(t *testing.T) (TransactionService, *event_bus.EventBus, context.Context, func()) {
	bus := event_bus.NewEventBus()
	service := NewTransactionService(repoStub, bus)
	return service, bus, context.Background(), func() {
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

func TestTransactionServiceImpl_Create(t *testing.T) {
	t.Run("derives net and VAT from a gross amount", func(t *testing.T) {
		service, _, ctx, teardown := setup(t)
		defer teardown()

		// given
		entry := Transaction{
			TransactionDate: date("2024-03-05"),
			AccountID:       "acc-1",
			Type:            TypeIncome,
			AmountWithVat:   decimal.RequireFromString("120"),
		}

		// when
		created, err := service.Create(ctx, entry)

		// then
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.True(t, created.AmountWithoutVat.Equal(decimal.RequireFromString("100")), created.AmountWithoutVat.String())
		assert.True(t, created.VatAmount.Equal(decimal.RequireFromString("20")), created.VatAmount.String())
	})

	t.Run("a net-only entry carries no VAT", func(t *testing.T) {
		service, _, ctx, teardown := setup(t)
		defer teardown()

		entry := Transaction{
			TransactionDate:  date("2024-03-05"),
			AccountID:        "acc-1",
			Type:             TypeIncome,
			AmountWithoutVat: decimal.RequireFromString("100"),
		}

		created, err := service.Create(ctx, entry)

		require.NoError(t, err)
		assert.True(t, created.AmountWithVat.IsZero())
		assert.True(t, created.VatAmount.IsZero())
		assert.True(t, created.AmountWithoutVat.Equal(decimal.RequireFromString("100")))
	})

	t.Run("an expense is stored negative", func(t *testing.T) {
		service, _, ctx, teardown := setup(t)
		defer teardown()

		entry := Transaction{
			TransactionDate: date("2024-03-05"),
			AccountID:       "acc-1",
			Type:            TypeExpense,
			AmountWithVat:   decimal.RequireFromString("120"),
			K2Amount:        decimal.RequireFromString("30"),
		}

		created, err := service.Create(ctx, entry)

		require.NoError(t, err)
		assert.True(t, created.AmountWithVat.Equal(decimal.RequireFromString("-120")), created.AmountWithVat.String())
		assert.True(t, created.AmountWithoutVat.Equal(decimal.RequireFromString("-100")))
		assert.True(t, created.VatAmount.Equal(decimal.RequireFromString("-20")))
		assert.True(t, created.K2Amount.Equal(decimal.RequireFromString("-30")))
	})

	t.Run("defaults the P&L date to the transaction date", func(t *testing.T) {
		service, _, ctx, teardown := setup(t)
		defer teardown()

		entry := Transaction{
			TransactionDate: date("2024-03-05"),
			AccountID:       "acc-1",
			Type:            TypeIncome,
			AmountWithVat:   decimal.RequireFromString("12"),
		}

		created, err := service.Create(ctx, entry)

		require.NoError(t, err)
		assert.Equal(t, date("2024-03-05"), created.PLDate)
	})

	t.Run("rejects a transfer without a destination", func(t *testing.T) {
		service, _, ctx, teardown := setup(t)
		defer teardown()

		_, err := service.Create(ctx, Transaction{
			TransactionDate: date("2024-03-05"),
			AccountID:       "acc-1",
			Type:            TypeTransfer,
		})

		assert.ErrorIs(t, err, ErrMissingToAccount)
	})

	t.Run("rejects a transfer onto the same account", func(t *testing.T) {
		service, _, ctx, teardown := setup(t)
		defer teardown()

		_, err := service.Create(ctx, Transaction{
			TransactionDate: date("2024-03-05"),
			AccountID:       "acc-1",
			ToAccountID:     "acc-1",
			Type:            TypeTransfer,
		})

		assert.ErrorIs(t, err, ErrSameAccountTransfer)
	})

	t.Run("publishes a created event with the combined magnitude", func(t *testing.T) {
		service, bus, ctx, teardown := setup(t)
		defer teardown()

		var received event_bus.TransactionCreated
		event_bus.SubscribeTyped(bus, event_bus.TransactionCreatedType, func(e event_bus.EventT[event_bus.TransactionCreated]) error {
			received = e.Data
			return nil
		})

		created, err := service.Create(ctx, Transaction{
			TransactionDate: date("2024-03-05"),
			AccountID:       "acc-1",
			Type:            TypeExpense,
			DebtID:          "debt-1",
			AmountWithVat:   decimal.RequireFromString("120"),
			K2Amount:        decimal.RequireFromString("30"),
		})

		require.NoError(t, err)
		assert.Equal(t, created.ID, received.TransactionID)
		assert.Equal(t, "debt-1", received.DebtID)
		assert.True(t, received.Amount.Equal(decimal.RequireFromString("150")), received.Amount.String())
	})
}

func TestTransactionServiceImpl_Delete(t *testing.T) {
	t.Run("publishes a deleted event for the removed transaction", func(t *testing.T) {
		service, bus, ctx, teardown := setup(t)
		defer teardown()

		created, err := service.Create(ctx, Transaction{
			TransactionDate: date("2024-03-05"),
			AccountID:       "acc-1",
			Type:            TypeExpense,
			DebtID:          "debt-1",
			AmountWithVat:   decimal.RequireFromString("60"),
		})
		require.NoError(t, err)

		var received event_bus.TransactionDeleted
		event_bus.SubscribeTyped(bus, event_bus.TransactionDeletedType, func(e event_bus.EventT[event_bus.TransactionDeleted]) error {
			received = e.Data
			return nil
		})

		deleted, err := service.Delete(ctx, created.ID)

		require.NoError(t, err)
		assert.True(t, deleted)
		assert.Equal(t, created.ID, received.TransactionID)
		assert.True(t, received.Amount.Equal(decimal.RequireFromString("60")))
	})

	t.Run("returns not found for an unknown id", func(t *testing.T) {
		service, _, ctx, teardown := setup(t)
		defer teardown()

		_, err := service.Delete(ctx, "no-such-id")

		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestTransaction_IsTemplate(t *testing.T) {
	template := Transaction{IsRecurring: true}
	occurrence := Transaction{IsRecurring: true, ParentTransactionID: "parent"}
	plain := Transaction{}

	assert.True(t, template.IsTemplate())
	assert.False(t, occurrence.IsTemplate())
	assert.False(t, plain.IsTemplate())
}
