package balance

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketledger/internal/ticketing/ports"
)

func TestInMemoryLedger(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown principal has zero balance", func(t *testing.T) {
		ledger := NewInMemory()
		got, err := ledger.Balance(ctx, "SP3NOBODY")
		require.NoError(t, err)
		assert.EqualValues(t, 0, got)
	})

	t.Run("debit deducts when funds cover the amount", func(t *testing.T) {
		ledger := NewInMemory()
		ledger.Seed("SP3BUYER", 5000)

		require.NoError(t, ledger.Debit(ctx, "SP3BUYER", 1900))
		got, err := ledger.Balance(ctx, "SP3BUYER")
		require.NoError(t, err)
		assert.EqualValues(t, 3100, got)
	})

	t.Run("debit fails atomically on insufficient funds", func(t *testing.T) {
		ledger := NewInMemory()
		ledger.Seed("SP3BUYER", 100)

		err := ledger.Debit(ctx, "SP3BUYER", 101)
		require.ErrorIs(t, err, ports.ErrInsufficientFunds)

		got, err := ledger.Balance(ctx, "SP3BUYER")
		require.NoError(t, err)
		assert.EqualValues(t, 100, got, "failed debit must not move funds")
	})

	t.Run("exact balance is spendable", func(t *testing.T) {
		ledger := NewInMemory()
		ledger.Seed("SP3BUYER", 1900)

		require.NoError(t, ledger.Debit(ctx, "SP3BUYER", 1900))
		got, _ := ledger.Balance(ctx, "SP3BUYER")
		assert.EqualValues(t, 0, got)
	})

	t.Run("credit adds funds", func(t *testing.T) {
		ledger := NewInMemory()
		require.NoError(t, ledger.Credit(ctx, "SP3BUYER", 250))
		got, _ := ledger.Balance(ctx, "SP3BUYER")
		assert.EqualValues(t, 250, got)
	})

	t.Run("negative amounts rejected", func(t *testing.T) {
		ledger := NewInMemory()
		assert.Error(t, ledger.Debit(ctx, "SP3BUYER", -1))
		assert.Error(t, ledger.Credit(ctx, "SP3BUYER", -1))
	})
}
