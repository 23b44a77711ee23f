package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLedgerConfig(t *testing.T) {
	cfg := NewLedgerConfig()
	assert.EqualValues(t, 0, cfg.TicketCounter)
	assert.Equal(t, DefaultPlatformFee, cfg.PlatformFee)
	assert.Equal(t, DefaultDiscountRate, cfg.DiscountRate)
	assert.Equal(t, DefaultMaxTicketsPerEvent, cfg.MaxTicketsPerEvent)
	assert.False(t, cfg.EscrowConfigured())
}

func TestTicketCounterAllocation(t *testing.T) {
	cfg := NewLedgerConfig()

	// Allocation peeks; only commit advances.
	assert.EqualValues(t, 0, cfg.AllocateTicketID())
	assert.EqualValues(t, 0, cfg.AllocateTicketID())

	cfg.CommitTicketID()
	assert.EqualValues(t, 1, cfg.AllocateTicketID())

	cfg.CommitTicketID()
	assert.EqualValues(t, 2, cfg.AllocateTicketID())
}

func TestSetPlatformFee(t *testing.T) {
	cfg := NewLedgerConfig()

	require.NoError(t, cfg.SetPlatformFee(0))
	assert.EqualValues(t, 0, cfg.PlatformFee)

	require.NoError(t, cfg.SetPlatformFee(2500))
	assert.EqualValues(t, 2500, cfg.PlatformFee)

	err := cfg.SetPlatformFee(-1)
	require.Error(t, err)
	assert.True(t, IsFailure(err, FailureInvalidFee))
	assert.EqualValues(t, 2500, cfg.PlatformFee, "rejected fee must not apply")
}

func TestSetDiscountRate(t *testing.T) {
	cfg := NewLedgerConfig()

	require.NoError(t, cfg.SetDiscountRate(0))
	require.NoError(t, cfg.SetDiscountRate(100))

	err := cfg.SetDiscountRate(101)
	require.Error(t, err)
	assert.True(t, IsFailure(err, FailureInvalidDiscount))
	assert.EqualValues(t, 100, cfg.DiscountRate, "rejected rate must not apply")

	// Negative rates pass validation; QuoteFor then yields a surcharge. This
	// pins the upstream contract rather than endorsing it.
	require.NoError(t, cfg.SetDiscountRate(-10))
	assert.EqualValues(t, -10, cfg.DiscountRate)
}

func TestQuoteFor(t *testing.T) {
	tests := []struct {
		name           string
		fee            int64
		rate           int64
		price          int64
		applyDiscount  bool
		wantDiscounted int64
		wantTotal      int64
	}{
		{"reference scenario with discount", 1000, 10, 1000, true, 900, 1900},
		{"reference scenario without discount", 1000, 10, 1000, false, 1000, 2000},
		{"discount truncates toward zero", 1000, 10, 999, true, 899, 1899},
		{"full discount leaves only the fee", 500, 100, 1000, true, 0, 500},
		{"zero fee", 0, 10, 1000, true, 900, 900},
		{"negative rate surcharges", 1000, -10, 1000, true, 1100, 2100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewLedgerConfig()
			require.NoError(t, cfg.SetPlatformFee(tt.fee))
			require.NoError(t, cfg.SetDiscountRate(tt.rate))

			quote := cfg.QuoteFor(tt.price, tt.applyDiscount)
			assert.Equal(t, tt.wantDiscounted, quote.DiscountedPrice)
			assert.Equal(t, tt.wantTotal, quote.TotalPrice)
			assert.Equal(t, tt.fee, quote.PlatformFee)
			if tt.applyDiscount {
				assert.Equal(t, tt.rate, quote.Discount)
			} else {
				assert.EqualValues(t, 0, quote.Discount)
			}
		})
	}
}

func TestQuoteForIsDeterministic(t *testing.T) {
	cfg := NewLedgerConfig()
	first := cfg.QuoteFor(12345, true)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, cfg.QuoteFor(12345, true))
	}
}
