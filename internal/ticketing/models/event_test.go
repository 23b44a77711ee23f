package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "ticketledger/pkg/domain"
)

func TestNewEvent(t *testing.T) {
	t.Run("valid event starts active with full supply", func(t *testing.T) {
		event, err := NewEvent("concert-2026", "SP2ORG", 1000, 50, DefaultMaxTicketsPerEvent)
		require.NoError(t, err)
		assert.EqualValues(t, "concert-2026", event.ID)
		assert.EqualValues(t, "SP2ORG", event.Organizer)
		assert.EqualValues(t, 50, event.TotalTickets)
		assert.EqualValues(t, 50, event.AvailableTickets)
		assert.True(t, event.Active)
	})

	t.Run("empty id rejected", func(t *testing.T) {
		_, err := NewEvent("", "SP2ORG", 1000, 50, DefaultMaxTicketsPerEvent)
		assert.True(t, IsFailure(err, FailureInvalidEvent))
	})

	t.Run("oversized id rejected", func(t *testing.T) {
		long := id.EventID(strings.Repeat("x", id.MaxEventIDBytes+1))
		_, err := NewEvent(long, "SP2ORG", 1000, 50, DefaultMaxTicketsPerEvent)
		assert.True(t, IsFailure(err, FailureInvalidEvent))
	})

	t.Run("id at the byte limit accepted", func(t *testing.T) {
		limit := id.EventID(strings.Repeat("x", id.MaxEventIDBytes))
		_, err := NewEvent(limit, "SP2ORG", 1000, 50, DefaultMaxTicketsPerEvent)
		assert.NoError(t, err)
	})

	t.Run("non-positive price rejected", func(t *testing.T) {
		_, err := NewEvent("ev", "SP2ORG", 0, 50, DefaultMaxTicketsPerEvent)
		assert.True(t, IsFailure(err, FailureInvalidAmount))

		_, err = NewEvent("ev", "SP2ORG", -5, 50, DefaultMaxTicketsPerEvent)
		assert.True(t, IsFailure(err, FailureInvalidAmount))
	})

	t.Run("non-positive supply rejected", func(t *testing.T) {
		_, err := NewEvent("ev", "SP2ORG", 1000, 0, DefaultMaxTicketsPerEvent)
		assert.True(t, IsFailure(err, FailureInvalidAmount))
	})

	t.Run("supply above maximum rejected", func(t *testing.T) {
		_, err := NewEvent("ev", "SP2ORG", 1000, DefaultMaxTicketsPerEvent+1, DefaultMaxTicketsPerEvent)
		assert.True(t, IsFailure(err, FailureInvalidAmount))
	})

	t.Run("supply at maximum accepted", func(t *testing.T) {
		_, err := NewEvent("ev", "SP2ORG", 1000, DefaultMaxTicketsPerEvent, DefaultMaxTicketsPerEvent)
		assert.NoError(t, err)
	})
}

func TestEventSale(t *testing.T) {
	event, err := NewEvent("ev", "SP2ORG", 1000, 2, DefaultMaxTicketsPerEvent)
	require.NoError(t, err)

	require.NoError(t, event.CanSell())
	event.ApplySale()
	assert.EqualValues(t, 1, event.AvailableTickets)

	require.NoError(t, event.CanSell())
	event.ApplySale()
	assert.EqualValues(t, 0, event.AvailableTickets)

	assert.False(t, event.Sellable())
	err = event.CanSell()
	assert.True(t, IsFailure(err, FailureInvalidEvent))

	// Supply is immutable.
	assert.EqualValues(t, 2, event.TotalTickets)
}

func TestInactiveEventNotSellable(t *testing.T) {
	event, err := NewEvent("ev", "SP2ORG", 1000, 10, DefaultMaxTicketsPerEvent)
	require.NoError(t, err)

	event.Active = false
	assert.False(t, event.Sellable())
	assert.True(t, IsFailure(event.CanSell(), FailureInvalidEvent))
}
