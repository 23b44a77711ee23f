package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "ticketledger/pkg/domain-errors"
)

func TestParsePrincipal(t *testing.T) {
	t.Run("trims surrounding whitespace", func(t *testing.T) {
		p, err := ParsePrincipal("  SP3BUYER  ")
		require.NoError(t, err)
		assert.Equal(t, Principal("SP3BUYER"), p)
	})

	t.Run("rejects empty input", func(t *testing.T) {
		_, err := ParsePrincipal("   ")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("zero value is nil", func(t *testing.T) {
		assert.True(t, Principal("").IsNil())
		assert.False(t, Principal("SP3BUYER").IsNil())
	})
}

func TestParseEventID(t *testing.T) {
	t.Run("accepts ids up to the byte limit", func(t *testing.T) {
		e, err := ParseEventID(strings.Repeat("a", MaxEventIDBytes))
		require.NoError(t, err)
		assert.True(t, e.Valid())
	})

	t.Run("rejects empty and oversized ids", func(t *testing.T) {
		_, err := ParseEventID("")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))

		_, err = ParseEventID(strings.Repeat("a", MaxEventIDBytes+1))
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("limit is bytes, not runes", func(t *testing.T) {
		// 11 four-byte runes: 44 bytes.
		_, err := ParseEventID(strings.Repeat("\U0001F3AB", 11))
		assert.Error(t, err)
	})
}

func TestParseTicketID(t *testing.T) {
	t.Run("parses decimal ids", func(t *testing.T) {
		ticketID, err := ParseTicketID("42")
		require.NoError(t, err)
		assert.Equal(t, TicketID(42), ticketID)
		assert.Equal(t, "42", ticketID.String())
	})

	t.Run("zero is a valid id", func(t *testing.T) {
		ticketID, err := ParseTicketID("0")
		require.NoError(t, err)
		assert.Equal(t, TicketID(0), ticketID)
	})

	t.Run("rejects negatives and garbage", func(t *testing.T) {
		for _, input := range []string{"-1", "abc", "", "1.5"} {
			_, err := ParseTicketID(input)
			assert.Truef(t, dErrors.HasCode(err, dErrors.CodeInvalidInput), "input %q", input)
		}
	})
}
