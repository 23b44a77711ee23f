package models

import (
	"errors"
	"fmt"
	"net/http"
)

// FailureCode is the stable wire code for a ledger failure. Codes are small
// integers suitable for serialization in responses and logs; they must never
// be renumbered.
type FailureCode int

const (
	FailureNotAuthorized     FailureCode = 100
	FailureInvalidOrg        FailureCode = 101
	FailureInsufficientFunds FailureCode = 102
	FailureTicketExists      FailureCode = 103
	FailureInvalidEvent      FailureCode = 104
	FailureInvalidAmount     FailureCode = 105
	FailureTicketNotFound    FailureCode = 106
	FailureAlreadyRedeemed   FailureCode = 107
	// FailureInvalidTimestamp is reserved: no current operation produces it,
	// but the code is part of the stable wire taxonomy.
	FailureInvalidTimestamp FailureCode = 108
	FailureEscrowNotSet     FailureCode = 109
	FailureInvalidFee       FailureCode = 110
	FailureInvalidDiscount  FailureCode = 111
	FailureNotOrganizer     FailureCode = 112
)

func (c FailureCode) String() string {
	switch c {
	case FailureNotAuthorized:
		return "not_authorized"
	case FailureInvalidOrg:
		return "invalid_org"
	case FailureInsufficientFunds:
		return "insufficient_funds"
	case FailureTicketExists:
		return "ticket_exists"
	case FailureInvalidEvent:
		return "invalid_event"
	case FailureInvalidAmount:
		return "invalid_amount"
	case FailureTicketNotFound:
		return "ticket_not_found"
	case FailureAlreadyRedeemed:
		return "already_redeemed"
	case FailureInvalidTimestamp:
		return "invalid_timestamp"
	case FailureEscrowNotSet:
		return "escrow_not_set"
	case FailureInvalidFee:
		return "invalid_fee"
	case FailureInvalidDiscount:
		return "invalid_discount"
	case FailureNotOrganizer:
		return "not_organizer"
	default:
		return fmt.Sprintf("failure_%d", int(c))
	}
}

// HTTPStatus maps the wire code to a transport status for the HTTP layer.
func (c FailureCode) HTTPStatus() int {
	switch c {
	case FailureNotAuthorized:
		return http.StatusForbidden
	case FailureNotOrganizer:
		return http.StatusForbidden
	case FailureTicketNotFound:
		return http.StatusNotFound
	case FailureTicketExists, FailureAlreadyRedeemed:
		return http.StatusConflict
	case FailureInsufficientFunds:
		return http.StatusPaymentRequired
	case FailureEscrowNotSet:
		return http.StatusConflict
	default:
		return http.StatusUnprocessableEntity
	}
}

// LedgerError is the tagged failure value every mutating operation can
// return. Failures are synchronous and locally recoverable: the caller
// decides whether to retry or abort, the engine never does.
type LedgerError struct {
	Code    FailureCode
	Message string
}

func (e *LedgerError) Error() string {
	return fmt.Sprintf("%s (%d): %s", e.Code, int(e.Code), e.Message)
}

// NewLedgerError builds a tagged failure.
func NewLedgerError(code FailureCode, message string) error {
	return &LedgerError{Code: code, Message: message}
}

// FailureOf extracts the wire code from an error chain. The second return is
// false for errors that are not ledger failures (infrastructure faults).
func FailureOf(err error) (FailureCode, bool) {
	var le *LedgerError
	if errors.As(err, &le) {
		return le.Code, true
	}
	return 0, false
}

// IsFailure reports whether err carries the given wire code.
func IsFailure(err error, code FailureCode) bool {
	got, ok := FailureOf(err)
	return ok && got == code
}
