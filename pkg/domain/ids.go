// Package domain holds identifier primitives shared across modules.
//
// Identifiers are distinct named types so a ticket id can never be passed
// where an org id is expected. Parse functions enforce shape invariants at
// trust boundaries; constructors elsewhere may assume validity.
package domain

import (
	"strconv"
	"strings"

	dErrors "ticketledger/pkg/domain-errors"
)

// Principal is an opaque, already-authenticated caller or account identifier.
// The ledger never interprets its contents beyond equality checks.
type Principal string

func (p Principal) String() string {
	return string(p)
}

// IsNil reports whether the principal is unset.
func (p Principal) IsNil() bool {
	return p == ""
}

// ParsePrincipal validates a principal string from a trust boundary.
func ParsePrincipal(s string) (Principal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "principal is required")
	}
	return Principal(s), nil
}

// MaxEventIDBytes bounds event identifiers on the wire and in storage.
const MaxEventIDBytes = 32

// EventID identifies an event. Non-empty, at most 32 bytes.
type EventID string

func (e EventID) String() string {
	return string(e)
}

// Valid reports whether the identifier satisfies its shape invariant.
func (e EventID) Valid() bool {
	return len(e) > 0 && len(e) <= MaxEventIDBytes
}

// ParseEventID validates an event identifier from a trust boundary.
func ParseEventID(s string) (EventID, error) {
	e := EventID(s)
	if !e.Valid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "event id must be 1-32 bytes")
	}
	return e, nil
}

// TicketID is a monotonically assigned ticket identifier. IDs start at zero
// and are never reused.
type TicketID uint64

func (t TicketID) String() string {
	return strconv.FormatUint(uint64(t), 10)
}

// ParseTicketID validates a ticket identifier from a trust boundary.
func ParseTicketID(s string) (TicketID, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "ticket id must be a non-negative integer")
	}
	return TicketID(v), nil
}

// OrgID identifies an organization in the external registry.
type OrgID int64

func (o OrgID) String() string {
	return strconv.FormatInt(int64(o), 10)
}
