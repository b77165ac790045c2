package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. negative debt, missing required field).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrConflict is returned when a write violates a uniqueness constraint:
// a duplicate bill id, or a duplicate (bill_id, user_id) participant pair.
// Handlers should map this to HTTP 409 Conflict.
var ErrConflict = errors.New("constraint violation")

// ErrDuplicateParticipant is returned by the split engine when the requested
// split names the same user more than once. It matches ErrValidation under
// errors.Is, so handlers that only care about the category still work.
var ErrDuplicateParticipant = fmt.Errorf("%w: duplicate participant", ErrValidation)

// ErrDebtMismatch is returned by the split engine when sum enforcement is on
// and the participant debts do not add up to the bill's total debt.
// It matches ErrValidation under errors.Is.
var ErrDebtMismatch = fmt.Errorf("%w: participant debts do not sum to bill debt", ErrValidation)

// PartialSplitError reports a split whose participant inserts failed partway
// through. Created rows are left in place; the caller decides whether to
// delete the bill or reconcile the missing entries.
type PartialSplitError struct {
	BillID uuid.UUID

	// Created holds the entries whose participant rows were persisted
	// before the failure, in request order.
	Created []SplitEntry

	// Failed holds the entry that failed and every entry after it, which
	// were never attempted.
	Failed []SplitEntry

	// Err is the underlying store error from the failing insert.
	Err error
}

func (e *PartialSplitError) Error() string {
	return fmt.Sprintf("partial split of bill %s: %d of %d participants created: %v",
		e.BillID, len(e.Created), len(e.Created)+len(e.Failed), e.Err)
}

func (e *PartialSplitError) Unwrap() error { return e.Err }
