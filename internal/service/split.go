// Package service contains the business logic for the Bill API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here — services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pawelkapusta/splitdivision-bill-api/internal/domain"
	"github.com/pawelkapusta/splitdivision-bill-api/internal/repo"
)

// sumTolerance is the maximum accepted difference between a bill's total debt
// and the sum of its participant debts: one cent of any currency the service
// handles.
var sumTolerance = decimal.New(1, -2)

// SplitOptions configures the SplitEngine.
type SplitOptions struct {
	// EnforceSum rejects splits whose participant debts do not add up to the
	// bill's total within sumTolerance. Operators mirroring the lax legacy
	// behaviour, where total and per-user debts were set independently, can
	// disable it.
	EnforceSum bool
}

// DefaultSplitOptions enables sum enforcement.
func DefaultSplitOptions() SplitOptions {
	return SplitOptions{EnforceSum: true}
}

// SplitEngine validates a requested debt split and materialises it as
// participant rows. It is the one place in the service that performs a
// multi-row insert, and the insert is not transactional: a mid-batch failure
// leaves the already-created rows in place and is reported as a
// *domain.PartialSplitError so the caller can reconcile.
type SplitEngine struct {
	participants repo.ParticipantRepo
	opts         SplitOptions
}

// NewSplitEngine constructs a SplitEngine over the given participant store.
func NewSplitEngine(participants repo.ParticipantRepo, opts SplitOptions) *SplitEngine {
	return &SplitEngine{participants: participants, opts: opts}
}

// Validate checks a requested split without touching the store.
//   - total and every entry debt must be non-negative.
//   - user ids must be unique within the split (domain.ErrDuplicateParticipant).
//   - with EnforceSum, entry debts must sum to total within sumTolerance
//     (domain.ErrDebtMismatch).
func (e *SplitEngine) Validate(total decimal.Decimal, entries []domain.SplitEntry) error {
	if total.IsNegative() {
		return fmt.Errorf("%w: debt must not be negative", domain.ErrValidation)
	}
	if len(entries) == 0 {
		return fmt.Errorf("%w: at least one participant is required", domain.ErrValidation)
	}

	seen := make(map[uuid.UUID]struct{}, len(entries))
	sum := decimal.Zero
	for _, entry := range entries {
		if entry.UserID == uuid.Nil {
			return fmt.Errorf("%w: participant user id is required", domain.ErrValidation)
		}
		if entry.Debt.IsNegative() {
			return fmt.Errorf("%w: participant debt must not be negative", domain.ErrValidation)
		}
		if _, dup := seen[entry.UserID]; dup {
			return fmt.Errorf("%w: user %s", domain.ErrDuplicateParticipant, entry.UserID)
		}
		seen[entry.UserID] = struct{}{}
		sum = sum.Add(entry.Debt)
	}

	if e.opts.EnforceSum && sum.Sub(total).Abs().GreaterThan(sumTolerance) {
		return fmt.Errorf("%w: entries sum to %s, bill debt is %s", domain.ErrDebtMismatch, sum, total)
	}
	return nil
}

// Distribute validates the split and persists one participant row per entry,
// each with a fresh id and is_regulated = false. Rows are inserted in request
// order. If an insert fails, the rows created so far are left in place and a
// *domain.PartialSplitError names which entries succeeded and which did not.
func (e *SplitEngine) Distribute(ctx context.Context, billID uuid.UUID, total decimal.Decimal, entries []domain.SplitEntry) ([]domain.Participant, error) {
	if err := e.Validate(total, entries); err != nil {
		return nil, err
	}

	created := make([]domain.Participant, 0, len(entries))
	for i, entry := range entries {
		p := domain.Participant{
			ID:          uuid.New(),
			Debt:        entry.Debt,
			IsRegulated: false,
			BillID:      billID,
			UserID:      entry.UserID,
		}
		persisted, err := e.participants.Create(ctx, p)
		if err != nil {
			return created, &domain.PartialSplitError{
				BillID:  billID,
				Created: entries[:i],
				Failed:  entries[i:],
				Err:     err,
			}
		}
		created = append(created, persisted)
	}
	return created, nil
}
