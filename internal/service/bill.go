package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pawelkapusta/splitdivision-bill-api/internal/domain"
	"github.com/pawelkapusta/splitdivision-bill-api/internal/repo"
)

// BillService implements the bill lifecycle: create-with-split, read, partial
// update, and cascade delete. The settlement base URL is injected at
// construction so code_qr derivation never reads ambient process state.
type BillService struct {
	bills          repo.BillRepo
	groups         repo.GroupRepo
	splitter       *SplitEngine
	settlementBase string
}

// NewBillService constructs a BillService.
// settlementBase is the URL prefix for generated settlement links, without a
// trailing slash (e.g. "https://splitdivision.example.com").
func NewBillService(bills repo.BillRepo, groups repo.GroupRepo, splitter *SplitEngine, settlementBase string) *BillService {
	return &BillService{
		bills:          bills,
		groups:         groups,
		splitter:       splitter,
		settlementBase: strings.TrimRight(settlementBase, "/"),
	}
}

// settlementLink derives the settlement reference for a bill id.
func (s *BillService) settlementLink(id uuid.UUID) string {
	return fmt.Sprintf("%s/bills/%s", s.settlementBase, id)
}

// Create validates the bill and its split, persists the bill with a freshly
// generated id and derived code_qr, then distributes the split.
//
// Validation runs before any write: a rejected split persists nothing. A
// split that fails mid-insert leaves the bill row and the participants
// created so far in place; the returned error is a *domain.PartialSplitError
// and the caller decides whether to delete the bill or retry the remainder.
func (s *BillService) Create(ctx context.Context, bill domain.Bill, split []domain.SplitEntry) (domain.Bill, []domain.Participant, error) {
	if strings.TrimSpace(bill.Name) == "" {
		return domain.Bill{}, nil, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if bill.OwnerID == uuid.Nil {
		return domain.Bill{}, nil, fmt.Errorf("%w: owner_id is required", domain.ErrValidation)
	}
	if err := s.splitter.Validate(bill.Debt, split); err != nil {
		return domain.Bill{}, nil, err
	}

	bill.ID = uuid.New()
	bill.CodeQR = s.settlementLink(bill.ID)
	if bill.DataCreated.IsZero() {
		bill.DataCreated = time.Now().UTC()
	}

	// Group membership is owned by the group service; an unknown group is
	// logged but does not block creation.
	if bill.GroupID != nil {
		exists, err := s.groups.Exists(ctx, *bill.GroupID)
		if err != nil {
			return domain.Bill{}, nil, fmt.Errorf("service.BillService.Create: %w", err)
		}
		if !exists {
			slog.Warn("bill references unknown group", "group_id", *bill.GroupID)
		}
	}

	created, err := s.bills.Create(ctx, bill)
	if err != nil {
		return domain.Bill{}, nil, fmt.Errorf("service.BillService.Create: %w", err)
	}

	participants, err := s.splitter.Distribute(ctx, created.ID, created.Debt, split)
	if err != nil {
		// The bill row stays; callers see exactly which entries were persisted.
		return created, participants, fmt.Errorf("service.BillService.Create: %w", err)
	}

	return created, participants, nil
}

// GetByID returns a single bill by ID.
// Returns domain.ErrNotFound if no bill with that ID exists.
func (s *BillService) GetByID(ctx context.Context, id uuid.UUID) (domain.Bill, error) {
	bill, err := s.bills.GetByID(ctx, id)
	if err != nil {
		return domain.Bill{}, fmt.Errorf("service.BillService.GetByID: %w", err)
	}
	return bill, nil
}

// List returns all bills.
// Always returns a non-nil slice so callers can safely range over it.
func (s *BillService) List(ctx context.Context) ([]domain.Bill, error) {
	bills, err := s.bills.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.BillService.List: %w", err)
	}
	if bills == nil {
		return []domain.Bill{}, nil
	}
	return bills, nil
}

// Update applies the non-nil fields of patch to an existing bill and persists
// the result. Fields absent from the patch keep their stored values.
//
// Update does not re-validate debt consistency against the bill's
// participants; the total and the split are independent after creation.
// Returns domain.ErrNotFound if the bill does not exist, domain.ErrValidation
// for an invalid patch.
func (s *BillService) Update(ctx context.Context, id uuid.UUID, patch domain.BillPatch) (domain.Bill, error) {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return domain.Bill{}, fmt.Errorf("%w: name must not be empty", domain.ErrValidation)
	}
	if patch.Debt != nil && patch.Debt.IsNegative() {
		return domain.Bill{}, fmt.Errorf("%w: debt must not be negative", domain.ErrValidation)
	}

	current, err := s.bills.GetByID(ctx, id)
	if err != nil {
		return domain.Bill{}, fmt.Errorf("service.BillService.Update: %w", err)
	}

	updated, err := s.bills.Update(ctx, patch.Apply(current))
	if err != nil {
		return domain.Bill{}, fmt.Errorf("service.BillService.Update: %w", err)
	}
	return updated, nil
}

// Delete removes a bill by ID; its participant rows cascade with it.
// Returns domain.ErrNotFound if no row was removed, including on repeat
// deletes of the same id.
func (s *BillService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.bills.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.BillService.Delete: %w", err)
	}
	return nil
}
