package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pawelkapusta/splitdivision-bill-api/internal/domain"
	"github.com/pawelkapusta/splitdivision-bill-api/internal/repo"
)

// QueryService composes the cross-entity read paths: bills by user, bills by
// group, and a bill's participants paired with resolved user records.
// Zero matching rows is a successful empty result, never domain.ErrNotFound —
// not-found is reserved for primary-key lookups.
type QueryService struct {
	bills        repo.BillRepo
	participants repo.ParticipantRepo
	users        repo.UserRepo
}

// NewQueryService constructs a QueryService backed by the provided repos.
func NewQueryService(bills repo.BillRepo, participants repo.ParticipantRepo, users repo.UserRepo) *QueryService {
	return &QueryService{bills: bills, participants: participants, users: users}
}

// BillsForUser returns every bill in which the user holds a participant row.
// Always returns a non-nil slice so callers can safely range over it.
func (s *QueryService) BillsForUser(ctx context.Context, userID uuid.UUID) ([]domain.Bill, error) {
	participants, err := s.participants.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service.QueryService.BillsForUser: %w", err)
	}

	// Dedupe bill ids; a user appears at most once per bill, but the query
	// contract does not depend on that.
	seen := make(map[uuid.UUID]struct{}, len(participants))
	billIDs := make([]uuid.UUID, 0, len(participants))
	for _, p := range participants {
		if _, ok := seen[p.BillID]; ok {
			continue
		}
		seen[p.BillID] = struct{}{}
		billIDs = append(billIDs, p.BillID)
	}
	if len(billIDs) == 0 {
		return []domain.Bill{}, nil
	}

	bills, err := s.bills.ListByIDs(ctx, billIDs)
	if err != nil {
		return nil, fmt.Errorf("service.QueryService.BillsForUser: %w", err)
	}
	if bills == nil {
		return []domain.Bill{}, nil
	}
	return bills, nil
}

// BillsForGroup returns every bill referencing the given group id,
// independent of participant membership.
// Always returns a non-nil slice so callers can safely range over it.
func (s *QueryService) BillsForGroup(ctx context.Context, groupID uuid.UUID) ([]domain.Bill, error) {
	bills, err := s.bills.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("service.QueryService.BillsForGroup: %w", err)
	}
	if bills == nil {
		return []domain.Bill{}, nil
	}
	return bills, nil
}

// ParticipantsForBill returns a bill's participant rows together with the
// resolved display records of the users involved. Users that the user service
// no longer knows are simply absent from Users; the participant rows are
// returned regardless.
func (s *QueryService) ParticipantsForBill(ctx context.Context, billID uuid.UUID) (domain.BillParticipants, error) {
	participants, err := s.participants.ListByBill(ctx, billID)
	if err != nil {
		return domain.BillParticipants{}, fmt.Errorf("service.QueryService.ParticipantsForBill: %w", err)
	}

	userIDs := make([]uuid.UUID, len(participants))
	for i, p := range participants {
		userIDs[i] = p.UserID
	}

	var users []domain.User
	if len(userIDs) > 0 {
		users, err = s.users.ListByIDs(ctx, userIDs)
		if err != nil {
			return domain.BillParticipants{}, fmt.Errorf("service.QueryService.ParticipantsForBill: %w", err)
		}
	}

	result := domain.BillParticipants{
		Participants: participants,
		Users:        users,
	}
	if result.Participants == nil {
		result.Participants = []domain.Participant{}
	}
	if result.Users == nil {
		result.Users = []domain.User{}
	}
	return result, nil
}
