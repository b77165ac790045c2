package service_test

import (
	"context"

	"github.com/google/uuid"

	"github.com/pawelkapusta/splitdivision-bill-api/internal/domain"
	"github.com/pawelkapusta/splitdivision-bill-api/internal/repo"
)

// Hand-written test doubles for the repo interfaces. Each method is a
// function field — set only the ones your test needs. This is idiomatic Go:
// no mock generation library required for simple cases.

type mockBillRepo struct {
	create      func(ctx context.Context, bill domain.Bill) (domain.Bill, error)
	getByID     func(ctx context.Context, id uuid.UUID) (domain.Bill, error)
	list        func(ctx context.Context) ([]domain.Bill, error)
	listByGroup func(ctx context.Context, groupID uuid.UUID) ([]domain.Bill, error)
	listByIDs   func(ctx context.Context, ids []uuid.UUID) ([]domain.Bill, error)
	update      func(ctx context.Context, bill domain.Bill) (domain.Bill, error)
	delete      func(ctx context.Context, id uuid.UUID) error
}

func (m *mockBillRepo) Create(ctx context.Context, bill domain.Bill) (domain.Bill, error) {
	return m.create(ctx, bill)
}
func (m *mockBillRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Bill, error) {
	return m.getByID(ctx, id)
}
func (m *mockBillRepo) List(ctx context.Context) ([]domain.Bill, error) {
	return m.list(ctx)
}
func (m *mockBillRepo) ListByGroup(ctx context.Context, groupID uuid.UUID) ([]domain.Bill, error) {
	return m.listByGroup(ctx, groupID)
}
func (m *mockBillRepo) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Bill, error) {
	return m.listByIDs(ctx, ids)
}
func (m *mockBillRepo) Update(ctx context.Context, bill domain.Bill) (domain.Bill, error) {
	return m.update(ctx, bill)
}
func (m *mockBillRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ repo.BillRepo = (*mockBillRepo)(nil)

type mockParticipantRepo struct {
	create     func(ctx context.Context, p domain.Participant) (domain.Participant, error)
	listByBill func(ctx context.Context, billID uuid.UUID) ([]domain.Participant, error)
	listByUser func(ctx context.Context, userID uuid.UUID) ([]domain.Participant, error)
}

func (m *mockParticipantRepo) Create(ctx context.Context, p domain.Participant) (domain.Participant, error) {
	return m.create(ctx, p)
}
func (m *mockParticipantRepo) ListByBill(ctx context.Context, billID uuid.UUID) ([]domain.Participant, error) {
	return m.listByBill(ctx, billID)
}
func (m *mockParticipantRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Participant, error) {
	return m.listByUser(ctx, userID)
}

var _ repo.ParticipantRepo = (*mockParticipantRepo)(nil)

type mockUserRepo struct {
	listByIDs func(ctx context.Context, ids []uuid.UUID) ([]domain.User, error)
}

func (m *mockUserRepo) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.User, error) {
	return m.listByIDs(ctx, ids)
}

var _ repo.UserRepo = (*mockUserRepo)(nil)

type mockGroupRepo struct {
	exists func(ctx context.Context, id uuid.UUID) (bool, error)
}

func (m *mockGroupRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return m.exists(ctx, id)
}

var _ repo.GroupRepo = (*mockGroupRepo)(nil)

// echoParticipantRepo returns a participant repo that persists nothing and
// echoes whatever it receives — useful for tests that only care about
// validation and construction logic.
func echoParticipantRepo() *mockParticipantRepo {
	return &mockParticipantRepo{
		create: func(_ context.Context, p domain.Participant) (domain.Participant, error) {
			return p, nil
		},
	}
}

// echoBillRepo returns a bill repo that echoes creates and updates.
func echoBillRepo() *mockBillRepo {
	return &mockBillRepo{
		create: func(_ context.Context, b domain.Bill) (domain.Bill, error) { return b, nil },
		update: func(_ context.Context, b domain.Bill) (domain.Bill, error) { return b, nil },
	}
}

// noGroups returns a group repo that knows no groups.
func noGroups() *mockGroupRepo {
	return &mockGroupRepo{
		exists: func(_ context.Context, _ uuid.UUID) (bool, error) { return false, nil },
	}
}
