package repo_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawelkapusta/splitdivision-bill-api/internal/domain"
	"github.com/pawelkapusta/splitdivision-bill-api/internal/repo"
)

// participantFixture returns a participant attached to the given bill.
func participantFixture(billID uuid.UUID) domain.Participant {
	return domain.Participant{
		ID:     uuid.New(),
		Debt:   decimal.RequireFromString("60.25"),
		BillID: billID,
		UserID: uuid.New(),
	}
}

func TestParticipantRepo_Create(t *testing.T) {
	tx := newTestTx(t)
	bills := repo.NewBillRepo(tx)
	participants := repo.NewParticipantRepo(tx)
	ctx := context.Background()

	bill, err := bills.Create(ctx, billFixture())
	require.NoError(t, err)

	input := participantFixture(bill.ID)
	got, err := participants.Create(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, input.ID, got.ID)
	assert.True(t, got.Debt.Equal(input.Debt))
	assert.False(t, got.IsRegulated, "new participants start unsettled")
	assert.Equal(t, bill.ID, got.BillID)
	assert.Equal(t, input.UserID, got.UserID)
}

func TestParticipantRepo_Create_DuplicatePair(t *testing.T) {
	tx := newTestTx(t)
	bills := repo.NewBillRepo(tx)
	participants := repo.NewParticipantRepo(tx)
	ctx := context.Background()

	bill, err := bills.Create(ctx, billFixture())
	require.NoError(t, err)

	first := participantFixture(bill.ID)
	_, err = participants.Create(ctx, first)
	require.NoError(t, err)

	// Same (bill_id, user_id) pair under a fresh row id.
	dup := participantFixture(bill.ID)
	dup.UserID = first.UserID

	_, err = participants.Create(ctx, dup)

	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestParticipantRepo_Create_SameUserDifferentBills(t *testing.T) {
	tx := newTestTx(t)
	bills := repo.NewBillRepo(tx)
	participants := repo.NewParticipantRepo(tx)
	ctx := context.Background()

	b1, err := bills.Create(ctx, billFixture())
	require.NoError(t, err)
	b2, err := bills.Create(ctx, billFixture())
	require.NoError(t, err)

	userID := uuid.New()

	p1 := participantFixture(b1.ID)
	p1.UserID = userID
	p2 := participantFixture(b2.ID)
	p2.UserID = userID

	_, err = participants.Create(ctx, p1)
	require.NoError(t, err)
	_, err = participants.Create(ctx, p2)
	require.NoError(t, err, "uniqueness is per bill, not global")
}

func TestParticipantRepo_ListByBill(t *testing.T) {
	tx := newTestTx(t)
	bills := repo.NewBillRepo(tx)
	participants := repo.NewParticipantRepo(tx)
	ctx := context.Background()

	bill, err := bills.Create(ctx, billFixture())
	require.NoError(t, err)
	other, err := bills.Create(ctx, billFixture())
	require.NoError(t, err)

	_, err = participants.Create(ctx, participantFixture(bill.ID))
	require.NoError(t, err)
	_, err = participants.Create(ctx, participantFixture(bill.ID))
	require.NoError(t, err)
	_, err = participants.Create(ctx, participantFixture(other.ID))
	require.NoError(t, err)

	got, err := participants.ListByBill(ctx, bill.ID)

	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, p := range got {
		assert.Equal(t, bill.ID, p.BillID)
	}
}

func TestParticipantRepo_ListByBill_Empty(t *testing.T) {
	tx := newTestTx(t)
	participants := repo.NewParticipantRepo(tx)

	got, err := participants.ListByBill(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.Empty(t, got, "no rows is success, not an error")
}

func TestParticipantRepo_ListByUser(t *testing.T) {
	tx := newTestTx(t)
	bills := repo.NewBillRepo(tx)
	participants := repo.NewParticipantRepo(tx)
	ctx := context.Background()

	b1, err := bills.Create(ctx, billFixture())
	require.NoError(t, err)
	b2, err := bills.Create(ctx, billFixture())
	require.NoError(t, err)

	userID := uuid.New()
	for _, billID := range []uuid.UUID{b1.ID, b2.ID} {
		p := participantFixture(billID)
		p.UserID = userID
		_, err = participants.Create(ctx, p)
		require.NoError(t, err)
	}
	// A row for an unrelated user must not appear.
	_, err = participants.Create(ctx, participantFixture(b1.ID))
	require.NoError(t, err)

	got, err := participants.ListByUser(ctx, userID)

	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, p := range got {
		assert.Equal(t, userID, p.UserID)
	}
}

func TestParticipantRepo_CascadeDeleteWithBill(t *testing.T) {
	tx := newTestTx(t)
	bills := repo.NewBillRepo(tx)
	participants := repo.NewParticipantRepo(tx)
	ctx := context.Background()

	bill, err := bills.Create(ctx, billFixture())
	require.NoError(t, err)

	_, err = participants.Create(ctx, participantFixture(bill.ID))
	require.NoError(t, err)
	_, err = participants.Create(ctx, participantFixture(bill.ID))
	require.NoError(t, err)

	require.NoError(t, bills.Delete(ctx, bill.ID))

	got, err := participants.ListByBill(ctx, bill.ID)
	require.NoError(t, err)
	assert.Empty(t, got, "participant rows must cascade with their bill")
}
