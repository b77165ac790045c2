package repo_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawelkapusta/splitdivision-bill-api/internal/repo"
)

// seedUser inserts a row into the users projection table directly; the repo
// itself is read-only, so tests write fixtures with raw SQL.
func seedUser(t *testing.T, tx pgx.Tx, username string) uuid.UUID {
	t.Helper()
	id := uuid.New()
	_, err := tx.Exec(context.Background(), `
		INSERT INTO users (id, first_name, last_name, username, email, avatar_image)
		VALUES (@id, @first, @last, @username, @email, '')`,
		pgx.NamedArgs{
			"id":       id,
			"first":    "Test",
			"last":     "User",
			"username": username,
			"email":    username + "@example.com",
		})
	require.NoError(t, err)
	return id
}

func TestUserRepo_ListByIDs(t *testing.T) {
	tx := newTestTx(t)
	users := repo.NewUserRepo(tx)
	ctx := context.Background()

	u1 := seedUser(t, tx, "anna")
	u2 := seedUser(t, tx, "bartek")
	seedUser(t, tx, "celina") // not requested

	got, err := users.ListByIDs(ctx, []uuid.UUID{u1, u2})

	require.NoError(t, err)
	require.Len(t, got, 2)

	byID := map[uuid.UUID]string{}
	for _, u := range got {
		byID[u.ID] = u.Username
	}
	assert.Equal(t, "anna", byID[u1])
	assert.Equal(t, "bartek", byID[u2])
}

func TestUserRepo_ListByIDs_UnknownIDsSkipped(t *testing.T) {
	tx := newTestTx(t)
	users := repo.NewUserRepo(tx)

	u1 := seedUser(t, tx, "dorota")

	got, err := users.ListByIDs(context.Background(), []uuid.UUID{u1, uuid.New()})

	require.NoError(t, err)
	require.Len(t, got, 1, "unknown ids are skipped, not errors")
	assert.Equal(t, u1, got[0].ID)
}

func TestUserRepo_ListByIDs_EmptySet(t *testing.T) {
	tx := newTestTx(t)
	users := repo.NewUserRepo(tx)

	got, err := users.ListByIDs(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestGroupRepo_Exists(t *testing.T) {
	tx := newTestTx(t)
	groups := repo.NewGroupRepo(tx)
	ctx := context.Background()

	id := uuid.New()
	_, err := tx.Exec(ctx, `
		INSERT INTO groups (id, name, description) VALUES (@id, 'Trip to Gdansk', '')`,
		pgx.NamedArgs{"id": id})
	require.NoError(t, err)

	exists, err := groups.Exists(ctx, id)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = groups.Exists(ctx, uuid.New())
	require.NoError(t, err)
	assert.False(t, exists)
}
