package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pawelkapusta/splitdivision-bill-api/internal/domain"
)

// UserRepo resolves user ids to display records. The users table is a
// projection maintained by the user service — this repo is strictly read-only.
type UserRepo interface {
	// ListByIDs returns the users whose ids appear in the given set,
	// ordered by id. Unknown ids are skipped silently.
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.User, error)
}

// GroupRepo answers group existence checks. The groups table is a projection
// maintained by the group service — this repo is strictly read-only.
type GroupRepo interface {
	// Exists reports whether a group with the given id is known.
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type pgUserRepo struct {
	db db
}

// NewUserRepo constructs a read-only UserRepo backed by the provided db connection.
func NewUserRepo(db db) UserRepo {
	return &pgUserRepo{db: db}
}

func (r *pgUserRepo) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	const q = `
		SELECT id, first_name, last_name, username, email, avatar_image
		FROM users
		WHERE id = ANY(@ids)
		ORDER BY id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"ids": ids})
	if err != nil {
		return nil, fmt.Errorf("repo.UserRepo.ListByIDs: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var (
			u  domain.User
			id pgtype.UUID
		)
		if err := rows.Scan(&id, &u.FirstName, &u.LastName, &u.Username, &u.Email, &u.AvatarImage); err != nil {
			return nil, fmt.Errorf("repo.UserRepo.ListByIDs: scan: %w", err)
		}
		u.ID = uuid.UUID(id.Bytes)
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.UserRepo.ListByIDs: rows: %w", err)
	}
	return users, nil
}

type pgGroupRepo struct {
	db db
}

// NewGroupRepo constructs a read-only GroupRepo backed by the provided db connection.
func NewGroupRepo(db db) GroupRepo {
	return &pgGroupRepo{db: db}
}

func (r *pgGroupRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM groups WHERE id = @id)`

	var exists bool
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}).Scan(&exists)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("repo.GroupRepo.Exists: %w", err)
	}
	return exists, nil
}
