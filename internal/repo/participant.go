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

// ParticipantRepo defines the persistence operations for Participants
// (bills_users rows). Participants are only ever created as part of a bill's
// split and removed by the bill's cascade delete, so there is no Update or
// Delete here.
type ParticipantRepo interface {
	// Create inserts a new participant and returns the persisted record.
	// Returns domain.ErrConflict on a duplicate (bill_id, user_id) pair
	// or a duplicate id.
	Create(ctx context.Context, p domain.Participant) (domain.Participant, error)

	// ListByBill returns all participants of a bill.
	ListByBill(ctx context.Context, billID uuid.UUID) ([]domain.Participant, error)

	// ListByUser returns every participant row referencing the given user,
	// across all bills.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Participant, error)
}

// pgParticipantRepo is the Postgres implementation of ParticipantRepo.
type pgParticipantRepo struct {
	db db
}

// NewParticipantRepo constructs a ParticipantRepo backed by the provided db
// connection. In production pass *pgxpool.Pool; in tests pass a pgx.Tx for
// rollback isolation.
func NewParticipantRepo(db db) ParticipantRepo {
	return &pgParticipantRepo{db: db}
}

const participantColumns = `id, debt, is_regulated, bill_id, user_id`

func (r *pgParticipantRepo) Create(ctx context.Context, p domain.Participant) (domain.Participant, error) {
	const q = `
		INSERT INTO bills_users (id, debt, is_regulated, bill_id, user_id)
		VALUES (@id, @debt, @is_regulated, @bill_id, @user_id)
		RETURNING ` + participantColumns

	args := pgx.NamedArgs{
		"id":           p.ID,
		"debt":         p.Debt,
		"is_regulated": p.IsRegulated,
		"bill_id":      p.BillID,
		"user_id":      p.UserID,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanParticipant(row)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Participant{}, fmt.Errorf(
				"repo.ParticipantRepo.Create: bill %s user %s: %w", p.BillID, p.UserID, domain.ErrConflict)
		}
		return domain.Participant{}, fmt.Errorf("repo.ParticipantRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgParticipantRepo) ListByBill(ctx context.Context, billID uuid.UUID) ([]domain.Participant, error) {
	const q = `SELECT ` + participantColumns + ` FROM bills_users
		WHERE bill_id = @bill_id
		ORDER BY user_id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"bill_id": billID})
	if err != nil {
		return nil, fmt.Errorf("repo.ParticipantRepo.ListByBill: %w", err)
	}
	return collectParticipants(rows, "repo.ParticipantRepo.ListByBill")
}

func (r *pgParticipantRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Participant, error) {
	const q = `SELECT ` + participantColumns + ` FROM bills_users
		WHERE user_id = @user_id
		ORDER BY bill_id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("repo.ParticipantRepo.ListByUser: %w", err)
	}
	return collectParticipants(rows, "repo.ParticipantRepo.ListByUser")
}

// scanParticipant maps a single database row into a domain.Participant.
func scanParticipant(s scanner) (domain.Participant, error) {
	var (
		p      domain.Participant
		id     pgtype.UUID
		billID pgtype.UUID
		userID pgtype.UUID
	)

	err := s.Scan(&id, &p.Debt, &p.IsRegulated, &billID, &userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Participant{}, domain.ErrNotFound
		}
		return domain.Participant{}, err
	}

	p.ID = uuid.UUID(id.Bytes)
	p.BillID = uuid.UUID(billID.Bytes)
	p.UserID = uuid.UUID(userID.Bytes)
	return p, nil
}

func collectParticipants(rows pgx.Rows, op string) ([]domain.Participant, error) {
	defer rows.Close()

	var participants []domain.Participant
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}
	return participants, nil
}
