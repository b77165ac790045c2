// Package repo contains all database access logic for the Bill API.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here — only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pawelkapusta/splitdivision-bill-api/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// uniqueViolation is the Postgres error code for unique constraint violations.
const uniqueViolation = "23505"

// isUniqueViolation reports whether err is a Postgres unique-constraint error.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// BillRepo defines the persistence operations for Bills.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows services to be unit-tested with a mock.
type BillRepo interface {
	// Create inserts a new bill with the caller-supplied id and returns the
	// persisted record (with DB-generated created_at/updated_at populated).
	// Returns domain.ErrConflict if the id already exists.
	Create(ctx context.Context, bill domain.Bill) (domain.Bill, error)

	// GetByID retrieves a single bill by its UUID primary key.
	// Returns domain.ErrNotFound if no bill with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Bill, error)

	// List returns all bills ordered by data_created descending.
	List(ctx context.Context) ([]domain.Bill, error)

	// ListByGroup returns all bills referencing the given group id.
	ListByGroup(ctx context.Context, groupID uuid.UUID) ([]domain.Bill, error)

	// ListByIDs returns the bills whose ids appear in the given set.
	// Missing ids are skipped silently; the result may be shorter than ids.
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Bill, error)

	// Update overwrites the mutable fields of an existing bill and returns the
	// updated record. Returns domain.ErrNotFound if no bill with that ID exists.
	Update(ctx context.Context, bill domain.Bill) (domain.Bill, error)

	// Delete removes a bill by ID, cascading its participant rows.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgBillRepo is the Postgres implementation of BillRepo.
type pgBillRepo struct {
	db db
}

// NewBillRepo constructs a BillRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewBillRepo(db db) BillRepo {
	return &pgBillRepo{db: db}
}

const billColumns = `id, name, description, data_created, data_end, bill_image,
	currency_type, currency_code, debt, code_qr, owner_id, group_id,
	created_at, updated_at`

func (r *pgBillRepo) Create(ctx context.Context, bill domain.Bill) (domain.Bill, error) {
	const q = `
		INSERT INTO bills (id, name, description, data_created, data_end, bill_image,
		                   currency_type, currency_code, debt, code_qr, owner_id, group_id)
		VALUES (@id, @name, @description, @data_created, @data_end, @bill_image,
		        @currency_type, @currency_code, @debt, @code_qr, @owner_id, @group_id)
		RETURNING ` + billColumns

	args := pgx.NamedArgs{
		"id":            bill.ID,
		"name":          bill.Name,
		"description":   bill.Description,
		"data_created":  bill.DataCreated,
		"data_end":      bill.DataEnd, // nil becomes NULL
		"bill_image":    bill.BillImage,
		"currency_type": bill.CurrencyType,
		"currency_code": bill.CurrencyCode,
		"debt":          bill.Debt,
		"code_qr":       bill.CodeQR,
		"owner_id":      bill.OwnerID,
		"group_id":      bill.GroupID, // nil becomes NULL
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanBill(row)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Bill{}, fmt.Errorf("repo.BillRepo.Create: bill %s: %w", bill.ID, domain.ErrConflict)
		}
		return domain.Bill{}, fmt.Errorf("repo.BillRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgBillRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Bill, error) {
	const q = `SELECT ` + billColumns + ` FROM bills WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanBill(row)
	if err != nil {
		return domain.Bill{}, fmt.Errorf("repo.BillRepo.GetByID: %w", err)
	}
	return result, nil
}

// List returns all bills, most recently dated first.
func (r *pgBillRepo) List(ctx context.Context) ([]domain.Bill, error) {
	const q = `SELECT ` + billColumns + ` FROM bills ORDER BY data_created DESC`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.BillRepo.List: %w", err)
	}
	return collectBills(rows, "repo.BillRepo.List")
}

func (r *pgBillRepo) ListByGroup(ctx context.Context, groupID uuid.UUID) ([]domain.Bill, error) {
	const q = `SELECT ` + billColumns + ` FROM bills
		WHERE group_id = @group_id
		ORDER BY data_created DESC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"group_id": groupID})
	if err != nil {
		return nil, fmt.Errorf("repo.BillRepo.ListByGroup: %w", err)
	}
	return collectBills(rows, "repo.BillRepo.ListByGroup")
}

func (r *pgBillRepo) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Bill, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	const q = `SELECT ` + billColumns + ` FROM bills
		WHERE id = ANY(@ids)
		ORDER BY data_created DESC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"ids": ids})
	if err != nil {
		return nil, fmt.Errorf("repo.BillRepo.ListByIDs: %w", err)
	}
	return collectBills(rows, "repo.BillRepo.ListByIDs")
}

func (r *pgBillRepo) Update(ctx context.Context, bill domain.Bill) (domain.Bill, error) {
	const q = `
		UPDATE bills
		SET name          = @name,
		    description   = @description,
		    data_created  = @data_created,
		    data_end      = @data_end,
		    bill_image    = @bill_image,
		    currency_type = @currency_type,
		    currency_code = @currency_code,
		    debt          = @debt,
		    code_qr       = @code_qr,
		    updated_at    = now()
		WHERE id = @id
		RETURNING ` + billColumns

	args := pgx.NamedArgs{
		"id":            bill.ID,
		"name":          bill.Name,
		"description":   bill.Description,
		"data_created":  bill.DataCreated,
		"data_end":      bill.DataEnd,
		"bill_image":    bill.BillImage,
		"currency_type": bill.CurrencyType,
		"currency_code": bill.CurrencyCode,
		"debt":          bill.Debt,
		"code_qr":       bill.CodeQR,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanBill(row)
	if err != nil {
		return domain.Bill{}, fmt.Errorf("repo.BillRepo.Update: %w", err)
	}
	return result, nil
}

// Delete removes a bill by primary key. Participant rows go with it via the
// ON DELETE CASCADE on bills_users.bill_id.
func (r *pgBillRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM bills WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.BillRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.BillRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scanBill to be
// reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanBill maps a single database row into a domain.Bill.
// It handles the UUID conversions and the nullable data_end and group_id columns.
func scanBill(s scanner) (domain.Bill, error) {
	var (
		b       domain.Bill
		id      pgtype.UUID
		ownerID pgtype.UUID
		dataEnd pgtype.Timestamptz
		groupID pgtype.UUID
	)

	err := s.Scan(&id, &b.Name, &b.Description, &b.DataCreated, &dataEnd,
		&b.BillImage, &b.CurrencyType, &b.CurrencyCode, &b.Debt, &b.CodeQR,
		&ownerID, &groupID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Bill{}, domain.ErrNotFound
		}
		return domain.Bill{}, err
	}

	b.ID = uuid.UUID(id.Bytes)
	b.OwnerID = uuid.UUID(ownerID.Bytes)
	if dataEnd.Valid {
		end := dataEnd.Time
		b.DataEnd = &end
	}
	if groupID.Valid {
		gid := uuid.UUID(groupID.Bytes)
		b.GroupID = &gid
	}

	return b, nil
}

// collectBills drains rows into a slice, closing them when done.
func collectBills(rows pgx.Rows, op string) ([]domain.Bill, error) {
	defer rows.Close()

	var bills []domain.Bill
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		bills = append(bills, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}
	return bills, nil
}
