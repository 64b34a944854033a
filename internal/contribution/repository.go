package contribution

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists payments.
type Repository interface {
	Create(ctx context.Context, p Payment) error
	ListByTontine(ctx context.Context, tontineID string) ([]Payment, error)
	ListByUser(ctx context.Context, userID string) ([]Payment, error)
	SumByTontine(ctx context.Context, tontineID string) (int64, error)
}

// PostgresRepository stores payments in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a repository backed by PostgreSQL.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create appends a payment record.
func (r *PostgresRepository) Create(ctx context.Context, p Payment) error {
	paymentID, err := uuid.Parse(p.ID)
	if err != nil {
		return err
	}
	tontineID, err := uuid.Parse(p.TontineID)
	if err != nil {
		return err
	}
	userID, err := uuid.Parse(p.UserID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO payments (id, tontine_id, user_id, amount, period, paid_at)
        VALUES ($1, $2, $3, $4, $5, $6)`,
		paymentID, tontineID, userID, p.Amount, p.Period, p.PaidAt.UTC())
	return err
}

// ListByTontine returns all payments recorded for a tontine.
func (r *PostgresRepository) ListByTontine(ctx context.Context, tontineID string) ([]Payment, error) {
	id, err := uuid.Parse(tontineID)
	if err != nil {
		return nil, nil
	}
	return r.list(ctx, `SELECT id, tontine_id, user_id, amount, period, paid_at
        FROM payments WHERE tontine_id = $1 ORDER BY paid_at`, id)
}

// ListByUser returns all payments made by a user.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]Payment, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, nil
	}
	return r.list(ctx, `SELECT id, tontine_id, user_id, amount, period, paid_at
        FROM payments WHERE user_id = $1 ORDER BY paid_at`, id)
}

// SumByTontine totals all payment amounts for a tontine, 0 when none exist.
func (r *PostgresRepository) SumByTontine(ctx context.Context, tontineID string) (int64, error) {
	id, err := uuid.Parse(tontineID)
	if err != nil {
		return 0, nil
	}
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COALESCE(SUM(amount), 0) FROM payments WHERE tontine_id = $1`, id).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]Payment, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func scanPayment(row pgx.Row) (Payment, error) {
	var (
		id        uuid.UUID
		tontineID uuid.UUID
		userID    uuid.UUID
		paidAt    time.Time
		p         Payment
	)
	if err := row.Scan(&id, &tontineID, &userID, &p.Amount, &p.Period, &paidAt); err != nil {
		return Payment{}, err
	}
	p.ID = id.String()
	p.TontineID = tontineID.String()
	p.UserID = userID.String()
	p.PaidAt = paidAt.UTC()
	return p, nil
}
