package payout

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists payout turns.
type Repository interface {
	Create(ctx context.Context, t Turn) error
	ListByTontine(ctx context.Context, tontineID string) ([]Turn, error)
	SumByTontine(ctx context.Context, tontineID string) (int64, error)
	CountByTontine(ctx context.Context, tontineID string) (int, error)
}

// PostgresRepository stores turns in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a repository backed by PostgreSQL.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create appends a turn record.
func (r *PostgresRepository) Create(ctx context.Context, t Turn) error {
	turnID, err := uuid.Parse(t.ID)
	if err != nil {
		return err
	}
	tontineID, err := uuid.Parse(t.TontineID)
	if err != nil {
		return err
	}
	userID, err := uuid.Parse(t.UserID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO turns (id, tontine_id, user_id, period, amount_received, received_at)
        VALUES ($1, $2, $3, $4, $5, $6)`,
		turnID, tontineID, userID, t.Period, t.AmountReceived, t.ReceivedAt.UTC())
	return err
}

// ListByTontine returns all turns recorded for a tontine.
func (r *PostgresRepository) ListByTontine(ctx context.Context, tontineID string) ([]Turn, error) {
	id, err := uuid.Parse(tontineID)
	if err != nil {
		return nil, nil
	}
	rows, err := r.db.Query(ctx, `SELECT id, tontine_id, user_id, period, amount_received, received_at
        FROM turns WHERE tontine_id = $1 ORDER BY received_at`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var turns []Turn
	for rows.Next() {
		t, err := scanTurn(rows)
		if err != nil {
			return nil, err
		}
		turns = append(turns, t)
	}
	return turns, rows.Err()
}

// SumByTontine totals the amounts distributed for a tontine, 0 when none exist.
func (r *PostgresRepository) SumByTontine(ctx context.Context, tontineID string) (int64, error) {
	id, err := uuid.Parse(tontineID)
	if err != nil {
		return 0, nil
	}
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COALESCE(SUM(amount_received), 0) FROM turns WHERE tontine_id = $1`, id).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// CountByTontine counts the turns completed for a tontine.
func (r *PostgresRepository) CountByTontine(ctx context.Context, tontineID string) (int, error) {
	id, err := uuid.Parse(tontineID)
	if err != nil {
		return 0, nil
	}
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM turns WHERE tontine_id = $1`, id).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func scanTurn(row pgx.Row) (Turn, error) {
	var (
		id         uuid.UUID
		tontineID  uuid.UUID
		userID     uuid.UUID
		receivedAt time.Time
		t          Turn
	)
	if err := row.Scan(&id, &tontineID, &userID, &t.Period, &t.AmountReceived, &receivedAt); err != nil {
		return Turn{}, err
	}
	t.ID = id.String()
	t.TontineID = tontineID.String()
	t.UserID = userID.String()
	t.ReceivedAt = receivedAt.UTC()
	return t, nil
}
