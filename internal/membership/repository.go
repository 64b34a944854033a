package membership

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/likelemba/likelemba/internal/tontine"
)

const uniqueViolation = "23505"

// Repository persists memberships. Create must be atomic with respect to the
// capacity and uniqueness invariants: two concurrent joins may not both
// succeed past the cap, and a (tontine, user) pair appears at most once.
type Repository interface {
	// Create inserts the membership, assigning position = count+1 when
	// m.Position is zero. Returns ErrAlreadyMember on a duplicate
	// (tontine, user) pair and ErrCapacityExceeded when the tontine is
	// full; the duplicate check takes precedence, so rejoining a full
	// tontine reports ErrAlreadyMember.
	Create(ctx context.Context, m Membership) (Membership, error)
	Get(ctx context.Context, id string) (Membership, error)
	FindByTontineUser(ctx context.Context, tontineID, userID string) (Membership, error)
	Delete(ctx context.Context, id string) error
	ListByTontine(ctx context.Context, tontineID string) ([]Membership, error)
	ListByUser(ctx context.Context, userID string) ([]Membership, error)
	CountByTontine(ctx context.Context, tontineID string) (int, error)
}

// PostgresRepository stores memberships in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a repository backed by PostgreSQL.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a membership inside a transaction that holds the tontine row
// locked while re-checking capacity. The unique index on (tontine_id, user_id)
// backs the uniqueness invariant.
func (r *PostgresRepository) Create(ctx context.Context, m Membership) (Membership, error) {
	membershipID, err := uuid.Parse(m.ID)
	if err != nil {
		return Membership{}, err
	}
	tontineID, err := uuid.Parse(m.TontineID)
	if err != nil {
		return Membership{}, err
	}
	userID, err := uuid.Parse(m.UserID)
	if err != nil {
		return Membership{}, err
	}

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Membership{}, err
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	var maxMembers int
	if err := tx.QueryRow(ctx, `SELECT max_members FROM tontines WHERE id = $1 FOR UPDATE`, tontineID).Scan(&maxMembers); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Membership{}, tontine.ErrNotFound
		}
		return Membership{}, err
	}

	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM memberships WHERE tontine_id = $1 AND user_id = $2)`,
		tontineID, userID).Scan(&exists); err != nil {
		return Membership{}, err
	}
	if exists {
		return Membership{}, ErrAlreadyMember
	}

	var count int
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM memberships WHERE tontine_id = $1`, tontineID).Scan(&count); err != nil {
		return Membership{}, err
	}
	if count >= maxMembers {
		return Membership{}, ErrCapacityExceeded
	}

	if m.Position == 0 {
		m.Position = count + 1
	}

	if _, err := tx.Exec(ctx, `INSERT INTO memberships (id, tontine_id, user_id, join_date, position)
        VALUES ($1, $2, $3, $4, $5)`,
		membershipID, tontineID, userID, m.JoinDate.UTC(), m.Position); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return Membership{}, ErrAlreadyMember
		}
		return Membership{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Membership{}, err
	}
	return m, nil
}

// Get fetches a membership by identifier.
func (r *PostgresRepository) Get(ctx context.Context, id string) (Membership, error) {
	membershipID, err := uuid.Parse(id)
	if err != nil {
		return Membership{}, ErrNotFound
	}
	row := r.db.QueryRow(ctx, `SELECT id, tontine_id, user_id, join_date, position
        FROM memberships WHERE id = $1`, membershipID)
	return scanMembership(row)
}

// FindByTontineUser fetches the membership for a (tontine, user) pair.
func (r *PostgresRepository) FindByTontineUser(ctx context.Context, tontineID, userID string) (Membership, error) {
	tID, err := uuid.Parse(tontineID)
	if err != nil {
		return Membership{}, ErrNotFound
	}
	uID, err := uuid.Parse(userID)
	if err != nil {
		return Membership{}, ErrNotFound
	}
	row := r.db.QueryRow(ctx, `SELECT id, tontine_id, user_id, join_date, position
        FROM memberships WHERE tontine_id = $1 AND user_id = $2`, tID, uID)
	return scanMembership(row)
}

// Delete removes a membership. Positions of remaining members are not compacted.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	membershipID, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}
	cmd, err := r.db.Exec(ctx, `DELETE FROM memberships WHERE id = $1`, membershipID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByTontine returns the roster of a tontine ordered by position.
func (r *PostgresRepository) ListByTontine(ctx context.Context, tontineID string) ([]Membership, error) {
	id, err := uuid.Parse(tontineID)
	if err != nil {
		return nil, nil
	}
	return r.list(ctx, `SELECT id, tontine_id, user_id, join_date, position
        FROM memberships WHERE tontine_id = $1 ORDER BY position`, id)
}

// ListByUser returns all memberships held by a user.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]Membership, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, nil
	}
	return r.list(ctx, `SELECT id, tontine_id, user_id, join_date, position
        FROM memberships WHERE user_id = $1 ORDER BY join_date`, id)
}

// CountByTontine counts the roster from the same rows the listings read.
func (r *PostgresRepository) CountByTontine(ctx context.Context, tontineID string) (int, error) {
	id, err := uuid.Parse(tontineID)
	if err != nil {
		return 0, nil
	}
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM memberships WHERE tontine_id = $1`, id).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]Membership, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var memberships []Membership
	for rows.Next() {
		m, err := scanMembership(rows)
		if err != nil {
			return nil, err
		}
		memberships = append(memberships, m)
	}
	return memberships, rows.Err()
}

func scanMembership(row pgx.Row) (Membership, error) {
	var (
		id        uuid.UUID
		tontineID uuid.UUID
		userID    uuid.UUID
		joinDate  time.Time
		m         Membership
	)
	if err := row.Scan(&id, &tontineID, &userID, &joinDate, &m.Position); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Membership{}, ErrNotFound
		}
		return Membership{}, err
	}
	m.ID = id.String()
	m.TontineID = tontineID.String()
	m.UserID = userID.String()
	m.JoinDate = joinDate.UTC()
	return m, nil
}
