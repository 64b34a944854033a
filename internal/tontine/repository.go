package tontine

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists tontine groups.
type Repository interface {
	Create(ctx context.Context, t Tontine) error
	Get(ctx context.Context, id string) (Tontine, error)
	Update(ctx context.Context, t Tontine) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]Tontine, error)
	ListByTreasurer(ctx context.Context, treasurerID string) ([]Tontine, error)
	ListByIDs(ctx context.Context, ids []string) ([]Tontine, error)
}

// PostgresRepository stores tontines in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a repository backed by PostgreSQL.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const tontineColumns = `id, name, description, contribution_amount, frequency, rotation_mode, treasurer_id, max_members, start_date, created_at`

// Create inserts a tontine record.
func (r *PostgresRepository) Create(ctx context.Context, t Tontine) error {
	tontineID, err := uuid.Parse(t.ID)
	if err != nil {
		return err
	}
	treasurerID, err := uuid.Parse(t.TreasurerID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO tontines
        (id, name, description, contribution_amount, frequency, rotation_mode, treasurer_id, max_members, start_date, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		tontineID, t.Name, t.Description, t.ContributionAmount, t.Frequency, t.RotationMode,
		treasurerID, t.MaxMembers, t.StartDate.UTC(), t.CreatedAt.UTC())
	return err
}

// Get fetches a tontine by identifier.
func (r *PostgresRepository) Get(ctx context.Context, id string) (Tontine, error) {
	tontineID, err := uuid.Parse(id)
	if err != nil {
		return Tontine{}, ErrNotFound
	}
	row := r.db.QueryRow(ctx, `SELECT `+tontineColumns+` FROM tontines WHERE id = $1`, tontineID)
	t, err := scanTontine(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Tontine{}, ErrNotFound
		}
		return Tontine{}, err
	}
	return t, nil
}

// Update replaces all caller-editable fields.
func (r *PostgresRepository) Update(ctx context.Context, t Tontine) error {
	tontineID, err := uuid.Parse(t.ID)
	if err != nil {
		return ErrNotFound
	}
	cmd, err := r.db.Exec(ctx, `UPDATE tontines SET
        name = $1, description = $2, contribution_amount = $3, frequency = $4,
        rotation_mode = $5, max_members = $6, start_date = $7
        WHERE id = $8`,
		t.Name, t.Description, t.ContributionAmount, t.Frequency,
		t.RotationMode, t.MaxMembers, t.StartDate.UTC(), tontineID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a tontine. Memberships, payments and turns cascade at the store.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tontineID, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}
	cmd, err := r.db.Exec(ctx, `DELETE FROM tontines WHERE id = $1`, tontineID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns all tontines ordered by creation time.
func (r *PostgresRepository) List(ctx context.Context) ([]Tontine, error) {
	return r.list(ctx, `SELECT `+tontineColumns+` FROM tontines ORDER BY created_at`)
}

// ListByTreasurer returns tontines created by the given treasurer.
func (r *PostgresRepository) ListByTreasurer(ctx context.Context, treasurerID string) ([]Tontine, error) {
	id, err := uuid.Parse(treasurerID)
	if err != nil {
		return nil, nil
	}
	return r.list(ctx, `SELECT `+tontineColumns+` FROM tontines WHERE treasurer_id = $1 ORDER BY created_at`, id)
}

// ListByIDs returns tontines matching any of the given identifiers.
func (r *PostgresRepository) ListByIDs(ctx context.Context, ids []string) ([]Tontine, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	parsed := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		tontineID, err := uuid.Parse(id)
		if err != nil {
			continue
		}
		parsed = append(parsed, tontineID)
	}
	return r.list(ctx, `SELECT `+tontineColumns+` FROM tontines WHERE id = ANY($1) ORDER BY created_at`, parsed)
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]Tontine, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tontines []Tontine
	for rows.Next() {
		t, err := scanTontine(rows)
		if err != nil {
			return nil, err
		}
		tontines = append(tontines, t)
	}
	return tontines, rows.Err()
}

func scanTontine(row pgx.Row) (Tontine, error) {
	var (
		id          uuid.UUID
		treasurerID uuid.UUID
		startDate   time.Time
		createdAt   time.Time
		t           Tontine
	)
	if err := row.Scan(&id, &t.Name, &t.Description, &t.ContributionAmount, &t.Frequency,
		&t.RotationMode, &treasurerID, &t.MaxMembers, &startDate, &createdAt); err != nil {
		return Tontine{}, err
	}
	t.ID = id.String()
	t.TreasurerID = treasurerID.String()
	t.StartDate = startDate.UTC()
	t.CreatedAt = createdAt.UTC()
	return t, nil
}
