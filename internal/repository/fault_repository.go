package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vcsystems/incident-service/internal/domain"
)

// FaultRepository defines persistence access for the fault dictionary.
type FaultRepository interface {
	Create(ctx context.Context, fault *domain.FaultEntry) error
	GetByID(ctx context.Context, id string) (*domain.FaultEntry, error)
	GetByCode(ctx context.Context, code string) (*domain.FaultEntry, error)
	ListAll(ctx context.Context) ([]domain.FaultEntry, error)
}

type faultRepository struct {
	pool *pgxpool.Pool
}

// NewFaultRepository returns a Postgres-backed implementation.
func NewFaultRepository(pool *pgxpool.Pool) FaultRepository {
	return &faultRepository{pool: pool}
}

func (r *faultRepository) Create(ctx context.Context, fault *domain.FaultEntry) error {
	const query = `
        INSERT INTO faults (code, description)
        VALUES ($1, $2)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		fault.Code,
		fault.Description,
	).Scan(&fault.ID, &fault.CreatedAt, &fault.UpdatedAt)
}

func (r *faultRepository) GetByID(ctx context.Context, id string) (*domain.FaultEntry, error) {
	const query = `
        SELECT id, code, description, created_at, updated_at
        FROM faults WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *faultRepository) GetByCode(ctx context.Context, code string) (*domain.FaultEntry, error) {
	const query = `
        SELECT id, code, description, created_at, updated_at
        FROM faults WHERE code=$1`
	return r.fetchSingle(ctx, query, code)
}

func (r *faultRepository) ListAll(ctx context.Context) ([]domain.FaultEntry, error) {
	const query = `
        SELECT id, code, description, created_at, updated_at
        FROM faults ORDER BY code`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.FaultEntry
	for rows.Next() {
		var fault domain.FaultEntry
		if err := rows.Scan(
			&fault.ID,
			&fault.Code,
			&fault.Description,
			&fault.CreatedAt,
			&fault.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, fault)
	}
	return result, rows.Err()
}

func (r *faultRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.FaultEntry, error) {
	var fault domain.FaultEntry
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&fault.ID,
		&fault.Code,
		&fault.Description,
		&fault.CreatedAt,
		&fault.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &fault, nil
}
