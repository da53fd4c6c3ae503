package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vcsystems/incident-service/internal/domain"
)

// SparePartRepository defines persistence access for spare-part requests.
type SparePartRepository interface {
	Create(ctx context.Context, request *domain.SparePartRequest) error
	Update(ctx context.Context, request *domain.SparePartRequest) error
	GetByID(ctx context.Context, id string) (*domain.SparePartRequest, error)
	ListAll(ctx context.Context) ([]domain.SparePartRequest, error)
	ListByStatus(ctx context.Context, status domain.SparePartStatus) ([]domain.SparePartRequest, error)
}

type sparePartRepository struct {
	pool *pgxpool.Pool
}

// NewSparePartRepository returns a Postgres-backed implementation.
func NewSparePartRepository(pool *pgxpool.Pool) SparePartRepository {
	return &sparePartRepository{pool: pool}
}

func (r *sparePartRepository) Create(ctx context.Context, request *domain.SparePartRequest) error {
	const query = `
        INSERT INTO spare_part_requests (incident_id, technician_id, part, quantity, justification, status)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		request.IncidentID,
		request.TechnicianID,
		request.Part,
		request.Quantity,
		request.Justification,
		request.Status,
	).Scan(&request.ID, &request.CreatedAt, &request.UpdatedAt)
}

func (r *sparePartRepository) Update(ctx context.Context, request *domain.SparePartRequest) error {
	const query = `
        UPDATE spare_part_requests SET part=$1, quantity=$2, justification=$3, status=$4, updated_at=NOW()
        WHERE id=$5`
	cmd, err := r.pool.Exec(ctx, query,
		request.Part,
		request.Quantity,
		request.Justification,
		request.Status,
		request.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *sparePartRepository) GetByID(ctx context.Context, id string) (*domain.SparePartRequest, error) {
	const query = `
        SELECT id, incident_id, technician_id, part, quantity, justification, status, created_at, updated_at
        FROM spare_part_requests WHERE id=$1`
	var request domain.SparePartRequest
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&request.ID,
		&request.IncidentID,
		&request.TechnicianID,
		&request.Part,
		&request.Quantity,
		&request.Justification,
		&request.Status,
		&request.CreatedAt,
		&request.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *sparePartRepository) ListAll(ctx context.Context) ([]domain.SparePartRequest, error) {
	const query = `
        SELECT id, incident_id, technician_id, part, quantity, justification, status, created_at, updated_at
        FROM spare_part_requests ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSparePartRequests(rows)
}

func (r *sparePartRepository) ListByStatus(ctx context.Context, status domain.SparePartStatus) ([]domain.SparePartRequest, error) {
	const query = `
        SELECT id, incident_id, technician_id, part, quantity, justification, status, created_at, updated_at
        FROM spare_part_requests WHERE status=$1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSparePartRequests(rows)
}

func scanSparePartRequests(rows pgx.Rows) ([]domain.SparePartRequest, error) {
	var result []domain.SparePartRequest
	for rows.Next() {
		var request domain.SparePartRequest
		if err := rows.Scan(
			&request.ID,
			&request.IncidentID,
			&request.TechnicianID,
			&request.Part,
			&request.Quantity,
			&request.Justification,
			&request.Status,
			&request.CreatedAt,
			&request.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, request)
	}
	return result, rows.Err()
}
