package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vcsystems/incident-service/internal/domain"
)

// IncidentRepository is the keyed transactional store for incident records.
// Missing rows surface as pgx.ErrNoRows.
type IncidentRepository interface {
	Create(ctx context.Context, incident *domain.Incident) error
	Update(ctx context.Context, incident *domain.Incident) error
	GetByID(ctx context.Context, id string) (*domain.Incident, error)
	ListAll(ctx context.Context) ([]domain.Incident, error)
	ListByStatus(ctx context.Context, status domain.IncidentStatus) ([]domain.Incident, error)
	ListByTechnician(ctx context.Context, technicianID string) ([]domain.Incident, error)
}

type incidentRepository struct {
	pool *pgxpool.Pool
}

// NewIncidentRepository returns a Postgres-backed implementation.
func NewIncidentRepository(pool *pgxpool.Pool) IncidentRepository {
	return &incidentRepository{pool: pool}
}

func (r *incidentRepository) Create(ctx context.Context, incident *domain.Incident) error {
	const query = `
        INSERT INTO incidents (client_id, technician_id, fault_id, description, status)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		incident.ClientID,
		incident.TechnicianID,
		incident.FaultID,
		incident.Description,
		incident.Status,
	).Scan(&incident.ID, &incident.CreatedAt, &incident.UpdatedAt)
}

func (r *incidentRepository) Update(ctx context.Context, incident *domain.Incident) error {
	const query = `
        UPDATE incidents SET technician_id=$1, fault_id=$2, description=$3, status=$4, updated_at=NOW()
        WHERE id=$5
        RETURNING updated_at`
	if err := r.pool.QueryRow(ctx, query,
		incident.TechnicianID,
		incident.FaultID,
		incident.Description,
		incident.Status,
		incident.ID,
	).Scan(&incident.UpdatedAt); err != nil {
		return err
	}
	return nil
}

func (r *incidentRepository) GetByID(ctx context.Context, id string) (*domain.Incident, error) {
	const query = `
        SELECT id, client_id, technician_id, fault_id, description, status, created_at, updated_at
        FROM incidents WHERE id=$1`
	var incident domain.Incident
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&incident.ID,
		&incident.ClientID,
		&incident.TechnicianID,
		&incident.FaultID,
		&incident.Description,
		&incident.Status,
		&incident.CreatedAt,
		&incident.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &incident, nil
}

func (r *incidentRepository) ListAll(ctx context.Context) ([]domain.Incident, error) {
	const query = `
        SELECT id, client_id, technician_id, fault_id, description, status, created_at, updated_at
        FROM incidents ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanIncidents(rows)
}

func (r *incidentRepository) ListByStatus(ctx context.Context, status domain.IncidentStatus) ([]domain.Incident, error) {
	const query = `
        SELECT id, client_id, technician_id, fault_id, description, status, created_at, updated_at
        FROM incidents WHERE status=$1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanIncidents(rows)
}

func (r *incidentRepository) ListByTechnician(ctx context.Context, technicianID string) ([]domain.Incident, error) {
	const query = `
        SELECT id, client_id, technician_id, fault_id, description, status, created_at, updated_at
        FROM incidents WHERE technician_id=$1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, technicianID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanIncidents(rows)
}

func scanIncidents(rows pgx.Rows) ([]domain.Incident, error) {
	var result []domain.Incident
	for rows.Next() {
		var incident domain.Incident
		if err := rows.Scan(
			&incident.ID,
			&incident.ClientID,
			&incident.TechnicianID,
			&incident.FaultID,
			&incident.Description,
			&incident.Status,
			&incident.CreatedAt,
			&incident.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, incident)
	}
	return result, rows.Err()
}
