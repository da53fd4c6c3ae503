package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vcsystems/incident-service/internal/domain"
)

// ClientRepository defines persistence access for client companies.
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) error
	GetByID(ctx context.Context, id string) (*domain.Client, error)
	GetByUserID(ctx context.Context, userID string) (*domain.Client, error)
}

type clientRepository struct {
	pool *pgxpool.Pool
}

// NewClientRepository returns a Postgres-backed implementation.
func NewClientRepository(pool *pgxpool.Pool) ClientRepository {
	return &clientRepository{pool: pool}
}

func (r *clientRepository) Create(ctx context.Context, client *domain.Client) error {
	const query = `
        INSERT INTO clients (user_id, company_name, company_address)
        VALUES ($1, $2, $3)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		client.UserID,
		client.CompanyName,
		client.CompanyAddress,
	).Scan(&client.ID, &client.CreatedAt, &client.UpdatedAt)
}

func (r *clientRepository) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	const query = `
        SELECT id, user_id, company_name, company_address, created_at, updated_at
        FROM clients WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *clientRepository) GetByUserID(ctx context.Context, userID string) (*domain.Client, error) {
	const query = `
        SELECT id, user_id, company_name, company_address, created_at, updated_at
        FROM clients WHERE user_id=$1`
	return r.fetchSingle(ctx, query, userID)
}

func (r *clientRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Client, error) {
	var client domain.Client
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&client.ID,
		&client.UserID,
		&client.CompanyName,
		&client.CompanyAddress,
		&client.CreatedAt,
		&client.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &client, nil
}
