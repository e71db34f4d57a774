package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/xavierca1/ligue-outbound/internal/entity"
)

var ErrTenantAlreadyExists = errors.New("tenant já existe")

type TenantRepository struct {
	DB *sql.DB
}

func NewTenantRepository(db *sql.DB) *TenantRepository {
	return &TenantRepository{DB: db}
}

func (r *TenantRepository) FindByAPIKey(ctx context.Context, apiKey string) (*entity.Tenant, error) {
	query := `SELECT id, name, api_key_hash, created_at FROM tenants WHERE api_key_hash = $1`

	var t entity.Tenant
	err := r.DB.QueryRowContext(ctx, query, entity.HashAPIKey(apiKey)).Scan(
		&t.ID,
		&t.Name,
		&t.APIKeyHash,
		&t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrTenantNotFound
		}
		return nil, fmt.Errorf("erro ao buscar tenant: %w", err)
	}
	return &t, nil
}

func (r *TenantRepository) Create(ctx context.Context, t *entity.Tenant) error {
	query := `INSERT INTO tenants (id, name, api_key_hash, created_at) VALUES ($1, $2, $3, $4)`

	_, err := r.DB.ExecContext(ctx, query, t.ID, t.Name, t.APIKeyHash, t.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrTenantAlreadyExists
		}
		return fmt.Errorf("erro ao criar tenant: %w", err)
	}
	return nil
}
