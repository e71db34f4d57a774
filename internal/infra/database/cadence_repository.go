package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/xavierca1/ligue-outbound/internal/entity"
)

type CadencePolicyRepository struct {
	DB *sql.DB
}

func NewCadencePolicyRepository(db *sql.DB) *CadencePolicyRepository {
	return &CadencePolicyRepository{DB: db}
}

func (r *CadencePolicyRepository) GetByTenant(ctx context.Context, tenantID string) (*entity.CadencePolicy, error) {
	// tenant_id é UUID no Postgres; id fora do formato não tem policy.
	if _, err := uuid.Parse(tenantID); err != nil {
		return nil, entity.ErrPolicyNotFound
	}

	query := `
		SELECT tenant_id, email_follow_up_count, email_delay_days, call_follow_up_count,
			call_delay_days, max_emails_per_day, max_calls_per_day, tone, created_at, updated_at
		FROM cadence_policies
		WHERE tenant_id = $1
	`

	var p entity.CadencePolicy
	err := r.DB.QueryRowContext(ctx, query, tenantID).Scan(
		&p.TenantID,
		&p.EmailFollowUpCount,
		&p.EmailDelayDays,
		&p.CallFollowUpCount,
		&p.CallDelayDays,
		&p.MaxEmailsPerDay,
		&p.MaxCallsPerDay,
		&p.Tone,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrPolicyNotFound
		}
		return nil, fmt.Errorf("erro ao buscar cadence policy: %w", err)
	}
	return &p, nil
}

func (r *CadencePolicyRepository) Upsert(ctx context.Context, p *entity.CadencePolicy) error {
	query := `
		INSERT INTO cadence_policies (tenant_id, email_follow_up_count, email_delay_days,
			call_follow_up_count, call_delay_days, max_emails_per_day, max_calls_per_day, tone,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (tenant_id)
		DO UPDATE SET
			email_follow_up_count = EXCLUDED.email_follow_up_count,
			email_delay_days = EXCLUDED.email_delay_days,
			call_follow_up_count = EXCLUDED.call_follow_up_count,
			call_delay_days = EXCLUDED.call_delay_days,
			max_emails_per_day = EXCLUDED.max_emails_per_day,
			max_calls_per_day = EXCLUDED.max_calls_per_day,
			tone = EXCLUDED.tone,
			updated_at = EXCLUDED.updated_at
	`
	_, err := r.DB.ExecContext(ctx, query,
		p.TenantID,
		p.EmailFollowUpCount,
		p.EmailDelayDays,
		p.CallFollowUpCount,
		p.CallDelayDays,
		p.MaxEmailsPerDay,
		p.MaxCallsPerDay,
		p.Tone,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("erro ao salvar cadence policy: %w", err)
	}
	return nil
}

func (r *CadencePolicyRepository) ListTenantIDs(ctx context.Context) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT tenant_id FROM cadence_policies ORDER BY tenant_id`)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar tenants: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("erro ao escanear tenant: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
