package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/xavierca1/ligue-outbound/internal/entity"
)

const leadColumns = `id, email, name, company, role, phone, location, company_size, status, score,
	source, email_count, call_count, last_email_at, last_call_at, last_contact, meeting_time,
	created_at, updated_at`

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(row rowScanner) (*entity.Lead, error) {
	var (
		lead                                           entity.Lead
		status                                         string
		lastEmailAt, lastCallAt, lastContact, meetingAt sql.NullTime
	)
	err := row.Scan(
		&lead.ID,
		&lead.Email,
		&lead.Name,
		&lead.Company,
		&lead.Role,
		&lead.Phone,
		&lead.Location,
		&lead.CompanySize,
		&status,
		&lead.Score,
		&lead.Source,
		&lead.EmailCount,
		&lead.CallCount,
		&lastEmailAt,
		&lastCallAt,
		&lastContact,
		&meetingAt,
		&lead.CreatedAt,
		&lead.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	lead.Status = entity.LeadStatus(status)
	lead.LastEmailAt = timePtr(lastEmailAt)
	lead.LastCallAt = timePtr(lastCallAt)
	lead.LastContact = timePtr(lastContact)
	lead.MeetingTime = timePtr(meetingAt)
	return &lead, nil
}

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id = $1`
	lead, err := scanLead(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrLeadNotFound
		}
		return nil, fmt.Errorf("erro ao buscar lead: %w", err)
	}
	return lead, nil
}

func (r *LeadRepository) FindActiveByStatus(ctx context.Context, statuses []entity.LeadStatus) ([]*entity.Lead, error) {
	values := make([]string, len(statuses))
	for i, s := range statuses {
		values[i] = string(s)
	}

	query := `SELECT ` + leadColumns + ` FROM leads WHERE status = ANY($1) ORDER BY created_at ASC, id ASC`
	rows, err := r.DB.QueryContext(ctx, query, pq.Array(values))
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar leads: %w", err)
	}
	defer rows.Close()

	var leads []*entity.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear lead: %w", err)
		}
		leads = append(leads, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar leads: %w", err)
	}
	return leads, nil
}

// UpsertByEmail insere ou atualiza o lead identificado pelo email.
// Campos vazios no update mantêm o valor atual; source só é gravado na criação.
func (r *LeadRepository) UpsertByEmail(ctx context.Context, email string, fields entity.LeadFields) (*entity.Lead, error) {
	query := `
		INSERT INTO leads (id, email, name, company, role, phone, location, company_size,
			source, score, status, meeting_time, created_at, updated_at)
		VALUES ($1, $2,
			COALESCE($3, ''), COALESCE($4, ''), COALESCE($5, ''), COALESCE($6, ''),
			COALESCE($7, ''), COALESCE($8, ''),
			COALESCE($9, 'manual'), COALESCE($10, 50), COALESCE($11, 'NEW'), $12,
			NOW(), NOW())
		ON CONFLICT (email)
		DO UPDATE SET
			name = COALESCE($3, leads.name),
			company = COALESCE($4, leads.company),
			role = COALESCE($5, leads.role),
			phone = COALESCE($6, leads.phone),
			location = COALESCE($7, leads.location),
			company_size = COALESCE($8, leads.company_size),
			score = COALESCE($10, leads.score),
			status = COALESCE($11, leads.status),
			meeting_time = COALESCE($12, leads.meeting_time),
			updated_at = NOW()
		RETURNING ` + leadColumns

	lead, err := scanLead(r.DB.QueryRowContext(ctx, query,
		uuid.New().String(),
		entity.NormalizeEmail(email),
		nullString(fields.Name),
		nullString(fields.Company),
		nullString(fields.Role),
		nullString(fields.Phone),
		nullString(fields.Location),
		nullString(fields.CompanySize),
		nullString(fields.Source),
		fields.Score,
		nullString(string(fields.Status)),
		fields.MeetingTime,
	))
	if err != nil {
		return nil, fmt.Errorf("erro no upsert do lead: %w", err)
	}
	return lead, nil
}

// UpdateIfStatus é o compare-and-set usado pelo commit DEAD.
func (r *LeadRepository) UpdateIfStatus(ctx context.Context, id string, expected entity.LeadStatus, fields entity.LeadFields) (bool, error) {
	query := `
		UPDATE leads
		SET status = COALESCE($3, status),
			meeting_time = COALESCE($4, meeting_time),
			updated_at = NOW()
		WHERE id = $1 AND status = $2
	`
	res, err := r.DB.ExecContext(ctx, query, id, string(expected), nullString(string(fields.Status)), fields.MeetingTime)
	if err != nil {
		return false, fmt.Errorf("erro ao atualizar lead: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("erro ao ler linhas afetadas: %w", err)
	}
	return n == 1, nil
}

func (r *LeadRepository) RecordContact(ctx context.Context, id string, channel entity.Channel, step int, at time.Time) (bool, error) {
	var query string
	switch channel {
	case entity.ChannelEmail:
		query = `
			UPDATE leads
			SET email_count = email_count + 1, last_email_at = $2, last_contact = $2,
				status = 'CONTACTED', updated_at = NOW()
			WHERE id = $1 AND status IN ('NEW', 'CONTACTED') AND email_count = $3
		`
	case entity.ChannelCall:
		query = `
			UPDATE leads
			SET call_count = call_count + 1, last_call_at = $2, last_contact = $2,
				status = 'CONTACTED', updated_at = NOW()
			WHERE id = $1 AND status IN ('NEW', 'CONTACTED') AND call_count = $3
		`
	default:
		return false, fmt.Errorf("canal desconhecido: %q", channel)
	}

	res, err := r.DB.ExecContext(ctx, query, id, at, step-1)
	if err != nil {
		return false, fmt.Errorf("erro ao registrar contato: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("erro ao ler linhas afetadas: %w", err)
	}
	return n == 1, nil
}

// CountContactsSince counts leads whose last contact on channel is at or after since.
func (r *LeadRepository) CountContactsSince(ctx context.Context, channel entity.Channel, since time.Time) (int, error) {
	column := "last_email_at"
	if channel == entity.ChannelCall {
		column = "last_call_at"
	}

	var count int
	query := `SELECT COUNT(*) FROM leads WHERE ` + column + ` >= $1`
	if err := r.DB.QueryRowContext(ctx, query, since).Scan(&count); err != nil {
		return 0, fmt.Errorf("erro ao contar contatos: %w", err)
	}
	return count, nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time.UTC()
	return &v
}
