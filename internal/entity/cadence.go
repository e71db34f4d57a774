package entity

import (
	"context"
	"errors"
	"time"
)

var ErrPolicyNotFound = errors.New("cadence policy não encontrada")

const (
	ToneProfessional = "professional"
	ToneFriendly     = "friendly"
	ToneDirect       = "direct"
)

type CadencePolicy struct {
	TenantID           string    `json:"tenant_id"`
	EmailFollowUpCount int       `json:"email_follow_up_count"`
	EmailDelayDays     int       `json:"email_delay_days"`
	CallFollowUpCount  int       `json:"call_follow_up_count"`
	CallDelayDays      int       `json:"call_delay_days"`
	MaxEmailsPerDay    int       `json:"max_emails_per_day"`
	MaxCallsPerDay     int       `json:"max_calls_per_day"`
	Tone               string    `json:"tone"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// DefaultCadencePolicy é a política criada no primeiro acesso do tenant.
func DefaultCadencePolicy(tenantID string) *CadencePolicy {
	now := time.Now().UTC()
	return &CadencePolicy{
		TenantID:           tenantID,
		EmailFollowUpCount: 3,
		EmailDelayDays:     2,
		CallFollowUpCount:  2,
		CallDelayDays:      3,
		MaxEmailsPerDay:    50,
		MaxCallsPerDay:     20,
		Tone:               ToneProfessional,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

func (p *CadencePolicy) EmailDelay() time.Duration {
	return days(p.EmailDelayDays)
}

func (p *CadencePolicy) CallDelay() time.Duration {
	return days(p.CallDelayDays)
}

// Cooldown is the wait after the last contact before an exhausted lead is retired.
func (p *CadencePolicy) Cooldown() time.Duration {
	return days(max(p.EmailDelayDays, p.CallDelayDays))
}

// DailyCap devolve o limite diário do canal.
func (p *CadencePolicy) DailyCap(channel Channel) int {
	if channel == ChannelCall {
		return p.MaxCallsPerDay
	}
	return p.MaxEmailsPerDay
}

func days(n int) time.Duration {
	return time.Duration(n) * 24 * time.Hour
}

type CadencePolicyRepositoryInterface interface {
	GetByTenant(ctx context.Context, tenantID string) (*CadencePolicy, error)
	Upsert(ctx context.Context, policy *CadencePolicy) error
	ListTenantIDs(ctx context.Context) ([]string, error)
}
