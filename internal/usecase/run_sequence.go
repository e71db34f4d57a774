package usecase

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/xavierca1/ligue-outbound/internal/entity"
)

type ActionKind string

const (
	ActionEmail ActionKind = "EMAIL"
	ActionCall  ActionKind = "CALL"
	ActionDead  ActionKind = "DEAD"
	ActionError ActionKind = "ERROR"
)

type Action struct {
	LeadID string     `json:"leadId"`
	Action ActionKind `json:"action"`
	Step   int        `json:"step,omitempty"`
	Error  string     `json:"error,omitempty"`
}

// LeadDecision é o resultado puro de Decide para um lead.
type LeadDecision struct {
	LeadID        string       `json:"leadId"`
	NeedsEmail    bool         `json:"needsEmail"`
	NeedsCall     bool         `json:"needsCall"`
	NextEmailStep int          `json:"nextEmailStep"`
	NextCallStep  int          `json:"nextCallStep"`
	Exhausted     bool         `json:"exhausted"`
	Retire        bool         `json:"retire"`
	Lead          *entity.Lead `json:"-"`
}

type SequenceSummary struct {
	TenantID     string         `json:"-"`
	DeadLeads    int            `json:"deadLeads"`
	EmailsQueued int            `json:"emailsQueued"`
	CallsQueued  int            `json:"callsQueued"`
	Actions      []Action       `json:"actions"`
	Decisions    []LeadDecision `json:"-"`
}

// Decide evaluates one lead against the cadence policy at instant now.
// It has no side effects; committing a retirement is the caller's job.
func Decide(lead *entity.Lead, policy *entity.CadencePolicy, now time.Time) LeadDecision {
	d := LeadDecision{
		LeadID:        lead.ID,
		NextEmailStep: lead.EmailCount + 1,
		NextCallStep:  lead.CallCount + 1,
		Lead:          lead,
	}

	if lead.EmailCount >= policy.EmailFollowUpCount && lead.CallCount >= policy.CallFollowUpCount {
		d.Exhausted = true
		d.Retire = now.Sub(lead.LastContactTime()) >= policy.Cooldown()
		return d
	}

	d.NeedsEmail = lead.EmailCount < policy.EmailFollowUpCount &&
		(lead.EmailCount == 0 || elapsedSince(lead.LastEmailAt, now) >= policy.EmailDelay())

	d.NeedsCall = lead.CallCount < policy.CallFollowUpCount &&
		(lead.CallCount == 0 || elapsedSince(lead.LastCallAt, now) >= policy.CallDelay())

	return d
}

// elapsedSince trata timestamp ausente como tempo infinito.
func elapsedSince(t *time.Time, now time.Time) time.Duration {
	if t == nil {
		return time.Duration(math.MaxInt64)
	}
	return now.Sub(*t)
}

type RunSequenceUseCase struct {
	LeadRepo   entity.LeadRepositoryInterface
	PolicyRepo entity.CadencePolicyRepositoryInterface
}

func NewRunSequenceUseCase(
	leadRepo entity.LeadRepositoryInterface,
	policyRepo entity.CadencePolicyRepositoryInterface,
) *RunSequenceUseCase {
	return &RunSequenceUseCase{
		LeadRepo:   leadRepo,
		PolicyRepo: policyRepo,
	}
}

// Execute runs one sequencing pass for tenantID. Any returned error means no
// summary; DEAD transitions committed before the error stay committed.
func (uc *RunSequenceUseCase) Execute(ctx context.Context, tenantID string, clock Clock) (*SequenceSummary, error) {
	if strings.TrimSpace(tenantID) == "" {
		return nil, &DomainError{
			Kind:    KindAuthentication,
			Code:    CodeTenantRequired,
			Message: "authenticated tenant is required",
		}
	}

	policy, err := uc.PolicyRepo.GetByTenant(ctx, tenantID)
	if err != nil {
		if errors.Is(err, entity.ErrPolicyNotFound) {
			return nil, &DomainError{
				Kind:    KindConfiguration,
				Code:    CodePolicyNotFound,
				Message: "no cadence policy configured for tenant " + tenantID,
			}
		}
		return nil, storeUnavailable("falha ao carregar cadence policy", err)
	}

	leads, err := uc.LeadRepo.FindActiveByStatus(ctx, entity.ActiveLeadStatuses)
	if err != nil {
		return nil, storeUnavailable("falha ao buscar leads ativos", err)
	}

	now := clockOrSystem(clock).Now()
	logger := log.With().Str("tenant_id", tenantID).Logger()

	summary := &SequenceSummary{
		TenantID: tenantID,
		Actions:  []Action{},
	}

	for _, lead := range leads {
		if err := ctx.Err(); err != nil {
			return nil, &TechnicalError{Code: CodePassInterrupted, Message: "sequencing pass interrupted", Err: err}
		}
		if lead == nil {
			logger.Warn().Msg("store returned a nil lead record")
			summary.Actions = append(summary.Actions, Action{
				Action: ActionError,
				Error:  "nil lead record",
			})
			continue
		}

		if err := lead.Validate(); err != nil {
			logger.Warn().Str("lead_id", lead.ID).Err(err).Msg("skipping malformed lead")
			summary.Actions = append(summary.Actions, Action{
				LeadID: lead.ID,
				Action: ActionError,
				Error:  err.Error(),
			})
			continue
		}
		if !lead.Status.IsActive() {
			continue
		}

		decision := Decide(lead, policy, now)

		if decision.Retire {
			applied, err := uc.LeadRepo.UpdateIfStatus(ctx, lead.ID, lead.Status, entity.LeadFields{
				Status: entity.LeadStatusDead,
			})
			if err != nil {
				return nil, storeUnavailable("falha ao marcar lead como DEAD", err)
			}
			if !applied {
				// Outro caminho (ex: MEETING_BOOKED) mudou o status antes do commit.
				logger.Info().Str("lead_id", lead.ID).Msg("lead status changed concurrently, DEAD not applied")
				continue
			}
			summary.DeadLeads++
			summary.Actions = append(summary.Actions, Action{LeadID: lead.ID, Action: ActionDead})
			continue
		}

		if decision.NeedsEmail {
			summary.EmailsQueued++
			summary.Actions = append(summary.Actions, Action{
				LeadID: lead.ID,
				Action: ActionEmail,
				Step:   decision.NextEmailStep,
			})
		}
		if decision.NeedsCall {
			summary.CallsQueued++
			summary.Actions = append(summary.Actions, Action{
				LeadID: lead.ID,
				Action: ActionCall,
				Step:   decision.NextCallStep,
			})
		}
		summary.Decisions = append(summary.Decisions, decision)
	}

	logger.Info().
		Int("active", len(leads)).
		Int("dead", summary.DeadLeads).
		Int("emails", summary.EmailsQueued).
		Int("calls", summary.CallsQueued).
		Msg("sequence pass completed")

	return summary, nil
}
