package usecase

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/xavierca1/ligue-outbound/internal/entity"
	"github.com/xavierca1/ligue-outbound/internal/infra/queue"
)

// QueueActionsUseCase hands a sequencing summary to the dispatcher queue,
// highest score first, within the tenant's daily caps.
type QueueActionsUseCase struct {
	LeadRepo   entity.LeadRepositoryInterface
	PolicyRepo entity.CadencePolicyRepositoryInterface
	Publisher  ActionPublisher
}

func NewQueueActionsUseCase(
	leadRepo entity.LeadRepositoryInterface,
	policyRepo entity.CadencePolicyRepositoryInterface,
	publisher ActionPublisher,
) *QueueActionsUseCase {
	return &QueueActionsUseCase{
		LeadRepo:   leadRepo,
		PolicyRepo: policyRepo,
		Publisher:  publisher,
	}
}

func (uc *QueueActionsUseCase) Execute(ctx context.Context, summary *SequenceSummary, clock Clock) (*QueueActionsOutput, error) {
	output := &QueueActionsOutput{}
	if summary == nil || len(summary.Decisions) == 0 {
		return output, nil
	}

	policy, err := uc.PolicyRepo.GetByTenant(ctx, summary.TenantID)
	if err != nil {
		if errors.Is(err, entity.ErrPolicyNotFound) {
			return nil, &DomainError{Kind: KindConfiguration, Code: CodePolicyNotFound, Message: "no cadence policy configured for tenant " + summary.TenantID}
		}
		return nil, storeUnavailable("falha ao carregar cadence policy", err)
	}

	now := clockOrSystem(clock).Now()
	// Limite diário conta a partir da meia-noite UTC.
	startOfDay := now.UTC().Truncate(24 * time.Hour)

	remaining := map[entity.Channel]int{}
	for _, channel := range []entity.Channel{entity.ChannelEmail, entity.ChannelCall} {
		sent, err := uc.LeadRepo.CountContactsSince(ctx, channel, startOfDay)
		if err != nil {
			return nil, storeUnavailable("falha ao contar contatos do dia", err)
		}
		remaining[channel] = max(policy.DailyCap(channel)-sent, 0)
	}

	decisions := prioritize(summary.Decisions)

	for _, d := range decisions {
		if d.NeedsEmail {
			if err := uc.publish(ctx, summary.TenantID, policy, d, entity.ChannelEmail, d.NextEmailStep, now, remaining, output); err != nil {
				return output, err
			}
		}
		if d.NeedsCall {
			if err := uc.publish(ctx, summary.TenantID, policy, d, entity.ChannelCall, d.NextCallStep, now, remaining, output); err != nil {
				return output, err
			}
		}
	}

	log.Info().
		Str("tenant_id", summary.TenantID).
		Int("emails", output.EmailsPublished).
		Int("calls", output.CallsPublished).
		Int("calls_skipped", output.CallsSkipped).
		Int("deferred", output.Deferred).
		Msg("actions queued")

	return output, nil
}

func (uc *QueueActionsUseCase) publish(
	ctx context.Context,
	tenantID string,
	policy *entity.CadencePolicy,
	d LeadDecision,
	channel entity.Channel,
	step int,
	now time.Time,
	remaining map[entity.Channel]int,
	output *QueueActionsOutput,
) error {
	if remaining[channel] <= 0 {
		output.Deferred++
		return nil
	}

	// Lead sem telefone: o passo é registrado como tentativa pulada.
	if channel == entity.ChannelCall && (d.Lead == nil || d.Lead.Phone == "") {
		applied, err := uc.LeadRepo.RecordContact(ctx, d.LeadID, channel, step, now)
		if err != nil {
			return storeUnavailable("falha ao registrar ligação pulada", err)
		}
		if applied {
			output.CallsSkipped++
		}
		return nil
	}

	payload := queue.ActionPayload{
		LeadID:   d.LeadID,
		TenantID: tenantID,
		Channel:  channel,
		Step:     step,
		Tone:     policy.Tone,
	}
	if d.Lead != nil {
		payload.Email = d.Lead.Email
		payload.Name = d.Lead.Name
		payload.Company = d.Lead.Company
		payload.Phone = d.Lead.Phone
	}

	if err := uc.Publisher.PublishAction(ctx, payload); err != nil {
		return &TechnicalError{Code: CodeQueueUnavailable, Message: "falha ao publicar ação", Err: err}
	}

	remaining[channel]--
	if channel == entity.ChannelCall {
		output.CallsPublished++
	} else {
		output.EmailsPublished++
	}
	return nil
}

// prioritize ordena por score desc; empate mantém o mais antigo primeiro.
func prioritize(decisions []LeadDecision) []LeadDecision {
	sorted := make([]LeadDecision, len(decisions))
	copy(sorted, decisions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return scoreOf(sorted[i]) > scoreOf(sorted[j])
	})
	return sorted
}

func scoreOf(d LeadDecision) int {
	if d.Lead == nil {
		return 0
	}
	return d.Lead.Score
}
