package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/xavierca1/ligue-outbound/internal/entity"
)

// RecordContactUseCase é o commit do dispatcher: NEW/CONTACTED -> CONTACTED.
type RecordContactUseCase struct {
	LeadRepo entity.LeadRepositoryInterface
	Clock    Clock
}

func NewRecordContactUseCase(leadRepo entity.LeadRepositoryInterface, clock Clock) *RecordContactUseCase {
	return &RecordContactUseCase{LeadRepo: leadRepo, Clock: clockOrSystem(clock)}
}

// Eligible reports whether step is still the next contact on channel for the
// lead. Redelivered or stale queue messages return false.
func (uc *RecordContactUseCase) Eligible(ctx context.Context, leadID string, channel entity.Channel, step int) (bool, error) {
	lead, err := uc.LeadRepo.FindByID(ctx, leadID)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return false, nil
		}
		return false, storeUnavailable("falha ao buscar lead", err)
	}
	if !lead.Status.CanTransitionTo(entity.LeadStatusContacted) {
		return false, nil
	}
	switch channel {
	case entity.ChannelEmail:
		return lead.EmailCount == step-1, nil
	case entity.ChannelCall:
		return lead.CallCount == step-1, nil
	}
	return false, fmt.Errorf("unknown channel %q", channel)
}

// Record increments the channel counter and stamps the contact time. The
// write only applies while the lead is active and the counter equals step-1.
func (uc *RecordContactUseCase) Record(ctx context.Context, leadID string, channel entity.Channel, step int) (bool, error) {
	if step < 1 {
		return false, &DomainError{Kind: KindValidation, Code: CodeValidation, Message: "step must be >= 1"}
	}
	applied, err := uc.LeadRepo.RecordContact(ctx, leadID, channel, step, clockOrSystem(uc.Clock).Now())
	if err != nil {
		return false, storeUnavailable("falha ao registrar contato", err)
	}
	return applied, nil
}
