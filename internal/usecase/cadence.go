package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/xavierca1/ligue-outbound/internal/entity"
)

type GetCadenceUseCase struct {
	PolicyRepo entity.CadencePolicyRepositoryInterface
}

func NewGetCadenceUseCase(policyRepo entity.CadencePolicyRepositoryInterface) *GetCadenceUseCase {
	return &GetCadenceUseCase{PolicyRepo: policyRepo}
}

// Execute returns the tenant's policy, persisting the defaults on first access.
func (uc *GetCadenceUseCase) Execute(ctx context.Context, tenantID string) (*entity.CadencePolicy, error) {
	if tenantID == "" {
		return nil, &DomainError{Kind: KindAuthentication, Code: CodeTenantRequired, Message: "authenticated tenant is required"}
	}

	policy, err := uc.PolicyRepo.GetByTenant(ctx, tenantID)
	if err == nil {
		return policy, nil
	}
	if !errors.Is(err, entity.ErrPolicyNotFound) {
		return nil, storeUnavailable("falha ao carregar cadence policy", err)
	}

	policy = entity.DefaultCadencePolicy(tenantID)
	if err := uc.PolicyRepo.Upsert(ctx, policy); err != nil {
		return nil, storeUnavailable("falha ao criar cadence policy padrão", err)
	}
	return policy, nil
}

type UpdateCadenceUseCase struct {
	Get        *GetCadenceUseCase
	PolicyRepo entity.CadencePolicyRepositoryInterface
}

func NewUpdateCadenceUseCase(policyRepo entity.CadencePolicyRepositoryInterface) *UpdateCadenceUseCase {
	return &UpdateCadenceUseCase{
		Get:        NewGetCadenceUseCase(policyRepo),
		PolicyRepo: policyRepo,
	}
}

func (uc *UpdateCadenceUseCase) Execute(ctx context.Context, tenantID string, input UpdateCadenceInput) (*entity.CadencePolicy, error) {
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	policy, err := uc.Get.Execute(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	applyInt(&policy.EmailFollowUpCount, input.EmailFollowUpCount)
	applyInt(&policy.EmailDelayDays, input.EmailDelayDays)
	applyInt(&policy.CallFollowUpCount, input.CallFollowUpCount)
	applyInt(&policy.CallDelayDays, input.CallDelayDays)
	applyInt(&policy.MaxEmailsPerDay, input.MaxEmailsPerDay)
	applyInt(&policy.MaxCallsPerDay, input.MaxCallsPerDay)
	if input.Tone != nil {
		policy.Tone = *input.Tone
	}
	policy.UpdatedAt = time.Now().UTC()

	if err := uc.PolicyRepo.Upsert(ctx, policy); err != nil {
		return nil, storeUnavailable("falha ao salvar cadence policy", err)
	}
	return policy, nil
}

func applyInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}
