package usecase

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/xavierca1/ligue-outbound/internal/entity"
)

const defaultLeadSource = "manual"

type CaptureLeadUseCase struct {
	LeadRepo entity.LeadRepositoryInterface
}

func NewCaptureLeadUseCase(leadRepo entity.LeadRepositoryInterface) *CaptureLeadUseCase {
	return &CaptureLeadUseCase{LeadRepo: leadRepo}
}

// Execute scores and upserts a sourced lead. When the store is unavailable it
// returns a non-persisted output together with a *TechnicalError, so callers
// can report the degraded result instead of pretending the lead was saved.
func (uc *CaptureLeadUseCase) Execute(ctx context.Context, input CaptureLeadInput) (*CaptureLeadOutput, error) {
	input.Email = entity.NormalizeEmail(input.Email)
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	score := ScoreLead(ScoreInput{
		Title:       input.Title,
		CompanySize: input.CompanySize,
		Location:    input.Location,
	})

	source := strings.TrimSpace(input.Source)
	if source == "" {
		source = defaultLeadSource
	}

	output := &CaptureLeadOutput{Email: input.Email, Score: score}

	lead, err := uc.LeadRepo.UpsertByEmail(ctx, input.Email, entity.LeadFields{
		Name:        strings.TrimSpace(input.Name),
		Company:     strings.TrimSpace(input.Company),
		Role:        strings.TrimSpace(input.Title),
		Phone:       input.Phone,
		Location:    strings.TrimSpace(input.Location),
		CompanySize: input.CompanySize,
		Source:      source,
		Score:       &score,
	})
	if err != nil {
		log.Error().Err(err).Str("email", input.Email).Msg("lead capture degraded: store unavailable")
		return output, storeUnavailable("lead não persistido", err)
	}

	output.ID = lead.ID
	output.Status = string(lead.Status)
	output.Persisted = true
	return output, nil
}
