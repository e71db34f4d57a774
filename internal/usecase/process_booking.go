package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/xavierca1/ligue-outbound/internal/entity"
)

type ProcessBookingUseCase struct {
	LeadRepo      entity.LeadRepositoryInterface
	SigningSecret string
	Tolerance     time.Duration
	Clock         Clock
}

func NewProcessBookingUseCase(
	leadRepo entity.LeadRepositoryInterface,
	signingSecret string,
	tolerance time.Duration,
	clock Clock,
) *ProcessBookingUseCase {
	return &ProcessBookingUseCase{
		LeadRepo:      leadRepo,
		SigningSecret: signingSecret,
		Tolerance:     tolerance,
		Clock:         clockOrSystem(clock),
	}
}

// Configured reports whether the signing secret is set. Handlers check it
// before reading the request body.
func (uc *ProcessBookingUseCase) Configured() bool {
	return uc.SigningSecret != ""
}

// calendlyEvent é o subconjunto do payload do Calendly que usamos.
type calendlyEvent struct {
	Event   string `json:"event"`
	Payload struct {
		Email          string `json:"email"`
		Name           string `json:"name"`
		ScheduledEvent struct {
			StartTime string `json:"start_time"`
		} `json:"scheduled_event"`
	} `json:"payload"`
}

func (uc *ProcessBookingUseCase) Execute(ctx context.Context, input ProcessBookingInput) (*ProcessBookingOutput, error) {
	if !uc.Configured() {
		return nil, &DomainError{
			Kind:    KindConfiguration,
			Code:    CodeSigningSecretMissing,
			Message: "webhook signing secret is not configured",
		}
	}

	err := VerifySignature(input.Payload, input.Signature, uc.SigningSecret, SignatureOptions{
		Tolerance: uc.Tolerance,
		Now:       clockOrSystem(uc.Clock).Now(),
	})
	if err != nil {
		log.Warn().Str("code", CodeOf(err)).Msg("webhook signature rejected")
		return nil, err
	}

	event, err := parseWebhookEvent(input.Payload)
	if err != nil {
		return nil, err
	}

	output := &ProcessBookingOutput{Event: event.Kind}
	if !event.IsBooking() {
		log.Debug().Str("event", event.Kind).Msg("webhook event accepted without mutation")
		return output, nil
	}

	// Booking sempre vence: sobrescreve DEAD/CONTACTED e a meeting_time anterior.
	lead, err := uc.LeadRepo.UpsertByEmail(ctx, event.Email, entity.LeadFields{
		Name:        event.Name,
		Source:      entity.SourceInbound,
		Status:      entity.LeadStatusMeetingBooked,
		MeetingTime: event.ScheduledAt,
	})
	if err != nil {
		return nil, storeUnavailable("falha ao registrar reunião", err)
	}

	log.Info().
		Str("lead_id", lead.ID).
		Time("meeting_time", *event.ScheduledAt).
		Msg("meeting booked")

	output.Applied = true
	output.LeadID = lead.ID
	return output, nil
}

func parseWebhookEvent(payload []byte) (entity.WebhookEvent, error) {
	var raw calendlyEvent
	if err := json.Unmarshal(payload, &raw); err != nil {
		return entity.WebhookEvent{}, invalidPayload("payload is not valid JSON")
	}
	if raw.Event == "" {
		return entity.WebhookEvent{}, invalidPayload("event kind is required")
	}

	event := entity.WebhookEvent{
		Kind:  raw.Event,
		Email: entity.NormalizeEmail(raw.Payload.Email),
		Name:  raw.Payload.Name,
	}
	if !event.IsBooking() {
		return event, nil
	}

	if event.Email == "" {
		return event, invalidPayload("invitee email is required")
	}
	start, err := time.Parse(time.RFC3339, raw.Payload.ScheduledEvent.StartTime)
	if err != nil {
		return event, invalidPayload("scheduled_event.start_time must be RFC3339")
	}
	start = start.UTC()
	event.ScheduledAt = &start
	return event, nil
}

func invalidPayload(message string) *DomainError {
	return &DomainError{Kind: KindValidation, Code: CodeInvalidPayload, Message: message}
}
