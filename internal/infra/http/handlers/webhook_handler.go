package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/xavierca1/ligue-outbound/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-outbound/internal/usecase"
)

const maxWebhookBody = 1 << 20

type BookingProcessor interface {
	Configured() bool
	Execute(ctx context.Context, input usecase.ProcessBookingInput) (*usecase.ProcessBookingOutput, error)
}

type WebhookHandler struct {
	ProcessBookingUC BookingProcessor
}

func NewWebhookHandler(uc BookingProcessor) *WebhookHandler {
	return &WebhookHandler{ProcessBookingUC: uc}
}

func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	// Sem segredo configurado nem lemos o body.
	if !h.ProcessBookingUC.Configured() {
		middleware.RecordWebhookEvent("misconfigured")
		log.Error().Msg("webhook received but signing secret is not configured")
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error: usecase.CodeSigningSecretMissing,
			Kind:  string(usecase.KindConfiguration),
		})
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBody))
	if err != nil {
		middleware.RecordWebhookEvent("invalid")
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: usecase.CodeInvalidPayload,
			Kind:  string(usecase.KindValidation),
		})
		return
	}

	output, err := h.ProcessBookingUC.Execute(r.Context(), usecase.ProcessBookingInput{
		Payload:   body,
		Signature: r.Header.Get(usecase.SignatureHeader),
	})
	if err != nil {
		switch usecase.KindOf(err) {
		case usecase.KindAuthentication:
			middleware.RecordWebhookEvent("unauthorized")
		case usecase.KindValidation:
			middleware.RecordWebhookEvent("invalid")
		default:
			middleware.RecordWebhookEvent("failed")
		}
		writeError(w, err)
		return
	}

	if output.Applied {
		middleware.RecordWebhookEvent("booked")
	} else {
		middleware.RecordWebhookEvent("ignored")
	}
	writeJSON(w, http.StatusOK, output)
}
