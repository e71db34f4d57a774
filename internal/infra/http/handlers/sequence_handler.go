package handlers

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/xavierca1/ligue-outbound/internal/entity"
	"github.com/xavierca1/ligue-outbound/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-outbound/internal/usecase"
)

type SequenceRunner interface {
	Execute(ctx context.Context, tenantID string, clock usecase.Clock) (*usecase.SequenceSummary, error)
}

type ActionQueuer interface {
	Execute(ctx context.Context, summary *usecase.SequenceSummary, clock usecase.Clock) (*usecase.QueueActionsOutput, error)
}

type SequenceHandler struct {
	Runner SequenceRunner
	Queuer ActionQueuer
	Clock  usecase.Clock
}

func NewSequenceHandler(runner SequenceRunner, queuer ActionQueuer, clock usecase.Clock) *SequenceHandler {
	return &SequenceHandler{Runner: runner, Queuer: queuer, Clock: clock}
}

type SequenceRunResponse struct {
	*usecase.SequenceSummary
	Dispatch      *usecase.QueueActionsOutput `json:"dispatch,omitempty"`
	DispatchError string                      `json:"dispatchError,omitempty"`
}

// HandleRun roda uma passada on-demand para o tenant autenticado.
func (h *SequenceHandler) HandleRun(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tenantID := middleware.TenantIDFromContext(ctx)

	summary, err := h.Runner.Execute(ctx, tenantID, h.Clock)
	if err != nil {
		middleware.RecordSequenceRun("failed")
		log.Warn().Err(err).Str("tenant_id", tenantID).Msg("sequence run rejected")
		writeError(w, err)
		return
	}
	middleware.RecordSequenceRun("ok")
	middleware.RecordLeadsDead(summary.DeadLeads)

	resp := SequenceRunResponse{SequenceSummary: summary}

	if h.Queuer != nil {
		dispatch, err := h.Queuer.Execute(ctx, summary, h.Clock)
		if dispatch != nil {
			middleware.RecordActionsQueued(string(entity.ChannelEmail), dispatch.EmailsPublished)
			middleware.RecordActionsQueued(string(entity.ChannelCall), dispatch.CallsPublished)
		}
		resp.Dispatch = dispatch
		if err != nil {
			// DEAD já foi commitado; reportamos a falha de dispatch explicitamente.
			log.Error().Err(err).Str("tenant_id", tenantID).Msg("failed to queue actions")
			resp.DispatchError = usecase.CodeOf(err)
			if resp.DispatchError == "" {
				resp.DispatchError = "DISPATCH_FAILED"
			}
		}
	}

	writeJSON(w, http.StatusOK, resp)
}
