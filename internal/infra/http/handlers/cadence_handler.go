package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/xavierca1/ligue-outbound/internal/entity"
	"github.com/xavierca1/ligue-outbound/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-outbound/internal/usecase"
)

type CadenceGetter interface {
	Execute(ctx context.Context, tenantID string) (*entity.CadencePolicy, error)
}

type CadenceUpdater interface {
	Execute(ctx context.Context, tenantID string, input usecase.UpdateCadenceInput) (*entity.CadencePolicy, error)
}

type CadenceHandler struct {
	GetUC    CadenceGetter
	UpdateUC CadenceUpdater
}

func NewCadenceHandler(get CadenceGetter, update CadenceUpdater) *CadenceHandler {
	return &CadenceHandler{GetUC: get, UpdateUC: update}
}

func (h *CadenceHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	policy, err := h.GetUC.Execute(r.Context(), middleware.TenantIDFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, policy)
}

func (h *CadenceHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var input usecase.UpdateCadenceInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "INVALID_JSON"})
		return
	}

	policy, err := h.UpdateUC.Execute(r.Context(), middleware.TenantIDFromContext(r.Context()), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, policy)
}
