package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/xavierca1/ligue-outbound/internal/usecase"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Kind    string `json:"kind,omitempty"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

// writeError traduz a taxonomia de erros do usecase para status HTTP.
func writeError(w http.ResponseWriter, err error) {
	kind := usecase.KindOf(err)
	code := usecase.CodeOf(err)

	status := http.StatusInternalServerError
	switch kind {
	case usecase.KindAuthentication:
		status = http.StatusUnauthorized
	case usecase.KindValidation:
		status = http.StatusBadRequest
	case usecase.KindTransientDependency:
		status = http.StatusServiceUnavailable
	case usecase.KindConfiguration:
		if code == usecase.CodePolicyNotFound {
			status = http.StatusConflict
		}
	}

	if code == "" {
		code = "INTERNAL_ERROR"
		log.Error().Err(err).Msg("unclassified error")
	}

	resp := ErrorResponse{Error: code, Kind: string(kind)}
	// Detalhes de dependências não vazam pro cliente.
	if kind != usecase.KindTransientDependency && kind != "" {
		resp.Message = err.Error()
	}
	writeJSON(w, status, resp)
}
