package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/xavierca1/ligue-outbound/internal/entity"
)

type tenantContextKey struct{}

// TenantAuth resolve o tenant pela chave "Authorization: Bearer <api key>".
// Requests sem tenant válido nunca chegam ao handler.
func TenantAuth(repo entity.TenantRepositoryInterface) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			apiKey, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				writeAuthError(w, http.StatusUnauthorized, "UNAUTHENTICATED")
				return
			}

			tenant, err := repo.FindByAPIKey(r.Context(), apiKey)
			if err != nil {
				if errors.Is(err, entity.ErrTenantNotFound) {
					writeAuthError(w, http.StatusUnauthorized, "UNAUTHENTICATED")
					return
				}
				log.Error().Err(err).Msg("tenant lookup failed")
				writeAuthError(w, http.StatusServiceUnavailable, "STORE_UNAVAILABLE")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithTenantID(r.Context(), tenant.ID)))
		})
	}
}

func WithTenantID(ctx context.Context, tenantID string) context.Context {
	return context.WithValue(ctx, tenantContextKey{}, tenantID)
}

// TenantIDFromContext returns "" when the request was not authenticated.
func TenantIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(tenantContextKey{}).(string)
	return id
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func writeAuthError(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": code})
}
