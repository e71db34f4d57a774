package entity

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrTenantNotFound = errors.New("tenant não encontrado")

type Tenant struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	APIKeyHash string    `json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}

// HashAPIKey é o formato persistido das chaves; a chave crua nunca vai pro banco.
func HashAPIKey(apiKey string) string {
	sum := sha256.Sum256([]byte(apiKey))
	return hex.EncodeToString(sum[:])
}

// NewTenant gera o tenant e sua chave de API. A chave crua só é devolvida aqui.
func NewTenant(name string) (*Tenant, string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, "", errors.New("tenant name is required")
	}

	raw := make([]byte, 24)
	if _, err := rand.Read(raw); err != nil {
		return nil, "", err
	}
	apiKey := "lo_" + hex.EncodeToString(raw)

	return &Tenant{
		ID:         uuid.New().String(),
		Name:       name,
		APIKeyHash: HashAPIKey(apiKey),
		CreatedAt:  time.Now().UTC(),
	}, apiKey, nil
}

type TenantRepositoryInterface interface {
	FindByAPIKey(ctx context.Context, apiKey string) (*Tenant, error)
}
