package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xavierca1/ligue-outbound/internal/entity"
)

func TestGetByTenantRejectsMalformedID(t *testing.T) {
	repo := NewCadencePolicyRepository(nil)

	for _, id := range []string{"foo", "", "tenant-1", "123"} {
		policy, err := repo.GetByTenant(context.Background(), id)
		assert.Nil(t, policy, id)
		assert.ErrorIs(t, err, entity.ErrPolicyNotFound, id)
	}
}
