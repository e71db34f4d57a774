package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/ligue-outbound/internal/entity"
)

func TestRecordContact(t *testing.T) {
	ctx := context.Background()
	leads := newMemLeadRepo(newTestLead("lead-1", "ana@acme.com"))
	uc := NewRecordContactUseCase(leads, FixedClock(day(1)))

	ok, err := uc.Eligible(ctx, "lead-1", entity.ChannelEmail, 1)
	require.NoError(t, err)
	assert.True(t, ok)

	applied, err := uc.Record(ctx, "lead-1", entity.ChannelEmail, 1)
	require.NoError(t, err)
	assert.True(t, applied)

	stored := leads.get("lead-1")
	assert.Equal(t, entity.LeadStatusContacted, stored.Status)
	assert.Equal(t, 1, stored.EmailCount)
	require.NotNil(t, stored.LastEmailAt)
	assert.True(t, stored.LastEmailAt.Equal(day(1)))

	t.Run("redelivered step is not eligible", func(t *testing.T) {
		ok, err := uc.Eligible(ctx, "lead-1", entity.ChannelEmail, 1)
		require.NoError(t, err)
		assert.False(t, ok)

		applied, err := uc.Record(ctx, "lead-1", entity.ChannelEmail, 1)
		require.NoError(t, err)
		assert.False(t, applied)
		assert.Equal(t, 1, leads.get("lead-1").EmailCount)
	})

	t.Run("booked lead is not eligible", func(t *testing.T) {
		_, _ = leads.UpsertByEmail(ctx, "ana@acme.com", entity.LeadFields{Status: entity.LeadStatusMeetingBooked})

		ok, err := uc.Eligible(ctx, "lead-1", entity.ChannelCall, 1)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("unknown lead", func(t *testing.T) {
		ok, err := uc.Eligible(ctx, "nope", entity.ChannelEmail, 1)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("invalid step", func(t *testing.T) {
		_, err := uc.Record(ctx, "lead-1", entity.ChannelEmail, 0)
		assert.Equal(t, KindValidation, KindOf(err))
	})
}
