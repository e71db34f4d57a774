package mail

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderFollowUp(t *testing.T) {
	t.Run("first touch", func(t *testing.T) {
		body, err := RenderFollowUp(NewFollowUpData("Ana Souza", "Acme", 1, "professional"))
		require.NoError(t, err)

		assert.Contains(t, body, "Hello Ana,")
		assert.Contains(t, body, "teams like Acme")
	})

	t.Run("tone and fallbacks", func(t *testing.T) {
		body, err := RenderFollowUp(NewFollowUpData("", "", 1, "friendly"))
		require.NoError(t, err)

		assert.Contains(t, body, "Hi there!")
		assert.Contains(t, body, "teams like yours")
	})

	t.Run("last step", func(t *testing.T) {
		body, err := RenderFollowUp(NewFollowUpData("Ana", "Acme", 3, "direct"))
		require.NoError(t, err)

		assert.Contains(t, body, "<p>Ana,</p>")
		assert.Contains(t, body, "last message")
	})
}

func TestFollowUpSubject(t *testing.T) {
	assert.Equal(t, "Quick question for Acme", FollowUpSubject("Acme", 1))
	assert.Equal(t, "Re: Quick question for Acme", FollowUpSubject(" Acme ", 2))
	assert.Equal(t, "Quick question", FollowUpSubject("", 1))
}

func TestSendFollowUpRequiresRecipient(t *testing.T) {
	s := NewEmailSender("localhost", 25, "", "", "noreply@ligue.test")
	assert.Error(t, s.SendFollowUp("", "Ana", "Acme", 1, "professional"))
}
