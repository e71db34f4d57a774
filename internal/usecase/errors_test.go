package usecase

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorTaxonomy(t *testing.T) {
	domain := &DomainError{Kind: KindValidation, Code: CodeInvalidPayload, Message: "bad"}
	wrapped := fmt.Errorf("intake: %w", domain)

	assert.True(t, IsDomainError(wrapped))
	assert.False(t, IsTechnicalError(wrapped))
	assert.Equal(t, KindValidation, KindOf(wrapped))
	assert.Equal(t, CodeInvalidPayload, CodeOf(wrapped))

	cause := errors.New("connection refused")
	tech := storeUnavailable("lead lookup", cause)

	assert.True(t, IsTechnicalError(tech))
	assert.False(t, IsDomainError(tech))
	assert.Equal(t, KindTransientDependency, KindOf(tech))
	assert.ErrorIs(t, tech, cause)
	assert.Equal(t, "lead lookup: connection refused", tech.Error())

	plain := errors.New("boom")
	assert.Equal(t, ErrorKind(""), KindOf(plain))
	assert.Equal(t, "", CodeOf(plain))
}
