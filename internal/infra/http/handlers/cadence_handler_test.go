package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/ligue-outbound/internal/entity"
	"github.com/xavierca1/ligue-outbound/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-outbound/internal/usecase"
)

func TestCadenceHandler(t *testing.T) {
	policy := entity.DefaultCadencePolicy("tenant-1")

	t.Run("get", func(t *testing.T) {
		getter := new(MockCadenceGetter)
		getter.On("Execute", mock.Anything, "tenant-1").Return(policy, nil)
		h := NewCadenceHandler(getter, new(MockCadenceUpdater))

		req := httptest.NewRequest(http.MethodGet, "/cadence", nil)
		req = req.WithContext(middleware.WithTenantID(req.Context(), "tenant-1"))
		w := httptest.NewRecorder()
		h.HandleGet(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var got entity.CadencePolicy
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, 3, got.EmailFollowUpCount)
	})

	t.Run("update", func(t *testing.T) {
		seven := 7
		updater := new(MockCadenceUpdater)
		updater.On("Execute", mock.Anything, "tenant-1", usecase.UpdateCadenceInput{MaxCallsPerDay: &seven}).Return(policy, nil)
		h := NewCadenceHandler(new(MockCadenceGetter), updater)

		req := httptest.NewRequest(http.MethodPut, "/cadence", strings.NewReader(`{"max_calls_per_day":7}`))
		req = req.WithContext(middleware.WithTenantID(req.Context(), "tenant-1"))
		w := httptest.NewRecorder()
		h.HandleUpdate(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		updater.AssertExpectations(t)
	})

	t.Run("update validation error", func(t *testing.T) {
		updater := new(MockCadenceUpdater)
		updater.On("Execute", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, &usecase.DomainError{Kind: usecase.KindValidation, Code: usecase.CodeValidation, Message: "tone"})
		h := NewCadenceHandler(new(MockCadenceGetter), updater)

		req := httptest.NewRequest(http.MethodPut, "/cadence", strings.NewReader(`{"tone":"loud"}`))
		w := httptest.NewRecorder()
		h.HandleUpdate(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
