package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) PingContext(ctx context.Context) error { return f(ctx) }

type closedFlag bool

func (c closedFlag) IsClosed() bool { return bool(c) }

func TestHealthHandler(t *testing.T) {
	up := pingerFunc(func(context.Context) error { return nil })
	down := pingerFunc(func(context.Context) error { return errors.New("connection refused") })

	cases := []struct {
		name     string
		db       Pinger
		rabbit   ClosedChecker
		code     int
		status   string
		rabbitMQ string
	}{
		{"all healthy", up, closedFlag(false), http.StatusOK, "healthy", "ok"},
		{"queue not configured", up, nil, http.StatusOK, "healthy", "disabled"},
		{"database down", down, closedFlag(false), http.StatusServiceUnavailable, "degraded", "ok"},
		{"queue closed", up, closedFlag(true), http.StatusServiceUnavailable, "degraded", "down"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewHealthHandler(tc.db, tc.rabbit, "test")
			rec := httptest.NewRecorder()
			h.Handle(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tc.code, rec.Code)
			var body HealthResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tc.status, body.Status)
			assert.Equal(t, "test", body.Version)
			assert.Equal(t, tc.rabbitMQ, body.Dependencies["rabbitmq"])
			if tc.name == "database down" {
				assert.Equal(t, "connection refused", body.Errors["postgres"])
			}
		})
	}
}
