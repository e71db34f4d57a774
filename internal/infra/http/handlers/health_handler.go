package handlers

import (
	"context"
	"net/http"
	"time"
)

const (
	depOK       = "ok"
	depDown     = "down"
	depDisabled = "disabled"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// ClosedChecker is satisfied by *amqp091.Connection.
type ClosedChecker interface {
	IsClosed() bool
}

type HealthHandler struct {
	DB        Pinger
	RabbitMQ  ClosedChecker
	Version   string
	StartTime time.Time
}

type HealthResponse struct {
	Status       string            `json:"status"`
	Version      string            `json:"version"`
	Uptime       string            `json:"uptime"`
	Dependencies map[string]string `json:"dependencies"`
	Errors       map[string]string `json:"errors,omitempty"`
}

func NewHealthHandler(db Pinger, rabbitMQ ClosedChecker, version string) *HealthHandler {
	return &HealthHandler{
		DB:        db,
		RabbitMQ:  rabbitMQ,
		Version:   version,
		StartTime: time.Now(),
	}
}

func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:       "healthy",
		Version:      h.Version,
		Uptime:       time.Since(h.StartTime).Round(time.Second).String(),
		Dependencies: map[string]string{},
		Errors:       map[string]string{},
	}

	// Sem Postgres o motor não roda; sem fila só o despacho para.
	resp.Dependencies["postgres"] = h.checkPostgres(r.Context(), resp.Errors)
	resp.Dependencies["rabbitmq"] = h.checkQueue(resp.Errors)

	for _, state := range resp.Dependencies {
		if state == depDown {
			resp.Status = "degraded"
		}
	}

	code := http.StatusOK
	if resp.Status != "healthy" {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, resp)
}

func (h *HealthHandler) checkPostgres(ctx context.Context, errs map[string]string) string {
	if h.DB == nil {
		return depDisabled
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := h.DB.PingContext(ctx); err != nil {
		errs["postgres"] = err.Error()
		return depDown
	}
	return depOK
}

func (h *HealthHandler) checkQueue(errs map[string]string) string {
	if h.RabbitMQ == nil {
		return depDisabled
	}
	if h.RabbitMQ.IsClosed() {
		errs["rabbitmq"] = "connection closed"
		return depDown
	}
	return depOK
}
