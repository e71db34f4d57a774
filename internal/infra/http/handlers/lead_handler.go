package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/xavierca1/ligue-outbound/internal/usecase"
)

type LeadCapturer interface {
	Execute(ctx context.Context, input usecase.CaptureLeadInput) (*usecase.CaptureLeadOutput, error)
}

type LeadHandler struct {
	captureUC   LeadCapturer
	rateLimiter *RateLimiter
}

func NewLeadHandler(captureUC LeadCapturer, rateLimiter *RateLimiter) *LeadHandler {
	return &LeadHandler{
		captureUC:   captureUC,
		rateLimiter: rateLimiter,
	}
}

type CaptureLeadResponse struct {
	Success  bool                       `json:"success"`
	Degraded bool                       `json:"degraded,omitempty"`
	Message  string                     `json:"message,omitempty"`
	Lead     *usecase.CaptureLeadOutput `json:"lead,omitempty"`
}

func (h *LeadHandler) CaptureLead(w http.ResponseWriter, r *http.Request) {
	if h.rateLimiter != nil && !h.rateLimiter.Allow(getClientIP(r)) {
		writeJSON(w, http.StatusTooManyRequests, CaptureLeadResponse{
			Message: "Too many requests. Please try again later.",
		})
		return
	}

	var req usecase.CaptureLeadInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, CaptureLeadResponse{Message: "Invalid JSON"})
		return
	}

	output, err := h.captureUC.Execute(r.Context(), req)
	if err != nil {
		if usecase.IsTechnicalError(err) && output != nil {
			// Modo degradado explícito: o lead foi pontuado mas não persistido.
			writeJSON(w, http.StatusServiceUnavailable, CaptureLeadResponse{
				Degraded: true,
				Message:  "Lead scored but not persisted",
				Lead:     output,
			})
			return
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, CaptureLeadResponse{Success: true, Lead: output})
}

func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}

// RateLimiter é uma janela fixa por IP, em memória.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    int
	window   time.Duration
	now      func() time.Time
}

type visitor struct {
	count     int
	lastReset time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    limit,
		window:   window,
		now:      time.Now,
	}
}

func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	v, exists := rl.visitors[ip]
	if !exists || now.Sub(v.lastReset) > rl.window {
		rl.visitors[ip] = &visitor{count: 1, lastReset: now}
		return true
	}

	v.count++
	return v.count <= rl.limit
}

// Cleanup remove visitantes inativos até ctx ser cancelado.
func (rl *RateLimiter) Cleanup(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.mu.Lock()
			now := rl.now()
			for ip, v := range rl.visitors {
				if now.Sub(v.lastReset) > rl.window*2 {
					delete(rl.visitors, ip)
				}
			}
			rl.mu.Unlock()
		}
	}
}
