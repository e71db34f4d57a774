package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "outbound"

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	activeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "http_active_connections",
			Help:      "Number of active HTTP connections",
		},
	)

	sequenceRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "sequence_runs_total",
			Help:      "Total number of sequencing passes by result",
		},
		[]string{"result"},
	)

	leadsDead = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "leads_dead_total",
			Help:      "Total number of leads retired by the sequencing engine",
		},
	)

	actionsQueued = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "actions_queued_total",
			Help:      "Total number of outbound actions published to the queue",
		},
		[]string{"channel"},
	)

	actionsDispatched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "actions_dispatched_total",
			Help:      "Total number of outbound actions handled by the dispatcher",
		},
		[]string{"channel", "result"},
	)

	webhookEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "webhook_events_total",
			Help:      "Total number of scheduling webhook events by outcome",
		},
		[]string{"result"},
	)
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		activeConnections.Inc()
		defer activeConnections.Dec()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(rw.statusCode)
		path := routePattern(r)

		httpRequestsTotal.WithLabelValues(r.Method, path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path).Observe(duration)
	})
}

// routePattern evita cardinalidade alta usando o padrão da rota do chi.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return r.URL.Path
}

func RecordSequenceRun(result string) {
	sequenceRuns.WithLabelValues(result).Inc()
}

func RecordLeadsDead(n int) {
	leadsDead.Add(float64(n))
}

func RecordActionsQueued(channel string, n int) {
	actionsQueued.WithLabelValues(channel).Add(float64(n))
}

func RecordActionDispatched(channel, result string) {
	actionsDispatched.WithLabelValues(channel, result).Inc()
}

func RecordWebhookEvent(result string) {
	webhookEvents.WithLabelValues(result).Inc()
}
