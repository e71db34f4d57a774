package worker

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/xavierca1/ligue-outbound/internal/entity"
	"github.com/xavierca1/ligue-outbound/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-outbound/internal/usecase"
)

var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

type TenantLister interface {
	ListTenantIDs(ctx context.Context) ([]string, error)
}

type SequenceRunner interface {
	Execute(ctx context.Context, tenantID string, clock usecase.Clock) (*usecase.SequenceSummary, error)
}

type ActionQueuer interface {
	Execute(ctx context.Context, summary *usecase.SequenceSummary, clock usecase.Clock) (*usecase.QueueActionsOutput, error)
}

// SequenceWorker roda uma passada do motor para cada tenant no ritmo do cron.
type SequenceWorker struct {
	tenants TenantLister
	runner  SequenceRunner
	queuer  ActionQueuer
	clock   usecase.Clock
	spec    string
}

// TickResult resume uma execução do RunOnce.
type TickResult struct {
	Tenants         int
	Failed          int
	DeadLeads       int
	EmailsPublished int
	CallsPublished  int
}

func NewSequenceWorker(tenants TenantLister, runner SequenceRunner, queuer ActionQueuer, clock usecase.Clock, spec string) *SequenceWorker {
	return &SequenceWorker{
		tenants: tenants,
		runner:  runner,
		queuer:  queuer,
		clock:   clock,
		spec:    spec,
	}
}

// ValidateSpec confere a expressão cron (5 campos).
func ValidateSpec(spec string) error {
	if _, err := cronParser.Parse(spec); err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", spec, err)
	}
	return nil
}

// Start bloqueia até ctx ser cancelado.
func (w *SequenceWorker) Start(ctx context.Context) error {
	c := cron.New(cron.WithParser(cronParser), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := c.AddFunc(w.spec, func() { w.RunOnce(ctx) }); err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", w.spec, err)
	}

	log.Info().Str("schedule", w.spec).Msg("sequence worker iniciado")
	c.Start()

	<-ctx.Done()
	stopped := c.Stop()
	<-stopped.Done()
	log.Info().Msg("sequence worker encerrado")
	return nil
}

// RunOnce processa todos os tenants. Falha em um tenant não interrompe os outros.
func (w *SequenceWorker) RunOnce(ctx context.Context) TickResult {
	var result TickResult

	tenantIDs, err := w.tenants.ListTenantIDs(ctx)
	if err != nil {
		log.Error().Err(err).Msg("falha ao listar tenants")
		middleware.RecordSequenceRun("failed")
		return result
	}

	// Leads são globais: cada policy roda sobre o mesmo pool. A policy mais
	// agressiva decide o DEAD, e ações repetidas entre tenants viram no-op no
	// dispatcher pelo guard count = step-1.
	for _, tenantID := range tenantIDs {
		if ctx.Err() != nil {
			return result
		}
		result.Tenants++

		summary, err := w.runner.Execute(ctx, tenantID, w.clock)
		if err != nil {
			result.Failed++
			middleware.RecordSequenceRun("failed")
			log.Error().Err(err).Str("tenant_id", tenantID).Str("code", usecase.CodeOf(err)).Msg("sequence pass failed")
			continue
		}
		middleware.RecordSequenceRun("ok")
		middleware.RecordLeadsDead(summary.DeadLeads)
		result.DeadLeads += summary.DeadLeads

		if w.queuer == nil {
			continue
		}
		dispatch, err := w.queuer.Execute(ctx, summary, w.clock)
		if dispatch != nil {
			middleware.RecordActionsQueued(string(entity.ChannelEmail), dispatch.EmailsPublished)
			middleware.RecordActionsQueued(string(entity.ChannelCall), dispatch.CallsPublished)
			result.EmailsPublished += dispatch.EmailsPublished
			result.CallsPublished += dispatch.CallsPublished
		}
		if err != nil {
			result.Failed++
			log.Error().Err(err).Str("tenant_id", tenantID).Msg("falha ao enfileirar ações")
		}
	}

	if result.Tenants > 0 {
		log.Info().
			Int("tenants", result.Tenants).
			Int("failed", result.Failed).
			Int("dead_leads", result.DeadLeads).
			Int("emails", result.EmailsPublished).
			Int("calls", result.CallsPublished).
			Msg("sequence tick concluído")
	}
	return result
}
