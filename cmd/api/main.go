package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/xavierca1/ligue-outbound/internal/config"
	"github.com/xavierca1/ligue-outbound/internal/infra/database"
	"github.com/xavierca1/ligue-outbound/internal/infra/http/handlers"
	"github.com/xavierca1/ligue-outbound/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-outbound/internal/infra/integration/voice"
	"github.com/xavierca1/ligue-outbound/internal/infra/logger"
	"github.com/xavierca1/ligue-outbound/internal/infra/mail"
	"github.com/xavierca1/ligue-outbound/internal/infra/queue"
	"github.com/xavierca1/ligue-outbound/internal/infra/worker"
	"github.com/xavierca1/ligue-outbound/internal/usecase"
)

var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Setup("info", "json", os.Stderr)
		log.Fatal().Err(err).Msg("configuração inválida")
	}
	logger.Setup(cfg.LogLevel, cfg.LogFormat, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewDBConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("falha ao conectar no Postgres")
	}
	defer db.Close()

	if err := database.MigrateUp(db); err != nil {
		log.Fatal().Err(err).Msg("falha ao aplicar migrations")
	}

	// 1. Repositórios
	leadRepo := database.NewLeadRepository(db)
	policyRepo := database.NewCadencePolicyRepository(db)
	tenantRepo := database.NewTenantRepository(db)

	clock := usecase.SystemClock{}

	// 2. UseCases
	runSequenceUC := usecase.NewRunSequenceUseCase(leadRepo, policyRepo)
	processBookingUC := usecase.NewProcessBookingUseCase(leadRepo, cfg.WebhookSigningKey, cfg.WebhookTolerance, clock)
	captureLeadUC := usecase.NewCaptureLeadUseCase(leadRepo)
	getCadenceUC := usecase.NewGetCadenceUseCase(policyRepo)
	updateCadenceUC := usecase.NewUpdateCadenceUseCase(policyRepo)
	recordContactUC := usecase.NewRecordContactUseCase(leadRepo, clock)

	if !processBookingUC.Configured() {
		log.Warn().Msg("CALENDLY_WEBHOOK_SIGNING_KEY não definido, webhook responderá 500")
	}

	// 3. Fila (opcional): sem RabbitMQ o motor roda mas nada é despachado.
	var queuer handlers.ActionQueuer
	var rabbitHealth handlers.ClosedChecker
	if cfg.QueueEnabled() {
		rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitMQURL)
		if err != nil {
			log.Fatal().Err(err).Msg("falha ao conectar no RabbitMQ")
		}
		defer rabbitMQ.Close()
		rabbitHealth = rabbitMQ.Conn

		producer := queue.NewProducer(rabbitMQ.Ch)
		queuer = usecase.NewQueueActionsUseCase(leadRepo, policyRepo, producer)

		if !cfg.MailEnabled() {
			log.Warn().Msg("MAIL_HOST não definido, follow-ups por email vão falhar e cair na DLQ")
		}
		mailSender := mail.NewEmailSender(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPass, cfg.MailFrom)
		voiceClient := voice.NewClient(cfg.VoiceAPIURL, cfg.VoiceAPIKey)

		dispatcher := queue.NewWorker(rabbitMQ.Ch, mailSender, voiceClient, recordContactUC)
		go func() {
			if err := dispatcher.Start(ctx, queue.QueueName); err != nil {
				log.Error().Err(err).Msg("dispatcher worker parou")
			}
		}()
	} else {
		log.Warn().Msg("RABBITMQ_URL não definido, ações não serão despachadas")
	}

	// 4. Cron do motor
	if err := worker.ValidateSpec(cfg.SequenceCron); err != nil {
		log.Fatal().Err(err).Msg("SEQUENCE_CRON inválido")
	}
	sequenceWorker := worker.NewSequenceWorker(policyRepo, runSequenceUC, queuer, clock, cfg.SequenceCron)
	go sequenceWorker.Start(ctx)

	// 5. Handlers
	rateLimiter := handlers.NewRateLimiter(10, time.Minute)
	go rateLimiter.Cleanup(ctx, 5*time.Minute)

	sequenceHandler := handlers.NewSequenceHandler(runSequenceUC, queuer, clock)
	webhookHandler := handlers.NewWebhookHandler(processBookingUC)
	leadHandler := handlers.NewLeadHandler(captureLeadUC, rateLimiter)
	cadenceHandler := handlers.NewCadenceHandler(getCadenceUC, updateCadenceUC)
	healthHandler := handlers.NewHealthHandler(db, rabbitHealth, version)

	// 6. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.RequestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())
	r.Post("/webhooks/calendly", webhookHandler.Handle)
	r.Post("/leads", leadHandler.CaptureLead)

	r.Group(func(r chi.Router) {
		r.Use(middleware.TenantAuth(tenantRepo))
		r.Post("/sequence/run", sequenceHandler.HandleRun)
		r.Get("/cadence", cadenceHandler.HandleGet)
		r.Put("/cadence", cadenceHandler.HandleUpdate)
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("version", version).Msg("ligue-outbound rodando")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("servidor HTTP caiu")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("encerrando...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown com erro")
	}
}
