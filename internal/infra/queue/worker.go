package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"

	"github.com/xavierca1/ligue-outbound/internal/entity"
	"github.com/xavierca1/ligue-outbound/internal/infra/http/middleware"
)

// FollowUpSender envia o email de follow-up de um passo da cadência.
type FollowUpSender interface {
	SendFollowUp(to, name, company string, step int, tone string) error
}

// VoiceCaller places an outbound call and returns the provider call id.
type VoiceCaller interface {
	PlaceCall(ctx context.Context, phone, name string, step int) (string, error)
}

// ContactRecorder commits the CONTACTED transition after a successful send.
type ContactRecorder interface {
	Eligible(ctx context.Context, leadID string, channel entity.Channel, step int) (bool, error)
	Record(ctx context.Context, leadID string, channel entity.Channel, step int) (bool, error)
}

type Worker struct {
	Channel  *amqp.Channel
	Mailer   FollowUpSender
	Caller   VoiceCaller
	Recorder ContactRecorder
}

func NewWorker(ch *amqp.Channel, mailer FollowUpSender, caller VoiceCaller, recorder ContactRecorder) *Worker {
	return &Worker{
		Channel:  ch,
		Mailer:   mailer,
		Caller:   caller,
		Recorder: recorder,
	}
}

// Start consome a fila até ctx ser cancelado.
func (w *Worker) Start(ctx context.Context, queueName string) error {
	msgs, err := w.Channel.ConsumeWithContext(ctx,
		queueName,
		"",    // consumer
		false, // auto-ack (manual é mais seguro)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("falha ao registrar consumidor RabbitMQ: %w", err)
	}

	log.Info().Str("queue", queueName).Msg("dispatcher worker waiting for actions")

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return errors.New("canal de entregas fechado")
			}
			w.handleDelivery(ctx, d)
		}
	}
}

func (w *Worker) handleDelivery(ctx context.Context, d amqp.Delivery) {
	var payload ActionPayload
	if err := json.Unmarshal(d.Body, &payload); err != nil {
		log.Error().Err(err).Msg("invalid action payload, sending to DLQ")
		d.Nack(false, false)
		return
	}

	logger := log.With().
		Str("lead_id", payload.LeadID).
		Str("channel", string(payload.Channel)).
		Int("step", payload.Step).
		Logger()

	if err := w.processMessage(ctx, payload); err != nil {
		logger.Error().Err(err).Msg("dispatch failed")
		middleware.RecordActionDispatched(string(payload.Channel), "failed")
		d.Nack(false, false)
		return
	}

	logger.Info().Msg("dispatch completed")
	d.Ack(false)
}

func (w *Worker) processMessage(ctx context.Context, payload ActionPayload) error {
	eligible, err := w.Recorder.Eligible(ctx, payload.LeadID, payload.Channel, payload.Step)
	if err != nil {
		return err
	}
	if !eligible {
		// Lead saiu da sequência (reunião marcada, DEAD) ou passo já enviado.
		middleware.RecordActionDispatched(string(payload.Channel), "skipped")
		return nil
	}

	switch payload.Channel {
	case entity.ChannelEmail:
		err = w.Mailer.SendFollowUp(payload.Email, payload.Name, payload.Company, payload.Step, payload.Tone)
	case entity.ChannelCall:
		if payload.Phone == "" {
			// Tentativa sem telefone também avança o call_count.
			log.Warn().Str("lead_id", payload.LeadID).Msg("call skipped, no phone number")
			if _, err := w.Recorder.Record(ctx, payload.LeadID, payload.Channel, payload.Step); err != nil {
				return err
			}
			middleware.RecordActionDispatched(string(payload.Channel), "skipped")
			return nil
		}
		_, err = w.Caller.PlaceCall(ctx, payload.Phone, payload.Name, payload.Step)
	default:
		log.Warn().Str("channel", string(payload.Channel)).Msg("unknown channel, dropping action")
		return nil
	}
	if err != nil {
		return fmt.Errorf("envio %s falhou: %w", payload.Channel, err)
	}

	applied, err := w.Recorder.Record(ctx, payload.LeadID, payload.Channel, payload.Step)
	if err != nil {
		return err
	}
	if !applied {
		log.Warn().Str("lead_id", payload.LeadID).Msg("contact sent but lead changed before commit")
	}
	middleware.RecordActionDispatched(string(payload.Channel), "sent")
	return nil
}
