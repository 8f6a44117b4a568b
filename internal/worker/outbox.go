// Package worker contém os processos de fundo da aplicação.
package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/jportela/producao-pro/internal/domain/entity"
)

// OutboxStore operações da fila de saída que o worker consome.
type OutboxStore interface {
	ClaimPending(ctx context.Context, now time.Time, lease time.Duration, limit int) ([]*entity.NotificationRecord, error)
	RecordResult(ctx context.Context, id string, status entity.NotificationStatus,
		httpStatus *int, response string, attempts int, nextAttemptAt *time.Time) error
}

// Sender envia uma notificação ao provedor. Devolve o status HTTP
// (0 = falha de transporte, sem resposta) e o corpo da resposta.
type Sender interface {
	Send(ctx context.Context, rec *entity.NotificationRecord) (int, string, error)
}

// OutboxProcessor varre a fila de saída e envia as notificações pendentes.
// Uma falha de envio nunca se propaga: o resultado fica no próprio registro.
type OutboxProcessor struct {
	store       OutboxStore
	sender      Sender
	interval    time.Duration
	batchSize   int
	maxAttempts int
	backoff     time.Duration
	log         zerolog.Logger
}

// NewOutboxProcessor constrói o worker. maxAttempts = 1 preserva a semântica
// de no máximo um envio por notificação.
func NewOutboxProcessor(store OutboxStore, sender Sender, interval time.Duration,
	batchSize, maxAttempts int, backoff time.Duration, log zerolog.Logger) *OutboxProcessor {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	if batchSize <= 0 {
		batchSize = 20
	}
	if maxAttempts <= 0 {
		maxAttempts = 1
	}
	if backoff <= 0 {
		backoff = 30 * time.Second
	}
	return &OutboxProcessor{
		store:       store,
		sender:      sender,
		interval:    interval,
		batchSize:   batchSize,
		maxAttempts: maxAttempts,
		backoff:     backoff,
		log:         log,
	}
}

// Run processa a fila em laço até o contexto ser cancelado.
func (p *OutboxProcessor) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.log.Debug().Msg("outbox worker encerrado")
			return
		case <-ticker.C:
			if err := p.ProcessBatch(ctx); err != nil {
				p.log.Error().Err(err).Msg("varredura do outbox falhou")
			}
		}
	}
}

// ProcessBatch faz uma varredura: reivindica pendentes e tenta enviar cada um.
func (p *OutboxProcessor) ProcessBatch(ctx context.Context) error {
	// O prazo da reivindicação reutiliza o backoff: se o processo morrer com
	// o envio no meio, a linha volta a ficar visível depois desse prazo.
	records, err := p.store.ClaimPending(ctx, time.Now(), p.backoff, p.batchSize)
	if err != nil {
		return err
	}
	for _, rec := range records {
		p.deliver(ctx, rec)
	}
	return nil
}

// deliver tenta um envio e grava o resultado no registro.
func (p *OutboxProcessor) deliver(ctx context.Context, rec *entity.NotificationRecord) {
	attempts := rec.Attempts + 1
	httpStatus, body, err := p.sender.Send(ctx, rec)

	var statusPtr *int
	if httpStatus != 0 {
		statusPtr = &httpStatus
	}

	if err == nil {
		if recErr := p.store.RecordResult(ctx, rec.ID, entity.NotificationSent, statusPtr, body, attempts, nil); recErr != nil {
			p.log.Error().Err(recErr).Str("notification_id", rec.ID).Msg("gravar resultado de envio falhou")
		}
		p.log.Info().Str("notification_id", rec.ID).Str("order_id", rec.OrderID).
			Str("event", rec.Event).Msg("notificação enviada")
		return
	}

	if attempts < p.maxAttempts {
		// Mantém pendente com backoff linear até esgotar as tentativas.
		next := time.Now().Add(p.backoff)
		if recErr := p.store.RecordResult(ctx, rec.ID, entity.NotificationPending, statusPtr, body, attempts, &next); recErr != nil {
			p.log.Error().Err(recErr).Str("notification_id", rec.ID).Msg("gravar retentativa falhou")
		}
		p.log.Warn().Err(err).Str("notification_id", rec.ID).Int("attempts", attempts).
			Msg("envio falhou; retentativa agendada")
		return
	}

	if recErr := p.store.RecordResult(ctx, rec.ID, entity.NotificationFailed, statusPtr, body, attempts, nil); recErr != nil {
		p.log.Error().Err(recErr).Str("notification_id", rec.ID).Msg("gravar falha de envio falhou")
	}
	p.log.Warn().Err(err).Str("notification_id", rec.ID).Str("order_id", rec.OrderID).
		Msg("notificação marcada como falha")
}
