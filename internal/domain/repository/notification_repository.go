package repository

import (
	"context"
	"time"

	"github.com/jportela/producao-pro/internal/domain/entity"
)

// NotificationRepository porta da fila de saída (outbox) de notificações.
type NotificationRepository interface {
	Enqueue(ctx context.Context, record *entity.NotificationRecord) error
	GetByID(ctx context.Context, id string) (*entity.NotificationRecord, error)
	ListByOrder(ctx context.Context, orderID string) ([]*entity.NotificationRecord, error)
	// ClaimPending devolve até limit registros pendentes prontos para envio
	// (next_attempt_at nulo ou vencido) e empurra o next_attempt_at deles
	// para now+lease na mesma instrução. Durante o prazo da reivindicação
	// nenhuma outra instância os enxerga; RecordResult sobrescreve o prazo
	// com o resultado definitivo. Instância que morrer no meio devolve a
	// linha ao vencer o prazo.
	ClaimPending(ctx context.Context, now time.Time, lease time.Duration, limit int) ([]*entity.NotificationRecord, error)
	// RecordResult preenche o resultado de uma tentativa de envio.
	RecordResult(ctx context.Context, id string, status entity.NotificationStatus,
		httpStatus *int, response string, attempts int, nextAttemptAt *time.Time) error
}
