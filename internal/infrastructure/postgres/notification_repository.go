package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jportela/producao-pro/internal/domain/entity"
	"github.com/jportela/producao-pro/internal/domain/repository"
)

var _ repository.NotificationRepository = (*NotificationRepo)(nil)

const notificationColumns = `id, order_id, company_id, event, channel, recipient, payload, response,
	http_status, send_kind, status, attempts, next_attempt_at, created_at, updated_at`

// NotificationRepo implementação do porto NotificationRepository (outbox) sobre PostgreSQL.
type NotificationRepo struct {
	q Querier
}

// NewNotificationRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewNotificationRepository(q Querier) *NotificationRepo {
	return &NotificationRepo{q: q}
}

// Enqueue insere um registro pendente na fila de saída.
func (r *NotificationRepo) Enqueue(ctx context.Context, record *entity.NotificationRecord) error {
	query := `
		INSERT INTO notification_outbox (id, order_id, company_id, event, channel, recipient,
			payload, send_kind, status, attempts, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 0, now(), now())`
	_, err := r.q.Exec(ctx, query,
		record.ID, record.OrderID, record.CompanyID, record.Event, record.Channel,
		record.Recipient, record.Payload, record.SendKind, entity.NotificationPending,
	)
	if err != nil {
		return fmt.Errorf("enqueue notification: %w", err)
	}
	return nil
}

// GetByID obtém um registro por ID. (nil, nil) se não existe.
func (r *NotificationRepo) GetByID(ctx context.Context, id string) (*entity.NotificationRecord, error) {
	query := `SELECT ` + notificationColumns + ` FROM notification_outbox WHERE id = $1`
	rec, err := scanNotification(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get notification: %w", err)
	}
	return rec, nil
}

// ListByOrder histórico de notificações do pedido, do mais recente ao mais antigo.
func (r *NotificationRepo) ListByOrder(ctx context.Context, orderID string) ([]*entity.NotificationRecord, error) {
	query := `SELECT ` + notificationColumns + ` FROM notification_outbox
		WHERE order_id = $1 ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	var records []*entity.NotificationRecord
	for rows.Next() {
		rec, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// ClaimPending devolve até limit pendentes prontos para envio e empurra o
// next_attempt_at deles para now+lease na mesma instrução. FOR UPDATE SKIP
// LOCKED resolve a disputa entre instâncias concorrentes; o prazo empurrado
// mantém a linha invisível depois que a transação da reivindicação comita,
// até RecordResult gravar o resultado definitivo.
func (r *NotificationRepo) ClaimPending(ctx context.Context, now time.Time, lease time.Duration, limit int) ([]*entity.NotificationRecord, error) {
	query := `
		UPDATE notification_outbox SET updated_at = $1, next_attempt_at = $2
		WHERE id IN (
			SELECT id FROM notification_outbox
			WHERE status = 'pending' AND (next_attempt_at IS NULL OR next_attempt_at <= $1)
			ORDER BY created_at ASC
			LIMIT $3
			FOR UPDATE SKIP LOCKED
		)
		RETURNING ` + notificationColumns
	rows, err := r.q.Query(ctx, query, now, now.Add(lease), limit)
	if err != nil {
		return nil, fmt.Errorf("claim pending notifications: %w", err)
	}
	defer rows.Close()

	var records []*entity.NotificationRecord
	for rows.Next() {
		rec, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// RecordResult preenche o resultado de uma tentativa de envio.
func (r *NotificationRepo) RecordResult(ctx context.Context, id string, status entity.NotificationStatus,
	httpStatus *int, response string, attempts int, nextAttemptAt *time.Time) error {
	query := `
		UPDATE notification_outbox
		SET status = $1, http_status = $2, response = $3, attempts = $4, next_attempt_at = $5, updated_at = now()
		WHERE id = $6`
	tag, err := r.q.Exec(ctx, query, status, httpStatus, response, attempts, nextAttemptAt, id)
	if err != nil {
		return fmt.Errorf("record notification result: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("record notification result: id %s não encontrado", id)
	}
	return nil
}

func scanNotification(row pgx.Row) (*entity.NotificationRecord, error) {
	var rec entity.NotificationRecord
	err := row.Scan(&rec.ID, &rec.OrderID, &rec.CompanyID, &rec.Event, &rec.Channel,
		&rec.Recipient, &rec.Payload, &rec.Response, &rec.HTTPStatus, &rec.SendKind,
		&rec.Status, &rec.Attempts, &rec.NextAttemptAt, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
