package dto

import (
	"time"

	"github.com/jportela/producao-pro/internal/domain/entity"
)

// NotificationResponse registro de notificação (trilha de auditoria).
type NotificationResponse struct {
	ID         string    `json:"id"`
	OrderID    string    `json:"order_id"`
	Event      string    `json:"event"`
	Channel    string    `json:"channel"`
	Recipient  string    `json:"recipient"`
	Payload    string    `json:"payload"`
	Response   string    `json:"response,omitempty"`
	HTTPStatus *int      `json:"http_status,omitempty"`
	SendKind   string    `json:"send_kind"`
	Status     string    `json:"status"`
	Attempts   int       `json:"attempts"`
	CreatedAt  time.Time `json:"created_at"`
}

// FromNotification converte a entidade para resposta.
func FromNotification(n *entity.NotificationRecord) *NotificationResponse {
	if n == nil {
		return nil
	}
	return &NotificationResponse{
		ID:         n.ID,
		OrderID:    n.OrderID,
		Event:      n.Event,
		Channel:    n.Channel,
		Recipient:  n.Recipient,
		Payload:    n.Payload,
		Response:   n.Response,
		HTTPStatus: n.HTTPStatus,
		SendKind:   n.SendKind,
		Status:     string(n.Status),
		Attempts:   n.Attempts,
		CreatedAt:  n.CreatedAt,
	}
}
