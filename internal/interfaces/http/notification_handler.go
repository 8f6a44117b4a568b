package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jportela/producao-pro/internal/application/dto"
	"github.com/jportela/producao-pro/internal/application/notification"
)

// NotificationHandler consulta a trilha de notificações e dispara reenvios.
type NotificationHandler struct {
	dispatcher *notification.Dispatcher
}

// NewNotificationHandler constrói o handler.
func NewNotificationHandler(dispatcher *notification.Dispatcher) *NotificationHandler {
	return &NotificationHandler{dispatcher: dispatcher}
}

// ListByOrder godoc
// @Summary      Histórico de notificações do pedido
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID do pedido"
// @Success      200  {array}  dto.NotificationResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/notifications [get]
func (h *NotificationHandler) ListByOrder(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id é obrigatório"})
	}
	records, err := h.dispatcher.ListByOrder(c.Context(), GetActor(c), id)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]*dto.NotificationResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, dto.FromNotification(rec))
	}
	return c.JSON(out)
}

// Resend godoc
// @Summary      Reenviar uma notificação manualmente
// @Description  Clona o registro original como envio manual pendente; o worker
// @Description  de outbox faz o envio na próxima varredura.
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID da notificação"
// @Success      202  {object}  dto.NotificationResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/notifications/{id}/resend [post]
func (h *NotificationHandler) Resend(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id é obrigatório"})
	}
	rec, err := h.dispatcher.Resend(c.Context(), GetActor(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(dto.FromNotification(rec))
}
