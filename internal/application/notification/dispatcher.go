// Package notification monta as mensagens de acompanhamento do pedido e as
// registra na fila de saída (outbox). O envio em si acontece fora da
// transação, no worker — falha de entrega nunca volta para quem moveu o
// cartão.
package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jportela/producao-pro/internal/application/authz"
	"github.com/jportela/producao-pro/internal/domain"
	"github.com/jportela/producao-pro/internal/domain/entity"
	"github.com/jportela/producao-pro/internal/domain/repository"
)

// EventDispatched evento da expedição aprovada pelo Quality Gate.
// Os demais eventos são o próprio valor da etapa de destino.
const EventDispatched = "dispatched"

// Um template fixo por etapa mais um para a expedição.
var templates = map[string]string{
	string(entity.StageCorte):      "Olá %s! Seu pedido %s entrou em produção: estamos na etapa de corte.",
	string(entity.StageEstampa):    "Olá %s! Seu pedido %s avançou: a estampa está sendo aplicada.",
	string(entity.StageAcabamento): "Olá %s! Seu pedido %s está no acabamento. Falta pouco!",
	string(entity.StageEmbalagem):  "Olá %s! Seu pedido %s está sendo embalado e vai para a inspeção final.",
	EventDispatched:                "Olá %s! Seu pedido %s foi despachado. Acompanhe pelo código de rastreio.",
}

// RenderMessage renderiza o template do evento para o pedido.
// Evento desconhecido cai em uma mensagem genérica de atualização.
func RenderMessage(order *entity.Order, event string) string {
	tpl, ok := templates[event]
	if !ok {
		tpl = "Olá %s! Seu pedido %s foi atualizado."
	}
	return fmt.Sprintf(tpl, order.CustomerName, shortID(order.ID))
}

func shortID(id string) string {
	if len(id) > 8 {
		return "#" + id[:8]
	}
	return "#" + id
}

// NewAutomaticRecord monta a linha de outbox de uma transição de etapa.
// A linha é gravada pelo procedimento atômico junto com a própria transição,
// nunca enviada aqui.
func NewAutomaticRecord(order *entity.Order, event string) *entity.NotificationRecord {
	now := time.Now()
	return &entity.NotificationRecord{
		ID:        uuid.New().String(),
		OrderID:   order.ID,
		CompanyID: order.CompanyID,
		Event:     event,
		Channel:   entity.ChannelWhatsApp,
		Recipient: order.CustomerPhone,
		Payload:   RenderMessage(order, event),
		SendKind:  entity.SendKindAutomatic,
		Status:    entity.NotificationPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewDispatchedRecord linha de outbox do evento de expedição.
func NewDispatchedRecord(order *entity.Order) *entity.NotificationRecord {
	return NewAutomaticRecord(order, EventDispatched)
}

// orderReader leitura de pedidos, só o necessário aqui.
type orderReader interface {
	GetByID(ctx context.Context, id string) (*entity.Order, error)
}

// permissionResolver contrato mínimo de autorização (implementado por
// *authz.Resolver).
type permissionResolver interface {
	CanPerform(ctx context.Context, actor authz.Actor, companyID string,
		module entity.Module, cap entity.Capability) (bool, error)
}

// Dispatcher opera a fila de saída: consulta de trilha e reenvio manual.
// As duas operações resolvem a permissão contra a empresa dona do registro,
// nunca contra a empresa do token.
type Dispatcher struct {
	outbox   repository.NotificationRepository
	orders   orderReader
	resolver permissionResolver
}

// NewDispatcher constrói o despachante sobre a porta de outbox.
func NewDispatcher(outbox repository.NotificationRepository, orders orderReader, resolver permissionResolver) *Dispatcher {
	return &Dispatcher{outbox: outbox, orders: orders, resolver: resolver}
}

func (d *Dispatcher) authorize(ctx context.Context, actor authz.Actor, companyID string, cap entity.Capability) error {
	ok, err := d.resolver.CanPerform(ctx, actor, companyID, entity.ModuleVendas, cap)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrForbidden
	}
	return nil
}

// ListByOrder trilha de notificações de um pedido.
func (d *Dispatcher) ListByOrder(ctx context.Context, actor authz.Actor, orderID string) ([]*entity.NotificationRecord, error) {
	order, err := d.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if err := d.authorize(ctx, actor, order.CompanyID, entity.CapView); err != nil {
		return nil, err
	}
	return d.outbox.ListByOrder(ctx, orderID)
}

// Resend clona um registro existente como envio manual e o re-enfileira.
// O registro original é imutável; o reenvio gera uma nova linha de auditoria.
func (d *Dispatcher) Resend(ctx context.Context, actor authz.Actor, notificationID string) (*entity.NotificationRecord, error) {
	original, err := d.outbox.GetByID(ctx, notificationID)
	if err != nil {
		return nil, err
	}
	if original == nil {
		return nil, domain.ErrNotFound
	}
	if err := d.authorize(ctx, actor, original.CompanyID, entity.CapEdit); err != nil {
		return nil, err
	}
	now := time.Now()
	clone := &entity.NotificationRecord{
		ID:        uuid.New().String(),
		OrderID:   original.OrderID,
		CompanyID: original.CompanyID,
		Event:     original.Event,
		Channel:   original.Channel,
		Recipient: original.Recipient,
		Payload:   original.Payload,
		SendKind:  entity.SendKindManual,
		Status:    entity.NotificationPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := d.outbox.Enqueue(ctx, clone); err != nil {
		return nil, fmt.Errorf("re-enfileirar notificação: %w", err)
	}
	return clone, nil
}
