// Package production (camada de aplicação) orquestra a esteira: autorização,
// validação da máquina de etapas, persistência atômica e enfileiramento da
// notificação. Os pacotes aqui não conhecem HTTP nem SQL.
package production

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jportela/producao-pro/internal/application/authz"
	"github.com/jportela/producao-pro/internal/application/notification"
	"github.com/jportela/producao-pro/internal/domain"
	"github.com/jportela/producao-pro/internal/domain/entity"
	"github.com/jportela/producao-pro/internal/domain/production"
	"github.com/jportela/producao-pro/internal/domain/repository"
)

// permissionResolver contrato mínimo de autorização (implementado por
// *authz.Resolver; interface evita acoplamento e facilita fakes nos testes).
type permissionResolver interface {
	CanPerform(ctx context.Context, actor authz.Actor, companyID string,
		module entity.Module, cap entity.Capability) (bool, error)
}

// MoveStageInput intenção de movimento vinda do quadro.
type MoveStageInput struct {
	OrderID string
	From    entity.Stage // etapa que o cliente observava
	To      entity.Stage
}

// MoveStageUseCase move um pedido pela esteira de produção.
type MoveStageUseCase struct {
	orders   repository.OrderRepository
	resolver permissionResolver
}

// NewMoveStageUseCase constrói o caso de uso.
func NewMoveStageUseCase(orders repository.OrderRepository, resolver permissionResolver) *MoveStageUseCase {
	return &MoveStageUseCase{orders: orders, resolver: resolver}
}

// Move valida e aplica uma transição de etapa.
//
//   - A etapa persistida é a autoritativa: divergência com From devolve
//     StaleStageError para o cliente ressincronizar.
//   - Exige capacidade de edição no módulo vendas da empresa do pedido.
//   - Persistência via procedimento atômico: atualização condicional +
//     histórico + linha de outbox em uma transação.
//   - Embalagem não avança por aqui: a expedição exige o Quality Gate.
func (uc *MoveStageUseCase) Move(ctx context.Context, actor authz.Actor, in MoveStageInput) (*entity.Order, error) {
	order, err := uc.orders.GetByID(ctx, in.OrderID)
	if err != nil {
		return nil, fmt.Errorf("carregar pedido: %w", err)
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}

	ok, err := uc.resolver.CanPerform(ctx, actor, order.CompanyID, entity.ModuleVendas, entity.CapEdit)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrForbidden
	}

	if err := production.ValidateMove(order, in.From, in.To); err != nil {
		return nil, err
	}

	updated, err := uc.orders.ApplyTransition(ctx, repository.StageTransition{
		OrderID:       order.ID,
		CompanyID:     order.CompanyID,
		ExpectedStage: order.ProductionStage,
		NewStage:      in.To,
		Log: entity.StageLog{
			ID:        uuid.New().String(),
			OrderID:   order.ID,
			FromStage: order.ProductionStage,
			ToStage:   in.To,
			Kind:      entity.LogKindMove,
			ActorID:   actor.UserID,
			CreatedAt: time.Now(),
		},
		Notification: notification.NewAutomaticRecord(order, string(in.To)),
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Revert volta o pedido exatamente uma etapa, como correção explícita de um
// movimento errado. Não é uma transição da tabela: tem tipo próprio no
// histórico (revert), exige motivo e não dispara notificação ao cliente.
func (uc *MoveStageUseCase) Revert(ctx context.Context, actor authz.Actor, orderID, reason string) (*entity.Order, error) {
	if reason == "" {
		return nil, domain.ErrInvalidInput
	}

	order, err := uc.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("carregar pedido: %w", err)
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}

	ok, err := uc.resolver.CanPerform(ctx, actor, order.CompanyID, entity.ModuleVendas, entity.CapEdit)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrForbidden
	}

	prev, hasPrev := production.Prev(order.ProductionStage)
	if !hasPrev {
		return nil, domain.ErrInvalidTransition
	}

	updated, err := uc.orders.ApplyTransition(ctx, repository.StageTransition{
		OrderID:       order.ID,
		CompanyID:     order.CompanyID,
		ExpectedStage: order.ProductionStage,
		NewStage:      prev,
		Log: entity.StageLog{
			ID:        uuid.New().String(),
			OrderID:   order.ID,
			FromStage: order.ProductionStage,
			ToStage:   prev,
			Kind:      entity.LogKindRevert,
			ActorID:   actor.UserID,
			Reason:    reason,
			CreatedAt: time.Now(),
		},
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
