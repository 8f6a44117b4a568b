package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jportela/producao-pro/internal/application/authz"
	"github.com/jportela/producao-pro/internal/application/dto"
	"github.com/jportela/producao-pro/internal/domain"
	"github.com/jportela/producao-pro/internal/domain/entity"
	"github.com/jportela/producao-pro/internal/domain/repository"
)

// permissionResolver contrato mínimo de autorização para os casos de uso de
// pedidos (implementado por *authz.Resolver).
type permissionResolver interface {
	CanPerform(ctx context.Context, actor authz.Actor, companyID string,
		module entity.Module, cap entity.Capability) (bool, error)
}

// OrderUseCase CRUD de pedidos e o ciclo de vida principal (status).
// A etapa de produção é assunto do pacote production.
type OrderUseCase struct {
	orders   repository.OrderRepository
	resolver permissionResolver
}

// NewOrderUseCase constrói o caso de uso.
func NewOrderUseCase(orders repository.OrderRepository, resolver permissionResolver) *OrderUseCase {
	return &OrderUseCase{orders: orders, resolver: resolver}
}

func (uc *OrderUseCase) authorize(ctx context.Context, actor authz.Actor, companyID string, cap entity.Capability) error {
	ok, err := uc.resolver.CanPerform(ctx, actor, companyID, entity.ModuleVendas, cap)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrForbidden
	}
	return nil
}

// Create cria um pedido: nasce pendente e fora da esteira.
func (uc *OrderUseCase) Create(ctx context.Context, actor authz.Actor, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if err := uc.authorize(ctx, actor, actor.CompanyID, entity.CapEdit); err != nil {
		return nil, err
	}
	if in.CustomerName == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	order := &entity.Order{
		ID:              uuid.New().String(),
		CompanyID:       actor.CompanyID,
		CustomerName:    in.CustomerName,
		CustomerPhone:   in.CustomerPhone,
		ProductDesc:     in.ProductDesc,
		Size:            in.Size,
		Color:           in.Color,
		Quantity:        in.Quantity,
		UnitPrice:       in.UnitPrice,
		Status:          entity.StatusPendente,
		ProductionStage: entity.StageNone,
		CreatedBy:       actor.UserID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("criar pedido: %w", err)
	}
	return dto.FromOrder(order), nil
}

// GetByID pedido por id, com isolamento de tenant via resolver.
func (uc *OrderUseCase) GetByID(ctx context.Context, actor authz.Actor, id string) (*dto.OrderResponse, error) {
	order, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.authorize(ctx, actor, order.CompanyID, entity.CapView); err != nil {
		return nil, err
	}
	return dto.FromOrder(order), nil
}

// List pedidos da empresa do ator.
func (uc *OrderUseCase) List(ctx context.Context, actor authz.Actor, status entity.OrderStatus, page dto.PageRequest) ([]*dto.OrderResponse, error) {
	if err := uc.authorize(ctx, actor, actor.CompanyID, entity.CapView); err != nil {
		return nil, err
	}
	page.DefaultPage()
	orders, err := uc.orders.List(ctx, actor.CompanyID, repository.OrderFilter{
		Status: status,
		Limit:  page.Limit,
		Offset: page.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := make([]*dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, dto.FromOrder(o))
	}
	return out, nil
}

// Board pedidos em esteira da empresa do ator, para montar o quadro por
// etapa. Mesma concessão de visualização das demais leituras.
func (uc *OrderUseCase) Board(ctx context.Context, actor authz.Actor) ([]*entity.Order, error) {
	if err := uc.authorize(ctx, actor, actor.CompanyID, entity.CapView); err != nil {
		return nil, err
	}
	return uc.orders.ListBoard(ctx, actor.CompanyID)
}

// Update edição explícita dos atributos de cliente/produto. Status e etapa
// não passam por aqui.
func (uc *OrderUseCase) Update(ctx context.Context, actor authz.Actor, id string, in dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	order, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.authorize(ctx, actor, order.CompanyID, entity.CapEdit); err != nil {
		return nil, err
	}
	if in.CustomerName == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	order.CustomerName = in.CustomerName
	order.CustomerPhone = in.CustomerPhone
	order.ProductDesc = in.ProductDesc
	order.Size = in.Size
	order.Color = in.Color
	order.Quantity = in.Quantity
	order.UnitPrice = in.UnitPrice
	order.UpdatedAt = time.Now()
	if err := uc.orders.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("atualizar pedido: %w", err)
	}
	return dto.FromOrder(order), nil
}

// UpdateStatus muda o ciclo de vida principal. Transições permitidas:
// pendente→producao, pendente→cancelado, producao→cancelado (limpa a etapa).
// concluido nunca é alcançado por aqui: só pelo Quality Gate ou pelo
// ForceComplete auditado.
func (uc *OrderUseCase) UpdateStatus(ctx context.Context, actor authz.Actor, id string, status entity.OrderStatus) (*dto.OrderResponse, error) {
	if !status.IsValid() || status == entity.StatusConcluido {
		return nil, domain.ErrInvalidTransition
	}
	order, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.authorize(ctx, actor, order.CompanyID, entity.CapEdit); err != nil {
		return nil, err
	}

	allowed := false
	switch order.Status {
	case entity.StatusPendente:
		allowed = status == entity.StatusProducao || status == entity.StatusCancelado
	case entity.StatusProducao:
		allowed = status == entity.StatusCancelado
	}
	if !allowed {
		return nil, domain.ErrInvalidTransition
	}

	// Cancelar tira o pedido da esteira — preserva o invariante
	// etapa != none => status = producao.
	order.Status = status
	order.ProductionStage = entity.StageNone
	order.UpdatedAt = time.Now()
	if err := uc.orders.UpdateStatus(ctx, order.ID, order.Status, order.ProductionStage); err != nil {
		return nil, fmt.Errorf("atualizar status: %w", err)
	}
	return dto.FromOrder(order), nil
}

// ForceComplete conclusão administrativa sem Quality Gate. Herdeira do antigo
// caminho de edição direta de status, agora explícita e auditada: restrita a
// admin/superadmin, exige motivo e grava entrada force no histórico.
func (uc *OrderUseCase) ForceComplete(ctx context.Context, actor authz.Actor, id, reason string) (*dto.OrderResponse, error) {
	if actor.Role != entity.RoleAdmin && actor.Role != entity.RoleSuperadmin {
		return nil, domain.ErrForbidden
	}
	if reason == "" {
		return nil, domain.ErrInvalidInput
	}
	order, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.authorize(ctx, actor, order.CompanyID, entity.CapEdit); err != nil {
		return nil, err
	}
	if order.Status == entity.StatusConcluido || order.Status == entity.StatusCancelado {
		return nil, domain.ErrInvalidTransition
	}

	completed := entity.StatusConcluido
	updated, err := uc.orders.ApplyTransition(ctx, repository.StageTransition{
		OrderID:       order.ID,
		CompanyID:     order.CompanyID,
		ExpectedStage: order.ProductionStage,
		NewStage:      entity.StageNone,
		NewStatus:     &completed,
		Log: entity.StageLog{
			ID:        uuid.New().String(),
			OrderID:   order.ID,
			FromStage: order.ProductionStage,
			ToStage:   entity.StageNone,
			Kind:      entity.LogKindForce,
			ActorID:   actor.UserID,
			Reason:    reason,
			CreatedAt: time.Now(),
		},
	})
	if err != nil {
		return nil, err
	}
	return dto.FromOrder(updated), nil
}

// StageHistory histórico de etapas do pedido (trilha de auditoria).
func (uc *OrderUseCase) StageHistory(ctx context.Context, actor authz.Actor, id string) ([]dto.StageLogResponse, error) {
	order, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.authorize(ctx, actor, order.CompanyID, entity.CapView); err != nil {
		return nil, err
	}
	logs, err := uc.orders.ListStageLogs(ctx, id)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StageLogResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, dto.StageLogResponse{
			ID:        l.ID,
			OrderID:   l.OrderID,
			FromStage: l.FromStage,
			ToStage:   l.ToStage,
			Kind:      l.Kind,
			ActorID:   l.ActorID,
			Reason:    l.Reason,
			CreatedAt: l.CreatedAt,
		})
	}
	return out, nil
}
