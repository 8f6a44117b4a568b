package production

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jportela/producao-pro/internal/application/authz"
	"github.com/jportela/producao-pro/internal/application/dto"
	"github.com/jportela/producao-pro/internal/application/notification"
	"github.com/jportela/producao-pro/internal/domain"
	"github.com/jportela/producao-pro/internal/domain/entity"
	"github.com/jportela/producao-pro/internal/domain/repository"
)

// InspectResult saída de uma inspeção. O registro é persistido em qualquer
// desfecho; OrderCompleted indica se a expedição aconteceu.
type InspectResult struct {
	Record         *entity.QualityRecord
	OrderCompleted bool
}

// QualityGateUseCase avalia o checklist de qualidade e a presença do código
// de rastreio para aprovar ou recusar a expedição de um pedido em Embalagem.
type QualityGateUseCase struct {
	orders   repository.OrderRepository
	quality  repository.QualityRepository
	resolver permissionResolver
}

// NewQualityGateUseCase constrói o caso de uso.
func NewQualityGateUseCase(orders repository.OrderRepository, quality repository.QualityRepository,
	resolver permissionResolver) *QualityGateUseCase {
	return &QualityGateUseCase{orders: orders, quality: quality, resolver: resolver}
}

// Inspect registra uma tentativa de inspeção sobre um pedido em Embalagem.
//
// O portão tem duas condições independentes, ambas obrigatórias para concluir:
//   - conformidade: todos os itens do checklist verdadeiros;
//   - prontidão de despacho: código de rastreio não vazio.
//
// Aprovado + rastreio → pedido concluído, etapa limpa, notificação
// "dispatched" enfileirada (tudo atômico). Aprovado sem rastreio → registro
// fica, pedido não muda (aprovação parcial). Qualquer item falso → registro
// de reprovação fica, o pedido permanece em Embalagem para reinspeção, e o
// retorno é GateRejectedError com os itens reprovados.
func (uc *QualityGateUseCase) Inspect(ctx context.Context, actor authz.Actor,
	orderID string, in dto.InspectionRequest) (*InspectResult, error) {

	if len(in.Checklist) == 0 {
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

	// Só se inspeciona o que chegou ao fim da esteira.
	if order.Status != entity.StatusProducao || order.ProductionStage != entity.StageEmbalagem {
		return nil, domain.ErrInvalidTransition
	}

	approved := true
	for _, item := range in.Checklist {
		if !item {
			approved = false
			break
		}
	}

	record := &entity.QualityRecord{
		ID:           uuid.New().String(),
		OrderID:      order.ID,
		OperatorID:   actor.UserID,
		Checklist:    in.Checklist,
		TrackingCode: in.TrackingCode,
		Carrier:      in.Carrier,
		Approved:     approved,
		Notes:        in.Notes,
		CreatedAt:    time.Now(),
	}
	if err := uc.quality.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("gravar registro de inspeção: %w", err)
	}

	if !approved {
		failed := record.FailedItems()
		sort.Strings(failed)
		return &InspectResult{Record: record},
			&domain.GateRejectedError{OrderID: order.ID, Failed: failed}
	}

	if in.TrackingCode == "" {
		// Aprovação parcial: qualidade ok mas sem prontidão de despacho.
		return &InspectResult{Record: record}, nil
	}

	completed := entity.StatusConcluido
	if _, err := uc.orders.ApplyTransition(ctx, repository.StageTransition{
		OrderID:       order.ID,
		CompanyID:     order.CompanyID,
		ExpectedStage: entity.StageEmbalagem,
		NewStage:      entity.StageNone,
		NewStatus:     &completed,
		Log: entity.StageLog{
			ID:        uuid.New().String(),
			OrderID:   order.ID,
			FromStage: entity.StageEmbalagem,
			ToStage:   entity.StageNone,
			Kind:      entity.LogKindDispatch,
			ActorID:   actor.UserID,
			CreatedAt: time.Now(),
		},
		Notification: notification.NewDispatchedRecord(order),
	}); err != nil {
		// O registro de inspeção já está persistido; a expedição pode ser
		// repetida depois de ressincronizar.
		return &InspectResult{Record: record}, err
	}

	return &InspectResult{Record: record, OrderCompleted: true}, nil
}

// ListInspections histórico de inspeções de um pedido (mais recente primeiro).
func (uc *QualityGateUseCase) ListInspections(ctx context.Context, actor authz.Actor,
	orderID string) ([]*entity.QualityRecord, error) {

	order, err := uc.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	ok, err := uc.resolver.CanPerform(ctx, actor, order.CompanyID, entity.ModuleVendas, entity.CapView)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrForbidden
	}
	return uc.quality.ListByOrder(ctx, orderID)
}

// LatestInspection registro mais recente do pedido — é ele que determina o
// estado exibido do portão. ErrNotFound se nunca houve inspeção.
func (uc *QualityGateUseCase) LatestInspection(ctx context.Context, actor authz.Actor,
	orderID string) (*entity.QualityRecord, error) {

	order, err := uc.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	ok, err := uc.resolver.CanPerform(ctx, actor, order.CompanyID, entity.ModuleVendas, entity.CapView)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrForbidden
	}
	record, err := uc.quality.LatestByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, domain.ErrNotFound
	}
	return record, nil
}
