package repository

import (
	"context"

	"github.com/jportela/producao-pro/internal/domain/entity"
)

// StageTransition parâmetros do procedimento atômico de mudança de etapa:
// atualização condicional do pedido + registro no histórico + linha de outbox,
// tudo em uma única transação. ExpectedStage é a etapa que o chamador validou;
// se a linha persistida já mudou, o procedimento falha com StaleStageError.
type StageTransition struct {
	OrderID       string
	CompanyID     string
	ExpectedStage entity.Stage
	NewStage      entity.Stage
	NewStatus     *entity.OrderStatus // nil = mantém o status atual
	Log           entity.StageLog
	Notification  *entity.NotificationRecord // nil = transição sem notificação
}

// OrderFilter filtros de listagem de pedidos.
type OrderFilter struct {
	Status entity.OrderStatus // vazio = todos
	Limit  int
	Offset int
}

// OrderRepository porta de persistência de pedidos.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	Update(ctx context.Context, order *entity.Order) error
	UpdateStatus(ctx context.Context, id string, status entity.OrderStatus, stage entity.Stage) error
	List(ctx context.Context, companyID string, f OrderFilter) ([]*entity.Order, error)
	// ListBoard pedidos em produção da empresa, ordenados por updated_at,
	// para montar o quadro por etapa.
	ListBoard(ctx context.Context, companyID string) ([]*entity.Order, error)
	// ApplyTransition executa o procedimento atômico de mudança de etapa.
	// Devolve o pedido já atualizado.
	ApplyTransition(ctx context.Context, in StageTransition) (*entity.Order, error)
	ListStageLogs(ctx context.Context, orderID string) ([]*entity.StageLog, error)
}
