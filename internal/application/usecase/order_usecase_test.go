package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jportela/producao-pro/internal/application/authz"
	"github.com/jportela/producao-pro/internal/application/dto"
	"github.com/jportela/producao-pro/internal/application/usecase"
	"github.com/jportela/producao-pro/internal/domain"
	"github.com/jportela/producao-pro/internal/domain/entity"
	"github.com/jportela/producao-pro/internal/domain/repository"
)

// fakeOrders fake em memória da porta de pedidos, suficiente para o CRUD e o
// procedimento de transição.
type fakeOrders struct {
	byID map[string]*entity.Order
	logs []*entity.StageLog
}

func newFakeOrders(orders ...*entity.Order) *fakeOrders {
	f := &fakeOrders{byID: map[string]*entity.Order{}}
	for _, o := range orders {
		f.byID[o.ID] = o
	}
	return f
}

func (f *fakeOrders) Create(_ context.Context, o *entity.Order) error { f.byID[o.ID] = o; return nil }
func (f *fakeOrders) GetByID(_ context.Context, id string) (*entity.Order, error) {
	return f.byID[id], nil
}
func (f *fakeOrders) Update(_ context.Context, o *entity.Order) error { f.byID[o.ID] = o; return nil }
func (f *fakeOrders) UpdateStatus(_ context.Context, id string, status entity.OrderStatus, stage entity.Stage) error {
	o := f.byID[id]
	o.Status, o.ProductionStage = status, stage
	return nil
}
func (f *fakeOrders) List(_ context.Context, companyID string, _ repository.OrderFilter) ([]*entity.Order, error) {
	var out []*entity.Order
	for _, o := range f.byID {
		if o.CompanyID == companyID {
			out = append(out, o)
		}
	}
	return out, nil
}
func (f *fakeOrders) ListBoard(_ context.Context, companyID string) ([]*entity.Order, error) {
	return f.List(context.Background(), companyID, repository.OrderFilter{})
}
func (f *fakeOrders) ApplyTransition(_ context.Context, in repository.StageTransition) (*entity.Order, error) {
	o := f.byID[in.OrderID]
	if o.ProductionStage != in.ExpectedStage {
		return nil, &domain.StaleStageError{OrderID: o.ID, Expected: in.ExpectedStage, Current: o.ProductionStage}
	}
	o.ProductionStage = in.NewStage
	if in.NewStatus != nil {
		o.Status = *in.NewStatus
	}
	o.UpdatedAt = time.Now()
	log := in.Log
	f.logs = append(f.logs, &log)
	return o, nil
}
func (f *fakeOrders) ListStageLogs(_ context.Context, orderID string) ([]*entity.StageLog, error) {
	var out []*entity.StageLog
	for _, l := range f.logs {
		if l.OrderID == orderID {
			out = append(out, l)
		}
	}
	return out, nil
}

type allowAll struct{}

func (allowAll) CanPerform(context.Context, authz.Actor, string, entity.Module, entity.Capability) (bool, error) {
	return true, nil
}

func admin() authz.Actor {
	return authz.Actor{UserID: "adm-1", CompanyID: "cmp-1", Role: entity.RoleAdmin}
}

func vendedor() authz.Actor {
	return authz.Actor{UserID: "vnd-1", CompanyID: "cmp-1", Role: entity.RoleVendedor}
}

func pedido(status entity.OrderStatus, stage entity.Stage) *entity.Order {
	return &entity.Order{
		ID:              "ord-1",
		CompanyID:       "cmp-1",
		CustomerName:    "Rafael",
		Quantity:        10,
		UnitPrice:       decimal.NewFromInt(35),
		Status:          status,
		ProductionStage: stage,
	}
}

func TestCreate_PedidoNascePendenteForaDaEsteira(t *testing.T) {
	orders := newFakeOrders()
	uc := usecase.NewOrderUseCase(orders, allowAll{})

	resp, err := uc.Create(context.Background(), vendedor(), dto.CreateOrderRequest{
		CustomerName: "Rafael",
		ProductDesc:  "camiseta algodão estampa frente",
		Quantity:     10,
		UnitPrice:    decimal.NewFromInt(35),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPendente, resp.Status)
	assert.Equal(t, entity.StageNone, resp.ProductionStage)
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(350)))
}

func TestUpdateStatus_TransicoesPermitidas(t *testing.T) {
	casos := []struct {
		de, para entity.OrderStatus
		ok       bool
	}{
		{entity.StatusPendente, entity.StatusProducao, true},
		{entity.StatusPendente, entity.StatusCancelado, true},
		{entity.StatusProducao, entity.StatusCancelado, true},
		{entity.StatusProducao, entity.StatusPendente, false},
		{entity.StatusCancelado, entity.StatusProducao, false},
		{entity.StatusConcluido, entity.StatusProducao, false},
	}
	for _, c := range casos {
		orders := newFakeOrders(pedido(c.de, entity.StageNone))
		uc := usecase.NewOrderUseCase(orders, allowAll{})
		_, err := uc.UpdateStatus(context.Background(), admin(), "ord-1", c.para)
		if c.ok {
			assert.NoError(t, err, "%s -> %s", c.de, c.para)
		} else {
			assert.ErrorIs(t, err, domain.ErrInvalidTransition, "%s -> %s", c.de, c.para)
		}
	}
}

func TestUpdateStatus_ConcluidoNaoPassaPorAqui(t *testing.T) {
	orders := newFakeOrders(pedido(entity.StatusProducao, entity.StageEmbalagem))
	uc := usecase.NewOrderUseCase(orders, allowAll{})

	_, err := uc.UpdateStatus(context.Background(), admin(), "ord-1", entity.StatusConcluido)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition,
		"concluido só via Quality Gate ou force-complete")
}

func TestUpdateStatus_CancelarLimpaAEtapa(t *testing.T) {
	orders := newFakeOrders(pedido(entity.StatusProducao, entity.StageEstampa))
	uc := usecase.NewOrderUseCase(orders, allowAll{})

	resp, err := uc.UpdateStatus(context.Background(), admin(), "ord-1", entity.StatusCancelado)
	require.NoError(t, err)
	assert.Equal(t, entity.StageNone, resp.ProductionStage,
		"invariante: etapa != none só com status = producao")
}

func TestForceComplete_SomenteAdminOuSuperadmin(t *testing.T) {
	orders := newFakeOrders(pedido(entity.StatusProducao, entity.StageEstampa))
	uc := usecase.NewOrderUseCase(orders, allowAll{})

	_, err := uc.ForceComplete(context.Background(), vendedor(), "ord-1", "cliente retirou na loja")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	operador := authz.Actor{UserID: "op-1", CompanyID: "cmp-1", Role: entity.RoleOperador}
	_, err = uc.ForceComplete(context.Background(), operador, "ord-1", "cliente retirou na loja")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestForceComplete_ConcluiComTrilhaDeAuditoria(t *testing.T) {
	// Caminho herdado da edição direta de status: continua existindo, mas
	// explícito e auditado — sem registro de qualidade.
	orders := newFakeOrders(pedido(entity.StatusProducao, entity.StageEstampa))
	uc := usecase.NewOrderUseCase(orders, allowAll{})

	resp, err := uc.ForceComplete(context.Background(), admin(), "ord-1", "cliente retirou na loja")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusConcluido, resp.Status)
	assert.Equal(t, entity.StageNone, resp.ProductionStage)

	require.Len(t, orders.logs, 1)
	assert.Equal(t, entity.LogKindForce, orders.logs[0].Kind)
	assert.Equal(t, "cliente retirou na loja", orders.logs[0].Reason)
}

func TestForceComplete_ExigeMotivo(t *testing.T) {
	orders := newFakeOrders(pedido(entity.StatusProducao, entity.StageEstampa))
	uc := usecase.NewOrderUseCase(orders, allowAll{})

	_, err := uc.ForceComplete(context.Background(), admin(), "ord-1", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

type denyAll struct{}

func (denyAll) CanPerform(context.Context, authz.Actor, string, entity.Module, entity.Capability) (bool, error) {
	return false, nil
}

func TestBoard_ListaPedidosDaEmpresaDoAtor(t *testing.T) {
	deOutraEmpresa := pedido(entity.StatusProducao, entity.StageCorte)
	deOutraEmpresa.ID = "ord-2"
	deOutraEmpresa.CompanyID = "cmp-2"
	orders := newFakeOrders(pedido(entity.StatusProducao, entity.StageCorte), deOutraEmpresa)
	uc := usecase.NewOrderUseCase(orders, allowAll{})

	out, err := uc.Board(context.Background(), vendedor())
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "cmp-1", out[0].CompanyID)
}

func TestBoard_SemConcessaoDeVisualizacaoNega(t *testing.T) {
	// O quadro passa pela mesma concessão de visualização das demais
	// leituras: papel sem canView não enxerga nada, nem da própria empresa.
	orders := newFakeOrders(pedido(entity.StatusProducao, entity.StageCorte))
	uc := usecase.NewOrderUseCase(orders, denyAll{})

	_, err := uc.Board(context.Background(), vendedor())
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
