package production_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jportela/producao-pro/internal/application/dto"
	appproduction "github.com/jportela/producao-pro/internal/application/production"
	"github.com/jportela/producao-pro/internal/domain"
	"github.com/jportela/producao-pro/internal/domain/entity"
)

func checklistCompleto() map[string]bool {
	return map[string]bool{
		"estampa_centralizada": true,
		"cor_conforme":         true,
		"costura_integra":      true,
		"quantidade_confere":   true,
	}
}

func TestInspect_AprovadoComRastreioConcluiOPedido(t *testing.T) {
	orders := newFakeOrders(pedidoEmProducao(entity.StageEmbalagem))
	quality := &fakeQuality{}
	uc := appproduction.NewQualityGateUseCase(orders, quality, permite())

	res, err := uc.Inspect(context.Background(), operador(), "ord-1", dto.InspectionRequest{
		Checklist:    checklistCompleto(),
		TrackingCode: "BR123456789BR",
		Carrier:      "correios",
	})
	require.NoError(t, err)
	assert.True(t, res.Record.Approved)
	assert.True(t, res.OrderCompleted)

	order := orders.byID["ord-1"]
	assert.Equal(t, entity.StatusConcluido, order.Status)
	assert.Equal(t, entity.StageNone, order.ProductionStage,
		"concluir limpa a etapa de produção (invariante etapa != none => producao)")

	require.Len(t, orders.logs, 1)
	assert.Equal(t, entity.LogKindDispatch, orders.logs[0].Kind)

	require.Len(t, orders.notifs, 1)
	assert.Equal(t, "dispatched", orders.notifs[0].Event)
}

func TestInspect_AprovadoSemRastreioNaoConclui(t *testing.T) {
	// Aprovação parcial: conformidade de qualidade e prontidão de despacho
	// são condições independentes — as duas são necessárias.
	orders := newFakeOrders(pedidoEmProducao(entity.StageEmbalagem))
	quality := &fakeQuality{}
	uc := appproduction.NewQualityGateUseCase(orders, quality, permite())

	res, err := uc.Inspect(context.Background(), operador(), "ord-1", dto.InspectionRequest{
		Checklist: checklistCompleto(),
	})
	require.NoError(t, err)
	assert.True(t, res.Record.Approved)
	assert.False(t, res.OrderCompleted)

	order := orders.byID["ord-1"]
	assert.Equal(t, entity.StatusProducao, order.Status, "sem rastreio o status não muda")
	assert.Equal(t, entity.StageEmbalagem, order.ProductionStage)
	assert.Empty(t, orders.notifs)
	require.Len(t, quality.records, 1, "o registro é persistido mesmo sem concluir")
}

func TestInspect_ItemReprovadoMantemEmEmbalagem(t *testing.T) {
	orders := newFakeOrders(pedidoEmProducao(entity.StageEmbalagem))
	quality := &fakeQuality{}
	uc := appproduction.NewQualityGateUseCase(orders, quality, permite())

	checklist := checklistCompleto()
	checklist["cor_conforme"] = false

	res, err := uc.Inspect(context.Background(), operador(), "ord-1", dto.InspectionRequest{
		Checklist:    checklist,
		TrackingCode: "BR123456789BR",
	})
	var rejected *domain.GateRejectedError
	require.True(t, errors.As(err, &rejected))
	assert.Equal(t, []string{"cor_conforme"}, rejected.Failed)

	require.NotNil(t, res)
	assert.False(t, res.Record.Approved)
	assert.False(t, res.OrderCompleted)

	order := orders.byID["ord-1"]
	assert.Equal(t, entity.StageEmbalagem, order.ProductionStage,
		"reprovado fica em Embalagem, disponível para reinspeção")
	require.Len(t, quality.records, 1, "a reprovação também é persistida")
}

func TestInspect_ReinspecaoAcumulaRegistros(t *testing.T) {
	orders := newFakeOrders(pedidoEmProducao(entity.StageEmbalagem))
	quality := &fakeQuality{}
	uc := appproduction.NewQualityGateUseCase(orders, quality, permite())

	reprovado := checklistCompleto()
	reprovado["costura_integra"] = false
	_, err := uc.Inspect(context.Background(), operador(), "ord-1", dto.InspectionRequest{Checklist: reprovado})
	var rejected *domain.GateRejectedError
	require.True(t, errors.As(err, &rejected))

	res, err := uc.Inspect(context.Background(), operador(), "ord-1", dto.InspectionRequest{
		Checklist:    checklistCompleto(),
		TrackingCode: "BR123456789BR",
	})
	require.NoError(t, err)
	assert.True(t, res.OrderCompleted)
	assert.Len(t, quality.records, 2, "cada tentativa gera um registro próprio")
}

func TestInspect_ForaDaEmbalagem(t *testing.T) {
	orders := newFakeOrders(pedidoEmProducao(entity.StageEstampa))
	uc := appproduction.NewQualityGateUseCase(orders, &fakeQuality{}, permite())

	_, err := uc.Inspect(context.Background(), operador(), "ord-1", dto.InspectionRequest{
		Checklist: checklistCompleto(),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestInspect_SemPermissaoDeEdicao(t *testing.T) {
	orders := newFakeOrders(pedidoEmProducao(entity.StageEmbalagem))
	quality := &fakeQuality{}
	uc := appproduction.NewQualityGateUseCase(orders, quality, nega())

	_, err := uc.Inspect(context.Background(), operador(), "ord-1", dto.InspectionRequest{
		Checklist: checklistCompleto(),
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Empty(t, quality.records)
}

func TestInspect_ChecklistVazioEhEntradaInvalida(t *testing.T) {
	orders := newFakeOrders(pedidoEmProducao(entity.StageEmbalagem))
	uc := appproduction.NewQualityGateUseCase(orders, &fakeQuality{}, permite())

	_, err := uc.Inspect(context.Background(), operador(), "ord-1", dto.InspectionRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLatestInspection_DevolveORegistroMaisRecente(t *testing.T) {
	orders := newFakeOrders(pedidoEmProducao(entity.StageEmbalagem))
	quality := &fakeQuality{}
	uc := appproduction.NewQualityGateUseCase(orders, quality, permite())

	reprovado := checklistCompleto()
	reprovado["costura_integra"] = false
	_, err := uc.Inspect(context.Background(), operador(), "ord-1", dto.InspectionRequest{Checklist: reprovado})
	require.Error(t, err)

	_, err = uc.Inspect(context.Background(), operador(), "ord-1", dto.InspectionRequest{
		Checklist:    checklistCompleto(),
		TrackingCode: "BR123456789BR",
	})
	require.NoError(t, err)

	latest, err := uc.LatestInspection(context.Background(), operador(), "ord-1")
	require.NoError(t, err)
	assert.True(t, latest.Approved, "o estado exibido vem do registro mais recente")
}

func TestLatestInspection_SemInspecaoNaoEncontrado(t *testing.T) {
	orders := newFakeOrders(pedidoEmProducao(entity.StageEmbalagem))
	uc := appproduction.NewQualityGateUseCase(orders, &fakeQuality{}, permite())

	_, err := uc.LatestInspection(context.Background(), operador(), "ord-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLatestInspection_SemPermissaoNega(t *testing.T) {
	orders := newFakeOrders(pedidoEmProducao(entity.StageEmbalagem))
	uc := appproduction.NewQualityGateUseCase(orders, &fakeQuality{}, nega())

	_, err := uc.LatestInspection(context.Background(), operador(), "ord-1")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
