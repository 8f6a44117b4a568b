package production_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jportela/producao-pro/internal/domain"
	"github.com/jportela/producao-pro/internal/domain/entity"
	"github.com/jportela/producao-pro/internal/domain/production"
)

func pedidoEm(status entity.OrderStatus, stage entity.Stage) *entity.Order {
	return &entity.Order{
		ID:              "ord-1",
		CompanyID:       "cmp-1",
		Status:          status,
		ProductionStage: stage,
	}
}

func TestCanMove_SomenteArestasDaTabela(t *testing.T) {
	casos := []struct {
		from, to entity.Stage
		ok       bool
	}{
		{entity.StageNone, entity.StageCorte, true},
		{entity.StageCorte, entity.StageEstampa, true},
		{entity.StageEstampa, entity.StageAcabamento, true},
		{entity.StageAcabamento, entity.StageEmbalagem, true},
		// pular etapa
		{entity.StageCorte, entity.StageEmbalagem, false},
		{entity.StageNone, entity.StageEstampa, false},
		// retroceder
		{entity.StageEstampa, entity.StageCorte, false},
		{entity.StageEmbalagem, entity.StageAcabamento, false},
		// embalagem não avança por esta máquina (só via Quality Gate)
		{entity.StageEmbalagem, entity.StageNone, false},
	}
	for _, c := range casos {
		assert.Equal(t, c.ok, production.CanMove(c.from, c.to),
			"aresta %q -> %q", c.from, c.to)
	}
}

func TestNext_EmbalagemNaoTemProximaEtapa(t *testing.T) {
	_, ok := production.Next(entity.StageEmbalagem)
	assert.False(t, ok, "embalagem só sai da esteira via Quality Gate")

	to, ok := production.Next(entity.StageAcabamento)
	require.True(t, ok)
	assert.Equal(t, entity.StageEmbalagem, to)
}

func TestPrev_NaoRevertAbaixoDeCorte(t *testing.T) {
	_, ok := production.Prev(entity.StageCorte)
	assert.False(t, ok, "não existe etapa antes de Corte")

	_, ok = production.Prev(entity.StageNone)
	assert.False(t, ok)

	from, ok := production.Prev(entity.StageEmbalagem)
	require.True(t, ok)
	assert.Equal(t, entity.StageAcabamento, from)
}

func TestValidateMove_AvancoNormal(t *testing.T) {
	err := production.ValidateMove(
		pedidoEm(entity.StatusProducao, entity.StageCorte),
		entity.StageCorte, entity.StageEstampa,
	)
	assert.NoError(t, err)
}

func TestValidateMove_EntradaNaEsteiraExigePedidoEmProducao(t *testing.T) {
	err := production.ValidateMove(
		pedidoEm(entity.StatusPendente, entity.StageNone),
		entity.StageNone, entity.StageCorte,
	)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	err = production.ValidateMove(
		pedidoEm(entity.StatusProducao, entity.StageNone),
		entity.StageNone, entity.StageCorte,
	)
	assert.NoError(t, err)
}

func TestValidateMove_PularEtapaEhInvalido(t *testing.T) {
	err := production.ValidateMove(
		pedidoEm(entity.StatusProducao, entity.StageCorte),
		entity.StageCorte, entity.StageEmbalagem,
	)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestValidateMove_EtapaPersistidaManda(t *testing.T) {
	// O cliente acreditava que o pedido estava em Corte, mas outro operador
	// já o moveu para Estampa: deve falhar com StaleStageError e informar a
	// etapa autoritativa.
	err := production.ValidateMove(
		pedidoEm(entity.StatusProducao, entity.StageEstampa),
		entity.StageCorte, entity.StageEstampa,
	)
	var stale *domain.StaleStageError
	require.True(t, errors.As(err, &stale))
	assert.Equal(t, entity.StageCorte, stale.Expected)
	assert.Equal(t, entity.StageEstampa, stale.Current)
}
