// Package production contém a máquina de etapas da esteira de confecção:
// a tabela de transições é linear, sem pular etapa e sem retroceder.
// Correções para trás são uma operação explícita (revert), fora da tabela.
package production

import (
	"github.com/jportela/producao-pro/internal/domain"
	"github.com/jportela/producao-pro/internal/domain/entity"
)

// forward tabela de transições: de cada etapa só se avança para a seguinte.
// A saída de Embalagem (expedição) não é uma transição da tabela: exige
// aprovação do Quality Gate.
var forward = map[entity.Stage]entity.Stage{
	entity.StageNone:       entity.StageCorte,
	entity.StageCorte:      entity.StageEstampa,
	entity.StageEstampa:    entity.StageAcabamento,
	entity.StageAcabamento: entity.StageEmbalagem,
}

// Next etapa seguinte na esteira. ok=false quando não há avanço possível
// por esta máquina (Embalagem só sai via Quality Gate).
func Next(from entity.Stage) (entity.Stage, bool) {
	to, ok := forward[from]
	return to, ok
}

// Prev etapa anterior, usada pela operação explícita de revert.
// ok=false para StageNone e StageCorte (não há o que reverter abaixo de Corte).
func Prev(from entity.Stage) (entity.Stage, bool) {
	for earlier, later := range forward {
		if later == from && earlier != entity.StageNone {
			return earlier, true
		}
	}
	return entity.StageNone, false
}

// CanMove informa se a aresta (from, to) existe na tabela.
func CanMove(from, to entity.Stage) bool {
	next, ok := forward[from]
	return ok && next == to
}

// ValidateMove valida a transição pedida contra o estado autoritativo do
// pedido. A etapa persistida manda: se o cliente acreditava em outra etapa,
// devolve StaleStageError para forçar ressincronização em vez de sobrescrever.
func ValidateMove(order *entity.Order, claimedFrom, to entity.Stage) error {
	if !claimedFrom.IsValid() || !to.IsValid() || to == entity.StageNone {
		return domain.ErrInvalidTransition
	}
	if order.ProductionStage != claimedFrom {
		return &domain.StaleStageError{
			OrderID:  order.ID,
			Expected: claimedFrom,
			Current:  order.ProductionStage,
		}
	}
	// Entrada na esteira exige pedido em produção.
	if order.ProductionStage == entity.StageNone && order.Status != entity.StatusProducao {
		return domain.ErrInvalidTransition
	}
	if !CanMove(order.ProductionStage, to) {
		return domain.ErrInvalidTransition
	}
	return nil
}
