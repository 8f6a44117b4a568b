package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus ciclo de vida principal do pedido.
type OrderStatus string

// Status válidos (devem coincidir com o CHECK da tabela orders).
const (
	StatusPendente  OrderStatus = "pendente"
	StatusProducao  OrderStatus = "producao"
	StatusConcluido OrderStatus = "concluido"
	StatusCancelado OrderStatus = "cancelado"
)

// IsValid informa se o status pertence à enumeração fechada.
func (s OrderStatus) IsValid() bool {
	switch s {
	case StatusPendente, StatusProducao, StatusConcluido, StatusCancelado:
		return true
	}
	return false
}

// Stage etapa de produção do pedido. Só tem significado enquanto
// Status = producao; fora da produção o valor é StageNone.
type Stage string

// Etapas da esteira de produção, na ordem da fábrica.
const (
	StageNone       Stage = ""
	StageCorte      Stage = "corte"
	StageEstampa    Stage = "estampa"
	StageAcabamento Stage = "acabamento"
	StageEmbalagem  Stage = "embalagem"
)

// IsValid informa se a etapa pertence à enumeração fechada (StageNone incluso).
func (s Stage) IsValid() bool {
	switch s {
	case StageNone, StageCorte, StageEstampa, StageAcabamento, StageEmbalagem:
		return true
	}
	return false
}

// Label nome de exibição da etapa (colunas do quadro de produção).
func (s Stage) Label() string {
	switch s {
	case StageCorte:
		return "Corte"
	case StageEstampa:
		return "Estampa"
	case StageAcabamento:
		return "Acabamento"
	case StageEmbalagem:
		return "Embalagem"
	default:
		return ""
	}
}

// Order representa um pedido de confecção (um trabalho de estamparia).
//
// Invariante: ProductionStage != StageNone implica Status = StatusProducao.
// Status = StatusConcluido só é alcançado pelo Quality Gate (inspeção aprovada
// com código de rastreio) ou pela ação auditada de force-complete.
type Order struct {
	ID              string
	CompanyID       string
	CustomerName    string
	CustomerPhone   string // destino das notificações (WhatsApp)
	ProductDesc     string
	Size            string
	Color           string
	Quantity        int
	UnitPrice       decimal.Decimal
	Status          OrderStatus
	ProductionStage Stage
	CreatedBy       string // UserID
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Total valor total do pedido (quantidade x preço unitário).
func (o *Order) Total() decimal.Decimal {
	return o.UnitPrice.Mul(decimal.NewFromInt(int64(o.Quantity)))
}
