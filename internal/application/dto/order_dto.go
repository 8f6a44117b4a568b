package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jportela/producao-pro/internal/domain/entity"
)

// CreateOrderRequest criação de pedido (nasce pendente, fora da esteira).
type CreateOrderRequest struct {
	CustomerName  string          `json:"customer_name"`
	CustomerPhone string          `json:"customer_phone"`
	ProductDesc   string          `json:"product_desc"`
	Size          string          `json:"size"`
	Color         string          `json:"color"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
}

// UpdateOrderRequest edição explícita dos atributos de cliente/produto.
// Não mexe em status nem etapa — isso é assunto da máquina de estados.
type UpdateOrderRequest struct {
	CustomerName  string          `json:"customer_name"`
	CustomerPhone string          `json:"customer_phone"`
	ProductDesc   string          `json:"product_desc"`
	Size          string          `json:"size"`
	Color         string          `json:"color"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
}

// UpdateStatusRequest mudança do ciclo de vida principal.
type UpdateStatusRequest struct {
	Status entity.OrderStatus `json:"status"`
}

// MoveStageRequest intenção de mover o cartão no quadro.
// From é a etapa que o cliente observava; divergência sinaliza cliente
// desatualizado e responde 409 com a etapa autoritativa.
type MoveStageRequest struct {
	From entity.Stage `json:"from"`
	To   entity.Stage `json:"to"`
}

// RevertStageRequest correção explícita: volta exatamente uma etapa.
type RevertStageRequest struct {
	Reason string `json:"reason"`
}

// ForceCompleteRequest conclusão administrativa auditada, sem Quality Gate.
type ForceCompleteRequest struct {
	Reason string `json:"reason"`
}

// OrderResponse pedido na resposta HTTP.
type OrderResponse struct {
	ID              string             `json:"id"`
	CompanyID       string             `json:"company_id"`
	CustomerName    string             `json:"customer_name"`
	CustomerPhone   string             `json:"customer_phone"`
	ProductDesc     string             `json:"product_desc"`
	Size            string             `json:"size"`
	Color           string             `json:"color"`
	Quantity        int                `json:"quantity"`
	UnitPrice       decimal.Decimal    `json:"unit_price"`
	Total           decimal.Decimal    `json:"total"`
	Status          entity.OrderStatus `json:"status"`
	ProductionStage entity.Stage       `json:"production_stage"`
	StageLabel      string             `json:"stage_label,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

// FromOrder converte a entidade para resposta.
func FromOrder(o *entity.Order) *OrderResponse {
	if o == nil {
		return nil
	}
	return &OrderResponse{
		ID:              o.ID,
		CompanyID:       o.CompanyID,
		CustomerName:    o.CustomerName,
		CustomerPhone:   o.CustomerPhone,
		ProductDesc:     o.ProductDesc,
		Size:            o.Size,
		Color:           o.Color,
		Quantity:        o.Quantity,
		UnitPrice:       o.UnitPrice,
		Total:           o.Total(),
		Status:          o.Status,
		ProductionStage: o.ProductionStage,
		StageLabel:      o.ProductionStage.Label(),
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

// StageLogResponse entrada do histórico de etapas.
type StageLogResponse struct {
	ID        string       `json:"id"`
	OrderID   string       `json:"order_id"`
	FromStage entity.Stage `json:"from_stage"`
	ToStage   entity.Stage `json:"to_stage"`
	Kind      string       `json:"kind"`
	ActorID   string       `json:"actor_id"`
	Reason    string       `json:"reason,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}
