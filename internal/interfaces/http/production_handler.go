package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jportela/producao-pro/internal/application/board"
	"github.com/jportela/producao-pro/internal/application/dto"
	"github.com/jportela/producao-pro/internal/application/production"
	"github.com/jportela/producao-pro/internal/application/usecase"
)

// ProductionHandler trata a esteira de produção: mover cartão, reverter etapa
// e montar o quadro por coluna.
type ProductionHandler struct {
	move   *production.MoveStageUseCase
	orders *usecase.OrderUseCase
}

// NewProductionHandler constrói o handler.
func NewProductionHandler(move *production.MoveStageUseCase, orders *usecase.OrderUseCase) *ProductionHandler {
	return &ProductionHandler{move: move, orders: orders}
}

// MoveStage godoc
// @Summary      Avançar o pedido uma etapa na esteira
// @Description  From é a etapa que o cliente observava. Divergência com o
// @Description  estado persistido responde 409 com a etapa autoritativa.
// @Tags         production
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID do pedido"
// @Param        body  body  dto.MoveStageRequest  true  "Etapas de origem e destino"
// @Success      200   {object}  dto.OrderResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/stage [post]
func (h *ProductionHandler) MoveStage(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.MoveStageRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if !in.From.IsValid() || !in.To.IsValid() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "etapa desconhecida"})
	}
	order, err := h.move.Move(c.Context(), GetActor(c), production.MoveStageInput{
		OrderID: id, From: in.From, To: in.To,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromOrder(order))
}

// Revert godoc
// @Summary      Voltar o pedido exatamente uma etapa (correção, auditada)
// @Tags         production
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID do pedido"
// @Param        body  body  dto.RevertStageRequest  true  "Motivo (obrigatório)"
// @Success      200   {object}  dto.OrderResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/revert [post]
func (h *ProductionHandler) Revert(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.RevertStageRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	order, err := h.move.Revert(c.Context(), GetActor(c), id, in.Reason)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromOrder(order))
}

// Board godoc
// @Summary      Quadro de produção por etapa
// @Description  Snapshot autoritativo das colunas Corte, Estampa, Acabamento e
// @Description  Embalagem para a empresa do token.
// @Tags         production
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  board.Snapshot
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/board [get]
func (h *ProductionHandler) Board(c *fiber.Ctx) error {
	orders, err := h.orders.Board(c.Context(), GetActor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(board.BuildSnapshot(orders))
}
