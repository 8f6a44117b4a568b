package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jportela/producao-pro/internal/application/dto"
	"github.com/jportela/producao-pro/internal/application/production"
	"github.com/jportela/producao-pro/internal/domain"
)

// QualityHandler trata as inspeções do Quality Gate.
type QualityHandler struct {
	uc *production.QualityGateUseCase
}

// NewQualityHandler constrói o handler.
func NewQualityHandler(uc *production.QualityGateUseCase) *QualityHandler {
	return &QualityHandler{uc: uc}
}

// Inspect godoc
// @Summary      Inspecionar pedido em Embalagem (Quality Gate)
// @Description  Checklist todo aprovado + código de rastreio expede o pedido.
// @Description  Reprovação responde 422 com os itens que falharam; o registro
// @Description  de inspeção é persistido em qualquer desfecho.
// @Tags         quality
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID do pedido"
// @Param        body  body  dto.InspectionRequest  true  "Checklist e rastreio"
// @Success      200   {object}  dto.InspectionResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/inspection [post]
func (h *QualityHandler) Inspect(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.InspectionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}

	result, err := h.uc.Inspect(c.Context(), GetActor(c), id, in)
	if err != nil {
		// Reprovação: o registro existe; a resposta leva os itens que falharam
		// e o registro persistido.
		var rejected *domain.GateRejectedError
		if errors.As(err, &rejected) && result != nil && result.Record != nil {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
				Code:    "GATE_REJECTED",
				Message: "inspeção reprovada",
				Details: dto.InspectionResponse{
					Record:      dto.FromQualityRecord(result.Record),
					FailedItems: rejected.Failed,
				},
			})
		}
		return respondError(c, err)
	}

	return c.JSON(dto.InspectionResponse{
		Record:         dto.FromQualityRecord(result.Record),
		OrderCompleted: result.OrderCompleted,
	})
}

// ListInspections godoc
// @Summary      Histórico de inspeções do pedido
// @Tags         quality
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID do pedido"
// @Success      200  {array}  dto.QualityRecordResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/inspections [get]
func (h *QualityHandler) ListInspections(c *fiber.Ctx) error {
	id := c.Params("id")
	records, err := h.uc.ListInspections(c.Context(), GetActor(c), id)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.QualityRecordResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, dto.FromQualityRecord(rec))
	}
	return c.JSON(out)
}

// LatestInspection godoc
// @Summary      Inspeção mais recente do pedido
// @Description  O registro mais recente determina o estado exibido do portão
// @Description  de qualidade. 404 se o pedido nunca foi inspecionado.
// @Tags         quality
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID do pedido"
// @Success      200  {object}  dto.QualityRecordResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/inspections/latest [get]
func (h *QualityHandler) LatestInspection(c *fiber.Ctx) error {
	id := c.Params("id")
	record, err := h.uc.LatestInspection(c.Context(), GetActor(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromQualityRecord(record))
}
