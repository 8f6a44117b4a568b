package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jportela/producao-pro/internal/application/dto"
	"github.com/jportela/producao-pro/internal/application/usecase"
	"github.com/jportela/producao-pro/internal/domain/entity"
)

// PermissionHandler administra as concessões papel x módulo (superadmin).
type PermissionHandler struct {
	uc *usecase.PermissionUseCase
}

// NewPermissionHandler constrói o handler.
func NewPermissionHandler(uc *usecase.PermissionUseCase) *PermissionHandler {
	return &PermissionHandler{uc: uc}
}

// ListByRole godoc
// @Summary      Concessões de um papel sobre todos os módulos
// @Description  Para o superadmin a matriz completa é sintetizada; módulos sem
// @Description  linha persistida aparecem com tudo negado.
// @Tags         permissions
// @Security     Bearer
// @Produce      json
// @Param        role  path  string  true  "Papel (admin, operador, vendedor, superadmin)"
// @Success      200   {array}  dto.PermissionGrantDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/permissions/{role} [get]
func (h *PermissionHandler) ListByRole(c *fiber.Ctx) error {
	role := entity.Role(c.Params("role"))
	if !role.IsValid() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "papel desconhecido"})
	}
	out, err := h.uc.ListByRole(c.Context(), role)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Upsert godoc
// @Summary      Gravar a concessão de um papel sobre um módulo
// @Description  A linha do superadmin não é editável.
// @Tags         permissions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        role  path  string  true  "Papel (admin, operador, vendedor)"
// @Param        body  body  dto.PermissionGrantDTO  true  "Concessão"
// @Success      204   "sem conteúdo"
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/permissions/{role} [put]
func (h *PermissionHandler) Upsert(c *fiber.Ctx) error {
	role := entity.Role(c.Params("role"))
	if !role.IsValid() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "papel desconhecido"})
	}
	var in dto.PermissionGrantDTO
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	in.Role = role
	if !in.Module.IsValid() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "módulo desconhecido"})
	}
	if err := h.uc.Upsert(c.Context(), in); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
