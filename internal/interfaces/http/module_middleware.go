package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jportela/producao-pro/internal/application/dto"
	"github.com/jportela/producao-pro/internal/domain/entity"
)

// moduleChecker é o contrato mínimo que o middleware precisa para verificar
// módulos. É implementado por *usecase.ModuleService; a interface evita o
// import circular.
type moduleChecker interface {
	HasActiveModule(ctx context.Context, companyID string, module entity.Module) (bool, error)
}

// RequireModule devolve um middleware Fiber que verifica se a empresa do token
// tem o módulo ativo. Usar DEPOIS de AuthMiddleware (precisa de LocalCompanyID).
//
// Comportamento:
//   - 403 Forbidden → módulo não contratado ou vencido.
//   - 503 Service Unavailable → falha de infraestrutura ao consultar a DB
//     (nega por padrão: melhor bloquear do que liberar às cegas).
//   - Sem company_id no contexto, responde 401 (AuthMiddleware deveria ter posto).
func RequireModule(module entity.Module, checker moduleChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID := GetCompanyID(c)
		if companyID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "company_id não encontrado no token",
			})
		}

		active, err := checker.HasActiveModule(c.Context(), companyID, module)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "MODULE_CHECK_FAILED",
				Message: "não foi possível verificar o módulo, tente mais tarde",
			})
		}

		if !active {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "MODULE_DISABLED",
				Message: "o módulo '" + string(module) + "' não está ativo para esta empresa",
			})
		}

		return c.Next()
	}
}
